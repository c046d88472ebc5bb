package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/Debian1107/Reviewed/pkg/models"
)

const reviewsCollection = "reviews"

// FindReviewByID is the existence check used before toggling a review like.
func FindReviewByID(ctx context.Context, id bson.ObjectID) (*models.Review, error) {
	var review models.Review
	err := GetCollection(reviewsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&review)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find review by id: %w", err)
	}
	return &review, nil
}

// FindReviewsForItem returns an item's reviews newest first with author
// names resolved in one batched query.
func FindReviewsForItem(ctx context.Context, itemRef bson.ObjectID) ([]*models.ReviewView, error) {
	findOptions := options.Find().SetSort(bson.D{
		{Key: "createdAt", Value: -1},
		{Key: "_id", Value: -1},
	})

	cursor, err := GetCollection(reviewsCollection).Find(ctx, bson.M{"itemId": itemRef}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("find reviews for item: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("decode reviews: %w", err)
	}

	authorIDs := make([]bson.ObjectID, 0, len(reviews))
	seen := make(map[bson.ObjectID]struct{}, len(reviews))
	for _, r := range reviews {
		if _, dup := seen[r.User]; !dup {
			seen[r.User] = struct{}{}
			authorIDs = append(authorIDs, r.User)
		}
	}
	names, err := resolveAuthorNames(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	return models.BuildReviewViews(reviews, names), nil
}

// FindReviewsByUser returns the viewer's own reviews, newest first.
func FindReviewsByUser(ctx context.Context, user bson.ObjectID) ([]models.Review, error) {
	findOptions := options.Find().SetSort(bson.D{
		{Key: "createdAt", Value: -1},
		{Key: "_id", Value: -1},
	})

	cursor, err := GetCollection(reviewsCollection).Find(ctx, bson.M{"user": user}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("find reviews by user: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("decode reviews: %w", err)
	}
	return reviews, nil
}

// CreateReview inserts a new review. The item's denormalized aggregates are
// updated separately by ApplyNewRating.
func CreateReview(ctx context.Context, review *models.Review) error {
	if _, err := GetCollection(reviewsCollection).InsertOne(ctx, review); err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

// TrendingReviews returns the top reviews ranked by like count, joined with
// their item and author in one pipeline.
func TrendingReviews(ctx context.Context, limit int) ([]models.TrendingReview, error) {
	pipeline := bson.A{
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "likes"},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "target"},
			{Key: "as", Value: "likes"},
			{Key: "pipeline", Value: bson.A{
				bson.D{{Key: "$match", Value: bson.D{{Key: "kind", Value: models.LikeKindReview}}}},
			}},
		}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "items"},
			{Key: "localField", Value: "itemId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "item"},
		}}},
		bson.D{{Key: "$unwind", Value: "$item"}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: "user"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "authorDoc"},
		}}},
		bson.D{{Key: "$addFields", Value: bson.D{
			{Key: "likesCount", Value: bson.D{{Key: "$size", Value: "$likes"}}},
			{Key: "itemSlug", Value: "$item.id"},
			{Key: "itemName", Value: "$item.name"},
			{Key: "author", Value: bson.D{
				{Key: "name", Value: bson.D{{Key: "$arrayElemAt", Value: bson.A{"$authorDoc.name", 0}}}},
			}},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "likes", Value: 0},
			{Key: "item", Value: 0},
			{Key: "authorDoc", Value: 0},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "likesCount", Value: -1},
			{Key: "createdAt", Value: -1},
		}}},
		bson.D{{Key: "$limit", Value: limit}},
	}

	cursor, err := GetCollection(reviewsCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate trending reviews: %w", err)
	}
	defer cursor.Close(ctx)

	trending := []models.TrendingReview{}
	if err := cursor.All(ctx, &trending); err != nil {
		return nil, fmt.Errorf("decode trending reviews: %w", err)
	}
	return trending, nil
}
