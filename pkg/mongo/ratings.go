package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"github.com/Debian1107/Reviewed/pkg/logger"
	"github.com/Debian1107/Reviewed/pkg/models"
)

// SummarizeRatings computes the on-demand rating summary for an item: the
// mean and count of all its review ratings plus the dense 6-bucket
// histogram, in a single aggregation. An item with no reviews yields the
// defined zero result, not an error.
func SummarizeRatings(ctx context.Context, itemRef bson.ObjectID) (models.RatingSummary, error) {
	pipeline := bson.A{
		bson.D{{Key: "$match", Value: bson.D{{Key: "itemId", Value: itemRef}}}},
		bson.D{{Key: "$facet", Value: bson.D{
			{Key: "summary", Value: bson.A{
				bson.D{{Key: "$group", Value: bson.D{
					{Key: "_id", Value: "$itemId"},
					{Key: "averageRating", Value: bson.D{{Key: "$avg", Value: "$rating"}}},
					{Key: "totalReviews", Value: bson.D{{Key: "$sum", Value: 1}}},
				}}},
			}},
			{Key: "breakdown", Value: bson.A{
				bson.D{{Key: "$group", Value: bson.D{
					{Key: "_id", Value: "$rating"},
					{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
				}}},
				bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: -1}}}},
			}},
		}}},
	}

	cursor, err := GetCollection(reviewsCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return models.RatingSummary{}, fmt.Errorf("aggregate ratings: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Summary []struct {
			AverageRating float64 `bson:"averageRating"`
			TotalReviews  int64   `bson:"totalReviews"`
		} `bson:"summary"`
		Breakdown []struct {
			Rating int   `bson:"_id"`
			Count  int64 `bson:"count"`
		} `bson:"breakdown"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return models.RatingSummary{}, fmt.Errorf("decode rating aggregation: %w", err)
	}

	summary := models.RatingSummary{
		RatingBreakdown: models.FillRatingBreakdown(nil),
	}
	if len(results) == 0 {
		return summary, nil
	}

	if len(results[0].Summary) > 0 {
		summary.AverageRating = models.RoundRating(results[0].Summary[0].AverageRating)
		summary.TotalReviews = results[0].Summary[0].TotalReviews
	}

	counts := make(map[int]int64, len(results[0].Breakdown))
	for _, b := range results[0].Breakdown {
		counts[b.Rating] = b.Count
	}
	summary.RatingBreakdown = models.FillRatingBreakdown(counts)

	return summary, nil
}

// ApplyNewRating folds one new review rating into the item's denormalized
// average and count. The update is a compare-and-swap on reviewCount so two
// concurrent submissions cannot silently lose each other; on a CAS miss the
// item is re-read and the update retried once per attempt, up to maxRetries.
func ApplyNewRating(ctx context.Context, item *models.Item, rating int) error {
	const maxRetries = 3

	current := item
	for attempt := 0; attempt < maxRetries; attempt++ {
		newAvg, newCount := models.NextAverage(current.AverageRating, current.ReviewCount, rating)

		result, err := GetCollection(itemsCollection).UpdateOne(ctx,
			bson.M{"_id": current.ID, "reviewCount": current.ReviewCount},
			bson.M{"$set": bson.M{
				"averageRating": newAvg,
				"reviewCount":   newCount,
			}},
		)
		if err != nil {
			return fmt.Errorf("update item rating: %w", err)
		}
		if result.MatchedCount > 0 {
			item.AverageRating = newAvg
			item.ReviewCount = newCount
			return nil
		}

		// Lost the race: another review landed between our read and write.
		logger.L().Named("ratings").Warn("rating update conflict, retrying",
			zap.String("item", current.Slug), zap.Int("attempt", attempt+1))
		fresh, err := FindItemBySlug(ctx, current.Slug)
		if err != nil {
			return fmt.Errorf("reload item after rating conflict: %w", err)
		}
		current = fresh
	}

	return fmt.Errorf("update item rating: too many concurrent updates for %q", current.Slug)
}
