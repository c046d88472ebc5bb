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

const likesCollection = "likes"

// Toggle outcomes.
const (
	LikeAdded   = "added"
	LikeRemoved = "removed"
)

// FindLikedTargets issues the single batch query of the like annotation
// path: all targets of the given kind within ids that the viewer has liked,
// projected down to the target identifier. The result is the membership set
// consumed by the annotators.
func FindLikedTargets(ctx context.Context, viewer bson.ObjectID, kind models.LikeKind, ids []bson.ObjectID) (map[bson.ObjectID]struct{}, error) {
	liked := make(map[bson.ObjectID]struct{}, len(ids))
	if len(ids) == 0 {
		return liked, nil
	}

	findOptions := options.Find().SetProjection(bson.M{"target": 1})
	cursor, err := GetCollection(likesCollection).Find(ctx, bson.M{
		"user":   viewer,
		"kind":   kind,
		"target": bson.M{"$in": ids},
	}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("find liked targets: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		Target bson.ObjectID `bson:"target"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode liked targets: %w", err)
	}
	for _, d := range docs {
		liked[d.Target] = struct{}{}
	}
	return liked, nil
}

// CountLikesForTargets returns the like tally per target for the given set,
// in one aggregation.
func CountLikesForTargets(ctx context.Context, kind models.LikeKind, ids []bson.ObjectID) (map[bson.ObjectID]int64, error) {
	counts := make(map[bson.ObjectID]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	pipeline := bson.A{
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "kind", Value: kind},
			{Key: "target", Value: bson.D{{Key: "$in", Value: ids}}},
		}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$target"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := GetCollection(likesCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("count likes: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		Target bson.ObjectID `bson:"_id"`
		Count  int64         `bson:"count"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode like counts: %w", err)
	}
	for _, d := range docs {
		counts[d.Target] = d.Count
	}
	return counts, nil
}

// ToggleLike flips the viewer's like on a target: delete when present,
// insert when absent. The unique (user, kind, target) index resolves the
// race between concurrent identical toggles; a duplicate insert is treated
// as the like already existing and turned into a removal.
func ToggleLike(ctx context.Context, viewer bson.ObjectID, target models.LikeTarget) (string, error) {
	collection := GetCollection(likesCollection)
	filter := bson.M{
		"user":   viewer,
		"kind":   target.Kind,
		"target": target.ID,
	}

	var existing models.Like
	err := collection.FindOne(ctx, filter).Decode(&existing)
	if err == nil {
		if _, err := collection.DeleteOne(ctx, bson.M{"_id": existing.ID}); err != nil {
			return "", fmt.Errorf("delete like: %w", err)
		}
		return LikeRemoved, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return "", fmt.Errorf("find like: %w", err)
	}

	if _, err := collection.InsertOne(ctx, models.NewLike(viewer, target)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Concurrent toggle won the insert; undo it to honor toggle semantics.
			if _, delErr := collection.DeleteMany(ctx, filter); delErr != nil {
				return "", fmt.Errorf("delete like after duplicate: %w", delErr)
			}
			return LikeRemoved, nil
		}
		return "", fmt.Errorf("insert like: %w", err)
	}
	return LikeAdded, nil
}
