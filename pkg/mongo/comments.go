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

const commentsCollection = "comments"

var newestFirst = bson.D{
	{Key: "createdAt", Value: -1},
	{Key: "_id", Value: -1},
}

func findComments(ctx context.Context, filter bson.M) ([]models.Comment, error) {
	cursor, err := GetCollection(commentsCollection).Find(ctx, filter, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, fmt.Errorf("find comments: %w", err)
	}
	defer cursor.Close(ctx)

	comments := []models.Comment{}
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("decode comments: %w", err)
	}
	return comments, nil
}

func commentAuthorNames(ctx context.Context, groups ...[]models.Comment) (map[bson.ObjectID]string, error) {
	seen := make(map[bson.ObjectID]struct{})
	ids := []bson.ObjectID{}
	for _, comments := range groups {
		for _, c := range comments {
			if c.User == nil {
				continue
			}
			if _, dup := seen[*c.User]; !dup {
				seen[*c.User] = struct{}{}
				ids = append(ids, *c.User)
			}
		}
	}
	return resolveAuthorNames(ctx, ids)
}

// FetchCommentsForItem loads the two-tier comment tree for an item:
// top-level comments newest first, each with one level of replies fetched in
// a single batched query, author names resolved for both tiers.
func FetchCommentsForItem(ctx context.Context, itemRef bson.ObjectID) ([]*models.CommentNode, error) {
	topLevel, err := findComments(ctx, bson.M{
		"item":          itemRef,
		"parentComment": nil,
	})
	if err != nil {
		return nil, err
	}

	replies := []models.Comment{}
	if len(topLevel) > 0 {
		topIDs := make([]bson.ObjectID, len(topLevel))
		for i, c := range topLevel {
			topIDs[i] = c.ID
		}
		replies, err = findComments(ctx, bson.M{"parentComment": bson.M{"$in": topIDs}})
		if err != nil {
			return nil, err
		}
	}

	names, err := commentAuthorNames(ctx, topLevel, replies)
	if err != nil {
		return nil, err
	}

	return models.BuildCommentTree(topLevel, replies, names), nil
}

// FetchReplies loads the direct replies of one comment, newest first, with
// authors resolved. No further nesting is followed.
func FetchReplies(ctx context.Context, parentRef bson.ObjectID) ([]*models.CommentNode, error) {
	replies, err := findComments(ctx, bson.M{"parentComment": parentRef})
	if err != nil {
		return nil, err
	}

	names, err := commentAuthorNames(ctx, replies)
	if err != nil {
		return nil, err
	}

	return models.BuildCommentList(replies, names), nil
}

// FetchCommentByID is the exact lookup used to validate parent linking on
// write and to serve the single-comment query mode.
func FetchCommentByID(ctx context.Context, id bson.ObjectID) (*models.Comment, error) {
	var comment models.Comment
	err := GetCollection(commentsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&comment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find comment by id: %w", err)
	}
	return &comment, nil
}

// FetchCommentNode loads one comment as a response node with its author
// resolved, for the single-comment query mode.
func FetchCommentNode(ctx context.Context, id bson.ObjectID) ([]*models.CommentNode, error) {
	comment, err := FetchCommentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	group := []models.Comment{*comment}
	names, err := commentAuthorNames(ctx, group)
	if err != nil {
		return nil, err
	}
	return models.BuildCommentList(group, names), nil
}

// CreateComment inserts a new comment.
func CreateComment(ctx context.Context, comment *models.Comment) error {
	if _, err := GetCollection(commentsCollection).InsertOne(ctx, comment); err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}
