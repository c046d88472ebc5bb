package mongo

import (
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"

	"github.com/Debian1107/Reviewed/pkg/global"
	"github.com/Debian1107/Reviewed/pkg/logger"
)

type IndexConfig struct {
	CollectionName string
	IndexModel     mongo.IndexModel
}

var requiredIndexes = []IndexConfig{
	// Items: slug is the public unique identifier.
	{
		CollectionName: "items",
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_item_slug_unique"),
		},
	},
	{
		CollectionName: "items",
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index().SetName("idx_item_category"),
		},
	},

	// Users: one account per email.
	{
		CollectionName: "users",
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_user_email_unique"),
		},
	},

	// Reviews: item listing, newest first.
	{
		CollectionName: "reviews",
		IndexModel: mongo.IndexModel{
			Keys: bson.D{
				{Key: "itemId", Value: 1},
				{Key: "createdAt", Value: -1},
			},
			Options: options.Index().SetName("idx_item_reviews"),
		},
	},
	{
		CollectionName: "reviews",
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "user", Value: 1}},
			Options: options.Index().SetName("idx_user_reviews"),
		},
	},

	// Comments: tree queries filter by item and parent, sorted by recency.
	{
		CollectionName: "comments",
		IndexModel: mongo.IndexModel{
			Keys: bson.D{
				{Key: "item", Value: 1},
				{Key: "parentComment", Value: 1},
				{Key: "createdAt", Value: -1},
			},
			Options: options.Index().SetName("idx_comment_tree"),
		},
	},
	{
		CollectionName: "comments",
		IndexModel: mongo.IndexModel{
			Keys: bson.D{
				{Key: "parentComment", Value: 1},
				{Key: "createdAt", Value: -1},
			},
			Options: options.Index().SetName("idx_comment_replies"),
		},
	},

	// Likes: the unique (user, kind, target) index is what makes the toggle
	// safe under concurrent identical requests.
	{
		CollectionName: "likes",
		IndexModel: mongo.IndexModel{
			Keys: bson.D{
				{Key: "user", Value: 1},
				{Key: "kind", Value: 1},
				{Key: "target", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("idx_like_unique"),
		},
	},
	{
		CollectionName: "likes",
		IndexModel: mongo.IndexModel{
			Keys: bson.D{
				{Key: "kind", Value: 1},
				{Key: "target", Value: 1},
			},
			Options: options.Index().SetName("idx_like_target"),
		},
	},
}

func EnsureIndexes() error {
	log := logger.L().Named("indexes")

	for _, idxConfig := range requiredIndexes {
		collection := GetCollection(idxConfig.CollectionName)
		ctx, cancel := global.GetDefaultTimer()

		indexName, err := collection.Indexes().CreateOne(ctx, idxConfig.IndexModel)
		cancel()
		if err != nil {
			log.Error("failed to create index",
				zap.String("collection", idxConfig.CollectionName), zap.Error(err))
			return err
		}

		log.Debug("ensured index",
			zap.String("index", indexName), zap.String("collection", idxConfig.CollectionName))
	}

	return nil
}
