package mongo

import (
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"

	"github.com/Debian1107/Reviewed/internal/config"
	"github.com/Debian1107/Reviewed/pkg/global"
	"github.com/Debian1107/Reviewed/pkg/logger"
)

// Store error taxonomy. Handlers map these onto HTTP statuses.
var (
	ErrNotFound         = errors.New("entity not found")
	ErrInvalidReference = errors.New("identifier does not resolve to the expected entity")
	ErrConflict         = errors.New("entity already exists")
)

var client *mongo.Client

// InitMongoDB connects the shared client and verifies the connection.
func InitMongoDB() error {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	clientOptions := options.Client().ApplyURI(config.C.MongoURI).SetServerAPIOptions(serverAPI)

	c, err := mongo.Connect(clientOptions)
	if err != nil {
		return err
	}

	ctx, cancel := global.GetDefaultTimer()
	defer cancel()
	if err := c.Ping(ctx, nil); err != nil {
		return err
	}

	client = c
	logger.L().Info("connected to MongoDB", zap.String("database", config.C.MongoDatabase))
	return nil
}

func GetMongoClient() *mongo.Client {
	return client
}

func GetDatabase() *mongo.Database {
	return client.Database(config.C.MongoDatabase)
}

func GetCollection(collectionName string) *mongo.Collection {
	return GetDatabase().Collection(collectionName)
}
