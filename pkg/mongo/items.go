package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/Debian1107/Reviewed/pkg/models"
)

const itemsCollection = "items"

// FindItemBySlug resolves a public item id (slug) to the stored item.
func FindItemBySlug(ctx context.Context, slug string) (*models.Item, error) {
	var item models.Item
	err := GetCollection(itemsCollection).FindOne(ctx, bson.M{"id": slug}).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find item by slug: %w", err)
	}
	return &item, nil
}

// ListItems returns every item, optionally filtered by a case-insensitive
// search over name and description.
func ListItems(ctx context.Context, search string) ([]models.Item, error) {
	filter := bson.M{}
	if search != "" {
		filter = bson.M{"$or": bson.A{
			bson.M{"name": bson.M{"$regex": search, "$options": "i"}},
			bson.M{"description": bson.M{"$regex": search, "$options": "i"}},
		}}
	}

	cursor, err := GetCollection(itemsCollection).Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer cursor.Close(ctx)

	items := []models.Item{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return items, nil
}

// CreateItem inserts a suggested item. The unique slug index turns a
// duplicate suggestion into ErrConflict.
func CreateItem(ctx context.Context, item *models.Item) error {
	_, err := GetCollection(itemsCollection).InsertOne(ctx, item)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConflict
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}
