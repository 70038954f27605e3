package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoCartRepository struct {
	collection *mongo.Collection
}

func NewMongoCartRepository(db *mongo.Database) *MongoCartRepository {
	return &MongoCartRepository{
		collection: db.Collection("carts"),
	}
}

func (m *MongoCartRepository) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	var doc cartDocument

	filter := bson.M{"user_id": userID}
	err := m.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCartNotFound
		}
		return nil, domain.Unavailable("failed to get cart", err)
	}

	cart, err := doc.toDomain()
	if err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return cart, nil
}

func (m *MongoCartRepository) SaveCart(ctx context.Context, cart *domain.Cart) error {
	now := time.Now().UTC()

	doc, err := toCartDocument(cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now
	doc.Version = cart.Version + 1

	if cart.Version == 0 {
		// The unique index on user_id turns a racing insert into a conflict.
		if _, err := m.collection.InsertOne(ctx, doc); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return domain.ErrVersionConflict
			}
			return domain.Unavailable("failed to insert cart", err)
		}
	} else {
		filter := bson.M{"user_id": cart.UserID, "version": cart.Version}
		result, err := m.collection.ReplaceOne(ctx, filter, doc)
		if err != nil {
			return domain.Unavailable("failed to replace cart", err)
		}
		if result.MatchedCount == 0 {
			return domain.ErrVersionConflict
		}
	}

	cart.Version = doc.Version
	cart.CreatedAt = doc.CreatedAt
	cart.UpdatedAt = doc.UpdatedAt
	return nil
}

func (m *MongoCartRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "version", Value: 1}},
		},
	}

	_, err := m.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}
