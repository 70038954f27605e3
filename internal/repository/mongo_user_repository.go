package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoUserRepository struct {
	collection *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{
		collection: db.Collection("users"),
	}
}

func (m *MongoUserRepository) GetUser(ctx context.Context, id string) (*domain.User, error) {
	var doc userDocument
	err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.Unavailable("failed to get user", err)
	}
	return doc.toDomain()
}

func (m *MongoUserRepository) UpdatePreferences(ctx context.Context, id string, prefs domain.Preferences) (*domain.User, error) {
	prefsDoc, err := toPreferencesDocument(prefs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode preferences: %w", err)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{"preferences": prefsDoc}}

	var doc userDocument
	err = m.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.Unavailable("failed to update preferences", err)
	}
	return doc.toDomain()
}

func (m *MongoUserRepository) EnsureUser(ctx context.Context, user domain.User) error {
	doc, err := toUserDocument(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}

	update := bson.M{"$setOnInsert": bson.M{
		"name":        doc.Name,
		"preferences": doc.Preferences,
		"wishlist":    doc.Wishlist,
	}}
	_, err = m.collection.UpdateOne(ctx, bson.M{"_id": user.ID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return domain.Unavailable("failed to ensure user", err)
	}
	return nil
}
