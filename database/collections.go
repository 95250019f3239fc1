package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names as constants to prevent typos
const (
	UsersCollection = "users"
	NodesCollection = "nodes"
)

// EnsureIndexes creates the indexes the query paths depend on.
func EnsureIndexes() error {
	if database == nil {
		return fmt.Errorf("database not initialized")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	nodeIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "is_deleted", Value: 1}}},
		{Keys: bson.D{{Key: "parent_id", Value: 1}}},
		{Keys: bson.D{{Key: "shared_with.user_id", Value: 1}}},
		{Keys: bson.D{{Key: "deleted_at", Value: 1}}},
	}
	if _, err := database.Collection(NodesCollection).Indexes().CreateMany(ctx, nodeIndexes); err != nil {
		return fmt.Errorf("failed to create node indexes: %v", err)
	}

	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := database.Collection(UsersCollection).Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("failed to create user indexes: %v", err)
	}

	return nil
}
