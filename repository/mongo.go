package repository

import (
	"context"
	"fmt"
	"time"

	"drivehub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoNodeRepository implements NodeRepository on a MongoDB collection.
type MongoNodeRepository struct {
	collection *mongo.Collection
}

func NewMongoNodeRepository(db *mongo.Database) *MongoNodeRepository {
	return &MongoNodeRepository{collection: db.Collection("nodes")}
}

func (r *MongoNodeRepository) Create(ctx context.Context, node *models.Node) error {
	if node.ID.IsZero() {
		node.ID = primitive.NewObjectID()
	}
	if node.SharedWith == nil {
		node.SharedWith = []models.ShareEntry{}
	}
	_, err := r.collection.InsertOne(ctx, node)
	if err != nil {
		return fmt.Errorf("failed to insert node: %v", err)
	}
	return nil
}

func (r *MongoNodeRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.Node, error) {
	var node models.Node
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&node)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find node: %v", err)
	}
	return &node, nil
}

func (r *MongoNodeRepository) ListChildren(ctx context.Context, parent *primitive.ObjectID, visibleTo primitive.ObjectID, activeOnly bool) ([]models.Node, error) {
	filter := bson.M{}
	if parent != nil {
		filter["parent_id"] = *parent
	} else {
		filter["parent_id"] = bson.M{"$exists": false}
	}
	if !visibleTo.IsZero() {
		filter["$or"] = []bson.M{
			{"owner_id": visibleTo},
			{"shared_with.user_id": visibleTo},
		}
	}
	if activeOnly {
		filter["is_deleted"] = false
	}

	cursor, err := r.collection.Find(ctx, filter,
		options.Find().SetSort(bson.D{
			{Key: "is_folder", Value: -1},
			{Key: "name", Value: 1},
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list children: %v", err)
	}
	defer cursor.Close(ctx)

	var nodes []models.Node
	if err = cursor.All(ctx, &nodes); err != nil {
		return nil, fmt.Errorf("failed to decode children: %v", err)
	}
	return nodes, nil
}

func (r *MongoNodeRepository) Rename(ctx context.Context, id primitive.ObjectID, name string) error {
	return r.patch(ctx, id, bson.M{"$set": bson.M{"name": name, "updated_at": time.Now()}})
}

func (r *MongoNodeRepository) SetStarred(ctx context.Context, id primitive.ObjectID, starred bool) error {
	return r.patch(ctx, id, bson.M{"$set": bson.M{"starred": starred, "updated_at": time.Now()}})
}

func (r *MongoNodeRepository) SetShares(ctx context.Context, id primitive.ObjectID, shares []models.ShareEntry) error {
	if shares == nil {
		shares = []models.ShareEntry{}
	}
	return r.patch(ctx, id, bson.M{"$set": bson.M{"shared_with": shares, "updated_at": time.Now()}})
}

func (r *MongoNodeRepository) SetSummary(ctx context.Context, id primitive.ObjectID, summary *models.Summary) error {
	return r.patch(ctx, id, bson.M{"$set": bson.M{"summary": summary, "updated_at": time.Now()}})
}

func (r *MongoNodeRepository) MarkDeleted(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	return r.patch(ctx, id, bson.M{"$set": bson.M{
		"is_deleted": true,
		"deleted_at": at,
		"updated_at": time.Now(),
	}})
}

func (r *MongoNodeRepository) ClearDeleted(ctx context.Context, id primitive.ObjectID) error {
	return r.patch(ctx, id, bson.M{
		"$set":   bson.M{"is_deleted": false, "updated_at": time.Now()},
		"$unset": bson.M{"deleted_at": ""},
	})
}

func (r *MongoNodeRepository) HardDelete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete node: %v", err)
	}
	return nil
}

func (r *MongoNodeRepository) FindByOwner(ctx context.Context, owner primitive.ObjectID, deleted bool) ([]models.Node, error) {
	return r.find(ctx, bson.M{"owner_id": owner, "is_deleted": deleted})
}

func (r *MongoNodeRepository) FindSharedWith(ctx context.Context, user primitive.ObjectID) ([]models.Node, error) {
	return r.find(ctx, bson.M{"shared_with.user_id": user, "is_deleted": false})
}

func (r *MongoNodeRepository) FindDeletedBefore(ctx context.Context, cutoff time.Time) ([]models.Node, error) {
	return r.find(ctx, bson.M{
		"is_deleted": true,
		"deleted_at": bson.M{"$lte": cutoff},
	})
}

func (r *MongoNodeRepository) patch(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update node: %v", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoNodeRepository) find(ctx context.Context, filter bson.M) ([]models.Node, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query nodes: %v", err)
	}
	defer cursor.Close(ctx)

	var nodes []models.Node
	if err = cursor.All(ctx, &nodes); err != nil {
		return nil, fmt.Errorf("failed to decode nodes: %v", err)
	}
	return nodes, nil
}

// MongoUserRepository implements UserRepository on a MongoDB collection.
type MongoUserRepository struct {
	collection *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{collection: db.Collection("users")}
}

func (r *MongoUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		return fmt.Errorf("failed to insert user: %v", err)
	}
	return nil
}

func (r *MongoUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %v", err)
	}
	return &user, nil
}

func (r *MongoUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %v", err)
	}
	return &user, nil
}
