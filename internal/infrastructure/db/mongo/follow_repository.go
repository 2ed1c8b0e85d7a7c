package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/boardhouse/board-service/internal/core/domain"
)

const collectionFollows = "follows"

// FollowRepository stores the follow graph as one document per directed edge.
// A unique compound index on (follower, followee) makes duplicate follows a
// duplicate-key error.
type FollowRepository struct {
	col *mongo.Collection
}

func NewFollowRepository(db *mongo.Database) *FollowRepository {
	return &FollowRepository{col: db.Collection(collectionFollows)}
}

func (r *FollowRepository) Create(ctx context.Context, f *domain.Follow) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, f)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAlreadyFollowed
		}
		return err
	}
	return nil
}

func (r *FollowRepository) Delete(ctx context.Context, follower, followee string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"follower": follower, "followee": followee})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrFollowNotFound
	}
	return nil
}

// ListFollowing returns the usernames the given user follows.
func (r *FollowRepository) ListFollowing(ctx context.Context, follower string) ([]string, error) {
	return r.listEdge(ctx, bson.M{"follower": follower}, "followee")
}

// ListFollowers returns the usernames following the given user.
func (r *FollowRepository) ListFollowers(ctx context.Context, followee string) ([]string, error) {
	return r.listEdge(ctx, bson.M{"followee": followee}, "follower")
}

func (r *FollowRepository) listEdge(ctx context.Context, query bson.M, field string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: field, Value: 1}})
	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var names []string
	for cursor.Next(ctx) {
		var f domain.Follow
		if err := cursor.Decode(&f); err != nil {
			return nil, err
		}
		if field == "followee" {
			names = append(names, f.Followee)
		} else {
			names = append(names, f.Follower)
		}
	}
	return names, cursor.Err()
}

// EnsureIndexes creates the indexes the board collections rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	unique := options.Index().SetUnique(true)

	if _, err := db.Collection(userCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: unique,
	}); err != nil {
		return err
	}

	if _, err := db.Collection(collectionFollows).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "follower", Value: 1}, {Key: "followee", Value: 1}},
		Options: unique,
	}); err != nil {
		return err
	}

	_, err := db.Collection(collectionComments).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "post_id", Value: 1}},
	})
	return err
}
