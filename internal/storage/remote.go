package storage

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sebaxchen/lookSocial/internal/model"
)

const remoteOpTimeout = 5 * time.Second

// Remote talks to the shared document database. All methods are
// best-effort from the caller's point of view: stores catch errors and
// fall back to local-only state.
type Remote struct {
	client *mongo.Client
	db     *mongo.Database
	log    *log.Logger
}

func ConnectRemote(ctx context.Context, uri, dbName string, logger *log.Logger) (*Remote, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect remote: %w", err)
	}
	return &Remote{client: client, db: client.Database(dbName), log: logger}, nil
}

func (r *Remote) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *Remote) posts() *mongo.Collection    { return r.db.Collection("posts") }
func (r *Remote) comments() *mongo.Collection { return r.db.Collection("comments") }
func (r *Remote) requests() *mongo.Collection { return r.db.Collection("friendRequests") }
func (r *Remote) users() *mongo.Collection    { return r.db.Collection("users") }

func opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, remoteOpTimeout)
}

// --- posts ---

func (r *Remote) InsertPost(ctx context.Context, post model.Post) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	_, err := r.posts().InsertOne(ctx, post)
	return err
}

func (r *Remote) DeletePost(ctx context.Context, id string) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	_, err := r.posts().DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// AdjustPostCounter applies a signed delta to one of a post's counters
// (likes, reshares, views, comments).
func (r *Remote) AdjustPostCounter(ctx context.Context, id, field string, delta int) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	_, err := r.posts().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{field: delta}})
	return err
}

// ListPosts returns the whole collection ordered by creation time,
// newest first.
func (r *Remote) ListPosts(ctx context.Context) ([]model.Post, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	cursor, err := r.posts().Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var posts []model.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// WatchPosts blocks on a change stream and invokes onChange for every
// remote write until ctx is done or the stream fails.
func (r *Remote) WatchPosts(ctx context.Context, onChange func()) error {
	stream, err := r.posts().Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return err
	}
	defer stream.Close(ctx)
	for stream.Next(ctx) {
		onChange()
	}
	return stream.Err()
}

// --- comments ---

func (r *Remote) InsertComment(ctx context.Context, comment model.Comment) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	_, err := r.comments().InsertOne(ctx, comment)
	return err
}

// ListComments returns a post's comments ordered by creation time
// ascending.
func (r *Remote) ListComments(ctx context.Context, postID string) ([]model.Comment, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	cursor, err := r.comments().Find(ctx, bson.M{"postId": postID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var comments []model.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// --- friend requests ---

func (r *Remote) UpsertFriendRequest(ctx context.Context, req model.FriendRequest) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	update := bson.M{"$set": bson.M{
		"participants": req.Participants,
		"requesterId":  req.RequesterID,
		"status":       req.Status,
		"updatedAt":    req.UpdatedAt,
	}, "$setOnInsert": bson.M{"createdAt": req.CreatedAt}}
	_, err := r.requests().UpdateOne(ctx, bson.M{"_id": req.ID}, update, options.Update().SetUpsert(true))
	return err
}

func (r *Remote) UpdateFriendStatus(ctx context.Context, pairID string, status model.FriendRequestStatus, updatedAt time.Time) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	_, err := r.requests().UpdateOne(ctx, bson.M{"_id": pairID},
		bson.M{"$set": bson.M{"status": status, "updatedAt": updatedAt}})
	return err
}

// ListFriendRequests returns every request the given user participates in.
func (r *Remote) ListFriendRequests(ctx context.Context, userID string) ([]model.FriendRequest, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	cursor, err := r.requests().Find(ctx, bson.M{"participants": userID})
	if err != nil {
		return nil, err
	}
	var requests []model.FriendRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// --- users ---

func (r *Remote) UpsertUser(ctx context.Context, user model.User) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	update := bson.M{"$set": bson.M{
		"name":      user.Name,
		"email":     user.Email,
		"role":      user.Role,
		"createdAt": user.CreatedAt,
	}}
	_, err := r.users().UpdateOne(ctx, bson.M{"_id": user.ID}, update, options.Update().SetUpsert(true))
	return err
}

// ListUsers returns all registered users ordered by name.
func (r *Remote) ListUsers(ctx context.Context) ([]model.User, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	cursor, err := r.users().Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var users []model.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
