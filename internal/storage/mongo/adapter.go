// Package mongo implements the storage.Storage interface on MongoDB.
//
// Sessions and users are stored as documents with string hex _ids so the
// rest of the service never sees driver types. Soft deletion is a
// deleted_at timestamp; every read filters it out.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"uiforge/internal/common/errors"
	"uiforge/internal/storage"
)

// Config holds MongoDB connection settings
type Config struct {
	URI      string
	Database string
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if c.URI == "" {
		return fmt.Errorf("mongo URI is required")
	}
	if c.Database == "" {
		return fmt.Errorf("mongo database name is required")
	}
	return nil
}

// Adapter implements storage.Storage on MongoDB
type Adapter struct {
	client   *mongo.Client
	users    *mongo.Collection
	sessions *mongo.Collection
}

// NewAdapter connects to MongoDB, verifies the connection, and ensures the
// indexes the service relies on.
func NewAdapter(ctx context.Context, config *Config) (*Adapter, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid mongo config: %w", err)
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(config.URI))
	if err != nil {
		return nil, errors.ConnectionError("failed to connect to MongoDB", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, errors.ConnectionError("failed to ping MongoDB", err)
	}

	db := client.Database(config.Database)
	adapter := &Adapter{
		client:   client,
		users:    db.Collection("users"),
		sessions: db.Collection("sessions"),
	}

	if err := adapter.ensureIndexes(connectCtx); err != nil {
		return nil, errors.ConnectionError("failed to create indexes", err)
	}

	return adapter, nil
}

func (a *Adapter) ensureIndexes(ctx context.Context) error {
	_, err := a.users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return err
	}

	_, err = a.sessions.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "updated_at", Value: -1}},
		},
		{
			Keys:    bson.D{{Key: "deleted_at", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	})
	return err
}

// Close disconnects from MongoDB
func (a *Adapter) Close(ctx context.Context) error {
	return a.client.Disconnect(ctx)
}

// Health pings the server
func (a *Adapter) Health(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return a.client.Ping(pingCtx, nil)
}

// User methods

func (a *Adapter) CreateUser(ctx context.Context, username, email, password string) (*storage.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.InternalError("failed to hash password", err)
	}

	user := &storage.User{
		ID:           primitive.NewObjectID().Hex(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if _, err := a.users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, errors.ConflictError("username or email already in use")
		}
		return nil, errors.InternalError("failed to create user", err)
	}

	return user, nil
}

func (a *Adapter) GetUser(ctx context.Context, userID string) (*storage.User, error) {
	var user storage.User
	err := a.users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, errors.NotFoundError("user")
	}
	if err != nil {
		return nil, errors.InternalError("failed to get user", err)
	}
	return &user, nil
}

func (a *Adapter) GetUserByUsername(ctx context.Context, username string) (*storage.User, error) {
	var user storage.User
	err := a.users.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, errors.NotFoundError("user")
	}
	if err != nil {
		return nil, errors.InternalError("failed to get user", err)
	}
	return &user, nil
}

func (a *Adapter) ValidateUser(ctx context.Context, username, password string) (*storage.User, error) {
	user, err := a.GetUserByUsername(ctx, username)
	if err != nil {
		// Unknown username and wrong password must be indistinguishable
		return nil, errors.AuthError("invalid credentials")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, errors.AuthError("invalid credentials")
	}

	return user, nil
}

// Session methods

// liveSession is the filter shared by every session read and write.
func liveSession(id, userID string) bson.M {
	return bson.M{"_id": id, "user_id": userID, "deleted_at": nil}
}

func (a *Adapter) CreateSession(ctx context.Context, session *storage.Session) (*storage.Session, error) {
	now := time.Now().UTC()
	session.ID = primitive.NewObjectID().Hex()
	session.CreatedAt = now
	session.UpdatedAt = now
	if session.Title == "" {
		session.Title = storage.DefaultTitle
	}
	if session.Messages == nil {
		session.Messages = []storage.Message{}
	}
	if session.EditorState == nil {
		session.EditorState = map[string]interface{}{}
	}

	if _, err := a.sessions.InsertOne(ctx, session); err != nil {
		return nil, errors.InternalError("failed to create session", err)
	}
	return session, nil
}

func (a *Adapter) GetSession(ctx context.Context, id, userID string) (*storage.Session, error) {
	var session storage.Session
	err := a.sessions.FindOne(ctx, liveSession(id, userID)).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, errors.NotFoundError("session")
	}
	if err != nil {
		return nil, errors.InternalError("failed to get session", err)
	}
	return &session, nil
}

func (a *Adapter) ListSessions(ctx context.Context, userID string, limit, offset int) ([]*storage.Session, int, error) {
	filter := bson.M{"user_id": userID, "deleted_at": nil}

	total, err := a.sessions.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, errors.InternalError("failed to count sessions", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := a.sessions.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, errors.InternalError("failed to list sessions", err)
	}
	defer cursor.Close(ctx)

	sessions := []*storage.Session{}
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, 0, errors.InternalError("failed to decode sessions", err)
	}

	return sessions, int(total), nil
}

func (a *Adapter) UpdateSession(ctx context.Context, id, userID string, update *storage.SessionUpdate) (*storage.Session, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Code != nil {
		set["code"] = *update.Code
	}
	if update.EditorState != nil {
		set["editor_state"] = *update.EditorState
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var session storage.Session
	err := a.sessions.FindOneAndUpdate(ctx, liveSession(id, userID), bson.M{"$set": set}, opts).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, errors.NotFoundError("session")
	}
	if err != nil {
		return nil, errors.InternalError("failed to update session", err)
	}
	return &session, nil
}

func (a *Adapter) AppendMessage(ctx context.Context, id, userID string, msg *storage.Message) (*storage.Session, error) {
	if msg.ID == "" {
		msg.ID = primitive.NewObjectID().Hex()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	change := bson.M{
		"$push": bson.M{"messages": msg},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var session storage.Session
	err := a.sessions.FindOneAndUpdate(ctx, liveSession(id, userID), change, opts).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, errors.NotFoundError("session")
	}
	if err != nil {
		return nil, errors.InternalError("failed to append message", err)
	}
	return &session, nil
}

func (a *Adapter) DeleteSession(ctx context.Context, id, userID string) error {
	res, err := a.sessions.UpdateOne(ctx, liveSession(id, userID),
		bson.M{"$set": bson.M{"deleted_at": time.Now().UTC()}})
	if err != nil {
		return errors.InternalError("failed to delete session", err)
	}
	if res.MatchedCount == 0 {
		return errors.NotFoundError("session")
	}
	return nil
}

func (a *Adapter) PurgeDeletedSessions(ctx context.Context, before time.Time) (int64, error) {
	res, err := a.sessions.DeleteMany(ctx, bson.M{
		"deleted_at": bson.M{"$ne": nil, "$lt": before},
	})
	if err != nil {
		return 0, errors.InternalError("failed to purge deleted sessions", err)
	}
	return res.DeletedCount, nil
}
