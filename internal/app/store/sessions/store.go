// internal/app/store/sessions/store.go
package sessions

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNoSession is returned by Resolve when the token is unknown or expired.
var ErrNoSession = errors.New("session not found")

// DefaultTTL is how long a session lives when no TTL is configured.
const DefaultTTL = 24 * time.Hour

// Session binds an opaque bearer token to an authenticated group.
//
// Only a SHA-256 digest of the token is stored; the raw token is handed to
// the client once at login and cannot be recovered from the database.
type Session struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	TokenHash string             `bson:"token_hash"`
	GroupID   primitive.ObjectID `bson:"group_id"`
	CreatedAt time.Time          `bson:"created_at"`
	ExpiresAt time.Time          `bson:"expires_at"`
}

// Store manages login sessions.
type Store struct {
	c   *mongo.Collection
	ttl time.Duration
}

// New creates a sessions Store. A non-positive ttl falls back to DefaultTTL.
func New(db *mongo.Database, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{c: db.Collection("sessions"), ttl: ttl}
}

// EnsureIndexes creates the token lookup index and the TTL index that lets
// the server reap expired sessions on its own.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "token_hash", Value: 1}},
			Options: options.Index().SetName("idx_sessions_token").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetName("idx_sessions_expiry").SetExpireAfterSeconds(0),
		},
		{
			Keys:    bson.D{{Key: "group_id", Value: 1}},
			Options: options.Index().SetName("idx_sessions_group"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Create issues a new session for the group and returns the raw token.
func (s *Store) Create(ctx context.Context, groupID primitive.ObjectID) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	token := hex.EncodeToString(raw)

	now := time.Now().UTC()
	sess := Session{
		ID:        primitive.NewObjectID(),
		TokenHash: hashToken(token),
		GroupID:   groupID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if _, err := s.c.InsertOne(ctx, sess); err != nil {
		return "", err
	}
	return token, nil
}

// Resolve returns the group bound to token, or ErrNoSession when the token
// is unknown or past its expiry. TTL reaping is not instantaneous, so the
// expiry is checked here as well.
func (s *Store) Resolve(ctx context.Context, token string) (primitive.ObjectID, error) {
	var sess Session
	err := s.c.FindOne(ctx, bson.M{"token_hash": hashToken(token)}).Decode(&sess)
	if err == mongo.ErrNoDocuments {
		return primitive.NilObjectID, ErrNoSession
	}
	if err != nil {
		return primitive.NilObjectID, err
	}
	if time.Now().UTC().After(sess.ExpiresAt) {
		return primitive.NilObjectID, ErrNoSession
	}
	return sess.GroupID, nil
}

// Delete invalidates token. Deleting an unknown token is a no-op, which
// makes logout idempotent.
func (s *Store) Delete(ctx context.Context, token string) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"token_hash": hashToken(token)})
	return err
}

// DeleteByGroup invalidates every session belonging to a group. Used when a
// group changes its password. Returns the number of sessions removed.
func (s *Store) DeleteByGroup(ctx context.Context, groupID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"group_id": groupID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
