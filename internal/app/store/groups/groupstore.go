// internal/app/store/groups/groupstore.go
package groupstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sayamjn/SHG/internal/app/system/auth"
	"github.com/sayamjn/SHG/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var ErrDuplicateCode = errors.New("a group with this code already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("groups")}
}

// EnsureIndexes creates the unique index on the folded group code, which is
// what makes codes case-insensitively unique across the directory.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "code_ci", Value: 1}},
			Options: options.Index().SetName("idx_groups_code_ci").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "district", Value: 1}},
			Options: options.Index().SetName("idx_groups_district"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

// GetByCode looks a group up by its registration code, ignoring case.
func (s *Store) GetByCode(ctx context.Context, code string) (models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"code_ci": text.Fold(code)}).Decode(&g); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

// List returns all groups ordered by name. The directory is small (one row
// per registered group), so no pagination here.
func (s *Store) List(ctx context.Context) ([]models.Group, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Group
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create registers a new group. The caller hashes the password; this layer
// never sees plaintext credentials.
func (s *Store) Create(ctx context.Context, g models.Group) (models.Group, error) {
	now := time.Now().UTC()
	g.ID = primitive.NewObjectID()
	g.CodeCI = text.Fold(g.Code)
	g.Active = true
	g.CreatedAt = now
	g.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, g)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Group{}, ErrDuplicateCode
		}
		return models.Group{}, err
	}
	return g, nil
}

// InfoUpdate carries the fields a group may change about itself. The
// registration code is immutable; empty strings leave a field untouched
// except for Email, which may be cleared.
type InfoUpdate struct {
	Name          string
	Address       string
	Country       string
	State         string
	District      string
	Taluka        string
	Ward          string
	Village       string
	ContactPerson string
	Phone         string
	Email         *string
	PasswordHash  string
}

func (s *Store) UpdateInfo(ctx context.Context, id primitive.ObjectID, u InfoUpdate) error {
	set := bson.M{
		"updated_at": time.Now().UTC(),
	}
	setIfPresent := func(key, val string) {
		if strings.TrimSpace(val) != "" {
			set[key] = val
		}
	}
	setIfPresent("name", u.Name)
	setIfPresent("address", u.Address)
	setIfPresent("country", u.Country)
	setIfPresent("state", u.State)
	setIfPresent("district", u.District)
	setIfPresent("taluka", u.Taluka)
	setIfPresent("ward", u.Ward)
	setIfPresent("village", u.Village)
	setIfPresent("contact_person", u.ContactPerson)
	setIfPresent("phone", u.Phone)
	setIfPresent("password_hash", u.PasswordHash)
	// Email can be cleared (set to empty).
	if u.Email != nil {
		set["email"] = *u.Email
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

// IncMembers adjusts the denormalized member count by delta. The update is
// a single atomic $inc, so concurrent registrations never lose a count.
func (s *Store) IncMembers(ctx context.Context, id primitive.ObjectID, delta int64) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{
		"$inc": bson.M{"total_members": delta},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// Count returns the number of registered groups.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// Fetcher adapts the store to the session middleware, which only needs the
// identity fields of the authenticated group.
type Fetcher struct {
	s *Store
}

func NewFetcher(db *mongo.Database) *Fetcher {
	return &Fetcher{s: New(db)}
}

func (f *Fetcher) FetchGroup(ctx context.Context, id primitive.ObjectID) (auth.SessionGroup, error) {
	g, err := f.s.GetByID(ctx, id)
	if err != nil {
		return auth.SessionGroup{}, err
	}
	if !g.Active {
		return auth.SessionGroup{}, mongo.ErrNoDocuments
	}
	return auth.SessionGroup{ID: g.ID, Code: g.Code, Name: g.Name}, nil
}
