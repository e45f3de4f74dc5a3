package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/sayamjn/SHG/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateGroup creates a test group with the given code and password. The
// password is bcrypt-hashed at the minimum cost to keep tests fast.
func (f *Fixtures) CreateGroup(ctx context.Context, name, code, password string) models.Group {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("failed to hash test password: %v", err)
	}

	now := time.Now().UTC()
	g := models.Group{
		ID:            primitive.NewObjectID(),
		Name:          name,
		Code:          code,
		CodeCI:        text.Fold(code),
		PasswordHash:  string(hash),
		Address:       "Test Address",
		Country:       "India",
		State:         "Maharashtra",
		District:      "Pune",
		Taluka:        "Haveli",
		ContactPerson: "Test Contact",
		Phone:         "9999999999",
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := f.db.Collection("groups").InsertOne(ctx, g); err != nil {
		f.t.Fatalf("failed to create test group: %v", err)
	}
	return g
}

// CreateMember creates a test member in the given group and bumps the
// group's member counter the way the registration path does.
func (f *Fixtures) CreateMember(ctx context.Context, groupID primitive.ObjectID, name string) models.Member {
	f.t.Helper()

	now := time.Now().UTC()
	m := models.Member{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Address:   "Test Address",
		Age:       30,
		Gender:    models.GenderFemale,
		Phone:     "8888888888",
		Photo:     models.DefaultPhoto,
		Country:   "India",
		State:     "Maharashtra",
		City:      "Pune",
		District:  "Pune",
		Taluka:    "Haveli",
		GroupID:   groupID,
		Role:      models.RoleMember,
		Active:    true,
		JoinDate:  now,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("failed to create test member: %v", err)
	}
	if _, err := f.db.Collection("groups").UpdateByID(ctx, groupID,
		bson.M{"$inc": bson.M{"total_members": int64(1)}}); err != nil {
		f.t.Fatalf("failed to bump member count: %v", err)
	}
	return m
}

// CreateScheme creates a test scheme with the given title and tags.
func (f *Fixtures) CreateScheme(ctx context.Context, title string, tags ...string) models.Scheme {
	f.t.Helper()

	if tags == nil {
		tags = []string{}
	}
	now := time.Now().UTC()
	sc := models.Scheme{
		ID:                 primitive.NewObjectID(),
		Title:              title,
		Description:        "Test description for " + title,
		Department:         "Test Department",
		Eligibility:        "Registered SHG members",
		Benefits:           "Test benefits",
		ApplicationProcess: "Apply at the district office",
		Documents:          []models.SchemeDocument{},
		Tags:               tags,
		Active:             true,
		LastUpdated:        now,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if _, err := f.db.Collection("schemes").InsertOne(ctx, sc); err != nil {
		f.t.Fatalf("failed to create test scheme: %v", err)
	}
	return sc
}
