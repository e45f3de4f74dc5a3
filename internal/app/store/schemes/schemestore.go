// internal/app/store/schemes/schemestore.go
package schemestore

import (
	"context"
	"time"

	"github.com/sayamjn/SHG/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("schemes")}
}

// EnsureIndexes creates the text index backing free-text scheme search and
// the department/tags filter indexes.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "title", Value: "text"},
				{Key: "description", Value: "text"},
				{Key: "eligibility", Value: "text"},
				{Key: "tags", Value: "text"},
			},
			Options: options.Index().SetName("idx_schemes_text"),
		},
		{
			Keys:    bson.D{{Key: "department", Value: 1}},
			Options: options.Index().SetName("idx_schemes_department"),
		},
		{
			Keys:    bson.D{{Key: "tags", Value: 1}},
			Options: options.Index().SetName("idx_schemes_tags"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Scheme, error) {
	var sc models.Scheme
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&sc); err != nil {
		return models.Scheme{}, err
	}
	return sc, nil
}

func (s *Store) Create(ctx context.Context, sc models.Scheme) (models.Scheme, error) {
	now := time.Now().UTC()
	sc.ID = primitive.NewObjectID()
	sc.Active = true
	if sc.Documents == nil {
		sc.Documents = []models.SchemeDocument{}
	}
	if sc.Tags == nil {
		sc.Tags = []string{}
	}
	sc.LastUpdated = now
	sc.CreatedAt = now
	sc.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, sc); err != nil {
		return models.Scheme{}, err
	}
	return sc, nil
}

// Update rewrites the scheme's content fields and refreshes last_updated.
// Documents are replaced wholesale: callers pass the full resulting list.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, sc models.Scheme) error {
	now := time.Now().UTC()
	set := bson.M{
		"title":               sc.Title,
		"description":         sc.Description,
		"department":          sc.Department,
		"eligibility":         sc.Eligibility,
		"benefits":            sc.Benefits,
		"application_process": sc.ApplicationProcess,
		"contact_info":        sc.ContactInfo,
		"website":             sc.Website,
		"tags":                sc.Tags,
		"documents":           sc.Documents,
		"active":              sc.Active,
		"last_updated":        now,
		"updated_at":          now,
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

// Delete removes a scheme. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// SearchFilter narrows the public scheme listing. Zero values mean "no
// filter". Query uses the collection text index, so matching follows Mongo
// text search semantics (stemming, case-insensitive).
type SearchFilter struct {
	Query      string
	Department string
	Tags       []string
}

// Search returns one page of schemes matching the filter plus the total
// match count. Text-searched results come back in relevance order; plain
// listings are newest first.
func (s *Store) Search(ctx context.Context, f SearchFilter, page, limit int) ([]models.Scheme, int64, error) {
	filter := bson.M{}
	if f.Query != "" {
		filter["$text"] = bson.M{"$search": f.Query}
	}
	if f.Department != "" {
		filter["department"] = f.Department
	}
	if len(f.Tags) > 0 {
		filter["tags"] = bson.M{"$in": f.Tags}
	}

	total, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	if f.Query != "" {
		opts.SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}})
		opts.SetSort(bson.D{{Key: "score", Value: bson.M{"$meta": "textScore"}}})
	} else {
		opts.SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})
	}

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var out []models.Scheme
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
