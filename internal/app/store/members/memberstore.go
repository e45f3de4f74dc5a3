// internal/app/store/members/memberstore.go
package memberstore

import (
	"context"
	"regexp"
	"time"

	groupstore "github.com/sayamjn/SHG/internal/app/store/groups"
	"github.com/sayamjn/SHG/internal/app/system/txn"
	"github.com/sayamjn/SHG/internal/domain/models"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type Store struct {
	c      *mongo.Collection
	groups *groupstore.Store
	db     *mongo.Database
	log    *zap.Logger
}

func New(db *mongo.Database, groups *groupstore.Store, logger *zap.Logger) *Store {
	return &Store{c: db.Collection("users"), groups: groups, db: db, log: logger}
}

// EnsureIndexes creates the group scoping index and the sort index for
// member listings.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "group_id", Value: 1}, {Key: "name_ci", Value: 1}},
			Options: options.Index().SetName("idx_users_group_name"),
		},
		{
			Keys:    bson.D{{Key: "group_id", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("idx_users_group_created"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Member, error) {
	var m models.Member
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		return models.Member{}, err
	}
	return m, nil
}

// Create inserts the member and bumps the owning group's member count in the
// same transaction. On deployments without transactions the insert happens
// first, so a crash between the two writes leaves the count low rather than
// phantom-high.
func (s *Store) Create(ctx context.Context, m models.Member) (models.Member, error) {
	now := time.Now().UTC()
	m.ID = primitive.NewObjectID()
	m.NameCI = text.Fold(m.Name)
	if m.Photo == "" {
		m.Photo = models.DefaultPhoto
	}
	if m.Role == "" {
		m.Role = models.RoleMember
	}
	if m.JoinDate.IsZero() {
		m.JoinDate = now
	}
	m.CreatedAt = now
	m.UpdatedAt = now

	err := txn.Run(ctx, s.db, s.log, func(ctx context.Context) error {
		if _, err := s.c.InsertOne(ctx, m); err != nil {
			return err
		}
		return s.groups.IncMembers(ctx, m.GroupID, 1)
	})
	if err != nil {
		return models.Member{}, err
	}
	return m, nil
}

// Update rewrites the member's editable fields. The group binding is fixed
// at registration and cannot be changed here.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, m models.Member) error {
	set := bson.M{
		"name":       m.Name,
		"name_ci":    text.Fold(m.Name),
		"address":    m.Address,
		"age":        m.Age,
		"gender":     m.Gender,
		"phone":      m.Phone,
		"country":    m.Country,
		"state":      m.State,
		"city":       m.City,
		"district":   m.District,
		"taluka":     m.Taluka,
		"role":       m.Role,
		"updated_at": time.Now().UTC(),
	}
	if m.Photo != "" {
		set["photo"] = m.Photo
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

// Delete removes the member and decrements the owning group's member count.
// Delete-then-decrement ordering mirrors Create: without a transaction a
// crash can only leave the count high by one, never a phantom member.
func (s *Store) Delete(ctx context.Context, m models.Member) error {
	return txn.Run(ctx, s.db, s.log, func(ctx context.Context) error {
		res, err := s.c.DeleteOne(ctx, bson.M{"_id": m.ID})
		if err != nil {
			return err
		}
		if res.DeletedCount == 0 {
			return mongo.ErrNoDocuments
		}
		return s.groups.IncMembers(ctx, m.GroupID, -1)
	})
}

// ListFilter narrows a group's member listing. Zero values mean "no filter".
type ListFilter struct {
	Name   string // substring match on the member name, case-insensitive
	Gender string
	Role   string
}

// ListOptions controls sorting and pagination of member listings.
type ListOptions struct {
	SortBy   string // "name", "age", "joinDate" or "" for insertion order
	SortDesc bool
	Page     int
	Limit    int
}

var sortFields = map[string]string{
	"name":     "name_ci",
	"age":      "age",
	"joinDate": "join_date",
}

// ListByGroup returns one page of a group's members plus the total count of
// members matching the filter. Name sorting uses a locale collation so that
// accented names order the way a person would expect.
func (s *Store) ListByGroup(ctx context.Context, groupID primitive.ObjectID, f ListFilter, o ListOptions) ([]models.Member, int64, error) {
	filter := bson.M{"group_id": groupID}
	if f.Name != "" {
		filter["name"] = bson.M{"$regex": regexp.QuoteMeta(f.Name), "$options": "i"}
	}
	if f.Gender != "" {
		filter["gender"] = f.Gender
	}
	if f.Role != "" {
		filter["role"] = f.Role
	}

	total, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	if o.Page < 1 {
		o.Page = 1
	}
	if o.Limit < 1 {
		o.Limit = 10
	}

	dir := 1
	if o.SortDesc {
		dir = -1
	}
	sort := bson.D{{Key: "_id", Value: 1}}
	if field, ok := sortFields[o.SortBy]; ok {
		sort = bson.D{{Key: field, Value: dir}, {Key: "_id", Value: 1}}
	}

	opts := options.Find().
		SetSort(sort).
		SetSkip(int64((o.Page - 1) * o.Limit)).
		SetLimit(int64(o.Limit))
	if o.SortBy == "name" {
		opts.SetCollation(&options.Collation{Locale: "en", Strength: 2})
	}

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var out []models.Member
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// CountByGroup returns the number of members registered under a group,
// straight from the users collection rather than the denormalized counter.
func (s *Store) CountByGroup(ctx context.Context, groupID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"group_id": groupID})
}
