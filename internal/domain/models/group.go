// internal/domain/models/group.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group represents a registered Self-Help Group.
//
// NOTE:
//   - Code is the human-chosen unique identifier groups use to log in and
//     that the public uses to look a group up. CodeCI is the case-folded
//     shadow field backing the unique index and all lookups.
//   - PasswordHash is a bcrypt hash. It is never serialized to JSON, so
//     group documents can be returned from the API as-is.
//   - TotalMembers is a denormalized counter kept in step with the members
//     collection via $inc updates; it is never read-modify-written.
type Group struct {
	ID     primitive.ObjectID `bson:"_id" json:"id"`
	Name   string             `bson:"name" json:"name"`
	Code   string             `bson:"code" json:"code"`
	CodeCI string             `bson:"code_ci" json:"-"`

	PasswordHash string `bson:"password_hash" json:"-"`

	Address  string `bson:"address" json:"address"`
	Country  string `bson:"country" json:"country"`
	State    string `bson:"state" json:"state"`
	District string `bson:"district" json:"district"`
	Taluka   string `bson:"taluka" json:"taluka"`
	Ward     string `bson:"ward,omitempty" json:"ward,omitempty"`
	Village  string `bson:"village,omitempty" json:"village,omitempty"`

	ContactPerson string `bson:"contact_person" json:"contactPerson"`
	Phone         string `bson:"phone" json:"phone"`
	Email         string `bson:"email,omitempty" json:"email,omitempty"`

	FormationDate time.Time `bson:"formation_date" json:"formationDate"`
	TotalMembers  int64     `bson:"total_members" json:"totalMembers"`
	Active        bool      `bson:"active" json:"active"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
