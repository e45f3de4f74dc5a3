// internal/domain/models/member.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Member genders. Gender is a closed enum on the document.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// Genders is the canonical list used by validation and the collection schema.
var Genders = []string{GenderMale, GenderFemale, GenderOther}

// Member roles within a group.
const (
	RoleMember    = "member"
	RoleSecretary = "secretary"
	RolePresident = "president"
	RoleTreasurer = "treasurer"
)

// MemberRoles is the canonical list used by validation and the collection schema.
var MemberRoles = []string{RoleMember, RoleSecretary, RolePresident, RoleTreasurer}

// DefaultPhoto is the sentinel photo reference for members without an
// uploaded photo. Stored files are only deleted when the reference is
// something other than this sentinel.
const DefaultPhoto = "no-photo.jpg"

// Member represents a registered member of a Self-Help Group.
//
// Every member references exactly one existing group; GroupID is required
// and immutable after creation. Deleting a member decrements the owning
// group's total_members.
type Member struct {
	ID     primitive.ObjectID `bson:"_id" json:"id"`
	Name   string             `bson:"name" json:"name"`
	NameCI string             `bson:"name_ci" json:"-"`

	Address string `bson:"address" json:"address"`
	Age     int    `bson:"age" json:"age"`
	Gender  string `bson:"gender" json:"gender"`
	Phone   string `bson:"phone" json:"phone"`
	Photo   string `bson:"photo" json:"photo"`

	Country  string `bson:"country" json:"country"`
	State    string `bson:"state" json:"state"`
	City     string `bson:"city" json:"city"`
	District string `bson:"district" json:"district"`
	Taluka   string `bson:"taluka" json:"taluka"`
	Ward     string `bson:"ward,omitempty" json:"ward,omitempty"`
	Aadhaar  string `bson:"aadhaar,omitempty" json:"aadhaar,omitempty"`

	GroupID primitive.ObjectID `bson:"group_id" json:"group"`
	Role    string             `bson:"role" json:"role"`
	Active  bool               `bson:"active" json:"active"`

	JoinDate  time.Time `bson:"join_date" json:"joinDate"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// HasPhoto reports whether the member has an uploaded photo (anything other
// than the default sentinel).
func (m Member) HasPhoto() bool {
	return m.Photo != "" && m.Photo != DefaultPhoto
}
