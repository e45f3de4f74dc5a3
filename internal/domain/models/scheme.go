// internal/domain/models/scheme.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SchemeDocument is a file attached to a scheme: the original name shown to
// users, the stored file reference, and basic metadata.
type SchemeDocument struct {
	Name     string `bson:"name" json:"name"`
	File     string `bson:"file" json:"file"`
	FileType string `bson:"file_type" json:"fileType"`
	FileSize int64  `bson:"file_size" json:"fileSize"`
}

// Scheme is a public government scheme record. Schemes have no ownership
// relation to groups or members; they are browsed and searched by the
// public and maintained by authenticated callers.
type Scheme struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Department  string             `bson:"department" json:"department"`

	Eligibility        string `bson:"eligibility" json:"eligibility"`
	Benefits           string `bson:"benefits" json:"benefits"`
	ApplicationProcess string `bson:"application_process" json:"applicationProcess"`

	ContactInfo string `bson:"contact_info,omitempty" json:"contactInfo,omitempty"`
	Website     string `bson:"website,omitempty" json:"website,omitempty"`

	Documents []SchemeDocument `bson:"documents" json:"documents"`
	Tags      []string         `bson:"tags" json:"tags"`

	LastUpdated time.Time `bson:"last_updated" json:"lastUpdated"`
	Active      bool      `bson:"active" json:"active"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
