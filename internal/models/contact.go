package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contact is an emergency contact entitled to receive SOS alerts.
type Contact struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name" validate:"required,min=2"`
	PhoneNumber  string             `json:"phone_number" bson:"phone_number" validate:"required,min=10"`
	Relationship string             `json:"relationship" bson:"relationship" validate:"required"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

// RelationshipSuggestions backs the contact form's relationship picker.
// Free text is still accepted.
var RelationshipSuggestions = []string{
	"Parent",
	"Sibling",
	"Spouse",
	"Partner",
	"Friend",
	"Relative",
	"Colleague",
	"Other",
}
