package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RecipientStatus string

const (
	RecipientStatusSent   RecipientStatus = "sent"
	RecipientStatusFailed RecipientStatus = "failed"
)

// SOSRecipient records the outcome of one SMS send within an alert.
type SOSRecipient struct {
	ContactID   primitive.ObjectID `json:"contact_id" bson:"contact_id"`
	Name        string             `json:"name" bson:"name"`
	PhoneNumber string             `json:"phone_number" bson:"phone_number"`
	MessageID   string             `json:"message_id,omitempty" bson:"message_id,omitempty"`
	Status      RecipientStatus    `json:"status" bson:"status"`
	Error       string             `json:"error,omitempty" bson:"error,omitempty"`
}

// SOSAlert is the audit record of a single SOS trigger, including the
// per-recipient fan-out outcome.
type SOSAlert struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Latitude         float64            `json:"latitude" bson:"latitude"`
	Longitude        float64            `json:"longitude" bson:"longitude"`
	MapLink          string             `json:"map_link" bson:"map_link"`
	Message          string             `json:"message" bson:"message"`
	Recipients       []SOSRecipient     `json:"recipients" bson:"recipients"`
	ContactsNotified int                `json:"contacts_notified" bson:"contacts_notified"`
	CreatedAt        time.Time          `json:"created_at" bson:"created_at"`
}
