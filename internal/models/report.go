package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReportStatus string
type ReportType string

const (
	ReportStatusPending    ReportStatus = "PENDING"
	ReportStatusInProgress ReportStatus = "IN_PROGRESS"
	ReportStatusResolved   ReportStatus = "RESOLVED"
	ReportStatusDismissed  ReportStatus = "DISMISSED"

	ReportTypeHarassment ReportType = "HARASSMENT"
	ReportTypeStalking   ReportType = "STALKING"
	ReportTypeTheft      ReportType = "THEFT"
	ReportTypeAssault    ReportType = "ASSAULT"
	ReportTypeUnsafeArea ReportType = "UNSAFE_AREA"
	ReportTypeOther      ReportType = "OTHER"
)

// Report is a user-submitted incident record. Status is only mutated
// through the moderation update path; reports are never deleted.
type Report struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ReportID    string             `json:"report_id" bson:"report_id"`
	Type        ReportType         `json:"type" bson:"type" validate:"required"`
	Title       string             `json:"title" bson:"title" validate:"required"`
	Description string             `json:"description" bson:"description" validate:"required"`
	Location    string             `json:"location" bson:"location"`
	Latitude    *float64           `json:"latitude" bson:"latitude"`
	Longitude   *float64           `json:"longitude" bson:"longitude"`
	Image       string             `json:"image" bson:"image"`
	Status      ReportStatus       `json:"status" bson:"status" default:"PENDING"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// ReportFilter narrows report listings; zero values mean "any".
type ReportFilter struct {
	Status ReportStatus `json:"status" form:"status"`
	Type   ReportType   `json:"type" form:"type"`
}

func (s ReportStatus) IsValid() bool {
	switch s {
	case ReportStatusPending, ReportStatusInProgress, ReportStatusResolved, ReportStatusDismissed:
		return true
	}
	return false
}

func (t ReportType) IsValid() bool {
	switch t {
	case ReportTypeHarassment, ReportTypeStalking, ReportTypeTheft,
		ReportTypeAssault, ReportTypeUnsafeArea, ReportTypeOther:
		return true
	}
	return false
}

// HasCoordinates reports whether the record can be placed on the map.
// Latitude and longitude are only consumed together.
func (r *Report) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}
