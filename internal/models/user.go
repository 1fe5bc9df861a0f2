package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string
type Capability string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleUser      Role = "user"

	CapModerateReports Capability = "moderate-reports"
	CapViewAlerts      Capability = "view-alerts"
)

var roleCapabilities = map[Role][]Capability{
	RoleAdmin:     {CapModerateReports, CapViewAlerts},
	RoleModerator: {CapModerateReports, CapViewAlerts},
	RoleUser:      {},
}

// HasCapability checks role privileges without scattering role string
// comparisons across the codebase.
func (r Role) HasCapability(cap Capability) bool {
	for _, c := range roleCapabilities[r] {
		if c == cap {
			return true
		}
	}
	return false
}

func (r Role) IsValid() bool {
	_, ok := roleCapabilities[r]
	return ok
}

type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name" validate:"required,min=2"`
	Email     string             `json:"email" bson:"email" validate:"required,email"`
	Password  string             `json:"-" bson:"password"`
	Role      Role               `json:"role" bson:"role" default:"user"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// Session is the resolved identity behind a session cookie. Handlers
// receive it explicitly instead of reading ambient request state.
type Session struct {
	ID        string             `json:"id"`
	UserID    primitive.ObjectID `json:"user_id"`
	Role      Role               `json:"role"`
	CreatedAt time.Time          `json:"created_at"`
	ExpiresAt time.Time          `json:"expires_at"`
}

func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}
