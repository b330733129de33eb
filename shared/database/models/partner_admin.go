package models

import (
	"time"

	"github.com/google/uuid"
)

// PartnerAdmin role values
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)

// PartnerAdmin is a human with dashboard access. The primary key is the
// identity subject id, so an identity can administer at most one
// organization - the constraint lives in the key space, not in application
// checks alone.
type PartnerAdmin struct {
	ID             uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Email          string     `json:"email" gorm:"size:200;not null"`
	OrganizationID uuid.UUID  `json:"organization_id" gorm:"type:uuid;index;not null"`
	Role           string     `json:"role" gorm:"size:20;not null"`
	DisplayName    string     `json:"display_name,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	LastLoginAt    *time.Time `json:"last_login_at,omitempty"`
}
