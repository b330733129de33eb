package models

import (
	"time"

	"github.com/google/uuid"
)

// Organization status values
const (
	OrgStatusActive    = "active"
	OrgStatusSuspended = "suspended"
	OrgStatusPending   = "pending"
)

// Organization tier values
const (
	TierStarter    = "starter"
	TierGrowth     = "growth"
	TierEnterprise = "enterprise"
)

// Organization is a partner tenant. It is the root aggregate: every
// partner-prefixed record references exactly one organization.
type Organization struct {
	ID                      uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name                    string    `json:"name" gorm:"size:200;not null"`
	Slug                    string    `json:"slug" gorm:"size:100;uniqueIndex;not null"`
	Logo                    string    `json:"logo"`
	PrimaryColor            string    `json:"primary_color" gorm:"size:20"`
	Status                  string    `json:"status" gorm:"default:'active'"`
	Tier                    string    `json:"tier" gorm:"default:'starter'"`
	MaxActiveUsers          int       `json:"max_active_users"`
	DefaultCodeDurationDays int       `json:"default_code_duration_days"`
	ContactEmail            string    `json:"contact_email" gorm:"size:200"`
	ContactName             string    `json:"contact_name" gorm:"size:200"`
	Description             string    `json:"description,omitempty"`
	Website                 string    `json:"website,omitempty"`
	CreatedAt               time.Time `json:"created_at"`
	PartnerSince            time.Time `json:"partner_since"`
	UpdatedAt               time.Time `json:"updated_at"`
}

// DefaultMaxActiveUsers returns the advisory user cap for a tier. The cap is
// a display hint: it is never enforced against redemption counts.
func DefaultMaxActiveUsers(tier string) int {
	switch tier {
	case TierStarter:
		return 50
	case TierGrowth:
		return 500
	default:
		return 0 // enterprise: unbounded
	}
}
