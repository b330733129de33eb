package models

import (
	"time"

	"github.com/google/uuid"
)

// PartnerCode type values
const (
	CodeTypeSingle = "single"
	CodeTypeMulti  = "multi"
)

// PartnerCode is a redeemable access token for end users of the mobile app.
// The code value is globally unique; the unique index makes the
// read-then-write generation loop safe under concurrent issuance.
// Type, code value and limits are immutable after creation - only isActive,
// label and notes may change.
type PartnerCode struct {
	ID                 uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code               string    `json:"code" gorm:"size:40;uniqueIndex;not null"`
	OrganizationID     uuid.UUID `json:"organization_id" gorm:"type:uuid;index;not null"`
	Type               string    `json:"type" gorm:"size:10;not null"`
	MaxRedemptions     int       `json:"max_redemptions"`
	CurrentRedemptions int       `json:"current_redemptions" gorm:"default:0"`
	ExpiresAt          time.Time `json:"expires_at"`
	DurationDays       int       `json:"duration_days"`
	CreatedBy          uuid.UUID `json:"created_by" gorm:"type:uuid"`
	CreatedAt          time.Time `json:"created_at"`
	IsActive           bool      `json:"is_active" gorm:"default:true"`
	Label              string    `json:"label,omitempty"`
	Notes              string    `json:"notes,omitempty"`
}
