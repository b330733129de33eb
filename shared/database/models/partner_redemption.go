package models

import (
	"time"

	"github.com/google/uuid"
)

// PartnerRedemption is an append-only log entry written by the consumer-app
// redemption flow. The portal only reads it. UserID is the consumer app's
// opaque user id, never exposed raw to partners. AccessExpiresAt is computed
// at redemption time (redeemedAt + code duration) and trusted as given.
type PartnerRedemption struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID          string    `json:"user_id" gorm:"size:100;index;not null"`
	OrganizationID  uuid.UUID `json:"organization_id" gorm:"type:uuid;index;not null"`
	CodeID          uuid.UUID `json:"code_id" gorm:"type:uuid;not null"`
	CodeUsed        string    `json:"code_used" gorm:"size:40"`
	RedeemedAt      time.Time `json:"redeemed_at"`
	AccessExpiresAt time.Time `json:"access_expires_at"`
}
