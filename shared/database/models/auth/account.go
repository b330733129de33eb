package auth

import (
	"time"

	"github.com/google/uuid"
)

// Account is an identity-provider user record. Accounts are provisioned by
// the consumer app (or the seeder); the partner portal never creates them -
// adding a team member requires the email to already have an account.
type Account struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email         string    `json:"email" gorm:"uniqueIndex;not null"`
	Password      string    `json:"-" gorm:"not null"`
	DisplayName   string    `json:"display_name" gorm:"size:200"`
	Status        string    `json:"status" gorm:"default:'ACTIVE'"`
	EmailVerified bool      `json:"email_verified" gorm:"default:false"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
