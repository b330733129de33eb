package models

import (
	"time"

	"github.com/google/uuid"
)

// PartnerPath is a partner-exclusive content descriptor shown in the
// consumer app. PathID is namespaced as "{orgSlug}_{suffix}" to avoid
// cross-tenant collisions; sortOrder is append-at-max+1 on creation.
type PartnerPath struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `json:"organization_id" gorm:"type:uuid;index;not null"`
	PathID         string    `json:"path_id" gorm:"size:120;not null"`
	Title          string    `json:"title" gorm:"size:200;not null"`
	Description    string    `json:"description"`
	Icon           string    `json:"icon" gorm:"size:50"`
	Color          string    `json:"color" gorm:"size:20"`
	Category       string    `json:"category" gorm:"size:50"`
	IsActive       bool      `json:"is_active" gorm:"default:true"`
	SortOrder      int       `json:"sort_order"`
	CreatedAt      time.Time `json:"created_at"`
}
