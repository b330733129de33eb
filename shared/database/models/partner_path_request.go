package models

import (
	"time"

	"github.com/google/uuid"
)

// PartnerPathRequest status values
const (
	RequestStatusPending  = "pending"
	RequestStatusInReview = "in_review"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
	RequestStatusLive     = "live"
)

// PartnerPathRequest is a request-for-custom-content workflow record.
// Transitions: pending -> in_review -> approved|rejected, approved -> live.
// Only a super-admin may transition; rejected and live are terminal.
type PartnerPathRequest struct {
	ID                uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID    uuid.UUID  `json:"organization_id" gorm:"type:uuid;index;not null"`
	RequestedBy       uuid.UUID  `json:"requested_by" gorm:"type:uuid;not null"`
	PathName          string     `json:"path_name" gorm:"size:200;not null"`
	Description       string     `json:"description"`
	TargetAudience    string     `json:"target_audience"`
	Goals             []string   `json:"goals" gorm:"serializer:json"`
	PreferredCategory string     `json:"preferred_category" gorm:"size:50"`
	AdditionalNotes   string     `json:"additional_notes,omitempty"`
	Status            string     `json:"status" gorm:"size:20;default:'pending'"`
	ReviewNotes       string     `json:"review_notes,omitempty"`
	RejectionReason   string     `json:"rejection_reason,omitempty"`
	PartnerPathID     string     `json:"partner_path_id,omitempty"`
	SubmittedAt       time.Time  `json:"submitted_at"`
	ReviewedAt        *time.Time `json:"reviewed_at,omitempty"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
}
