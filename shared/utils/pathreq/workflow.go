package pathreq

import (
	"errors"
	"strings"
	"time"

	"elevatia-backend/shared/database/models"
)

var (
	// ErrNoGoals means the goals list was empty after discarding blank
	// entries. A request must state at least one goal.
	ErrNoGoals = errors.New("at least one goal is required")

	// ErrInvalidStatus means the requested transition target is not part of
	// the workflow's status set.
	ErrInvalidStatus = errors.New("invalid status")
)

var validStatuses = map[string]bool{
	models.RequestStatusPending:  true,
	models.RequestStatusInReview: true,
	models.RequestStatusApproved: true,
	models.RequestStatusRejected: true,
	models.RequestStatusLive:     true,
}

// NormalizeGoals trims entries and discards blanks. Fails with ErrNoGoals
// when nothing survives.
func NormalizeGoals(goals []string) ([]string, error) {
	cleaned := make([]string, 0, len(goals))
	for _, g := range goals {
		g = strings.TrimSpace(g)
		if g != "" {
			cleaned = append(cleaned, g)
		}
	}

	if len(cleaned) == 0 {
		return nil, ErrNoGoals
	}

	return cleaned, nil
}

// ValidStatus reports whether s names a workflow status.
func ValidStatus(s string) bool {
	return validStatuses[s]
}

// Transition describes a super-admin review action. The optional fields are
// stored when present but never required by the state machine itself -
// a rejection without a reason is accepted, if impolite.
type Transition struct {
	Status          string
	ReviewNotes     string
	RejectionReason string
	PartnerPathID   string
}

// Apply moves a request to the transition's status. reviewedAt is stamped on
// every transition; completedAt only when the request goes live.
func Apply(req *models.PartnerPathRequest, t Transition, now time.Time) error {
	if !ValidStatus(t.Status) {
		return ErrInvalidStatus
	}

	req.Status = t.Status
	req.ReviewedAt = &now

	if t.ReviewNotes != "" {
		req.ReviewNotes = t.ReviewNotes
	}
	if t.RejectionReason != "" {
		req.RejectionReason = t.RejectionReason
	}
	if t.PartnerPathID != "" {
		req.PartnerPathID = t.PartnerPathID
	}
	if t.Status == models.RequestStatusLive {
		req.CompletedAt = &now
	}

	return nil
}
