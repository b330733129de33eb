package codes

import (
	"time"

	"elevatia-backend/shared/database/models"
)

// Status is the read-time state of a code. It is derived, never stored.
type Status string

const (
	StatusDisabled Status = "disabled"
	StatusExpired  Status = "expired"
	StatusUsed     Status = "used"
	StatusMaxed    Status = "maxed"
	StatusActive   Status = "active"
)

// DeriveStatus classifies a code with strict precedence:
// Disabled > Expired > Used > Maxed > Active. A disabled and expired code
// reports Disabled.
func DeriveStatus(code *models.PartnerCode, now time.Time) Status {
	switch {
	case !code.IsActive:
		return StatusDisabled
	case now.After(code.ExpiresAt):
		return StatusExpired
	case code.Type == models.CodeTypeSingle && code.CurrentRedemptions >= 1:
		return StatusUsed
	case code.Type == models.CodeTypeMulti && code.CurrentRedemptions >= code.MaxRedemptions:
		return StatusMaxed
	default:
		return StatusActive
	}
}
