package codes

import (
	"testing"
	"time"

	"elevatia-backend/shared/database/models"

	"github.com/stretchr/testify/assert"
)

func TestDeriveStatus(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	future := now.AddDate(0, 0, 30)
	past := now.AddDate(0, 0, -1)

	tests := []struct {
		name string
		code models.PartnerCode
		want Status
	}{
		{
			name: "active single use",
			code: models.PartnerCode{IsActive: true, Type: models.CodeTypeSingle, ExpiresAt: future},
			want: StatusActive,
		},
		{
			name: "disabled",
			code: models.PartnerCode{IsActive: false, Type: models.CodeTypeSingle, ExpiresAt: future},
			want: StatusDisabled,
		},
		{
			name: "disabled wins over expired",
			code: models.PartnerCode{IsActive: false, Type: models.CodeTypeSingle, ExpiresAt: past},
			want: StatusDisabled,
		},
		{
			name: "expired",
			code: models.PartnerCode{IsActive: true, Type: models.CodeTypeSingle, ExpiresAt: past},
			want: StatusExpired,
		},
		{
			name: "expired wins over used",
			code: models.PartnerCode{IsActive: true, Type: models.CodeTypeSingle, ExpiresAt: past, CurrentRedemptions: 1},
			want: StatusExpired,
		},
		{
			name: "single used",
			code: models.PartnerCode{IsActive: true, Type: models.CodeTypeSingle, ExpiresAt: future, CurrentRedemptions: 1},
			want: StatusUsed,
		},
		{
			name: "multi maxed while still enabled",
			code: models.PartnerCode{IsActive: true, Type: models.CodeTypeMulti, ExpiresAt: future, MaxRedemptions: 3, CurrentRedemptions: 3},
			want: StatusMaxed,
		},
		{
			name: "multi below limit",
			code: models.PartnerCode{IsActive: true, Type: models.CodeTypeMulti, ExpiresAt: future, MaxRedemptions: 3, CurrentRedemptions: 2},
			want: StatusActive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(&tt.code, now))
		})
	}
}
