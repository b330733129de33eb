package stats

import (
	"testing"
	"time"

	"elevatia-backend/shared/database/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func redemption(userID string, redeemedAt, accessExpiresAt time.Time) models.PartnerRedemption {
	return models.PartnerRedemption{
		UserID:          userID,
		RedeemedAt:      redeemedAt,
		AccessExpiresAt: accessExpiresAt,
	}
}

func TestCompute(t *testing.T) {
	redemptions := []models.PartnerRedemption{
		redemption("user-a", testNow.AddDate(0, 0, -10), testNow.AddDate(0, 0, 20)),
		redemption("user-b", testNow.AddDate(0, 0, -40), testNow.AddDate(0, 0, -5)),
		redemption("user-c", testNow.AddDate(0, 0, -2), testNow.AddDate(0, 0, 28)),
	}
	enabledCodes := []models.PartnerCode{
		{IsActive: true, ExpiresAt: testNow.AddDate(0, 0, 30)},
		{IsActive: true, ExpiresAt: testNow.AddDate(0, 0, -1)}, // expired
		{IsActive: false, ExpiresAt: testNow.AddDate(0, 0, 30)},
	}

	s := Compute(redemptions, enabledCodes, testNow)

	assert.Equal(t, 2, s.ActiveUsers)
	assert.Equal(t, 1, s.ExpiredUsers)
	assert.Equal(t, 3, s.TotalRedemptions)
	assert.Equal(t, 1, s.ActiveCodesCount)
	assert.Len(t, s.ChartData, 30)
}

func TestBuildChart(t *testing.T) {
	redemptions := []models.PartnerRedemption{
		redemption("a", testNow, testNow),
		redemption("b", testNow, testNow),
		redemption("c", testNow.AddDate(0, 0, -5), testNow),
		redemption("d", testNow.AddDate(0, 0, -45), testNow), // outside window
	}

	chart := BuildChart(redemptions, testNow)
	require.Len(t, chart, 30)

	// Oldest first, dates strictly increasing
	for i := 1; i < len(chart); i++ {
		assert.Greater(t, chart[i].Date, chart[i-1].Date)
	}

	assert.Equal(t, testNow.AddDate(0, 0, -29).Format("2006-01-02"), chart[0].Date)
	assert.Equal(t, testNow.Format("2006-01-02"), chart[29].Date)

	assert.Equal(t, 2, chart[29].Redemptions)
	assert.Equal(t, 1, chart[24].Redemptions)

	// Quiet days are zero-filled, and the out-of-window entry is dropped
	total := 0
	for _, p := range chart {
		total += p.Redemptions
	}
	assert.Equal(t, 3, total)
}

func TestBuildChartEmpty(t *testing.T) {
	chart := BuildChart(nil, testNow)
	require.Len(t, chart, 30)
	for _, p := range chart {
		assert.Zero(t, p.Redemptions)
	}
}

func TestAnonymizeUsers(t *testing.T) {
	redemptions := []models.PartnerRedemption{
		redemption("consumer-subject-abc123", testNow.AddDate(0, 0, -10), testNow.AddDate(0, 0, 20)),
		redemption("consumer-subject-abc123", testNow.AddDate(0, 0, -2), testNow.AddDate(0, 0, 28)),
		redemption("xyz789", testNow.AddDate(0, 0, -30), testNow.AddDate(0, 0, -1)),
	}

	users := AnonymizeUsers(redemptions, testNow)
	require.Len(t, users, 2)

	// Newest first, and only the latest redemption per user survives
	assert.Equal(t, "user_abc123", users[0].ID)
	assert.Equal(t, testNow.AddDate(0, 0, -2), users[0].RedeemedAt)
	assert.True(t, users[0].IsActive)

	assert.Equal(t, "user_xyz789", users[1].ID)
	assert.False(t, users[1].IsActive)
}

func TestAnonymizeUserID(t *testing.T) {
	assert.Equal(t, "user_def456", AnonymizeUserID("longer-id-def456"))
	assert.Equal(t, "user_abc", AnonymizeUserID("abc"))
}
