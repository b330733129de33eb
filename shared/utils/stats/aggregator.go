package stats

import (
	"fmt"
	"sort"
	"time"

	"elevatia-backend/shared/database/models"
)

const chartDays = 30

// Stats is the point-in-time usage summary for an organization.
type Stats struct {
	ActiveUsers      int          `json:"active_users"`
	ExpiredUsers     int          `json:"expired_users"`
	TotalRedemptions int          `json:"total_redemptions"`
	ActiveCodesCount int          `json:"active_codes_count"`
	ChartData        []ChartPoint `json:"chart_data"`
}

// ChartPoint is one day in the redemption histogram.
type ChartPoint struct {
	Date        string `json:"date"`
	Redemptions int    `json:"redemptions"`
}

// AnonymizedUser is a partner-visible view of an end user, keyed by an
// anonymized id. Only the latest redemption per user is kept.
type AnonymizedUser struct {
	ID              string    `json:"id"`
	RedeemedAt      time.Time `json:"redeemed_at"`
	AccessExpiresAt time.Time `json:"access_expires_at"`
	CodeUsed        string    `json:"code_used"`
	IsActive        bool      `json:"is_active"`
}

// Compute derives the usage summary from the raw redemption log and the
// organization's enabled codes. Codes count as active only when enabled AND
// not past their natural expiry.
func Compute(redemptions []models.PartnerRedemption, enabledCodes []models.PartnerCode, now time.Time) Stats {
	s := Stats{
		TotalRedemptions: len(redemptions),
		ChartData:        BuildChart(redemptions, now),
	}

	for _, r := range redemptions {
		if r.AccessExpiresAt.After(now) {
			s.ActiveUsers++
		} else {
			s.ExpiredUsers++
		}
	}

	for _, c := range enabledCodes {
		if c.IsActive && c.ExpiresAt.After(now) {
			s.ActiveCodesCount++
		}
	}

	return s
}

// BuildChart buckets redemptions by calendar date over [now-29d, now].
// Always exactly 30 entries, oldest first, zero-filled for quiet days.
func BuildChart(redemptions []models.PartnerRedemption, now time.Time) []ChartPoint {
	byDate := make(map[string]int)
	cutoff := now.AddDate(0, 0, -chartDays)

	for _, r := range redemptions {
		if r.RedeemedAt.Before(cutoff) {
			continue
		}
		byDate[dayKey(r.RedeemedAt)]++
	}

	chart := make([]ChartPoint, 0, chartDays)
	for i := chartDays - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		key := dayKey(day)
		chart = append(chart, ChartPoint{
			Date:        key,
			Redemptions: byDate[key],
		})
	}

	return chart
}

// AnonymizeUsers collapses the redemption log to one entry per end user
// (the most recent redemption), replacing the raw user id with
// "user_" + its last 6 characters. Result is sorted newest first.
func AnonymizeUsers(redemptions []models.PartnerRedemption, now time.Time) []AnonymizedUser {
	latest := make(map[string]models.PartnerRedemption)
	for _, r := range redemptions {
		if prev, ok := latest[r.UserID]; !ok || r.RedeemedAt.After(prev.RedeemedAt) {
			latest[r.UserID] = r
		}
	}

	users := make([]AnonymizedUser, 0, len(latest))
	for _, r := range latest {
		users = append(users, AnonymizedUser{
			ID:              AnonymizeUserID(r.UserID),
			RedeemedAt:      r.RedeemedAt,
			AccessExpiresAt: r.AccessExpiresAt,
			CodeUsed:        r.CodeUsed,
			IsActive:        r.AccessExpiresAt.After(now),
		})
	}

	sort.Slice(users, func(i, j int) bool {
		return users[i].RedeemedAt.After(users[j].RedeemedAt)
	})

	return users
}

// AnonymizeUserID maps a raw end-user id to its partner-visible form.
func AnonymizeUserID(userID string) string {
	suffix := userID
	if len(suffix) > 6 {
		suffix = suffix[len(suffix)-6:]
	}
	return fmt.Sprintf("user_%s", suffix)
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
