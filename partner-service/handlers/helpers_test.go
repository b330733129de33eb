package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterOrganizationUpdates(t *testing.T) {
	payload := map[string]interface{}{
		"description":      "new description",
		"website":          "https://acme.test",
		"primary_color":    "#FF0000",
		"logo":             "https://cdn.test/logo.png",
		"status":           "suspended",
		"tier":             "enterprise",
		"max_active_users": 1000,
		"name":             "New Name",
		"slug":             "new-slug",
		"id":               "11111111-1111-1111-1111-111111111111",
	}

	t.Run("owner gets branding fields only", func(t *testing.T) {
		allowed := filterOrganizationUpdates(payload, false)

		assert.Equal(t, map[string]interface{}{
			"description":   "new description",
			"website":       "https://acme.test",
			"primary_color": "#FF0000",
			"logo":          "https://cdn.test/logo.png",
		}, allowed)
	})

	t.Run("super-admin additionally gets privileged fields", func(t *testing.T) {
		allowed := filterOrganizationUpdates(payload, true)

		assert.Contains(t, allowed, "status")
		assert.Contains(t, allowed, "tier")
		assert.Contains(t, allowed, "max_active_users")
		assert.Contains(t, allowed, "name")

		// Never updatable, for anyone
		assert.NotContains(t, allowed, "slug")
		assert.NotContains(t, allowed, "id")
	})

	t.Run("empty payload yields empty result", func(t *testing.T) {
		assert.Empty(t, filterOrganizationUpdates(map[string]interface{}{}, true))
	})
}

func TestFilterCodeUpdates(t *testing.T) {
	allowed := filterCodeUpdates(map[string]interface{}{
		"is_active":           false,
		"label":               "spring promo",
		"notes":               "internal",
		"code":                "HACK123",
		"max_redemptions":     9999,
		"current_redemptions": 0,
		"expires_at":          "2099-01-01",
	})

	assert.Equal(t, map[string]interface{}{
		"is_active": false,
		"label":     "spring promo",
		"notes":     "internal",
	}, allowed)
}

func TestFilterPathUpdates(t *testing.T) {
	allowed := filterPathUpdates(map[string]interface{}{
		"title":           "Stress Relief",
		"sort_order":      3,
		"is_active":       true,
		"path_id":         "other_stress",
		"organization_id": "22222222-2222-2222-2222-222222222222",
	})

	assert.Contains(t, allowed, "title")
	assert.Contains(t, allowed, "sort_order")
	assert.Contains(t, allowed, "is_active")
	assert.NotContains(t, allowed, "path_id")
	assert.NotContains(t, allowed, "organization_id")
}

func TestNormalizeMaxRedemptions(t *testing.T) {
	t.Run("single-use is always capped at one", func(t *testing.T) {
		for _, requested := range []int{0, 1, 50, -3} {
			got, ok := normalizeMaxRedemptions("single", requested)
			assert.True(t, ok)
			assert.Equal(t, 1, got)
		}
	})

	t.Run("multi-use keeps the requested cap", func(t *testing.T) {
		got, ok := normalizeMaxRedemptions("multi", 25)
		assert.True(t, ok)
		assert.Equal(t, 25, got)
	})

	t.Run("multi-use rejects a missing or non-positive cap", func(t *testing.T) {
		for _, requested := range []int{0, -1} {
			_, ok := normalizeMaxRedemptions("multi", requested)
			assert.False(t, ok)
		}
	})
}

func TestIssuePrefix(t *testing.T) {
	assert.Equal(t, "PROMO", issuePrefix("PROMO", "acme-wellness"))
	assert.Equal(t, "ACME", issuePrefix("", "acme-wellness"))
	assert.Equal(t, "WE", issuePrefix("", "we"))
}

func TestIsLastOwner(t *testing.T) {
	assert.True(t, isLastOwner("owner", 1))
	assert.False(t, isLastOwner("owner", 2))
	assert.False(t, isLastOwner("admin", 1))
	assert.False(t, isLastOwner("viewer", 1))
}

func TestBuildPathID(t *testing.T) {
	tests := []struct {
		slug  string
		title string
		want  string
	}{
		{"acme", "Stress Relief", "acme_stress-relief"},
		{"acme", "  Mindful Eating 101  ", "acme_mindful-eating-101"},
		{"acme", "Sleep & Recovery!", "acme_sleep-recovery"},
		{"wellco", "Focus", "wellco_focus"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, BuildPathID(tt.slug, tt.title))
	}
}
