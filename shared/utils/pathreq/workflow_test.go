package pathreq

import (
	"testing"
	"time"

	"elevatia-backend/shared/database/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeGoals(t *testing.T) {
	t.Run("trims and drops blanks", func(t *testing.T) {
		goals, err := NormalizeGoals([]string{" Lose weight ", "", "  ", "Sleep better"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Lose weight", "Sleep better"}, goals)
	})

	t.Run("all blank fails", func(t *testing.T) {
		_, err := NormalizeGoals([]string{"", "  "})
		assert.ErrorIs(t, err, ErrNoGoals)
	})

	t.Run("empty list fails", func(t *testing.T) {
		_, err := NormalizeGoals(nil)
		assert.ErrorIs(t, err, ErrNoGoals)
	})
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{"pending", "in_review", "approved", "rejected", "live"} {
		assert.True(t, ValidStatus(s), s)
	}
	assert.False(t, ValidStatus("archived"))
	assert.False(t, ValidStatus(""))
}

func TestApply(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("in_review stamps reviewedAt only", func(t *testing.T) {
		req := &models.PartnerPathRequest{Status: models.RequestStatusPending}

		err := Apply(req, Transition{Status: models.RequestStatusInReview}, now)
		require.NoError(t, err)

		assert.Equal(t, models.RequestStatusInReview, req.Status)
		require.NotNil(t, req.ReviewedAt)
		assert.Equal(t, now, *req.ReviewedAt)
		assert.Nil(t, req.CompletedAt)
	})

	t.Run("live stamps both timestamps", func(t *testing.T) {
		req := &models.PartnerPathRequest{Status: models.RequestStatusApproved}

		err := Apply(req, Transition{Status: models.RequestStatusLive, PartnerPathID: "acme_stress-relief"}, now)
		require.NoError(t, err)

		assert.Equal(t, models.RequestStatusLive, req.Status)
		require.NotNil(t, req.ReviewedAt)
		require.NotNil(t, req.CompletedAt)
		assert.Equal(t, now, *req.CompletedAt)
		assert.Equal(t, "acme_stress-relief", req.PartnerPathID)
	})

	t.Run("rejection without reason accepted", func(t *testing.T) {
		req := &models.PartnerPathRequest{Status: models.RequestStatusInReview}

		err := Apply(req, Transition{Status: models.RequestStatusRejected}, now)
		require.NoError(t, err)
		assert.Empty(t, req.RejectionReason)
		assert.Nil(t, req.CompletedAt)
	})

	t.Run("optional fields stored when present", func(t *testing.T) {
		req := &models.PartnerPathRequest{Status: models.RequestStatusInReview}

		err := Apply(req, Transition{
			Status:          models.RequestStatusRejected,
			ReviewNotes:     "scope too broad",
			RejectionReason: "duplicate of existing path",
		}, now)
		require.NoError(t, err)
		assert.Equal(t, "scope too broad", req.ReviewNotes)
		assert.Equal(t, "duplicate of existing path", req.RejectionReason)
	})

	t.Run("unknown status refused without mutation", func(t *testing.T) {
		req := &models.PartnerPathRequest{Status: models.RequestStatusPending}

		err := Apply(req, Transition{Status: "archived"}, now)
		assert.ErrorIs(t, err, ErrInvalidStatus)
		assert.Equal(t, models.RequestStatusPending, req.Status)
		assert.Nil(t, req.ReviewedAt)
	})
}
