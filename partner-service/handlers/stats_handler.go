package handlers

import (
	"net/http"
	"time"

	"elevatia-backend/shared/database/models"
	"elevatia-backend/shared/utils/authz"
	"elevatia-backend/shared/utils/stats"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// StatsHandler serves usage statistics derived from the redemption log
type StatsHandler struct {
	db       *gorm.DB
	resolver *authz.Resolver
}

func NewStatsHandler(db *gorm.DB, resolver *authz.Resolver) *StatsHandler {
	return &StatsHandler{db: db, resolver: resolver}
}

// GetStats computes the organization's usage summary
// @Summary Organization usage statistics
// @Description Active/expired user counts, total redemptions, active code count and a 30-day redemption histogram. Members only.
// @Tags stats
// @Produce json
// @Param id path string true "Organization ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} stats.Stats
// @Failure 403 {object} map[string]string "Not authorized for this organization"
// @Router /partners/organizations/{id}/stats [get]
func (h *StatsHandler) GetStats(c *gin.Context) {
	orgID, ok := parseOrgID(c, c.Param("id"))
	if !ok {
		return
	}

	_, ok = resolveAccess(c, h.resolver, orgID)
	if !ok {
		return
	}

	var redemptions []models.PartnerRedemption
	if err := h.db.Where("organization_id = ?", orgID).Find(&redemptions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to retrieve redemptions",
			"message": err.Error(),
		})
		return
	}

	var codes []models.PartnerCode
	if err := h.db.Where("organization_id = ?", orgID).Find(&codes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to retrieve codes",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stats.Compute(redemptions, codes, time.Now()),
	})
}
