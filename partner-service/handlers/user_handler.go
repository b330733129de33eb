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

// UserHandler serves the anonymized end-user view
type UserHandler struct {
	db       *gorm.DB
	resolver *authz.Resolver
}

func NewUserHandler(db *gorm.DB, resolver *authz.Resolver) *UserHandler {
	return &UserHandler{db: db, resolver: resolver}
}

// ListUsers retrieves the organization's end users in anonymized form
// @Summary List anonymized end users
// @Description One entry per end user (latest redemption), raw identities replaced with anonymized ids. Members only.
// @Tags users
// @Produce json
// @Param id path string true "Organization ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string "Not authorized for this organization"
// @Router /partners/organizations/{id}/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
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

	users := stats.AnonymizeUsers(redemptions, time.Now())

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"users": users,
			"total": len(users),
		},
	})
}
