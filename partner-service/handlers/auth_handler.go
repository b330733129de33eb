package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"elevatia-backend/shared/database/models"
	"elevatia-backend/shared/utils/authz"
	"elevatia-backend/shared/utils/cache"
)

// AuthHandler serves the dashboard identity check
type AuthHandler struct {
	db       *gorm.DB
	resolver *authz.Resolver
}

func NewAuthHandler(db *gorm.DB, resolver *authz.Resolver) *AuthHandler {
	return &AuthHandler{db: db, resolver: resolver}
}

// WhoAmIResponse represents the identity-check payload
type WhoAmIResponse struct {
	PartnerAdmin *models.PartnerAdmin `json:"partner_admin"`
	Organization *models.Organization `json:"organization"`
	IsSuperAdmin bool                 `json:"is_super_admin"`
	SubjectID    uuid.UUID            `json:"subject_id"`
}

// WhoAmI resolves the caller's partner-admin record and organization
// @Summary Dashboard identity check
// @Description Resolve the bearer token to a partner admin and organization. Stamps last login.
// @Tags partner-auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.WhoAmIResponse
// @Failure 401 {object} map[string]string "Unauthenticated"
// @Failure 403 {object} map[string]string "Not a partner admin"
// @Router /partners/auth [get]
func (h *AuthHandler) WhoAmI(c *gin.Context) {
	access, ok := resolveAccess(c, h.resolver, uuid.Nil)
	if !ok {
		return
	}

	response := WhoAmIResponse{
		IsSuperAdmin: access.IsSuperAdmin(),
		SubjectID:    access.SubjectID,
	}

	if access.Admin != nil {
		var org models.Organization
		if err := h.db.First(&org, access.Admin.OrganizationID).Error; err == nil {
			response.Organization = &org
		}

		// Last login is stamped only here, on the identity check that opens
		// a dashboard session - not on every resolved request.
		now := time.Now()
		access.Admin.LastLoginAt = &now
		if err := h.db.Model(&models.PartnerAdmin{}).
			Where("id = ?", access.Admin.ID).
			Update("last_login_at", now).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Failed to update last login",
				"message": err.Error(),
			})
			return
		}
		cache.GetCacheManager().InvalidateSubject(access.Admin.ID)

		response.PartnerAdmin = access.Admin
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    response,
	})
}
