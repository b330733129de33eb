package handlers

import (
	"net/http"
	"time"

	"elevatia-backend/shared/database/models"
	"elevatia-backend/shared/identity"
	"elevatia-backend/shared/utils/authz"
	"elevatia-backend/shared/utils/cache"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminHandler serves team membership management
type AdminHandler struct {
	db       *gorm.DB
	resolver *authz.Resolver
	gateway  identity.Gateway
}

func NewAdminHandler(db *gorm.DB, resolver *authz.Resolver, gateway identity.Gateway) *AdminHandler {
	return &AdminHandler{db: db, resolver: resolver, gateway: gateway}
}

// AddAdminRequest represents request body for adding a team member
type AddAdminRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Role        string `json:"role" binding:"required,oneof=owner admin viewer"`
	DisplayName string `json:"display_name"`
}

// isLastOwner reports whether removing the target would leave the
// organization without any owner.
func isLastOwner(targetRole string, ownerCount int64) bool {
	return targetRole == models.RoleOwner && ownerCount <= 1
}

// AddAdmin grants an existing account a role in the organization
// @Summary Add a team member
// @Description Attach an existing account to the organization with a role. The account must already exist and must not hold a role in any organization.
// @Tags team
// @Accept json
// @Produce json
// @Param id path string true "Organization ID" format(uuid)
// @Param admin body AddAdminRequest true "Member information"
// @Security BearerAuth
// @Success 201 {object} map[string]interface{} "Created partner admin"
// @Failure 403 {object} map[string]string "Owner access required"
// @Failure 404 {object} map[string]string "No account with this email"
// @Failure 409 {object} map[string]string "Account already belongs to an organization"
// @Router /partners/organizations/{id}/admins [post]
func (h *AdminHandler) AddAdmin(c *gin.Context) {
	orgID, ok := parseOrgID(c, c.Param("id"))
	if !ok {
		return
	}

	access, ok := resolveAccess(c, h.resolver, orgID)
	if !ok {
		return
	}

	if !access.Role.CanManageTeam() {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Not authorized",
			"message": "Owner access required",
		})
		return
	}

	var req AddAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	// Membership requires an existing identity account; the dashboard never
	// creates accounts.
	account, err := h.gateway.FindAccountByEmail(req.Email)
	if err != nil {
		if err == identity.ErrAccountNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Account not found",
				"message": "No account exists with this email address",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to look up account",
			"message": err.Error(),
		})
		return
	}

	// One organization per admin, across all tenants.
	var existing models.PartnerAdmin
	if err := h.db.First(&existing, "id = ?", account.ID).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Already a member",
			"message": "This account already belongs to an organization",
		})
		return
	}

	displayName := req.DisplayName
	if displayName == "" {
		displayName = account.DisplayName
	}

	admin := models.PartnerAdmin{
		ID:             account.ID,
		Email:          account.Email,
		OrganizationID: orgID,
		Role:           req.Role,
		DisplayName:    displayName,
		CreatedAt:      time.Now(),
	}

	if err := h.db.Create(&admin).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to add team member",
			"message": err.Error(),
		})
		return
	}

	cache.GetCacheManager().InvalidateSubject(admin.ID)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Team member added successfully",
		"data":    admin,
	})
}

// RemoveAdmin removes a team member from the organization
// @Summary Remove a team member
// @Description Detach a partner admin from the organization. The last owner can never be removed.
// @Tags team
// @Produce json
// @Param id path string true "Organization ID" format(uuid)
// @Param admin_id path string true "Partner admin ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} map[string]string "Owner access required"
// @Failure 404 {object} map[string]string "Member not found in this organization"
// @Failure 409 {object} map[string]string "Cannot remove the last owner"
// @Router /partners/organizations/{id}/admins/{admin_id} [delete]
func (h *AdminHandler) RemoveAdmin(c *gin.Context) {
	orgID, ok := parseOrgID(c, c.Param("id"))
	if !ok {
		return
	}

	adminID, err := uuid.Parse(c.Param("admin_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid admin ID format",
			"message": err.Error(),
		})
		return
	}

	access, ok := resolveAccess(c, h.resolver, orgID)
	if !ok {
		return
	}

	if !access.Role.CanManageTeam() {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Not authorized",
			"message": "Owner access required",
		})
		return
	}

	var target models.PartnerAdmin
	if err := h.db.Where("id = ? AND organization_id = ?", adminID, orgID).First(&target).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Member not found",
				"message": "No team member with this ID in the organization",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to retrieve team member",
			"message": err.Error(),
		})
		return
	}

	if target.Role == models.RoleOwner {
		var ownerCount int64
		if err := h.db.Model(&models.PartnerAdmin{}).
			Where("organization_id = ? AND role = ?", orgID, models.RoleOwner).
			Count(&ownerCount).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Failed to count owners",
				"message": err.Error(),
			})
			return
		}

		if isLastOwner(target.Role, ownerCount) {
			c.JSON(http.StatusConflict, gin.H{
				"error":   "Cannot remove last owner",
				"message": "An organization must keep at least one owner",
			})
			return
		}
	}

	if err := h.db.Delete(&target).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to remove team member",
			"message": err.Error(),
		})
		return
	}

	cache.GetCacheManager().InvalidateSubject(target.ID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Team member removed successfully",
	})
}
