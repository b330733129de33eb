package handlers

import (
	"net/http"

	"elevatia-backend/partner-service/services"
	"elevatia-backend/shared/database/models"
	"elevatia-backend/shared/utils/authz"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const maxLogoSize = 5 << 20 // 5 MB

// LogoHandler serves organization logo uploads
type LogoHandler struct {
	db       *gorm.DB
	resolver *authz.Resolver
	logos    *services.LogoService
}

func NewLogoHandler(db *gorm.DB, resolver *authz.Resolver, logos *services.LogoService) *LogoHandler {
	return &LogoHandler{db: db, resolver: resolver, logos: logos}
}

// UploadLogo stores a new logo and updates the organization record
// @Summary Upload organization logo
// @Description Upload a logo image for the organization. Owner role or super-admin.
// @Tags organizations
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Organization ID" format(uuid)
// @Param logo formData file true "Logo image (max 5 MB)"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Logo URL"
// @Failure 403 {object} map[string]string "Owner access required"
// @Failure 413 {object} map[string]string "File too large"
// @Router /partners/organizations/{id}/logo [post]
func (h *LogoHandler) UploadLogo(c *gin.Context) {
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

	if h.logos == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Logo storage unavailable",
			"message": "Object storage is not configured",
		})
		return
	}

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Logo file required",
			"message": "Attach the image as the 'logo' form field",
		})
		return
	}

	if fileHeader.Size > maxLogoSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error":   "File too large",
			"message": "Logo must be 5 MB or smaller",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to read upload",
			"message": err.Error(),
		})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	logoURL, err := h.logos.UploadLogo(c.Request.Context(), orgID, file, fileHeader.Filename, contentType, fileHeader.Size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to store logo",
			"message": err.Error(),
		})
		return
	}

	if err := h.db.Model(&models.Organization{}).
		Where("id = ?", orgID).
		Update("logo", logoURL).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to update organization",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logo uploaded successfully",
		"data": gin.H{
			"logo": logoURL,
		},
	})
}

// DeleteLogo removes the stored logo and clears the organization record
// @Summary Delete organization logo
// @Description Remove the organization's logo from storage and clear the logo field. Owner role or super-admin.
// @Tags organizations
// @Produce json
// @Param id path string true "Organization ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} map[string]string "Owner access required"
// @Router /partners/organizations/{id}/logo [delete]
func (h *LogoHandler) DeleteLogo(c *gin.Context) {
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

	if h.logos == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Logo storage unavailable",
			"message": "Object storage is not configured",
		})
		return
	}

	if err := h.logos.RemoveLogos(c.Request.Context(), orgID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to remove logo",
			"message": err.Error(),
		})
		return
	}

	if err := h.db.Model(&models.Organization{}).
		Where("id = ?", orgID).
		Update("logo", "").Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to update organization",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logo removed successfully",
	})
}
