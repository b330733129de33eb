package handlers

import (
	"net/http"
	"regexp"
	"strings"

	"elevatia-backend/shared/database/models"
	"elevatia-backend/shared/utils/authz"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PathHandler serves partner-exclusive content paths
type PathHandler struct {
	db       *gorm.DB
	resolver *authz.Resolver
}

func NewPathHandler(db *gorm.DB, resolver *authz.Resolver) *PathHandler {
	return &PathHandler{db: db, resolver: resolver}
}

// CreatePathRequest represents request body for creating a content path
type CreatePathRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Category    string `json:"category"`
}

// fields a partner admin may edit on a content path
var pathEditableFields = map[string]bool{
	"title":       true,
	"description": true,
	"icon":        true,
	"color":       true,
	"category":    true,
	"is_active":   true,
	"sort_order":  true,
}

func filterPathUpdates(updates map[string]interface{}) map[string]interface{} {
	allowed := make(map[string]interface{})
	for field, value := range updates {
		if pathEditableFields[field] {
			allowed[field] = value
		}
	}
	return allowed
}

var pathIDSanitizer = regexp.MustCompile(`[^a-z0-9]+`)

// BuildPathID derives the human path key, namespaced by the organization
// slug to avoid cross-tenant collisions: "{orgSlug}_{slugified title}".
func BuildPathID(orgSlug, title string) string {
	suffix := strings.ToLower(strings.TrimSpace(title))
	suffix = pathIDSanitizer.ReplaceAllString(suffix, "-")
	suffix = strings.Trim(suffix, "-")
	return orgSlug + "_" + suffix
}

// ListPaths retrieves the organization's content paths in display order
// @Summary List content paths
// @Description Get all content paths for the organization, ordered by sort order. Members only.
// @Tags paths
// @Produce json
// @Param id path string true "Organization ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string "Not authorized for this organization"
// @Router /partners/organizations/{id}/paths [get]
func (h *PathHandler) ListPaths(c *gin.Context) {
	orgID, ok := parseOrgID(c, c.Param("id"))
	if !ok {
		return
	}

	_, ok = resolveAccess(c, h.resolver, orgID)
	if !ok {
		return
	}

	var paths []models.PartnerPath
	if err := h.db.Where("organization_id = ?", orgID).
		Order("sort_order ASC").
		Find(&paths).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to retrieve paths",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    paths,
	})
}

// CreatePath creates a content path for the organization
// @Summary Create a content path
// @Description Create a partner-exclusive content path. Admin role or above. New paths append at the end of the display order.
// @Tags paths
// @Accept json
// @Produce json
// @Param id path string true "Organization ID" format(uuid)
// @Param path body CreatePathRequest true "Path information"
// @Security BearerAuth
// @Success 201 {object} map[string]interface{} "Created path"
// @Failure 403 {object} map[string]string "Admin access required"
// @Router /partners/organizations/{id}/paths [post]
func (h *PathHandler) CreatePath(c *gin.Context) {
	orgID, ok := parseOrgID(c, c.Param("id"))
	if !ok {
		return
	}

	access, ok := resolveAccess(c, h.resolver, orgID)
	if !ok {
		return
	}

	if !access.Role.CanMutate() {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Not authorized",
			"message": "Admin access required",
		})
		return
	}

	var req CreatePathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	var org models.Organization
	if err := h.db.First(&org, orgID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Organization not found",
			"message": "Organization with the given ID does not exist",
		})
		return
	}

	// Append at the end of the current display order.
	var maxSortOrder int
	if err := h.db.Model(&models.PartnerPath{}).
		Where("organization_id = ?", orgID).
		Select("COALESCE(MAX(sort_order), 0)").
		Scan(&maxSortOrder).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to determine sort order",
			"message": err.Error(),
		})
		return
	}

	path := models.PartnerPath{
		OrganizationID: orgID,
		PathID:         BuildPathID(org.Slug, req.Title),
		Title:          req.Title,
		Description:    req.Description,
		Icon:           req.Icon,
		Color:          req.Color,
		Category:       req.Category,
		IsActive:       true,
		SortOrder:      maxSortOrder + 1,
	}

	if err := h.db.Create(&path).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to create path",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Path created successfully",
		"data":    path,
	})
}

// UpdatePath edits a content path through the allow-list
// @Summary Update a content path
// @Description Edit path presentation fields. Admin role or above.
// @Tags paths
// @Accept json
// @Produce json
// @Param id path string true "Organization ID" format(uuid)
// @Param path_id path string true "Path ID" format(uuid)
// @Param path body map[string]interface{} true "Fields to update"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Updated path"
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 404 {object} map[string]string "Path not found in this organization"
// @Router /partners/organizations/{id}/paths/{path_id} [patch]
func (h *PathHandler) UpdatePath(c *gin.Context) {
	orgID, ok := parseOrgID(c, c.Param("id"))
	if !ok {
		return
	}

	access, ok := resolveAccess(c, h.resolver, orgID)
	if !ok {
		return
	}

	if !access.Role.CanMutate() {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Not authorized",
			"message": "Admin access required",
		})
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	pathID, err := uuid.Parse(c.Param("path_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid path ID format",
			"message": err.Error(),
		})
		return
	}

	var path models.PartnerPath
	if err := h.db.Where("id = ? AND organization_id = ?", pathID, orgID).First(&path).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Path not found",
				"message": "No path with this ID in the organization",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to retrieve path",
			"message": err.Error(),
		})
		return
	}

	allowed := filterPathUpdates(updates)
	if len(allowed) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "No updatable fields",
			"message": "The payload contains no updatable path fields",
		})
		return
	}

	if err := h.db.Model(&path).Updates(allowed).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to update path",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Path updated successfully",
		"data":    path,
	})
}

// DeletePath removes a content path
// @Summary Delete a content path
// @Description Remove a content path from the organization. Admin role or above.
// @Tags paths
// @Produce json
// @Param id path string true "Organization ID" format(uuid)
// @Param path_id path string true "Path ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 404 {object} map[string]string "Path not found in this organization"
// @Router /partners/organizations/{id}/paths/{path_id} [delete]
func (h *PathHandler) DeletePath(c *gin.Context) {
	orgID, ok := parseOrgID(c, c.Param("id"))
	if !ok {
		return
	}

	access, ok := resolveAccess(c, h.resolver, orgID)
	if !ok {
		return
	}

	if !access.Role.CanMutate() {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Not authorized",
			"message": "Admin access required",
		})
		return
	}

	pathID, err := uuid.Parse(c.Param("path_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid path ID format",
			"message": err.Error(),
		})
		return
	}

	result := h.db.Where("id = ? AND organization_id = ?", pathID, orgID).
		Delete(&models.PartnerPath{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to delete path",
			"message": result.Error.Error(),
		})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Path not found",
			"message": "No path with this ID in the organization",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Path deleted successfully",
	})
}
