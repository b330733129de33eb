package handlers

import (
	"net/http"
	"time"

	"elevatia-backend/shared/config"
	"elevatia-backend/shared/database/models"
	"elevatia-backend/shared/utils/authz"
	"elevatia-backend/shared/utils/cache"
	"elevatia-backend/shared/utils/query"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrganizationHandler serves partner tenant management
type OrganizationHandler struct {
	db       *gorm.DB
	resolver *authz.Resolver
}

func NewOrganizationHandler(db *gorm.DB, resolver *authz.Resolver) *OrganizationHandler {
	return &OrganizationHandler{db: db, resolver: resolver}
}

// CreateOrganizationRequest represents request body for creating an organization
type CreateOrganizationRequest struct {
	Name                    string `json:"name" binding:"required"`
	Slug                    string `json:"slug" binding:"required"`
	PrimaryColor            string `json:"primary_color"`
	Tier                    string `json:"tier" binding:"required,oneof=starter growth enterprise"`
	MaxActiveUsers          *int   `json:"max_active_users"`
	DefaultCodeDurationDays int    `json:"default_code_duration_days"`
	ContactEmail            string `json:"contact_email" binding:"required,email"`
	ContactName             string `json:"contact_name" binding:"required"`
	Description             string `json:"description"`
	Website                 string `json:"website"`
}

// fields an organization owner may edit on their own tenant
var ownerEditableFields = []string{"description", "website", "primary_color", "logo"}

// fields only a super-admin may touch
var superAdminEditableFields = []string{
	"status", "tier", "max_active_users", "name",
	"contact_name", "contact_email", "default_code_duration_days",
}

// filterOrganizationUpdates keeps only allow-listed fields from an update
// payload. Allow-list rather than block-list: unknown or privileged fields
// are silently dropped, never applied.
func filterOrganizationUpdates(updates map[string]interface{}, isSuperAdmin bool) map[string]interface{} {
	allowed := make(map[string]interface{})

	for _, field := range ownerEditableFields {
		if value, ok := updates[field]; ok {
			allowed[field] = value
		}
	}

	if isSuperAdmin {
		for _, field := range superAdminEditableFields {
			if value, ok := updates[field]; ok {
				allowed[field] = value
			}
		}
	}

	return allowed
}

// ListOrganizations retrieves all organizations (super-admin only)
// @Summary List all partner organizations
// @Description Get all organizations with pagination, filtering, sorting and search. Super-admin only.
// @Tags organizations
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Items per page (default: 10)"
// @Param search query string false "Search term across name and slug"
// @Param filters[status] query string false "Filter by status (active, suspended, pending)"
// @Param filters[tier] query string false "Filter by tier (starter, growth, enterprise)"
// @Param sort[field] query string false "Sort field (name, slug, status, tier, created_at)"
// @Param sort[order] query string false "Sort order (asc, desc)"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string "Super-admin access required"
// @Router /partners/organizations [get]
func (h *OrganizationHandler) ListOrganizations(c *gin.Context) {
	access, ok := resolveAccess(c, h.resolver, uuid.Nil)
	if !ok {
		return
	}

	if !access.IsSuperAdmin() {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Not authorized",
			"message": "Super-admin access required",
		})
		return
	}

	params := query.ParseQueryParams(c)

	allowedFilters := map[string]string{
		"status": "status",
		"tier":   "tier",
	}
	allowedSortFields := map[string]string{
		"name":       "name",
		"slug":       "slug",
		"status":     "status",
		"tier":       "tier",
		"created_at": "created_at",
	}
	searchFields := []string{"name", "slug"}

	dbQuery := h.db.Model(&models.Organization{})
	dbQuery = query.ApplyFilters(dbQuery, params.Filters, allowedFilters)
	dbQuery = query.ApplySearch(dbQuery, params.Search, searchFields)
	dbQuery = query.ApplySort(dbQuery, params.Sort, allowedSortFields)

	var total int64
	if err := dbQuery.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to count organizations",
			"message": err.Error(),
		})
		return
	}

	dbQuery = query.ApplyPagination(dbQuery, params.Page, params.Limit)

	var organizations []models.Organization
	if err := dbQuery.Find(&organizations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to retrieve organizations",
			"message": err.Error(),
		})
		return
	}

	pagination := query.BuildPaginationResponse(params.Page, params.Limit, total)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"items":      organizations,
			"pagination": pagination,
		},
	})
}

// GetOrganization retrieves a single organization and its team
// @Summary Get organization by ID
// @Description Get an organization and its partner admins. Members and super-admin only.
// @Tags organizations
// @Produce json
// @Param id path string true "Organization ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string "Not authorized for this organization"
// @Failure 404 {object} map[string]string "Organization not found"
// @Router /partners/organizations/{id} [get]
func (h *OrganizationHandler) GetOrganization(c *gin.Context) {
	orgID, ok := parseOrgID(c, c.Param("id"))
	if !ok {
		return
	}

	_, ok = resolveAccess(c, h.resolver, orgID)
	if !ok {
		return
	}

	var org models.Organization
	if err := h.db.First(&org, orgID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Organization not found",
				"message": "Organization with the given ID does not exist",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to retrieve organization",
			"message": err.Error(),
		})
		return
	}

	var admins []models.PartnerAdmin
	if err := h.db.Where("organization_id = ?", orgID).Find(&admins).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to retrieve team members",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"organization": org,
			"admins":       admins,
		},
	})
}

// CreateOrganization creates a new partner organization (super-admin only)
// @Summary Create a new organization
// @Description Create a partner tenant. Slug must be globally unique.
// @Tags organizations
// @Accept json
// @Produce json
// @Param organization body CreateOrganizationRequest true "Organization information"
// @Security BearerAuth
// @Success 201 {object} map[string]interface{} "Created organization"
// @Failure 400 {object} map[string]string "Invalid request data"
// @Failure 403 {object} map[string]string "Super-admin access required"
// @Failure 409 {object} map[string]string "Slug already exists"
// @Router /partners/organizations [post]
func (h *OrganizationHandler) CreateOrganization(c *gin.Context) {
	access, ok := resolveAccess(c, h.resolver, uuid.Nil)
	if !ok {
		return
	}

	if !access.IsSuperAdmin() {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Not authorized",
			"message": "Super-admin access required",
		})
		return
	}

	var req CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	// Check if slug already exists
	var existingOrg models.Organization
	if err := h.db.Where("slug = ?", req.Slug).First(&existingOrg).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Slug already exists",
			"message": "An organization with this slug already exists",
		})
		return
	}

	maxActiveUsers := models.DefaultMaxActiveUsers(req.Tier)
	if req.MaxActiveUsers != nil {
		maxActiveUsers = *req.MaxActiveUsers
	}

	now := time.Now()
	org := models.Organization{
		Name:                    req.Name,
		Slug:                    req.Slug,
		PrimaryColor:            req.PrimaryColor,
		Status:                  config.GetConfig().OrgDefaultStatus,
		Tier:                    req.Tier,
		MaxActiveUsers:          maxActiveUsers,
		DefaultCodeDurationDays: req.DefaultCodeDurationDays,
		ContactEmail:            req.ContactEmail,
		ContactName:             req.ContactName,
		Description:             req.Description,
		Website:                 req.Website,
		PartnerSince:            now,
	}

	// Single insert; the store assigns and returns the id atomically and the
	// unique index on slug backstops the read-then-write check above.
	if err := h.db.Create(&org).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to create organization",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Organization created successfully",
		"data":    org,
	})
}

// UpdateOrganization updates an organization through a role-scoped allow-list
// @Summary Update an organization
// @Description Owners may edit branding fields; super-admin may additionally edit status, tier, limits and contact details.
// @Tags organizations
// @Accept json
// @Produce json
// @Param id path string true "Organization ID" format(uuid)
// @Param organization body map[string]interface{} true "Fields to update"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Updated organization"
// @Failure 403 {object} map[string]string "Owner access required"
// @Failure 404 {object} map[string]string "Organization not found"
// @Router /partners/organizations/{id} [patch]
func (h *OrganizationHandler) UpdateOrganization(c *gin.Context) {
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

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	var org models.Organization
	if err := h.db.First(&org, orgID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Organization not found",
				"message": "Organization with the given ID does not exist",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to retrieve organization",
			"message": err.Error(),
		})
		return
	}

	allowed := filterOrganizationUpdates(updates, access.IsSuperAdmin())
	if len(allowed) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "No updatable fields",
			"message": "The payload contains no fields you are allowed to update",
		})
		return
	}

	if err := h.db.Model(&org).Updates(allowed).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to update organization",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Organization updated successfully",
		"data":    org,
	})
}

// ToggleStatus flips an organization between active and suspended
// @Summary Toggle organization status
// @Description Flip active/suspended. Super-admin only. A suspended organization's dashboard goes read-only.
// @Tags organizations
// @Produce json
// @Param id path string true "Organization ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string "Super-admin access required"
// @Failure 404 {object} map[string]string "Organization not found"
// @Router /partners/organizations/{id}/status [post]
func (h *OrganizationHandler) ToggleStatus(c *gin.Context) {
	orgID, ok := parseOrgID(c, c.Param("id"))
	if !ok {
		return
	}

	access, ok := resolveAccess(c, h.resolver, orgID)
	if !ok {
		return
	}

	if !access.IsSuperAdmin() {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Not authorized",
			"message": "Super-admin access required",
		})
		return
	}

	var org models.Organization
	if err := h.db.First(&org, orgID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Organization not found",
				"message": "Organization with the given ID does not exist",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to retrieve organization",
			"message": err.Error(),
		})
		return
	}

	newStatus := models.OrgStatusActive
	if org.Status == models.OrgStatusActive {
		newStatus = models.OrgStatusSuspended
	}

	if err := h.db.Model(&org).Update("status", newStatus).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to update organization status",
			"message": err.Error(),
		})
		return
	}

	// Suspension must take effect before cached resolutions expire.
	cache.GetCacheManager().InvalidateAll()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Organization status updated",
		"data": gin.H{
			"id":     org.ID,
			"status": newStatus,
		},
	})
}
