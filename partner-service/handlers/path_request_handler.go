package handlers

import (
	"net/http"
	"time"

	"elevatia-backend/partner-service/services"
	"elevatia-backend/shared/database/models"
	"elevatia-backend/shared/utils/authz"
	"elevatia-backend/shared/utils/pathreq"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PathRequestHandler serves the custom-content request workflow
type PathRequestHandler struct {
	db       *gorm.DB
	resolver *authz.Resolver
	notifier *services.RequestNotifier
}

func NewPathRequestHandler(db *gorm.DB, resolver *authz.Resolver, notifier *services.RequestNotifier) *PathRequestHandler {
	return &PathRequestHandler{db: db, resolver: resolver, notifier: notifier}
}

// SubmitPathRequestRequest represents request body for submitting a content request
type SubmitPathRequestRequest struct {
	PathName          string   `json:"path_name" binding:"required"`
	Description       string   `json:"description" binding:"required"`
	TargetAudience    string   `json:"target_audience"`
	Goals             []string `json:"goals" binding:"required"`
	PreferredCategory string   `json:"preferred_category"`
	AdditionalNotes   string   `json:"additional_notes"`
}

// TransitionRequest represents request body for a review action
type TransitionRequest struct {
	Status          string `json:"status" binding:"required"`
	ReviewNotes     string `json:"review_notes"`
	RejectionReason string `json:"rejection_reason"`
	PartnerPathID   string `json:"partner_path_id"`
}

// ListPathRequests retrieves the organization's content requests
// @Summary List path requests
// @Description Get all content requests for the organization, newest first. Members only.
// @Tags path-requests
// @Produce json
// @Param id path string true "Organization ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string "Not authorized for this organization"
// @Router /partners/organizations/{id}/path-requests [get]
func (h *PathRequestHandler) ListPathRequests(c *gin.Context) {
	orgID, ok := parseOrgID(c, c.Param("id"))
	if !ok {
		return
	}

	_, ok = resolveAccess(c, h.resolver, orgID)
	if !ok {
		return
	}

	var requests []models.PartnerPathRequest
	if err := h.db.Where("organization_id = ?", orgID).
		Order("submitted_at DESC").
		Find(&requests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to retrieve path requests",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    requests,
	})
}

// ListAllPathRequests retrieves requests across all organizations (super-admin)
// @Summary List all path requests
// @Description Get content requests across every organization, optionally filtered by status. Super-admin only.
// @Tags path-requests
// @Produce json
// @Param status query string false "Filter by status (pending, in_review, approved, rejected, live)"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string "Super-admin access required"
// @Router /partners/path-requests [get]
func (h *PathRequestHandler) ListAllPathRequests(c *gin.Context) {
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

	dbQuery := h.db.Model(&models.PartnerPathRequest{})
	if status := c.Query("status"); status != "" {
		if !pathreq.ValidStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid status",
				"message": "Unknown workflow status: " + status,
			})
			return
		}
		dbQuery = dbQuery.Where("status = ?", status)
	}

	var requests []models.PartnerPathRequest
	if err := dbQuery.Order("submitted_at DESC").Find(&requests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to retrieve path requests",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    requests,
	})
}

// SubmitPathRequest files a new content request
// @Summary Submit a path request
// @Description File a request for custom content. Admin role or above. Goals must contain at least one non-blank entry.
// @Tags path-requests
// @Accept json
// @Produce json
// @Param id path string true "Organization ID" format(uuid)
// @Param request body SubmitPathRequestRequest true "Request information"
// @Security BearerAuth
// @Success 201 {object} map[string]interface{} "Created request"
// @Failure 400 {object} map[string]string "No goals provided"
// @Failure 403 {object} map[string]string "Admin access required"
// @Router /partners/organizations/{id}/path-requests [post]
func (h *PathRequestHandler) SubmitPathRequest(c *gin.Context) {
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

	var req SubmitPathRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	goals, err := pathreq.NormalizeGoals(req.Goals)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "No goals provided",
			"message": "At least one non-blank goal is required",
		})
		return
	}

	request := models.PartnerPathRequest{
		OrganizationID:    orgID,
		RequestedBy:       access.SubjectID,
		PathName:          req.PathName,
		Description:       req.Description,
		TargetAudience:    req.TargetAudience,
		Goals:             goals,
		PreferredCategory: req.PreferredCategory,
		AdditionalNotes:   req.AdditionalNotes,
		Status:            models.RequestStatusPending,
		SubmittedAt:       time.Now(),
	}

	if err := h.db.Create(&request).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to submit path request",
			"message": err.Error(),
		})
		return
	}

	h.notifier.NotifyRequestSubmitted(&request)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Path request submitted successfully",
		"data":    request,
	})
}

// TransitionPathRequest advances a request through the review workflow
// @Summary Transition a path request
// @Description Move a request to a new workflow status. Super-admin only. Going live stamps the completion time.
// @Tags path-requests
// @Accept json
// @Produce json
// @Param request_id path string true "Request ID" format(uuid)
// @Param transition body TransitionRequest true "Review action"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Updated request"
// @Failure 400 {object} map[string]string "Invalid status"
// @Failure 403 {object} map[string]string "Super-admin access required"
// @Failure 404 {object} map[string]string "Request not found"
// @Router /partners/path-requests/{request_id}/transition [post]
func (h *PathRequestHandler) TransitionPathRequest(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("request_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request ID format",
			"message": err.Error(),
		})
		return
	}

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

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	var request models.PartnerPathRequest
	if err := h.db.First(&request, requestID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Request not found",
				"message": "No path request with this ID",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to retrieve path request",
			"message": err.Error(),
		})
		return
	}

	transition := pathreq.Transition{
		Status:          req.Status,
		ReviewNotes:     req.ReviewNotes,
		RejectionReason: req.RejectionReason,
		PartnerPathID:   req.PartnerPathID,
	}
	if err := pathreq.Apply(&request, transition, time.Now()); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid status",
			"message": err.Error(),
		})
		return
	}

	if err := h.db.Save(&request).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to update path request",
			"message": err.Error(),
		})
		return
	}

	h.notifier.NotifyRequestTransitioned(&request)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Path request updated",
		"data":    request,
	})
}
