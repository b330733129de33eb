package handlers

import (
	"net/http"
	"time"

	"elevatia-backend/partner-service/middleware"
	"elevatia-backend/shared/database/models"
	"elevatia-backend/shared/utils/authz"
	"elevatia-backend/shared/utils/codes"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CodeHandler serves access code issuance and redemption
type CodeHandler struct {
	db       *gorm.DB
	resolver *authz.Resolver
}

func NewCodeHandler(db *gorm.DB, resolver *authz.Resolver) *CodeHandler {
	return &CodeHandler{db: db, resolver: resolver}
}

// CreateCodeRequest represents request body for issuing an access code
type CreateCodeRequest struct {
	Type           string     `json:"type" binding:"required,oneof=single multi"`
	MaxRedemptions int        `json:"max_redemptions"`
	ExpiresAt      *time.Time `json:"expires_at"`
	DurationDays   int        `json:"duration_days"`
	Prefix         string     `json:"prefix"`
	Label          string     `json:"label"`
	Notes          string     `json:"notes"`
}

// issuePrefix picks the code prefix: caller-supplied when present, otherwise
// derived from the organization slug.
func issuePrefix(requested, slug string) string {
	if requested != "" {
		return requested
	}
	return codes.DefaultPrefix(slug)
}

// normalizeMaxRedemptions applies the type rules: single-use codes are
// always capped at 1 regardless of caller input; multi-use codes need an
// explicit positive cap.
func normalizeMaxRedemptions(codeType string, requested int) (int, bool) {
	if codeType == models.CodeTypeSingle {
		return 1, true
	}
	if requested <= 0 {
		return 0, false
	}
	return requested, true
}

// RedeemCodeRequest represents request body for redeeming an access code
type RedeemCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// CodeResponse wraps a code with its derived lifecycle status
type CodeResponse struct {
	models.PartnerCode
	Status codes.Status `json:"status"`
}

// fields a partner admin may edit on an issued code
var codeEditableFields = map[string]bool{
	"is_active": true,
	"label":     true,
	"notes":     true,
}

// filterCodeUpdates keeps only allow-listed fields from an update payload.
// Counters, expiry and the code string itself are immutable after issuance.
func filterCodeUpdates(updates map[string]interface{}) map[string]interface{} {
	allowed := make(map[string]interface{})
	for field, value := range updates {
		if codeEditableFields[field] {
			allowed[field] = value
		}
	}
	return allowed
}

// ListCodes retrieves the organization's access codes, newest first
// @Summary List access codes
// @Description Get all access codes for the organization with their derived status. Members only.
// @Tags codes
// @Produce json
// @Param id path string true "Organization ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string "Not authorized for this organization"
// @Router /partners/organizations/{id}/codes [get]
func (h *CodeHandler) ListCodes(c *gin.Context) {
	orgID, ok := parseOrgID(c, c.Param("id"))
	if !ok {
		return
	}

	_, ok = resolveAccess(c, h.resolver, orgID)
	if !ok {
		return
	}

	var codeList []models.PartnerCode
	if err := h.db.Where("organization_id = ?", orgID).
		Order("created_at DESC").
		Find(&codeList).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to retrieve codes",
			"message": err.Error(),
		})
		return
	}

	now := time.Now()
	response := make([]CodeResponse, 0, len(codeList))
	for _, code := range codeList {
		response = append(response, CodeResponse{
			PartnerCode: code,
			Status:      codes.DeriveStatus(&code, now),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    response,
	})
}

// CreateCode issues a new access code for the organization
// @Summary Issue an access code
// @Description Generate a new access code. Admin role or above. The code string is server-generated and never client-supplied.
// @Tags codes
// @Accept json
// @Produce json
// @Param id path string true "Organization ID" format(uuid)
// @Param code body CreateCodeRequest true "Code parameters"
// @Security BearerAuth
// @Success 201 {object} CodeResponse
// @Failure 403 {object} map[string]string "Admin access required"
// @Router /partners/organizations/{id}/codes [post]
func (h *CodeHandler) CreateCode(c *gin.Context) {
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

	var req CreateCodeRequest
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

	maxRedemptions, ok := normalizeMaxRedemptions(req.Type, req.MaxRedemptions)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid max redemptions",
			"message": "Multi-use codes require a positive max_redemptions",
		})
		return
	}

	durationDays := req.DurationDays
	if durationDays <= 0 {
		durationDays = org.DefaultCodeDurationDays
	}

	expiresAt := time.Now().AddDate(0, 0, 90)
	if req.ExpiresAt != nil {
		expiresAt = *req.ExpiresAt
	}

	generated, err := codes.Generate(issuePrefix(req.Prefix, org.Slug), func(candidate string) (bool, error) {
		var count int64
		if err := h.db.Model(&models.PartnerCode{}).Where("code = ?", candidate).Count(&count).Error; err != nil {
			return false, err
		}
		return count > 0, nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to generate code",
			"message": err.Error(),
		})
		return
	}

	code := models.PartnerCode{
		Code:           generated,
		OrganizationID: orgID,
		Type:           req.Type,
		MaxRedemptions: maxRedemptions,
		ExpiresAt:      expiresAt,
		DurationDays:   durationDays,
		CreatedBy:      access.SubjectID,
		IsActive:       true,
		Label:          req.Label,
		Notes:          req.Notes,
	}

	if err := h.db.Create(&code).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to create code",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Access code created successfully",
		"data": CodeResponse{
			PartnerCode: code,
			Status:      codes.DeriveStatus(&code, time.Now()),
		},
	})
}

// UpdateCode edits an issued code through the allow-list
// @Summary Update an access code
// @Description Edit is_active, label or notes. Admin role or above. All other fields are immutable.
// @Tags codes
// @Accept json
// @Produce json
// @Param id path string true "Organization ID" format(uuid)
// @Param code_id path string true "Code ID" format(uuid)
// @Param code body map[string]interface{} true "Fields to update"
// @Security BearerAuth
// @Success 200 {object} CodeResponse
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 404 {object} map[string]string "Code not found in this organization"
// @Router /partners/organizations/{id}/codes/{code_id} [patch]
func (h *CodeHandler) UpdateCode(c *gin.Context) {
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

	codeID, err := uuid.Parse(c.Param("code_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid code ID format",
			"message": err.Error(),
		})
		return
	}

	var code models.PartnerCode
	if err := h.db.Where("id = ? AND organization_id = ?", codeID, orgID).First(&code).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Code not found",
				"message": "No code with this ID in the organization",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to retrieve code",
			"message": err.Error(),
		})
		return
	}

	allowed := filterCodeUpdates(updates)
	if len(allowed) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "No updatable fields",
			"message": "Only is_active, label and notes can be updated",
		})
		return
	}

	if err := h.db.Model(&code).Updates(allowed).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to update code",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Code updated successfully",
		"data": CodeResponse{
			PartnerCode: code,
			Status:      codes.DeriveStatus(&code, time.Now()),
		},
	})
}

// RedeemCode redeems an access code for the calling user
// @Summary Redeem an access code
// @Description Exchange a valid code for a timed access grant. Any authenticated user. The redemption counter and the grant are written in one transaction.
// @Tags codes
// @Accept json
// @Produce json
// @Param redemption body RedeemCodeRequest true "Code to redeem"
// @Security BearerAuth
// @Success 201 {object} map[string]interface{} "Access grant"
// @Failure 404 {object} map[string]string "Unknown code"
// @Failure 410 {object} map[string]string "Code not redeemable"
// @Router /partners/redeem [post]
func (h *CodeHandler) RedeemCode(c *gin.Context) {
	subject, ok := middleware.GetSubject(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Unauthenticated",
			"message": "No verified identity on request",
		})
		return
	}

	var req RedeemCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	now := time.Now()
	var redemption models.PartnerRedemption

	err := h.db.Transaction(func(tx *gorm.DB) error {
		var code models.PartnerCode
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("code = ?", req.Code).
			First(&code).Error; err != nil {
			return err
		}

		if status := codes.DeriveStatus(&code, now); status != codes.StatusActive {
			return &codeNotRedeemableError{status: status}
		}

		redemption = models.PartnerRedemption{
			UserID:          subject.ID.String(),
			OrganizationID:  code.OrganizationID,
			CodeID:          code.ID,
			CodeUsed:        code.Code,
			RedeemedAt:      now,
			AccessExpiresAt: now.AddDate(0, 0, code.DurationDays),
		}
		if err := tx.Create(&redemption).Error; err != nil {
			return err
		}

		return tx.Model(&code).
			Update("current_redemptions", gorm.Expr("current_redemptions + 1")).Error
	})

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Code not found",
				"message": "No access code matches",
			})
			return
		}
		if notRedeemable, ok := err.(*codeNotRedeemableError); ok {
			c.JSON(http.StatusGone, gin.H{
				"error":   "Code not redeemable",
				"message": "This code is " + string(notRedeemable.status),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to redeem code",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Code redeemed successfully",
		"data":    redemption,
	})
}

type codeNotRedeemableError struct {
	status codes.Status
}

func (e *codeNotRedeemableError) Error() string {
	return "code is " + string(e.status)
}
