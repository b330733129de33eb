package handlers

import (
	"net/http"
	"strings"
	"time"

	"elevatia-backend/shared/database/models/auth"
	authutils "elevatia-backend/shared/utils/auth"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthHandler serves account login and token validation
type AuthHandler struct {
	db *gorm.DB
}

func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{db: db}
}

// LoginRequest represents login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest represents account registration request body
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"display_name"`
}

// ValidateRequest represents token validation request body
type ValidateRequest struct {
	Token string `json:"token" binding:"required"`
}

// Login authenticates an account and issues a JWT
// @Summary Account login
// @Description Authenticate with email and password, receive a bearer token.
// @Tags identity
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} map[string]interface{} "Token and account"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	var account auth.Account
	if err := h.db.Where("email = ?", strings.ToLower(req.Email)).First(&account).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Invalid credentials",
			"message": "Email or password is incorrect",
		})
		return
	}

	if account.Status != "ACTIVE" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Account disabled",
			"message": "This account is not active",
		})
		return
	}

	if !authutils.CheckPasswordHash(req.Password, account.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Invalid credentials",
			"message": "Email or password is incorrect",
		})
		return
	}

	token, err := authutils.GenerateJWT(account.ID, account.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to generate token",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"token":      token,
			"expires_in": int(authutils.GetJWTExpireDuration().Seconds()),
			"account": gin.H{
				"id":           account.ID,
				"email":        account.Email,
				"display_name": account.DisplayName,
			},
		},
	})
}

// Register creates a new account
// @Summary Account registration
// @Description Create an account. Registration alone grants no partner-dashboard access.
// @Tags identity
// @Accept json
// @Produce json
// @Param account body RegisterRequest true "Account information"
// @Success 201 {object} map[string]interface{} "Created account"
// @Failure 409 {object} map[string]string "Email already registered"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	email := strings.ToLower(req.Email)

	var existing auth.Account
	if err := h.db.Where("email = ?", email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Email already registered",
			"message": "An account with this email already exists",
		})
		return
	}

	hashedPassword, err := authutils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to hash password",
			"message": err.Error(),
		})
		return
	}

	account := auth.Account{
		Email:       email,
		Password:    hashedPassword,
		DisplayName: req.DisplayName,
		Status:      "ACTIVE",
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := h.db.Create(&account).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to create account",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Account created successfully",
		"data": gin.H{
			"id":           account.ID,
			"email":        account.Email,
			"display_name": account.DisplayName,
		},
	})
}

// Validate checks a bearer token and returns its subject
// @Summary Token validation
// @Description Validate a JWT and return the subject it identifies.
// @Tags identity
// @Accept json
// @Produce json
// @Param token body ValidateRequest true "Token to validate"
// @Success 200 {object} map[string]interface{} "Token subject"
// @Failure 401 {object} map[string]string "Invalid or expired token"
// @Router /auth/validate [post]
func (h *AuthHandler) Validate(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	claims, err := authutils.ValidateJWT(req.Token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Invalid token",
			"message": "Token is invalid or expired",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"subject_id": claims.SubjectID,
			"email":      claims.Email,
			"expires_at": claims.ExpiresAt.Time,
		},
	})
}
