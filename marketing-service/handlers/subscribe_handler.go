package handlers

import (
	"net/http"

	"elevatia-backend/shared/clients"
	utils "elevatia-backend/shared/utils/auth"

	"github.com/gin-gonic/gin"
)

// SubscribeHandler proxies newsletter signups to the marketing list provider
type SubscribeHandler struct {
	client *clients.MarketingClient
}

func NewSubscribeHandler(client *clients.MarketingClient) *SubscribeHandler {
	return &SubscribeHandler{client: client}
}

// SubscribeRequest represents request body for a newsletter signup
type SubscribeRequest struct {
	Email string `json:"email" binding:"required"`
}

// Subscribe adds an email to the marketing list
// @Summary Newsletter signup
// @Description Forward an email address to the marketing list provider. Public, rate limited by IP.
// @Tags marketing
// @Accept json
// @Produce json
// @Param subscription body SubscribeRequest true "Email to subscribe"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid email"
// @Failure 502 {object} map[string]string "Provider rejected the subscription"
// @Router /subscribe [post]
func (h *SubscribeHandler) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	if err := utils.ValidateEmail(req.Email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid email",
			"message": err.Error(),
		})
		return
	}

	if err := h.client.Subscribe(req.Email); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Subscription failed",
			"message": "The marketing list provider rejected the request",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Subscribed successfully",
	})
}
