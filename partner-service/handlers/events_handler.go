package handlers

import (
	"net/http"

	"elevatia-backend/partner-service/services"
	"elevatia-backend/shared/utils/authz"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EventsHandler serves the live path-request event stream
type EventsHandler struct {
	resolver *authz.Resolver
	notifier *services.RequestNotifier
}

func NewEventsHandler(resolver *authz.Resolver, notifier *services.RequestNotifier) *EventsHandler {
	return &EventsHandler{resolver: resolver, notifier: notifier}
}

// Stream upgrades to WebSocket and pushes path-request workflow events
// @Summary Live path-request events
// @Description WebSocket stream of path-request submissions and transitions. Super-admin only.
// @Tags path-requests
// @Security BearerAuth
// @Success 101 {string} string "Switching protocols"
// @Failure 403 {object} map[string]string "Super-admin access required"
// @Router /partners/events [get]
func (h *EventsHandler) Stream(c *gin.Context) {
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

	if h.notifier == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Event stream unavailable",
			"message": "Live updates are not configured",
		})
		return
	}

	h.notifier.HandleConnection(c, access.SubjectID.String())
}
