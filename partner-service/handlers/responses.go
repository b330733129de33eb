package handlers

import (
	"errors"
	"net/http"

	"elevatia-backend/partner-service/middleware"
	"elevatia-backend/shared/identity"
	"elevatia-backend/shared/utils/authz"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SuccessResponse is the generic success envelope
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// resolveAccess pulls the verified subject from the request context and
// resolves its role for the target organization. On failure it writes the
// error response and returns false; handlers just return.
func resolveAccess(c *gin.Context, resolver *authz.Resolver, targetOrgID uuid.UUID) (*authz.Access, bool) {
	subject, ok := middleware.GetSubject(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Unauthenticated",
			"message": "No verified identity on request",
		})
		return nil, false
	}

	access, err := resolver.ResolveSubject(subject, targetOrgID)
	if err != nil {
		respondAuthzError(c, err)
		return nil, false
	}

	return access, true
}

// respondAuthzError maps resolver errors to HTTP responses
func respondAuthzError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, authz.ErrUnauthenticated), errors.Is(err, identity.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Unauthenticated",
			"message": "Invalid or expired token",
		})
	case errors.Is(err, authz.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Not authorized",
			"message": "Insufficient role for this operation",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Authorization failed",
			"message": err.Error(),
		})
	}
}

// parseOrgID parses an organization id from a raw string, writing a 400 on
// failure.
func parseOrgID(c *gin.Context, raw string) (uuid.UUID, bool) {
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Organization ID required",
			"message": "organization_id must be provided",
		})
		return uuid.Nil, false
	}

	orgID, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid organization ID format",
			"message": err.Error(),
		})
		return uuid.Nil, false
	}

	return orgID, true
}
