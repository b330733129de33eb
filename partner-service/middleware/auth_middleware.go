package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"elevatia-backend/shared/identity"
)

const subjectKey = "identitySubject"

// AuthMiddleware verifies the bearer token via the identity gateway and
// stores the verified subject in the request context. Role and tenancy
// checks happen later, in the handlers, once the target organization is
// known.
func AuthMiddleware(gateway identity.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization format. Expected Bearer {token}"})
			c.Abort()
			return
		}

		subject, err := gateway.VerifyToken(tokenParts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(subjectKey, subject)

		c.Next()
	}
}

// GetSubject returns the verified subject set by AuthMiddleware
func GetSubject(c *gin.Context) (*identity.Subject, bool) {
	value, exists := c.Get(subjectKey)
	if !exists {
		return nil, false
	}

	subject, ok := value.(*identity.Subject)
	return subject, ok
}
