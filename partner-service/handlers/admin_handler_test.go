package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elevatia-backend/partner-service/middleware"
	"elevatia-backend/shared/database/models/auth"
	"elevatia-backend/shared/identity"
	"elevatia-backend/shared/utils/authz"
)

// stubGateway serves a fixed subject for any token and a fixed account
// lookup result.
type stubGateway struct {
	subject *identity.Subject
	account *auth.Account
}

func (g *stubGateway) VerifyToken(string) (*identity.Subject, error) {
	return g.subject, nil
}

func (g *stubGateway) FindAccountByEmail(string) (*auth.Account, error) {
	if g.account == nil {
		return nil, identity.ErrAccountNotFound
	}
	return g.account, nil
}

func TestAddAdminUnknownAccount(t *testing.T) {
	gin.SetMode(gin.TestMode)

	superAdminID := uuid.New()
	gateway := &stubGateway{
		subject: &identity.Subject{ID: superAdminID, Email: "root@elevatia.test"},
	}
	resolver := authz.NewResolverWithSuperAdmin(nil, gateway, superAdminID)

	// The nil store would panic on any write; reaching the 404 proves no
	// partner-admin record is created for an unknown email.
	handler := NewAdminHandler(nil, resolver, gateway)

	router := gin.New()
	router.POST("/api/partners/organizations/:id/admins",
		middleware.AuthMiddleware(gateway), handler.AddAdmin)

	body := `{"email":"ghost@acme.test","role":"viewer"}`
	req := httptest.NewRequest(http.MethodPost,
		"/api/partners/organizations/"+uuid.New().String()+"/admins",
		strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer test-token")
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Account not found")
}
