package authz

import (
	"testing"

	"elevatia-backend/shared/database/models"
	"elevatia-backend/shared/identity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrant(t *testing.T) {
	subjectID := uuid.New()
	orgID := uuid.New()
	otherOrgID := uuid.New()

	subject := &identity.Subject{ID: subjectID, Email: "admin@acme.test"}
	admin := &models.PartnerAdmin{
		ID:             subjectID,
		Email:          "admin@acme.test",
		OrganizationID: orgID,
		Role:           models.RoleAdmin,
	}

	t.Run("member of target organization", func(t *testing.T) {
		access, err := Grant(subject, admin, orgID)
		require.NoError(t, err)
		assert.Equal(t, RoleAdmin, access.Role)
		assert.Equal(t, orgID, access.OrganizationID)
		assert.Equal(t, subjectID, access.SubjectID)
	})

	t.Run("no target organization", func(t *testing.T) {
		access, err := Grant(subject, admin, uuid.Nil)
		require.NoError(t, err)
		assert.Equal(t, orgID, access.OrganizationID)
	})

	t.Run("cross-tenant access refused", func(t *testing.T) {
		_, err := Grant(subject, admin, otherOrgID)
		assert.ErrorIs(t, err, ErrNotAuthorized)
	})

	t.Run("no admin record", func(t *testing.T) {
		_, err := Grant(subject, nil, orgID)
		assert.ErrorIs(t, err, ErrNotAuthorized)
	})

	t.Run("unknown stored role refused", func(t *testing.T) {
		corrupt := &models.PartnerAdmin{
			ID:             subjectID,
			OrganizationID: orgID,
			Role:           "superuser",
		}
		_, err := Grant(subject, corrupt, orgID)
		assert.ErrorIs(t, err, ErrNotAuthorized)
	})

	t.Run("owner role carried through", func(t *testing.T) {
		owner := &models.PartnerAdmin{
			ID:             subjectID,
			OrganizationID: orgID,
			Role:           models.RoleOwner,
		}
		access, err := Grant(subject, owner, orgID)
		require.NoError(t, err)
		assert.True(t, access.Role.CanManageTeam())
		assert.False(t, access.IsSuperAdmin())
	})
}
