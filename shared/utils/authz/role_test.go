package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleViewer, ParseRole("viewer"))
	assert.Equal(t, RoleAdmin, ParseRole("admin"))
	assert.Equal(t, RoleOwner, ParseRole("owner"))
	assert.Equal(t, RoleNone, ParseRole("super_admin")) // never stored
	assert.Equal(t, RoleNone, ParseRole(""))
	assert.Equal(t, RoleNone, ParseRole("root"))
}

func TestRoleOrdering(t *testing.T) {
	assert.True(t, RoleSuperAdmin.AtLeast(RoleOwner))
	assert.True(t, RoleOwner.AtLeast(RoleAdmin))
	assert.True(t, RoleAdmin.AtLeast(RoleViewer))
	assert.False(t, RoleViewer.AtLeast(RoleAdmin))
	assert.False(t, RoleNone.AtLeast(RoleViewer))
}

func TestRolePermissions(t *testing.T) {
	tests := []struct {
		role          Role
		canMutate     bool
		canManageTeam bool
	}{
		{RoleNone, false, false},
		{RoleViewer, false, false},
		{RoleAdmin, true, false},
		{RoleOwner, true, true},
		{RoleSuperAdmin, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			assert.Equal(t, tt.canMutate, tt.role.CanMutate())
			assert.Equal(t, tt.canManageTeam, tt.role.CanManageTeam())
		})
	}
}
