package authz

import "elevatia-backend/shared/database/models"

// Role is the closed set of permission levels. Super-admin is an explicit
// variant rather than an out-of-band identity comparison, so permission
// checks can be exhaustive. Ordering: viewer < admin < owner < super-admin.
type Role int

const (
	RoleNone Role = iota
	RoleViewer
	RoleAdmin
	RoleOwner
	RoleSuperAdmin
)

// ParseRole maps a stored role string to its Role variant. Unknown strings
// map to RoleNone, which satisfies no permission check.
func ParseRole(s string) Role {
	switch s {
	case models.RoleViewer:
		return RoleViewer
	case models.RoleAdmin:
		return RoleAdmin
	case models.RoleOwner:
		return RoleOwner
	default:
		return RoleNone
	}
}

func (r Role) String() string {
	switch r {
	case RoleViewer:
		return models.RoleViewer
	case RoleAdmin:
		return models.RoleAdmin
	case RoleOwner:
		return models.RoleOwner
	case RoleSuperAdmin:
		return "super_admin"
	default:
		return "none"
	}
}

// AtLeast reports whether r grants at least the permissions of min.
func (r Role) AtLeast(min Role) bool {
	return r >= min
}

// CanMutate reports whether r may perform content mutations (create codes,
// create paths, submit path requests). Viewers are read-only.
func (r Role) CanMutate() bool {
	return r.AtLeast(RoleAdmin)
}

// CanManageTeam reports whether r may change organization settings or team
// membership. Owner (or super-admin) only.
func (r Role) CanManageTeam() bool {
	return r.AtLeast(RoleOwner)
}
