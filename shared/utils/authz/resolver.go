package authz

import (
	"errors"

	"elevatia-backend/shared/config"
	"elevatia-backend/shared/database/models"
	"elevatia-backend/shared/identity"
	"elevatia-backend/shared/utils/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrUnauthenticated means the bearer token is missing, invalid or
	// expired. The caller must re-login.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrNotAuthorized means the identity is valid but holds no partner-admin
	// record, or targets another tenant's organization.
	ErrNotAuthorized = errors.New("not authorized")
)

// Access is the result of resolving a bearer token against an optional
// target organization.
type Access struct {
	SubjectID      uuid.UUID
	Email          string
	Role           Role
	OrganizationID uuid.UUID            // zero for a super-admin with no target
	Admin          *models.PartnerAdmin // nil for super-admin
}

// IsSuperAdmin reports whether this access bypasses tenant membership.
func (a *Access) IsSuperAdmin() bool {
	return a.Role == RoleSuperAdmin
}

// Resolver determines the caller's identity and effective role. Every
// administrative handler runs it before touching the store - the store
// itself enforces no tenant isolation.
type Resolver struct {
	db           *gorm.DB
	gateway      identity.Gateway
	superAdminID uuid.UUID
}

// NewResolver builds a resolver. The super-admin subject id comes from
// configuration; an unset or malformed value disables the super-admin role.
func NewResolver(db *gorm.DB, gateway identity.Gateway) *Resolver {
	superAdminID, err := uuid.Parse(config.GetConfig().SuperAdminID)
	if err != nil {
		superAdminID = uuid.Nil
	}
	return NewResolverWithSuperAdmin(db, gateway, superAdminID)
}

// NewResolverWithSuperAdmin builds a resolver with an explicit super-admin
// subject id. uuid.Nil disables the super-admin role.
func NewResolverWithSuperAdmin(db *gorm.DB, gateway identity.Gateway, superAdminID uuid.UUID) *Resolver {
	return &Resolver{db: db, gateway: gateway, superAdminID: superAdminID}
}

// Resolve verifies the bearer token and resolves the caller's role for the
// target organization. A zero targetOrgID means "no specific organization".
func (r *Resolver) Resolve(token string, targetOrgID uuid.UUID) (*Access, error) {
	subject, err := r.gateway.VerifyToken(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	return r.ResolveSubject(subject, targetOrgID)
}

// ResolveSubject resolves an already-verified subject. Used by handlers that
// receive the subject from the auth middleware.
func (r *Resolver) ResolveSubject(subject *identity.Subject, targetOrgID uuid.UUID) (*Access, error) {
	if r.superAdminID != uuid.Nil && subject.ID == r.superAdminID {
		return &Access{
			SubjectID:      subject.ID,
			Email:          subject.Email,
			Role:           RoleSuperAdmin,
			OrganizationID: targetOrgID,
		}, nil
	}

	admin, err := r.lookupAdmin(subject.ID)
	if err != nil {
		return nil, err
	}

	return Grant(subject, admin, targetOrgID)
}

// Grant is the pure tenancy decision: given a verified subject and its
// partner-admin record, produce the access for a target organization or
// refuse. No cross-tenant access for non-super-admins.
func Grant(subject *identity.Subject, admin *models.PartnerAdmin, targetOrgID uuid.UUID) (*Access, error) {
	if admin == nil {
		return nil, ErrNotAuthorized
	}

	if targetOrgID != uuid.Nil && admin.OrganizationID != targetOrgID {
		return nil, ErrNotAuthorized
	}

	role := ParseRole(admin.Role)
	if role == RoleNone {
		return nil, ErrNotAuthorized
	}

	return &Access{
		SubjectID:      subject.ID,
		Email:          subject.Email,
		Role:           role,
		OrganizationID: admin.OrganizationID,
		Admin:          admin,
	}, nil
}

// lookupAdmin fetches the partner-admin record for a subject, consulting the
// redis cache first.
func (r *Resolver) lookupAdmin(subjectID uuid.UUID) (*models.PartnerAdmin, error) {
	if cached, ok := cache.GetCacheManager().GetAdminResolution(subjectID); ok {
		return cached, nil
	}

	var admin models.PartnerAdmin
	if err := r.db.First(&admin, "id = ?", subjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotAuthorized
		}
		return nil, err
	}

	// Best effort: a cache failure never blocks resolution.
	_ = cache.GetCacheManager().SetAdminResolution(subjectID, &admin)

	return &admin, nil
}
