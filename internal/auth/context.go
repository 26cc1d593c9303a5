package auth

import (
	"context"

	"github.com/resolvedesk/quote-api/internal/domain"
)

// ActorContext holds authenticated actor information
type ActorContext struct {
	UserID         string
	DisplayName    string
	Email          string
	Role           domain.UserRoleType
	OrganizationID domain.OrganizationID
}

type contextKey string

const actorContextKey contextKey = "actorContext"
const orgScopeKey contextKey = "orgScope"

// WithActorContext adds actor context to the context
func WithActorContext(ctx context.Context, actor *ActorContext) context.Context {
	return context.WithValue(ctx, actorContextKey, actor)
}

// FromContext extracts actor context from the context
func FromContext(ctx context.Context) (*ActorContext, bool) {
	actor, ok := ctx.Value(actorContextKey).(*ActorContext)
	return actor, ok
}

// MustFromContext extracts actor context or panics
func MustFromContext(ctx context.Context) *ActorContext {
	actor, ok := FromContext(ctx)
	if !ok {
		panic("actor context not found in context")
	}
	return actor
}

// IsAdmin checks if the actor has the admin role
func (a *ActorContext) IsAdmin() bool {
	return a.Role == domain.RoleAdmin || a.Role == domain.RoleAPIService
}

// HasRolePermission checks if the actor's role grants a permission by
// default. Per-user overrides are layered on top by the permission service.
func (a *ActorContext) HasRolePermission(permission domain.PermissionType) bool {
	if a.IsAdmin() {
		return true
	}
	return hasRolePermission(a.Role, permission)
}

// CanReadAllOrganizations reports whether the actor's role bypasses
// organization scoping for quote reads.
func (a *ActorContext) CanReadAllOrganizations() bool {
	return a.HasRolePermission(domain.PermissionQuotesReadAll) ||
		a.HasRolePermission(domain.PermissionTicketsReadAll)
}

// OrganizationFilter returns the organization to restrict queries to.
// Returns nil when the actor may see every organization.
func (a *ActorContext) OrganizationFilter() *domain.OrganizationID {
	if a.CanReadAllOrganizations() {
		return nil
	}
	org := a.OrganizationID
	return &org
}

// hasRolePermission checks if a role has a specific permission by default
func hasRolePermission(role domain.UserRoleType, permission domain.PermissionType) bool {
	rolePermissions := map[domain.UserRoleType][]domain.PermissionType{
		domain.RoleSupportLead: {
			domain.PermissionQuotesRead, domain.PermissionQuotesCreate, domain.PermissionQuotesUpdate,
			domain.PermissionQuotesApprove, domain.PermissionQuotesReject,
			domain.PermissionQuotesReadAll,
			domain.PermissionTicketsRead, domain.PermissionTicketsReadAll,
		},
		domain.RoleAgent: {
			domain.PermissionQuotesRead, domain.PermissionQuotesCreate, domain.PermissionQuotesUpdate,
			domain.PermissionTicketsRead,
		},
		domain.RoleViewer: {
			domain.PermissionQuotesRead,
			domain.PermissionTicketsRead,
		},
	}

	perms, ok := rolePermissions[role]
	if !ok {
		return false
	}
	for _, p := range perms {
		if p == permission {
			return true
		}
	}
	return false
}

// OrgScope is the effective organization restriction for queries. Set by
// middleware from the actor context; nil OrganizationID means unrestricted.
type OrgScope struct {
	// OrganizationID is the organization to filter by (nil means all organizations)
	OrganizationID *domain.OrganizationID
}

// WithOrgScope adds an organization scope to the context
func WithOrgScope(ctx context.Context, scope *OrgScope) context.Context {
	return context.WithValue(ctx, orgScopeKey, scope)
}

// OrgScopeFromContext extracts the organization scope from the context
func OrgScopeFromContext(ctx context.Context) (*OrgScope, bool) {
	scope, ok := ctx.Value(orgScopeKey).(*OrgScope)
	return scope, ok
}

// GetEffectiveOrgFilter returns the organization ID repositories should
// filter by, or nil when no filtering applies.
func GetEffectiveOrgFilter(ctx context.Context) *domain.OrganizationID {
	if scope, ok := OrgScopeFromContext(ctx); ok && scope != nil {
		return scope.OrganizationID
	}
	if actor, ok := FromContext(ctx); ok {
		return actor.OrganizationFilter()
	}
	return nil
}
