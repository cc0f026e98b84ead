package domain

// TenantScope says which tenant's rows a repository call may see or touch.
//
// The zero value is unbound: reads return nothing and writes are refused.
// Cross-tenant scopes are only built by super-admin handlers, workers and seeding.
type TenantScope struct {
	tenantID    string
	crossTenant bool
}

// ScopeTo binds a scope to a single tenant. An empty id yields an unbound scope.
func ScopeTo(tenantID string) TenantScope {
	return TenantScope{tenantID: tenantID}
}

// CrossTenant returns the explicit escape hatch for administrative operations.
func CrossTenant() TenantScope {
	return TenantScope{crossTenant: true}
}

func (s TenantScope) TenantID() string {
	return s.tenantID
}

// Bound reports whether the scope is tied to exactly one tenant.
func (s TenantScope) Bound() bool {
	return !s.crossTenant && s.tenantID != ""
}

func (s TenantScope) IsCrossTenant() bool {
	return s.crossTenant
}

// Readable reports whether a read under this scope can return any rows.
func (s TenantScope) Readable() bool {
	return s.crossTenant || s.tenantID != ""
}

// Owns reports whether a row owned by tenantID is visible under this scope.
// Rows without an owner are never visible.
func (s TenantScope) Owns(tenantID string) bool {
	if tenantID == "" {
		return false
	}
	return s.crossTenant || s.tenantID == tenantID
}
