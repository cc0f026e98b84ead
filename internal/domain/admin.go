package domain

// Admin is the authenticated backoffice identity for one request. It is built
// from the verified JWT and never persisted by this service.
type Admin struct {
	ID        string   `json:"id"`
	TenantID  string   `json:"tenant_id,omitempty"`
	Email     string   `json:"email,omitempty"`
	Roles     []string `json:"roles"`
	Confirmed bool     `json:"confirmed"`
}

// IsSuperAdmin is true for admins that are not attached to a tenant and hold
// the super_admin role.
func (a *Admin) IsSuperAdmin() bool {
	return a != nil && a.TenantID == "" && HasRole(a.Roles, RoleSuperAdmin)
}

// Can reports whether the admin holds any of the roles. Super admins can do anything.
func (a *Admin) Can(roles ...Role) bool {
	if a == nil {
		return false
	}
	if a.IsSuperAdmin() {
		return true
	}
	return HasAnyRole(a.Roles, roles...)
}
