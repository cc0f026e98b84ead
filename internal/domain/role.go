package domain

import "slices"

// Role represents an admin role in the backoffice
type Role string

const (
	// RoleSuperAdmin manages tenants and may act on any tenant's content
	RoleSuperAdmin Role = "super_admin"

	// RoleAdmin manages all content and settings of its own tenant
	RoleAdmin Role = "admin"

	// RoleEditor manages content of its own tenant
	RoleEditor Role = "editor"
)

// ValidRoles contains all valid roles in the system
var ValidRoles = []Role{RoleSuperAdmin, RoleAdmin, RoleEditor}

// IsValidRole checks if a given role is valid
func IsValidRole(role string) bool {
	return slices.Contains(ValidRoles, Role(role))
}

// HasRole checks if a slice of roles contains a specific role
func HasRole(roles []string, role Role) bool {
	return slices.Contains(roles, string(role))
}

// HasAnyRole checks if a slice of roles contains any of the specified roles
func HasAnyRole(roles []string, requiredRoles ...Role) bool {
	for _, required := range requiredRoles {
		if HasRole(roles, required) {
			return true
		}
	}
	return false
}
