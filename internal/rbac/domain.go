package rbac

import "github.com/zsajjad/dr-admission-portal-sub001/internal/shared"

// Admin roles.
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleViewer     = "viewer"
)

// Roles lists the roles in descending order of privilege.
var Roles = []string{RoleSuperAdmin, RoleAdmin, RoleViewer}

var rolePermissions = map[string][]string{
	RoleSuperAdmin: shared.CoreScopes(),
	RoleAdmin: {
		shared.PermBranchesView,
		shared.PermVansView,
		shared.PermUsersView,
	},
	RoleViewer: {
		shared.PermBranchesView,
		shared.PermVansView,
	},
}

// PermissionsFor returns the permissions granted to role. Unknown roles get
// none.
func PermissionsFor(role string) []string {
	return append([]string(nil), rolePermissions[role]...)
}

// ValidRole reports whether role is one of Roles.
func ValidRole(role string) bool {
	_, ok := rolePermissions[role]
	return ok
}
