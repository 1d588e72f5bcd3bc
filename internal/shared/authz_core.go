package shared

// Admission portal permissions.
const (
	PermBranchesView = "branches.view"
	PermVansView     = "vans.view"
	PermUsersView    = "users.view"
	PermUsersEdit    = "users.edit"
)

// CoreScopes lists every permission known to the portal.
func CoreScopes() []string {
	return []string{
		PermBranchesView,
		PermVansView,
		PermUsersView,
		PermUsersEdit,
	}
}
