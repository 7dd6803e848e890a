package authz

const (
	RolePortal      = 10 // tenant self-service
	RoleMaintenance = 20
	RoleAccounting  = 30
	RoleManager     = 40
	RoleAdmin       = 50
)

// IsElevated reports whether the role may decide change requests and edit
// dunning policy.
func IsElevated(roleID int) bool {
	return roleID == RoleManager || roleID == RoleAdmin
}

// IsReadOnly reports whether the role may only view data.
func IsReadOnly(roleID int) bool {
	return roleID == RolePortal
}
