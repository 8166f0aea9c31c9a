package models

// RoleType defines the user role type
type RoleType string

const (
	RoleDeveloper  RoleType = "DEVELOPER"
	RoleSuperAdmin RoleType = "SUPERADMIN"
	RoleAdmin      RoleType = "ADMIN"
	RoleStudent    RoleType = "STUDENT"
	RoleCompany    RoleType = "COMPANY"
)

// ValidRole reports whether the value is a known role
func ValidRole(r RoleType) bool {
	switch r {
	case RoleDeveloper, RoleSuperAdmin, RoleAdmin, RoleStudent, RoleCompany:
		return true
	}
	return false
}

// IsScoped reports whether the role is confined to a single college.
// Only Developer operates system-wide.
func (r RoleType) IsScoped() bool {
	return r != RoleDeveloper
}

// DashboardPath returns the per-role landing path the client is redirected to
// after login, matching the paths of the legacy dashboards.
func (r RoleType) DashboardPath() string {
	switch r {
	case RoleDeveloper:
		return "/developer/dashboard"
	case RoleSuperAdmin:
		return "/superadmin/dashboard"
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleStudent:
		return "/student/dashboard"
	case RoleCompany:
		return "/company/dashboard"
	default:
		return "/"
	}
}
