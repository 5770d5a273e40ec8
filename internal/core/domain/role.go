package domain

import "strings"

// Role is the closed set of account kinds. Unknown values parse to RoleUnknown.
type Role string

const (
	RoleUnknown       Role = ""
	RoleAdministrator Role = "administrator"
	RoleClient        Role = "client"
	RoleEmployee      Role = "employee"
	RoleReception     Role = "reception"
)

// Landing paths per role.
const (
	RouteAdmin    = "/admin"
	RouteEmployee = "/employee"
	RouteCustomer = "/dashboard"
	RouteHome     = "/"
	RouteLogin    = "/login"
)

// AllRoles lists every known role, in declaration order.
var AllRoles = []Role{RoleAdministrator, RoleClient, RoleEmployee, RoleReception}

var dashboardRoutes = map[Role]string{
	RoleAdministrator: RouteAdmin,
	RoleReception:     RouteAdmin,
	RoleEmployee:      RouteEmployee,
	RoleClient:        RouteCustomer,
}

// ParseRole maps a raw string onto the closed role set.
func ParseRole(s string) Role {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if r.Valid() {
		return r
	}
	return RoleUnknown
}

// Valid reports whether r is one of AllRoles.
func (r Role) Valid() bool {
	_, ok := dashboardRoutes[r]
	return ok
}

// DashboardRoute returns the landing path for r; unknown roles land on the home page.
func (r Role) DashboardRoute() string {
	if route, ok := dashboardRoutes[r]; ok {
		return route
	}
	return RouteHome
}

// AccessCheck is a pure predicate over a role.
type AccessCheck func(Role) bool

func roleSet(roles ...Role) AccessCheck {
	set := make(map[Role]struct{}, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return func(r Role) bool {
		_, ok := set[r]
		return ok
	}
}

var (
	// HasAdminAccess is true for administrators only.
	HasAdminAccess = roleSet(RoleAdministrator)
	// HasReceptionAccess also admits administrators, who may act as reception.
	HasReceptionAccess = roleSet(RoleAdministrator, RoleReception)
	IsEmployee         = roleSet(RoleEmployee)
	IsCustomer         = roleSet(RoleClient)
	IsStaff            = roleSet(RoleAdministrator, RoleReception, RoleEmployee)
)
