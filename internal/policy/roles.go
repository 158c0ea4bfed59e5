// Package policy maps roles to landing pages, page shells and permissions.
package policy

import "github.com/nethal17/Ramanayake-Travels-sub001/internal/models"

// LandingPath is where a user of role lands after login. Every role, known
// or not, maps to exactly one path.
func LandingPath(role models.Role) string {
	switch role {
	case models.RoleAdmin:
		return "/admin/dashboard"
	case models.RoleDriver:
		return "/driver-profile"
	case models.RoleTechnician:
		return "/technician-profile"
	default:
		return "/customer-profile"
	}
}

// Shell is the page chrome wrapping a route.
type Shell string

const (
	ShellPublic   Shell = "public"
	ShellCustomer Shell = "customer"
	ShellAdmin    Shell = "admin"
)

// ShellFor returns the shell a signed-in user of role belongs in.
func ShellFor(role models.Role) Shell {
	if role == models.RoleAdmin {
		return ShellAdmin
	}
	return ShellCustomer
}

// NavItem is one navigation link. Label is an i18n code.
type NavItem struct {
	Label string
	Path  string
}

// NavFor lists the navigation of role's shell.
func NavFor(role models.Role) []NavItem {
	switch role {
	case models.RoleAdmin:
		return []NavItem{
			{Label: "nav.dashboard", Path: "/admin/dashboard"},
			{Label: "nav.vehicles", Path: "/admin/vehicles"},
			{Label: "nav.reservations", Path: "/admin/reservations"},
			{Label: "nav.drivers", Path: "/admin/drivers"},
			{Label: "nav.inquiries", Path: "/admin/inquiries"},
			{Label: "nav.users", Path: "/admin/users"},
		}
	case models.RoleDriver:
		return []NavItem{
			{Label: "nav.trips", Path: "/driver-profile"},
			{Label: "nav.vehicles", Path: "/vehicles"},
		}
	case models.RoleTechnician:
		return []NavItem{
			{Label: "nav.profile", Path: "/technician-profile"},
			{Label: "nav.vehicles", Path: "/vehicles"},
		}
	default:
		return []NavItem{
			{Label: "nav.reservations", Path: "/customer-profile"},
			{Label: "nav.book", Path: "/reservations/new"},
			{Label: "nav.vehicles", Path: "/vehicles"},
		}
	}
}
