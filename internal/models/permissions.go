package models

import "fmt"

// Permission names one of the seven capabilities a role can grant.
type Permission string

const (
	PermViewDashboard  Permission = "view_dashboard"
	PermManageUsers    Permission = "manage_users"
	PermManageVenues   Permission = "manage_venues"
	PermManageBookings Permission = "manage_bookings"
	PermViewReports    Permission = "view_reports"
	PermEditContent    Permission = "edit_content"
	PermAccessSettings Permission = "access_settings"
)

// PermissionSet holds the fixed capability flags granted by a role.
type PermissionSet struct {
	CanViewDashboard  bool `json:"can_view_dashboard"`
	CanManageUsers    bool `json:"can_manage_users"`
	CanManageVenues   bool `json:"can_manage_venues"`
	CanManageBookings bool `json:"can_manage_bookings"`
	CanViewReports    bool `json:"can_view_reports"`
	CanEditContent    bool `json:"can_edit_content"`
	CanAccessSettings bool `json:"can_access_settings"`
}

// Has returns the flag for a single permission.
func (s PermissionSet) Has(p Permission) bool {
	switch p {
	case PermViewDashboard:
		return s.CanViewDashboard
	case PermManageUsers:
		return s.CanManageUsers
	case PermManageVenues:
		return s.CanManageVenues
	case PermManageBookings:
		return s.CanManageBookings
	case PermViewReports:
		return s.CanViewReports
	case PermEditContent:
		return s.CanEditContent
	case PermAccessSettings:
		return s.CanAccessSettings
	default:
		return false
	}
}

// DefaultPermissions returns the static permission assignment for a role.
// The table is fixed configuration data and is never mutated at runtime.
// An unrecognized role is a data-integrity bug, not a user error.
func DefaultPermissions(role UserRole) (PermissionSet, error) {
	switch role {
	case RoleAdmin:
		return PermissionSet{
			CanViewDashboard:  true,
			CanManageUsers:    true,
			CanManageVenues:   true,
			CanManageBookings: true,
			CanViewReports:    true,
			CanEditContent:    true,
			CanAccessSettings: true,
		}, nil
	case RoleManager:
		return PermissionSet{
			CanViewDashboard:  true,
			CanManageVenues:   true,
			CanManageBookings: true,
			CanViewReports:    true,
			CanEditContent:    true,
		}, nil
	case RoleStaff:
		return PermissionSet{
			CanViewDashboard:  true,
			CanManageBookings: true,
		}, nil
	case RoleUser:
		return PermissionSet{}, nil
	default:
		return PermissionSet{}, fmt.Errorf("no permission set defined for role %q", role)
	}
}
