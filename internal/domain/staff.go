package domain

import "time"

// StaffRole enumerates internal operator roles.
type StaffRole string

const (
	StaffRoleStaff      StaffRole = "STAFF"
	StaffRoleAdmin      StaffRole = "ADMIN"
	StaffRoleSuperAdmin StaffRole = "SUPER_ADMIN"
)

// ValidStaffRole reports whether r is one of the canonical roles.
func ValidStaffRole(r StaffRole) bool {
	switch r {
	case StaffRoleStaff, StaffRoleAdmin, StaffRoleSuperAdmin:
		return true
	}
	return false
}

// AtLeastAdmin reports whether r carries admin privileges.
func (r StaffRole) AtLeastAdmin() bool {
	return r == StaffRoleAdmin || r == StaffRoleSuperAdmin
}

// StaffAccount models a portal operator or administrator.
type StaffAccount struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         StaffRole
	Active       bool
	AvatarPath   string
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
