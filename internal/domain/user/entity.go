package user

import "time"

type Role string

const (
	RoleEmployee Role = "EMPLOYEE"
	RoleManager  Role = "MANAGER"
	RoleHRAdmin  Role = "HR_ADMIN"
)

// ValidRoles lists every role the HR admin may assign.
var ValidRoles = []Role{RoleEmployee, RoleManager, RoleHRAdmin}

type User struct {
	ID           string
	Email        string
	Name         string
	Role         Role
	ManagerID    *string
	Division     *string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Join field, populated by list queries for display
	ManagerName *string
}

// IsManager checks if user can decide the manager stage
func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

// IsHRAdmin checks if user can decide the HR stage and manage users/quotas
func (u *User) IsHRAdmin() bool {
	return u.Role == RoleHRAdmin
}
