package user

import "errors"

var (
	ErrUserNotFound       = errors.New("User not found")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrEmailExists        = errors.New("Email already in use")
	ErrUserOwnsRequests   = errors.New("User still owns requests and cannot be deleted")
	ErrUserOwnsQuotas     = errors.New("User still owns quota records and cannot be deleted")

	// Submission-time guards on the reporting line
	ErrNoManagerAssigned  = errors.New("No manager assigned to this user")
	ErrManagerRoleInvalid = errors.New("Assigned manager does not have the MANAGER role")

	// Token and role gate errors
	ErrInvalidToken          = errors.New("Invalid or expired token")
	ErrManagerAccessRequired = errors.New("Manager access required")
	ErrHRAdminAccessRequired = errors.New("HR admin access required")
)
