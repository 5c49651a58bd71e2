package user

import "context"

// Repository - interface for the users table
type Repository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context) ([]User, error)
	ListManagers(ctx context.Context) ([]User, error)
	Update(ctx context.Context, req UpdateUserRequest) error
	// Delete removes the user after nulling dangling manager and decider
	// references. Ownership guards live in the service layer.
	Delete(ctx context.Context, id string) error

	// ManagerOf resolves the assigned manager of a user. Returns
	// ErrNoManagerAssigned when the user has no manager_id set.
	ManagerOf(ctx context.Context, userID string) (User, error)
}
