package request

import (
	"context"
	"time"
)

// Repository - interface for the requests table
type Repository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)

	// Decide writes a stage decision: the new status plus the audit pair
	// for that stage. The write is a compare-and-set on the stage's
	// pending status, so a request that already moved on yields
	// ErrNotPendingManager / ErrNotPendingHR instead of a second
	// transition.
	Decide(ctx context.Context, id string, stage Stage, status Status, deciderID string, decidedAt time.Time) error

	ListByOwner(ctx context.Context, userID string) ([]Request, error)
	// ListPendingForManager returns PENDING_MANAGER requests whose owner
	// reports to the given manager, newest first, joined with owner info.
	ListPendingForManager(ctx context.Context, managerID string) ([]Request, error)
	// ListPendingHR returns every PENDING_HR request, newest first.
	ListPendingHR(ctx context.Context) ([]Request, error)
	// ListByManagerTeam returns all requests owned by the manager's
	// reports regardless of status.
	ListByManagerTeam(ctx context.Context, managerID string) ([]Request, error)

	// ExistsByOwner reports whether the user owns any request. Consulted
	// by the user-deletion integrity guard.
	ExistsByOwner(ctx context.Context, userID string) (bool, error)
}

// Stage selects which audit pair a decision writes.
type Stage string

const (
	StageManager Stage = "manager"
	StageHR      Stage = "hr"
)
