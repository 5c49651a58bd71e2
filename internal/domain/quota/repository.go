package quota

import "context"

// Repository - interface for the quotas table
type Repository interface {
	// GetOrCreate returns the ledger row for (userID, year), inserting a
	// default row first if none exists. The insert must be an atomic
	// insert-if-absent so concurrent first access never yields two rows.
	GetOrCreate(ctx context.Context, userID string, year int) (Quota, error)

	// ApplyDelta atomically increments one counter, provisioning the row
	// first when absent. The resulting value is not sign-checked.
	ApplyDelta(ctx context.Context, userID string, year int, counter Counter, delta int) error

	// Upsert overwrites all four counters for (userID, year), inserting
	// the row when absent. HR administrative path only.
	Upsert(ctx context.Context, req UpsertQuotaRequest) error

	Delete(ctx context.Context, userID string, year int) error

	// ExistsByUser reports whether any ledger row belongs to the user.
	// Consulted by the user-deletion integrity guard.
	ExistsByUser(ctx context.Context, userID string) (bool, error)
}
