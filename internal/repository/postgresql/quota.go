package postgresql

import (
	"context"
	"fmt"

	"github.com/cistech/hrms-backend-go/internal/domain/quota"
	"github.com/cistech/hrms-backend-go/internal/pkg/database"
)

type quotaRepositoryImpl struct {
	db *database.DB
}

func NewQuotaRepository(db *database.DB) quota.Repository {
	return &quotaRepositoryImpl{db: db}
}

// counterColumn maps a ledger counter to its column. Deltas never reach
// the SQL text any other way.
func counterColumn(c quota.Counter) (string, error) {
	switch c {
	case quota.CounterLeaveTotal:
		return "leave_total", nil
	case quota.CounterLeaveUsed:
		return "leave_used", nil
	case quota.CounterChangeOffEarned:
		return "changeoff_earned", nil
	case quota.CounterChangeOffUsed:
		return "changeoff_used", nil
	default:
		return "", quota.ErrUnknownCounter
	}
}

// GetOrCreate implements quota.Repository.
func (r *quotaRepositoryImpl) GetOrCreate(ctx context.Context, userID string, year int) (quota.Quota, error) {
	q := GetQuerier(ctx, r.db)

	insert := `
		INSERT INTO quotas (user_id, year, leave_total, leave_used, changeoff_earned, changeoff_used)
		VALUES ($1, $2, $3, 0, 0, 0)
		ON CONFLICT (user_id, year) DO NOTHING
	`
	if _, err := q.Exec(ctx, insert, userID, year, quota.DefaultLeaveTotal); err != nil {
		return quota.Quota{}, err
	}

	query := `
		SELECT id, user_id, year, leave_total, leave_used, changeoff_earned, changeoff_used,
			   created_at, updated_at
		FROM quotas
		WHERE user_id = $1 AND year = $2
	`

	var row quota.Quota
	err := q.QueryRow(ctx, query, userID, year).Scan(
		&row.ID, &row.UserID, &row.Year,
		&row.LeaveTotal, &row.LeaveUsed, &row.ChangeOffEarned, &row.ChangeOffUsed,
		&row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		return quota.Quota{}, err
	}

	return row, nil
}

// ApplyDelta implements quota.Repository.
func (r *quotaRepositoryImpl) ApplyDelta(ctx context.Context, userID string, year int, counter quota.Counter, delta int) error {
	column, err := counterColumn(counter)
	if err != nil {
		return err
	}

	q := GetQuerier(ctx, r.db)

	// Provision the row first so a delta on an untouched year still lands.
	insert := `
		INSERT INTO quotas (user_id, year, leave_total, leave_used, changeoff_earned, changeoff_used)
		VALUES ($1, $2, $3, 0, 0, 0)
		ON CONFLICT (user_id, year) DO NOTHING
	`
	if _, err := q.Exec(ctx, insert, userID, year, quota.DefaultLeaveTotal); err != nil {
		return err
	}

	update := fmt.Sprintf(`
		UPDATE quotas
		SET %s = %s + $1, updated_at = NOW()
		WHERE user_id = $2 AND year = $3
	`, column, column)

	result, err := q.Exec(ctx, update, delta, userID, year)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return quota.ErrQuotaNotFound
	}

	return nil
}

// Upsert implements quota.Repository.
func (r *quotaRepositoryImpl) Upsert(ctx context.Context, req quota.UpsertQuotaRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO quotas (user_id, year, leave_total, leave_used, changeoff_earned, changeoff_used)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, year) DO UPDATE
		SET leave_total = EXCLUDED.leave_total,
			leave_used = EXCLUDED.leave_used,
			changeoff_earned = EXCLUDED.changeoff_earned,
			changeoff_used = EXCLUDED.changeoff_used,
			updated_at = NOW()
	`

	_, err := q.Exec(ctx, query,
		req.UserID, req.Year,
		req.LeaveTotal, req.LeaveUsed, req.ChangeOffEarned, req.ChangeOffUsed,
	)
	return err
}

// Delete implements quota.Repository.
func (r *quotaRepositoryImpl) Delete(ctx context.Context, userID string, year int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM quotas
		WHERE user_id = $1 AND year = $2
	`

	result, err := q.Exec(ctx, query, userID, year)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return quota.ErrQuotaNotFound
	}

	return nil
}

// ExistsByUser implements quota.Repository.
func (r *quotaRepositoryImpl) ExistsByUser(ctx context.Context, userID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (SELECT 1 FROM quotas WHERE user_id = $1)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, userID).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}
