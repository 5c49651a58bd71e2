package postgresql

import (
	"context"
	"time"

	"github.com/cistech/hrms-backend-go/internal/domain/request"
	"github.com/cistech/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type requestRepositoryImpl struct {
	db *database.DB
}

func NewRequestRepository(db *database.DB) request.Repository {
	return &requestRepositoryImpl{db: db}
}

const requestColumns = `
	r.id, r.user_id, r.type,
	r.start_date, r.end_date, r.reason, r.days,
	r.departure_date, r.return_date, r.hours,
	r.location, r.pic, r.job_execution, r.attachment_path, r.activities,
	r.status, r.manager_by, r.manager_at, r.hr_by, r.hr_at,
	r.created_at, r.updated_at
`

func scanRequest(row pgx.Row, withOwner bool) (request.Request, error) {
	var req request.Request
	var reason *string

	dest := []interface{}{
		&req.ID, &req.UserID, &req.Type,
		&req.StartDate, &req.EndDate, &reason, &req.Days,
		&req.DepartureDate, &req.ReturnDate, &req.Hours,
		&req.Location, &req.PIC, &req.JobExecution, &req.AttachmentPath, &req.Activities,
		&req.Status, &req.ManagerBy, &req.ManagerAt, &req.HRBy, &req.HRAt,
		&req.CreatedAt, &req.UpdatedAt,
	}
	if withOwner {
		dest = append(dest, &req.EmployeeName, &req.EmployeeEmail, &req.EmployeeDivision)
	}

	if err := row.Scan(dest...); err != nil {
		return request.Request{}, err
	}
	if reason != nil {
		req.Reason = request.Reason(*reason)
	}

	return req, nil
}

func collectRequests(rows pgx.Rows, withOwner bool) ([]request.Request, error) {
	defer rows.Close()

	requests := make([]request.Request, 0)
	for rows.Next() {
		req, err := scanRequest(rows, withOwner)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	return requests, nil
}

// Create implements request.Repository.
func (r *requestRepositoryImpl) Create(ctx context.Context, req request.Request) (request.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO requests (
			user_id, type,
			start_date, end_date, reason, days,
			departure_date, return_date, hours,
			location, pic, job_execution, attachment_path, activities,
			status
		) VALUES (
			$1, $2,
			$3, $4, $5, $6,
			$7, $8, $9,
			$10, $11, $12, $13, $14,
			$15
		) RETURNING id, created_at, updated_at
	`

	var reason *string
	if req.Reason != "" {
		s := string(req.Reason)
		reason = &s
	}

	err := q.QueryRow(ctx, query,
		req.UserID, req.Type,
		req.StartDate, req.EndDate, reason, req.Days,
		req.DepartureDate, req.ReturnDate, req.Hours,
		req.Location, req.PIC, req.JobExecution, req.AttachmentPath, req.Activities,
		req.Status,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return request.Request{}, err
	}

	return req, nil
}

// GetByID implements request.Repository.
func (r *requestRepositoryImpl) GetByID(ctx context.Context, id string) (request.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + requestColumns + `
		FROM requests r
		WHERE r.id = $1
	`

	req, err := scanRequest(q.QueryRow(ctx, query, id), false)
	if err != nil {
		if err == pgx.ErrNoRows {
			return request.Request{}, request.ErrRequestNotFound
		}
		return request.Request{}, err
	}

	return req, nil
}

// Decide implements request.Repository.
func (r *requestRepositoryImpl) Decide(ctx context.Context, id string, stage request.Stage, status request.Status, deciderID string, decidedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	// Compare-and-set on the stage's pending status: a concurrent
	// decision that already moved the request on matches zero rows.
	var query string
	var pending request.Status
	var staleErr error
	switch stage {
	case request.StageManager:
		pending = request.StatusPendingManager
		staleErr = request.ErrNotPendingManager
		query = `
			UPDATE requests
			SET status = $1, manager_by = $2, manager_at = $3, updated_at = NOW()
			WHERE id = $4 AND status = $5
		`
	case request.StageHR:
		pending = request.StatusPendingHR
		staleErr = request.ErrNotPendingHR
		query = `
			UPDATE requests
			SET status = $1, hr_by = $2, hr_at = $3, updated_at = NOW()
			WHERE id = $4 AND status = $5
		`
	}

	result, err := q.Exec(ctx, query, status, deciderID, decidedAt, id, pending)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		var exists bool
		if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM requests WHERE id = $1)`, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return request.ErrRequestNotFound
		}
		return staleErr
	}

	return nil
}

// ListByOwner implements request.Repository.
func (r *requestRepositoryImpl) ListByOwner(ctx context.Context, userID string) ([]request.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + requestColumns + `
		FROM requests r
		WHERE r.user_id = $1
		ORDER BY r.created_at DESC
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}

	return collectRequests(rows, false)
}

// ListPendingForManager implements request.Repository.
func (r *requestRepositoryImpl) ListPendingForManager(ctx context.Context, managerID string) ([]request.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + requestColumns + `,
			   u.name AS employee_name, u.email AS employee_email, u.division AS employee_division
		FROM requests r
		JOIN users u ON r.user_id = u.id
		WHERE u.manager_id = $1 AND r.status = $2
		ORDER BY r.created_at DESC
	`

	rows, err := q.Query(ctx, query, managerID, request.StatusPendingManager)
	if err != nil {
		return nil, err
	}

	return collectRequests(rows, true)
}

// ListPendingHR implements request.Repository.
func (r *requestRepositoryImpl) ListPendingHR(ctx context.Context) ([]request.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + requestColumns + `,
			   u.name AS employee_name, u.email AS employee_email, u.division AS employee_division
		FROM requests r
		JOIN users u ON r.user_id = u.id
		WHERE r.status = $1
		ORDER BY r.created_at DESC
	`

	rows, err := q.Query(ctx, query, request.StatusPendingHR)
	if err != nil {
		return nil, err
	}

	return collectRequests(rows, true)
}

// ListByManagerTeam implements request.Repository.
func (r *requestRepositoryImpl) ListByManagerTeam(ctx context.Context, managerID string) ([]request.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + requestColumns + `,
			   u.name AS employee_name, u.email AS employee_email, u.division AS employee_division
		FROM requests r
		JOIN users u ON r.user_id = u.id
		WHERE u.manager_id = $1
		ORDER BY r.created_at DESC
	`

	rows, err := q.Query(ctx, query, managerID)
	if err != nil {
		return nil, err
	}

	return collectRequests(rows, true)
}

// ExistsByOwner implements request.Repository.
func (r *requestRepositoryImpl) ExistsByOwner(ctx context.Context, userID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (SELECT 1 FROM requests WHERE user_id = $1)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, userID).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}
