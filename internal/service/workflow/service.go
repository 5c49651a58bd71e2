package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cistech/hrms-backend-go/internal/domain/quota"
	"github.com/cistech/hrms-backend-go/internal/domain/request"
	"github.com/cistech/hrms-backend-go/internal/domain/user"
	"github.com/cistech/hrms-backend-go/internal/pkg/database"
)

// QuotaLedger is the slice of the quota service the workflow consumes:
// balance reads at submission and counter deltas at HR approval.
type QuotaLedger interface {
	Balance(ctx context.Context, userID string, year int) (quota.Quota, error)
	RecordLeaveUsage(ctx context.Context, userID string, year int, days int) error
	RecordChangeOffUsage(ctx context.Context, userID string, year int, days int) error
	RecordChangeOffEarned(ctx context.Context, userID string, year int, days int) error
}

// Service drives the two-stage approval workflow. All identity is passed
// in explicitly; nothing here reads ambient auth state.
type Service struct {
	tx       database.TxManager
	users    user.Repository
	quotas   QuotaLedger
	requests request.Repository
}

func NewService(tx database.TxManager, userRepository user.Repository, quotaLedger QuotaLedger, requestRepository request.Repository) *Service {
	return &Service{
		tx:       tx,
		users:    userRepository,
		quotas:   quotaLedger,
		requests: requestRepository,
	}
}

// requireManager resolves the submitter's manager and rejects submissions
// that could never leave the manager stage.
func (s *Service) requireManager(ctx context.Context, userID string) (user.User, error) {
	manager, err := s.users.ManagerOf(ctx, userID)
	if err != nil {
		return user.User{}, err
	}
	if !manager.IsManager() {
		return user.User{}, user.ErrManagerRoleInvalid
	}
	return manager, nil
}

// SubmitLeave validates and persists a LEAVE request. The balance check
// runs against the ledger year of the start date; SICK leave skips it.
func (s *Service) SubmitLeave(ctx context.Context, userID string, req request.SubmitLeaveRequest) (request.Request, error) {
	if err := req.Validate(); err != nil {
		return request.Request{}, err
	}

	if _, err := s.requireManager(ctx, userID); err != nil {
		return request.Request{}, err
	}

	start, end := req.Dates()
	days := request.InclusiveDays(start, end)

	switch request.Reason(req.Reason) {
	case request.ReasonPersonal:
		q, err := s.quotas.Balance(ctx, userID, start.Year())
		if err != nil {
			return request.Request{}, err
		}
		if q.LeaveBalance() < days {
			return request.Request{}, &request.InsufficientBalanceError{
				Kind:      request.BalanceLeave,
				Available: q.LeaveBalance(),
				Requested: days,
			}
		}
	case request.ReasonChangeOff:
		q, err := s.quotas.Balance(ctx, userID, start.Year())
		if err != nil {
			return request.Request{}, err
		}
		if q.ChangeOffBalance() < days {
			return request.Request{}, &request.InsufficientBalanceError{
				Kind:      request.BalanceChangeOff,
				Available: q.ChangeOffBalance(),
				Requested: days,
			}
		}
	case request.ReasonSick:
		// Sick leave is never blocked on balance.
	}

	created, err := s.requests.Create(ctx, request.Request{
		UserID:    userID,
		Type:      request.TypeLeave,
		StartDate: &start,
		EndDate:   &end,
		Reason:    request.Reason(req.Reason),
		Days:      days,
		Status:    request.StatusPendingManager,
	})
	if err != nil {
		return request.Request{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return created, nil
}

// SubmitChangeOff validates and persists a CHANGEOFF request. Logged
// hours are summed from the activity entries at submission time; credit
// is granted only when HR approves.
func (s *Service) SubmitChangeOff(ctx context.Context, userID string, req request.SubmitChangeOffRequest) (request.Request, error) {
	if err := req.Validate(); err != nil {
		return request.Request{}, err
	}

	if _, err := s.requireManager(ctx, userID); err != nil {
		return request.Request{}, err
	}

	departure, ret := req.Dates()

	activities := request.ActivityEntries(req.Activities)
	hours, err := activities.TotalHours()
	if err != nil {
		return request.Request{}, fmt.Errorf("failed to compute logged hours: %w", err)
	}

	attachment := req.AttachmentPath
	created, err := s.requests.Create(ctx, request.Request{
		UserID:         userID,
		Type:           request.TypeChangeOff,
		DepartureDate:  &departure,
		ReturnDate:     &ret,
		Hours:          hours,
		Location:       &req.Location,
		PIC:            &req.PIC,
		JobExecution:   req.JobExecution,
		AttachmentPath: &attachment,
		Activities:     activities,
		Status:         request.StatusPendingManager,
	})
	if err != nil {
		return request.Request{}, fmt.Errorf("failed to create change-off request: %w", err)
	}

	return created, nil
}

// DecideManager records the manager-stage decision. Only the assigned
// manager of the request owner may decide, and only while the request is
// still waiting at the manager stage.
func (s *Service) DecideManager(ctx context.Context, deciderID string, requestID string, approve bool) (request.Request, error) {
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return request.Request{}, err
	}

	if req.Status != request.StatusPendingManager {
		return request.Request{}, request.ErrNotPendingManager
	}

	manager, err := s.users.ManagerOf(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNoManagerAssigned) {
			return request.Request{}, request.ErrNotRequestersManager
		}
		return request.Request{}, err
	}
	if manager.ID != deciderID {
		return request.Request{}, request.ErrNotRequestersManager
	}

	status := request.StatusRejected
	if approve {
		status = request.StatusPendingHR
	}

	decidedAt := time.Now()
	if err := s.requests.Decide(ctx, requestID, request.StageManager, status, deciderID, decidedAt); err != nil {
		return request.Request{}, fmt.Errorf("failed to record manager decision: %w", err)
	}

	req.Status = status
	req.ManagerBy = &deciderID
	req.ManagerAt = &decidedAt
	return req, nil
}

// DecideHR records the HR-stage decision. An approval flips the status
// and applies the ledger delta inside one transaction, so a crash can
// never leave an APPROVED request without its quota effect.
func (s *Service) DecideHR(ctx context.Context, deciderID string, requestID string, approve bool) (request.Request, error) {
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return request.Request{}, err
	}

	if req.Status != request.StatusPendingHR {
		return request.Request{}, request.ErrNotPendingHR
	}

	status := request.StatusRejected
	if approve {
		status = request.StatusApproved
	}

	decidedAt := time.Now()
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.requests.Decide(ctx, requestID, request.StageHR, status, deciderID, decidedAt); err != nil {
			return fmt.Errorf("failed to record HR decision: %w", err)
		}
		if approve {
			if err := s.applyApprovalDelta(ctx, req); err != nil {
				return fmt.Errorf("failed to apply quota delta: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return request.Request{}, err
	}

	req.Status = status
	req.HRBy = &deciderID
	req.HRAt = &decidedAt
	return req, nil
}

// applyApprovalDelta writes the ledger effect of an HR approval. Days
// are recomputed from the stored date range; change-off credit is the
// whole number of 8-hour blocks logged, skipped entirely when zero.
func (s *Service) applyApprovalDelta(ctx context.Context, req request.Request) error {
	switch req.Type {
	case request.TypeLeave:
		if req.StartDate == nil || req.EndDate == nil {
			return fmt.Errorf("leave request %s has no date range", req.ID)
		}
		days := request.InclusiveDays(*req.StartDate, *req.EndDate)
		year := req.StartDate.Year()

		switch req.Reason {
		case request.ReasonPersonal:
			return s.quotas.RecordLeaveUsage(ctx, req.UserID, year, days)
		case request.ReasonChangeOff:
			return s.quotas.RecordChangeOffUsage(ctx, req.UserID, year, days)
		}
		// Sick leave approvals leave the ledger untouched.
		return nil

	case request.TypeChangeOff:
		if req.DepartureDate == nil {
			return fmt.Errorf("change-off request %s has no departure date", req.ID)
		}
		credit := request.Credit(req.Hours)
		if credit == 0 {
			return nil
		}
		return s.quotas.RecordChangeOffEarned(ctx, req.UserID, req.DepartureDate.Year(), credit)
	}

	return nil
}

// GetRequest returns a single request by id.
func (s *Service) GetRequest(ctx context.Context, id string) (request.Request, error) {
	return s.requests.GetByID(ctx, id)
}

// MyRequests lists the caller's own requests, newest first.
func (s *Service) MyRequests(ctx context.Context, userID string) ([]request.Request, error) {
	return s.requests.ListByOwner(ctx, userID)
}

// PendingForManager lists requests waiting on the given manager.
func (s *Service) PendingForManager(ctx context.Context, managerID string) ([]request.Request, error) {
	return s.requests.ListPendingForManager(ctx, managerID)
}

// TeamRequests lists every request owned by the manager's reports.
func (s *Service) TeamRequests(ctx context.Context, managerID string) ([]request.Request, error) {
	return s.requests.ListByManagerTeam(ctx, managerID)
}

// PendingHR lists every request waiting at the HR stage.
func (s *Service) PendingHR(ctx context.Context) ([]request.Request, error) {
	return s.requests.ListPendingHR(ctx)
}
