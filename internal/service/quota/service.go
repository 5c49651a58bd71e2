package quota

import (
	"context"
	"fmt"

	"github.com/cistech/hrms-backend-go/internal/domain/quota"
)

// Service exposes the balance ledger to the workflow and the HR admin
// surface. Delta operations auto-provision the (user, year) row.
type Service struct {
	quota.Repository
}

func NewService(quotaRepository quota.Repository) *Service {
	return &Service{Repository: quotaRepository}
}

// Balance returns the ledger snapshot for (userID, year), provisioning a
// default row on first access.
func (s *Service) Balance(ctx context.Context, userID string, year int) (quota.Quota, error) {
	row, err := s.Repository.GetOrCreate(ctx, userID, year)
	if err != nil {
		return quota.Quota{}, fmt.Errorf("failed to load quota: %w", err)
	}
	return row, nil
}

// RecordLeaveUsage increments leave_used by days.
func (s *Service) RecordLeaveUsage(ctx context.Context, userID string, year int, days int) error {
	return s.Repository.ApplyDelta(ctx, userID, year, quota.CounterLeaveUsed, days)
}

// RecordChangeOffUsage increments changeoff_used by days.
func (s *Service) RecordChangeOffUsage(ctx context.Context, userID string, year int, days int) error {
	return s.Repository.ApplyDelta(ctx, userID, year, quota.CounterChangeOffUsed, days)
}

// RecordChangeOffEarned increments changeoff_earned by days.
func (s *Service) RecordChangeOffEarned(ctx context.Context, userID string, year int, days int) error {
	return s.Repository.ApplyDelta(ctx, userID, year, quota.CounterChangeOffEarned, days)
}

// Upsert overwrites all counters for (userID, year). HR admin path.
func (s *Service) Upsert(ctx context.Context, req quota.UpsertQuotaRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.Repository.Upsert(ctx, req)
}

// Delete removes the ledger row for (userID, year).
func (s *Service) Delete(ctx context.Context, userID string, year int) error {
	return s.Repository.Delete(ctx, userID, year)
}
