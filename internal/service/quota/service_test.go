package quota

import (
	"context"
	"testing"

	"github.com/cistech/hrms-backend-go/internal/domain/quota"
	"github.com/cistech/hrms-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type deltaCall struct {
	userID  string
	year    int
	counter quota.Counter
	delta   int
}

type fakeQuotaRepo struct {
	deltas   []deltaCall
	upserted []quota.UpsertQuotaRequest
}

func (f *fakeQuotaRepo) GetOrCreate(ctx context.Context, userID string, year int) (quota.Quota, error) {
	return quota.Quota{UserID: userID, Year: year, LeaveTotal: quota.DefaultLeaveTotal}, nil
}

func (f *fakeQuotaRepo) ApplyDelta(ctx context.Context, userID string, year int, counter quota.Counter, delta int) error {
	f.deltas = append(f.deltas, deltaCall{userID: userID, year: year, counter: counter, delta: delta})
	return nil
}

func (f *fakeQuotaRepo) Upsert(ctx context.Context, req quota.UpsertQuotaRequest) error {
	f.upserted = append(f.upserted, req)
	return nil
}

func (f *fakeQuotaRepo) Delete(ctx context.Context, userID string, year int) error { return nil }
func (f *fakeQuotaRepo) ExistsByUser(ctx context.Context, userID string) (bool, error) {
	return false, nil
}

func TestBalanceProvisionsDefaultRow(t *testing.T) {
	repo := &fakeQuotaRepo{}
	svc := NewService(repo)

	q, err := svc.Balance(context.Background(), "u-1", 2024)
	require.NoError(t, err)
	assert.Equal(t, quota.DefaultLeaveTotal, q.LeaveTotal)
	assert.Equal(t, quota.DefaultLeaveTotal, q.LeaveBalance())
}

func TestRecordUsageTargetsRightCounter(t *testing.T) {
	repo := &fakeQuotaRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	require.NoError(t, svc.RecordLeaveUsage(ctx, "u-1", 2024, 5))
	require.NoError(t, svc.RecordChangeOffUsage(ctx, "u-1", 2024, 2))
	require.NoError(t, svc.RecordChangeOffEarned(ctx, "u-1", 2025, 3))

	require.Len(t, repo.deltas, 3)
	assert.Equal(t, deltaCall{userID: "u-1", year: 2024, counter: quota.CounterLeaveUsed, delta: 5}, repo.deltas[0])
	assert.Equal(t, deltaCall{userID: "u-1", year: 2024, counter: quota.CounterChangeOffUsed, delta: 2}, repo.deltas[1])
	assert.Equal(t, deltaCall{userID: "u-1", year: 2025, counter: quota.CounterChangeOffEarned, delta: 3}, repo.deltas[2])
}

func TestUpsertValidates(t *testing.T) {
	repo := &fakeQuotaRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Upsert(ctx, quota.UpsertQuotaRequest{UserID: "u-1", Year: 2024, LeaveTotal: 14}))
	require.Len(t, repo.upserted, 1)

	var errs validator.ValidationErrors
	err := svc.Upsert(ctx, quota.UpsertQuotaRequest{Year: 2024})
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "user_id")
	assert.Len(t, repo.upserted, 1)
}
