package quota

import (
	"testing"

	"github.com/cistech/hrms-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuotaBalances(t *testing.T) {
	q := Quota{LeaveTotal: 12, LeaveUsed: 5, ChangeOffEarned: 3, ChangeOffUsed: 1}
	assert.Equal(t, 7, q.LeaveBalance())
	assert.Equal(t, 2, q.ChangeOffBalance())

	// Balances may go negative; HR reconciles by hand.
	over := Quota{LeaveTotal: 12, LeaveUsed: 14}
	assert.Equal(t, -2, over.LeaveBalance())
}

func TestToSnapshot(t *testing.T) {
	q := Quota{UserID: "u-1", Year: 2024, LeaveTotal: 12, LeaveUsed: 5, ChangeOffEarned: 3, ChangeOffUsed: 1}
	s := ToSnapshot(q)
	assert.Equal(t, 7, s.LeaveBalance)
	assert.Equal(t, 2, s.ChangeOffBalance)
	assert.Equal(t, 2024, s.Year)
}

func TestUpsertQuotaRequestValidate(t *testing.T) {
	valid := UpsertQuotaRequest{UserID: "u-1", Year: 2024, LeaveTotal: 12}
	assert.NoError(t, valid.Validate())

	t.Run("negative counter", func(t *testing.T) {
		req := UpsertQuotaRequest{UserID: "u-1", Year: 2024, LeaveUsed: -1}
		var errs validator.ValidationErrors
		require.ErrorAs(t, req.Validate(), &errs)
		assert.Contains(t, errs.ToMap(), "leave_used")
	})

	t.Run("missing user", func(t *testing.T) {
		req := UpsertQuotaRequest{Year: 2024}
		var errs validator.ValidationErrors
		require.ErrorAs(t, req.Validate(), &errs)
		assert.Contains(t, errs.ToMap(), "user_id")
	})

	t.Run("bad year", func(t *testing.T) {
		req := UpsertQuotaRequest{UserID: "u-1"}
		var errs validator.ValidationErrors
		require.ErrorAs(t, req.Validate(), &errs)
		assert.Contains(t, errs.ToMap(), "year")
	})
}
