package postgresql

import (
	"testing"

	"github.com/cistech/hrms-backend-go/internal/domain/quota"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounterColumn(t *testing.T) {
	cases := []struct {
		counter quota.Counter
		column  string
	}{
		{quota.CounterLeaveTotal, "leave_total"},
		{quota.CounterLeaveUsed, "leave_used"},
		{quota.CounterChangeOffEarned, "changeoff_earned"},
		{quota.CounterChangeOffUsed, "changeoff_used"},
	}

	for _, c := range cases {
		t.Run(string(c.counter), func(t *testing.T) {
			column, err := counterColumn(c.counter)
			require.NoError(t, err)
			assert.Equal(t, c.column, column)
		})
	}
}

func TestCounterColumnUnknown(t *testing.T) {
	_, err := counterColumn(quota.Counter("leave_used; DROP TABLE quotas"))
	assert.ErrorIs(t, err, quota.ErrUnknownCounter)
}
