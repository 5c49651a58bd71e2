package quota

import "time"

// DefaultLeaveTotal is the yearly leave allotment a ledger row starts with.
const DefaultLeaveTotal = 12

// Counter names one of the four ledger fields a delta may target.
// Repositories map these to columns through a closed switch, never by
// interpolating the value into SQL.
type Counter string

const (
	CounterLeaveTotal      Counter = "leave_total"
	CounterLeaveUsed       Counter = "leave_used"
	CounterChangeOffEarned Counter = "changeoff_earned"
	CounterChangeOffUsed   Counter = "changeoff_used"
)

// Quota is the per-(user, year) balance ledger row. At most one row exists
// per key; rows are provisioned lazily on first access.
type Quota struct {
	ID              string
	UserID          string
	Year            int
	LeaveTotal      int
	LeaveUsed       int
	ChangeOffEarned int
	ChangeOffUsed   int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// LeaveBalance is the remaining paid leave. May go negative: approvals do
// not re-check the balance, and HR reconciles over-draws manually.
func (q *Quota) LeaveBalance() int {
	return q.LeaveTotal - q.LeaveUsed
}

// ChangeOffBalance is the remaining change-off credit in days.
func (q *Quota) ChangeOffBalance() int {
	return q.ChangeOffEarned - q.ChangeOffUsed
}
