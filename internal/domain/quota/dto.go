package quota

import "github.com/cistech/hrms-backend-go/internal/pkg/validator"

// Snapshot is the balance view returned to callers, raw counters plus the
// two derived balances.
type Snapshot struct {
	UserID           string `json:"user_id"`
	Year             int    `json:"year"`
	LeaveTotal       int    `json:"leave_total"`
	LeaveUsed        int    `json:"leave_used"`
	LeaveBalance     int    `json:"leave_balance"`
	ChangeOffEarned  int    `json:"changeoff_earned"`
	ChangeOffUsed    int    `json:"changeoff_used"`
	ChangeOffBalance int    `json:"changeoff_balance"`
}

func ToSnapshot(q Quota) Snapshot {
	return Snapshot{
		UserID:           q.UserID,
		Year:             q.Year,
		LeaveTotal:       q.LeaveTotal,
		LeaveUsed:        q.LeaveUsed,
		LeaveBalance:     q.LeaveBalance(),
		ChangeOffEarned:  q.ChangeOffEarned,
		ChangeOffUsed:    q.ChangeOffUsed,
		ChangeOffBalance: q.ChangeOffBalance(),
	}
}

type UpsertQuotaRequest struct {
	UserID          string `json:"-"`
	Year            int    `json:"year"`
	LeaveTotal      int    `json:"leave_total"`
	LeaveUsed       int    `json:"leave_used"`
	ChangeOffEarned int    `json:"changeoff_earned"`
	ChangeOffUsed   int    `json:"changeoff_used"`
}

func (r *UpsertQuotaRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if r.Year <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be a positive integer",
		})
	}

	for field, v := range map[string]int{
		"leave_total":      r.LeaveTotal,
		"leave_used":       r.LeaveUsed,
		"changeoff_earned": r.ChangeOffEarned,
		"changeoff_used":   r.ChangeOffUsed,
	} {
		if v < 0 {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must not be negative",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
