package request

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type Type string

const (
	TypeLeave     Type = "LEAVE"
	TypeChangeOff Type = "CHANGEOFF"
)

// Reason classifies a LEAVE request. Change-off requests always carry
// ReasonChangeOff: they spend earned credit when used as a leave reason,
// and generate credit when submitted as a CHANGEOFF request.
type Reason string

const (
	ReasonPersonal  Reason = "PERSONAL"
	ReasonSick      Reason = "SICK"
	ReasonChangeOff Reason = "CHANGEOFF"
)

type Status string

const (
	StatusPendingManager Status = "PENDING_MANAGER"
	StatusPendingHR      Status = "PENDING_HR"
	StatusApproved       Status = "APPROVED"
	StatusRejected       Status = "REJECTED"
)

// CreditHours is the block of logged hours worth one day of change-off
// credit. Fractional blocks are discarded, not carried forward.
const CreditHours = 8

// ActivityEntry is one day of logged work on a change-off request.
// Times are clock values in HH:MM; an end before the start means the
// shift ran past midnight into the next day.
type ActivityEntry struct {
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Description string `json:"description"`
}

// Hours returns the entry duration in hours, wrapping overnight shifts.
func (e ActivityEntry) Hours() (float64, error) {
	start, err := time.Parse("15:04", e.StartTime)
	if err != nil {
		return 0, err
	}
	end, err := time.Parse("15:04", e.EndTime)
	if err != nil {
		return 0, err
	}
	if end.Before(start) {
		end = end.Add(24 * time.Hour)
	}
	return end.Sub(start).Hours(), nil
}

// ActivityEntries persists as a JSONB column.
type ActivityEntries []ActivityEntry

// TotalHours sums all per-day durations.
func (a ActivityEntries) TotalHours() (float64, error) {
	var total float64
	for _, e := range a {
		h, err := e.Hours()
		if err != nil {
			return 0, err
		}
		total += h
	}
	return total, nil
}

// Value implements driver.Valuer for database storage
func (a ActivityEntries) Value() (driver.Value, error) {
	if len(a) == 0 {
		return nil, nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner for database retrieval
func (a *ActivityEntries) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan ActivityEntries: invalid type")
	}

	return json.Unmarshal(bytes, a)
}

// Request entity
type Request struct {
	ID     string
	UserID string
	Type   Type

	// LEAVE fields
	StartDate *time.Time
	EndDate   *time.Time
	Reason    Reason
	Days      int

	// CHANGEOFF fields
	DepartureDate  *time.Time
	ReturnDate     *time.Time
	Hours          float64
	Location       *string
	PIC            *string
	JobExecution   *string
	AttachmentPath *string
	Activities     ActivityEntries

	Status    Status
	ManagerBy *string
	ManagerAt *time.Time
	HRBy      *string
	HRAt      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Join fields for approval queues
	EmployeeName     *string
	EmployeeEmail    *string
	EmployeeDivision *string
}

// InclusiveDays counts the days between two dates with both endpoints
// included.
func InclusiveDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

// Credit converts logged hours into whole-day change-off credit.
func Credit(hours float64) int {
	credit := int(hours) / CreditHours
	if credit < 0 {
		return 0
	}
	return credit
}
