package request

import (
	"time"

	"github.com/cistech/hrms-backend-go/internal/pkg/validator"
)

type SubmitLeaveRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

func (r *SubmitLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a date in YYYY-MM-DD format",
		})
	}

	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a date in YYYY-MM-DD format",
		})
	}

	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	switch Reason(r.Reason) {
	case ReasonPersonal, ReasonSick, ReasonChangeOff:
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must be one of PERSONAL, SICK, CHANGEOFF",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Dates returns the parsed date range. Call Validate first.
func (r *SubmitLeaveRequest) Dates() (start, end time.Time) {
	start, _ = time.Parse("2006-01-02", r.StartDate)
	end, _ = time.Parse("2006-01-02", r.EndDate)
	return start, end
}

type SubmitChangeOffRequest struct {
	DepartureDate string          `json:"departure_date"`
	ReturnDate    string          `json:"return_date"`
	Location      string          `json:"location"`
	PIC           string          `json:"pic"`
	JobExecution  *string         `json:"job_execution,omitempty"`
	Activities    []ActivityEntry `json:"activities"`

	// Storage reference of the uploaded timesheet, set by the handler
	// after the attachment store accepts the file.
	AttachmentPath string `json:"-"`
}

func (r *SubmitChangeOffRequest) Validate() error {
	var errs validator.ValidationErrors

	departure, departureOK := validator.IsValidDate(r.DepartureDate)
	if !departureOK {
		errs = append(errs, validator.ValidationError{
			Field:   "departure_date",
			Message: "departure_date must be a date in YYYY-MM-DD format",
		})
	}

	ret, returnOK := validator.IsValidDate(r.ReturnDate)
	if !returnOK {
		errs = append(errs, validator.ValidationError{
			Field:   "return_date",
			Message: "return_date must be a date in YYYY-MM-DD format",
		})
	}

	if departureOK && returnOK && ret.Before(departure) {
		errs = append(errs, validator.ValidationError{
			Field:   "return_date",
			Message: "return_date must not be before departure_date",
		})
	}

	if validator.IsEmpty(r.Location) {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "location is required",
		})
	}

	if validator.IsEmpty(r.PIC) {
		errs = append(errs, validator.ValidationError{
			Field:   "pic",
			Message: "pic is required",
		})
	}

	if validator.IsEmpty(r.AttachmentPath) {
		errs = append(errs, validator.ValidationError{
			Field:   "attachment",
			Message: "timesheet attachment is required",
		})
	}

	if len(r.Activities) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "activities",
			Message: "at least one activity entry is required",
		})
	}

	for i, entry := range r.Activities {
		if _, ok := validator.IsValidDate(entry.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "activities",
				Message: "activity " + validator.Itoa(i+1) + ": date must be in YYYY-MM-DD format",
			})
		}
		if !validator.IsValidClock(entry.StartTime) {
			errs = append(errs, validator.ValidationError{
				Field:   "activities",
				Message: "activity " + validator.Itoa(i+1) + ": start_time must be in HH:MM format",
			})
		}
		if !validator.IsValidClock(entry.EndTime) {
			errs = append(errs, validator.ValidationError{
				Field:   "activities",
				Message: "activity " + validator.Itoa(i+1) + ": end_time must be in HH:MM format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Dates returns the parsed travel range. Call Validate first.
func (r *SubmitChangeOffRequest) Dates() (departure, ret time.Time) {
	departure, _ = time.Parse("2006-01-02", r.DepartureDate)
	ret, _ = time.Parse("2006-01-02", r.ReturnDate)
	return departure, ret
}

type DecisionRequest struct {
	Approve bool `json:"approve"`
}

// RequestResponse is the API shape of a request.
type RequestResponse struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Type   Type   `json:"type"`
	Status Status `json:"status"`

	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	Reason    Reason  `json:"reason,omitempty"`
	Days      int     `json:"days,omitempty"`

	DepartureDate *string         `json:"departure_date,omitempty"`
	ReturnDate    *string         `json:"return_date,omitempty"`
	Hours         float64         `json:"hours,omitempty"`
	Location      *string         `json:"location,omitempty"`
	PIC           *string         `json:"pic,omitempty"`
	JobExecution  *string         `json:"job_execution,omitempty"`
	Attachment    *string         `json:"attachment,omitempty"`
	Activities    []ActivityEntry `json:"activities,omitempty"`

	ManagerBy *string    `json:"manager_by,omitempty"`
	ManagerAt *time.Time `json:"manager_at,omitempty"`
	HRBy      *string    `json:"hr_by,omitempty"`
	HRAt      *time.Time `json:"hr_at,omitempty"`

	EmployeeName     *string `json:"employee_name,omitempty"`
	EmployeeDivision *string `json:"employee_division,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func ToResponse(r Request) RequestResponse {
	resp := RequestResponse{
		ID:               r.ID,
		UserID:           r.UserID,
		Type:             r.Type,
		Status:           r.Status,
		Reason:           r.Reason,
		Days:             r.Days,
		Hours:            r.Hours,
		Location:         r.Location,
		PIC:              r.PIC,
		JobExecution:     r.JobExecution,
		Attachment:       r.AttachmentPath,
		Activities:       r.Activities,
		ManagerBy:        r.ManagerBy,
		ManagerAt:        r.ManagerAt,
		HRBy:             r.HRBy,
		HRAt:             r.HRAt,
		EmployeeName:     r.EmployeeName,
		EmployeeDivision: r.EmployeeDivision,
		CreatedAt:        r.CreatedAt,
	}
	resp.StartDate = formatDate(r.StartDate)
	resp.EndDate = formatDate(r.EndDate)
	resp.DepartureDate = formatDate(r.DepartureDate)
	resp.ReturnDate = formatDate(r.ReturnDate)
	return resp
}

func ToResponses(requests []Request) []RequestResponse {
	out := make([]RequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, ToResponse(r))
	}
	return out
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}
