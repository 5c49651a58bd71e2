package request

import (
	"testing"

	"github.com/cistech/hrms-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitLeaveRequestValidate(t *testing.T) {
	valid := SubmitLeaveRequest{StartDate: "2024-01-01", EndDate: "2024-01-05", Reason: "PERSONAL"}
	assert.NoError(t, valid.Validate())

	cases := []struct {
		name  string
		req   SubmitLeaveRequest
		field string
	}{
		{"bad start date", SubmitLeaveRequest{StartDate: "01/01/2024", EndDate: "2024-01-05", Reason: "PERSONAL"}, "start_date"},
		{"end before start", SubmitLeaveRequest{StartDate: "2024-01-05", EndDate: "2024-01-01", Reason: "PERSONAL"}, "end_date"},
		{"unknown reason", SubmitLeaveRequest{StartDate: "2024-01-01", EndDate: "2024-01-05", Reason: "VACATION"}, "reason"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.req.Validate()
			var errs validator.ValidationErrors
			require.ErrorAs(t, err, &errs)
			assert.Contains(t, errs.ToMap(), c.field)
		})
	}
}

func validChangeOff() SubmitChangeOffRequest {
	return SubmitChangeOffRequest{
		DepartureDate: "2024-03-01",
		ReturnDate:    "2024-03-03",
		Location:      "Site A",
		PIC:           "Jane Doe",
		Activities: []ActivityEntry{
			{Date: "2024-03-01", StartTime: "08:00", EndTime: "17:00", Description: "install"},
		},
		AttachmentPath: "timesheets/u/ts.pdf",
	}
}

func TestSubmitChangeOffRequestValidate(t *testing.T) {
	valid := validChangeOff()
	assert.NoError(t, valid.Validate())

	t.Run("missing location", func(t *testing.T) {
		req := validChangeOff()
		req.Location = "  "
		var errs validator.ValidationErrors
		require.ErrorAs(t, req.Validate(), &errs)
		assert.Contains(t, errs.ToMap(), "location")
	})

	t.Run("missing attachment", func(t *testing.T) {
		req := validChangeOff()
		req.AttachmentPath = ""
		var errs validator.ValidationErrors
		require.ErrorAs(t, req.Validate(), &errs)
		assert.Contains(t, errs.ToMap(), "attachment")
	})

	t.Run("no activities", func(t *testing.T) {
		req := validChangeOff()
		req.Activities = nil
		var errs validator.ValidationErrors
		require.ErrorAs(t, req.Validate(), &errs)
		assert.Contains(t, errs.ToMap(), "activities")
	})

	t.Run("bad activity clock", func(t *testing.T) {
		req := validChangeOff()
		req.Activities[0].EndTime = "25:00"
		var errs validator.ValidationErrors
		require.ErrorAs(t, req.Validate(), &errs)
		assert.Contains(t, errs.ToMap(), "activities")
	})

	t.Run("return before departure", func(t *testing.T) {
		req := validChangeOff()
		req.ReturnDate = "2024-02-01"
		var errs validator.ValidationErrors
		require.ErrorAs(t, req.Validate(), &errs)
		assert.Contains(t, errs.ToMap(), "return_date")
	})
}
