package response

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/cistech/hrms-backend-go/internal/domain/quota"
	"github.com/cistech/hrms-backend-go/internal/domain/request"
	"github.com/cistech/hrms-backend-go/internal/domain/user"
	"github.com/cistech/hrms-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Insufficient balance carries the figures the client displays
	var balanceErr *request.InsufficientBalanceError
	if errors.As(err, &balanceErr) {
		ValidationError(w, map[string]string{
			"balance":   balanceErr.Error(),
			"available": strconv.Itoa(balanceErr.Available),
			"requested": strconv.Itoa(balanceErr.Requested),
		})
		return
	}

	switch {
	// User domain errors
	case errors.Is(err, user.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, user.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, user.ErrManagerAccessRequired),
		errors.Is(err, user.ErrHRAdminAccessRequired):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already in use")
	case errors.Is(err, user.ErrUserOwnsRequests),
		errors.Is(err, user.ErrUserOwnsQuotas):
		Conflict(w, err.Error())
	case errors.Is(err, user.ErrNoManagerAssigned),
		errors.Is(err, user.ErrManagerRoleInvalid):
		ValidationError(w, map[string]string{"manager": err.Error()})

	// Request domain errors
	case errors.Is(err, request.ErrRequestNotFound):
		NotFound(w, "Request not found")
	case errors.Is(err, request.ErrNotRequestersManager):
		Forbidden(w, err.Error())
	case errors.Is(err, request.ErrNotPendingManager),
		errors.Is(err, request.ErrNotPendingHR):
		Conflict(w, err.Error())

	// Quota domain errors
	case errors.Is(err, quota.ErrQuotaNotFound):
		NotFound(w, "Quota record not found")
	case errors.Is(err, quota.ErrUnknownCounter):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
