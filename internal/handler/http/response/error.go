package response

import (
	"errors"
	"net/http"

	"github.com/chronopay/payroll-backend-go/internal/domain/employee"
	"github.com/chronopay/payroll-backend-go/internal/domain/payroll"
	"github.com/chronopay/payroll-backend-go/internal/domain/timeentry"
	"github.com/chronopay/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Time entry domain errors
	case errors.Is(err, timeentry.ErrAlreadyClockedIn):
		Conflict(w, "Employee already has an open entry for this date")
	case errors.Is(err, timeentry.ErrNoOpenEntry):
		Conflict(w, "No open time entry to clock out of")
	case errors.Is(err, timeentry.ErrClockOutBeforeClockIn):
		BadRequest(w, "Clock-out must not be earlier than clock-in", nil)
	case errors.Is(err, timeentry.ErrTimeEntryNotFound):
		NotFound(w, "Time entry not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrInvalidStatus):
		BadRequest(w, "Invalid payroll status", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
