package response

import (
	"errors"
	"net/http"

	"github.com/salonops/timecore-backend-go/internal/domain/advance"
	"github.com/salonops/timecore-backend-go/internal/domain/payroll"
	"github.com/salonops/timecore-backend-go/internal/domain/staff"
	"github.com/salonops/timecore-backend-go/internal/domain/timeledger"
	"github.com/salonops/timecore-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Time ledger domain errors
	switch {
	case errors.Is(err, timeledger.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in for this day")
	case errors.Is(err, timeledger.ErrNotCheckedIn):
		BadRequest(w, "Not checked in yet", nil)
	case errors.Is(err, timeledger.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out")
	case errors.Is(err, timeledger.ErrCheckOutNotAfterCheckIn):
		BadRequest(w, "Check-out must be after check-in", nil)
	case errors.Is(err, timeledger.ErrExitStillOpen):
		BadRequest(w, "An exit is still open; end it before checking out", nil)
	case errors.Is(err, timeledger.ErrExitAlreadyOpen):
		Conflict(w, "An exit is already open")
	case errors.Is(err, timeledger.ErrExitAlreadyClosed):
		Conflict(w, "Exit already ended")
	case errors.Is(err, timeledger.ErrMissingReason):
		BadRequest(w, "Exit reason is required", nil)
	case errors.Is(err, timeledger.ErrEntryNotFound):
		NotFound(w, "Time entry not found")
	case errors.Is(err, timeledger.ErrEntryModified):
		Conflict(w, "Time entry was modified concurrently, retry")
	case errors.Is(err, timeledger.ErrExitNotFound):
		NotFound(w, "Exit interval not found")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrPayrollAlreadyPaid):
		Conflict(w, "Payroll record already paid")
	case errors.Is(err, payroll.ErrCannotDeletePaidRecord):
		Conflict(w, "Paid payroll record cannot be deleted")
	case errors.Is(err, payroll.ErrInvalidMonthName):
		BadRequest(w, "Invalid month name", nil)
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)

	// Staff and advance domain errors
	case errors.Is(err, staff.ErrStaffNotFound):
		NotFound(w, "Staff not found")
	case errors.Is(err, advance.ErrAdvanceNotFound):
		NotFound(w, "Advance not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
