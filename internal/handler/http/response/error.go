package response

import (
	"errors"
	"net/http"

	"github.com/attendlyhq/attendly-backend-go/internal/domain/attendance"
	"github.com/attendlyhq/attendly-backend-go/internal/domain/auth"
	"github.com/attendlyhq/attendly-backend-go/internal/domain/employee"
	"github.com/attendlyhq/attendly-backend-go/internal/domain/leave"
	"github.com/attendlyhq/attendly-backend-go/internal/domain/organization"
	"github.com/attendlyhq/attendly-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid username or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// Organization domain errors
	case errors.Is(err, organization.ErrOrganizationNotFound):
		NotFound(w, "Organization not found")
	case errors.Is(err, organization.ErrOrganizationInactive):
		Forbidden(w, "Organization is not active")
	case errors.Is(err, organization.ErrContactEmailExists):
		Conflict(w, "Contact email already registered")
	case errors.Is(err, organization.ErrContactPhoneExists):
		Conflict(w, "Contact phone already registered")
	case errors.Is(err, organization.ErrLocationNotSet):
		BadRequest(w, "Organization location is not configured", nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee account is not active")
	case errors.Is(err, employee.ErrUsernameExists):
		Conflict(w, "Username already exists")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already exists")
	case errors.Is(err, employee.ErrInvalidRole):
		BadRequest(w, "Invalid role for this operation", nil)
	case errors.Is(err, employee.ErrNotAuthorized):
		Forbidden(w, "Not authorized for this operation")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, "No open check-in for today", nil)
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out today")
	case errors.Is(err, attendance.ErrOutsideGeofence):
		BadRequest(w, "Location is not within the allowed range", nil)
	case errors.Is(err, attendance.ErrAlreadyRegularized):
		Conflict(w, "Attendance record already regularized")
	case errors.Is(err, attendance.ErrRegularizationPending):
		Conflict(w, "A regularization request is already pending")
	case errors.Is(err, attendance.ErrRegularizationNotPending):
		Conflict(w, "No pending regularization request")
	case errors.Is(err, attendance.ErrRegularizationNotAllowed):
		Conflict(w, "Attendance record cannot be regularized")
	case errors.Is(err, attendance.ErrDateCoveredByLeave):
		Conflict(w, "Date is covered by a leave request")
	case errors.Is(err, attendance.ErrFutureDate):
		BadRequest(w, "Date cannot be in the future", nil)
	case errors.Is(err, attendance.ErrBeforeJoinDate):
		BadRequest(w, "Date is before the join date", nil)
	case errors.Is(err, attendance.ErrNotAuthorized):
		Forbidden(w, "Not authorized for this attendance record")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrOverlappingLeave):
		Conflict(w, "An overlapping leave request already exists")
	case errors.Is(err, leave.ErrLeaveBeforeJoinDate):
		BadRequest(w, "Leave starts before the join date", nil)
	case errors.Is(err, leave.ErrRangeRegularized):
		Conflict(w, "A day in the range has a regularization in progress")
	case errors.Is(err, leave.ErrNotAuthorized):
		Forbidden(w, "Not authorized for this leave request")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
