package attendance

import "errors"

var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrAlreadyCheckedIn   = errors.New("already checked in for this date")
	ErrNotCheckedIn       = errors.New("no open check-in for this date")
	ErrAlreadyCheckedOut  = errors.New("already checked out for this date")
	ErrOutsideGeofence    = errors.New("location is outside the allowed radius")

	ErrAlreadyRegularized       = errors.New("attendance record already regularized")
	ErrRegularizationPending    = errors.New("a regularization request is already pending")
	ErrRegularizationNotPending = errors.New("no pending regularization request")
	ErrRegularizationNotAllowed = errors.New("attendance record cannot be regularized")

	ErrDateCoveredByLeave = errors.New("date is covered by a leave request")
	ErrNotWorkingDay      = errors.New("date is not a working day")
	ErrNotAuthorized      = errors.New("not authorized to act on this attendance record")
	ErrFutureDate         = errors.New("date cannot be in the future")
	ErrBeforeJoinDate     = errors.New("date is before the employee's join date")
)
