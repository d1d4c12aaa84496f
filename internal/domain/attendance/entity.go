package attendance

import "time"

// Status is the per-day attendance state of an employee. Stored
// statuses live on attendance rows; derived statuses only appear in
// resolved calendar views and never hit the database.
type Status string

const (
	// Stored statuses.
	StatusCheckedIn          Status = "checked_in"
	StatusPresent            Status = "present"
	StatusLate               Status = "late"
	StatusHalfDay            Status = "half_day"
	StatusAbsent             Status = "absent"
	StatusOnLeave            Status = "on_leave"
	StatusPaidLeave          Status = "paid_leave"
	StatusPendingRegularize  Status = "pending_regularize"
	StatusApprovedRegularise Status = "approved_regularise"
	StatusRejectRegularise   Status = "reject_regularise"

	// Derived statuses.
	StatusBeforeJoin   Status = "before_join"
	StatusHoliday      Status = "holiday"
	StatusWeekOff      Status = "week_off"
	StatusNotAvailable Status = "not_available"
)

// RegularizeState tracks the lifecycle of a regularization request on
// an attendance row.
type RegularizeState string

const (
	RegularizeNone     RegularizeState = "none"
	RegularizePending  RegularizeState = "pending"
	RegularizeApproved RegularizeState = "approved"
	RegularizeRejected RegularizeState = "rejected"
)

type Attendance struct {
	ID             string
	OrganizationID string
	EmployeeID     string
	Date           time.Time // midnight in the organization's timezone

	CheckInTime       *time.Time
	CheckOutTime      *time.Time
	CheckInLatitude   *float64
	CheckInLongitude  *float64
	CheckOutLatitude  *float64
	CheckOutLongitude *float64
	WorkDurationHours *float64

	Status            Status
	IsRegularized     bool
	RegularizeRequest RegularizeState

	RegularizationReason *string
	RegularizedBy        *string
	RequestedCheckIn     *time.Time
	RequestedCheckOut    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanRequestRegularization reports whether the row is in a state an
// employee may open a regularization request from.
func (a *Attendance) CanRequestRegularization() bool {
	if a.IsRegularized || a.RegularizeRequest == RegularizePending {
		return false
	}
	switch a.Status {
	case StatusOnLeave, StatusPaidLeave, StatusCheckedIn:
		return false
	}
	return true
}

// RequestRegularization moves the row to the pending regularization
// state. Status, IsRegularized and RegularizeRequest only change
// through these transitions so the three fields cannot disagree.
func (a *Attendance) RequestRegularization(checkIn, checkOut time.Time, reason string) error {
	if a.IsRegularized {
		return ErrAlreadyRegularized
	}
	if a.RegularizeRequest == RegularizePending {
		return ErrRegularizationPending
	}
	if !a.CanRequestRegularization() {
		return ErrRegularizationNotAllowed
	}
	a.Status = StatusPendingRegularize
	a.RegularizeRequest = RegularizePending
	a.RequestedCheckIn = &checkIn
	a.RequestedCheckOut = &checkOut
	a.RegularizationReason = &reason
	return nil
}

// ApproveRegularization applies the requested times to the row and
// marks it approved.
func (a *Attendance) ApproveRegularization(approverID string) error {
	if a.RegularizeRequest != RegularizePending {
		return ErrRegularizationNotPending
	}
	a.Status = StatusApprovedRegularise
	a.RegularizeRequest = RegularizeApproved
	a.IsRegularized = true
	a.RegularizedBy = &approverID
	a.CheckInTime = a.RequestedCheckIn
	a.CheckOutTime = a.RequestedCheckOut
	if a.RequestedCheckIn != nil && a.RequestedCheckOut != nil {
		hours := a.RequestedCheckOut.Sub(*a.RequestedCheckIn).Hours()
		a.WorkDurationHours = &hours
	}
	return nil
}

// RejectRegularization closes the request without touching the
// recorded times.
func (a *Attendance) RejectRegularization(approverID string) error {
	if a.RegularizeRequest != RegularizePending {
		return ErrRegularizationNotPending
	}
	a.Status = StatusRejectRegularise
	a.RegularizeRequest = RegularizeRejected
	a.RegularizedBy = &approverID
	return nil
}

// MarkLeave overwrites the row with a leave decision outcome. Approved
// leave days become on_leave, rejected ones paid_leave.
func (a *Attendance) MarkLeave(approved bool) {
	if approved {
		a.Status = StatusOnLeave
	} else {
		a.Status = StatusPaidLeave
	}
	a.CheckInTime = nil
	a.CheckOutTime = nil
	a.WorkDurationHours = nil
	a.IsRegularized = false
	a.RegularizeRequest = RegularizeNone
	a.RegularizationReason = nil
	a.RegularizedBy = nil
	a.RequestedCheckIn = nil
	a.RequestedCheckOut = nil
}
