package leave

import "time"

type Type string

const (
	TypeSick   Type = "sick"
	TypeCasual Type = "casual"
	TypePaid   Type = "paid"
)

func IsValidType(t Type) bool {
	switch t {
	case TypeSick, TypeCasual, TypePaid:
		return true
	}
	return false
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type LeaveRequest struct {
	ID             string
	OrganizationID string
	EmployeeID     string
	Type           Type
	StartDate      time.Time // midnight in the organization's timezone
	EndDate        time.Time
	Reason         string
	Status         Status
	DecidedBy      *string
	DecidedAt      *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time

	EmployeeName string // joined for list views, not stored
}

// Days returns the inclusive day count of the request. Stepped by
// calendar day so DST transitions inside the range cannot skew it.
func (l *LeaveRequest) Days() int {
	days := 0
	for d := l.StartDate; !d.After(l.EndDate); d = d.AddDate(0, 0, 1) {
		days++
	}
	return days
}

func (l *LeaveRequest) Decide(approved bool, deciderID string, at time.Time) error {
	if l.Status != StatusPending {
		return ErrLeaveAlreadyProcessed
	}
	if approved {
		l.Status = StatusApproved
	} else {
		l.Status = StatusRejected
	}
	l.DecidedBy = &deciderID
	l.DecidedAt = &at
	return nil
}
