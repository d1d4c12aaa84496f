package leave

import (
	"github.com/attendlyhq/attendly-backend-go/internal/pkg/validator"
)

type ApplyLeaveRequest struct {
	Type      string `json:"type"`
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
	Reason    string `json:"reason"`
}

func (r *ApplyLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if !IsValidType(Type(r.Type)) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "type must be sick, casual or paid"})
	}

	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date cannot be earlier than start_date"})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DecideLeaveRequest struct {
	Decision string `json:"decision"` // "approved" or "rejected"
}

func (r *DecideLeaveRequest) Validate() error {
	if !validator.IsInSlice(r.Decision, []string{"approved", "rejected"}) {
		return validator.ValidationErrors{
			{Field: "decision", Message: "decision must be approved or rejected"},
		}
	}
	return nil
}

type LeaveResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
	Type         Type    `json:"type"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Days         int     `json:"days"`
	Reason       string  `json:"reason"`
	Status       Status  `json:"status"`
	DecidedBy    *string `json:"decided_by,omitempty"`
	DecidedAt    *string `json:"decided_at,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

// RequestSummary counts the leave requests and regularizations in the
// actor's scope, broken down by outcome.
type RequestSummary struct {
	PendingLeaves           int `json:"pending_leaves"`
	ApprovedLeaves          int `json:"approved_leaves"`
	RejectedLeaves          int `json:"rejected_leaves"`
	PendingRegularizations  int `json:"pending_regularizations"`
	ApprovedRegularizations int `json:"approved_regularizations"`
	RejectedRegularizations int `json:"rejected_regularizations"`
}
