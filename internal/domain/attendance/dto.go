package attendance

import (
	"github.com/attendlyhq/attendly-backend-go/internal/pkg/validator"
)

type CheckInRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "latitude must be between -90 and 90"})
	}
	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{Field: "longitude", Message: "longitude must be between -180 and 180"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckOutRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "latitude must be between -90 and 90"})
	}
	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{Field: "longitude", Message: "longitude must be between -180 and 180"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RegularizeApplyRequest struct {
	Date         string `json:"date"`           // YYYY-MM-DD
	CheckInTime  string `json:"check_in_time"`  // RFC3339
	CheckOutTime string `json:"check_out_time"` // RFC3339
	Reason       string `json:"reason"`
}

func (r *RegularizeApplyRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be in YYYY-MM-DD format"})
	}

	in, okIn := validator.IsValidDateTime(r.CheckInTime)
	if !okIn {
		errs = append(errs, validator.ValidationError{Field: "check_in_time", Message: "check_in_time must be an ISO8601 timestamp"})
	}
	out, okOut := validator.IsValidDateTime(r.CheckOutTime)
	if !okOut {
		errs = append(errs, validator.ValidationError{Field: "check_out_time", Message: "check_out_time must be an ISO8601 timestamp"})
	}
	if okIn && okOut && !out.After(in) {
		errs = append(errs, validator.ValidationError{Field: "check_out_time", Message: "check_out_time must be after check_in_time"})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RegularizeDecisionRequest struct {
	Decision string `json:"decision"` // "approved" or "rejected"
}

func (r *RegularizeDecisionRequest) Validate() error {
	if !validator.IsInSlice(r.Decision, []string{"approved", "rejected"}) {
		return validator.ValidationErrors{
			{Field: "decision", Message: "decision must be approved or rejected"},
		}
	}
	return nil
}

// DayRecord is one resolved calendar day in a monthly view.
type DayRecord struct {
	Date              string   `json:"date"`
	Status            Status   `json:"status"`
	CheckInTime       *string  `json:"check_in_time,omitempty"`
	CheckOutTime      *string  `json:"check_out_time,omitempty"`
	WorkDurationHours *float64 `json:"work_duration_hours,omitempty"`
	HolidayName       *string  `json:"holiday_name,omitempty"`
}

type MonthlySummary struct {
	Present            int `json:"present"`
	Late               int `json:"late"`
	HalfDay            int `json:"half_day"`
	Absent             int `json:"absent"`
	OnLeave            int `json:"on_leave"`
	PaidLeave          int `json:"paid_leave"`
	PendingRegularize  int `json:"pending_regularize"`
	ApprovedRegularise int `json:"approved_regularise"`
	RejectRegularise   int `json:"reject_regularise"`
	Holiday            int `json:"holiday"`
	WeekOff            int `json:"week_off"`
}

type MonthlyAttendanceResponse struct {
	EmployeeID string         `json:"employee_id"`
	Year       int            `json:"year"`
	Month      int            `json:"month"`
	Days       []DayRecord    `json:"days"`
	Summary    MonthlySummary `json:"summary"`
}

type AttendanceResponse struct {
	ID                string   `json:"id"`
	EmployeeID        string   `json:"employee_id"`
	Date              string   `json:"date"`
	Status            Status   `json:"status"`
	CheckInTime       *string  `json:"check_in_time,omitempty"`
	CheckOutTime      *string  `json:"check_out_time,omitempty"`
	WorkDurationHours *float64 `json:"work_duration_hours,omitempty"`

	IsRegularized        bool            `json:"is_regularized"`
	RegularizeRequest    RegularizeState `json:"regularize_request"`
	RegularizationReason *string         `json:"regularization_reason,omitempty"`
	RequestedCheckIn     *string         `json:"requested_check_in,omitempty"`
	RequestedCheckOut    *string         `json:"requested_check_out,omitempty"`
}
