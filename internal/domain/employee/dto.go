package employee

import (
	"github.com/attendlyhq/attendly-backend-go/internal/pkg/validator"
)

type RegisterEmployeeRequest struct {
	Name               string  `json:"name"`
	Email              string  `json:"email"`
	Username           string  `json:"username"`
	Password           string  `json:"password"`
	Role               string  `json:"role"`
	Salary             float64 `json:"salary"`
	JoinDate           string  `json:"join_date"` // YYYY-MM-DD
	CheckInTime        string  `json:"check_in_time,omitempty"`
	CheckOutTime       string  `json:"check_out_time,omitempty"`
	AllotedLeave       int     `json:"alloted_leave"`
	ReportingManagerID *string `json:"reporting_manager_id,omitempty"`
}

func (r *RegisterEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email is invalid"})
	}
	if !validator.IsValidUsername(r.Username) {
		errs = append(errs, validator.ValidationError{Field: "username", Message: "username must be 3-50 characters (letters, digits, . _ -)"})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password must be at least 8 characters"})
	}
	if !IsValidRole(Role(r.Role)) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "role must be one of: employee, reporting_manager, super_admin"})
	}
	if r.Salary < 0 {
		errs = append(errs, validator.ValidationError{Field: "salary", Message: "salary must not be negative"})
	}
	if _, ok := validator.IsValidDate(r.JoinDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "join_date", Message: "join_date must be in YYYY-MM-DD format"})
	}
	if r.CheckInTime != "" {
		if _, ok := validator.IsValidClock(r.CheckInTime); !ok {
			errs = append(errs, validator.ValidationError{Field: "check_in_time", Message: "check_in_time must be in HH:MM format"})
		}
	}
	if r.CheckOutTime != "" {
		if _, ok := validator.IsValidClock(r.CheckOutTime); !ok {
			errs = append(errs, validator.ValidationError{Field: "check_out_time", Message: "check_out_time must be in HH:MM format"})
		}
	}
	if r.AllotedLeave < 0 {
		errs = append(errs, validator.ValidationError{Field: "alloted_leave", Message: "alloted_leave must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateEmployeeRequest carries optional fields; nil means unchanged.
type UpdateEmployeeRequest struct {
	ID                 string   `json:"-"`
	Name               *string  `json:"name,omitempty"`
	Salary             *float64 `json:"salary,omitempty"`
	IsActive           *bool    `json:"is_active,omitempty"`
	AllotedLeave       *int     `json:"alloted_leave,omitempty"`
	ReportingManagerID *string  `json:"reporting_manager_id,omitempty"`
	CheckInTime        *string  `json:"check_in_time,omitempty"`
	CheckOutTime       *string  `json:"check_out_time,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not be empty"})
	}
	if r.Salary != nil && *r.Salary < 0 {
		errs = append(errs, validator.ValidationError{Field: "salary", Message: "salary must not be negative"})
	}
	if r.AllotedLeave != nil && *r.AllotedLeave < 0 {
		errs = append(errs, validator.ValidationError{Field: "alloted_leave", Message: "alloted_leave must not be negative"})
	}
	if r.CheckInTime != nil {
		if _, ok := validator.IsValidClock(*r.CheckInTime); !ok {
			errs = append(errs, validator.ValidationError{Field: "check_in_time", Message: "check_in_time must be in HH:MM format"})
		}
	}
	if r.CheckOutTime != nil {
		if _, ok := validator.IsValidClock(*r.CheckOutTime); !ok {
			errs = append(errs, validator.ValidationError{Field: "check_out_time", Message: "check_out_time must be in HH:MM format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID                   string  `json:"id"`
	OrganizationID       string  `json:"organization_id"`
	Name                 string  `json:"name"`
	Email                string  `json:"email"`
	Username             string  `json:"username"`
	Role                 string  `json:"role"`
	IsActive             bool    `json:"is_active"`
	Salary               float64 `json:"salary"`
	JoinDate             string  `json:"join_date"`
	CheckInTime          string  `json:"check_in_time"`
	CheckOutTime         string  `json:"check_out_time"`
	WorkDurationHours    float64 `json:"work_duration_hours"`
	AllotedLeave         int     `json:"alloted_leave"`
	LeaveTaken           int     `json:"leave_taken"`
	ReportingManagerID   *string `json:"reporting_manager_id,omitempty"`
	ReportingManagerName *string `json:"reporting_manager_name,omitempty"`
	CreatedAt            string  `json:"created_at"`
}
