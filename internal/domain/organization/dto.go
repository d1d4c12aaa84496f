package organization

import (
	"github.com/attendlyhq/attendly-backend-go/internal/pkg/validator"
)

type CreateOrganizationRequest struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	ContactEmail  string `json:"contact_email"`
	ContactPhone  string `json:"contact_phone"`
	AdminUsername string `json:"admin_username"`
	AdminPassword string `json:"admin_password"`
}

func (r *CreateOrganizationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if validator.IsEmpty(r.Address) {
		errs = append(errs, validator.ValidationError{Field: "address", Message: "address is required"})
	}
	if !validator.IsValidEmail(r.ContactEmail) {
		errs = append(errs, validator.ValidationError{Field: "contact_email", Message: "contact_email is invalid"})
	}
	if validator.IsEmpty(r.ContactPhone) {
		errs = append(errs, validator.ValidationError{Field: "contact_phone", Message: "contact_phone is required"})
	}
	if !validator.IsValidUsername(r.AdminUsername) {
		errs = append(errs, validator.ValidationError{Field: "admin_username", Message: "admin_username must be 3-50 characters (letters, digits, . _ -)"})
	}
	if len(r.AdminPassword) < 8 {
		errs = append(errs, validator.ValidationError{Field: "admin_password", Message: "admin_password must be at least 8 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateSettingsRequest updates the attendance-relevant organization
// settings; nil fields stay unchanged.
type UpdateSettingsRequest struct {
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	Timezone     *string  `json:"timezone,omitempty"`
	CheckInTime  *string  `json:"check_in_time,omitempty"`
	CheckOutTime *string  `json:"check_out_time,omitempty"`
	WeeklyOff    *string  `json:"weekly_off,omitempty"` // empty string clears the setting
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Latitude != nil && !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "latitude must be between -90 and 90"})
	}
	if r.Longitude != nil && !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{Field: "longitude", Message: "longitude must be between -180 and 180"})
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
	if r.WeeklyOff != nil && *r.WeeklyOff != "" && !validator.IsValidWeekday(*r.WeeklyOff) {
		errs = append(errs, validator.ValidationError{Field: "weekly_off", Message: "weekly_off must be an English weekday name"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AddHolidayRequest struct {
	Name      string `json:"name"`
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
}

func (r *AddHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
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

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type HolidayResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type OrganizationResponse struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Address      string            `json:"address"`
	ContactEmail string            `json:"contact_email"`
	ContactPhone string            `json:"contact_phone"`
	Latitude     *float64          `json:"latitude,omitempty"`
	Longitude    *float64          `json:"longitude,omitempty"`
	Timezone     string            `json:"timezone"`
	CheckInTime  string            `json:"check_in_time"`
	CheckOutTime string            `json:"check_out_time"`
	WeeklyOff    *string           `json:"weekly_off,omitempty"`
	IsActive     bool              `json:"is_active"`
	Holidays     []HolidayResponse `json:"holidays"`
	CreatedAt    string            `json:"created_at"`
}
