package organization

import (
	"time"
)

type Organization struct {
	ID           string
	Name         string
	Address      string
	ContactEmail string
	ContactPhone string
	Latitude     *float64
	Longitude    *float64
	Timezone     string // IANA name, e.g. "Asia/Kolkata"
	CheckInTime  string // "HH:MM" defaults applied to new employees
	CheckOutTime string
	WeeklyOff    *string // English weekday name, nil when none configured
	IsActive     bool
	Holidays     []Holiday
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Holiday struct {
	ID             string
	OrganizationID string
	Name           string
	StartDate      time.Time
	EndDate        time.Time
}

// Location resolves the organization's timezone, falling back to UTC
// when unset or unknown. Every day-boundary comparison in the engine
// must go through the same location.
func (o Organization) Location() *time.Location {
	if o.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(o.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsHoliday reports whether day falls inside any holiday interval,
// inclusive on both ends, compared at day granularity.
func (o Organization) IsHoliday(day time.Time) bool {
	y, m, d := day.Date()
	day = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	for _, h := range o.Holidays {
		sy, sm, sd := h.StartDate.Date()
		ey, em, ed := h.EndDate.Date()
		start := time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC)
		end := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
		if !day.Before(start) && !day.After(end) {
			return true
		}
	}
	return false
}

// IsWeeklyOff reports whether day's weekday matches the configured
// weekly day-off.
func (o Organization) IsWeeklyOff(day time.Time) bool {
	if o.WeeklyOff == nil || *o.WeeklyOff == "" {
		return false
	}
	return day.Weekday().String() == *o.WeeklyOff
}
