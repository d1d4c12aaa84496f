package attendance

import (
	"time"

	"github.com/attendlyhq/attendly-backend-go/internal/domain/attendance"
	"github.com/attendlyhq/attendly-backend-go/internal/domain/employee"
	"github.com/attendlyhq/attendly-backend-go/internal/domain/organization"
)

// DayOf truncates t to midnight in loc. Every day comparison in the
// engine goes through this so calendar math always uses the
// organization's timezone.
func DayOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// ResolveDay derives the status of one calendar day. First match wins:
// before the join date, then an org holiday (org-wide truth, overrides
// any stored record), then the weekly off, then the stored record
// verbatim, then not_available for today and future days, absent for
// past days.
func ResolveDay(org *organization.Organization, emp *employee.Employee, rec *attendance.Attendance, day time.Time, now time.Time) attendance.DayRecord {
	loc := org.Location()
	day = DayOf(day, loc)
	today := DayOf(now, loc)

	out := attendance.DayRecord{Date: day.Format("2006-01-02")}

	joinDay := DayOf(emp.JoinDate, loc)
	if day.Before(joinDay) {
		out.Status = attendance.StatusBeforeJoin
		return out
	}

	if org.IsHoliday(day) {
		out.Status = attendance.StatusHoliday
		if name := holidayName(org, day); name != "" {
			out.HolidayName = &name
		}
		return out
	}

	if org.IsWeeklyOff(day) {
		out.Status = attendance.StatusWeekOff
		return out
	}

	if rec != nil {
		out.Status = rec.Status
		out.CheckInTime = formatTimePtr(rec.CheckInTime, loc)
		out.CheckOutTime = formatTimePtr(rec.CheckOutTime, loc)
		out.WorkDurationHours = rec.WorkDurationHours
		return out
	}

	if !day.Before(today) {
		out.Status = attendance.StatusNotAvailable
		return out
	}

	out.Status = attendance.StatusAbsent
	return out
}

func holidayName(org *organization.Organization, day time.Time) string {
	y, m, d := day.Date()
	day = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	for _, h := range org.Holidays {
		sy, sm, sd := h.StartDate.Date()
		ey, em, ed := h.EndDate.Date()
		start := time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC)
		end := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
		if !day.Before(start) && !day.After(end) {
			return h.Name
		}
	}
	return ""
}

func formatTimePtr(t *time.Time, loc *time.Location) *string {
	if t == nil {
		return nil
	}
	s := t.In(loc).Format(time.RFC3339)
	return &s
}

// ResolveMonth drives ResolveDay over every calendar day of the month.
// The result has exactly one entry per day, ascending. records carries
// whatever stored rows exist in the month, keyed lookup is by date.
func ResolveMonth(org *organization.Organization, emp *employee.Employee, records []attendance.Attendance, year int, month time.Month, now time.Time) []attendance.DayRecord {
	loc := org.Location()

	byDay := make(map[string]*attendance.Attendance, len(records))
	for i := range records {
		key := DayOf(records[i].Date, loc).Format("2006-01-02")
		byDay[key] = &records[i]
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	days := make([]attendance.DayRecord, 0, daysInMonth)
	for d := 1; d <= daysInMonth; d++ {
		day := time.Date(year, month, d, 0, 0, 0, 0, loc)
		days = append(days, ResolveDay(org, emp, byDay[day.Format("2006-01-02")], day, now))
	}
	return days
}

// Summarize counts resolved statuses for the monthly view.
func Summarize(days []attendance.DayRecord) attendance.MonthlySummary {
	var s attendance.MonthlySummary
	for _, d := range days {
		switch d.Status {
		case attendance.StatusPresent, attendance.StatusCheckedIn:
			s.Present++
		case attendance.StatusLate:
			s.Late++
		case attendance.StatusHalfDay:
			s.HalfDay++
		case attendance.StatusAbsent:
			s.Absent++
		case attendance.StatusOnLeave:
			s.OnLeave++
		case attendance.StatusPaidLeave:
			s.PaidLeave++
		case attendance.StatusPendingRegularize:
			s.PendingRegularize++
		case attendance.StatusApprovedRegularise:
			s.ApprovedRegularise++
		case attendance.StatusRejectRegularise:
			s.RejectRegularise++
		case attendance.StatusHoliday:
			s.Holiday++
		case attendance.StatusWeekOff:
			s.WeekOff++
		}
	}
	return s
}
