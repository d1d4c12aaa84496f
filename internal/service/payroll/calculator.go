package payroll

import (
	"math"
	"time"

	"github.com/attendlyhq/attendly-backend-go/internal/domain/attendance"
)

// Breakdown is a monthly salary derivation. All counts are calendar
// days of the target month.
type Breakdown struct {
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	DaysInMonth int     `json:"days_in_month"`
	WorkingDays int     `json:"working_days"`
	HolidayDays int     `json:"holiday_days"`
	PaidDays    int     `json:"paid_days"`
	HalfDays    int     `json:"half_days"`
	UnpaidDays  int     `json:"unpaid_days"`
	DailyRate   float64 `json:"daily_rate"`
	Salary      float64 `json:"salary"`
	FinalSalary float64 `json:"final_salary"`
}

// weekOffDaysPerMonth is the flat deduction applied when a weekly off
// is configured, regardless of how many actually fall in the month.
const weekOffDaysPerMonth = 4

// ComputeMonthly turns a resolved month of day statuses into a salary
// figure. Fully paid: present, late, on_leave, approved
// regularization. Half paid: half_day. Everything else on a working
// day is unpaid, including a still-open checked_in day. Holidays, week
// offs, days before the join date and unresolved today/future days sit
// outside all buckets. The same inputs always produce the same output.
func ComputeMonthly(days []attendance.DayRecord, salary float64, year int, month time.Month, weekOffConfigured bool) Breakdown {
	b := Breakdown{
		Year:        year,
		Month:       int(month),
		DaysInMonth: len(days),
		Salary:      salary,
	}

	for _, d := range days {
		switch d.Status {
		case attendance.StatusPresent, attendance.StatusLate,
			attendance.StatusOnLeave, attendance.StatusApprovedRegularise:
			b.PaidDays++
		case attendance.StatusHalfDay:
			b.HalfDays++
		case attendance.StatusHoliday:
			b.HolidayDays++
		case attendance.StatusWeekOff, attendance.StatusBeforeJoin, attendance.StatusNotAvailable:
			// outside all buckets
		default:
			// absent, paid_leave, rejected or pending regularization,
			// or anything unrecognized on a working day
			b.UnpaidDays++
		}
	}

	b.WorkingDays = b.DaysInMonth - b.HolidayDays
	if weekOffConfigured {
		b.WorkingDays -= weekOffDaysPerMonth
	}
	if b.WorkingDays <= 0 {
		return b
	}

	b.DailyRate = salary / float64(b.WorkingDays)
	b.FinalSalary = math.Round((float64(b.PaidDays) + float64(b.HalfDays)*0.5) * b.DailyRate)
	return b
}
