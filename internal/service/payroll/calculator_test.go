package payroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/attendlyhq/attendly-backend-go/internal/domain/attendance"
)

func daysOf(statuses ...attendance.Status) []attendance.DayRecord {
	days := make([]attendance.DayRecord, 0, len(statuses))
	for _, s := range statuses {
		days = append(days, attendance.DayRecord{Status: s})
	}
	return days
}

func repeat(s attendance.Status, n int) []attendance.Status {
	out := make([]attendance.Status, n)
	for i := range out {
		out[i] = s
	}
	return out
}

func TestComputeMonthly(t *testing.T) {
	t.Run("full and half days against a flat month", func(t *testing.T) {
		var statuses []attendance.Status
		statuses = append(statuses, repeat(attendance.StatusPresent, 20)...)
		statuses = append(statuses, repeat(attendance.StatusHalfDay, 5)...)
		statuses = append(statuses, repeat(attendance.StatusAbsent, 5)...)

		b := ComputeMonthly(daysOf(statuses...), 30000, 2026, time.April, false)

		assert.Equal(t, 30, b.DaysInMonth)
		assert.Equal(t, 30, b.WorkingDays)
		assert.Equal(t, 20, b.PaidDays)
		assert.Equal(t, 5, b.HalfDays)
		assert.Equal(t, 5, b.UnpaidDays)
		assert.InDelta(t, 1000.0, b.DailyRate, 1e-9)
		assert.Equal(t, 22500.0, b.FinalSalary)
	})

	t.Run("holidays and weekly off shrink the denominator", func(t *testing.T) {
		var statuses []attendance.Status
		statuses = append(statuses, repeat(attendance.StatusPresent, 20)...)
		statuses = append(statuses, repeat(attendance.StatusHoliday, 2)...)
		statuses = append(statuses, repeat(attendance.StatusWeekOff, 5)...)
		statuses = append(statuses, repeat(attendance.StatusAbsent, 4)...)

		b := ComputeMonthly(daysOf(statuses...), 31000, 2026, time.March, true)

		assert.Equal(t, 31, b.DaysInMonth)
		assert.Equal(t, 2, b.HolidayDays)
		// 31 - 2 holidays - flat 4 for the weekly off
		assert.Equal(t, 25, b.WorkingDays)
		assert.Equal(t, 20, b.PaidDays)
		assert.Equal(t, 4, b.UnpaidDays)
		assert.InDelta(t, 1240.0, b.DailyRate, 1e-9)
		assert.Equal(t, 24800.0, b.FinalSalary)
	})

	t.Run("leave and regularization statuses", func(t *testing.T) {
		b := ComputeMonthly(daysOf(
			attendance.StatusOnLeave,
			attendance.StatusLate,
			attendance.StatusApprovedRegularise,
			attendance.StatusPaidLeave,
			attendance.StatusPendingRegularize,
			attendance.StatusRejectRegularise,
		), 6000, 2026, time.May, false)

		assert.Equal(t, 3, b.PaidDays)
		assert.Equal(t, 3, b.UnpaidDays)
		assert.Equal(t, 3000.0, b.FinalSalary)
	})

	t.Run("open check-in earns nothing", func(t *testing.T) {
		b := ComputeMonthly(daysOf(
			attendance.StatusCheckedIn,
			attendance.StatusPresent,
		), 2000, 2026, time.June, false)

		assert.Equal(t, 1, b.PaidDays)
		assert.Equal(t, 1, b.UnpaidDays)
		assert.Equal(t, 1000.0, b.FinalSalary)
	})

	t.Run("derived statuses sit outside every bucket", func(t *testing.T) {
		b := ComputeMonthly(daysOf(
			attendance.StatusBeforeJoin,
			attendance.StatusNotAvailable,
			attendance.StatusWeekOff,
			attendance.StatusPresent,
		), 4000, 2026, time.July, false)

		assert.Equal(t, 1, b.PaidDays)
		assert.Equal(t, 0, b.UnpaidDays)
		assert.Equal(t, 4, b.WorkingDays)
	})

	t.Run("no working days yields zero salary", func(t *testing.T) {
		b := ComputeMonthly(daysOf(repeat(attendance.StatusHoliday, 3)...), 9000, 2026, time.August, false)

		assert.Equal(t, 0, b.WorkingDays)
		assert.Equal(t, 0.0, b.DailyRate)
		assert.Equal(t, 0.0, b.FinalSalary)
	})

	t.Run("rounds the final figure", func(t *testing.T) {
		// 1 paid day of a 3 working day month at 1000: 333.333...
		b := ComputeMonthly(daysOf(
			attendance.StatusPresent,
			attendance.StatusAbsent,
			attendance.StatusAbsent,
		), 1000, 2026, time.September, false)

		assert.Equal(t, 333.0, b.FinalSalary)
	})
}
