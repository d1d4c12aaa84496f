package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attendlyhq/attendly-backend-go/internal/domain/attendance"
	"github.com/attendlyhq/attendly-backend-go/internal/domain/employee"
	"github.com/attendlyhq/attendly-backend-go/internal/domain/organization"
)

func testOrg(t *testing.T) *organization.Organization {
	t.Helper()
	sunday := "Sunday"
	return &organization.Organization{
		ID:        "org-1",
		Timezone:  "Asia/Kolkata",
		WeeklyOff: &sunday,
		Holidays: []organization.Holiday{
			{
				Name:      "Holi",
				StartDate: time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
			},
		},
	}
}

func testEmployee() *employee.Employee {
	return &employee.Employee{
		ID:       "emp-1",
		JoinDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestResolveDay(t *testing.T) {
	org := testOrg(t)
	emp := testEmployee()
	loc := org.Location()
	// 2026-03-16 is a Monday.
	now := time.Date(2026, 3, 16, 12, 0, 0, 0, loc)

	day := func(d int) time.Time {
		return time.Date(2026, 3, d, 0, 0, 0, 0, loc)
	}

	t.Run("before the join date", func(t *testing.T) {
		got := ResolveDay(org, emp, nil, time.Date(2026, 1, 15, 0, 0, 0, 0, loc), now)
		assert.Equal(t, attendance.StatusBeforeJoin, got.Status)
	})

	t.Run("holiday interval is inclusive", func(t *testing.T) {
		for _, d := range []int{3, 4} {
			got := ResolveDay(org, emp, nil, day(d), now)
			assert.Equal(t, attendance.StatusHoliday, got.Status)
			require.NotNil(t, got.HolidayName)
			assert.Equal(t, "Holi", *got.HolidayName)
		}
	})

	t.Run("holiday wins over a stored record", func(t *testing.T) {
		rec := &attendance.Attendance{Status: attendance.StatusPresent, Date: day(3)}
		got := ResolveDay(org, emp, rec, day(3), now)
		assert.Equal(t, attendance.StatusHoliday, got.Status)
	})

	t.Run("weekly off", func(t *testing.T) {
		// 2026-03-08 is a Sunday.
		got := ResolveDay(org, emp, nil, day(8), now)
		assert.Equal(t, attendance.StatusWeekOff, got.Status)
	})

	t.Run("stored record status is used verbatim", func(t *testing.T) {
		checkIn := time.Date(2026, 3, 10, 9, 0, 0, 0, loc)
		hours := 8.5
		rec := &attendance.Attendance{
			Status:            attendance.StatusLate,
			Date:              day(10),
			CheckInTime:       &checkIn,
			WorkDurationHours: &hours,
		}
		got := ResolveDay(org, emp, rec, day(10), now)
		assert.Equal(t, attendance.StatusLate, got.Status)
		require.NotNil(t, got.CheckInTime)
		assert.Equal(t, &hours, got.WorkDurationHours)
	})

	t.Run("today without a record is not available", func(t *testing.T) {
		got := ResolveDay(org, emp, nil, day(16), now)
		assert.Equal(t, attendance.StatusNotAvailable, got.Status)
	})

	t.Run("future day is not available", func(t *testing.T) {
		got := ResolveDay(org, emp, nil, day(25), now)
		assert.Equal(t, attendance.StatusNotAvailable, got.Status)
	})

	t.Run("past working day without a record is absent", func(t *testing.T) {
		got := ResolveDay(org, emp, nil, day(10), now)
		assert.Equal(t, attendance.StatusAbsent, got.Status)
	})
}

func TestResolveMonth(t *testing.T) {
	org := testOrg(t)
	emp := testEmployee()
	loc := org.Location()
	now := time.Date(2026, 4, 10, 12, 0, 0, 0, loc)

	records := []attendance.Attendance{
		{Status: attendance.StatusPresent, Date: time.Date(2026, 3, 2, 0, 0, 0, 0, loc)},
		{Status: attendance.StatusOnLeave, Date: time.Date(2026, 3, 5, 0, 0, 0, 0, loc)},
	}

	days := ResolveMonth(org, emp, records, 2026, time.March, now)

	// One entry per calendar day, ascending, no gaps.
	require.Len(t, days, 31)
	assert.Equal(t, "2026-03-01", days[0].Date)
	assert.Equal(t, "2026-03-31", days[30].Date)
	for i := 1; i < len(days); i++ {
		assert.Less(t, days[i-1].Date, days[i].Date)
	}

	assert.Equal(t, attendance.StatusPresent, days[1].Status)
	assert.Equal(t, attendance.StatusHoliday, days[2].Status)
	assert.Equal(t, attendance.StatusHoliday, days[3].Status)
	assert.Equal(t, attendance.StatusOnLeave, days[4].Status)

	summary := Summarize(days)
	assert.Equal(t, 1, summary.Present)
	assert.Equal(t, 1, summary.OnLeave)
	assert.Equal(t, 2, summary.Holiday)
	// Sundays in March 2026: the 1st, 8th, 15th, 22nd and 29th.
	assert.Equal(t, 5, summary.WeekOff)
}
