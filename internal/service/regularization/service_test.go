package regularization

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attendlyhq/attendly-backend-go/internal/domain/attendance"
	"github.com/attendlyhq/attendly-backend-go/internal/domain/employee"
	"github.com/attendlyhq/attendly-backend-go/internal/domain/leave"
	"github.com/attendlyhq/attendly-backend-go/internal/domain/organization"
	"github.com/attendlyhq/attendly-backend-go/internal/repository/memory"
)

type fixture struct {
	svc         *RegularizationServiceImpl
	attendances *memory.AttendanceRepository
	employees   *memory.EmployeeRepository
	leaves      *memory.LeaveRepository
	org         *organization.Organization
	emp         *employee.Employee
	manager     *employee.Employee
	empActor    employee.Actor
	mgrActor    employee.Actor
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()
	ctx := context.Background()

	orgs := memory.NewOrganizationRepository()
	employees := memory.NewEmployeeRepository()
	attendances := memory.NewAttendanceRepository()
	leaves := memory.NewLeaveRepository()

	org := &organization.Organization{Name: "Acme", Timezone: "UTC", IsActive: true}
	require.NoError(t, orgs.Create(ctx, org))

	manager := &employee.Employee{
		OrganizationID: org.ID,
		Name:           "Meera",
		Email:          "meera@acme.test",
		Username:       "meera",
		Role:           employee.RoleReportingManager,
		IsActive:       true,
		JoinDate:       time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, employees.Create(ctx, manager))

	emp := &employee.Employee{
		OrganizationID:     org.ID,
		Name:               "Asha",
		Email:              "asha@acme.test",
		Username:           "asha",
		Role:               employee.RoleEmployee,
		IsActive:           true,
		JoinDate:           time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		ReportingManagerID: &manager.ID,
	}
	require.NoError(t, employees.Create(ctx, emp))

	svc := NewRegularizationService(attendances, employees, orgs, leaves, memory.TxManager{}).
		WithNow(func() time.Time { return now })

	return &fixture{
		svc:         svc,
		attendances: attendances,
		employees:   employees,
		leaves:      leaves,
		org:         org,
		emp:         emp,
		manager:     manager,
		empActor:    employee.Actor{ID: emp.ID, OrganizationID: org.ID, Role: employee.RoleEmployee},
		mgrActor:    employee.Actor{ID: manager.ID, OrganizationID: org.ID, Role: employee.RoleReportingManager},
	}
}

func TestRegularizeApply(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC)
	req := attendance.RegularizeApplyRequest{
		Date:         "2026-03-12",
		CheckInTime:  "2026-03-12T09:00:00Z",
		CheckOutTime: "2026-03-12T18:00:00Z",
		Reason:       "forgot to check in",
	}

	t.Run("creates a pending row for a day without a record", func(t *testing.T) {
		f := newFixture(t, now)

		resp, err := f.svc.Apply(ctx, f.empActor, req)
		require.NoError(t, err)

		assert.Equal(t, attendance.StatusPendingRegularize, resp.Status)
		assert.Equal(t, attendance.RegularizePending, resp.RegularizeRequest)
		assert.Equal(t, "2026-03-12", resp.Date)
		require.NotNil(t, resp.RequestedCheckIn)
		require.NotNil(t, resp.RequestedCheckOut)
	})

	t.Run("moves an absent day to pending", func(t *testing.T) {
		f := newFixture(t, now)

		require.NoError(t, f.attendances.Create(ctx, &attendance.Attendance{
			OrganizationID:    f.org.ID,
			EmployeeID:        f.emp.ID,
			Date:              time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
			Status:            attendance.StatusAbsent,
			RegularizeRequest: attendance.RegularizeNone,
		}))

		resp, err := f.svc.Apply(ctx, f.empActor, req)
		require.NoError(t, err)
		assert.Equal(t, attendance.StatusPendingRegularize, resp.Status)
	})

	t.Run("rejects a future date", func(t *testing.T) {
		f := newFixture(t, now)

		_, err := f.svc.Apply(ctx, f.empActor, attendance.RegularizeApplyRequest{
			Date:         "2026-03-17",
			CheckInTime:  "2026-03-17T09:00:00Z",
			CheckOutTime: "2026-03-17T18:00:00Z",
			Reason:       "forgot",
		})
		assert.ErrorIs(t, err, attendance.ErrFutureDate)
	})

	t.Run("rejects a date before the join date", func(t *testing.T) {
		f := newFixture(t, now)

		_, err := f.svc.Apply(ctx, f.empActor, attendance.RegularizeApplyRequest{
			Date:         "2025-12-20",
			CheckInTime:  "2025-12-20T09:00:00Z",
			CheckOutTime: "2025-12-20T18:00:00Z",
			Reason:       "forgot",
		})
		assert.ErrorIs(t, err, attendance.ErrBeforeJoinDate)
	})

	t.Run("rejects a day covered by a leave request", func(t *testing.T) {
		f := newFixture(t, now)

		require.NoError(t, f.leaves.Create(ctx, &leave.LeaveRequest{
			OrganizationID: f.org.ID,
			EmployeeID:     f.emp.ID,
			Type:           leave.TypeCasual,
			StartDate:      time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
			EndDate:        time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC),
			Status:         leave.StatusPending,
		}))

		_, err := f.svc.Apply(ctx, f.empActor, req)
		assert.ErrorIs(t, err, attendance.ErrDateCoveredByLeave)
	})

	t.Run("rejects a second request for the same day", func(t *testing.T) {
		f := newFixture(t, now)

		_, err := f.svc.Apply(ctx, f.empActor, req)
		require.NoError(t, err)

		_, err = f.svc.Apply(ctx, f.empActor, req)
		assert.ErrorIs(t, err, attendance.ErrRegularizationPending)
	})
}

func TestRegularizeDecide(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC)

	apply := func(t *testing.T, f *fixture) string {
		t.Helper()
		resp, err := f.svc.Apply(ctx, f.empActor, attendance.RegularizeApplyRequest{
			Date:         "2026-03-12",
			CheckInTime:  "2026-03-12T09:00:00Z",
			CheckOutTime: "2026-03-12T18:00:00Z",
			Reason:       "forgot to check in",
		})
		require.NoError(t, err)
		return resp.ID
	}

	t.Run("approval copies the requested times", func(t *testing.T) {
		f := newFixture(t, now)
		id := apply(t, f)

		resp, err := f.svc.Decide(ctx, f.mgrActor, id, attendance.RegularizeDecisionRequest{Decision: "approved"})
		require.NoError(t, err)

		assert.Equal(t, attendance.StatusApprovedRegularise, resp.Status)
		assert.Equal(t, attendance.RegularizeApproved, resp.RegularizeRequest)
		assert.True(t, resp.IsRegularized)
		require.NotNil(t, resp.CheckInTime)
		require.NotNil(t, resp.CheckOutTime)
		require.NotNil(t, resp.WorkDurationHours)
		assert.InDelta(t, 9.0, *resp.WorkDurationHours, 1e-9)
	})

	t.Run("rejection leaves the day's times untouched", func(t *testing.T) {
		f := newFixture(t, now)
		id := apply(t, f)

		resp, err := f.svc.Decide(ctx, f.mgrActor, id, attendance.RegularizeDecisionRequest{Decision: "rejected"})
		require.NoError(t, err)

		assert.Equal(t, attendance.StatusRejectRegularise, resp.Status)
		assert.Equal(t, attendance.RegularizeRejected, resp.RegularizeRequest)
		assert.False(t, resp.IsRegularized)
		assert.Nil(t, resp.CheckInTime)
		assert.Nil(t, resp.CheckOutTime)
	})

	t.Run("a rejected day can be requested again", func(t *testing.T) {
		f := newFixture(t, now)
		id := apply(t, f)

		_, err := f.svc.Decide(ctx, f.mgrActor, id, attendance.RegularizeDecisionRequest{Decision: "rejected"})
		require.NoError(t, err)

		resp, err := f.svc.Apply(ctx, f.empActor, attendance.RegularizeApplyRequest{
			Date:         "2026-03-12",
			CheckInTime:  "2026-03-12T09:30:00Z",
			CheckOutTime: "2026-03-12T18:30:00Z",
			Reason:       "second attempt",
		})
		require.NoError(t, err)
		assert.Equal(t, attendance.RegularizePending, resp.RegularizeRequest)
		assert.False(t, resp.IsRegularized)
	})

	t.Run("only the reporting chain can decide", func(t *testing.T) {
		f := newFixture(t, now)
		id := apply(t, f)

		other := &employee.Employee{
			OrganizationID: f.org.ID,
			Name:           "Ravi",
			Email:          "ravi@acme.test",
			Username:       "ravi",
			Role:           employee.RoleReportingManager,
			IsActive:       true,
			JoinDate:       time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		}
		require.NoError(t, f.employees.Create(ctx, other))
		otherActor := employee.Actor{ID: other.ID, OrganizationID: f.org.ID, Role: employee.RoleReportingManager}

		_, err := f.svc.Decide(ctx, otherActor, id, attendance.RegularizeDecisionRequest{Decision: "approved"})
		assert.ErrorIs(t, err, attendance.ErrNotAuthorized)
	})

	t.Run("a decided request stays decided", func(t *testing.T) {
		f := newFixture(t, now)
		id := apply(t, f)

		_, err := f.svc.Decide(ctx, f.mgrActor, id, attendance.RegularizeDecisionRequest{Decision: "approved"})
		require.NoError(t, err)

		_, err = f.svc.Decide(ctx, f.mgrActor, id, attendance.RegularizeDecisionRequest{Decision: "rejected"})
		assert.ErrorIs(t, err, attendance.ErrRegularizationNotPending)
	})
}

func TestListPendingScoping(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC)

	f := newFixture(t, now)

	other := &employee.Employee{
		OrganizationID: f.org.ID,
		Name:           "Ravi",
		Email:          "ravi@acme.test",
		Username:       "ravi",
		Role:           employee.RoleEmployee,
		IsActive:       true,
		JoinDate:       time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, f.employees.Create(ctx, other))
	otherActor := employee.Actor{ID: other.ID, OrganizationID: f.org.ID, Role: employee.RoleEmployee}

	_, err := f.svc.Apply(ctx, f.empActor, attendance.RegularizeApplyRequest{
		Date:         "2026-03-12",
		CheckInTime:  "2026-03-12T09:00:00Z",
		CheckOutTime: "2026-03-12T18:00:00Z",
		Reason:       "forgot to check in",
	})
	require.NoError(t, err)
	_, err = f.svc.Apply(ctx, otherActor, attendance.RegularizeApplyRequest{
		Date:         "2026-03-13",
		CheckInTime:  "2026-03-13T09:00:00Z",
		CheckOutTime: "2026-03-13T18:00:00Z",
		Reason:       "badge failure",
	})
	require.NoError(t, err)

	t.Run("employees see only their own requests", func(t *testing.T) {
		list, err := f.svc.ListPending(ctx, f.empActor, 0, 0)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, f.emp.ID, list[0].EmployeeID)
	})

	t.Run("managers see their reports", func(t *testing.T) {
		list, err := f.svc.ListPending(ctx, f.mgrActor, 0, 0)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, f.emp.ID, list[0].EmployeeID)
	})

	t.Run("a manager with no reports sees nothing", func(t *testing.T) {
		lone := &employee.Employee{
			OrganizationID: f.org.ID,
			Name:           "Devi",
			Email:          "devi@acme.test",
			Username:       "devi",
			Role:           employee.RoleReportingManager,
			IsActive:       true,
			JoinDate:       time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		}
		require.NoError(t, f.employees.Create(ctx, lone))

		list, err := f.svc.ListPending(ctx, employee.Actor{ID: lone.ID, OrganizationID: f.org.ID, Role: employee.RoleReportingManager}, 0, 0)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("super admins see everything", func(t *testing.T) {
		admin := employee.Actor{ID: f.manager.ID, OrganizationID: f.org.ID, Role: employee.RoleSuperAdmin}
		list, err := f.svc.ListPending(ctx, admin, 0, 0)
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})
}
