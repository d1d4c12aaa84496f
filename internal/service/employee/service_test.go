package employee

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attendlyhq/attendly-backend-go/internal/domain/employee"
	"github.com/attendlyhq/attendly-backend-go/internal/domain/organization"
	"github.com/attendlyhq/attendly-backend-go/internal/repository/memory"
)

type fixture struct {
	svc       *EmployeeServiceImpl
	employees *memory.EmployeeRepository
	org       *organization.Organization
	admin     employee.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	orgs := memory.NewOrganizationRepository()
	employees := memory.NewEmployeeRepository()

	org := &organization.Organization{
		Name:         "Acme",
		Timezone:     "UTC",
		CheckInTime:  "09:00",
		CheckOutTime: "18:00",
		IsActive:     true,
	}
	require.NoError(t, orgs.Create(ctx, org))

	return &fixture{
		svc:       NewEmployeeService(employees, orgs),
		employees: employees,
		org:       org,
		admin:     employee.Actor{ID: "admin", OrganizationID: org.ID, Role: employee.RoleSuperAdmin},
	}
}

func registerReq() employee.RegisterEmployeeRequest {
	return employee.RegisterEmployeeRequest{
		Name:         "Asha",
		Email:        "asha@acme.test",
		Username:     "asha",
		Password:     "s3cret-pass",
		Role:         "employee",
		Salary:       30000,
		JoinDate:     "2026-01-01",
		AllotedLeave: 20,
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("falls back to the organization clock", func(t *testing.T) {
		f := newFixture(t)

		resp, err := f.svc.Register(ctx, f.admin, registerReq())
		require.NoError(t, err)

		assert.Equal(t, "09:00", resp.CheckInTime)
		assert.Equal(t, "18:00", resp.CheckOutTime)
		assert.InDelta(t, 9.0, resp.WorkDurationHours, 1e-9)
		assert.True(t, resp.IsActive)
	})

	t.Run("derives the duration of an overnight shift", func(t *testing.T) {
		f := newFixture(t)

		req := registerReq()
		req.CheckInTime = "22:00"
		req.CheckOutTime = "06:00"
		resp, err := f.svc.Register(ctx, f.admin, req)
		require.NoError(t, err)

		assert.InDelta(t, 8.0, resp.WorkDurationHours, 1e-9)
	})

	t.Run("super admin only", func(t *testing.T) {
		f := newFixture(t)
		mgr := employee.Actor{ID: "m", OrganizationID: f.org.ID, Role: employee.RoleReportingManager}

		_, err := f.svc.Register(ctx, mgr, registerReq())
		assert.ErrorIs(t, err, employee.ErrNotAuthorized)
	})

	t.Run("rejects a taken username", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Register(ctx, f.admin, registerReq())
		require.NoError(t, err)

		req := registerReq()
		req.Email = "asha2@acme.test"
		_, err = f.svc.Register(ctx, f.admin, req)
		assert.ErrorIs(t, err, employee.ErrUsernameExists)
	})

	t.Run("rejects a taken email", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Register(ctx, f.admin, registerReq())
		require.NoError(t, err)

		req := registerReq()
		req.Username = "asha2"
		_, err = f.svc.Register(ctx, f.admin, req)
		assert.ErrorIs(t, err, employee.ErrEmailExists)
	})

	t.Run("rejects a plain employee as reporting manager", func(t *testing.T) {
		f := newFixture(t)

		first, err := f.svc.Register(ctx, f.admin, registerReq())
		require.NoError(t, err)

		req := registerReq()
		req.Email = "ravi@acme.test"
		req.Username = "ravi"
		req.ReportingManagerID = &first.ID
		_, err = f.svc.Register(ctx, f.admin, req)
		assert.ErrorIs(t, err, employee.ErrInvalidRole)
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.svc.Register(ctx, f.admin, registerReq())
	require.NoError(t, err)

	t.Run("merges only the provided fields", func(t *testing.T) {
		salary := 35000.0
		in, out := "10:00", "17:00"
		resp, err := f.svc.Update(ctx, f.admin, employee.UpdateEmployeeRequest{
			ID:           created.ID,
			Salary:       &salary,
			CheckInTime:  &in,
			CheckOutTime: &out,
		})
		require.NoError(t, err)

		assert.Equal(t, 35000.0, resp.Salary)
		assert.InDelta(t, 7.0, resp.WorkDurationHours, 1e-9)
		// untouched fields survive
		assert.Equal(t, "Asha", resp.Name)
		assert.Equal(t, 20, resp.AllotedLeave)
	})

	t.Run("super admin only", func(t *testing.T) {
		self := employee.Actor{ID: created.ID, OrganizationID: f.org.ID, Role: employee.RoleEmployee}
		name := "Someone Else"
		_, err := f.svc.Update(ctx, self, employee.UpdateEmployeeRequest{ID: created.ID, Name: &name})
		assert.ErrorIs(t, err, employee.ErrNotAuthorized)
	})
}

func TestGetAndList(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	mgrReq := registerReq()
	mgrReq.Name = "Meera"
	mgrReq.Email = "meera@acme.test"
	mgrReq.Username = "meera"
	mgrReq.Role = "reporting_manager"
	mgr, err := f.svc.Register(ctx, f.admin, mgrReq)
	require.NoError(t, err)

	empReq := registerReq()
	empReq.ReportingManagerID = &mgr.ID
	emp, err := f.svc.Register(ctx, f.admin, empReq)
	require.NoError(t, err)

	loneReq := registerReq()
	loneReq.Name = "Ravi"
	loneReq.Email = "ravi@acme.test"
	loneReq.Username = "ravi"
	_, err = f.svc.Register(ctx, f.admin, loneReq)
	require.NoError(t, err)

	empActor := employee.Actor{ID: emp.ID, OrganizationID: f.org.ID, Role: employee.RoleEmployee}
	mgrActor := employee.Actor{ID: mgr.ID, OrganizationID: f.org.ID, Role: employee.RoleReportingManager}

	t.Run("employees read themselves", func(t *testing.T) {
		resp, err := f.svc.Get(ctx, empActor, emp.ID)
		require.NoError(t, err)
		assert.Equal(t, emp.ID, resp.ID)
	})

	t.Run("employees cannot read a peer", func(t *testing.T) {
		_, err := f.svc.Get(ctx, empActor, mgr.ID)
		assert.ErrorIs(t, err, employee.ErrNotAuthorized)
	})

	t.Run("managers read their reports", func(t *testing.T) {
		resp, err := f.svc.Get(ctx, mgrActor, emp.ID)
		require.NoError(t, err)
		assert.Equal(t, emp.ID, resp.ID)
	})

	t.Run("managers list only their reports", func(t *testing.T) {
		list, err := f.svc.List(ctx, mgrActor)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, emp.ID, list[0].ID)
	})

	t.Run("super admins list everyone", func(t *testing.T) {
		list, err := f.svc.List(ctx, f.admin)
		require.NoError(t, err)
		assert.Len(t, list, 3)
	})

	t.Run("employees cannot list", func(t *testing.T) {
		_, err := f.svc.List(ctx, empActor)
		assert.ErrorIs(t, err, employee.ErrNotAuthorized)
	})
}
