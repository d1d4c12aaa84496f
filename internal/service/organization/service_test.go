package organization

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attendlyhq/attendly-backend-go/internal/domain/employee"
	"github.com/attendlyhq/attendly-backend-go/internal/domain/organization"
	"github.com/attendlyhq/attendly-backend-go/internal/pkg/validator"
	"github.com/attendlyhq/attendly-backend-go/internal/repository/memory"
)

func newOrgFixture(t *testing.T) (*OrganizationServiceImpl, *memory.EmployeeRepository) {
	t.Helper()
	employees := memory.NewEmployeeRepository()
	svc := NewOrganizationService(memory.NewOrganizationRepository(), employees, memory.TxManager{})
	return svc, employees
}

func onboardReq() organization.CreateOrganizationRequest {
	return organization.CreateOrganizationRequest{
		Name:          "Acme",
		Address:       "12 MG Road",
		ContactEmail:  "hello@acme.test",
		ContactPhone:  "+911234567890",
		AdminUsername: "acme-admin",
		AdminPassword: "s3cret-pass",
	}
}

func TestOnboard(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the organization with its bootstrap admin", func(t *testing.T) {
		svc, employees := newOrgFixture(t)

		resp, err := svc.Onboard(ctx, onboardReq())
		require.NoError(t, err)

		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, "UTC", resp.Timezone)
		assert.Equal(t, "09:00", resp.CheckInTime)
		assert.Equal(t, "18:00", resp.CheckOutTime)
		assert.True(t, resp.IsActive)

		admin, err := employees.GetByUsername(ctx, "acme-admin")
		require.NoError(t, err)
		assert.Equal(t, employee.RoleSuperAdmin, admin.Role)
		assert.Equal(t, resp.ID, admin.OrganizationID)
	})

	t.Run("rejects a taken admin username", func(t *testing.T) {
		svc, _ := newOrgFixture(t)

		_, err := svc.Onboard(ctx, onboardReq())
		require.NoError(t, err)

		second := onboardReq()
		second.Name = "Globex"
		second.ContactEmail = "hello@globex.test"
		second.ContactPhone = "+919876543210"
		_, err = svc.Onboard(ctx, second)
		assert.ErrorIs(t, err, employee.ErrUsernameExists)
	})

	t.Run("validates the request", func(t *testing.T) {
		svc, _ := newOrgFixture(t)

		req := onboardReq()
		req.AdminPassword = "short"
		_, err := svc.Onboard(ctx, req)

		var verrs validator.ValidationErrors
		assert.ErrorAs(t, err, &verrs)
	})
}

func TestUpdateSettings(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*OrganizationServiceImpl, employee.Actor) {
		t.Helper()
		svc, _ := newOrgFixture(t)
		resp, err := svc.Onboard(ctx, onboardReq())
		require.NoError(t, err)
		return svc, employee.Actor{ID: "admin", OrganizationID: resp.ID, Role: employee.RoleSuperAdmin}
	}

	t.Run("applies only the provided fields", func(t *testing.T) {
		svc, admin := setup(t)

		lat, lon := 12.9716, 77.5946
		tz := "Asia/Kolkata"
		off := "Sunday"
		resp, err := svc.UpdateSettings(ctx, admin, organization.UpdateSettingsRequest{
			Latitude:  &lat,
			Longitude: &lon,
			Timezone:  &tz,
			WeeklyOff: &off,
		})
		require.NoError(t, err)

		require.NotNil(t, resp.Latitude)
		assert.Equal(t, lat, *resp.Latitude)
		assert.Equal(t, "Asia/Kolkata", resp.Timezone)
		require.NotNil(t, resp.WeeklyOff)
		assert.Equal(t, "Sunday", *resp.WeeklyOff)
		// untouched defaults survive
		assert.Equal(t, "09:00", resp.CheckInTime)
	})

	t.Run("an empty weekly off clears it", func(t *testing.T) {
		svc, admin := setup(t)

		off := "Sunday"
		_, err := svc.UpdateSettings(ctx, admin, organization.UpdateSettingsRequest{WeeklyOff: &off})
		require.NoError(t, err)

		none := ""
		resp, err := svc.UpdateSettings(ctx, admin, organization.UpdateSettingsRequest{WeeklyOff: &none})
		require.NoError(t, err)
		assert.Nil(t, resp.WeeklyOff)
	})

	t.Run("rejects an unknown timezone", func(t *testing.T) {
		svc, admin := setup(t)

		tz := "Mars/Olympus"
		_, err := svc.UpdateSettings(ctx, admin, organization.UpdateSettingsRequest{Timezone: &tz})

		var verrs validator.ValidationErrors
		assert.ErrorAs(t, err, &verrs)
	})

	t.Run("super admin only", func(t *testing.T) {
		svc, admin := setup(t)
		mgr := employee.Actor{ID: "m", OrganizationID: admin.OrganizationID, Role: employee.RoleReportingManager}

		tz := "UTC"
		_, err := svc.UpdateSettings(ctx, mgr, organization.UpdateSettingsRequest{Timezone: &tz})
		assert.ErrorIs(t, err, employee.ErrNotAuthorized)
	})
}

func TestAddHoliday(t *testing.T) {
	ctx := context.Background()
	svc, _ := newOrgFixture(t)

	resp, err := svc.Onboard(ctx, onboardReq())
	require.NoError(t, err)
	admin := employee.Actor{ID: "admin", OrganizationID: resp.ID, Role: employee.RoleSuperAdmin}

	holiday, err := svc.AddHoliday(ctx, admin, organization.AddHolidayRequest{
		Name:      "Holi",
		StartDate: "2026-03-03",
		EndDate:   "2026-03-04",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, holiday.ID)
	assert.Equal(t, "Holi", holiday.Name)

	got, err := svc.Get(ctx, admin)
	require.NoError(t, err)
	require.Len(t, got.Holidays, 1)
	assert.Equal(t, "Holi", got.Holidays[0].Name)

	t.Run("rejects an inverted interval", func(t *testing.T) {
		_, err := svc.AddHoliday(ctx, admin, organization.AddHolidayRequest{
			Name:      "Oops",
			StartDate: "2026-03-04",
			EndDate:   "2026-03-03",
		})
		var verrs validator.ValidationErrors
		assert.ErrorAs(t, err, &verrs)
	})
}
