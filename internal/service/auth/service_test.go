package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/attendlyhq/attendly-backend-go/internal/domain/auth"
	"github.com/attendlyhq/attendly-backend-go/internal/domain/employee"
	"github.com/attendlyhq/attendly-backend-go/internal/pkg/jwt"
	"github.com/attendlyhq/attendly-backend-go/internal/repository/memory"
)

func newAuthFixture(t *testing.T) (*AuthServiceImpl, *employee.Employee) {
	t.Helper()
	ctx := context.Background()

	employees := memory.NewEmployeeRepository()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	emp := &employee.Employee{
		OrganizationID: "org-1",
		Name:           "Asha",
		Email:          "asha@acme.test",
		Username:       "asha",
		PasswordHash:   string(hash),
		Role:           employee.RoleEmployee,
		IsActive:       true,
		JoinDate:       time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, employees.Create(ctx, emp))

	svc := NewAuthService(employees, jwt.NewJWTService("test-secret", "15m"))
	return svc, emp
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a bearer token", func(t *testing.T) {
		svc, _ := newAuthFixture(t)

		resp, err := svc.Login(ctx, auth.LoginRequest{Username: "asha", Password: "s3cret-pass"})
		require.NoError(t, err)

		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.Greater(t, resp.ExpiresAt, time.Now().Unix())
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, _ := newAuthFixture(t)

		_, err := svc.Login(ctx, auth.LoginRequest{Username: "asha", Password: "wrong"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown username reads the same as a wrong password", func(t *testing.T) {
		svc, _ := newAuthFixture(t)

		_, err := svc.Login(ctx, auth.LoginRequest{Username: "nobody", Password: "s3cret-pass"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("inactive employee", func(t *testing.T) {
		svc, emp := newAuthFixture(t)
		emp.IsActive = false
		require.NoError(t, svc.EmployeeRepository.Update(ctx, emp))

		_, err := svc.Login(ctx, auth.LoginRequest{Username: "asha", Password: "s3cret-pass"})
		assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
	})
}

func TestMe(t *testing.T) {
	ctx := context.Background()
	svc, emp := newAuthFixture(t)

	resp, err := svc.Me(ctx, employee.Actor{ID: emp.ID, OrganizationID: emp.OrganizationID, Role: emp.Role})
	require.NoError(t, err)

	assert.Equal(t, emp.ID, resp.ID)
	assert.Equal(t, "asha", resp.Username)
}
