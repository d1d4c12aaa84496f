package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/attendlyhq/attendly-backend-go/internal/domain/auth"
	"github.com/attendlyhq/attendly-backend-go/internal/domain/employee"
	"github.com/attendlyhq/attendly-backend-go/internal/pkg/jwt"
	employeesvc "github.com/attendlyhq/attendly-backend-go/internal/service/employee"
)

type AuthServiceImpl struct {
	employee.EmployeeRepository
	jwtService jwt.Service
}

func NewAuthService(employeeRepo employee.EmployeeRepository, jwtService jwt.Service) *AuthServiceImpl {
	return &AuthServiceImpl{
		EmployeeRepository: employeeRepo,
		jwtService:         jwtService,
	}
}

// Login verifies the credentials and issues an access token. Missing
// users and bad passwords collapse into the same error so usernames
// cannot be probed.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, err
	}
	if !emp.IsActive {
		return auth.LoginResponse{}, employee.ErrEmployeeInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(emp.ID, emp.OrganizationID, emp.Role)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	return auth.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	}, nil
}

// Me returns the profile of the authenticated employee.
func (s *AuthServiceImpl) Me(ctx context.Context, actor employee.Actor) (employee.EmployeeResponse, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, actor.ID, actor.OrganizationID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employeesvc.ToEmployeeResponse(emp), nil
}
