package employee

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/attendlyhq/attendly-backend-go/internal/domain/employee"
	"github.com/attendlyhq/attendly-backend-go/internal/domain/organization"
	"github.com/attendlyhq/attendly-backend-go/internal/pkg/validator"
)

type EmployeeServiceImpl struct {
	employee.EmployeeRepository
	organization.OrganizationRepository
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	organizationRepo organization.OrganizationRepository,
) *EmployeeServiceImpl {
	return &EmployeeServiceImpl{
		EmployeeRepository:     employeeRepo,
		OrganizationRepository: organizationRepo,
	}
}

// workDurationHours derives the expected daily hours from two "HH:MM"
// clock strings.
func workDurationHours(checkIn, checkOut string) float64 {
	in, okIn := validator.IsValidClock(checkIn)
	out, okOut := validator.IsValidClock(checkOut)
	if !okIn || !okOut {
		return 0
	}
	d := out.Sub(in).Hours()
	if d < 0 {
		d += 24 // overnight shift
	}
	return d
}

// Register creates an employee under the actor's organization. Only
// super admins may register employees. Check-in/out times fall back to
// the organization defaults and the expected work duration is derived
// from them.
func (s *EmployeeServiceImpl) Register(ctx context.Context, actor employee.Actor, req employee.RegisterEmployeeRequest) (employee.EmployeeResponse, error) {
	if actor.Role != employee.RoleSuperAdmin {
		return employee.EmployeeResponse{}, employee.ErrNotAuthorized
	}
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	org, err := s.OrganizationRepository.GetByID(ctx, actor.OrganizationID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if !org.IsActive {
		return employee.EmployeeResponse{}, organization.ErrOrganizationInactive
	}

	if req.ReportingManagerID != nil {
		manager, err := s.EmployeeRepository.GetByID(ctx, *req.ReportingManagerID, actor.OrganizationID)
		if err != nil {
			return employee.EmployeeResponse{}, err
		}
		if manager.Role == employee.RoleEmployee {
			return employee.EmployeeResponse{}, employee.ErrInvalidRole
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	checkIn := req.CheckInTime
	if checkIn == "" {
		checkIn = org.CheckInTime
	}
	checkOut := req.CheckOutTime
	if checkOut == "" {
		checkOut = org.CheckOutTime
	}

	joinDate, _ := validator.IsValidDate(req.JoinDate)

	emp := &employee.Employee{
		OrganizationID:     org.ID,
		Name:               req.Name,
		Email:              req.Email,
		Username:           req.Username,
		PasswordHash:       string(hash),
		Role:               employee.Role(req.Role),
		IsActive:           true,
		Salary:             req.Salary,
		JoinDate:           joinDate,
		CheckInTime:        checkIn,
		CheckOutTime:       checkOut,
		WorkDurationHours:  workDurationHours(checkIn, checkOut),
		AllotedLeave:       req.AllotedLeave,
		ReportingManagerID: req.ReportingManagerID,
	}

	if err := s.EmployeeRepository.Create(ctx, emp); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if pgErr.ConstraintName == "employees_email_key" {
				return employee.EmployeeResponse{}, employee.ErrEmailExists
			}
			return employee.EmployeeResponse{}, employee.ErrUsernameExists
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to register employee: %w", err)
	}

	return ToEmployeeResponse(emp), nil
}

// Get returns one employee. Employees can read themselves; managers
// their reports; super admins anyone in the organization.
func (s *EmployeeServiceImpl) Get(ctx context.Context, actor employee.Actor, id string) (employee.EmployeeResponse, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, id, actor.OrganizationID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if actor.ID != emp.ID && !actor.CanDecideFor(*emp) {
		return employee.EmployeeResponse{}, employee.ErrNotAuthorized
	}
	return ToEmployeeResponse(emp), nil
}

// Update applies the non-nil fields of the request. Super admin only.
func (s *EmployeeServiceImpl) Update(ctx context.Context, actor employee.Actor, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if actor.Role != employee.RoleSuperAdmin {
		return employee.EmployeeResponse{}, employee.ErrNotAuthorized
	}
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.ID, actor.OrganizationID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.Name != nil {
		emp.Name = *req.Name
	}
	if req.Salary != nil {
		emp.Salary = *req.Salary
	}
	if req.IsActive != nil {
		emp.IsActive = *req.IsActive
	}
	if req.AllotedLeave != nil {
		emp.AllotedLeave = *req.AllotedLeave
	}
	if req.ReportingManagerID != nil {
		manager, err := s.EmployeeRepository.GetByID(ctx, *req.ReportingManagerID, actor.OrganizationID)
		if err != nil {
			return employee.EmployeeResponse{}, err
		}
		if manager.Role == employee.RoleEmployee {
			return employee.EmployeeResponse{}, employee.ErrInvalidRole
		}
		emp.ReportingManagerID = req.ReportingManagerID
	}
	if req.CheckInTime != nil {
		emp.CheckInTime = *req.CheckInTime
	}
	if req.CheckOutTime != nil {
		emp.CheckOutTime = *req.CheckOutTime
	}
	if req.CheckInTime != nil || req.CheckOutTime != nil {
		emp.WorkDurationHours = workDurationHours(emp.CheckInTime, emp.CheckOutTime)
	}

	if err := s.EmployeeRepository.Update(ctx, emp); err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}

	return ToEmployeeResponse(emp), nil
}

// List returns the organization's employees: all of them for super
// admins, direct reports for reporting managers.
func (s *EmployeeServiceImpl) List(ctx context.Context, actor employee.Actor) ([]employee.EmployeeResponse, error) {
	if actor.Role == employee.RoleEmployee {
		return nil, employee.ErrNotAuthorized
	}

	employees, err := s.EmployeeRepository.ListByOrganization(ctx, actor.OrganizationID)
	if err != nil {
		return nil, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for i := range employees {
		emp := &employees[i]
		if actor.Role == employee.RoleReportingManager &&
			(emp.ReportingManagerID == nil || *emp.ReportingManagerID != actor.ID) {
			continue
		}
		responses = append(responses, ToEmployeeResponse(emp))
	}
	return responses, nil
}

func ToEmployeeResponse(emp *employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:                   emp.ID,
		OrganizationID:       emp.OrganizationID,
		Name:                 emp.Name,
		Email:                emp.Email,
		Username:             emp.Username,
		Role:                 string(emp.Role),
		IsActive:             emp.IsActive,
		Salary:               emp.Salary,
		JoinDate:             emp.JoinDate.Format("2006-01-02"),
		CheckInTime:          emp.CheckInTime,
		CheckOutTime:         emp.CheckOutTime,
		WorkDurationHours:    emp.WorkDurationHours,
		AllotedLeave:         emp.AllotedLeave,
		LeaveTaken:           emp.LeaveTaken,
		ReportingManagerID:   emp.ReportingManagerID,
		ReportingManagerName: emp.ReportingManagerName,
		CreatedAt:            emp.CreatedAt.Format(time.RFC3339),
	}
}
