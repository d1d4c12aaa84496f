package payroll

import (
	"context"
	"time"

	"github.com/attendlyhq/attendly-backend-go/internal/domain/attendance"
	"github.com/attendlyhq/attendly-backend-go/internal/domain/employee"
	"github.com/attendlyhq/attendly-backend-go/internal/domain/organization"
	attendancesvc "github.com/attendlyhq/attendly-backend-go/internal/service/attendance"
)

// SalaryResponse embeds the breakdown with the employee it was
// computed for.
type SalaryResponse struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Breakdown
}

type PayrollServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	organization.OrganizationRepository
	now func() time.Time
}

func NewPayrollService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	organizationRepo organization.OrganizationRepository,
) *PayrollServiceImpl {
	return &PayrollServiceImpl{
		AttendanceRepository:   attendanceRepo,
		EmployeeRepository:     employeeRepo,
		OrganizationRepository: organizationRepo,
		now:                    time.Now,
	}
}

func (s *PayrollServiceImpl) WithNow(now func() time.Time) *PayrollServiceImpl {
	s.now = now
	return s
}

// CalculateMonthly resolves the employee's month and derives the
// salary for it. Employees may compute their own; managers and super
// admins also their reports'.
func (s *PayrollServiceImpl) CalculateMonthly(ctx context.Context, actor employee.Actor, employeeID string, year int, month time.Month) (SalaryResponse, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID, actor.OrganizationID)
	if err != nil {
		return SalaryResponse{}, err
	}
	if actor.ID != emp.ID && !actor.CanDecideFor(*emp) {
		return SalaryResponse{}, attendance.ErrNotAuthorized
	}

	org, err := s.OrganizationRepository.GetByID(ctx, actor.OrganizationID)
	if err != nil {
		return SalaryResponse{}, err
	}

	loc := org.Location()
	from := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	to := from.AddDate(0, 1, -1)

	records, err := s.AttendanceRepository.ListByEmployeeAndRange(ctx, emp.ID, from, to)
	if err != nil {
		return SalaryResponse{}, err
	}

	days := attendancesvc.ResolveMonth(org, emp, records, year, month, s.now())
	weekOffConfigured := org.WeeklyOff != nil && *org.WeeklyOff != ""

	return SalaryResponse{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		Breakdown:    ComputeMonthly(days, emp.Salary, year, month, weekOffConfigured),
	}, nil
}
