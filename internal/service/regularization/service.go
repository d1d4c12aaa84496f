package regularization

import (
	"context"
	"fmt"
	"time"

	"github.com/attendlyhq/attendly-backend-go/internal/domain/attendance"
	"github.com/attendlyhq/attendly-backend-go/internal/domain/employee"
	"github.com/attendlyhq/attendly-backend-go/internal/domain/leave"
	"github.com/attendlyhq/attendly-backend-go/internal/domain/organization"
	"github.com/attendlyhq/attendly-backend-go/internal/pkg/database"
	"github.com/attendlyhq/attendly-backend-go/internal/pkg/validator"
	attendancesvc "github.com/attendlyhq/attendly-backend-go/internal/service/attendance"
)

type RegularizationServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	organization.OrganizationRepository
	leave.LeaveRepository
	tx  database.TxManager
	now func() time.Time
}

func NewRegularizationService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	organizationRepo organization.OrganizationRepository,
	leaveRepo leave.LeaveRepository,
	tx database.TxManager,
) *RegularizationServiceImpl {
	return &RegularizationServiceImpl{
		AttendanceRepository:   attendanceRepo,
		EmployeeRepository:     employeeRepo,
		OrganizationRepository: organizationRepo,
		LeaveRepository:        leaveRepo,
		tx:                     tx,
		now:                    time.Now,
	}
}

func (s *RegularizationServiceImpl) WithNow(now func() time.Time) *RegularizationServiceImpl {
	s.now = now
	return s
}

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultPageSize
	}
	if limit > maxPageSize {
		return maxPageSize
	}
	return limit
}

// Apply opens a regularization request for a past working day. When no
// attendance row exists for the day yet, one is created directly in
// the pending state.
func (s *RegularizationServiceImpl) Apply(ctx context.Context, actor employee.Actor, req attendance.RegularizeApplyRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, actor.ID, actor.OrganizationID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !emp.IsActive {
		return attendance.AttendanceResponse{}, employee.ErrEmployeeInactive
	}

	org, err := s.OrganizationRepository.GetByID(ctx, actor.OrganizationID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	loc := org.Location()
	parsed, _ := validator.IsValidDate(req.Date)
	day := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, loc)
	today := attendancesvc.DayOf(s.now(), loc)

	if day.After(today) {
		return attendance.AttendanceResponse{}, attendance.ErrFutureDate
	}
	if day.Before(attendancesvc.DayOf(emp.JoinDate, loc)) {
		return attendance.AttendanceResponse{}, attendance.ErrBeforeJoinDate
	}

	covered, err := s.LeaveRepository.CoversDate(ctx, emp.ID, day)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if covered {
		return attendance.AttendanceResponse{}, attendance.ErrDateCoveredByLeave
	}

	checkIn, _ := validator.IsValidDateTime(req.CheckInTime)
	checkOut, _ := validator.IsValidDateTime(req.CheckOutTime)

	existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, emp.ID, day)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if existing != nil {
		if err := existing.RequestRegularization(checkIn, checkOut, req.Reason); err != nil {
			return attendance.AttendanceResponse{}, err
		}
		if err := s.AttendanceRepository.Update(ctx, existing); err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to apply regularization: %w", err)
		}
		return toResponse(existing, loc), nil
	}

	att := &attendance.Attendance{
		OrganizationID:       org.ID,
		EmployeeID:           emp.ID,
		Date:                 day,
		Status:               attendance.StatusPendingRegularize,
		RegularizeRequest:    attendance.RegularizePending,
		RegularizationReason: &req.Reason,
		RequestedCheckIn:     &checkIn,
		RequestedCheckOut:    &checkOut,
	}
	if err := s.AttendanceRepository.Create(ctx, att); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to apply regularization: %w", err)
	}

	return toResponse(att, loc), nil
}

// Decide resolves a pending regularization request. The attendance row
// is read under a row lock inside a transaction so two deciders cannot
// both resolve it.
func (s *RegularizationServiceImpl) Decide(ctx context.Context, actor employee.Actor, attendanceID string, req attendance.RegularizeDecisionRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	org, err := s.OrganizationRepository.GetByID(ctx, actor.OrganizationID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var decided *attendance.Attendance
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		att, err := s.AttendanceRepository.GetByIDForUpdate(ctx, attendanceID, actor.OrganizationID)
		if err != nil {
			return err
		}

		target, err := s.EmployeeRepository.GetByID(ctx, att.EmployeeID, actor.OrganizationID)
		if err != nil {
			return err
		}
		if !actor.CanDecideFor(*target) {
			return attendance.ErrNotAuthorized
		}

		if req.Decision == "approved" {
			err = att.ApproveRegularization(actor.ID)
		} else {
			err = att.RejectRegularization(actor.ID)
		}
		if err != nil {
			return err
		}

		if err := s.AttendanceRepository.Update(ctx, att); err != nil {
			return fmt.Errorf("failed to decide regularization: %w", err)
		}
		decided = att
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return toResponse(decided, org.Location()), nil
}

// ListPending lists open regularization requests visible to the actor:
// the whole organization for super admins, direct reports for
// reporting managers, own records otherwise. Pages of limit rows.
func (s *RegularizationServiceImpl) ListPending(ctx context.Context, actor employee.Actor, limit, offset int) ([]attendance.AttendanceResponse, error) {
	org, err := s.OrganizationRepository.GetByID(ctx, actor.OrganizationID)
	if err != nil {
		return nil, err
	}

	scope, err := s.scopeIDs(ctx, actor)
	if err != nil {
		return nil, err
	}

	records, err := s.AttendanceRepository.ListByRegularizeState(ctx, actor.OrganizationID, attendance.RegularizePending, scope, clampLimit(limit), max(offset, 0))
	if err != nil {
		return nil, err
	}

	loc := org.Location()
	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for i := range records {
		responses = append(responses, toResponse(&records[i], loc))
	}
	return responses, nil
}

// scopeIDs returns the employee IDs the actor may see, nil meaning no
// restriction.
func (s *RegularizationServiceImpl) scopeIDs(ctx context.Context, actor employee.Actor) ([]string, error) {
	switch actor.Role {
	case employee.RoleSuperAdmin:
		return nil, nil
	case employee.RoleReportingManager:
		ids, err := s.EmployeeRepository.ListIDsByReportingManager(ctx, actor.ID, actor.OrganizationID)
		if err != nil {
			return nil, err
		}
		if ids == nil {
			ids = []string{}
		}
		return ids, nil
	default:
		return []string{actor.ID}, nil
	}
}

func toResponse(att *attendance.Attendance, loc *time.Location) attendance.AttendanceResponse {
	format := func(t *time.Time) *string {
		if t == nil {
			return nil
		}
		s := t.In(loc).Format(time.RFC3339)
		return &s
	}
	return attendance.AttendanceResponse{
		ID:                   att.ID,
		EmployeeID:           att.EmployeeID,
		Date:                 att.Date.In(loc).Format("2006-01-02"),
		Status:               att.Status,
		CheckInTime:          format(att.CheckInTime),
		CheckOutTime:         format(att.CheckOutTime),
		WorkDurationHours:    att.WorkDurationHours,
		IsRegularized:        att.IsRegularized,
		RegularizeRequest:    att.RegularizeRequest,
		RegularizationReason: att.RegularizationReason,
		RequestedCheckIn:     format(att.RequestedCheckIn),
		RequestedCheckOut:    format(att.RequestedCheckOut),
	}
}
