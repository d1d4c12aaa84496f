package leave

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

type LeaveServiceImpl struct {
	leave.LeaveRepository
	attendance.AttendanceRepository
	employee.EmployeeRepository
	organization.OrganizationRepository
	tx  database.TxManager
	now func() time.Time
}

func NewLeaveService(
	leaveRepo leave.LeaveRepository,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	organizationRepo organization.OrganizationRepository,
	tx database.TxManager,
) *LeaveServiceImpl {
	return &LeaveServiceImpl{
		LeaveRepository:        leaveRepo,
		AttendanceRepository:   attendanceRepo,
		EmployeeRepository:     employeeRepo,
		OrganizationRepository: organizationRepo,
		tx:                     tx,
		now:                    time.Now,
	}
}

func (s *LeaveServiceImpl) WithNow(now func() time.Time) *LeaveServiceImpl {
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

// Apply files a leave request for the requesting employee.
func (s *LeaveServiceImpl) Apply(ctx context.Context, actor employee.Actor, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, actor.ID, actor.OrganizationID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if !emp.IsActive {
		return leave.LeaveResponse{}, employee.ErrEmployeeInactive
	}

	org, err := s.OrganizationRepository.GetByID(ctx, actor.OrganizationID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	loc := org.Location()
	startParsed, _ := validator.IsValidDate(req.StartDate)
	endParsed, _ := validator.IsValidDate(req.EndDate)
	start := time.Date(startParsed.Year(), startParsed.Month(), startParsed.Day(), 0, 0, 0, 0, loc)
	end := time.Date(endParsed.Year(), endParsed.Month(), endParsed.Day(), 0, 0, 0, 0, loc)

	if start.Before(attendancesvc.DayOf(emp.JoinDate, loc)) {
		return leave.LeaveResponse{}, leave.ErrLeaveBeforeJoinDate
	}

	overlapping, err := s.LeaveRepository.HasOverlapping(ctx, emp.ID, start, end)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if overlapping {
		return leave.LeaveResponse{}, leave.ErrOverlappingLeave
	}

	records, err := s.AttendanceRepository.ListByEmployeeAndRange(ctx, emp.ID, start, end)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	for _, rec := range records {
		if rec.IsRegularized || rec.RegularizeRequest == attendance.RegularizePending {
			return leave.LeaveResponse{}, leave.ErrRangeRegularized
		}
	}

	lr := &leave.LeaveRequest{
		OrganizationID: org.ID,
		EmployeeID:     emp.ID,
		Type:           leave.Type(req.Type),
		StartDate:      start,
		EndDate:        end,
		Reason:         req.Reason,
		Status:         leave.StatusPending,
		EmployeeName:   emp.Name,
	}
	if err := s.LeaveRepository.Create(ctx, lr); err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return toLeaveResponse(lr, loc), nil
}

// Decide resolves a pending leave request. The whole cascade runs in
// one transaction: the request update, one attendance upsert per day
// in the range, and the leave counter increment on approval. Rejected
// requests still mark every day, as paid_leave.
func (s *LeaveServiceImpl) Decide(ctx context.Context, actor employee.Actor, leaveID string, req leave.DecideLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}
	approved := req.Decision == "approved"

	org, err := s.OrganizationRepository.GetByID(ctx, actor.OrganizationID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	loc := org.Location()

	var decided *leave.LeaveRequest
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		lr, err := s.LeaveRepository.GetByIDForUpdate(ctx, leaveID, actor.OrganizationID)
		if err != nil {
			return err
		}

		target, err := s.EmployeeRepository.GetByID(ctx, lr.EmployeeID, actor.OrganizationID)
		if err != nil {
			return err
		}
		if !actor.CanDecideFor(*target) {
			return leave.ErrNotAuthorized
		}

		if err := lr.Decide(approved, actor.ID, s.now()); err != nil {
			return err
		}
		if err := s.LeaveRepository.Update(ctx, lr); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}

		for day := lr.StartDate; !day.After(lr.EndDate); day = day.AddDate(0, 0, 1) {
			att := &attendance.Attendance{
				OrganizationID:    lr.OrganizationID,
				EmployeeID:        lr.EmployeeID,
				Date:              day,
				RegularizeRequest: attendance.RegularizeNone,
			}
			att.MarkLeave(approved)
			if err := s.AttendanceRepository.Upsert(ctx, att); err != nil {
				return fmt.Errorf("failed to mark leave day: %w", err)
			}
		}

		if approved {
			if err := s.EmployeeRepository.IncrementLeaveTaken(ctx, lr.EmployeeID, lr.Days()); err != nil {
				return fmt.Errorf("failed to increment leave taken: %w", err)
			}
		}

		decided = lr
		return nil
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	return toLeaveResponse(decided, loc), nil
}

// List returns leave requests visible to the actor, optionally
// filtered by status. Pages of limit rows, newest first.
func (s *LeaveServiceImpl) List(ctx context.Context, actor employee.Actor, status leave.Status, limit, offset int) ([]leave.LeaveResponse, error) {
	org, err := s.OrganizationRepository.GetByID(ctx, actor.OrganizationID)
	if err != nil {
		return nil, err
	}

	filter := leave.ListFilter{Status: status, Limit: clampLimit(limit), Offset: max(offset, 0)}
	switch actor.Role {
	case employee.RoleSuperAdmin:
	case employee.RoleReportingManager:
		ids, err := s.EmployeeRepository.ListIDsByReportingManager(ctx, actor.ID, actor.OrganizationID)
		if err != nil {
			return nil, err
		}
		if ids == nil {
			ids = []string{}
		}
		filter.EmployeeIDs = ids
	default:
		filter.EmployeeID = actor.ID
	}

	requests, err := s.LeaveRepository.List(ctx, actor.OrganizationID, filter)
	if err != nil {
		return nil, err
	}

	loc := org.Location()
	responses := make([]leave.LeaveResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, toLeaveResponse(&requests[i], loc))
	}
	return responses, nil
}

// RequestSummary counts the open approval work in the actor's scope:
// pending leave requests and pending regularizations.
func (s *LeaveServiceImpl) RequestSummary(ctx context.Context, actor employee.Actor) (leave.RequestSummary, error) {
	var scope []string
	switch actor.Role {
	case employee.RoleSuperAdmin:
		scope = nil
	case employee.RoleReportingManager:
		ids, err := s.EmployeeRepository.ListIDsByReportingManager(ctx, actor.ID, actor.OrganizationID)
		if err != nil {
			return leave.RequestSummary{}, err
		}
		if ids == nil {
			ids = []string{}
		}
		scope = ids
	default:
		scope = []string{actor.ID}
	}

	var summary leave.RequestSummary
	leaveCounts := []struct {
		status leave.Status
		dst    *int
	}{
		{leave.StatusPending, &summary.PendingLeaves},
		{leave.StatusApproved, &summary.ApprovedLeaves},
		{leave.StatusRejected, &summary.RejectedLeaves},
	}
	for _, c := range leaveCounts {
		n, err := s.LeaveRepository.CountByStatus(ctx, actor.OrganizationID, c.status, scope)
		if err != nil {
			return leave.RequestSummary{}, err
		}
		*c.dst = n
	}

	regCounts := []struct {
		state attendance.RegularizeState
		dst   *int
	}{
		{attendance.RegularizePending, &summary.PendingRegularizations},
		{attendance.RegularizeApproved, &summary.ApprovedRegularizations},
		{attendance.RegularizeRejected, &summary.RejectedRegularizations},
	}
	for _, c := range regCounts {
		n, err := s.AttendanceRepository.CountByRegularizeState(ctx, actor.OrganizationID, c.state, scope)
		if err != nil {
			return leave.RequestSummary{}, err
		}
		*c.dst = n
	}

	return summary, nil
}

func toLeaveResponse(lr *leave.LeaveRequest, loc *time.Location) leave.LeaveResponse {
	resp := leave.LeaveResponse{
		ID:           lr.ID,
		EmployeeID:   lr.EmployeeID,
		EmployeeName: lr.EmployeeName,
		Type:         lr.Type,
		StartDate:    lr.StartDate.In(loc).Format("2006-01-02"),
		EndDate:      lr.EndDate.In(loc).Format("2006-01-02"),
		Days:         lr.Days(),
		Reason:       lr.Reason,
		Status:       lr.Status,
		DecidedBy:    lr.DecidedBy,
		CreatedAt:    lr.CreatedAt.In(loc).Format(time.RFC3339),
	}
	if lr.DecidedAt != nil {
		s := lr.DecidedAt.In(loc).Format(time.RFC3339)
		resp.DecidedAt = &s
	}
	return resp
}
