package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/attendlyhq/attendly-backend-go/internal/domain/attendance"
	"github.com/attendlyhq/attendly-backend-go/internal/domain/employee"
	"github.com/attendlyhq/attendly-backend-go/internal/domain/organization"
	"github.com/attendlyhq/attendly-backend-go/internal/pkg/geo"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	organization.OrganizationRepository
	now func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	organizationRepo organization.OrganizationRepository,
) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		AttendanceRepository:   attendanceRepo,
		EmployeeRepository:     employeeRepo,
		OrganizationRepository: organizationRepo,
		now:                    time.Now,
	}
}

// WithNow overrides the clock. Tests use it to pin "today".
func (s *AttendanceServiceImpl) WithNow(now func() time.Time) *AttendanceServiceImpl {
	s.now = now
	return s
}

func (s *AttendanceServiceImpl) loadActorContext(ctx context.Context, actor employee.Actor) (*employee.Employee, *organization.Organization, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, actor.ID, actor.OrganizationID)
	if err != nil {
		return nil, nil, err
	}
	if !emp.IsActive {
		return nil, nil, employee.ErrEmployeeInactive
	}

	org, err := s.OrganizationRepository.GetByID(ctx, actor.OrganizationID)
	if err != nil {
		return nil, nil, err
	}

	return emp, org, nil
}

func checkGeofence(org *organization.Organization, lat, lon float64) error {
	if org.Latitude == nil || org.Longitude == nil {
		return organization.ErrLocationNotSet
	}
	if !geo.WithinRadius(*org.Latitude, *org.Longitude, lat, lon, geo.DefaultRadiusMeters) {
		return attendance.ErrOutsideGeofence
	}
	return nil
}

// CheckIn records the employee's arrival for today. The unique
// (employee_id, date) index backs the duplicate check so two
// concurrent check-ins cannot both create a row.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, actor employee.Actor, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, org, err := s.loadActorContext(ctx, actor)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if err := checkGeofence(org, req.Latitude, req.Longitude); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.now()
	today := DayOf(now, org.Location())

	existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, emp.ID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if existing != nil {
		if existing.CheckInTime != nil {
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
		}
		// Placeholder row without a check-in, upgrade it in place.
		existing.CheckInTime = &now
		existing.CheckInLatitude = &req.Latitude
		existing.CheckInLongitude = &req.Longitude
		existing.Status = attendance.StatusCheckedIn
		if err := s.AttendanceRepository.Update(ctx, existing); err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to check in: %w", err)
		}
		return toAttendanceResponse(existing, org.Location()), nil
	}

	att := &attendance.Attendance{
		OrganizationID:    org.ID,
		EmployeeID:        emp.ID,
		Date:              today,
		CheckInTime:       &now,
		CheckInLatitude:   &req.Latitude,
		CheckInLongitude:  &req.Longitude,
		Status:            attendance.StatusCheckedIn,
		RegularizeRequest: attendance.RegularizeNone,
	}

	if err := s.AttendanceRepository.Create(ctx, att); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check in: %w", err)
	}

	return toAttendanceResponse(att, org.Location()), nil
}

// CheckOut closes today's open check-in, derives the worked hours and
// settles the day's status: present at or above the employee's work
// duration, half_day below it.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, actor employee.Actor, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, org, err := s.loadActorContext(ctx, actor)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if err := checkGeofence(org, req.Latitude, req.Longitude); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.now()
	today := DayOf(now, org.Location())

	existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, emp.ID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if existing == nil || existing.CheckInTime == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if existing.CheckOutTime != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	duration := now.Sub(*existing.CheckInTime).Hours()

	existing.CheckOutTime = &now
	existing.CheckOutLatitude = &req.Latitude
	existing.CheckOutLongitude = &req.Longitude
	existing.WorkDurationHours = &duration
	if duration < emp.WorkDurationHours {
		existing.Status = attendance.StatusHalfDay
	} else {
		existing.Status = attendance.StatusPresent
	}

	if err := s.AttendanceRepository.Update(ctx, existing); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check out: %w", err)
	}

	return toAttendanceResponse(existing, org.Location()), nil
}

// MonthlyAttendance resolves every calendar day of the month for the
// employee. Employees can only read their own month; managers and
// super admins can read their reports'.
func (s *AttendanceServiceImpl) MonthlyAttendance(ctx context.Context, actor employee.Actor, employeeID string, year int, month time.Month) (attendance.MonthlyAttendanceResponse, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID, actor.OrganizationID)
	if err != nil {
		return attendance.MonthlyAttendanceResponse{}, err
	}
	if actor.ID != emp.ID && !actor.CanDecideFor(*emp) {
		return attendance.MonthlyAttendanceResponse{}, attendance.ErrNotAuthorized
	}

	org, err := s.OrganizationRepository.GetByID(ctx, actor.OrganizationID)
	if err != nil {
		return attendance.MonthlyAttendanceResponse{}, err
	}

	loc := org.Location()
	from := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	to := from.AddDate(0, 1, -1)

	records, err := s.AttendanceRepository.ListByEmployeeAndRange(ctx, emp.ID, from, to)
	if err != nil {
		return attendance.MonthlyAttendanceResponse{}, err
	}

	days := ResolveMonth(org, emp, records, year, month, s.now())

	return attendance.MonthlyAttendanceResponse{
		EmployeeID: emp.ID,
		Year:       year,
		Month:      int(month),
		Days:       days,
		Summary:    Summarize(days),
	}, nil
}

func toAttendanceResponse(att *attendance.Attendance, loc *time.Location) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:                   att.ID,
		EmployeeID:           att.EmployeeID,
		Date:                 att.Date.In(loc).Format("2006-01-02"),
		Status:               att.Status,
		CheckInTime:          formatTimePtr(att.CheckInTime, loc),
		CheckOutTime:         formatTimePtr(att.CheckOutTime, loc),
		WorkDurationHours:    att.WorkDurationHours,
		IsRegularized:        att.IsRegularized,
		RegularizeRequest:    att.RegularizeRequest,
		RegularizationReason: att.RegularizationReason,
		RequestedCheckIn:     formatTimePtr(att.RequestedCheckIn, loc),
		RequestedCheckOut:    formatTimePtr(att.RequestedCheckOut, loc),
	}
}
