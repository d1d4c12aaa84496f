// Package memory holds in-memory repository implementations backing
// the service tests. They mirror the behavior of the PostgreSQL layer,
// including the unique (employee_id, date) constraint, so services can
// be exercised without a live database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/attendlyhq/attendly-backend-go/internal/domain/attendance"
	"github.com/attendlyhq/attendly-backend-go/internal/domain/employee"
	"github.com/attendlyhq/attendly-backend-go/internal/domain/leave"
	"github.com/attendlyhq/attendly-backend-go/internal/domain/organization"
)

// TxManager runs the function directly; the in-memory stores have no
// transactions to coordinate.
type TxManager struct{}

func (TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// OrganizationRepository

type OrganizationRepository struct {
	mu   sync.Mutex
	orgs map[string]organization.Organization
}

func NewOrganizationRepository() *OrganizationRepository {
	return &OrganizationRepository{orgs: make(map[string]organization.Organization)}
}

func (r *OrganizationRepository) Create(ctx context.Context, org *organization.Organization) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if org.ID == "" {
		org.ID = uuid.New().String()
	}
	org.CreatedAt = time.Now()
	org.UpdatedAt = org.CreatedAt
	r.orgs[org.ID] = *org
	return nil
}

func (r *OrganizationRepository) GetByID(ctx context.Context, id string) (*organization.Organization, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	org, ok := r.orgs[id]
	if !ok {
		return nil, organization.ErrOrganizationNotFound
	}
	return &org, nil
}

func (r *OrganizationRepository) Update(ctx context.Context, org *organization.Organization) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.orgs[org.ID]
	if !ok {
		return organization.ErrOrganizationNotFound
	}
	next := *org
	next.Holidays = stored.Holidays
	next.UpdatedAt = time.Now()
	r.orgs[next.ID] = next
	return nil
}

func (r *OrganizationRepository) AddHoliday(ctx context.Context, holiday *organization.Holiday) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	org, ok := r.orgs[holiday.OrganizationID]
	if !ok {
		return organization.ErrOrganizationNotFound
	}
	if holiday.ID == "" {
		holiday.ID = uuid.New().String()
	}
	org.Holidays = append(org.Holidays, *holiday)
	r.orgs[org.ID] = org
	return nil
}

// EmployeeRepository

type EmployeeRepository struct {
	mu        sync.Mutex
	employees map[string]employee.Employee
}

func NewEmployeeRepository() *EmployeeRepository {
	return &EmployeeRepository{employees: make(map[string]employee.Employee)}
}

func (r *EmployeeRepository) Create(ctx context.Context, emp *employee.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.employees {
		if existing.Username == emp.Username {
			return &pgconn.PgError{Code: "23505", ConstraintName: "employees_username_key"}
		}
		if existing.OrganizationID == emp.OrganizationID && existing.Email == emp.Email {
			return &pgconn.PgError{Code: "23505", ConstraintName: "employees_email_key"}
		}
	}
	if emp.ID == "" {
		emp.ID = uuid.New().String()
	}
	emp.CreatedAt = time.Now()
	emp.UpdatedAt = emp.CreatedAt
	r.employees[emp.ID] = *emp
	return nil
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id, organizationID string) (*employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	emp, ok := r.employees[id]
	if !ok || emp.OrganizationID != organizationID {
		return nil, employee.ErrEmployeeNotFound
	}
	return &emp, nil
}

func (r *EmployeeRepository) GetByUsername(ctx context.Context, username string) (*employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, emp := range r.employees {
		if emp.Username == username {
			e := emp
			return &e, nil
		}
	}
	return nil, employee.ErrEmployeeNotFound
}

func (r *EmployeeRepository) Update(ctx context.Context, emp *employee.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.employees[emp.ID]; !ok {
		return employee.ErrEmployeeNotFound
	}
	emp.UpdatedAt = time.Now()
	r.employees[emp.ID] = *emp
	return nil
}

func (r *EmployeeRepository) IncrementLeaveTaken(ctx context.Context, id string, days int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	emp, ok := r.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	emp.LeaveTaken += days
	r.employees[id] = emp
	return nil
}

func (r *EmployeeRepository) ListByOrganization(ctx context.Context, organizationID string) ([]employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []employee.Employee
	for _, emp := range r.employees {
		if emp.OrganizationID == organizationID {
			list = append(list, emp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *EmployeeRepository) ListIDsByReportingManager(ctx context.Context, managerID, organizationID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []string
	for _, emp := range r.employees {
		if emp.OrganizationID == organizationID &&
			emp.ReportingManagerID != nil && *emp.ReportingManagerID == managerID {
			ids = append(ids, emp.ID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// AttendanceRepository

type AttendanceRepository struct {
	mu      sync.Mutex
	records map[string]attendance.Attendance // keyed by id
}

func NewAttendanceRepository() *AttendanceRepository {
	return &AttendanceRepository{records: make(map[string]attendance.Attendance)}
}

func (r *AttendanceRepository) Create(ctx context.Context, att *attendance.Attendance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.records {
		if existing.EmployeeID == att.EmployeeID && dayKey(existing.Date) == dayKey(att.Date) {
			return &pgconn.PgError{Code: "23505", ConstraintName: "attendances_employee_id_date_key"}
		}
	}
	if att.ID == "" {
		att.ID = uuid.New().String()
	}
	att.CreatedAt = time.Now()
	att.UpdatedAt = att.CreatedAt
	r.records[att.ID] = *att
	return nil
}

func (r *AttendanceRepository) Upsert(ctx context.Context, att *attendance.Attendance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.records {
		if existing.EmployeeID == att.EmployeeID && dayKey(existing.Date) == dayKey(att.Date) {
			att.ID = existing.ID
			att.CreatedAt = existing.CreatedAt
			att.UpdatedAt = time.Now()
			r.records[att.ID] = *att
			return nil
		}
	}
	if att.ID == "" {
		att.ID = uuid.New().String()
	}
	att.CreatedAt = time.Now()
	att.UpdatedAt = att.CreatedAt
	r.records[att.ID] = *att
	return nil
}

func (r *AttendanceRepository) GetByID(ctx context.Context, id, organizationID string) (*attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	att, ok := r.records[id]
	if !ok || att.OrganizationID != organizationID {
		return nil, attendance.ErrAttendanceNotFound
	}
	return &att, nil
}

func (r *AttendanceRepository) GetByIDForUpdate(ctx context.Context, id, organizationID string) (*attendance.Attendance, error) {
	return r.GetByID(ctx, id, organizationID)
}

func (r *AttendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, att := range r.records {
		if att.EmployeeID == employeeID && dayKey(att.Date) == dayKey(date) {
			a := att
			return &a, nil
		}
	}
	return nil, nil
}

func (r *AttendanceRepository) GetByEmployeeAndDateForUpdate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	return r.GetByEmployeeAndDate(ctx, employeeID, date)
}

func (r *AttendanceRepository) Update(ctx context.Context, att *attendance.Attendance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[att.ID]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	att.UpdatedAt = time.Now()
	r.records[att.ID] = *att
	return nil
}

func (r *AttendanceRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []attendance.Attendance
	for _, att := range r.records {
		if att.EmployeeID != employeeID {
			continue
		}
		key := dayKey(att.Date)
		if key >= dayKey(from) && key <= dayKey(to) {
			list = append(list, att)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Date.Before(list[j].Date) })
	return list, nil
}

func (r *AttendanceRepository) ListByRegularizeState(ctx context.Context, organizationID string, state attendance.RegularizeState, employeeIDs []string, limit, offset int) ([]attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []attendance.Attendance
	for _, att := range r.records {
		if att.OrganizationID != organizationID || att.RegularizeRequest != state {
			continue
		}
		if employeeIDs != nil && !containsID(employeeIDs, att.EmployeeID) {
			continue
		}
		list = append(list, att)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Date.Before(list[j].Date) })
	return paginate(list, limit, offset), nil
}

func (r *AttendanceRepository) CountByRegularizeState(ctx context.Context, organizationID string, state attendance.RegularizeState, employeeIDs []string) (int, error) {
	list, err := r.ListByRegularizeState(ctx, organizationID, state, employeeIDs, 0, 0)
	if err != nil {
		return 0, err
	}
	return len(list), nil
}

// LeaveRepository

type LeaveRepository struct {
	mu       sync.Mutex
	requests map[string]leave.LeaveRequest
}

func NewLeaveRepository() *LeaveRepository {
	return &LeaveRepository{requests: make(map[string]leave.LeaveRequest)}
}

func (r *LeaveRepository) Create(ctx context.Context, req *leave.LeaveRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	req.CreatedAt = time.Now()
	req.UpdatedAt = req.CreatedAt
	r.requests[req.ID] = *req
	return nil
}

func (r *LeaveRepository) GetByID(ctx context.Context, id, organizationID string) (*leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok || req.OrganizationID != organizationID {
		return nil, leave.ErrLeaveRequestNotFound
	}
	return &req, nil
}

func (r *LeaveRepository) GetByIDForUpdate(ctx context.Context, id, organizationID string) (*leave.LeaveRequest, error) {
	return r.GetByID(ctx, id, organizationID)
}

func (r *LeaveRepository) Update(ctx context.Context, req *leave.LeaveRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.requests[req.ID]; !ok {
		return leave.ErrLeaveRequestNotFound
	}
	req.UpdatedAt = time.Now()
	r.requests[req.ID] = *req
	return nil
}

func (r *LeaveRepository) HasOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, req := range r.requests {
		if req.EmployeeID != employeeID {
			continue
		}
		if req.Status != leave.StatusPending && req.Status != leave.StatusApproved {
			continue
		}
		if dayKey(req.StartDate) <= dayKey(end) && dayKey(req.EndDate) >= dayKey(start) {
			return true, nil
		}
	}
	return false, nil
}

func (r *LeaveRepository) CoversDate(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	return r.HasOverlapping(ctx, employeeID, date, date)
}

func (r *LeaveRepository) List(ctx context.Context, organizationID string, filter leave.ListFilter) ([]leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []leave.LeaveRequest
	for _, req := range r.requests {
		if req.OrganizationID != organizationID {
			continue
		}
		if filter.EmployeeID != "" && req.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.EmployeeIDs != nil && !containsID(filter.EmployeeIDs, req.EmployeeID) {
			continue
		}
		if filter.Status != "" && req.Status != filter.Status {
			continue
		}
		list = append(list, req)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return paginate(list, filter.Limit, filter.Offset), nil
}

func (r *LeaveRepository) CountByStatus(ctx context.Context, organizationID string, status leave.Status, employeeIDs []string) (int, error) {
	list, err := r.List(ctx, organizationID, leave.ListFilter{Status: status, EmployeeIDs: employeeIDs})
	if err != nil {
		return 0, err
	}
	return len(list), nil
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(list) {
			return nil
		}
		list = list[offset:]
	}
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
