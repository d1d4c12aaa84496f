package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	Create(ctx context.Context, att *Attendance) error
	GetByID(ctx context.Context, id, organizationID string) (*Attendance, error)
	// GetByIDForUpdate locks the row for the duration of the enclosing
	// transaction.
	GetByIDForUpdate(ctx context.Context, id, organizationID string) (*Attendance, error)
	// GetByEmployeeAndDate returns nil, nil when no record exists for
	// the day.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)
	GetByEmployeeAndDateForUpdate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)
	Update(ctx context.Context, att *Attendance) error
	// Upsert inserts the record or, if a row already exists for
	// (employee_id, date), overwrites it. Used by the leave decision
	// cascade.
	Upsert(ctx context.Context, att *Attendance) error
	ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error)
	// ListByRegularizeState lists records in the given regularization
	// state, optionally restricted to the given employee IDs. A nil
	// employeeIDs lists across the whole organization; limit 0 returns
	// everything.
	ListByRegularizeState(ctx context.Context, organizationID string, state RegularizeState, employeeIDs []string, limit, offset int) ([]Attendance, error)
	CountByRegularizeState(ctx context.Context, organizationID string, state RegularizeState, employeeIDs []string) (int, error)
}
