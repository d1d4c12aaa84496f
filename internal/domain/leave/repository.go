package leave

import (
	"context"
	"time"
)

// ListFilter narrows List results. Zero values mean "no restriction";
// EmployeeIDs non-nil restricts to those employees. Limit 0 returns
// everything.
type ListFilter struct {
	EmployeeID  string
	EmployeeIDs []string
	Status      Status
	Limit       int
	Offset      int
}

type LeaveRepository interface {
	Create(ctx context.Context, req *LeaveRequest) error
	GetByID(ctx context.Context, id, organizationID string) (*LeaveRequest, error)
	GetByIDForUpdate(ctx context.Context, id, organizationID string) (*LeaveRequest, error)
	Update(ctx context.Context, req *LeaveRequest) error
	// HasOverlapping reports whether the employee has a pending or
	// approved request intersecting [start, end].
	HasOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error)
	// CoversDate reports whether a pending or approved request of the
	// employee covers the given day.
	CoversDate(ctx context.Context, employeeID string, date time.Time) (bool, error)
	List(ctx context.Context, organizationID string, filter ListFilter) ([]LeaveRequest, error)
	CountByStatus(ctx context.Context, organizationID string, status Status, employeeIDs []string) (int, error)
}
