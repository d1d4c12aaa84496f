package employee

import (
	"context"
)

// EmployeeRepository defines data access methods for employees. Methods
// that read on behalf of a request include organizationID to prevent
// cross-organization access.
type EmployeeRepository interface {
	Create(ctx context.Context, emp *Employee) error

	GetByID(ctx context.Context, id string, organizationID string) (*Employee, error)

	// GetByUsername is used by login only and is not organization scoped.
	GetByUsername(ctx context.Context, username string) (*Employee, error)

	Update(ctx context.Context, emp *Employee) error

	// IncrementLeaveTaken adds days to the employee's cumulative leave
	// counter. Runs inside the leave approval transaction.
	IncrementLeaveTaken(ctx context.Context, id string, days int) error

	ListByOrganization(ctx context.Context, organizationID string) ([]Employee, error)

	// ListIDsByReportingManager returns the IDs of every employee whose
	// reporting manager is managerID. Used to scope manager list views.
	ListIDsByReportingManager(ctx context.Context, managerID string, organizationID string) ([]string, error)
}
