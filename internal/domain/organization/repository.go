package organization

import (
	"context"
)

// OrganizationRepository defines data access methods for organizations
// and their holiday lists.
type OrganizationRepository interface {
	Create(ctx context.Context, org *Organization) error

	// GetByID returns the organization with its holidays loaded.
	GetByID(ctx context.Context, id string) (*Organization, error)

	Update(ctx context.Context, org *Organization) error

	// AddHoliday appends a holiday interval. Holidays are never deleted.
	AddHoliday(ctx context.Context, holiday *Holiday) error
}
