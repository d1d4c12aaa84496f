package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/attendlyhq/attendly-backend-go/internal/domain/organization"
	"github.com/attendlyhq/attendly-backend-go/internal/pkg/database"
)

type organizationRepository struct {
	db *database.DB
}

func NewOrganizationRepository(db *database.DB) organization.OrganizationRepository {
	return &organizationRepository{db: db}
}

// Create implements organization.OrganizationRepository.
func (r *organizationRepository) Create(ctx context.Context, org *organization.Organization) error {
	q := GetQuerier(ctx, r.db)

	if org.ID == "" {
		org.ID = uuid.New().String()
	}

	query := `
		INSERT INTO organizations (
			id, name, address, contact_email, contact_phone,
			latitude, longitude, timezone,
			check_in_time, check_out_time, weekly_off, is_active
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		org.ID,
		org.Name,
		org.Address,
		org.ContactEmail,
		org.ContactPhone,
		org.Latitude,
		org.Longitude,
		org.Timezone,
		org.CheckInTime,
		org.CheckOutTime,
		org.WeeklyOff,
		org.IsActive,
	).Scan(&org.CreatedAt, &org.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create organization: %w", err)
	}

	return nil
}

// GetByID implements organization.OrganizationRepository. Holidays are
// loaded alongside the organization row.
func (r *organizationRepository) GetByID(ctx context.Context, id string) (*organization.Organization, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, address, contact_email, contact_phone,
			   latitude, longitude, timezone,
			   check_in_time, check_out_time, weekly_off, is_active,
			   created_at, updated_at
		FROM organizations
		WHERE id = $1
	`

	var org organization.Organization
	err := q.QueryRow(ctx, query, id).Scan(
		&org.ID, &org.Name, &org.Address, &org.ContactEmail, &org.ContactPhone,
		&org.Latitude, &org.Longitude, &org.Timezone,
		&org.CheckInTime, &org.CheckOutTime, &org.WeeklyOff, &org.IsActive,
		&org.CreatedAt, &org.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, organization.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}

	holidays, err := r.listHolidays(ctx, id)
	if err != nil {
		return nil, err
	}
	org.Holidays = holidays

	return &org, nil
}

func (r *organizationRepository) listHolidays(ctx context.Context, organizationID string) ([]organization.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, organization_id, name, start_date, end_date
		FROM organization_holidays
		WHERE organization_id = $1
		ORDER BY start_date
	`

	rows, err := q.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []organization.Holiday
	for rows.Next() {
		var h organization.Holiday
		if err := rows.Scan(&h.ID, &h.OrganizationID, &h.Name, &h.StartDate, &h.EndDate); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read holidays: %w", err)
	}

	return holidays, nil
}

// Update implements organization.OrganizationRepository.
func (r *organizationRepository) Update(ctx context.Context, org *organization.Organization) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE organizations
		SET name = $2, address = $3, contact_email = $4, contact_phone = $5,
			latitude = $6, longitude = $7, timezone = $8,
			check_in_time = $9, check_out_time = $10, weekly_off = $11, is_active = $12,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		org.ID,
		org.Name,
		org.Address,
		org.ContactEmail,
		org.ContactPhone,
		org.Latitude,
		org.Longitude,
		org.Timezone,
		org.CheckInTime,
		org.CheckOutTime,
		org.WeeklyOff,
		org.IsActive,
	).Scan(&org.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return organization.ErrOrganizationNotFound
		}
		return fmt.Errorf("failed to update organization: %w", err)
	}

	return nil
}

// AddHoliday implements organization.OrganizationRepository.
func (r *organizationRepository) AddHoliday(ctx context.Context, holiday *organization.Holiday) error {
	q := GetQuerier(ctx, r.db)

	if holiday.ID == "" {
		holiday.ID = uuid.New().String()
	}

	query := `
		INSERT INTO organization_holidays (id, organization_id, name, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := q.Exec(ctx, query,
		holiday.ID,
		holiday.OrganizationID,
		holiday.Name,
		holiday.StartDate,
		holiday.EndDate,
	)

	if err != nil {
		return fmt.Errorf("failed to add holiday: %w", err)
	}

	return nil
}
