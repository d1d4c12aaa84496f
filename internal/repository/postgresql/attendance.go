package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/attendlyhq/attendly-backend-go/internal/domain/attendance"
	"github.com/attendlyhq/attendly-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	id, organization_id, employee_id, date,
	check_in_time, check_out_time,
	check_in_latitude, check_in_longitude,
	check_out_latitude, check_out_longitude,
	work_duration_hours, status, is_regularized, regularize_request,
	regularization_reason, regularized_by,
	requested_check_in, requested_check_out,
	created_at, updated_at`

func scanAttendance(row pgx.Row) (*attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.OrganizationID, &att.EmployeeID, &att.Date,
		&att.CheckInTime, &att.CheckOutTime,
		&att.CheckInLatitude, &att.CheckInLongitude,
		&att.CheckOutLatitude, &att.CheckOutLongitude,
		&att.WorkDurationHours, &att.Status, &att.IsRegularized, &att.RegularizeRequest,
		&att.RegularizationReason, &att.RegularizedBy,
		&att.RequestedCheckIn, &att.RequestedCheckOut,
		&att.CreatedAt, &att.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &att, nil
}

// Create implements attendance.AttendanceRepository. The unique index
// on (employee_id, date) rejects a second row for the same day.
func (r *attendanceRepository) Create(ctx context.Context, att *attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	if att.ID == "" {
		att.ID = uuid.New().String()
	}

	query := `
		INSERT INTO attendances (
			id, organization_id, employee_id, date,
			check_in_time, check_out_time,
			check_in_latitude, check_in_longitude,
			check_out_latitude, check_out_longitude,
			work_duration_hours, status, is_regularized, regularize_request,
			regularization_reason, regularized_by,
			requested_check_in, requested_check_out
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.ID,
		att.OrganizationID,
		att.EmployeeID,
		att.Date,
		att.CheckInTime,
		att.CheckOutTime,
		att.CheckInLatitude,
		att.CheckInLongitude,
		att.CheckOutLatitude,
		att.CheckOutLongitude,
		att.WorkDurationHours,
		att.Status,
		att.IsRegularized,
		att.RegularizeRequest,
		att.RegularizationReason,
		att.RegularizedBy,
		att.RequestedCheckIn,
		att.RequestedCheckOut,
	).Scan(&att.CreatedAt, &att.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create attendance: %w", err)
	}

	return nil
}

// Upsert implements attendance.AttendanceRepository. Used by the leave
// decision cascade to overwrite whatever the day held before.
func (r *attendanceRepository) Upsert(ctx context.Context, att *attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	if att.ID == "" {
		att.ID = uuid.New().String()
	}

	query := `
		INSERT INTO attendances (
			id, organization_id, employee_id, date,
			check_in_time, check_out_time,
			check_in_latitude, check_in_longitude,
			check_out_latitude, check_out_longitude,
			work_duration_hours, status, is_regularized, regularize_request,
			regularization_reason, regularized_by,
			requested_check_in, requested_check_out
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18
		)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			check_in_time = EXCLUDED.check_in_time,
			check_out_time = EXCLUDED.check_out_time,
			check_in_latitude = EXCLUDED.check_in_latitude,
			check_in_longitude = EXCLUDED.check_in_longitude,
			check_out_latitude = EXCLUDED.check_out_latitude,
			check_out_longitude = EXCLUDED.check_out_longitude,
			work_duration_hours = EXCLUDED.work_duration_hours,
			status = EXCLUDED.status,
			is_regularized = EXCLUDED.is_regularized,
			regularize_request = EXCLUDED.regularize_request,
			regularization_reason = EXCLUDED.regularization_reason,
			regularized_by = EXCLUDED.regularized_by,
			requested_check_in = EXCLUDED.requested_check_in,
			requested_check_out = EXCLUDED.requested_check_out,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.ID,
		att.OrganizationID,
		att.EmployeeID,
		att.Date,
		att.CheckInTime,
		att.CheckOutTime,
		att.CheckInLatitude,
		att.CheckInLongitude,
		att.CheckOutLatitude,
		att.CheckOutLongitude,
		att.WorkDurationHours,
		att.Status,
		att.IsRegularized,
		att.RegularizeRequest,
		att.RegularizationReason,
		att.RegularizedBy,
		att.RequestedCheckIn,
		att.RequestedCheckOut,
	).Scan(&att.ID, &att.CreatedAt, &att.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert attendance: %w", err)
	}

	return nil
}

func (r *attendanceRepository) getByID(ctx context.Context, id, organizationID, suffix string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE id = $1 AND organization_id = $2
	` + suffix

	att, err := scanAttendance(q.QueryRow(ctx, query, id, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, attendance.ErrAttendanceNotFound
		}
		return nil, fmt.Errorf("failed to get attendance: %w", err)
	}

	return att, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id, organizationID string) (*attendance.Attendance, error) {
	return r.getByID(ctx, id, organizationID, "")
}

// GetByIDForUpdate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByIDForUpdate(ctx context.Context, id, organizationID string) (*attendance.Attendance, error) {
	return r.getByID(ctx, id, organizationID, " FOR UPDATE")
}

func (r *attendanceRepository) getByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, suffix string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1 AND date = $2
	` + suffix

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // no record for the day
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	return r.getByEmployeeAndDate(ctx, employeeID, date, "")
}

// GetByEmployeeAndDateForUpdate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByEmployeeAndDateForUpdate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	return r.getByEmployeeAndDate(ctx, employeeID, date, " FOR UPDATE")
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepository) Update(ctx context.Context, att *attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET check_in_time = $2, check_out_time = $3,
			check_in_latitude = $4, check_in_longitude = $5,
			check_out_latitude = $6, check_out_longitude = $7,
			work_duration_hours = $8, status = $9,
			is_regularized = $10, regularize_request = $11,
			regularization_reason = $12, regularized_by = $13,
			requested_check_in = $14, requested_check_out = $15,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		att.ID,
		att.CheckInTime,
		att.CheckOutTime,
		att.CheckInLatitude,
		att.CheckInLongitude,
		att.CheckOutLatitude,
		att.CheckOutLongitude,
		att.WorkDurationHours,
		att.Status,
		att.IsRegularized,
		att.RegularizeRequest,
		att.RegularizationReason,
		att.RegularizedBy,
		att.RequestedCheckIn,
		att.RequestedCheckOut,
	).Scan(&att.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to update attendance: %w", err)
	}

	return nil
}

// ListByEmployeeAndRange implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	return collectAttendances(rows)
}

// ListByRegularizeState implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByRegularizeState(ctx context.Context, organizationID string, state attendance.RegularizeState, employeeIDs []string, limit, offset int) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE organization_id = $1 AND regularize_request = $2
	`
	args := []interface{}{organizationID, state}
	if employeeIDs != nil {
		args = append(args, employeeIDs)
		query += fmt.Sprintf(" AND employee_id = ANY($%d)", len(args))
	}
	query += ` ORDER BY date`
	if limit > 0 {
		args = append(args, limit, offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances by regularize state: %w", err)
	}
	defer rows.Close()

	return collectAttendances(rows)
}

// CountByRegularizeState implements attendance.AttendanceRepository.
func (r *attendanceRepository) CountByRegularizeState(ctx context.Context, organizationID string, state attendance.RegularizeState, employeeIDs []string) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM attendances
		WHERE organization_id = $1 AND regularize_request = $2
	`
	args := []interface{}{organizationID, state}
	if employeeIDs != nil {
		query += ` AND employee_id = ANY($3)`
		args = append(args, employeeIDs)
	}

	var count int
	if err := q.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count attendances by regularize state: %w", err)
	}

	return count, nil
}

func collectAttendances(rows pgx.Rows) ([]attendance.Attendance, error) {
	var list []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		list = append(list, *att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attendances: %w", err)
	}
	return list, nil
}
