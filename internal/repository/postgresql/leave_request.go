package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/attendlyhq/attendly-backend-go/internal/domain/leave"
	"github.com/attendlyhq/attendly-backend-go/internal/pkg/database"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepository{db: db}
}

const leaveColumns = `
	l.id, l.organization_id, l.employee_id, l.type,
	l.start_date, l.end_date, l.reason, l.status,
	l.decided_by, l.decided_at, l.created_at, l.updated_at`

func scanLeave(row pgx.Row) (*leave.LeaveRequest, error) {
	var req leave.LeaveRequest
	err := row.Scan(
		&req.ID, &req.OrganizationID, &req.EmployeeID, &req.Type,
		&req.StartDate, &req.EndDate, &req.Reason, &req.Status,
		&req.DecidedBy, &req.DecidedAt, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Create implements leave.LeaveRepository.
func (r *leaveRepository) Create(ctx context.Context, req *leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	if req.ID == "" {
		req.ID = uuid.New().String()
	}

	query := `
		INSERT INTO leave_requests (
			id, organization_id, employee_id, type, start_date, end_date, reason, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.ID,
		req.OrganizationID,
		req.EmployeeID,
		req.Type,
		req.StartDate,
		req.EndDate,
		req.Reason,
		req.Status,
	).Scan(&req.CreatedAt, &req.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create leave request: %w", err)
	}

	return nil
}

func (r *leaveRepository) getByID(ctx context.Context, id, organizationID, suffix string) (*leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leave_requests l
		WHERE l.id = $1 AND l.organization_id = $2
	` + suffix

	req, err := scanLeave(q.QueryRow(ctx, query, id, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, leave.ErrLeaveRequestNotFound
		}
		return nil, fmt.Errorf("failed to get leave request: %w", err)
	}

	return req, nil
}

// GetByID implements leave.LeaveRepository.
func (r *leaveRepository) GetByID(ctx context.Context, id, organizationID string) (*leave.LeaveRequest, error) {
	return r.getByID(ctx, id, organizationID, "")
}

// GetByIDForUpdate implements leave.LeaveRepository.
func (r *leaveRepository) GetByIDForUpdate(ctx context.Context, id, organizationID string) (*leave.LeaveRequest, error) {
	return r.getByID(ctx, id, organizationID, " FOR UPDATE")
}

// Update implements leave.LeaveRepository.
func (r *leaveRepository) Update(ctx context.Context, req *leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $2, decided_by = $3, decided_at = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		req.ID,
		req.Status,
		req.DecidedBy,
		req.DecidedAt,
	).Scan(&req.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.ErrLeaveRequestNotFound
		}
		return fmt.Errorf("failed to update leave request: %w", err)
	}

	return nil
}

// HasOverlapping implements leave.LeaveRepository.
func (r *leaveRepository) HasOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM leave_requests
			WHERE employee_id = $1
			  AND status IN ('pending', 'approved')
			  AND start_date <= $3
			  AND end_date >= $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, start, end).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check overlapping leave: %w", err)
	}

	return exists, nil
}

// CoversDate implements leave.LeaveRepository.
func (r *leaveRepository) CoversDate(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM leave_requests
			WHERE employee_id = $1
			  AND status IN ('pending', 'approved')
			  AND start_date <= $2
			  AND end_date >= $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check leave coverage: %w", err)
	}

	return exists, nil
}

// List implements leave.LeaveRepository.
func (r *leaveRepository) List(ctx context.Context, organizationID string, filter leave.ListFilter) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `, e.name
		FROM leave_requests l
		JOIN employees e ON e.id = l.employee_id
		WHERE l.organization_id = $1
	`
	args := []interface{}{organizationID}

	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		query += fmt.Sprintf(" AND l.employee_id = $%d", len(args))
	}
	if filter.EmployeeIDs != nil {
		args = append(args, filter.EmployeeIDs)
		query += fmt.Sprintf(" AND l.employee_id = ANY($%d)", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND l.status = $%d", len(args))
	}
	query += " ORDER BY l.created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit, filter.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var list []leave.LeaveRequest
	for rows.Next() {
		var req leave.LeaveRequest
		err := rows.Scan(
			&req.ID, &req.OrganizationID, &req.EmployeeID, &req.Type,
			&req.StartDate, &req.EndDate, &req.Reason, &req.Status,
			&req.DecidedBy, &req.DecidedAt, &req.CreatedAt, &req.UpdatedAt,
			&req.EmployeeName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		list = append(list, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read leave requests: %w", err)
	}

	return list, nil
}

// CountByStatus implements leave.LeaveRepository.
func (r *leaveRepository) CountByStatus(ctx context.Context, organizationID string, status leave.Status, employeeIDs []string) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM leave_requests
		WHERE organization_id = $1 AND status = $2
	`
	args := []interface{}{organizationID, status}
	if employeeIDs != nil {
		query += ` AND employee_id = ANY($3)`
		args = append(args, employeeIDs)
	}

	var count int
	if err := q.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	return count, nil
}
