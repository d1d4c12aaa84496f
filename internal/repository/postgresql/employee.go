package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/attendlyhq/attendly-backend-go/internal/domain/employee"
	"github.com/attendlyhq/attendly-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	e.id, e.organization_id, e.name, e.email, e.username, e.password_hash,
	e.role, e.is_active, e.salary, e.join_date,
	e.check_in_time, e.check_out_time, e.work_duration_hours,
	e.alloted_leave, e.leave_taken, e.reporting_manager_id,
	e.created_at, e.updated_at`

func scanEmployee(row pgx.Row) (*employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.OrganizationID, &emp.Name, &emp.Email, &emp.Username, &emp.PasswordHash,
		&emp.Role, &emp.IsActive, &emp.Salary, &emp.JoinDate,
		&emp.CheckInTime, &emp.CheckOutTime, &emp.WorkDurationHours,
		&emp.AllotedLeave, &emp.LeaveTaken, &emp.ReportingManagerID,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(ctx context.Context, emp *employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	if emp.ID == "" {
		emp.ID = uuid.New().String()
	}

	query := `
		INSERT INTO employees (
			id, organization_id, name, email, username, password_hash,
			role, is_active, salary, join_date,
			check_in_time, check_out_time, work_duration_hours,
			alloted_leave, leave_taken, reporting_manager_id
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		emp.ID,
		emp.OrganizationID,
		emp.Name,
		emp.Email,
		emp.Username,
		emp.PasswordHash,
		emp.Role,
		emp.IsActive,
		emp.Salary,
		emp.JoinDate,
		emp.CheckInTime,
		emp.CheckOutTime,
		emp.WorkDurationHours,
		emp.AllotedLeave,
		emp.LeaveTaken,
		emp.ReportingManagerID,
	).Scan(&emp.CreatedAt, &emp.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create employee: %w", err)
	}

	return nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id, organizationID string) (*employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		WHERE e.id = $1 AND e.organization_id = $2
	`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	return emp, nil
}

// GetByUsername implements employee.EmployeeRepository. Login is the
// only unscoped lookup; usernames are globally unique.
func (r *employeeRepository) GetByUsername(ctx context.Context, username string) (*employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		WHERE e.username = $1
	`

	emp, err := scanEmployee(q.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to get employee by username: %w", err)
	}

	return emp, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepository) Update(ctx context.Context, emp *employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET name = $3, email = $4, role = $5, is_active = $6, salary = $7,
			check_in_time = $8, check_out_time = $9, work_duration_hours = $10,
			alloted_leave = $11, leave_taken = $12, reporting_manager_id = $13,
			updated_at = NOW()
		WHERE id = $1 AND organization_id = $2
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		emp.ID,
		emp.OrganizationID,
		emp.Name,
		emp.Email,
		emp.Role,
		emp.IsActive,
		emp.Salary,
		emp.CheckInTime,
		emp.CheckOutTime,
		emp.WorkDurationHours,
		emp.AllotedLeave,
		emp.LeaveTaken,
		emp.ReportingManagerID,
	).Scan(&emp.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}

	return nil
}

// IncrementLeaveTaken implements employee.EmployeeRepository.
func (r *employeeRepository) IncrementLeaveTaken(ctx context.Context, id string, days int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET leave_taken = leave_taken + $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, days)
	if err != nil {
		return fmt.Errorf("failed to increment leave taken: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// ListByOrganization implements employee.EmployeeRepository.
func (r *employeeRepository) ListByOrganization(ctx context.Context, organizationID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `, m.name
		FROM employees e
		LEFT JOIN employees m ON m.id = e.reporting_manager_id
		WHERE e.organization_id = $1
		ORDER BY e.name
	`

	rows, err := q.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		err := rows.Scan(
			&emp.ID, &emp.OrganizationID, &emp.Name, &emp.Email, &emp.Username, &emp.PasswordHash,
			&emp.Role, &emp.IsActive, &emp.Salary, &emp.JoinDate,
			&emp.CheckInTime, &emp.CheckOutTime, &emp.WorkDurationHours,
			&emp.AllotedLeave, &emp.LeaveTaken, &emp.ReportingManagerID,
			&emp.CreatedAt, &emp.UpdatedAt,
			&emp.ReportingManagerName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employees: %w", err)
	}

	return employees, nil
}

// ListIDsByReportingManager implements employee.EmployeeRepository.
func (r *employeeRepository) ListIDsByReportingManager(ctx context.Context, managerID, organizationID string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id
		FROM employees
		WHERE reporting_manager_id = $1 AND organization_id = $2
	`

	rows, err := q.Query(ctx, query, managerID, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan report id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read report ids: %w", err)
	}

	return ids, nil
}
