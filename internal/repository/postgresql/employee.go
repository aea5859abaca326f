package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/arketra-labs/workforce-backend-go/internal/domain/employee"
	"github.com/arketra-labs/workforce-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (user_id, full_name, position, phone, avatar_url, work_site_id, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		e.UserID, e.FullName, e.Position, e.Phone, e.AvatarURL, e.WorkSiteID, e.Active,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return e, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.user_id, e.full_name, e.position, e.phone, e.avatar_url,
			   e.work_site_id, e.active, e.created_at, e.updated_at,
			   u.email, w.name AS work_site_name
		FROM employees e
		JOIN users u ON u.id = e.user_id
		LEFT JOIN work_sites w ON w.id = e.work_site_id
		WHERE e.id = $1
	`

	var e employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.UserID, &e.FullName, &e.Position, &e.Phone, &e.AvatarURL,
		&e.WorkSiteID, &e.Active, &e.CreatedAt, &e.UpdatedAt,
		&e.Email, &e.WorkSiteName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by id: %w", err)
	}

	return e, nil
}

// GetByUserID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.user_id, e.full_name, e.position, e.phone, e.avatar_url,
			   e.work_site_id, e.active, e.created_at, e.updated_at,
			   u.email, w.name AS work_site_name
		FROM employees e
		JOIN users u ON u.id = e.user_id
		LEFT JOIN work_sites w ON w.id = e.work_site_id
		WHERE e.user_id = $1
	`

	var e employee.Employee
	err := q.QueryRow(ctx, query, userID).Scan(
		&e.ID, &e.UserID, &e.FullName, &e.Position, &e.Phone, &e.AvatarURL,
		&e.WorkSiteID, &e.Active, &e.CreatedAt, &e.UpdatedAt,
		&e.Email, &e.WorkSiteName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by user id: %w", err)
	}

	return e, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepository) List(ctx context.Context, filter employee.ListFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filter.Search != nil {
		conditions = append(conditions, fmt.Sprintf("e.full_name ILIKE $%d", argPos))
		args = append(args, "%"+*filter.Search+"%")
		argPos++
	}
	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("e.active = $%d", argPos))
		args = append(args, *filter.Active)
		argPos++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM employees e WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT e.id, e.user_id, e.full_name, e.position, e.phone, e.avatar_url,
			   e.work_site_id, e.active, e.created_at, e.updated_at,
			   u.email, w.name AS work_site_name
		FROM employees e
		JOIN users u ON u.id = e.user_id
		LEFT JOIN work_sites w ON w.id = e.work_site_id
		WHERE %s
		ORDER BY e.full_name ASC
		LIMIT $%d OFFSET $%d
	`, where, argPos, argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var e employee.Employee
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.FullName, &e.Position, &e.Phone, &e.AvatarURL,
			&e.WorkSiteID, &e.Active, &e.CreatedAt, &e.UpdatedAt,
			&e.Email, &e.WorkSiteName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, total, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepository) Update(ctx context.Context, e employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET full_name = $2, position = $3, phone = $4, avatar_url = $5,
			active = $6, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, e.ID, e.FullName, e.Position, e.Phone, e.AvatarURL, e.Active)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// AssignWorkSite implements employee.EmployeeRepository.
func (r *employeeRepository) AssignWorkSite(ctx context.Context, employeeID string, workSiteID *string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE employees SET work_site_id = $2, updated_at = NOW() WHERE id = $1`,
		employeeID, workSiteID,
	)
	if err != nil {
		return fmt.Errorf("failed to assign work site: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// ListActiveIDs implements employee.EmployeeRepository.
func (r *employeeRepository) ListActiveIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id FROM employees WHERE active = true`)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employee ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employee id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employee ids: %w", err)
	}

	return ids, nil
}
