package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/exellar/payroll-backend-go/internal/domain/master/department"
	"github.com/exellar/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type departmentRepositoryImpl struct {
	db *database.DB
}

func NewDepartmentRepository(db *database.DB) department.DepartmentRepository {
	return &departmentRepositoryImpl{db: db}
}

const departmentColumns = `d.id, d.name, d.description, d.created_at, d.updated_at,
	(SELECT COUNT(*) FROM employees e WHERE e.department_id = d.id) AS employee_count`

func scanDepartment(row rowScanner) (department.Department, error) {
	var d department.Department
	err := row.Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt, &d.UpdatedAt, &d.EmployeeCount)
	return d, err
}

func (r *departmentRepositoryImpl) Create(ctx context.Context, d department.Department) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO departments (name, description)
		VALUES ($1, $2)
		RETURNING id, name, description, created_at, updated_at
	`

	var created department.Department
	err := q.QueryRow(ctx, query, d.Name, d.Description).Scan(
		&created.ID, &created.Name, &created.Description, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "uk_department_name") {
			return department.Department{}, department.ErrDepartmentNameExists
		}
		return department.Department{}, fmt.Errorf("failed to create department: %w", err)
	}
	return created, nil
}

func (r *departmentRepositoryImpl) get(ctx context.Context, where string, arg interface{}) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	d, err := scanDepartment(q.QueryRow(ctx, `SELECT `+departmentColumns+` FROM departments d WHERE `+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		return department.Department{}, fmt.Errorf("failed to get department: %w", err)
	}
	return d, nil
}

func (r *departmentRepositoryImpl) GetByID(ctx context.Context, id int64) (department.Department, error) {
	return r.get(ctx, "d.id = $1", id)
}

func (r *departmentRepositoryImpl) GetByName(ctx context.Context, name string) (department.Department, error) {
	return r.get(ctx, "LOWER(d.name) = LOWER($1)", name)
}

func (r *departmentRepositoryImpl) List(ctx context.Context, filter department.DepartmentFilter) ([]department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + departmentColumns + ` FROM departments d`
	args := []interface{}{}
	if filter.Search != nil && *filter.Search != "" {
		query += ` WHERE (d.name ILIKE $1 OR d.description ILIKE $1)`
		args = append(args, "%"+*filter.Search+"%")
	}

	validSortColumns := map[string]string{
		"name":       "d.name",
		"created_at": "d.created_at",
	}
	sortColumn, ok := validSortColumns[filter.SortBy]
	if !ok {
		sortColumn = "d.name"
	}
	sortOrder := "ASC"
	if strings.ToUpper(filter.SortOrder) == "DESC" {
		sortOrder = "DESC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s", sortColumn, sortOrder)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	departments := []department.Department{}
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

func (r *departmentRepositoryImpl) Update(ctx context.Context, req department.UpdateDepartmentRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE departments SET updated_at = NOW()`
	args := []interface{}{}
	argIdx := 1

	if req.Name != nil {
		query += fmt.Sprintf(", name = $%d", argIdx)
		args = append(args, *req.Name)
		argIdx++
	}
	if req.Description != nil {
		query += fmt.Sprintf(", description = $%d", argIdx)
		args = append(args, *req.Description)
		argIdx++
	}

	query += fmt.Sprintf(" WHERE id = $%d", argIdx)
	args = append(args, req.ID)

	commandTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err, "uk_department_name") {
			return department.ErrDepartmentNameExists
		}
		return fmt.Errorf("failed to update department: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return department.ErrDepartmentNotFound
	}
	return nil
}

func (r *departmentRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete department: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return department.ErrDepartmentNotFound
	}
	return nil
}

// Stats counts departments with and without ACTIVE employees.
func (r *departmentRepositoryImpl) Stats(ctx context.Context) (department.DepartmentStatsResponse, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE EXISTS (
				SELECT 1 FROM employees e WHERE e.department_id = d.id AND e.status = 'ACTIVE'
			))
		FROM departments d
	`

	var s department.DepartmentStatsResponse
	if err := q.QueryRow(ctx, query).Scan(&s.TotalDepartments, &s.DepartmentsWithEmployees); err != nil {
		return department.DepartmentStatsResponse{}, fmt.Errorf("failed to get department stats: %w", err)
	}
	s.DepartmentsWithoutEmployees = s.TotalDepartments - s.DepartmentsWithEmployees
	return s, nil
}
