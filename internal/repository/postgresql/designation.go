package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/exellar/payroll-backend-go/internal/domain/master/designation"
	"github.com/exellar/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type designationRepositoryImpl struct {
	db *database.DB
}

func NewDesignationRepository(db *database.DB) designation.DesignationRepository {
	return &designationRepositoryImpl{db: db}
}

const designationColumns = `d.id, d.name, d.description, d.created_at, d.updated_at,
	(SELECT COUNT(*) FROM employees e WHERE e.designation = d.name) AS employee_count`

func scanDesignation(row rowScanner) (designation.Designation, error) {
	var d designation.Designation
	err := row.Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt, &d.UpdatedAt, &d.EmployeeCount)
	return d, err
}

func (r *designationRepositoryImpl) Create(ctx context.Context, d designation.Designation) (designation.Designation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO designations (name, description)
		VALUES ($1, $2)
		RETURNING id, name, description, created_at, updated_at
	`

	var created designation.Designation
	err := q.QueryRow(ctx, query, d.Name, d.Description).Scan(
		&created.ID, &created.Name, &created.Description, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "uk_designation_name") {
			return designation.Designation{}, designation.ErrDesignationNameExists
		}
		return designation.Designation{}, fmt.Errorf("failed to create designation: %w", err)
	}
	return created, nil
}

func (r *designationRepositoryImpl) get(ctx context.Context, where string, arg interface{}) (designation.Designation, error) {
	q := GetQuerier(ctx, r.db)

	d, err := scanDesignation(q.QueryRow(ctx, `SELECT `+designationColumns+` FROM designations d WHERE `+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return designation.Designation{}, designation.ErrDesignationNotFound
		}
		return designation.Designation{}, fmt.Errorf("failed to get designation: %w", err)
	}
	return d, nil
}

func (r *designationRepositoryImpl) GetByID(ctx context.Context, id int64) (designation.Designation, error) {
	return r.get(ctx, "d.id = $1", id)
}

func (r *designationRepositoryImpl) GetByName(ctx context.Context, name string) (designation.Designation, error) {
	return r.get(ctx, "LOWER(d.name) = LOWER($1)", name)
}

func (r *designationRepositoryImpl) List(ctx context.Context, filter designation.DesignationFilter) ([]designation.Designation, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + designationColumns + ` FROM designations d`
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
		return nil, fmt.Errorf("failed to list designations: %w", err)
	}
	defer rows.Close()

	designations := []designation.Designation{}
	for rows.Next() {
		d, err := scanDesignation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan designation: %w", err)
		}
		designations = append(designations, d)
	}
	return designations, rows.Err()
}

func (r *designationRepositoryImpl) Update(ctx context.Context, req designation.UpdateDesignationRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE designations SET updated_at = NOW()`
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
		if isUniqueViolation(err, "uk_designation_name") {
			return designation.ErrDesignationNameExists
		}
		return fmt.Errorf("failed to update designation: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return designation.ErrDesignationNotFound
	}
	return nil
}

func (r *designationRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM designations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete designation: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return designation.ErrDesignationNotFound
	}
	return nil
}

// Stats counts designations with and without ACTIVE employees.
func (r *designationRepositoryImpl) Stats(ctx context.Context) (designation.DesignationStatsResponse, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE EXISTS (
				SELECT 1 FROM employees e WHERE e.designation = d.name AND e.status = 'ACTIVE'
			))
		FROM designations d
	`

	var s designation.DesignationStatsResponse
	if err := q.QueryRow(ctx, query).Scan(&s.TotalDesignations, &s.DesignationsWithEmployees); err != nil {
		return designation.DesignationStatsResponse{}, fmt.Errorf("failed to get designation stats: %w", err)
	}
	s.DesignationsWithoutEmployees = s.TotalDesignations - s.DesignationsWithEmployees
	return s, nil
}
