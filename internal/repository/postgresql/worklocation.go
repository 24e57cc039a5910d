package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/exellar/payroll-backend-go/internal/domain/master/worklocation"
	"github.com/exellar/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type workLocationRepositoryImpl struct {
	db *database.DB
}

func NewWorkLocationRepository(db *database.DB) worklocation.WorkLocationRepository {
	return &workLocationRepositoryImpl{db: db}
}

// Employees reference a location by name.
const workLocationColumns = `w.id, w.name, w.address, w.address2, w.city, w.state, w.pincode, w.is_filing_address,
	w.created_at, w.updated_at,
	(SELECT COUNT(*) FROM employees e WHERE e.work_location = w.name) AS employee_count`

func scanWorkLocation(row rowScanner) (worklocation.WorkLocation, error) {
	var w worklocation.WorkLocation
	err := row.Scan(&w.ID, &w.Name, &w.Address, &w.Address2, &w.City, &w.State, &w.Pincode, &w.IsFilingAddress,
		&w.CreatedAt, &w.UpdatedAt, &w.EmployeeCount)
	return w, err
}

func (r *workLocationRepositoryImpl) Create(ctx context.Context, w worklocation.WorkLocation) (worklocation.WorkLocation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH w AS (
			INSERT INTO work_locations (name, address, address2, city, state, pincode, is_filing_address)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING *
		)
		SELECT ` + workLocationColumns + ` FROM w`

	created, err := scanWorkLocation(q.QueryRow(ctx, query,
		w.Name, w.Address, w.Address2, w.City, w.State, w.Pincode, w.IsFilingAddress,
	))
	if err != nil {
		return worklocation.WorkLocation{}, fmt.Errorf("failed to create work location: %w", err)
	}
	return created, nil
}

func (r *workLocationRepositoryImpl) GetByID(ctx context.Context, id int64) (worklocation.WorkLocation, error) {
	q := GetQuerier(ctx, r.db)

	w, err := scanWorkLocation(q.QueryRow(ctx, `SELECT `+workLocationColumns+` FROM work_locations w WHERE w.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worklocation.WorkLocation{}, worklocation.ErrWorkLocationNotFound
		}
		return worklocation.WorkLocation{}, fmt.Errorf("failed to get work location: %w", err)
	}
	return w, nil
}

func (r *workLocationRepositoryImpl) List(ctx context.Context, filter worklocation.WorkLocationFilter) ([]worklocation.WorkLocation, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(w.name ILIKE $%d OR w.city ILIKE $%d OR w.state ILIKE $%d)", argIdx, argIdx, argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}
	if filter.City != nil && *filter.City != "" {
		conditions = append(conditions, fmt.Sprintf("w.city ILIKE $%d", argIdx))
		args = append(args, *filter.City)
		argIdx++
	}
	if filter.State != nil && *filter.State != "" {
		conditions = append(conditions, fmt.Sprintf("w.state ILIKE $%d", argIdx))
		args = append(args, *filter.State)
		argIdx++
	}
	if filter.IsFilingAddress != nil {
		conditions = append(conditions, fmt.Sprintf("w.is_filing_address = $%d", argIdx))
		args = append(args, *filter.IsFilingAddress)
		argIdx++
	}

	validSortColumns := map[string]string{
		"name":       "w.name",
		"city":       "w.city",
		"state":      "w.state",
		"created_at": "w.created_at",
	}
	sortColumn, ok := validSortColumns[filter.SortBy]
	if !ok {
		sortColumn = "w.name"
	}
	sortOrder := "ASC"
	if strings.ToUpper(filter.SortOrder) == "DESC" {
		sortOrder = "DESC"
	}

	query := fmt.Sprintf(`SELECT %s FROM work_locations w WHERE %s ORDER BY %s %s`,
		workLocationColumns, strings.Join(conditions, " AND "), sortColumn, sortOrder)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list work locations: %w", err)
	}
	defer rows.Close()

	locations := []worklocation.WorkLocation{}
	for rows.Next() {
		w, err := scanWorkLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work location: %w", err)
		}
		locations = append(locations, w)
	}
	return locations, rows.Err()
}

func (r *workLocationRepositoryImpl) Update(ctx context.Context, req worklocation.UpdateWorkLocationRequest) error {
	q := GetQuerier(ctx, r.db)

	setParts := []string{"updated_at = NOW()"}
	args := []interface{}{}
	argIdx := 1

	add := func(column string, value interface{}) {
		setParts = append(setParts, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}
	if req.Name != nil {
		add("name", *req.Name)
	}
	if req.Address != nil {
		add("address", *req.Address)
	}
	if req.Address2 != nil {
		add("address2", *req.Address2)
	}
	if req.City != nil {
		add("city", *req.City)
	}
	if req.State != nil {
		add("state", *req.State)
	}
	if req.Pincode != nil {
		add("pincode", *req.Pincode)
	}
	if req.IsFilingAddress != nil {
		add("is_filing_address", *req.IsFilingAddress)
	}

	query := fmt.Sprintf("UPDATE work_locations SET %s WHERE id = $%d", strings.Join(setParts, ", "), argIdx)
	args = append(args, req.ID)

	commandTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update work location: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return worklocation.ErrWorkLocationNotFound
	}
	return nil
}

func (r *workLocationRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM work_locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete work location: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return worklocation.ErrWorkLocationNotFound
	}
	return nil
}

func (r *workLocationRepositoryImpl) Stats(ctx context.Context) (worklocation.WorkLocationStatsResponse, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE w.is_filing_address),
			COUNT(*) FILTER (WHERE EXISTS (
				SELECT 1 FROM employees e WHERE e.work_location = w.name AND e.status = 'ACTIVE'
			))
		FROM work_locations w
	`

	var s worklocation.WorkLocationStatsResponse
	if err := q.QueryRow(ctx, query).Scan(&s.TotalLocations, &s.FilingAddresses, &s.LocationsWithEmployees); err != nil {
		return worklocation.WorkLocationStatsResponse{}, fmt.Errorf("failed to get work location stats: %w", err)
	}
	s.LocationsWithoutEmployees = s.TotalLocations - s.LocationsWithEmployees
	return s, nil
}
