package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/exellar/payroll-backend-go/internal/domain/salarycomponent"
	"github.com/exellar/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type salaryComponentRepositoryImpl struct {
	db *database.DB
}

func NewSalaryComponentRepository(db *database.DB) salarycomponent.SalaryComponentRepository {
	return &salaryComponentRepositoryImpl{db: db}
}

const salaryComponentColumns = `id, employee_id, name, component_type, calculation_type, value,
	is_taxable, is_active, description, created_at, updated_at`

func scanSalaryComponent(row rowScanner) (salarycomponent.SalaryComponent, error) {
	var c salarycomponent.SalaryComponent
	err := row.Scan(&c.ID, &c.EmployeeID, &c.Name, &c.ComponentType, &c.CalculationType, &c.Value,
		&c.IsTaxable, &c.IsActive, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *salaryComponentRepositoryImpl) Create(ctx context.Context, c salarycomponent.SalaryComponent) (salarycomponent.SalaryComponent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_components (employee_id, name, component_type, calculation_type, value, is_taxable, is_active, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + salaryComponentColumns

	created, err := scanSalaryComponent(q.QueryRow(ctx, query,
		c.EmployeeID, c.Name, string(c.ComponentType), string(c.CalculationType), c.Value, c.IsTaxable, c.IsActive, c.Description,
	))
	if err != nil {
		if isForeignKeyViolation(err) {
			return salarycomponent.SalaryComponent{}, salarycomponent.ErrEmployeeNotFound
		}
		return salarycomponent.SalaryComponent{}, fmt.Errorf("failed to create salary component: %w", err)
	}
	return created, nil
}

func (r *salaryComponentRepositoryImpl) GetByID(ctx context.Context, id int64) (salarycomponent.SalaryComponent, error) {
	q := GetQuerier(ctx, r.db)

	c, err := scanSalaryComponent(q.QueryRow(ctx, `SELECT `+salaryComponentColumns+` FROM salary_components WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salarycomponent.SalaryComponent{}, salarycomponent.ErrSalaryComponentNotFound
		}
		return salarycomponent.SalaryComponent{}, fmt.Errorf("failed to get salary component: %w", err)
	}
	return c, nil
}

func (r *salaryComponentRepositoryImpl) List(ctx context.Context, filter salarycomponent.SalaryComponentFilter) ([]salarycomponent.SalaryComponent, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.ComponentType != nil && *filter.ComponentType != "" {
		conditions = append(conditions, fmt.Sprintf("component_type = $%d", argIdx))
		args = append(args, strings.ToUpper(*filter.ComponentType))
		argIdx++
	}
	if filter.CalculationType != nil && *filter.CalculationType != "" {
		conditions = append(conditions, fmt.Sprintf("calculation_type = $%d", argIdx))
		args = append(args, strings.ToUpper(*filter.CalculationType))
		argIdx++
	}
	if filter.IsActive != nil {
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", argIdx))
		args = append(args, *filter.IsActive)
		argIdx++
	}
	if filter.IsTaxable != nil {
		conditions = append(conditions, fmt.Sprintf("is_taxable = $%d", argIdx))
		args = append(args, *filter.IsTaxable)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	validSortColumns := map[string]string{
		"name":           "name",
		"component_type": "component_type",
		"value":          "value",
		"created_at":     "created_at",
	}
	sortColumn, ok := validSortColumns[filter.SortBy]
	if !ok {
		sortColumn = "component_type, name"
	}
	sortOrder := "ASC"
	if strings.ToUpper(filter.SortOrder) == "DESC" {
		sortOrder = "DESC"
	}

	query := fmt.Sprintf(`SELECT %s FROM salary_components WHERE %s ORDER BY %s %s, id`,
		salaryComponentColumns, strings.Join(conditions, " AND "), sortColumn, sortOrder)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary components: %w", err)
	}
	defer rows.Close()

	components := []salarycomponent.SalaryComponent{}
	for rows.Next() {
		c, err := scanSalaryComponent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary component: %w", err)
		}
		components = append(components, c)
	}
	return components, rows.Err()
}

func (r *salaryComponentRepositoryImpl) Update(ctx context.Context, c salarycomponent.SalaryComponent) (salarycomponent.SalaryComponent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE salary_components SET
			employee_id = $2, name = $3, component_type = $4, calculation_type = $5, value = $6,
			is_taxable = $7, is_active = $8, description = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + salaryComponentColumns

	updated, err := scanSalaryComponent(q.QueryRow(ctx, query,
		c.ID, c.EmployeeID, c.Name, string(c.ComponentType), string(c.CalculationType), c.Value, c.IsTaxable, c.IsActive, c.Description,
	))
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return salarycomponent.SalaryComponent{}, salarycomponent.ErrSalaryComponentNotFound
		case isForeignKeyViolation(err):
			return salarycomponent.SalaryComponent{}, salarycomponent.ErrEmployeeNotFound
		}
		return salarycomponent.SalaryComponent{}, fmt.Errorf("failed to update salary component: %w", err)
	}
	return updated, nil
}

func (r *salaryComponentRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM salary_components WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete salary component: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return salarycomponent.ErrSalaryComponentNotFound
	}
	return nil
}

func (r *salaryComponentRepositoryImpl) Stats(ctx context.Context) (salarycomponent.SalaryComponentStatsResponse, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE is_active),
			COUNT(*) FILTER (WHERE component_type = 'EARNING'),
			COUNT(*) FILTER (WHERE component_type = 'DEDUCTION'),
			COUNT(*) FILTER (WHERE is_taxable)
		FROM salary_components
	`

	var s salarycomponent.SalaryComponentStatsResponse
	if err := q.QueryRow(ctx, query).Scan(
		&s.TotalComponents, &s.ActiveComponents, &s.Earnings, &s.Deductions, &s.TaxableComponents,
	); err != nil {
		return salarycomponent.SalaryComponentStatsResponse{}, fmt.Errorf("failed to get salary component stats: %w", err)
	}
	s.InactiveComponents = s.TotalComponents - s.ActiveComponents
	return s, nil
}
