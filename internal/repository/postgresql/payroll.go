package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/exellar/payroll-backend-go/internal/domain/payroll"
	"github.com/exellar/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepositoryImpl{db: db}
}

const payrollColumns = `
	p.id, p.employee_id, p.pay_period_start, p.pay_period_end, p.designation, p.department, p.days_worked,
	p.basic_salary, p.hra, p.conveyance, p.meal_allowance, p.telephone_allowance, p.medical_allowance,
	p.personal_pay, p.bonus, p.overtime, p.profession_tax, p.advance,
	p.total_income, p.gross_pay, p.total_deductions, p.net_pay,
	p.status, p.processed_at, p.paid_at, p.notes, p.created_at, p.updated_at,
	(SELECT CONCAT_WS(' ', e.first_name, e.last_name) FROM employees e WHERE e.employee_id = p.employee_id) AS employee_name`

func scanPayroll(row rowScanner) (*payroll.Payroll, error) {
	var s payroll.Snapshot
	var status string
	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.PayPeriodStart, &s.PayPeriodEnd, &s.Designation, &s.Department, &s.DaysWorked,
		&s.Earnings.BasicSalary, &s.Earnings.HRA, &s.Earnings.Conveyance, &s.Earnings.MealAllowance,
		&s.Earnings.TelephoneAllowance, &s.Earnings.MedicalAllowance, &s.Earnings.PersonalPay,
		&s.Earnings.Bonus, &s.Earnings.Overtime, &s.Deductions.ProfessionTax, &s.Deductions.Advance,
		&s.TotalIncome, &s.GrossPay, &s.TotalDeductions, &s.NetPay,
		&status, &s.ProcessedAt, &s.PaidAt, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
		&s.EmployeeName,
	)
	if err != nil {
		return nil, err
	}
	s.Status = payroll.Status(status)
	return payroll.Load(s), nil
}

func payrollArgs(p *payroll.Payroll) []interface{} {
	s := p.Snapshot()
	return []interface{}{
		s.EmployeeID, s.PayPeriodStart, s.PayPeriodEnd, s.Designation, s.Department, s.DaysWorked,
		s.Earnings.BasicSalary, s.Earnings.HRA, s.Earnings.Conveyance, s.Earnings.MealAllowance,
		s.Earnings.TelephoneAllowance, s.Earnings.MedicalAllowance, s.Earnings.PersonalPay,
		s.Earnings.Bonus, s.Earnings.Overtime, s.Deductions.ProfessionTax, s.Deductions.Advance,
		s.TotalIncome, s.GrossPay, s.TotalDeductions, s.NetPay,
		string(s.Status), s.ProcessedAt, s.PaidAt, s.Notes,
	}
}

func mapPayrollWriteError(err error, action string) error {
	if isUniqueViolation(err, "uk_payroll_employee_period") {
		return payroll.ErrPayrollAlreadyExists
	}
	if isForeignKeyViolation(err) {
		return payroll.ErrEmployeeNotFound
	}
	return fmt.Errorf("failed to %s payroll: %w", action, err)
}

func (r *payrollRepositoryImpl) Create(ctx context.Context, p *payroll.Payroll) (*payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH p AS (
			INSERT INTO payroll (
				employee_id, pay_period_start, pay_period_end, designation, department, days_worked,
				basic_salary, hra, conveyance, meal_allowance, telephone_allowance, medical_allowance,
				personal_pay, bonus, overtime, profession_tax, advance,
				total_income, gross_pay, total_deductions, net_pay,
				status, processed_at, paid_at, notes
			) VALUES (
				$1, $2, $3, $4, $5, $6,
				$7, $8, $9, $10, $11, $12,
				$13, $14, $15, $16, $17,
				$18, $19, $20, $21,
				$22, $23, $24, $25
			)
			RETURNING *
		)
		SELECT` + payrollColumns + `
		FROM p`

	created, err := scanPayroll(q.QueryRow(ctx, query, payrollArgs(p)...))
	if err != nil {
		return nil, mapPayrollWriteError(err, "create")
	}
	return created, nil
}

func (r *payrollRepositoryImpl) getOne(ctx context.Context, where string, args ...interface{}) (*payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + payrollColumns + ` FROM payroll p WHERE ` + where

	p, err := scanPayroll(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, payroll.ErrPayrollNotFound
		}
		return nil, fmt.Errorf("failed to get payroll: %w", err)
	}
	return p, nil
}

func (r *payrollRepositoryImpl) GetByID(ctx context.Context, id int64) (*payroll.Payroll, error) {
	return r.getOne(ctx, "p.id = $1", id)
}

// GetByIDForUpdate must run inside a transaction for the lock to be useful.
func (r *payrollRepositoryImpl) GetByIDForUpdate(ctx context.Context, id int64) (*payroll.Payroll, error) {
	return r.getOne(ctx, "p.id = $1 FOR UPDATE OF p", id)
}

func (r *payrollRepositoryImpl) GetByEmployeePeriod(ctx context.Context, employeeID string, start, end time.Time) (*payroll.Payroll, error) {
	return r.getOne(ctx, "p.employee_id = $1 AND p.pay_period_start = $2 AND p.pay_period_end = $3", employeeID, start, end)
}

func (r *payrollRepositoryImpl) List(ctx context.Context, filter payroll.PayrollFilter) ([]*payroll.Payroll, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("p.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("p.status = $%d", argIdx))
		args = append(args, strings.ToUpper(*filter.Status))
		argIdx++
	}
	if filter.Department != nil && *filter.Department != "" {
		conditions = append(conditions, fmt.Sprintf("p.department ILIKE $%d", argIdx))
		args = append(args, *filter.Department)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		conditions = append(conditions, fmt.Sprintf("p.pay_period_start >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		conditions = append(conditions, fmt.Sprintf("p.pay_period_end <= $%d", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(`(p.employee_id ILIKE $%d OR p.designation ILIKE $%d OR p.department ILIKE $%d
			OR EXISTS (SELECT 1 FROM employees e WHERE e.employee_id = p.employee_id
				AND (e.first_name ILIKE $%d OR e.last_name ILIKE $%d)))`, argIdx, argIdx, argIdx, argIdx, argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM payroll p WHERE %s", whereClause)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payrolls: %w", err)
	}

	validSortColumns := map[string]string{
		"pay_period_start": "p.pay_period_start",
		"pay_period_end":   "p.pay_period_end",
		"net_pay":          "p.net_pay",
		"gross_pay":        "p.gross_pay",
		"status":           "p.status",
		"created_at":       "p.created_at",
	}
	sortColumn, ok := validSortColumns[filter.SortBy]
	if !ok {
		sortColumn = "p.pay_period_start"
	}
	sortOrder := "DESC"
	if strings.ToUpper(filter.SortOrder) == "ASC" {
		sortOrder = "ASC"
	}

	limit, offset := pageOffset(filter.Page, filter.Limit)
	query := fmt.Sprintf(`SELECT %s FROM payroll p WHERE %s ORDER BY %s %s, p.id DESC LIMIT $%d OFFSET $%d`,
		payrollColumns, whereClause, sortColumn, sortOrder, argIdx, argIdx+1)
	args = append(args, limit, offset)

	payrolls, err := r.query(ctx, q, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return payrolls, total, nil
}

func (r *payrollRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, page, limit int) ([]*payroll.Payroll, int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM payroll WHERE employee_id = $1`, employeeID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payrolls: %w", err)
	}

	limit, offset := pageOffset(page, limit)
	query := `SELECT` + payrollColumns + `
		FROM payroll p
		WHERE p.employee_id = $1
		ORDER BY p.pay_period_start DESC, p.id DESC
		LIMIT $2 OFFSET $3`

	payrolls, err := r.query(ctx, q, query, employeeID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return payrolls, total, nil
}

func (r *payrollRepositoryImpl) query(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]*payroll.Payroll, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payrolls: %w", err)
	}
	defer rows.Close()

	payrolls := []*payroll.Payroll{}
	for rows.Next() {
		p, err := scanPayroll(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll: %w", err)
		}
		payrolls = append(payrolls, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return payrolls, nil
}

func (r *payrollRepositoryImpl) Save(ctx context.Context, p *payroll.Payroll) (*payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH p AS (
			UPDATE payroll SET
				employee_id = $1, pay_period_start = $2, pay_period_end = $3, designation = $4, department = $5,
				days_worked = $6, basic_salary = $7, hra = $8, conveyance = $9, meal_allowance = $10,
				telephone_allowance = $11, medical_allowance = $12, personal_pay = $13, bonus = $14,
				overtime = $15, profession_tax = $16, advance = $17,
				total_income = $18, gross_pay = $19, total_deductions = $20, net_pay = $21,
				status = $22, processed_at = $23, paid_at = $24, notes = $25, updated_at = NOW()
			WHERE id = $26
			RETURNING *
		)
		SELECT` + payrollColumns + `
		FROM p`

	args := append(payrollArgs(p), p.ID)
	saved, err := scanPayroll(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, payroll.ErrPayrollNotFound
		}
		return nil, mapPayrollWriteError(err, "save")
	}
	return saved, nil
}

func (r *payrollRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM payroll WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payroll: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrollNotFound
	}
	return nil
}

func (r *payrollRepositoryImpl) DeleteByEmployee(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM payroll WHERE employee_id = $1`, employeeID); err != nil {
		return fmt.Errorf("failed to delete employee payrolls: %w", err)
	}
	return nil
}

func (r *payrollRepositoryImpl) Stats(ctx context.Context) (payroll.PayrollStatsResponse, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'DRAFT'),
			COUNT(*) FILTER (WHERE status = 'PROCESSED'),
			COUNT(*) FILTER (WHERE status = 'PAID'),
			COUNT(*) FILTER (WHERE status = 'CANCELLED'),
			COALESCE(SUM(net_pay) FILTER (WHERE status = 'PAID'), 0),
			COALESCE(AVG(net_pay), 0)
		FROM payroll
	`

	var s payroll.PayrollStatsResponse
	err := q.QueryRow(ctx, query).Scan(
		&s.TotalPayrolls, &s.DraftPayrolls, &s.ProcessedPayrolls, &s.PaidPayrolls, &s.CancelledPayrolls,
		&s.TotalDisbursed, &s.AverageSalary,
	)
	if err != nil {
		return payroll.PayrollStatsResponse{}, fmt.Errorf("failed to get payroll stats: %w", err)
	}

	rows, err := q.Query(ctx, `
		SELECT department, COUNT(*), SUM(net_pay), AVG(net_pay)
		FROM payroll
		WHERE status = 'PAID'
		GROUP BY department
		ORDER BY department
	`)
	if err != nil {
		return payroll.PayrollStatsResponse{}, fmt.Errorf("failed to get department payroll stats: %w", err)
	}
	defer rows.Close()

	s.DepartmentStats = []payroll.DepartmentPayrollStat{}
	for rows.Next() {
		var d payroll.DepartmentPayrollStat
		if err := rows.Scan(&d.Department, &d.Count, &d.Total, &d.Average); err != nil {
			return payroll.PayrollStatsResponse{}, fmt.Errorf("failed to scan department payroll stats: %w", err)
		}
		d.Total = d.Total.Round(2)
		d.Average = d.Average.Round(2)
		s.DepartmentStats = append(s.DepartmentStats, d)
	}
	if err := rows.Err(); err != nil {
		return payroll.PayrollStatsResponse{}, err
	}

	s.TotalDisbursed = s.TotalDisbursed.Round(2)
	s.AverageSalary = s.AverageSalary.Round(2)
	return s, nil
}

func (r *payrollRepositoryImpl) EmployeeStats(ctx context.Context, employeeID string) (payroll.EmployeePayrollStatsResponse, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*), COALESCE(SUM(net_pay), 0), COALESCE(AVG(net_pay), 0), MAX(pay_period_end)
		FROM payroll
		WHERE employee_id = $1
	`

	var (
		s    payroll.EmployeePayrollStatsResponse
		last *time.Time
	)
	if err := q.QueryRow(ctx, query, employeeID).Scan(&s.TotalPayrolls, &s.TotalEarned, &s.AverageSalary, &last); err != nil {
		return payroll.EmployeePayrollStatsResponse{}, fmt.Errorf("failed to get employee payroll stats: %w", err)
	}

	s.EmployeeID = employeeID
	s.TotalEarned = s.TotalEarned.Round(2)
	s.AverageSalary = s.AverageSalary.Round(2)
	if last != nil {
		formatted := last.Format("2006-01-02")
		s.LastPayment = &formatted
	}
	return s, nil
}
