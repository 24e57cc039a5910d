package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/exellar/payroll-backend-go/internal/domain/employee"
	"github.com/exellar/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	e.employee_id, e.first_name, e.middle_name, e.last_name, e.work_email, e.personal_email,
	e.date_of_joining, e.date_of_birth, e.age, e.mobile_number, e.phone_number, e.address, e.gender,
	e.work_location, e.designation, e.status, e.department_id, e.employment_type, e.date_of_leaving,
	e.basic_salary, e.annual_ctc, e.bank_name, e.account_number, e.ifsc_code, e.pan_number, e.aadhar_number,
	e.created_at, e.updated_at,
	(SELECT d.name FROM departments d WHERE d.id = e.department_id) AS department_name`

func scanEmployee(row rowScanner) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.EmployeeID, &e.FirstName, &e.MiddleName, &e.LastName, &e.WorkEmail, &e.PersonalEmail,
		&e.DateOfJoining, &e.DateOfBirth, &e.Age, &e.MobileNumber, &e.PhoneNumber, &e.Address, &e.Gender,
		&e.WorkLocation, &e.Designation, &e.Status, &e.DepartmentID, &e.EmploymentType, &e.DateOfLeaving,
		&e.BasicSalary, &e.AnnualCTC, &e.BankName, &e.AccountNumber, &e.IFSCCode, &e.PANNumber, &e.AadharNumber,
		&e.CreatedAt, &e.UpdatedAt,
		&e.DepartmentName,
	)
	return e, err
}

func mapEmployeeWriteError(err error, action string) error {
	switch {
	case isUniqueViolation(err, "employees_pkey"):
		return employee.ErrEmployeeIDExists
	case isUniqueViolation(err, "uk_employee_work_email"):
		return employee.ErrEmailExists
	case isForeignKeyViolation(err):
		return employee.ErrDepartmentNotFound
	}
	return fmt.Errorf("failed to %s employee: %w", action, err)
}

func (r *employeeRepositoryImpl) get(ctx context.Context, where string, arg interface{}) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	e, err := scanEmployee(q.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees e WHERE `+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return e, nil
}

func (r *employeeRepositoryImpl) GetByID(ctx context.Context, employeeID string) (employee.Employee, error) {
	return r.get(ctx, "e.employee_id = $1", employeeID)
}

func (r *employeeRepositoryImpl) GetByWorkEmail(ctx context.Context, email string) (employee.Employee, error) {
	return r.get(ctx, "LOWER(e.work_email) = LOWER($1)", strings.TrimSpace(email))
}

func (r *employeeRepositoryImpl) Exists(ctx context.Context, employeeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM employees WHERE employee_id = $1)`, employeeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check employee: %w", err)
	}
	return exists, nil
}

func employeeArgs(e employee.Employee) []interface{} {
	return []interface{}{
		e.EmployeeID, e.FirstName, e.MiddleName, e.LastName, e.WorkEmail, e.PersonalEmail,
		e.DateOfJoining, e.DateOfBirth, e.Age, e.MobileNumber, e.PhoneNumber, e.Address, string(e.Gender),
		e.WorkLocation, e.Designation, string(e.Status), e.DepartmentID, e.EmploymentType, e.DateOfLeaving,
		e.BasicSalary, e.AnnualCTC, e.BankName, e.AccountNumber, e.IFSCCode, e.PANNumber, e.AadharNumber,
	}
}

func (r *employeeRepositoryImpl) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH e AS (
			INSERT INTO employees (
				employee_id, first_name, middle_name, last_name, work_email, personal_email,
				date_of_joining, date_of_birth, age, mobile_number, phone_number, address, gender,
				work_location, designation, status, department_id, employment_type, date_of_leaving,
				basic_salary, annual_ctc, bank_name, account_number, ifsc_code, pan_number, aadhar_number
			) VALUES (
				$1, $2, $3, $4, $5, $6,
				$7, $8, $9, $10, $11, $12, $13,
				$14, $15, $16, $17, $18, $19,
				$20, $21, $22, $23, $24, $25, $26
			)
			RETURNING *
		)
		SELECT` + employeeColumns + `
		FROM e`

	created, err := scanEmployee(q.QueryRow(ctx, query, employeeArgs(e)...))
	if err != nil {
		return employee.Employee{}, mapEmployeeWriteError(err, "create")
	}
	return created, nil
}

// Update writes every column of e; callers merge partial changes first.
func (r *employeeRepositoryImpl) Update(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH e AS (
			UPDATE employees SET
				first_name = $2, middle_name = $3, last_name = $4, work_email = $5, personal_email = $6,
				date_of_joining = $7, date_of_birth = $8, age = $9, mobile_number = $10, phone_number = $11,
				address = $12, gender = $13, work_location = $14, designation = $15, status = $16,
				department_id = $17, employment_type = $18, date_of_leaving = $19, basic_salary = $20,
				annual_ctc = $21, bank_name = $22, account_number = $23, ifsc_code = $24, pan_number = $25,
				aadhar_number = $26, updated_at = NOW()
			WHERE employee_id = $1
			RETURNING *
		)
		SELECT` + employeeColumns + `
		FROM e`

	updated, err := scanEmployee(q.QueryRow(ctx, query, employeeArgs(e)...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, mapEmployeeWriteError(err, "update")
	}
	return updated, nil
}

func (r *employeeRepositoryImpl) Delete(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE employee_id = $1`, employeeID)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(e.employee_id ILIKE $%d OR e.first_name ILIKE $%d OR e.last_name ILIKE $%d OR e.work_email ILIKE $%d)",
			argIdx, argIdx, argIdx, argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}
	if filter.DepartmentID != nil {
		conditions = append(conditions, fmt.Sprintf("e.department_id = $%d", argIdx))
		args = append(args, *filter.DepartmentID)
		argIdx++
	}
	if filter.Designation != nil && *filter.Designation != "" {
		conditions = append(conditions, fmt.Sprintf("e.designation ILIKE $%d", argIdx))
		args = append(args, *filter.Designation)
		argIdx++
	}
	if filter.WorkLocation != nil && *filter.WorkLocation != "" {
		conditions = append(conditions, fmt.Sprintf("e.work_location ILIKE $%d", argIdx))
		args = append(args, *filter.WorkLocation)
		argIdx++
	}
	if filter.EmploymentType != nil && *filter.EmploymentType != "" {
		conditions = append(conditions, fmt.Sprintf("e.employment_type = $%d", argIdx))
		args = append(args, strings.ToUpper(*filter.EmploymentType))
		argIdx++
	}
	if filter.Gender != nil && *filter.Gender != "" {
		conditions = append(conditions, fmt.Sprintf("e.gender = $%d", argIdx))
		args = append(args, strings.ToUpper(*filter.Gender))
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("e.status = $%d", argIdx))
		args = append(args, strings.ToUpper(*filter.Status))
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int64
	if err := q.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM employees e WHERE %s", whereClause), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	validSortColumns := map[string]string{
		"employee_id":     "e.employee_id",
		"first_name":      "e.first_name",
		"last_name":       "e.last_name",
		"date_of_joining": "e.date_of_joining",
		"annual_ctc":      "e.annual_ctc",
		"created_at":      "e.created_at",
	}
	sortColumn, ok := validSortColumns[filter.SortBy]
	if !ok {
		sortColumn = "e.employee_id"
	}
	sortOrder := "ASC"
	if strings.ToUpper(filter.SortOrder) == "DESC" {
		sortOrder = "DESC"
	}

	limit, offset := pageOffset(filter.Page, filter.Limit)
	query := fmt.Sprintf(`SELECT %s FROM employees e WHERE %s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		employeeColumns, whereClause, sortColumn, sortOrder, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := []employee.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

func (r *employeeRepositoryImpl) Stats(ctx context.Context) (employee.EmployeeStatsResponse, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'ACTIVE'),
			COUNT(*) FILTER (WHERE status = 'INACTIVE'),
			COUNT(*) FILTER (WHERE status = 'TERMINATED'),
			(SELECT COUNT(*) FROM departments),
			(SELECT COUNT(*) FROM designations),
			(SELECT COUNT(*) FROM work_locations),
			COALESCE(AVG(annual_ctc) FILTER (WHERE status = 'ACTIVE'), 0)
		FROM employees
	`

	var s employee.EmployeeStatsResponse
	err := q.QueryRow(ctx, query).Scan(
		&s.TotalEmployees, &s.ActiveEmployees, &s.InactiveEmployees, &s.TerminatedEmployees,
		&s.TotalDepartments, &s.TotalDesignations, &s.TotalWorkLocations, &s.AverageCTC,
	)
	if err != nil {
		return employee.EmployeeStatsResponse{}, fmt.Errorf("failed to get employee stats: %w", err)
	}
	s.AverageCTC = s.AverageCTC.Round(2)

	if s.EmploymentBreakdown, err = r.breakdown(ctx, q, "COALESCE(employment_type, 'UNSPECIFIED')"); err != nil {
		return employee.EmployeeStatsResponse{}, err
	}
	if s.GenderBreakdown, err = r.breakdown(ctx, q, "gender"); err != nil {
		return employee.EmployeeStatsResponse{}, err
	}
	return s, nil
}

// breakdown counts active employees grouped by expr, which must be a trusted column expression.
func (r *employeeRepositoryImpl) breakdown(ctx context.Context, q database.Querier, expr string) ([]employee.LabelCount, error) {
	rows, err := q.Query(ctx, fmt.Sprintf(`
		SELECT %[1]s AS label, COUNT(*)
		FROM employees
		WHERE status = 'ACTIVE'
		GROUP BY %[1]s
		ORDER BY label
	`, expr))
	if err != nil {
		return nil, fmt.Errorf("failed to get employee breakdown: %w", err)
	}
	defer rows.Close()

	counts := []employee.LabelCount{}
	for rows.Next() {
		var c employee.LabelCount
		if err := rows.Scan(&c.Label, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan employee breakdown: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
