package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/exellar/payroll-backend-go/internal/domain/leave"
	"github.com/exellar/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepositoryImpl{db: db}
}

const leaveColumns = `
	l.id, l.employee_id, l.leave_type, l.start_date, l.end_date, l.reason, l.status,
	l.approved_by, l.approved_at, l.created_at, l.updated_at,
	(SELECT CONCAT_WS(' ', e.first_name, e.last_name) FROM employees e WHERE e.employee_id = l.employee_id),
	(SELECT CONCAT_WS(' ', a.first_name, a.last_name) FROM employees a WHERE a.employee_id = l.approved_by)`

func scanLeave(row rowScanner) (leave.Leave, error) {
	var l leave.Leave
	err := row.Scan(
		&l.ID, &l.EmployeeID, &l.LeaveType, &l.StartDate, &l.EndDate, &l.Reason, &l.Status,
		&l.ApprovedBy, &l.ApprovedAt, &l.CreatedAt, &l.UpdatedAt,
		&l.EmployeeName, &l.ApprovedByName,
	)
	return l, err
}

func (r *leaveRepositoryImpl) Create(ctx context.Context, l leave.Leave) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH l AS (
			INSERT INTO leave_requests (employee_id, leave_type, start_date, end_date, reason, status)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING *
		)
		SELECT` + leaveColumns + ` FROM l`

	created, err := scanLeave(q.QueryRow(ctx, query,
		l.EmployeeID, string(l.LeaveType), l.StartDate, l.EndDate, l.Reason, string(l.Status),
	))
	if err != nil {
		if isForeignKeyViolation(err) {
			return leave.Leave{}, leave.ErrEmployeeNotFound
		}
		return leave.Leave{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return created, nil
}

func (r *leaveRepositoryImpl) getOne(ctx context.Context, where string, id int64) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	l, err := scanLeave(q.QueryRow(ctx, `SELECT`+leaveColumns+` FROM leave_requests l WHERE `+where, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Leave{}, leave.ErrLeaveNotFound
		}
		return leave.Leave{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return l, nil
}

func (r *leaveRepositoryImpl) GetByID(ctx context.Context, id int64) (leave.Leave, error) {
	return r.getOne(ctx, "l.id = $1", id)
}

func (r *leaveRepositoryImpl) GetByIDForUpdate(ctx context.Context, id int64) (leave.Leave, error) {
	return r.getOne(ctx, "l.id = $1 FOR UPDATE OF l", id)
}

func (r *leaveRepositoryImpl) List(ctx context.Context, filter leave.LeaveFilter) ([]leave.Leave, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("l.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.LeaveType != nil && *filter.LeaveType != "" {
		conditions = append(conditions, fmt.Sprintf("l.leave_type = $%d", argIdx))
		args = append(args, strings.ToUpper(*filter.LeaveType))
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("l.status = $%d", argIdx))
		args = append(args, strings.ToUpper(*filter.Status))
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		conditions = append(conditions, fmt.Sprintf("l.start_date >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		conditions = append(conditions, fmt.Sprintf("l.end_date <= $%d", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(`(l.employee_id ILIKE $%d OR l.reason ILIKE $%d
			OR EXISTS (SELECT 1 FROM employees e WHERE e.employee_id = l.employee_id
				AND (e.first_name ILIKE $%d OR e.last_name ILIKE $%d)))`, argIdx, argIdx, argIdx, argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int64
	if err := q.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM leave_requests l WHERE %s", whereClause), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	validSortColumns := map[string]string{
		"start_date": "l.start_date",
		"end_date":   "l.end_date",
		"status":     "l.status",
		"created_at": "l.created_at",
	}
	sortColumn, ok := validSortColumns[filter.SortBy]
	if !ok {
		sortColumn = "l.created_at"
	}
	sortOrder := "DESC"
	if strings.ToUpper(filter.SortOrder) == "ASC" {
		sortOrder = "ASC"
	}

	limit, offset := pageOffset(filter.Page, filter.Limit)
	query := fmt.Sprintf(`SELECT %s FROM leave_requests l WHERE %s ORDER BY %s %s, l.id DESC LIMIT $%d OFFSET $%d`,
		leaveColumns, whereClause, sortColumn, sortOrder, argIdx, argIdx+1)
	args = append(args, limit, offset)

	leaves, err := r.query(ctx, q, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return leaves, total, nil
}

func (r *leaveRepositoryImpl) ListActiveInRange(ctx context.Context, employeeID string, start, end time.Time) ([]leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + leaveColumns + `
		FROM leave_requests l
		WHERE l.employee_id = $1
		  AND l.status IN ('PENDING', 'APPROVED')
		  AND l.start_date <= $3
		  AND l.end_date >= $2
		ORDER BY l.start_date`

	return r.query(ctx, q, query, employeeID, start, end)
}

func (r *leaveRepositoryImpl) query(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]leave.Leave, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	leaves := []leave.Leave{}
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		leaves = append(leaves, l)
	}
	return leaves, rows.Err()
}

func (r *leaveRepositoryImpl) Update(ctx context.Context, l leave.Leave) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH l AS (
			UPDATE leave_requests SET
				leave_type = $2, start_date = $3, end_date = $4, reason = $5, status = $6,
				approved_by = $7, approved_at = $8, updated_at = NOW()
			WHERE id = $1
			RETURNING *
		)
		SELECT` + leaveColumns + ` FROM l`

	updated, err := scanLeave(q.QueryRow(ctx, query,
		l.ID, string(l.LeaveType), l.StartDate, l.EndDate, l.Reason, string(l.Status), l.ApprovedBy, l.ApprovedAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Leave{}, leave.ErrLeaveNotFound
		}
		return leave.Leave{}, fmt.Errorf("failed to update leave request: %w", err)
	}
	return updated, nil
}

func (r *leaveRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM leave_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete leave request: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return leave.ErrLeaveNotFound
	}
	return nil
}

// DeleteByEmployee removes requests filed by the employee. Approvals they made are cleared by ON DELETE SET NULL.
func (r *leaveRepositoryImpl) DeleteByEmployee(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM leave_requests WHERE employee_id = $1`, employeeID); err != nil {
		return fmt.Errorf("failed to delete employee leave requests: %w", err)
	}
	return nil
}

func (r *leaveRepositoryImpl) Stats(ctx context.Context, year int) (leave.LeaveStatsResponse, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'PENDING'),
			COUNT(*) FILTER (WHERE status = 'APPROVED'),
			COUNT(*) FILTER (WHERE status = 'REJECTED'),
			COUNT(*) FILTER (WHERE status = 'CANCELLED')
		FROM leave_requests
	`

	var s leave.LeaveStatsResponse
	if err := q.QueryRow(ctx, query).Scan(
		&s.TotalLeaves, &s.PendingLeaves, &s.ApprovedLeaves, &s.RejectedLeaves, &s.CancelledLeaves,
	); err != nil {
		return leave.LeaveStatsResponse{}, fmt.Errorf("failed to get leave stats: %w", err)
	}

	typeRows, err := q.Query(ctx, `SELECT leave_type, COUNT(*) FROM leave_requests GROUP BY leave_type ORDER BY leave_type`)
	if err != nil {
		return leave.LeaveStatsResponse{}, fmt.Errorf("failed to get leave type stats: %w", err)
	}
	s.LeaveTypes = []leave.TypeCount{}
	for typeRows.Next() {
		var t leave.TypeCount
		if err := typeRows.Scan(&t.LeaveType, &t.Count); err != nil {
			typeRows.Close()
			return leave.LeaveStatsResponse{}, fmt.Errorf("failed to scan leave type stats: %w", err)
		}
		s.LeaveTypes = append(s.LeaveTypes, t)
	}
	typeRows.Close()
	if err := typeRows.Err(); err != nil {
		return leave.LeaveStatsResponse{}, err
	}

	monthRows, err := q.Query(ctx, `
		SELECT EXTRACT(MONTH FROM start_date)::int AS month, COUNT(*)
		FROM leave_requests
		WHERE EXTRACT(YEAR FROM start_date) = $1
		GROUP BY month
		ORDER BY month
	`, year)
	if err != nil {
		return leave.LeaveStatsResponse{}, fmt.Errorf("failed to get monthly leave stats: %w", err)
	}
	defer monthRows.Close()

	s.MonthlyTrends = []leave.MonthCount{}
	for monthRows.Next() {
		var m leave.MonthCount
		if err := monthRows.Scan(&m.Month, &m.Count); err != nil {
			return leave.LeaveStatsResponse{}, fmt.Errorf("failed to scan monthly leave stats: %w", err)
		}
		s.MonthlyTrends = append(s.MonthlyTrends, m)
	}
	return s, monthRows.Err()
}
