package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/exellar/payroll-backend-go/internal/domain/dashboard"
	"github.com/exellar/payroll-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

func (r *dashboardRepositoryImpl) GetSummary(ctx context.Context, now time.Time) (*dashboard.Summary, error) {
	q := GetQuerier(ctx, r.db)

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	query := `
		SELECT
			(SELECT COUNT(*) FROM employees WHERE status = 'ACTIVE'),
			(SELECT COALESCE(SUM(annual_ctc), 0) FROM employees WHERE status = 'ACTIVE'),
			(SELECT COUNT(*) FROM leave_requests WHERE status = 'PENDING'),
			(SELECT COUNT(*) FROM leave_requests WHERE created_at >= $1 AND created_at < $2)
	`

	var s dashboard.Summary
	err := q.QueryRow(ctx, query, monthStart, monthEnd).Scan(
		&s.ActiveEmployees, &s.TotalAnnualCTC, &s.PendingLeaves, &s.LeavesThisMonth,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get dashboard summary: %w", err)
	}
	return &s, nil
}

func (r *dashboardRepositoryImpl) GetRecentHires(ctx context.Context, since time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `
		SELECT COUNT(*) FROM employees
		WHERE status = 'ACTIVE' AND date_of_joining >= $1
	`, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count recent hires: %w", err)
	}
	return count, nil
}

func (r *dashboardRepositoryImpl) GetDepartmentBreakdown(ctx context.Context) ([]dashboard.DepartmentStat, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT d.name, COUNT(*), COALESCE(SUM(e.annual_ctc), 0)
		FROM employees e
		LEFT JOIN departments d ON d.id = e.department_id
		WHERE e.status = 'ACTIVE'
		GROUP BY d.name
		ORDER BY COUNT(*) DESC, d.name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get department breakdown: %w", err)
	}
	defer rows.Close()

	stats := []dashboard.DepartmentStat{}
	for rows.Next() {
		var s dashboard.DepartmentStat
		if err := rows.Scan(&s.Department, &s.Count, &s.TotalSalary); err != nil {
			return nil, fmt.Errorf("failed to scan department breakdown: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *dashboardRepositoryImpl) GetEmploymentBreakdown(ctx context.Context) ([]dashboard.EmploymentStat, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT employment_type, COUNT(*)
		FROM employees
		WHERE status = 'ACTIVE'
		GROUP BY employment_type
		ORDER BY employment_type NULLS LAST
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get employment breakdown: %w", err)
	}
	defer rows.Close()

	stats := []dashboard.EmploymentStat{}
	for rows.Next() {
		var s dashboard.EmploymentStat
		if err := rows.Scan(&s.EmploymentType, &s.Count); err != nil {
			return nil, fmt.Errorf("failed to scan employment breakdown: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
