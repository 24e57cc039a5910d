package dashboard

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Summary holds the headline counts computed in a single query.
type Summary struct {
	ActiveEmployees int64
	TotalAnnualCTC  decimal.Decimal
	PendingLeaves   int64
	LeavesThisMonth int64
}

type DashboardRepository interface {
	// GetSummary counts ACTIVE employees and sums their annual CTC. Leave counts
	// cover PENDING requests and requests created in the month containing now.
	GetSummary(ctx context.Context, now time.Time) (*Summary, error)

	// GetRecentHires counts ACTIVE employees who joined on or after since.
	GetRecentHires(ctx context.Context, since time.Time) (int64, error)

	// GetDepartmentBreakdown groups ACTIVE employees by department, largest first.
	GetDepartmentBreakdown(ctx context.Context) ([]DepartmentStat, error)

	GetEmploymentBreakdown(ctx context.Context) ([]EmploymentStat, error)
}
