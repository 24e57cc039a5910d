package dashboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/exellar/payroll-backend-go/internal/domain/dashboard"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// recentHireDays is how far back GetDetailedStats counts new joiners.
const recentHireDays = 30

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	db  Pinger
	now func() time.Time
}

func NewDashboardService(repo dashboard.DashboardRepository, db Pinger) dashboard.DashboardService {
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		db:                  db,
		now:                 time.Now,
	}
}

func (s *DashboardServiceImpl) GetStats(ctx context.Context) (*dashboard.StatsResponse, error) {
	summary, err := s.GetSummary(ctx, s.now())
	if err != nil {
		return nil, err
	}
	stats := toStats(summary)
	return &stats, nil
}

// GetDetailedStats runs the summary and breakdown queries concurrently.
func (s *DashboardServiceImpl) GetDetailedStats(ctx context.Context) (*dashboard.DetailedStatsResponse, error) {
	now := s.now()

	var (
		summary     *dashboard.Summary
		recentHires int64
		departments []dashboard.DepartmentStat
		employment  []dashboard.EmploymentStat
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		summary, err = s.GetSummary(gCtx, now)
		return err
	})

	g.Go(func() error {
		var err error
		recentHires, err = s.GetRecentHires(gCtx, now.AddDate(0, 0, -recentHireDays))
		return err
	})

	g.Go(func() error {
		var err error
		departments, err = s.GetDepartmentBreakdown(gCtx)
		return err
	})

	g.Go(func() error {
		var err error
		employment, err = s.GetEmploymentBreakdown(gCtx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if departments == nil {
		departments = []dashboard.DepartmentStat{}
	}
	if employment == nil {
		employment = []dashboard.EmploymentStat{}
	}

	return &dashboard.DetailedStatsResponse{
		StatsResponse:       toStats(summary),
		RecentHires:         recentHires,
		DepartmentStats:     departments,
		EmploymentBreakdown: employment,
	}, nil
}

func (s *DashboardServiceImpl) Health(ctx context.Context) dashboard.HealthResponse {
	resp := dashboard.HealthResponse{
		Status:    "healthy",
		Message:   "Payroll API is running",
		Timestamp: s.now().UTC(),
	}
	if s.db == nil {
		return resp
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := s.db.Ping(pingCtx); err != nil {
		slog.Warn("health check: database unreachable", "error", err)
		resp.Status = "degraded"
		resp.Message = "database unreachable"
	}
	return resp
}

// toStats converts annual CTC to the monthly payroll figure, rounded to whole units.
func toStats(s *dashboard.Summary) dashboard.StatsResponse {
	monthly := s.TotalAnnualCTC.Div(decimal.NewFromInt(12)).Round(0)
	return dashboard.StatsResponse{
		TotalEmployees:  s.ActiveEmployees,
		TotalPayroll:    monthly.IntPart(),
		PendingRequests: s.PendingLeaves,
		LeaveRequests:   s.LeavesThisMonth,
	}
}
