package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/exellar/payroll-backend-go/internal/domain/dashboard"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDashboardRepo struct {
	summary     dashboard.Summary
	hiresSince  time.Time
	departments []dashboard.DepartmentStat
	err         error
}

func (r *fakeDashboardRepo) GetSummary(context.Context, time.Time) (*dashboard.Summary, error) {
	if r.err != nil {
		return nil, r.err
	}
	s := r.summary
	return &s, nil
}

func (r *fakeDashboardRepo) GetRecentHires(_ context.Context, since time.Time) (int64, error) {
	r.hiresSince = since
	return 2, nil
}

func (r *fakeDashboardRepo) GetDepartmentBreakdown(context.Context) ([]dashboard.DepartmentStat, error) {
	return r.departments, nil
}

func (r *fakeDashboardRepo) GetEmploymentBreakdown(context.Context) ([]dashboard.EmploymentStat, error) {
	return nil, nil
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

var fixedNow = time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)

func newTestService(repo *fakeDashboardRepo, db Pinger) *DashboardServiceImpl {
	svc := NewDashboardService(repo, db).(*DashboardServiceImpl)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestDashboardService_GetStats(t *testing.T) {
	repo := &fakeDashboardRepo{summary: dashboard.Summary{
		ActiveEmployees: 3,
		TotalAnnualCTC:  decimal.NewFromInt(1000006),
		PendingLeaves:   4,
		LeavesThisMonth: 1,
	}}

	stats, err := newTestService(repo, nil).GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalEmployees)
	assert.Equal(t, int64(83334), stats.TotalPayroll)
	assert.Equal(t, int64(4), stats.PendingRequests)
	assert.Equal(t, int64(1), stats.LeaveRequests)
}

func TestDashboardService_GetDetailedStats(t *testing.T) {
	eng := "Engineering"
	repo := &fakeDashboardRepo{
		summary:     dashboard.Summary{ActiveEmployees: 2, TotalAnnualCTC: decimal.NewFromInt(240000)},
		departments: []dashboard.DepartmentStat{{Department: &eng, Count: 2, TotalSalary: decimal.NewFromInt(240000)}},
	}

	stats, err := newTestService(repo, nil).GetDetailedStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(20000), stats.TotalPayroll)
	assert.Equal(t, int64(2), stats.RecentHires)
	assert.Equal(t, fixedNow.AddDate(0, 0, -30), repo.hiresSince)
	assert.Len(t, stats.DepartmentStats, 1)
	assert.NotNil(t, stats.EmploymentBreakdown)

	repo.err = errors.New("boom")
	_, err = newTestService(repo, nil).GetDetailedStats(context.Background())
	assert.EqualError(t, err, "boom")
}

func TestDashboardService_Health(t *testing.T) {
	repo := &fakeDashboardRepo{}

	resp := newTestService(repo, fakePinger{}).Health(context.Background())
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, fixedNow, resp.Timestamp)

	resp = newTestService(repo, fakePinger{err: errors.New("down")}).Health(context.Background())
	assert.Equal(t, "degraded", resp.Status)
}
