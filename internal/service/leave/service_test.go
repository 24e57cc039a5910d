package leave

import (
	"context"
	"testing"
	"time"

	"github.com/exellar/payroll-backend-go/internal/domain/employee"
	"github.com/exellar/payroll-backend-go/internal/domain/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTx struct{}

func (fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeLeaveRepo struct {
	leave.LeaveRepository
	rows      map[int64]leave.Leave
	statsYear int
}

func (r *fakeLeaveRepo) Create(_ context.Context, l leave.Leave) (leave.Leave, error) {
	l.ID = int64(len(r.rows) + 1)
	r.rows[l.ID] = l
	return l, nil
}

func (r *fakeLeaveRepo) GetByID(_ context.Context, id int64) (leave.Leave, error) {
	l, ok := r.rows[id]
	if !ok {
		return leave.Leave{}, leave.ErrLeaveNotFound
	}
	return l, nil
}

func (r *fakeLeaveRepo) GetByIDForUpdate(ctx context.Context, id int64) (leave.Leave, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeLeaveRepo) ListActiveInRange(_ context.Context, employeeID string, start, end time.Time) ([]leave.Leave, error) {
	var out []leave.Leave
	for _, l := range r.rows {
		active := l.Status == leave.StatusPending || l.Status == leave.StatusApproved
		if active && l.EmployeeID == employeeID && !l.StartDate.After(end) && !l.EndDate.Before(start) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeLeaveRepo) Update(_ context.Context, l leave.Leave) (leave.Leave, error) {
	r.rows[l.ID] = l
	return l, nil
}

func (r *fakeLeaveRepo) Stats(_ context.Context, year int) (leave.LeaveStatsResponse, error) {
	r.statsYear = year
	return leave.LeaveStatsResponse{}, nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
}

func (fakeEmployeeRepo) Exists(_ context.Context, id string) (bool, error) {
	return id == "EMP001" || id == "MGR001", nil
}

func newTestService() (*LeaveServiceImpl, *fakeLeaveRepo, time.Time) {
	repo := &fakeLeaveRepo{rows: map[int64]leave.Leave{}}
	now := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	svc := NewLeaveService(fakeTx{}, repo, fakeEmployeeRepo{}).(*LeaveServiceImpl)
	svc.now = func() time.Time { return now }
	return svc, repo, now
}

func request(start, end string) leave.CreateLeaveRequest {
	return leave.CreateLeaveRequest{
		EmployeeID: "EMP001",
		LeaveType:  "CASUAL",
		StartDate:  start,
		EndDate:    end,
		Reason:     "family event",
	}
}

func TestLeaveService_Create(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	resp, err := svc.Create(ctx, request("2026-05-10", "2026-05-12"))
	require.NoError(t, err)
	assert.Equal(t, "PENDING", resp.Status)
	assert.Equal(t, 3, resp.Duration)

	t.Run("overlap", func(t *testing.T) {
		_, err := svc.Create(ctx, request("2026-05-12", "2026-05-14"))
		assert.ErrorIs(t, err, leave.ErrOverlappingLeave)
	})

	t.Run("adjacent is fine", func(t *testing.T) {
		_, err := svc.Create(ctx, request("2026-05-13", "2026-05-13"))
		assert.NoError(t, err)
	})

	t.Run("unknown employee", func(t *testing.T) {
		req := request("2026-06-01", "2026-06-02")
		req.EmployeeID = "EMP404"
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, leave.ErrEmployeeNotFound)
	})
}

func TestLeaveService_ApproveRejectCancel(t *testing.T) {
	svc, repo, now := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, request("2026-05-10", "2026-05-12"))
	require.NoError(t, err)

	_, err = svc.Approve(ctx, created.ID, "")
	assert.ErrorIs(t, err, leave.ErrApproverNotLinked)

	_, err = svc.Approve(ctx, created.ID, "EMP001")
	assert.ErrorIs(t, err, leave.ErrCannotApproveOwnLeave)

	approved, err := svc.Approve(ctx, created.ID, "MGR001")
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, "MGR001", *approved.ApprovedBy)
	require.NotNil(t, repo.rows[created.ID].ApprovedAt)
	assert.True(t, repo.rows[created.ID].ApprovedAt.Equal(now))

	_, err = svc.Reject(ctx, created.ID, "MGR001")
	assert.ErrorIs(t, err, leave.ErrInvalidTransition)

	cancelled, err := svc.Cancel(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", cancelled.Status)

	_, err = svc.Cancel(ctx, created.ID)
	assert.ErrorIs(t, err, leave.ErrInvalidTransition)

	reason := "changed"
	_, err = svc.Update(ctx, leave.UpdateLeaveRequest{ID: created.ID, Reason: &reason})
	assert.ErrorIs(t, err, leave.ErrLeaveNotPending)
}

func TestLeaveService_UpdateIgnoresItselfForOverlap(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, request("2026-05-10", "2026-05-12"))
	require.NoError(t, err)

	end := "2026-05-13"
	updated, err := svc.Update(ctx, leave.UpdateLeaveRequest{ID: created.ID, EndDate: &end})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Duration)
}

func TestLeaveService_StatsUsesCurrentYear(t *testing.T) {
	svc, repo, _ := newTestService()

	_, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2026, repo.statsYear)
}
