package payroll

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/exellar/payroll-backend-go/internal/domain/employee"
	"github.com/exellar/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTx struct{ calls int }

func (f *fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

// fakePayrollRepo stores snapshots so callers never share a *Payroll with the store.
type fakePayrollRepo struct {
	nextID int64
	rows   map[int64]payroll.Snapshot
	names  map[string]string
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{rows: map[int64]payroll.Snapshot{}, names: map[string]string{}}
}

func (r *fakePayrollRepo) load(s payroll.Snapshot) *payroll.Payroll {
	if name, ok := r.names[s.EmployeeID]; ok {
		s.EmployeeName = &name
	}
	return payroll.Load(s)
}

func (r *fakePayrollRepo) Create(_ context.Context, p *payroll.Payroll) (*payroll.Payroll, error) {
	for _, s := range r.rows {
		if s.EmployeeID == p.EmployeeID && s.PayPeriodStart.Equal(p.PayPeriodStart) && s.PayPeriodEnd.Equal(p.PayPeriodEnd) {
			return nil, payroll.ErrPayrollAlreadyExists
		}
	}
	r.nextID++
	s := p.Snapshot()
	s.ID = r.nextID
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	r.rows[s.ID] = s
	return r.load(s), nil
}

func (r *fakePayrollRepo) GetByID(_ context.Context, id int64) (*payroll.Payroll, error) {
	s, ok := r.rows[id]
	if !ok {
		return nil, payroll.ErrPayrollNotFound
	}
	return r.load(s), nil
}

func (r *fakePayrollRepo) GetByIDForUpdate(ctx context.Context, id int64) (*payroll.Payroll, error) {
	return r.GetByID(ctx, id)
}

func (r *fakePayrollRepo) GetByEmployeePeriod(_ context.Context, employeeID string, start, end time.Time) (*payroll.Payroll, error) {
	for _, s := range r.rows {
		if s.EmployeeID == employeeID && s.PayPeriodStart.Equal(start) && s.PayPeriodEnd.Equal(end) {
			return r.load(s), nil
		}
	}
	return nil, payroll.ErrPayrollNotFound
}

func (r *fakePayrollRepo) List(_ context.Context, _ payroll.PayrollFilter) ([]*payroll.Payroll, int64, error) {
	var out []*payroll.Payroll
	for _, s := range r.rows {
		out = append(out, r.load(s))
	}
	return out, int64(len(out)), nil
}

func (r *fakePayrollRepo) ListByEmployee(_ context.Context, employeeID string, _, _ int) ([]*payroll.Payroll, int64, error) {
	var out []*payroll.Payroll
	for _, s := range r.rows {
		if s.EmployeeID == employeeID {
			out = append(out, r.load(s))
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakePayrollRepo) Save(_ context.Context, p *payroll.Payroll) (*payroll.Payroll, error) {
	if _, ok := r.rows[p.ID]; !ok {
		return nil, payroll.ErrPayrollNotFound
	}
	s := p.Snapshot()
	r.rows[p.ID] = s
	return r.load(s), nil
}

func (r *fakePayrollRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.rows[id]; !ok {
		return payroll.ErrPayrollNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *fakePayrollRepo) DeleteByEmployee(_ context.Context, employeeID string) error {
	for id, s := range r.rows {
		if s.EmployeeID == employeeID {
			delete(r.rows, id)
		}
	}
	return nil
}

func (r *fakePayrollRepo) Stats(context.Context) (payroll.PayrollStatsResponse, error) {
	return payroll.PayrollStatsResponse{TotalPayrolls: int64(len(r.rows))}, nil
}

func (r *fakePayrollRepo) EmployeeStats(_ context.Context, employeeID string) (payroll.EmployeePayrollStatsResponse, error) {
	return payroll.EmployeePayrollStatsResponse{EmployeeID: employeeID}, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *fakeEmployeeRepo) GetByWorkEmail(_ context.Context, email string) (employee.Employee, error) {
	for _, e := range r.employees {
		if e.WorkEmail == email {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) Exists(_ context.Context, id string) (bool, error) {
	_, ok := r.employees[id]
	return ok, nil
}

func (r *fakeEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	r.employees[e.EmployeeID] = e
	return e, nil
}

func (r *fakeEmployeeRepo) Update(_ context.Context, e employee.Employee) (employee.Employee, error) {
	r.employees[e.EmployeeID] = e
	return e, nil
}

func (r *fakeEmployeeRepo) Delete(_ context.Context, id string) error {
	delete(r.employees, id)
	return nil
}

func (r *fakeEmployeeRepo) List(context.Context, employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

func (r *fakeEmployeeRepo) Stats(context.Context) (employee.EmployeeStatsResponse, error) {
	return employee.EmployeeStatsResponse{}, nil
}

type sentNotice struct {
	to, name, period, netPay string
}

type fakeMailer struct {
	notices []sentNotice
	err     error
}

func (m *fakeMailer) SendLoginNotification(string, string, string, time.Time) error { return nil }

func (m *fakeMailer) SendPayslipNotice(to, employeeName, period, netPay string) error {
	m.notices = append(m.notices, sentNotice{to, employeeName, period, netPay})
	return m.err
}

type fixture struct {
	svc    *PayrollServiceImpl
	repo   *fakePayrollRepo
	mailer *fakeMailer
	now    time.Time
}

func newFixture() *fixture {
	dept := "Engineering"
	repo := newFakePayrollRepo()
	repo.names["EMP001"] = "Asha Rao"
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"EMP001": {
			EmployeeID:     "EMP001",
			FirstName:      "Asha",
			LastName:       "Rao",
			WorkEmail:      "asha@example.com",
			Designation:    "Engineer",
			DepartmentName: &dept,
		},
	}}
	mailer := &fakeMailer{}
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	svc := NewPayrollService(&fakeTx{}, repo, employees, mailer, "Exellar").(*PayrollServiceImpl)
	svc.now = func() time.Time { return now }
	return &fixture{svc: svc, repo: repo, mailer: mailer, now: now}
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func (f *fixture) create(t *testing.T) payroll.PayrollResponse {
	t.Helper()
	resp, err := f.svc.Create(context.Background(), payroll.CreatePayrollRequest{
		EmployeeID:     "EMP001",
		PayPeriodStart: "2026-01-01",
		PayPeriodEnd:   "2026-01-31",
		AmountFields: payroll.AmountFields{
			BasicSalary:   dec(30000),
			HRA:           dec(6000),
			ProfessionTax: dec(200),
		},
	})
	require.NoError(t, err)
	return resp
}

func TestPayrollService_Create(t *testing.T) {
	f := newFixture()
	resp := f.create(t)

	assert.Equal(t, "DRAFT", resp.Status)
	assert.True(t, resp.TotalIncome.Equal(dec(36000)))
	assert.True(t, resp.GrossPay.Equal(dec(36000)))
	assert.True(t, resp.TotalDeductions.Equal(dec(200)))
	assert.True(t, resp.NetPay.Equal(dec(35800)))
	assert.Equal(t, "Engineer", resp.Designation)
	assert.Equal(t, "Engineering", resp.Department)
	assert.Equal(t, payroll.DefaultDaysWorked, resp.DaysWorked)
	assert.Equal(t, "Asha Rao", resp.EmployeeName)

	t.Run("duplicate period", func(t *testing.T) {
		_, err := f.svc.Create(context.Background(), payroll.CreatePayrollRequest{
			EmployeeID:     "EMP001",
			PayPeriodStart: "2026-01-01",
			PayPeriodEnd:   "2026-01-31",
		})
		assert.ErrorIs(t, err, payroll.ErrPayrollAlreadyExists)
	})

	t.Run("unknown employee", func(t *testing.T) {
		_, err := f.svc.Create(context.Background(), payroll.CreatePayrollRequest{
			EmployeeID:     "EMP404",
			PayPeriodStart: "2026-01-01",
			PayPeriodEnd:   "2026-01-31",
		})
		assert.ErrorIs(t, err, payroll.ErrEmployeeNotFound)
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := f.svc.Create(context.Background(), payroll.CreatePayrollRequest{
			EmployeeID:     "EMP001",
			PayPeriodStart: "2026-03-31",
			PayPeriodEnd:   "2026-03-01",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "pay_period_end")
	})
}

func TestPayrollService_Lifecycle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.create(t).ID

	processed, err := f.svc.Process(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "PROCESSED", processed.Status)
	require.NotNil(t, processed.ProcessedAt)
	assert.Equal(t, f.now.Format(time.RFC3339), *processed.ProcessedAt)

	_, err = f.svc.Process(ctx, id)
	var transitionErr *payroll.InvalidTransitionError
	require.True(t, errors.As(err, &transitionErr))
	assert.Equal(t, payroll.StatusProcessed, transitionErr.From)
	assert.Equal(t, payroll.OpProcess, transitionErr.Op)

	paid, err := f.svc.MarkPaid(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "PAID", paid.Status)
	require.NotNil(t, paid.PaidAt)
	require.Len(t, f.mailer.notices, 1)
	assert.Equal(t, sentNotice{"asha@example.com", "Asha Rao", "2026-01-01 to 2026-01-31", "35800.00"}, f.mailer.notices[0])

	t.Run("paid is immutable", func(t *testing.T) {
		_, err := f.svc.Recalculate(ctx, id)
		assert.ErrorIs(t, err, payroll.ErrInvalidTransition)

		_, err = f.svc.Cancel(ctx, id)
		assert.ErrorIs(t, err, payroll.ErrInvalidTransition)

		bonus := dec(100)
		_, err = f.svc.Update(ctx, payroll.UpdatePayrollRequest{ID: id, Bonus: &bonus})
		assert.ErrorIs(t, err, payroll.ErrInvalidTransition)

		assert.ErrorIs(t, f.svc.Delete(ctx, id), payroll.ErrInvalidTransition)

		stored, err := f.svc.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "PAID", stored.Status)
		assert.True(t, stored.NetPay.Equal(dec(35800)))
	})
}

func TestPayrollService_UpdateRecomputes(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.create(t).ID

	bonus, advance := dec(1000), dec(500)
	resp, err := f.svc.Update(ctx, payroll.UpdatePayrollRequest{ID: id, Bonus: &bonus, Advance: &advance})
	require.NoError(t, err)
	assert.True(t, resp.TotalIncome.Equal(dec(37000)))
	assert.True(t, resp.TotalDeductions.Equal(dec(700)))
	assert.True(t, resp.NetPay.Equal(dec(36300)))

	t.Run("period must stay ordered", func(t *testing.T) {
		end := "2025-12-01"
		_, err := f.svc.Update(ctx, payroll.UpdatePayrollRequest{ID: id, PayPeriodEnd: &end})
		assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)
	})
}

func TestPayrollService_NegativeNetPayPassesThrough(t *testing.T) {
	f := newFixture()
	resp, err := f.svc.Create(context.Background(), payroll.CreatePayrollRequest{
		EmployeeID:     "EMP001",
		PayPeriodStart: "2026-04-01",
		PayPeriodEnd:   "2026-04-30",
		AmountFields: payroll.AmountFields{
			BasicSalary: dec(1000),
			Advance:     dec(5000),
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.NetPay.Equal(dec(-4000)))
}

func TestPayrollService_CancelAndDelete(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.create(t).ID

	cancelled, err := f.svc.Cancel(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", cancelled.Status)

	_, err = f.svc.Process(ctx, id)
	assert.ErrorIs(t, err, payroll.ErrInvalidTransition)

	require.NoError(t, f.svc.Delete(ctx, id))
	_, err = f.svc.Get(ctx, id)
	assert.ErrorIs(t, err, payroll.ErrPayrollNotFound)
}

func TestPayrollService_Payslip(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.create(t).ID

	_, _, err := f.svc.Payslip(ctx, id)
	assert.ErrorIs(t, err, payroll.ErrInvalidTransition)

	_, err = f.svc.Process(ctx, id)
	require.NoError(t, err)

	pdf, name, err := f.svc.Payslip(ctx, id)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
	assert.Equal(t, "payslip_EMP001_2026-01-01.pdf", name)
}

func TestPayrollService_EmployeeStats(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.EmployeeStats(ctx, "  ")
	assert.ErrorIs(t, err, payroll.ErrEmployeeIDRequired)

	_, err = f.svc.EmployeeStats(ctx, "EMP404")
	assert.ErrorIs(t, err, payroll.ErrEmployeeNotFound)

	stats, err := f.svc.EmployeeStats(ctx, "EMP001")
	require.NoError(t, err)
	assert.Equal(t, "EMP001", stats.EmployeeID)
}
