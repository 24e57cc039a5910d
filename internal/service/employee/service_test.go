package employee

import (
	"context"
	"testing"
	"time"

	"github.com/exellar/payroll-backend-go/internal/domain/employee"
	"github.com/exellar/payroll-backend-go/internal/domain/leave"
	"github.com/exellar/payroll-backend-go/internal/domain/payroll"
	"github.com/exellar/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTx struct{ calls int }

func (f *fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	rows  map[string]employee.Employee
	calls *[]string
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	e, ok := r.rows[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *fakeEmployeeRepo) Exists(_ context.Context, id string) (bool, error) {
	_, ok := r.rows[id]
	return ok, nil
}

func (r *fakeEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	if _, ok := r.rows[e.EmployeeID]; ok {
		return employee.Employee{}, employee.ErrEmployeeIDExists
	}
	r.rows[e.EmployeeID] = e
	return e, nil
}

func (r *fakeEmployeeRepo) Update(_ context.Context, e employee.Employee) (employee.Employee, error) {
	r.rows[e.EmployeeID] = e
	return e, nil
}

func (r *fakeEmployeeRepo) Delete(_ context.Context, id string) error {
	*r.calls = append(*r.calls, "employee")
	delete(r.rows, id)
	return nil
}

type fakePayrollRepo struct {
	payroll.PayrollRepository
	calls   *[]string
	history []*payroll.Payroll
}

func (r *fakePayrollRepo) DeleteByEmployee(context.Context, string) error {
	*r.calls = append(*r.calls, "payroll")
	return nil
}

func (r *fakePayrollRepo) ListByEmployee(_ context.Context, _ string, _, _ int) ([]*payroll.Payroll, int64, error) {
	return r.history, int64(len(r.history)), nil
}

type fakeLeaveRepo struct {
	leave.LeaveRepository
	calls *[]string
}

func (r *fakeLeaveRepo) DeleteByEmployee(context.Context, string) error {
	*r.calls = append(*r.calls, "leave")
	return nil
}

type fixture struct {
	svc       employee.EmployeeService
	tx        *fakeTx
	employees *fakeEmployeeRepo
	payrolls  *fakePayrollRepo
	calls     *[]string
}

func newFixture() *fixture {
	calls := &[]string{}
	f := &fixture{
		tx:        &fakeTx{},
		employees: &fakeEmployeeRepo{rows: map[string]employee.Employee{}, calls: calls},
		payrolls:  &fakePayrollRepo{calls: calls},
		calls:     calls,
	}
	f.svc = NewEmployeeService(f.tx, f.employees, f.payrolls, &fakeLeaveRepo{calls: calls})
	return f
}

func validRequest(id, email string) employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		EmployeeID:    id,
		FirstName:     "Ravi",
		LastName:      "Kumar",
		WorkEmail:     email,
		DateOfJoining: "2024-01-15",
		DateOfBirth:   "1992-06-10",
		BasicSalary:   decimal.NewFromInt(30000),
		AnnualCTC:     decimal.NewFromInt(480000),
	}
}

func TestEmployeeService_Create(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.Create(context.Background(), validRequest("EMP001", "ravi@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "Ravi Kumar", resp.FullName)
	assert.Equal(t, "ACTIVE", resp.Status)
	assert.Equal(t, employee.DefaultDesignation, resp.Designation)
	assert.True(t, resp.MonthlyCTC.Equal(decimal.NewFromInt(40000)))

	t.Run("basic salary above ctc", func(t *testing.T) {
		req := validRequest("EMP002", "x@example.com")
		req.BasicSalary = decimal.NewFromInt(50000)
		_, err := f.svc.Create(context.Background(), req)
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs.ToMap(), "basic_salary")
	})
}

func TestEmployeeService_BulkCreate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	resp, err := f.svc.BulkCreate(ctx, employee.BulkCreateEmployeeRequest{Employees: []employee.CreateEmployeeRequest{
		validRequest("EMP001", "a@example.com"),
		validRequest("EMP002", "b@example.com"),
	}})
	require.NoError(t, err)
	assert.Len(t, resp, 2)
	assert.Equal(t, 1, f.tx.calls)

	t.Run("empty", func(t *testing.T) {
		_, err := f.svc.BulkCreate(ctx, employee.BulkCreateEmployeeRequest{})
		assert.ErrorIs(t, err, employee.ErrEmptyBulkRequest)
	})

	t.Run("existing id fails the batch", func(t *testing.T) {
		_, err := f.svc.BulkCreate(ctx, employee.BulkCreateEmployeeRequest{Employees: []employee.CreateEmployeeRequest{
			validRequest("EMP003", "c@example.com"),
			validRequest("EMP001", "d@example.com"),
		}})
		assert.ErrorIs(t, err, employee.ErrEmployeeIDExists)
		assert.Contains(t, err.Error(), "EMP001")
	})

	t.Run("duplicate id in request", func(t *testing.T) {
		_, err := f.svc.BulkCreate(ctx, employee.BulkCreateEmployeeRequest{Employees: []employee.CreateEmployeeRequest{
			validRequest("EMP009", "e@example.com"),
			validRequest("EMP009", "f@example.com"),
		}})
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs.ToMap(), "employees[1].employee_id")
	})
}

func TestEmployeeService_Update(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.svc.Create(ctx, validRequest("EMP001", "ravi@example.com"))
	require.NoError(t, err)

	designation := "Senior Engineer"
	resp, err := f.svc.Update(ctx, employee.UpdateEmployeeRequest{EmployeeID: "EMP001", Designation: &designation})
	require.NoError(t, err)
	assert.Equal(t, "Senior Engineer", resp.Designation)
	assert.Equal(t, "ravi@example.com", resp.WorkEmail)

	t.Run("leaving before joining", func(t *testing.T) {
		left := "2023-01-01"
		_, err := f.svc.Update(ctx, employee.UpdateEmployeeRequest{EmployeeID: "EMP001", DateOfLeaving: &left})
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs.ToMap(), "date_of_leaving")
	})

	t.Run("unknown employee", func(t *testing.T) {
		_, err := f.svc.Update(ctx, employee.UpdateEmployeeRequest{EmployeeID: "NOPE", Designation: &designation})
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})
}

func TestEmployeeService_DeleteRemovesDependentsFirst(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.svc.Create(ctx, validRequest("EMP001", "ravi@example.com"))
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, "EMP001"))
	assert.Equal(t, []string{"payroll", "leave", "employee"}, *f.calls)

	assert.ErrorIs(t, f.svc.Delete(ctx, "EMP001"), employee.ErrEmployeeNotFound)
}

func TestEmployeeService_PayrollHistory(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.svc.Create(ctx, validRequest("EMP001", "ravi@example.com"))
	require.NoError(t, err)

	p, err := payroll.New("EMP001",
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		payroll.Earnings{BasicSalary: decimal.NewFromInt(30000)}, payroll.Deductions{})
	require.NoError(t, err)
	f.payrolls.history = []*payroll.Payroll{p}

	resp, err := f.svc.PayrollHistory(ctx, "EMP001", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.TotalCount)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.Limit)
	assert.Equal(t, "2026-01-01", resp.Data[0].PayPeriodStart)

	_, err = f.svc.PayrollHistory(ctx, "NOPE", 1, 10)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
