package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/exellar/payroll-backend-go/internal/domain/payroll"
	"github.com/exellar/payroll-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPayroll(t *testing.T, employeeID string, start, end string) *payroll.Payroll {
	t.Helper()
	p, err := payroll.New(employeeID, date(start), date(end),
		payroll.Earnings{BasicSalary: decimal.NewFromInt(30000), HRA: decimal.NewFromInt(6000)},
		payroll.Deductions{ProfessionTax: decimal.NewFromInt(200)},
	)
	require.NoError(t, err)
	return p
}

func TestPayrollRepository_CreateAndConstraints(t *testing.T) {
	setup := NewTestDatabase(t)
	createTestEmployee(t, setup.DB, "EMP001", "emp001@example.com")
	repo := postgresql.NewPayrollRepository(setup.DB)
	ctx := context.Background()

	created, err := repo.Create(ctx, newTestPayroll(t, "EMP001", "2026-01-01", "2026-01-31"))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, payroll.StatusDraft, created.Status())
	assert.True(t, created.Totals().NetPay().Equal(decimal.NewFromInt(35800)))
	require.NotNil(t, created.EmployeeName)
	assert.Equal(t, "Test EMP001", *created.EmployeeName)

	t.Run("duplicate period", func(t *testing.T) {
		_, err := repo.Create(ctx, newTestPayroll(t, "EMP001", "2026-01-01", "2026-01-31"))
		assert.ErrorIs(t, err, payroll.ErrPayrollAlreadyExists)
	})

	t.Run("unknown employee", func(t *testing.T) {
		_, err := repo.Create(ctx, newTestPayroll(t, "NOPE", "2026-01-01", "2026-01-31"))
		assert.ErrorIs(t, err, payroll.ErrEmployeeNotFound)
	})

	t.Run("get by employee period", func(t *testing.T) {
		got, err := repo.GetByEmployeePeriod(ctx, "EMP001", date("2026-01-01"), date("2026-01-31"))
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := repo.GetByID(ctx, created.ID+100)
		assert.ErrorIs(t, err, payroll.ErrPayrollNotFound)
	})
}

func TestPayrollRepository_LifecycleInTransaction(t *testing.T) {
	setup := NewTestDatabase(t)
	createTestEmployee(t, setup.DB, "EMP002", "emp002@example.com")
	repo := postgresql.NewPayrollRepository(setup.DB)
	ctx := context.Background()

	created, err := repo.Create(ctx, newTestPayroll(t, "EMP002", "2026-02-01", "2026-02-28"))
	require.NoError(t, err)

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	err = setup.DB.WithinTransaction(ctx, func(ctx context.Context) error {
		p, err := repo.GetByIDForUpdate(ctx, created.ID)
		if err != nil {
			return err
		}
		if err := p.Process(now); err != nil {
			return err
		}
		_, err = repo.Save(ctx, p)
		return err
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, payroll.StatusProcessed, got.Status())
	require.NotNil(t, got.ProcessedAt())
	assert.True(t, got.ProcessedAt().Equal(now))

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalPayrolls)
	assert.Equal(t, int64(1), stats.ProcessedPayrolls)
	assert.True(t, stats.TotalDisbursed.IsZero())
}
