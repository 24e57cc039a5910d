package payroll

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var (
	periodStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	periodEnd   = time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	testNow     = time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
)

func newDraft(t *testing.T, e Earnings, ded Deductions) *Payroll {
	t.Helper()
	p, err := New("EMP001", periodStart, periodEnd, e, ded)
	require.NoError(t, err)
	return p
}

func TestCompute_HappyPath(t *testing.T) {
	totals := Compute(
		Earnings{BasicSalary: d("30000"), HRA: d("6000")},
		Deductions{ProfessionTax: d("200")},
	)

	assert.True(t, totals.TotalIncome().Equal(d("36000")))
	assert.True(t, totals.GrossPay().Equal(d("36000")))
	assert.True(t, totals.TotalDeductions().Equal(d("200")))
	assert.True(t, totals.NetPay().Equal(d("35800")))
}

func TestCompute_ArithmeticClosure(t *testing.T) {
	e := Earnings{
		BasicSalary:        d("25000.50"),
		HRA:                d("5000.25"),
		Conveyance:         d("1600"),
		MealAllowance:      d("1200.10"),
		TelephoneAllowance: d("500"),
		MedicalAllowance:   d("1250"),
		PersonalPay:        d("300.15"),
		Bonus:              d("2000"),
		Overtime:           d("750.00"),
	}
	ded := Deductions{ProfessionTax: d("200"), Advance: d("1000.55")}

	totals := Compute(e, ded)

	sum := decimal.Zero
	for _, v := range []decimal.Decimal{e.BasicSalary, e.HRA, e.Conveyance, e.MealAllowance,
		e.TelephoneAllowance, e.MedicalAllowance, e.PersonalPay, e.Bonus, e.Overtime} {
		sum = sum.Add(v)
	}
	assert.True(t, totals.TotalIncome().Equal(sum), "total income %s != %s", totals.TotalIncome(), sum)
	assert.True(t, totals.GrossPay().Equal(totals.TotalIncome()))
	assert.True(t, totals.TotalDeductions().Equal(d("1200.55")))
	assert.True(t, totals.NetPay().Equal(totals.GrossPay().Sub(totals.TotalDeductions())))
}

func TestCompute_Idempotent(t *testing.T) {
	e := Earnings{BasicSalary: d("1234.56"), Bonus: d("10")}
	ded := Deductions{Advance: d("34.56")}

	assert.True(t, Compute(e, ded).Equal(Compute(e, ded)))

	p := newDraft(t, e, ded)
	before := p.Totals()
	require.NoError(t, p.Recalculate())
	require.NoError(t, p.Recalculate())
	assert.True(t, before.Equal(p.Totals()))
}

func TestCompute_NegativeNetPayPassesThrough(t *testing.T) {
	p := newDraft(t, Earnings{BasicSalary: d("1000")}, Deductions{Advance: d("5000")})

	assert.True(t, p.Totals().NetPay().Equal(d("-4000")), "net pay %s", p.Totals().NetPay())
	assert.True(t, p.Totals().NetPay().IsNegative())

	require.NoError(t, p.Process(testNow))
	assert.Equal(t, StatusProcessed, p.Status())
	assert.True(t, p.Totals().NetPay().Equal(d("-4000")))
}

func TestNew_RejectsInvertedPeriod(t *testing.T) {
	_, err := New("EMP001", periodEnd, periodStart, Earnings{}, Deductions{})
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = New("EMP001", periodStart, periodStart, Earnings{}, Deductions{})
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestNew_StartsAsDraftWithTotals(t *testing.T) {
	p := newDraft(t, Earnings{BasicSalary: d("30000"), HRA: d("6000")}, Deductions{ProfessionTax: d("200")})

	assert.Equal(t, StatusDraft, p.Status())
	assert.Equal(t, DefaultDaysWorked, p.DaysWorked)
	assert.Nil(t, p.ProcessedAt())
	assert.Nil(t, p.PaidAt())
	assert.True(t, p.Totals().NetPay().Equal(d("35800")))
}

func TestLifecycle_ProcessThenMarkPaid(t *testing.T) {
	p := newDraft(t, Earnings{BasicSalary: d("30000"), HRA: d("6000")}, Deductions{ProfessionTax: d("200")})

	require.NoError(t, p.Process(testNow))
	assert.Equal(t, StatusProcessed, p.Status())
	require.NotNil(t, p.ProcessedAt())
	assert.Equal(t, testNow, *p.ProcessedAt())
	assert.True(t, p.Totals().NetPay().Equal(d("35800")))

	paidAt := testNow.Add(24 * time.Hour)
	require.NoError(t, p.MarkPaid(paidAt))
	assert.Equal(t, StatusPaid, p.Status())
	require.NotNil(t, p.PaidAt())
	assert.Equal(t, paidAt, *p.PaidAt())
	assert.Equal(t, testNow, *p.ProcessedAt())
}

func TestLifecycle_DoubleProcessRejected(t *testing.T) {
	p := newDraft(t, Earnings{BasicSalary: d("1000")}, Deductions{})
	require.NoError(t, p.Process(testNow))

	err := p.Process(testNow.Add(time.Hour))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	var ite *InvalidTransitionError
	require.True(t, errors.As(err, &ite))
	assert.Equal(t, OpProcess, ite.Op)
	assert.Equal(t, StatusProcessed, ite.From)

	assert.Equal(t, StatusProcessed, p.Status())
	assert.Equal(t, testNow, *p.ProcessedAt())
}

func TestLifecycle_PaidIsImmutable(t *testing.T) {
	// Stored totals out of sync with inputs: only Recalculate could repair them.
	p := Load(Snapshot{
		ID:              7,
		EmployeeID:      "EMP001",
		PayPeriodStart:  periodStart,
		PayPeriodEnd:    periodEnd,
		Earnings:        Earnings{BasicSalary: d("30000")},
		TotalIncome:     d("1"),
		GrossPay:        d("1"),
		TotalDeductions: d("0"),
		NetPay:          d("1"),
		Status:          StatusPaid,
	})
	before := p.Snapshot()

	assert.ErrorIs(t, p.Recalculate(), ErrInvalidTransition)
	assert.ErrorIs(t, p.Process(testNow), ErrInvalidTransition)
	assert.ErrorIs(t, p.MarkPaid(testNow), ErrInvalidTransition)
	assert.ErrorIs(t, p.Cancel(), ErrInvalidTransition)
	bonus := d("100")
	assert.ErrorIs(t, p.ApplyAmounts(Amounts{Bonus: &bonus}), ErrInvalidTransition)
	assert.ErrorIs(t, p.CheckAllowed(OpDelete), ErrInvalidTransition)

	assert.Equal(t, before, p.Snapshot())
}

func TestLifecycle_CancelFromDraftAndProcessed(t *testing.T) {
	draft := newDraft(t, Earnings{BasicSalary: d("1000")}, Deductions{})
	require.NoError(t, draft.Cancel())
	assert.Equal(t, StatusCancelled, draft.Status())

	processed := newDraft(t, Earnings{BasicSalary: d("1000")}, Deductions{})
	require.NoError(t, processed.Process(testNow))
	require.NoError(t, processed.Cancel())
	assert.Equal(t, StatusCancelled, processed.Status())

	assert.ErrorIs(t, processed.Cancel(), ErrInvalidTransition)
	assert.ErrorIs(t, processed.Process(testNow), ErrInvalidTransition)
}

func TestLifecycle_RecalculateRepairsDriftedTotals(t *testing.T) {
	p := Load(Snapshot{
		EmployeeID:      "EMP001",
		PayPeriodStart:  periodStart,
		PayPeriodEnd:    periodEnd,
		Earnings:        Earnings{BasicSalary: d("30000"), HRA: d("6000")},
		Deductions:      Deductions{ProfessionTax: d("200")},
		TotalIncome:     d("0"),
		GrossPay:        d("0"),
		TotalDeductions: d("0"),
		NetPay:          d("0"),
		Status:          StatusProcessed,
	})

	require.NoError(t, p.Recalculate())
	assert.Equal(t, StatusProcessed, p.Status())
	assert.True(t, p.Totals().NetPay().Equal(d("35800")))
}

func TestApplyAmounts_Recomputes(t *testing.T) {
	p := newDraft(t, Earnings{BasicSalary: d("30000")}, Deductions{ProfessionTax: d("200")})

	hra := d("6000")
	require.NoError(t, p.ApplyAmounts(Amounts{HRA: &hra}))

	assert.True(t, p.Earnings().BasicSalary.Equal(d("30000")))
	assert.True(t, p.Earnings().HRA.Equal(d("6000")))
	assert.True(t, p.Totals().NetPay().Equal(d("35800")))
}

func TestApplyAmounts_RejectedOnCancelled(t *testing.T) {
	p := newDraft(t, Earnings{BasicSalary: d("1000")}, Deductions{})
	require.NoError(t, p.Cancel())
	before := p.Snapshot()

	bonus := d("500")
	err := p.ApplyAmounts(Amounts{Bonus: &bonus})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, before, p.Snapshot())
}

func TestSnapshotRoundTripKeepsTotals(t *testing.T) {
	p := newDraft(t, Earnings{BasicSalary: d("30000"), HRA: d("6000")}, Deductions{ProfessionTax: d("200")})
	require.NoError(t, p.Process(testNow))

	loaded := Load(p.Snapshot())
	assert.Equal(t, p.Snapshot(), loaded.Snapshot())
	assert.True(t, loaded.Totals().Equal(p.Totals()))
}
