package payroll

import (
	"testing"

	"github.com/exellar/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePayrollRequest_Validate(t *testing.T) {
	valid := CreatePayrollRequest{
		EmployeeID:     "EMP001",
		PayPeriodStart: "2024-01-01",
		PayPeriodEnd:   "2024-01-31",
		AmountFields:   AmountFields{BasicSalary: d("30000"), HRA: d("6000"), ProfessionTax: d("200")},
	}
	assert.NoError(t, valid.Validate())

	bad := valid
	bad.EmployeeID = " "
	bad.PayPeriodEnd = "2023-12-31"
	bad.AmountFields.Bonus = d("-1")
	bad.AmountFields.Advance = d("10.555")

	err := bad.Validate()
	require.Error(t, err)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "employee_id")
	assert.Equal(t, "must be after pay_period_start", fields["pay_period_end"])
	assert.Equal(t, "must be non-negative", fields["bonus"])
	assert.Equal(t, "must have at most 2 decimal places", fields["advance"])
}

func TestUpdatePayrollRequest_Validate(t *testing.T) {
	neg := decimal.NewFromInt(-5)
	days := 40
	req := UpdatePayrollRequest{HRA: &neg, DaysWorked: &days}

	var verrs validator.ValidationErrors
	require.ErrorAs(t, req.Validate(), &verrs)
	assert.Len(t, verrs, 2)

	ok := decimal.NewFromInt(5)
	assert.NoError(t, (&UpdatePayrollRequest{HRA: &ok}).Validate())
}

func TestPayrollFilter_Validate(t *testing.T) {
	status := "paid"
	f := PayrollFilter{Status: &status}
	assert.Error(t, f.Validate())

	status = "PAID"
	assert.NoError(t, f.Validate())
}

func TestToResponse_ExposesDerivedFields(t *testing.T) {
	p, err := New("EMP001", periodStart, periodEnd,
		Earnings{BasicSalary: d("30000"), HRA: d("6000")}, Deductions{ProfessionTax: d("200")})
	require.NoError(t, err)

	resp := ToResponse(p)
	assert.Equal(t, "2024-01-01", resp.PayPeriodStart)
	assert.Equal(t, "DRAFT", resp.Status)
	assert.True(t, resp.GrossPay.Equal(d("36000")))
	assert.True(t, resp.NetPay.Equal(d("35800")))
	assert.Nil(t, resp.ProcessedAt)
}
