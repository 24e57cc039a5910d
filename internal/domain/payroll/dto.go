package payroll

import (
	"time"

	"github.com/exellar/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// AmountFields are the amount inputs accepted on create. Missing fields default to zero.
// Totals are output-only and have no request field.
type AmountFields struct {
	BasicSalary        decimal.Decimal `json:"basic_salary"`
	HRA                decimal.Decimal `json:"hra"`
	Conveyance         decimal.Decimal `json:"conveyance"`
	MealAllowance      decimal.Decimal `json:"meal_allowance"`
	TelephoneAllowance decimal.Decimal `json:"telephone_allowance"`
	MedicalAllowance   decimal.Decimal `json:"medical_allowance"`
	PersonalPay        decimal.Decimal `json:"personal_pay"`
	Bonus              decimal.Decimal `json:"bonus"`
	Overtime           decimal.Decimal `json:"overtime"`
	ProfessionTax      decimal.Decimal `json:"profession_tax"`
	Advance            decimal.Decimal `json:"advance"`
}

func (a AmountFields) Earnings() Earnings {
	return Earnings{
		BasicSalary:        a.BasicSalary,
		HRA:                a.HRA,
		Conveyance:         a.Conveyance,
		MealAllowance:      a.MealAllowance,
		TelephoneAllowance: a.TelephoneAllowance,
		MedicalAllowance:   a.MedicalAllowance,
		PersonalPay:        a.PersonalPay,
		Bonus:              a.Bonus,
		Overtime:           a.Overtime,
	}
}

func (a AmountFields) Deductions() Deductions {
	return Deductions{ProfessionTax: a.ProfessionTax, Advance: a.Advance}
}

func (a AmountFields) named() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"basic_salary":        a.BasicSalary,
		"hra":                 a.HRA,
		"conveyance":          a.Conveyance,
		"meal_allowance":      a.MealAllowance,
		"telephone_allowance": a.TelephoneAllowance,
		"medical_allowance":   a.MedicalAllowance,
		"personal_pay":        a.PersonalPay,
		"bonus":               a.Bonus,
		"overtime":            a.Overtime,
		"profession_tax":      a.ProfessionTax,
		"advance":             a.Advance,
	}
}

type CreatePayrollRequest struct {
	EmployeeID     string  `json:"employee_id"`
	PayPeriodStart string  `json:"pay_period_start"`
	PayPeriodEnd   string  `json:"pay_period_end"`
	Designation    *string `json:"designation,omitempty"`
	Department     *string `json:"department,omitempty"`
	DaysWorked     *int    `json:"days_worked,omitempty"`
	Notes          *string `json:"notes,omitempty"`
	AmountFields
}

func (r *CreatePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "is required")
	}
	start, startOK := validator.IsValidDate(r.PayPeriodStart)
	if !startOK {
		errs.Add("pay_period_start", "must be a date in YYYY-MM-DD format")
	}
	end, endOK := validator.IsValidDate(r.PayPeriodEnd)
	if !endOK {
		errs.Add("pay_period_end", "must be a date in YYYY-MM-DD format")
	}
	if startOK && endOK && !end.After(start) {
		errs.Add("pay_period_end", "must be after pay_period_start")
	}
	if r.DaysWorked != nil && (*r.DaysWorked < 0 || *r.DaysWorked > 31) {
		errs.Add("days_worked", "must be between 0 and 31")
	}
	validateAmounts(&errs, r.AmountFields.named())

	return errs.Err()
}

type UpdatePayrollRequest struct {
	ID             int64   `json:"-"`
	PayPeriodStart *string `json:"pay_period_start,omitempty"`
	PayPeriodEnd   *string `json:"pay_period_end,omitempty"`
	Designation    *string `json:"designation,omitempty"`
	Department     *string `json:"department,omitempty"`
	DaysWorked     *int    `json:"days_worked,omitempty"`
	Notes          *string `json:"notes,omitempty"`

	BasicSalary        *decimal.Decimal `json:"basic_salary,omitempty"`
	HRA                *decimal.Decimal `json:"hra,omitempty"`
	Conveyance         *decimal.Decimal `json:"conveyance,omitempty"`
	MealAllowance      *decimal.Decimal `json:"meal_allowance,omitempty"`
	TelephoneAllowance *decimal.Decimal `json:"telephone_allowance,omitempty"`
	MedicalAllowance   *decimal.Decimal `json:"medical_allowance,omitempty"`
	PersonalPay        *decimal.Decimal `json:"personal_pay,omitempty"`
	Bonus              *decimal.Decimal `json:"bonus,omitempty"`
	Overtime           *decimal.Decimal `json:"overtime,omitempty"`
	ProfessionTax      *decimal.Decimal `json:"profession_tax,omitempty"`
	Advance            *decimal.Decimal `json:"advance,omitempty"`
}

func (r *UpdatePayrollRequest) Amounts() Amounts {
	return Amounts{
		BasicSalary:        r.BasicSalary,
		HRA:                r.HRA,
		Conveyance:         r.Conveyance,
		MealAllowance:      r.MealAllowance,
		TelephoneAllowance: r.TelephoneAllowance,
		MedicalAllowance:   r.MedicalAllowance,
		PersonalPay:        r.PersonalPay,
		Bonus:              r.Bonus,
		Overtime:           r.Overtime,
		ProfessionTax:      r.ProfessionTax,
		Advance:            r.Advance,
	}
}

func (r *UpdatePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PayPeriodStart != nil {
		if _, ok := validator.IsValidDate(*r.PayPeriodStart); !ok {
			errs.Add("pay_period_start", "must be a date in YYYY-MM-DD format")
		}
	}
	if r.PayPeriodEnd != nil {
		if _, ok := validator.IsValidDate(*r.PayPeriodEnd); !ok {
			errs.Add("pay_period_end", "must be a date in YYYY-MM-DD format")
		}
	}
	if r.DaysWorked != nil && (*r.DaysWorked < 0 || *r.DaysWorked > 31) {
		errs.Add("days_worked", "must be between 0 and 31")
	}

	amounts := map[string]*decimal.Decimal{
		"basic_salary":        r.BasicSalary,
		"hra":                 r.HRA,
		"conveyance":          r.Conveyance,
		"meal_allowance":      r.MealAllowance,
		"telephone_allowance": r.TelephoneAllowance,
		"medical_allowance":   r.MedicalAllowance,
		"personal_pay":        r.PersonalPay,
		"bonus":               r.Bonus,
		"overtime":            r.Overtime,
		"profession_tax":      r.ProfessionTax,
		"advance":             r.Advance,
	}
	set := make(map[string]decimal.Decimal)
	for field, v := range amounts {
		if v != nil {
			set[field] = *v
		}
	}
	validateAmounts(&errs, set)

	return errs.Err()
}

func validateAmounts(errs *validator.ValidationErrors, amounts map[string]decimal.Decimal) {
	for _, field := range amountFieldOrder {
		v, ok := amounts[field]
		if !ok {
			continue
		}
		if !validator.IsNonNegative(v) {
			errs.Add(field, "must be non-negative")
		} else if !validator.HasMaxTwoDecimals(v) {
			errs.Add(field, "must have at most 2 decimal places")
		}
	}
}

var amountFieldOrder = []string{
	"basic_salary", "hra", "conveyance", "meal_allowance", "telephone_allowance",
	"medical_allowance", "personal_pay", "bonus", "overtime", "profession_tax", "advance",
}

type PayrollResponse struct {
	ID                 int64           `json:"id"`
	EmployeeID         string          `json:"employee_id"`
	EmployeeName       string          `json:"employee_name"`
	PayPeriodStart     string          `json:"pay_period_start"`
	PayPeriodEnd       string          `json:"pay_period_end"`
	Designation        string          `json:"designation"`
	Department         string          `json:"department"`
	DaysWorked         int             `json:"days_worked"`
	BasicSalary        decimal.Decimal `json:"basic_salary"`
	HRA                decimal.Decimal `json:"hra"`
	Conveyance         decimal.Decimal `json:"conveyance"`
	MealAllowance      decimal.Decimal `json:"meal_allowance"`
	TelephoneAllowance decimal.Decimal `json:"telephone_allowance"`
	MedicalAllowance   decimal.Decimal `json:"medical_allowance"`
	PersonalPay        decimal.Decimal `json:"personal_pay"`
	Bonus              decimal.Decimal `json:"bonus"`
	Overtime           decimal.Decimal `json:"overtime"`
	ProfessionTax      decimal.Decimal `json:"profession_tax"`
	Advance            decimal.Decimal `json:"advance"`
	TotalIncome        decimal.Decimal `json:"total_income"`
	GrossPay           decimal.Decimal `json:"gross_pay"`
	TotalDeductions    decimal.Decimal `json:"total_deductions"`
	NetPay             decimal.Decimal `json:"net_pay"`
	Status             string          `json:"status"`
	ProcessedAt        *string         `json:"processed_at"`
	PaidAt             *string         `json:"paid_at"`
	Notes              *string         `json:"notes,omitempty"`
	CreatedAt          string          `json:"created_at"`
	UpdatedAt          string          `json:"updated_at"`
}

// ToResponse maps p to its wire representation.
func ToResponse(p *Payroll) PayrollResponse {
	e, d, t := p.Earnings(), p.Deductions(), p.Totals()
	resp := PayrollResponse{
		ID:                 p.ID,
		EmployeeID:         p.EmployeeID,
		PayPeriodStart:     p.PayPeriodStart.Format(validator.DateLayout),
		PayPeriodEnd:       p.PayPeriodEnd.Format(validator.DateLayout),
		Designation:        p.Designation,
		Department:         p.Department,
		DaysWorked:         p.DaysWorked,
		BasicSalary:        e.BasicSalary,
		HRA:                e.HRA,
		Conveyance:         e.Conveyance,
		MealAllowance:      e.MealAllowance,
		TelephoneAllowance: e.TelephoneAllowance,
		MedicalAllowance:   e.MedicalAllowance,
		PersonalPay:        e.PersonalPay,
		Bonus:              e.Bonus,
		Overtime:           e.Overtime,
		ProfessionTax:      d.ProfessionTax,
		Advance:            d.Advance,
		TotalIncome:        t.TotalIncome(),
		GrossPay:           t.GrossPay(),
		TotalDeductions:    t.TotalDeductions(),
		NetPay:             t.NetPay(),
		Status:             string(p.Status()),
		ProcessedAt:        formatTime(p.ProcessedAt()),
		PaidAt:             formatTime(p.PaidAt()),
		Notes:              p.Notes,
		CreatedAt:          p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          p.UpdatedAt.Format(time.RFC3339),
	}
	if p.EmployeeName != nil {
		resp.EmployeeName = *p.EmployeeName
	}
	return resp
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

type PayrollFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty"`
	Department *string `json:"department,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // pay_period_start >= start_date
	EndDate    *string `json:"end_date,omitempty"`   // pay_period_end <= end_date
	Search     *string `json:"search,omitempty"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	SortBy     string  `json:"sort_by"`
	SortOrder  string  `json:"sort_order"`
}

func (f *PayrollFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil {
		if _, err := ParseStatus(*f.Status); err != nil {
			errs.Add("status", "must be one of DRAFT, PROCESSED, PAID, CANCELLED")
		}
	}
	if f.StartDate != nil {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs.Add("start_date", "must be a date in YYYY-MM-DD format")
		}
	}
	if f.EndDate != nil {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs.Add("end_date", "must be a date in YYYY-MM-DD format")
		}
	}
	if f.Page < 0 {
		errs.Add("page", "must be positive")
	}
	if f.Limit < 0 || f.Limit > 100 {
		errs.Add("limit", "must be between 1 and 100")
	}

	return errs.Err()
}

type ListPayrollResponse struct {
	Data       []PayrollResponse `json:"data"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}

type DepartmentPayrollStat struct {
	Department string          `json:"department"`
	Count      int64           `json:"count"`
	Total      decimal.Decimal `json:"total"`
	Average    decimal.Decimal `json:"avg"`
}

type PayrollStatsResponse struct {
	TotalPayrolls     int64                   `json:"total_payrolls"`
	DraftPayrolls     int64                   `json:"draft_payrolls"`
	ProcessedPayrolls int64                   `json:"processed_payrolls"`
	PaidPayrolls      int64                   `json:"paid_payrolls"`
	CancelledPayrolls int64                   `json:"cancelled_payrolls"`
	TotalDisbursed    decimal.Decimal         `json:"total_disbursed"`
	AverageSalary     decimal.Decimal         `json:"average_salary"`
	DepartmentStats   []DepartmentPayrollStat `json:"department_stats"`
}

type EmployeePayrollStatsResponse struct {
	EmployeeID    string          `json:"employee_id"`
	TotalPayrolls int64           `json:"total_payrolls"`
	TotalEarned   decimal.Decimal `json:"total_earned"`
	AverageSalary decimal.Decimal `json:"average_salary"`
	LastPayment   *string         `json:"last_payment"`
}
