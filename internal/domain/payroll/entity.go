package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Earnings are the nine income components of a pay period.
type Earnings struct {
	BasicSalary        decimal.Decimal
	HRA                decimal.Decimal
	Conveyance         decimal.Decimal
	MealAllowance      decimal.Decimal
	TelephoneAllowance decimal.Decimal
	MedicalAllowance   decimal.Decimal
	PersonalPay        decimal.Decimal
	Bonus              decimal.Decimal
	Overtime           decimal.Decimal
}

func (e Earnings) Total() decimal.Decimal {
	return decimal.Sum(e.BasicSalary, e.HRA, e.Conveyance, e.MealAllowance,
		e.TelephoneAllowance, e.MedicalAllowance, e.PersonalPay, e.Bonus, e.Overtime)
}

// Deductions withheld from gross pay.
type Deductions struct {
	ProfessionTax decimal.Decimal
	Advance       decimal.Decimal
}

func (d Deductions) Total() decimal.Decimal {
	return d.ProfessionTax.Add(d.Advance)
}

// Totals holds the derived amounts of a payroll. The zero value is only
// produced for an all-zero input; use Compute to obtain one.
type Totals struct {
	totalIncome     decimal.Decimal
	grossPay        decimal.Decimal
	totalDeductions decimal.Decimal
	netPay          decimal.Decimal
}

// Compute derives the totals from earnings and deductions. Net pay is not
// clamped and may be negative when deductions exceed gross pay.
func Compute(e Earnings, d Deductions) Totals {
	income := e.Total().Round(2)
	deductions := d.Total().Round(2)
	return Totals{
		totalIncome:     income,
		grossPay:        income,
		totalDeductions: deductions,
		netPay:          income.Sub(deductions),
	}
}

func (t Totals) TotalIncome() decimal.Decimal     { return t.totalIncome }
func (t Totals) GrossPay() decimal.Decimal        { return t.grossPay }
func (t Totals) TotalDeductions() decimal.Decimal { return t.totalDeductions }
func (t Totals) NetPay() decimal.Decimal          { return t.netPay }

// Equal reports whether both totals hold the same amounts.
func (t Totals) Equal(o Totals) bool {
	return t.totalIncome.Equal(o.totalIncome) &&
		t.grossPay.Equal(o.grossPay) &&
		t.totalDeductions.Equal(o.totalDeductions) &&
		t.netPay.Equal(o.netPay)
}

// Payroll is one employee's pay for one pay period. Amount inputs, totals and
// status are only changed through its methods so the totals always reflect
// the inputs they were derived from.
type Payroll struct {
	ID             int64
	EmployeeID     string
	PayPeriodStart time.Time
	PayPeriodEnd   time.Time
	Designation    string
	Department     string
	DaysWorked     int
	Notes          *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	earnings    Earnings
	deductions  Deductions
	totals      Totals
	status      Status
	processedAt *time.Time
	paidAt      *time.Time

	// Joined fields
	EmployeeName *string
}

// DefaultDaysWorked is used when a payroll is created without days_worked.
const DefaultDaysWorked = 30

// New builds a DRAFT payroll with freshly computed totals.
func New(employeeID string, start, end time.Time, e Earnings, d Deductions) (*Payroll, error) {
	if !end.After(start) {
		return nil, ErrInvalidPeriod
	}
	p := &Payroll{
		EmployeeID:     employeeID,
		PayPeriodStart: start,
		PayPeriodEnd:   end,
		DaysWorked:     DefaultDaysWorked,
		earnings:       e,
		deductions:     d,
		status:         StatusDraft,
	}
	p.recompute()
	return p, nil
}

// Snapshot is the persisted form of a Payroll, stored totals included.
type Snapshot struct {
	ID             int64
	EmployeeID     string
	PayPeriodStart time.Time
	PayPeriodEnd   time.Time
	Designation    string
	Department     string
	DaysWorked     int
	Earnings       Earnings
	Deductions     Deductions

	TotalIncome     decimal.Decimal
	GrossPay        decimal.Decimal
	TotalDeductions decimal.Decimal
	NetPay          decimal.Decimal

	Status      Status
	ProcessedAt *time.Time
	PaidAt      *time.Time
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	EmployeeName *string
}

// Load rehydrates a stored payroll without recomputing, so totals that drifted
// from their inputs stay visible until Recalculate repairs them.
func Load(s Snapshot) *Payroll {
	return &Payroll{
		ID:             s.ID,
		EmployeeID:     s.EmployeeID,
		PayPeriodStart: s.PayPeriodStart,
		PayPeriodEnd:   s.PayPeriodEnd,
		Designation:    s.Designation,
		Department:     s.Department,
		DaysWorked:     s.DaysWorked,
		Notes:          s.Notes,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
		earnings:       s.Earnings,
		deductions:     s.Deductions,
		totals: Totals{
			totalIncome:     s.TotalIncome,
			grossPay:        s.GrossPay,
			totalDeductions: s.TotalDeductions,
			netPay:          s.NetPay,
		},
		status:       s.Status,
		processedAt:  s.ProcessedAt,
		paidAt:       s.PaidAt,
		EmployeeName: s.EmployeeName,
	}
}

func (p *Payroll) Snapshot() Snapshot {
	return Snapshot{
		ID:              p.ID,
		EmployeeID:      p.EmployeeID,
		PayPeriodStart:  p.PayPeriodStart,
		PayPeriodEnd:    p.PayPeriodEnd,
		Designation:     p.Designation,
		Department:      p.Department,
		DaysWorked:      p.DaysWorked,
		Earnings:        p.earnings,
		Deductions:      p.deductions,
		TotalIncome:     p.totals.totalIncome,
		GrossPay:        p.totals.grossPay,
		TotalDeductions: p.totals.totalDeductions,
		NetPay:          p.totals.netPay,
		Status:          p.status,
		ProcessedAt:     p.processedAt,
		PaidAt:          p.paidAt,
		Notes:           p.Notes,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		EmployeeName:    p.EmployeeName,
	}
}

func (p *Payroll) Earnings() Earnings      { return p.earnings }
func (p *Payroll) Deductions() Deductions  { return p.deductions }
func (p *Payroll) Totals() Totals          { return p.totals }
func (p *Payroll) Status() Status          { return p.status }
func (p *Payroll) ProcessedAt() *time.Time { return p.processedAt }
func (p *Payroll) PaidAt() *time.Time      { return p.paidAt }

func (p *Payroll) recompute() {
	p.totals = Compute(p.earnings, p.deductions)
}

// Process moves a DRAFT payroll to PROCESSED and recomputes its totals.
func (p *Payroll) Process(now time.Time) error {
	next, err := p.status.Next(OpProcess)
	if err != nil {
		return err
	}
	p.status = next
	p.processedAt = &now
	p.recompute()
	return nil
}

// MarkPaid moves a PROCESSED payroll to PAID. Totals are left as processed.
func (p *Payroll) MarkPaid(now time.Time) error {
	next, err := p.status.Next(OpMarkPaid)
	if err != nil {
		return err
	}
	p.status = next
	p.paidAt = &now
	return nil
}

// Recalculate recomputes the totals of any payroll that is not PAID.
func (p *Payroll) Recalculate() error {
	if _, err := p.status.Next(OpRecalculate); err != nil {
		return err
	}
	p.recompute()
	return nil
}

// Cancel moves a DRAFT or PROCESSED payroll to CANCELLED.
func (p *Payroll) Cancel() error {
	next, err := p.status.Next(OpCancel)
	if err != nil {
		return err
	}
	p.status = next
	return nil
}

// Amounts carries optional replacements for the amount inputs. Nil fields keep
// their current value.
type Amounts struct {
	BasicSalary        *decimal.Decimal
	HRA                *decimal.Decimal
	Conveyance         *decimal.Decimal
	MealAllowance      *decimal.Decimal
	TelephoneAllowance *decimal.Decimal
	MedicalAllowance   *decimal.Decimal
	PersonalPay        *decimal.Decimal
	Bonus              *decimal.Decimal
	Overtime           *decimal.Decimal
	ProfessionTax      *decimal.Decimal
	Advance            *decimal.Decimal
}

// ApplyAmounts replaces the given inputs and recomputes. PAID and CANCELLED
// payrolls reject the change.
func (p *Payroll) ApplyAmounts(a Amounts) error {
	if _, err := p.status.Next(OpUpdate); err != nil {
		return err
	}

	e, d := p.earnings, p.deductions
	set := func(dst *decimal.Decimal, src *decimal.Decimal) {
		if src != nil {
			*dst = *src
		}
	}
	set(&e.BasicSalary, a.BasicSalary)
	set(&e.HRA, a.HRA)
	set(&e.Conveyance, a.Conveyance)
	set(&e.MealAllowance, a.MealAllowance)
	set(&e.TelephoneAllowance, a.TelephoneAllowance)
	set(&e.MedicalAllowance, a.MedicalAllowance)
	set(&e.PersonalPay, a.PersonalPay)
	set(&e.Bonus, a.Bonus)
	set(&e.Overtime, a.Overtime)
	set(&d.ProfessionTax, a.ProfessionTax)
	set(&d.Advance, a.Advance)

	p.earnings, p.deductions = e, d
	p.recompute()
	return nil
}

// CheckAllowed returns an *InvalidTransitionError when op is not legal in the
// current status.
func (p *Payroll) CheckAllowed(op Operation) error {
	_, err := p.status.Next(op)
	return err
}
