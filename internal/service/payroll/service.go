package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/exellar/payroll-backend-go/internal/domain/employee"
	"github.com/exellar/payroll-backend-go/internal/domain/payroll"
	"github.com/exellar/payroll-backend-go/internal/pkg/database"
	"github.com/exellar/payroll-backend-go/internal/pkg/email"
	"github.com/exellar/payroll-backend-go/internal/pkg/payslip"
	"github.com/exellar/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	tx           database.Transactor
	payrollRepo  payroll.PayrollRepository
	employeeRepo employee.EmployeeRepository
	mailer       email.EmailService
	companyName  string
	now          func() time.Time
}

// NewPayrollService wires the payroll use cases. mailer may be nil, in which
// case no payslip notice is sent on payment.
func NewPayrollService(
	tx database.Transactor,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	mailer email.EmailService,
	companyName string,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		tx:           tx,
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		mailer:       mailer,
		companyName:  companyName,
		now:          time.Now,
	}
}

func (s *PayrollServiceImpl) List(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollResponse, error) {
	if err := filter.Validate(); err != nil {
		return payroll.ListPayrollResponse{}, err
	}
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 20
	}

	records, total, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return payroll.ListPayrollResponse{}, err
	}

	data := make([]payroll.PayrollResponse, 0, len(records))
	for _, p := range records {
		data = append(data, payroll.ToResponse(p))
	}
	return payroll.ListPayrollResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *PayrollServiceImpl) Get(ctx context.Context, id int64) (payroll.PayrollResponse, error) {
	p, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	return payroll.ToResponse(p), nil
}

func (s *PayrollServiceImpl) Create(ctx context.Context, req payroll.CreatePayrollRequest) (payroll.PayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollResponse{}, err
	}
	start, _ := validator.IsValidDate(req.PayPeriodStart)
	end, _ := validator.IsValidDate(req.PayPeriodEnd)

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return payroll.PayrollResponse{}, payroll.ErrEmployeeNotFound
		}
		return payroll.PayrollResponse{}, err
	}

	if _, err := s.payrollRepo.GetByEmployeePeriod(ctx, req.EmployeeID, start, end); err == nil {
		return payroll.PayrollResponse{}, payroll.ErrPayrollAlreadyExists
	} else if !errors.Is(err, payroll.ErrPayrollNotFound) {
		return payroll.PayrollResponse{}, err
	}

	p, err := payroll.New(req.EmployeeID, start, end, req.Earnings(), req.Deductions())
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	// Designation and department default to the employee's current values.
	p.Designation = emp.Designation
	if emp.DepartmentName != nil {
		p.Department = *emp.DepartmentName
	}
	if req.Designation != nil {
		p.Designation = *req.Designation
	}
	if req.Department != nil {
		p.Department = *req.Department
	}
	if req.DaysWorked != nil {
		p.DaysWorked = *req.DaysWorked
	}
	p.Notes = req.Notes

	created, err := s.payrollRepo.Create(ctx, p)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	slog.Info("payroll created", "payroll_id", created.ID, "employee_id", created.EmployeeID,
		"net_pay", created.Totals().NetPay().String())
	return payroll.ToResponse(created), nil
}

func (s *PayrollServiceImpl) Update(ctx context.Context, req payroll.UpdatePayrollRequest) (payroll.PayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollResponse{}, err
	}

	var updated *payroll.Payroll
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		p, err := s.payrollRepo.GetByIDForUpdate(ctx, req.ID)
		if err != nil {
			return err
		}
		if err := p.CheckAllowed(payroll.OpUpdate); err != nil {
			return err
		}

		if req.PayPeriodStart != nil {
			p.PayPeriodStart, _ = validator.IsValidDate(*req.PayPeriodStart)
		}
		if req.PayPeriodEnd != nil {
			p.PayPeriodEnd, _ = validator.IsValidDate(*req.PayPeriodEnd)
		}
		if !p.PayPeriodEnd.After(p.PayPeriodStart) {
			return payroll.ErrInvalidPeriod
		}
		if req.Designation != nil {
			p.Designation = *req.Designation
		}
		if req.Department != nil {
			p.Department = *req.Department
		}
		if req.DaysWorked != nil {
			p.DaysWorked = *req.DaysWorked
		}
		if req.Notes != nil {
			p.Notes = req.Notes
		}
		if err := p.ApplyAmounts(req.Amounts()); err != nil {
			return err
		}

		updated, err = s.payrollRepo.Save(ctx, p)
		return err
	})
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	return payroll.ToResponse(updated), nil
}

// Delete removes any payroll that has not been paid.
func (s *PayrollServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		p, err := s.payrollRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := p.CheckAllowed(payroll.OpDelete); err != nil {
			return err
		}
		if err := s.payrollRepo.Delete(ctx, id); err != nil {
			return err
		}
		slog.Info("payroll deleted", "payroll_id", id, "status", p.Status())
		return nil
	})
}

// transition locks the record, applies op and persists the result. A failed
// op leaves the stored record untouched.
func (s *PayrollServiceImpl) transition(ctx context.Context, id int64, name string, op func(p *payroll.Payroll) error) (*payroll.Payroll, error) {
	var result *payroll.Payroll
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		p, err := s.payrollRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		from := p.Status()
		if err := op(p); err != nil {
			return err
		}
		result, err = s.payrollRepo.Save(ctx, p)
		if err != nil {
			return fmt.Errorf("failed to save payroll: %w", err)
		}
		slog.Info("payroll "+name, "payroll_id", id, "from", from, "to", result.Status(),
			"net_pay", result.Totals().NetPay().String())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *PayrollServiceImpl) Process(ctx context.Context, id int64) (payroll.PayrollResponse, error) {
	p, err := s.transition(ctx, id, "processed", func(p *payroll.Payroll) error {
		return p.Process(s.now())
	})
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	return payroll.ToResponse(p), nil
}

func (s *PayrollServiceImpl) MarkPaid(ctx context.Context, id int64) (payroll.PayrollResponse, error) {
	p, err := s.transition(ctx, id, "paid", func(p *payroll.Payroll) error {
		return p.MarkPaid(s.now())
	})
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	s.notifyPaid(ctx, p)
	return payroll.ToResponse(p), nil
}

// notifyPaid emails the employee a payment notice. Failures are logged only.
func (s *PayrollServiceImpl) notifyPaid(ctx context.Context, p *payroll.Payroll) {
	if s.mailer == nil {
		return
	}
	emp, err := s.employeeRepo.GetByID(ctx, p.EmployeeID)
	if err != nil {
		slog.Warn("payslip notice skipped", "payroll_id", p.ID, "error", err)
		return
	}
	period := p.PayPeriodStart.Format(validator.DateLayout) + " to " + p.PayPeriodEnd.Format(validator.DateLayout)
	if err := s.mailer.SendPayslipNotice(emp.WorkEmail, emp.FullName(), period, p.Totals().NetPay().StringFixed(2)); err != nil {
		slog.Error("failed to send payslip notice", "payroll_id", p.ID, "error", err)
	}
}

func (s *PayrollServiceImpl) Recalculate(ctx context.Context, id int64) (payroll.PayrollResponse, error) {
	p, err := s.transition(ctx, id, "recalculated", func(p *payroll.Payroll) error {
		return p.Recalculate()
	})
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	return payroll.ToResponse(p), nil
}

func (s *PayrollServiceImpl) Cancel(ctx context.Context, id int64) (payroll.PayrollResponse, error) {
	p, err := s.transition(ctx, id, "cancelled", func(p *payroll.Payroll) error {
		return p.Cancel()
	})
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	return payroll.ToResponse(p), nil
}

func (s *PayrollServiceImpl) Stats(ctx context.Context) (payroll.PayrollStatsResponse, error) {
	return s.payrollRepo.Stats(ctx)
}

func (s *PayrollServiceImpl) EmployeeStats(ctx context.Context, employeeID string) (payroll.EmployeePayrollStatsResponse, error) {
	if validator.IsEmpty(employeeID) {
		return payroll.EmployeePayrollStatsResponse{}, payroll.ErrEmployeeIDRequired
	}
	exists, err := s.employeeRepo.Exists(ctx, employeeID)
	if err != nil {
		return payroll.EmployeePayrollStatsResponse{}, err
	}
	if !exists {
		return payroll.EmployeePayrollStatsResponse{}, payroll.ErrEmployeeNotFound
	}
	return s.payrollRepo.EmployeeStats(ctx, employeeID)
}

func (s *PayrollServiceImpl) Payslip(ctx context.Context, id int64) ([]byte, string, error) {
	p, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if err := p.CheckAllowed(payroll.OpPayslip); err != nil {
		return nil, "", err
	}

	slip := buildSlip(s.companyName, p)
	pdf, err := payslip.Render(slip)
	if err != nil {
		return nil, "", fmt.Errorf("failed to render payslip: %w", err)
	}
	return pdf, slip.FileName(), nil
}

func buildSlip(company string, p *payroll.Payroll) payslip.Slip {
	e, d, t := p.Earnings(), p.Deductions(), p.Totals()
	line := func(label string, v decimal.Decimal) payslip.Line {
		return payslip.Line{Label: label, Amount: v.StringFixed(2)}
	}

	slip := payslip.Slip{
		CompanyName: company,
		EmployeeID:  p.EmployeeID,
		Designation: p.Designation,
		Department:  p.Department,
		PeriodStart: p.PayPeriodStart.Format(validator.DateLayout),
		PeriodEnd:   p.PayPeriodEnd.Format(validator.DateLayout),
		DaysWorked:  p.DaysWorked,
		Status:      string(p.Status()),
		Earnings: []payslip.Line{
			line("Basic Salary", e.BasicSalary),
			line("HRA", e.HRA),
			line("Conveyance", e.Conveyance),
			line("Meal Allowance", e.MealAllowance),
			line("Telephone Allowance", e.TelephoneAllowance),
			line("Medical Allowance", e.MedicalAllowance),
			line("Personal Pay", e.PersonalPay),
			line("Bonus", e.Bonus),
			line("Overtime", e.Overtime),
		},
		Deductions: []payslip.Line{
			line("Profession Tax", d.ProfessionTax),
			line("Advance", d.Advance),
		},
		TotalIncome:     t.TotalIncome().StringFixed(2),
		TotalDeductions: t.TotalDeductions().StringFixed(2),
		NetPay:          t.NetPay().StringFixed(2),
	}
	if p.EmployeeName != nil {
		slip.EmployeeName = *p.EmployeeName
	}
	return slip
}
