package payroll

import "context"

type PayrollService interface {
	List(ctx context.Context, filter PayrollFilter) (ListPayrollResponse, error)
	Get(ctx context.Context, id int64) (PayrollResponse, error)
	Create(ctx context.Context, req CreatePayrollRequest) (PayrollResponse, error)
	Update(ctx context.Context, req UpdatePayrollRequest) (PayrollResponse, error)
	Delete(ctx context.Context, id int64) error

	Process(ctx context.Context, id int64) (PayrollResponse, error)
	MarkPaid(ctx context.Context, id int64) (PayrollResponse, error)
	Recalculate(ctx context.Context, id int64) (PayrollResponse, error)
	Cancel(ctx context.Context, id int64) (PayrollResponse, error)

	Stats(ctx context.Context) (PayrollStatsResponse, error)
	EmployeeStats(ctx context.Context, employeeID string) (EmployeePayrollStatsResponse, error)
	// Payslip renders a PDF for a PROCESSED or PAID payroll.
	Payslip(ctx context.Context, id int64) ([]byte, string, error)
}
