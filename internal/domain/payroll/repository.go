package payroll

import (
	"context"
	"time"
)

// PayrollRepository persists fully computed payroll records.
type PayrollRepository interface {
	Create(ctx context.Context, p *Payroll) (*Payroll, error)
	GetByID(ctx context.Context, id int64) (*Payroll, error)
	// GetByIDForUpdate locks the row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id int64) (*Payroll, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, start, end time.Time) (*Payroll, error)
	List(ctx context.Context, filter PayrollFilter) ([]*Payroll, int64, error)
	ListByEmployee(ctx context.Context, employeeID string, page, limit int) ([]*Payroll, int64, error)
	// Save writes every column of p, stored totals and status included.
	Save(ctx context.Context, p *Payroll) (*Payroll, error)
	Delete(ctx context.Context, id int64) error
	DeleteByEmployee(ctx context.Context, employeeID string) error
	Stats(ctx context.Context) (PayrollStatsResponse, error)
	EmployeeStats(ctx context.Context, employeeID string) (EmployeePayrollStatsResponse, error)
}
