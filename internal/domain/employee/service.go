package employee

import (
	"context"

	"github.com/exellar/payroll-backend-go/internal/domain/payroll"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	List(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)
	Get(ctx context.Context, employeeID string) (EmployeeResponse, error)
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	// BulkCreate inserts every employee or none of them.
	BulkCreate(ctx context.Context, req BulkCreateEmployeeRequest) ([]EmployeeResponse, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)
	// Delete removes the employee together with its payroll and leave rows.
	Delete(ctx context.Context, employeeID string) error
	Stats(ctx context.Context) (EmployeeStatsResponse, error)
	PayrollHistory(ctx context.Context, employeeID string, page, limit int) (payroll.ListPayrollResponse, error)
}
