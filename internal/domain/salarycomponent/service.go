package salarycomponent

import "context"

type SalaryComponentService interface {
	List(ctx context.Context, filter SalaryComponentFilter) ([]SalaryComponentResponse, error)
	Get(ctx context.Context, id int64) (SalaryComponentResponse, error)
	Create(ctx context.Context, req CreateSalaryComponentRequest) (SalaryComponentResponse, error)
	// AssignToEmployee creates a component owned by employeeID.
	AssignToEmployee(ctx context.Context, employeeID string, req CreateSalaryComponentRequest) (SalaryComponentResponse, error)
	Update(ctx context.Context, req UpdateSalaryComponentRequest) (SalaryComponentResponse, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (SalaryComponentStatsResponse, error)
}
