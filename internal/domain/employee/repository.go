package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, employeeID string) (Employee, error)
	GetByWorkEmail(ctx context.Context, email string) (Employee, error)
	Exists(ctx context.Context, employeeID string) (bool, error)
	Create(ctx context.Context, e Employee) (Employee, error)
	Update(ctx context.Context, e Employee) (Employee, error)
	Delete(ctx context.Context, employeeID string) error
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	Stats(ctx context.Context) (EmployeeStatsResponse, error)
}
