package department

import "context"

type DepartmentRepository interface {
	Create(ctx context.Context, d Department) (Department, error)
	GetByID(ctx context.Context, id int64) (Department, error)
	GetByName(ctx context.Context, name string) (Department, error)
	List(ctx context.Context, filter DepartmentFilter) ([]Department, error)
	Update(ctx context.Context, req UpdateDepartmentRequest) error
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (DepartmentStatsResponse, error)
}
