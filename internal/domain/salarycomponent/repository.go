package salarycomponent

import "context"

type SalaryComponentRepository interface {
	Create(ctx context.Context, c SalaryComponent) (SalaryComponent, error)
	GetByID(ctx context.Context, id int64) (SalaryComponent, error)
	List(ctx context.Context, filter SalaryComponentFilter) ([]SalaryComponent, error)
	Update(ctx context.Context, c SalaryComponent) (SalaryComponent, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (SalaryComponentStatsResponse, error)
}
