package designation

import "context"

type DesignationRepository interface {
	Create(ctx context.Context, d Designation) (Designation, error)
	GetByID(ctx context.Context, id int64) (Designation, error)
	GetByName(ctx context.Context, name string) (Designation, error)
	List(ctx context.Context, filter DesignationFilter) ([]Designation, error)
	Update(ctx context.Context, req UpdateDesignationRequest) error
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (DesignationStatsResponse, error)
}
