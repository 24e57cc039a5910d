package worklocation

import "context"

type WorkLocationRepository interface {
	Create(ctx context.Context, w WorkLocation) (WorkLocation, error)
	GetByID(ctx context.Context, id int64) (WorkLocation, error)
	List(ctx context.Context, filter WorkLocationFilter) ([]WorkLocation, error)
	Update(ctx context.Context, req UpdateWorkLocationRequest) error
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (WorkLocationStatsResponse, error)
}
