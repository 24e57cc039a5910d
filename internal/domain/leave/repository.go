package leave

import (
	"context"
	"time"
)

type LeaveRepository interface {
	Create(ctx context.Context, l Leave) (Leave, error)
	GetByID(ctx context.Context, id int64) (Leave, error)
	GetByIDForUpdate(ctx context.Context, id int64) (Leave, error)
	List(ctx context.Context, filter LeaveFilter) ([]Leave, int64, error)
	// ListActiveInRange returns the employee's PENDING or APPROVED leaves touching [start, end].
	ListActiveInRange(ctx context.Context, employeeID string, start, end time.Time) ([]Leave, error)
	Update(ctx context.Context, l Leave) (Leave, error)
	Delete(ctx context.Context, id int64) error
	DeleteByEmployee(ctx context.Context, employeeID string) error
	Stats(ctx context.Context, year int) (LeaveStatsResponse, error)
}
