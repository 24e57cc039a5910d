package leave

import "context"

type LeaveService interface {
	List(ctx context.Context, filter LeaveFilter) (ListLeaveResponse, error)
	Get(ctx context.Context, id int64) (LeaveResponse, error)
	Create(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error)
	Update(ctx context.Context, req UpdateLeaveRequest) (LeaveResponse, error)
	Delete(ctx context.Context, id int64) error

	// Approve and Reject record approverEmployeeID as the decider.
	Approve(ctx context.Context, id int64, approverEmployeeID string) (LeaveResponse, error)
	Reject(ctx context.Context, id int64, approverEmployeeID string) (LeaveResponse, error)
	Cancel(ctx context.Context, id int64) (LeaveResponse, error)

	Stats(ctx context.Context) (LeaveStatsResponse, error)
}
