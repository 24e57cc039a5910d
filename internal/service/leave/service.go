package leave

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/exellar/payroll-backend-go/internal/domain/employee"
	"github.com/exellar/payroll-backend-go/internal/domain/leave"
	"github.com/exellar/payroll-backend-go/internal/pkg/database"
)

type LeaveServiceImpl struct {
	tx           database.Transactor
	leaveRepo    leave.LeaveRepository
	employeeRepo employee.EmployeeRepository
	now          func() time.Time
}

func NewLeaveService(
	tx database.Transactor,
	leaveRepo leave.LeaveRepository,
	employeeRepo employee.EmployeeRepository,
) leave.LeaveService {
	return &LeaveServiceImpl{
		tx:           tx,
		leaveRepo:    leaveRepo,
		employeeRepo: employeeRepo,
		now:          time.Now,
	}
}

func (s *LeaveServiceImpl) List(ctx context.Context, filter leave.LeaveFilter) (leave.ListLeaveResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveResponse{}, err
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 20
	}

	leaves, total, err := s.leaveRepo.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveResponse{}, err
	}

	data := make([]leave.LeaveResponse, 0, len(leaves))
	for _, l := range leaves {
		data = append(data, leave.ToResponse(l))
	}
	return leave.ListLeaveResponse{Data: data, TotalCount: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *LeaveServiceImpl) Get(ctx context.Context, id int64) (leave.LeaveResponse, error) {
	l, err := s.leaveRepo.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	return leave.ToResponse(l), nil
}

// checkOverlap rejects l when it shares a day with another PENDING or APPROVED
// leave of the same employee.
func (s *LeaveServiceImpl) checkOverlap(ctx context.Context, l leave.Leave) error {
	active, err := s.leaveRepo.ListActiveInRange(ctx, l.EmployeeID, l.StartDate, l.EndDate)
	if err != nil {
		return err
	}
	for _, other := range active {
		if other.ID != l.ID && l.Overlaps(other) {
			return leave.ErrOverlappingLeave
		}
	}
	return nil
}

func (s *LeaveServiceImpl) Create(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	exists, err := s.employeeRepo.Exists(ctx, req.EmployeeID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if !exists {
		return leave.LeaveResponse{}, leave.ErrEmployeeNotFound
	}

	var created leave.Leave
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		l := req.ToEntity()
		if err := s.checkOverlap(ctx, l); err != nil {
			return err
		}
		created, err = s.leaveRepo.Create(ctx, l)
		return err
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	slog.Info("leave requested", "leave_id", created.ID, "employee_id", created.EmployeeID,
		"days", created.Duration())
	return leave.ToResponse(created), nil
}

func (s *LeaveServiceImpl) Update(ctx context.Context, req leave.UpdateLeaveRequest) (leave.LeaveResponse, error) {
	var updated leave.Leave
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.leaveRepo.GetByIDForUpdate(ctx, req.ID)
		if err != nil {
			return err
		}
		if current.Status != leave.StatusPending {
			return leave.ErrLeaveNotPending
		}
		merged, err := req.Apply(current)
		if err != nil {
			return err
		}
		if err := s.checkOverlap(ctx, merged); err != nil {
			return err
		}
		updated, err = s.leaveRepo.Update(ctx, merged)
		return err
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	return leave.ToResponse(updated), nil
}

func (s *LeaveServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.leaveRepo.Delete(ctx, id)
}

func (s *LeaveServiceImpl) Approve(ctx context.Context, id int64, approverEmployeeID string) (leave.LeaveResponse, error) {
	return s.decide(ctx, id, leave.ActionApprove, approverEmployeeID)
}

func (s *LeaveServiceImpl) Reject(ctx context.Context, id int64, approverEmployeeID string) (leave.LeaveResponse, error) {
	return s.decide(ctx, id, leave.ActionReject, approverEmployeeID)
}

func (s *LeaveServiceImpl) decide(ctx context.Context, id int64, action leave.Action, approverEmployeeID string) (leave.LeaveResponse, error) {
	if approverEmployeeID == "" {
		return leave.LeaveResponse{}, leave.ErrApproverNotLinked
	}

	var result leave.Leave
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		l, err := s.leaveRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if l.EmployeeID == approverEmployeeID {
			return leave.ErrCannotApproveOwnLeave
		}
		if err := l.Decide(action, approverEmployeeID, s.now()); err != nil {
			return err
		}
		result, err = s.leaveRepo.Update(ctx, l)
		return err
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	slog.Info("leave decided", "leave_id", id, "action", action, "approved_by", approverEmployeeID)
	return leave.ToResponse(result), nil
}

func (s *LeaveServiceImpl) Cancel(ctx context.Context, id int64) (leave.LeaveResponse, error) {
	var result leave.Leave
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		l, err := s.leaveRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := l.Cancel(); err != nil {
			return err
		}
		result, err = s.leaveRepo.Update(ctx, l)
		return err
	})
	if err != nil {
		var transitionErr *leave.InvalidTransitionError
		if errors.As(err, &transitionErr) {
			slog.Warn("leave cancel rejected", "leave_id", id, "status", transitionErr.From)
		}
		return leave.LeaveResponse{}, err
	}

	slog.Info("leave cancelled", "leave_id", id)
	return leave.ToResponse(result), nil
}

// Stats covers the current calendar year.
func (s *LeaveServiceImpl) Stats(ctx context.Context) (leave.LeaveStatsResponse, error) {
	return s.leaveRepo.Stats(ctx, s.now().Year())
}
