package employee

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/exellar/payroll-backend-go/internal/domain/employee"
	"github.com/exellar/payroll-backend-go/internal/domain/leave"
	"github.com/exellar/payroll-backend-go/internal/domain/payroll"
	"github.com/exellar/payroll-backend-go/internal/pkg/database"
)

type EmployeeServiceImpl struct {
	tx           database.Transactor
	employeeRepo employee.EmployeeRepository
	payrollRepo  payroll.PayrollRepository
	leaveRepo    leave.LeaveRepository
}

func NewEmployeeService(
	tx database.Transactor,
	employeeRepo employee.EmployeeRepository,
	payrollRepo payroll.PayrollRepository,
	leaveRepo leave.LeaveRepository,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		tx:           tx,
		employeeRepo: employeeRepo,
		payrollRepo:  payrollRepo,
		leaveRepo:    leaveRepo,
	}
}

func (s *EmployeeServiceImpl) List(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 20
	}

	employees, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	data := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		data = append(data, employee.ToResponse(e))
	}
	return employee.ListEmployeeResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *EmployeeServiceImpl) Get(ctx context.Context, employeeID string) (employee.EmployeeResponse, error) {
	e, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(e), nil
}

func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	created, err := s.employeeRepo.Create(ctx, req.ToEntity())
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("employee created", "employee_id", created.EmployeeID)
	return employee.ToResponse(created), nil
}

func (s *EmployeeServiceImpl) BulkCreate(ctx context.Context, req employee.BulkCreateEmployeeRequest) ([]employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(req.Employees))
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		for i := range req.Employees {
			created, err := s.employeeRepo.Create(ctx, req.Employees[i].ToEntity())
			if err != nil {
				return fmt.Errorf("employee %s: %w", req.Employees[i].EmployeeID, err)
			}
			responses = append(responses, employee.ToResponse(created))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("employees bulk created", "count", len(responses))
	return responses, nil
}

func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	current, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	merged, err := req.Apply(current)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	updated, err := s.employeeRepo.Update(ctx, merged)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(updated), nil
}

// Delete removes the employee's payroll and leave rows before the employee
// itself, all in one transaction.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, employeeID string) error {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.employeeRepo.Exists(ctx, employeeID)
		if err != nil {
			return err
		}
		if !exists {
			return employee.ErrEmployeeNotFound
		}

		if err := s.payrollRepo.DeleteByEmployee(ctx, employeeID); err != nil {
			return err
		}
		if err := s.leaveRepo.DeleteByEmployee(ctx, employeeID); err != nil {
			return err
		}
		return s.employeeRepo.Delete(ctx, employeeID)
	})
	if err != nil {
		return err
	}

	slog.Info("employee deleted", "employee_id", employeeID)
	return nil
}

func (s *EmployeeServiceImpl) Stats(ctx context.Context) (employee.EmployeeStatsResponse, error) {
	return s.employeeRepo.Stats(ctx)
}

// PayrollHistory lists the employee's payrolls, newest period first.
func (s *EmployeeServiceImpl) PayrollHistory(ctx context.Context, employeeID string, page, limit int) (payroll.ListPayrollResponse, error) {
	exists, err := s.employeeRepo.Exists(ctx, employeeID)
	if err != nil {
		return payroll.ListPayrollResponse{}, err
	}
	if !exists {
		return payroll.ListPayrollResponse{}, employee.ErrEmployeeNotFound
	}

	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	records, total, err := s.payrollRepo.ListByEmployee(ctx, employeeID, page, limit)
	if err != nil {
		return payroll.ListPayrollResponse{}, err
	}

	data := make([]payroll.PayrollResponse, 0, len(records))
	for _, p := range records {
		data = append(data, payroll.ToResponse(p))
	}
	return payroll.ListPayrollResponse{Data: data, TotalCount: total, Page: page, Limit: limit}, nil
}
