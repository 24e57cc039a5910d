package salarycomponent

import (
	"context"
	"log/slog"

	"github.com/exellar/payroll-backend-go/internal/domain/employee"
	"github.com/exellar/payroll-backend-go/internal/domain/salarycomponent"
)

type SalaryComponentServiceImpl struct {
	componentRepo salarycomponent.SalaryComponentRepository
	employeeRepo  employee.EmployeeRepository
}

func NewSalaryComponentService(
	componentRepo salarycomponent.SalaryComponentRepository,
	employeeRepo employee.EmployeeRepository,
) salarycomponent.SalaryComponentService {
	return &SalaryComponentServiceImpl{
		componentRepo: componentRepo,
		employeeRepo:  employeeRepo,
	}
}

func (s *SalaryComponentServiceImpl) List(ctx context.Context, filter salarycomponent.SalaryComponentFilter) ([]salarycomponent.SalaryComponentResponse, error) {
	components, err := s.componentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]salarycomponent.SalaryComponentResponse, 0, len(components))
	for _, c := range components {
		responses = append(responses, salarycomponent.ToResponse(c))
	}
	return responses, nil
}

func (s *SalaryComponentServiceImpl) Get(ctx context.Context, id int64) (salarycomponent.SalaryComponentResponse, error) {
	c, err := s.componentRepo.GetByID(ctx, id)
	if err != nil {
		return salarycomponent.SalaryComponentResponse{}, err
	}
	return salarycomponent.ToResponse(c), nil
}

func (s *SalaryComponentServiceImpl) Create(ctx context.Context, req salarycomponent.CreateSalaryComponentRequest) (salarycomponent.SalaryComponentResponse, error) {
	if err := req.Validate(); err != nil {
		return salarycomponent.SalaryComponentResponse{}, err
	}
	if req.EmployeeID != nil {
		if err := s.ensureEmployee(ctx, *req.EmployeeID); err != nil {
			return salarycomponent.SalaryComponentResponse{}, err
		}
	}

	created, err := s.componentRepo.Create(ctx, req.ToEntity())
	if err != nil {
		return salarycomponent.SalaryComponentResponse{}, err
	}

	slog.Info("salary component created", "component_id", created.ID, "name", created.Name)
	return salarycomponent.ToResponse(created), nil
}

func (s *SalaryComponentServiceImpl) AssignToEmployee(ctx context.Context, employeeID string, req salarycomponent.CreateSalaryComponentRequest) (salarycomponent.SalaryComponentResponse, error) {
	req.EmployeeID = &employeeID
	return s.Create(ctx, req)
}

func (s *SalaryComponentServiceImpl) ensureEmployee(ctx context.Context, employeeID string) error {
	exists, err := s.employeeRepo.Exists(ctx, employeeID)
	if err != nil {
		return err
	}
	if !exists {
		return salarycomponent.ErrEmployeeNotFound
	}
	return nil
}

func (s *SalaryComponentServiceImpl) Update(ctx context.Context, req salarycomponent.UpdateSalaryComponentRequest) (salarycomponent.SalaryComponentResponse, error) {
	current, err := s.componentRepo.GetByID(ctx, req.ID)
	if err != nil {
		return salarycomponent.SalaryComponentResponse{}, err
	}
	merged, err := req.Apply(current)
	if err != nil {
		return salarycomponent.SalaryComponentResponse{}, err
	}

	updated, err := s.componentRepo.Update(ctx, merged)
	if err != nil {
		return salarycomponent.SalaryComponentResponse{}, err
	}
	return salarycomponent.ToResponse(updated), nil
}

func (s *SalaryComponentServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.componentRepo.Delete(ctx, id)
}

func (s *SalaryComponentServiceImpl) Stats(ctx context.Context) (salarycomponent.SalaryComponentStatsResponse, error) {
	return s.componentRepo.Stats(ctx)
}
