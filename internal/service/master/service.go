package master

import (
	"context"
	"log/slog"
	"strings"

	"github.com/exellar/payroll-backend-go/internal/domain/master/department"
	"github.com/exellar/payroll-backend-go/internal/domain/master/designation"
	"github.com/exellar/payroll-backend-go/internal/domain/master/worklocation"
)

type MasterService interface {
	// Department operations
	CreateDepartment(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error)
	GetDepartment(ctx context.Context, id int64) (department.DepartmentResponse, error)
	ListDepartments(ctx context.Context, filter department.DepartmentFilter) ([]department.DepartmentResponse, error)
	UpdateDepartment(ctx context.Context, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error)
	DeleteDepartment(ctx context.Context, id int64) error
	DepartmentStats(ctx context.Context) (department.DepartmentStatsResponse, error)

	// Designation operations
	CreateDesignation(ctx context.Context, req designation.CreateDesignationRequest) (designation.DesignationResponse, error)
	GetDesignation(ctx context.Context, id int64) (designation.DesignationResponse, error)
	GetDesignationByName(ctx context.Context, name string) (designation.DesignationResponse, error)
	ListDesignations(ctx context.Context, filter designation.DesignationFilter) ([]designation.DesignationResponse, error)
	UpdateDesignation(ctx context.Context, req designation.UpdateDesignationRequest) (designation.DesignationResponse, error)
	DeleteDesignation(ctx context.Context, id int64) error
	DesignationStats(ctx context.Context) (designation.DesignationStatsResponse, error)

	// Work location operations
	CreateWorkLocation(ctx context.Context, req worklocation.CreateWorkLocationRequest) (worklocation.WorkLocationResponse, error)
	GetWorkLocation(ctx context.Context, id int64) (worklocation.WorkLocationResponse, error)
	ListWorkLocations(ctx context.Context, filter worklocation.WorkLocationFilter) ([]worklocation.WorkLocationResponse, error)
	UpdateWorkLocation(ctx context.Context, req worklocation.UpdateWorkLocationRequest) (worklocation.WorkLocationResponse, error)
	DeleteWorkLocation(ctx context.Context, id int64) error
	WorkLocationStats(ctx context.Context) (worklocation.WorkLocationStatsResponse, error)
}

type masterServiceImpl struct {
	departmentRepo   department.DepartmentRepository
	designationRepo  designation.DesignationRepository
	workLocationRepo worklocation.WorkLocationRepository
}

func NewMasterService(
	departmentRepo department.DepartmentRepository,
	designationRepo designation.DesignationRepository,
	workLocationRepo worklocation.WorkLocationRepository,
) MasterService {
	return &masterServiceImpl{
		departmentRepo:   departmentRepo,
		designationRepo:  designationRepo,
		workLocationRepo: workLocationRepo,
	}
}

// ==================== DEPARTMENT OPERATIONS ====================

func (s *masterServiceImpl) CreateDepartment(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	created, err := s.departmentRepo.Create(ctx, department.Department{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
	})
	if err != nil {
		return department.DepartmentResponse{}, err
	}

	slog.Info("department created", "department_id", created.ID, "name", created.Name)
	return department.ToResponse(created), nil
}

func (s *masterServiceImpl) GetDepartment(ctx context.Context, id int64) (department.DepartmentResponse, error) {
	d, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	return department.ToResponse(d), nil
}

func (s *masterServiceImpl) ListDepartments(ctx context.Context, filter department.DepartmentFilter) ([]department.DepartmentResponse, error) {
	departments, err := s.departmentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]department.DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		responses = append(responses, department.ToResponse(d))
	}
	return responses, nil
}

func (s *masterServiceImpl) UpdateDepartment(ctx context.Context, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}

	if err := s.departmentRepo.Update(ctx, req); err != nil {
		return department.DepartmentResponse{}, err
	}
	return s.GetDepartment(ctx, req.ID)
}

func (s *masterServiceImpl) DeleteDepartment(ctx context.Context, id int64) error {
	if err := s.departmentRepo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("department deleted", "department_id", id)
	return nil
}

func (s *masterServiceImpl) DepartmentStats(ctx context.Context) (department.DepartmentStatsResponse, error) {
	return s.departmentRepo.Stats(ctx)
}

// ==================== DESIGNATION OPERATIONS ====================

func (s *masterServiceImpl) CreateDesignation(ctx context.Context, req designation.CreateDesignationRequest) (designation.DesignationResponse, error) {
	if err := req.Validate(); err != nil {
		return designation.DesignationResponse{}, err
	}

	created, err := s.designationRepo.Create(ctx, designation.Designation{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
	})
	if err != nil {
		return designation.DesignationResponse{}, err
	}

	slog.Info("designation created", "designation_id", created.ID, "name", created.Name)
	return designation.ToResponse(created), nil
}

func (s *masterServiceImpl) GetDesignation(ctx context.Context, id int64) (designation.DesignationResponse, error) {
	d, err := s.designationRepo.GetByID(ctx, id)
	if err != nil {
		return designation.DesignationResponse{}, err
	}
	return designation.ToResponse(d), nil
}

func (s *masterServiceImpl) GetDesignationByName(ctx context.Context, name string) (designation.DesignationResponse, error) {
	d, err := s.designationRepo.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return designation.DesignationResponse{}, err
	}
	return designation.ToResponse(d), nil
}

func (s *masterServiceImpl) ListDesignations(ctx context.Context, filter designation.DesignationFilter) ([]designation.DesignationResponse, error) {
	designations, err := s.designationRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]designation.DesignationResponse, 0, len(designations))
	for _, d := range designations {
		responses = append(responses, designation.ToResponse(d))
	}
	return responses, nil
}

func (s *masterServiceImpl) UpdateDesignation(ctx context.Context, req designation.UpdateDesignationRequest) (designation.DesignationResponse, error) {
	if err := req.Validate(); err != nil {
		return designation.DesignationResponse{}, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}

	if err := s.designationRepo.Update(ctx, req); err != nil {
		return designation.DesignationResponse{}, err
	}
	return s.GetDesignation(ctx, req.ID)
}

func (s *masterServiceImpl) DeleteDesignation(ctx context.Context, id int64) error {
	if err := s.designationRepo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("designation deleted", "designation_id", id)
	return nil
}

func (s *masterServiceImpl) DesignationStats(ctx context.Context) (designation.DesignationStatsResponse, error) {
	return s.designationRepo.Stats(ctx)
}

// ==================== WORK LOCATION OPERATIONS ====================

func (s *masterServiceImpl) CreateWorkLocation(ctx context.Context, req worklocation.CreateWorkLocationRequest) (worklocation.WorkLocationResponse, error) {
	if err := req.Validate(); err != nil {
		return worklocation.WorkLocationResponse{}, err
	}

	created, err := s.workLocationRepo.Create(ctx, worklocation.WorkLocation{
		Name:            strings.TrimSpace(req.Name),
		Address:         req.Address,
		Address2:        req.Address2,
		City:            req.City,
		State:           req.State,
		Pincode:         req.Pincode,
		IsFilingAddress: req.IsFilingAddress,
	})
	if err != nil {
		return worklocation.WorkLocationResponse{}, err
	}

	slog.Info("work location created", "work_location_id", created.ID, "name", created.Name)
	return worklocation.ToResponse(created), nil
}

func (s *masterServiceImpl) GetWorkLocation(ctx context.Context, id int64) (worklocation.WorkLocationResponse, error) {
	w, err := s.workLocationRepo.GetByID(ctx, id)
	if err != nil {
		return worklocation.WorkLocationResponse{}, err
	}
	return worklocation.ToResponse(w), nil
}

func (s *masterServiceImpl) ListWorkLocations(ctx context.Context, filter worklocation.WorkLocationFilter) ([]worklocation.WorkLocationResponse, error) {
	locations, err := s.workLocationRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]worklocation.WorkLocationResponse, 0, len(locations))
	for _, w := range locations {
		responses = append(responses, worklocation.ToResponse(w))
	}
	return responses, nil
}

func (s *masterServiceImpl) UpdateWorkLocation(ctx context.Context, req worklocation.UpdateWorkLocationRequest) (worklocation.WorkLocationResponse, error) {
	if err := req.Validate(); err != nil {
		return worklocation.WorkLocationResponse{}, err
	}

	if err := s.workLocationRepo.Update(ctx, req); err != nil {
		return worklocation.WorkLocationResponse{}, err
	}
	return s.GetWorkLocation(ctx, req.ID)
}

func (s *masterServiceImpl) DeleteWorkLocation(ctx context.Context, id int64) error {
	if err := s.workLocationRepo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("work location deleted", "work_location_id", id)
	return nil
}

func (s *masterServiceImpl) WorkLocationStats(ctx context.Context) (worklocation.WorkLocationStatsResponse, error) {
	return s.workLocationRepo.Stats(ctx)
}
