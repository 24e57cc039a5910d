package http

import (
	"net/http"

	"github.com/exellar/payroll-backend-go/internal/domain/master/department"
	"github.com/exellar/payroll-backend-go/internal/domain/master/designation"
	"github.com/exellar/payroll-backend-go/internal/domain/master/worklocation"
	"github.com/exellar/payroll-backend-go/internal/handler/http/response"
	"github.com/exellar/payroll-backend-go/internal/service/master"
)

type MasterHandler interface {
	// Department handlers
	CreateDepartment(w http.ResponseWriter, r *http.Request)
	GetDepartment(w http.ResponseWriter, r *http.Request)
	ListDepartments(w http.ResponseWriter, r *http.Request)
	UpdateDepartment(w http.ResponseWriter, r *http.Request)
	DeleteDepartment(w http.ResponseWriter, r *http.Request)
	DepartmentStats(w http.ResponseWriter, r *http.Request)

	// Designation handlers
	CreateDesignation(w http.ResponseWriter, r *http.Request)
	GetDesignation(w http.ResponseWriter, r *http.Request)
	GetDesignationByName(w http.ResponseWriter, r *http.Request)
	ListDesignations(w http.ResponseWriter, r *http.Request)
	UpdateDesignation(w http.ResponseWriter, r *http.Request)
	DeleteDesignation(w http.ResponseWriter, r *http.Request)
	DesignationStats(w http.ResponseWriter, r *http.Request)

	// Work location handlers
	CreateWorkLocation(w http.ResponseWriter, r *http.Request)
	GetWorkLocation(w http.ResponseWriter, r *http.Request)
	ListWorkLocations(w http.ResponseWriter, r *http.Request)
	UpdateWorkLocation(w http.ResponseWriter, r *http.Request)
	DeleteWorkLocation(w http.ResponseWriter, r *http.Request)
	WorkLocationStats(w http.ResponseWriter, r *http.Request)
}

type masterHandlerImpl struct {
	masterService master.MasterService
}

func NewMasterHandler(masterService master.MasterService) MasterHandler {
	return &masterHandlerImpl{
		masterService: masterService,
	}
}

// ==================== DEPARTMENT HANDLERS ====================

func (h *masterHandlerImpl) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var req department.CreateDepartmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.masterService.CreateDepartment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Department created", result)
}

func (h *masterHandlerImpl) GetDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	result, err := h.masterService.GetDepartment(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) ListDepartments(w http.ResponseWriter, r *http.Request) {
	sortBy, sortOrder := ordering(r)
	result, err := h.masterService.ListDepartments(r.Context(), department.DepartmentFilter{
		Search:    getStringQueryParam(r, "search"),
		SortBy:    sortBy,
		SortOrder: sortOrder,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	var req department.UpdateDepartmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = id

	result, err := h.masterService.UpdateDepartment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Department updated", result)
}

func (h *masterHandlerImpl) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.masterService.DeleteDepartment(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Department deleted", nil)
}

func (h *masterHandlerImpl) DepartmentStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.DepartmentStats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ==================== DESIGNATION HANDLERS ====================

func (h *masterHandlerImpl) CreateDesignation(w http.ResponseWriter, r *http.Request) {
	var req designation.CreateDesignationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.masterService.CreateDesignation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Designation created", result)
}

func (h *masterHandlerImpl) GetDesignation(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	result, err := h.masterService.GetDesignation(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetDesignationByName serves /designations/by-name?name=...
func (h *masterHandlerImpl) GetDesignationByName(w http.ResponseWriter, r *http.Request) {
	name := getStringQueryParam(r, "name")
	if name == nil {
		response.BadRequest(w, "name parameter is required", nil)
		return
	}

	result, err := h.masterService.GetDesignationByName(r.Context(), *name)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) ListDesignations(w http.ResponseWriter, r *http.Request) {
	sortBy, sortOrder := ordering(r)
	result, err := h.masterService.ListDesignations(r.Context(), designation.DesignationFilter{
		Search:    getStringQueryParam(r, "search"),
		SortBy:    sortBy,
		SortOrder: sortOrder,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) UpdateDesignation(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	var req designation.UpdateDesignationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = id

	result, err := h.masterService.UpdateDesignation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Designation updated", result)
}

func (h *masterHandlerImpl) DeleteDesignation(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.masterService.DeleteDesignation(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Designation deleted", nil)
}

func (h *masterHandlerImpl) DesignationStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.DesignationStats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ==================== WORK LOCATION HANDLERS ====================

func (h *masterHandlerImpl) CreateWorkLocation(w http.ResponseWriter, r *http.Request) {
	var req worklocation.CreateWorkLocationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.masterService.CreateWorkLocation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Work location created", result)
}

func (h *masterHandlerImpl) GetWorkLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	result, err := h.masterService.GetWorkLocation(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) ListWorkLocations(w http.ResponseWriter, r *http.Request) {
	sortBy, sortOrder := ordering(r)
	result, err := h.masterService.ListWorkLocations(r.Context(), worklocation.WorkLocationFilter{
		Search:          getStringQueryParam(r, "search"),
		City:            getStringQueryParam(r, "city"),
		State:           getStringQueryParam(r, "state"),
		IsFilingAddress: getBoolQueryParam(r, "is_filing_address"),
		SortBy:          sortBy,
		SortOrder:       sortOrder,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) UpdateWorkLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	var req worklocation.UpdateWorkLocationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = id

	result, err := h.masterService.UpdateWorkLocation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work location updated", result)
}

func (h *masterHandlerImpl) DeleteWorkLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.masterService.DeleteWorkLocation(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work location deleted", nil)
}

func (h *masterHandlerImpl) WorkLocationStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.WorkLocationStats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
