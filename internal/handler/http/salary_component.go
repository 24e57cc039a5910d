package http

import (
	"net/http"

	"github.com/exellar/payroll-backend-go/internal/domain/salarycomponent"
	"github.com/exellar/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type SalaryComponentHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
	// AssignToEmployee serves POST /employees/{employeeID}/salary-components.
	AssignToEmployee(w http.ResponseWriter, r *http.Request)
}

type salaryComponentHandlerImpl struct {
	componentService salarycomponent.SalaryComponentService
}

func NewSalaryComponentHandler(componentService salarycomponent.SalaryComponentService) SalaryComponentHandler {
	return &salaryComponentHandlerImpl{componentService: componentService}
}

func (h *salaryComponentHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	sortBy, sortOrder := ordering(r)
	result, err := h.componentService.List(r.Context(), salarycomponent.SalaryComponentFilter{
		EmployeeID:      getStringQueryParam(r, "employee"),
		ComponentType:   getStringQueryParam(r, "component_type"),
		CalculationType: getStringQueryParam(r, "calculation_type"),
		IsActive:        getBoolQueryParam(r, "is_active"),
		IsTaxable:       getBoolQueryParam(r, "is_taxable"),
		Search:          getStringQueryParam(r, "search"),
		SortBy:          sortBy,
		SortOrder:       sortOrder,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *salaryComponentHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	result, err := h.componentService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *salaryComponentHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req salarycomponent.CreateSalaryComponentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.componentService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary component created", result)
}

func (h *salaryComponentHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	var req salarycomponent.UpdateSalaryComponentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = id

	result, err := h.componentService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary component updated", result)
}

func (h *salaryComponentHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.componentService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary component deleted", nil)
}

func (h *salaryComponentHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	result, err := h.componentService.Stats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *salaryComponentHandlerImpl) AssignToEmployee(w http.ResponseWriter, r *http.Request) {
	var req salarycomponent.CreateSalaryComponentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.componentService.AssignToEmployee(r.Context(), chi.URLParam(r, "employeeID"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary component assigned", result)
}
