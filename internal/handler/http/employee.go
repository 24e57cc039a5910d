package http

import (
	"net/http"
	"strconv"

	"github.com/exellar/payroll-backend-go/internal/domain/employee"
	"github.com/exellar/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	BulkCreate(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
	PayrollHistory(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{employeeService: employeeService}
}

func (h *employeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	sortBy, sortOrder := ordering(r)
	filter := employee.EmployeeFilter{
		Search:         getStringQueryParam(r, "search"),
		Designation:    getStringQueryParam(r, "designation"),
		WorkLocation:   getStringQueryParam(r, "work_location"),
		EmploymentType: getStringQueryParam(r, "employment_type"),
		Gender:         getStringQueryParam(r, "gender"),
		Status:         getStringQueryParam(r, "status"),
		Page:           getIntQueryParam(r, "page", 1),
		Limit:          getIntQueryParam(r, "limit", 20),
		SortBy:         sortBy,
		SortOrder:      sortOrder,
	}
	if dept := getStringQueryParam(r, "department"); dept != nil {
		id, err := strconv.ParseInt(*dept, 10, 64)
		if err != nil {
			response.BadRequest(w, "Invalid department", map[string]string{"department": "must be a department id"})
			return
		}
		filter.DepartmentID = &id
	}

	result, err := h.employeeService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, response.NewMeta(result.Page, result.Limit, result.TotalCount))
}

func (h *employeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.employeeService.Get(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *employeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.employeeService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created", result)
}

func (h *employeeHandlerImpl) BulkCreate(w http.ResponseWriter, r *http.Request) {
	var req employee.BulkCreateEmployeeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.employeeService.BulkCreate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, strconv.Itoa(len(result))+" employees created", result)
}

func (h *employeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req employee.UpdateEmployeeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.EmployeeID = chi.URLParam(r, "employeeID")

	result, err := h.employeeService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated", result)
}

func (h *employeeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.employeeService.Delete(r.Context(), chi.URLParam(r, "employeeID")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee deleted", nil)
}

func (h *employeeHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	result, err := h.employeeService.Stats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *employeeHandlerImpl) PayrollHistory(w http.ResponseWriter, r *http.Request) {
	result, err := h.employeeService.PayrollHistory(r.Context(),
		chi.URLParam(r, "employeeID"),
		getIntQueryParam(r, "page", 1),
		getIntQueryParam(r, "limit", 20),
	)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, response.NewMeta(result.Page, result.Limit, result.TotalCount))
}
