package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/exellar/payroll-backend-go/internal/domain/payroll"
	"github.com/exellar/payroll-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)

	// Lifecycle actions
	Process(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)
	Recalculate(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)

	Stats(w http.ResponseWriter, r *http.Request)
	EmployeeStats(w http.ResponseWriter, r *http.Request)
	Payslip(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

func (h *payrollHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	sortBy, sortOrder := ordering(r)
	filter := payroll.PayrollFilter{
		EmployeeID: getStringQueryParam(r, "employee"),
		Status:     getStringQueryParam(r, "status"),
		Department: getStringQueryParam(r, "department"),
		StartDate:  getStringQueryParam(r, "start_date"),
		EndDate:    getStringQueryParam(r, "end_date"),
		Search:     getStringQueryParam(r, "search"),
		Page:       getIntQueryParam(r, "page", 1),
		Limit:      getIntQueryParam(r, "limit", 20),
		SortBy:     sortBy,
		SortOrder:  sortOrder,
	}
	if filter.EmployeeID == nil {
		filter.EmployeeID = getStringQueryParam(r, "employee_id")
	}

	result, err := h.payrollService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, response.NewMeta(result.Page, result.Limit, result.TotalCount))
}

func (h *payrollHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	result, err := h.payrollService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreatePayrollRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.payrollService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll created", result)
}

func (h *payrollHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	var req payroll.UpdatePayrollRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = id

	result, err := h.payrollService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll updated", result)
}

func (h *payrollHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.payrollService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll deleted", nil)
}

func (h *payrollHandlerImpl) Process(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, h.payrollService.Process, "Payroll processed successfully")
}

func (h *payrollHandlerImpl) MarkPaid(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, h.payrollService.MarkPaid, "Payroll marked as paid successfully")
}

func (h *payrollHandlerImpl) Recalculate(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, h.payrollService.Recalculate, "Payroll recalculated successfully")
}

func (h *payrollHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, h.payrollService.Cancel, "Payroll cancelled successfully")
}

func (h *payrollHandlerImpl) action(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id int64) (payroll.PayrollResponse, error), message string) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	result, err := op(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, result)
}

func (h *payrollHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.Stats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) EmployeeStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.EmployeeStats(r.Context(), r.URL.Query().Get("employee_id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) Payslip(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	pdf, filename, err := h.payrollService.Payslip(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	if _, err := w.Write(pdf); err != nil {
		slog.Error("failed to write payslip", "payroll_id", id, "error", err)
	}
}
