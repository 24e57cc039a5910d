package http

import (
	"context"
	"net/http"

	"github.com/exellar/payroll-backend-go/internal/domain/leave"
	"github.com/exellar/payroll-backend-go/internal/handler/http/middleware"
	"github.com/exellar/payroll-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &leaveHandlerImpl{leaveService: leaveService}
}

func (h *leaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	sortBy, sortOrder := ordering(r)
	filter := leave.LeaveFilter{
		EmployeeID: getStringQueryParam(r, "employee"),
		LeaveType:  getStringQueryParam(r, "leave_type"),
		Status:     getStringQueryParam(r, "status"),
		StartDate:  getStringQueryParam(r, "start_date"),
		EndDate:    getStringQueryParam(r, "end_date"),
		Search:     getStringQueryParam(r, "search"),
		Page:       getIntQueryParam(r, "page", 1),
		Limit:      getIntQueryParam(r, "limit", 20),
		SortBy:     sortBy,
		SortOrder:  sortOrder,
	}

	result, err := h.leaveService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, response.NewMeta(result.Page, result.Limit, result.TotalCount))
}

func (h *leaveHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	result, err := h.leaveService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *leaveHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.leaveService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request created", result)
}

func (h *leaveHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	var req leave.UpdateLeaveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = id

	result, err := h.leaveService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request updated", result)
}

func (h *leaveHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.leaveService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request deleted", nil)
}

func (h *leaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.leaveService.Approve, "Leave request approved successfully")
}

func (h *leaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.leaveService.Reject, "Leave request rejected successfully")
}

// decide passes the caller's employee id as approver; users without one are
// rejected by the service.
func (h *leaveHandlerImpl) decide(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id int64, approver string) (leave.LeaveResponse, error), message string) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	var approver string
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok && claims.EmployeeID != nil {
		approver = *claims.EmployeeID
	}

	result, err := op(r.Context(), id, approver)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, result)
}

func (h *leaveHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	result, err := h.leaveService.Cancel(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request cancelled successfully", result)
}

func (h *leaveHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	result, err := h.leaveService.Stats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
