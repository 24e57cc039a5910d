package http

import (
	"net/http"

	"github.com/exellar/payroll-backend-go/internal/domain/paymentinfo"
	"github.com/exellar/payroll-backend-go/internal/handler/http/response"
)

type PaymentInfoHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type paymentInfoHandlerImpl struct {
	paymentService paymentinfo.PaymentInfoService
}

func NewPaymentInfoHandler(paymentService paymentinfo.PaymentInfoService) PaymentInfoHandler {
	return &paymentInfoHandlerImpl{paymentService: paymentService}
}

func (h *paymentInfoHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.paymentService.List(r.Context(), getStringQueryParam(r, "employee"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *paymentInfoHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	result, err := h.paymentService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *paymentInfoHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req paymentinfo.CreatePaymentInfoRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.paymentService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payment information created", result)
}

func (h *paymentInfoHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	var req paymentinfo.UpdatePaymentInfoRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = id

	result, err := h.paymentService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payment information updated", result)
}

func (h *paymentInfoHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.paymentService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payment information deleted", nil)
}
