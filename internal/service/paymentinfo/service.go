package paymentinfo

import (
	"context"
	"log/slog"
	"strings"

	"github.com/exellar/payroll-backend-go/internal/domain/employee"
	"github.com/exellar/payroll-backend-go/internal/domain/paymentinfo"
)

type PaymentInfoServiceImpl struct {
	paymentRepo  paymentinfo.PaymentInfoRepository
	employeeRepo employee.EmployeeRepository
}

func NewPaymentInfoService(paymentRepo paymentinfo.PaymentInfoRepository, employeeRepo employee.EmployeeRepository) paymentinfo.PaymentInfoService {
	return &PaymentInfoServiceImpl{
		paymentRepo:  paymentRepo,
		employeeRepo: employeeRepo,
	}
}

func (s *PaymentInfoServiceImpl) List(ctx context.Context, employeeID *string) ([]paymentinfo.PaymentInfoResponse, error) {
	rows, err := s.paymentRepo.List(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]paymentinfo.PaymentInfoResponse, 0, len(rows))
	for _, p := range rows {
		responses = append(responses, paymentinfo.ToResponse(p))
	}
	return responses, nil
}

func (s *PaymentInfoServiceImpl) Get(ctx context.Context, id int64) (paymentinfo.PaymentInfoResponse, error) {
	p, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return paymentinfo.PaymentInfoResponse{}, err
	}
	return paymentinfo.ToResponse(p), nil
}

func (s *PaymentInfoServiceImpl) Create(ctx context.Context, req paymentinfo.CreatePaymentInfoRequest) (paymentinfo.PaymentInfoResponse, error) {
	if err := req.Validate(); err != nil {
		return paymentinfo.PaymentInfoResponse{}, err
	}

	exists, err := s.employeeRepo.Exists(ctx, req.EmployeeID)
	if err != nil {
		return paymentinfo.PaymentInfoResponse{}, err
	}
	if !exists {
		return paymentinfo.PaymentInfoResponse{}, paymentinfo.ErrEmployeeNotFound
	}

	created, err := s.paymentRepo.Create(ctx, paymentinfo.PaymentInformation{
		EmployeeID:         req.EmployeeID,
		PaymentMethod:      strings.TrimSpace(req.PaymentMethod),
		PaymentDescription: req.PaymentDescription,
		IsAutomated:        req.IsAutomated,
	})
	if err != nil {
		return paymentinfo.PaymentInfoResponse{}, err
	}

	slog.Info("payment information created", "payment_info_id", created.ID, "employee_id", created.EmployeeID)
	return paymentinfo.ToResponse(created), nil
}

func (s *PaymentInfoServiceImpl) Update(ctx context.Context, req paymentinfo.UpdatePaymentInfoRequest) (paymentinfo.PaymentInfoResponse, error) {
	if err := req.Validate(); err != nil {
		return paymentinfo.PaymentInfoResponse{}, err
	}
	if req.PaymentMethod != nil {
		method := strings.TrimSpace(*req.PaymentMethod)
		req.PaymentMethod = &method
	}

	updated, err := s.paymentRepo.Update(ctx, req)
	if err != nil {
		return paymentinfo.PaymentInfoResponse{}, err
	}
	return paymentinfo.ToResponse(updated), nil
}

func (s *PaymentInfoServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.paymentRepo.Delete(ctx, id)
}
