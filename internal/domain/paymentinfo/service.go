package paymentinfo

import "context"

type PaymentInfoService interface {
	List(ctx context.Context, employeeID *string) ([]PaymentInfoResponse, error)
	Get(ctx context.Context, id int64) (PaymentInfoResponse, error)
	Create(ctx context.Context, req CreatePaymentInfoRequest) (PaymentInfoResponse, error)
	Update(ctx context.Context, req UpdatePaymentInfoRequest) (PaymentInfoResponse, error)
	Delete(ctx context.Context, id int64) error
}
