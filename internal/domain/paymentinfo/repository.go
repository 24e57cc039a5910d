package paymentinfo

import "context"

type PaymentInfoRepository interface {
	Create(ctx context.Context, p PaymentInformation) (PaymentInformation, error)
	GetByID(ctx context.Context, id int64) (PaymentInformation, error)
	List(ctx context.Context, employeeID *string) ([]PaymentInformation, error)
	Update(ctx context.Context, req UpdatePaymentInfoRequest) (PaymentInformation, error)
	Delete(ctx context.Context, id int64) error
}
