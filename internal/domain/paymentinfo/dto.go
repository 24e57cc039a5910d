package paymentinfo

import (
	"time"

	"github.com/exellar/payroll-backend-go/internal/pkg/validator"
)

type CreatePaymentInfoRequest struct {
	EmployeeID         string  `json:"employee"`
	PaymentMethod      string  `json:"payment_method"`
	PaymentDescription *string `json:"payment_description,omitempty"`
	IsAutomated        bool    `json:"is_automated"`
}

func (r *CreatePaymentInfoRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee", "is required")
	}
	if validator.IsEmpty(r.PaymentMethod) {
		errs.Add("payment_method", "is required")
	} else if len(r.PaymentMethod) > 50 {
		errs.Add("payment_method", "must not exceed 50 characters")
	}

	return errs.Err()
}

type UpdatePaymentInfoRequest struct {
	ID                 int64   `json:"-"`
	PaymentMethod      *string `json:"payment_method,omitempty"`
	PaymentDescription *string `json:"payment_description,omitempty"`
	IsAutomated        *bool   `json:"is_automated,omitempty"`
}

func (r *UpdatePaymentInfoRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PaymentMethod != nil {
		if validator.IsEmpty(*r.PaymentMethod) {
			errs.Add("payment_method", "must not be empty")
		} else if len(*r.PaymentMethod) > 50 {
			errs.Add("payment_method", "must not exceed 50 characters")
		}
	}

	return errs.Err()
}

type PaymentInfoResponse struct {
	ID                 int64   `json:"id"`
	EmployeeID         string  `json:"employee"`
	PaymentMethod      string  `json:"payment_method"`
	PaymentDescription *string `json:"payment_description"`
	IsAutomated        bool    `json:"is_automated"`
	CreatedAt          string  `json:"created_at"`
	UpdatedAt          string  `json:"updated_at"`
}

func ToResponse(p PaymentInformation) PaymentInfoResponse {
	return PaymentInfoResponse{
		ID:                 p.ID,
		EmployeeID:         p.EmployeeID,
		PaymentMethod:      p.PaymentMethod,
		PaymentDescription: p.PaymentDescription,
		IsAutomated:        p.IsAutomated,
		CreatedAt:          p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          p.UpdatedAt.Format(time.RFC3339),
	}
}
