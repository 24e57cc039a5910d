package paymentinfo

import "time"

type PaymentInformation struct {
	ID                 int64
	EmployeeID         string
	PaymentMethod      string
	PaymentDescription *string
	IsAutomated        bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
