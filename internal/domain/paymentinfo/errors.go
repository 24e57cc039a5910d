package paymentinfo

import "errors"

var (
	ErrPaymentInfoNotFound = errors.New("payment information not found")
	ErrEmployeeNotFound    = errors.New("employee not found")
)
