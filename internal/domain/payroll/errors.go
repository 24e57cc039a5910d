package payroll

import (
	"errors"
	"fmt"
)

var (
	ErrPayrollNotFound      = errors.New("payroll not found")
	ErrPayrollAlreadyExists = errors.New("payroll already exists for this employee and pay period")
	ErrInvalidPeriod        = errors.New("pay period end must be after pay period start")
	ErrInvalidStatus        = errors.New("invalid payroll status")
	ErrInvalidTransition    = errors.New("invalid payroll status transition")
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrEmployeeIDRequired   = errors.New("employee_id parameter is required")
)

// InvalidTransitionError reports an operation attempted from a status that
// does not allow it. It matches ErrInvalidTransition with errors.Is.
type InvalidTransitionError struct {
	Op   Operation
	From Status
}

func (e *InvalidTransitionError) Error() string {
	switch e.Op {
	case OpProcess:
		return fmt.Sprintf("only draft payrolls can be processed (current status: %s)", e.From)
	case OpMarkPaid:
		return fmt.Sprintf("only processed payrolls can be marked as paid (current status: %s)", e.From)
	case OpRecalculate:
		return fmt.Sprintf("paid payrolls cannot be recalculated (current status: %s)", e.From)
	case OpCancel:
		return fmt.Sprintf("only draft or processed payrolls can be cancelled (current status: %s)", e.From)
	case OpUpdate:
		return fmt.Sprintf("payroll in status %s cannot be modified", e.From)
	case OpDelete:
		return fmt.Sprintf("payroll in status %s cannot be deleted", e.From)
	case OpPayslip:
		return fmt.Sprintf("payslip is only available for processed or paid payrolls (current status: %s)", e.From)
	}
	return fmt.Sprintf("cannot %s payroll in status %s", e.Op, e.From)
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
