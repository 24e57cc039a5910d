package leave

import (
	"errors"
	"fmt"
)

var (
	ErrLeaveNotFound         = errors.New("leave request not found")
	ErrOverlappingLeave      = errors.New("you have overlapping leave requests for these dates")
	ErrInvalidTransition     = errors.New("invalid leave status transition")
	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrApproverNotLinked     = errors.New("authenticated user is not linked to an employee")
	ErrCannotApproveOwnLeave = errors.New("cannot approve or reject your own leave request")
	ErrLeaveNotPending       = errors.New("only pending leave requests can be modified")
)

// InvalidTransitionError matches ErrInvalidTransition with errors.Is.
type InvalidTransitionError struct {
	Action Action
	From   Status
}

func (e *InvalidTransitionError) Error() string {
	switch e.Action {
	case ActionApprove:
		return fmt.Sprintf("only pending leave requests can be approved (current status: %s)", e.From)
	case ActionReject:
		return fmt.Sprintf("only pending leave requests can be rejected (current status: %s)", e.From)
	default:
		return fmt.Sprintf("only pending or approved leave requests can be cancelled (current status: %s)", e.From)
	}
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
