package payroll

import "fmt"

// Status is the lifecycle state of a payroll record.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusProcessed Status = "PROCESSED"
	StatusPaid      Status = "PAID"
	StatusCancelled Status = "CANCELLED"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{StatusDraft, StatusProcessed, StatusPaid, StatusCancelled}

// ParseStatus converts s into a Status.
func ParseStatus(s string) (Status, error) {
	for _, st := range Statuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// IsTerminal reports whether no lifecycle operation can leave s.
func (s Status) IsTerminal() bool {
	return s == StatusPaid || s == StatusCancelled
}

// Operation names a lifecycle operation checked against the transition table.
type Operation string

const (
	OpProcess     Operation = "process"
	OpMarkPaid    Operation = "mark_paid"
	OpRecalculate Operation = "recalculate"
	OpCancel      Operation = "cancel"
	OpUpdate      Operation = "update"
	OpDelete      Operation = "delete"
	OpPayslip     Operation = "payslip"
)

// transitions maps each operation to the statuses it may start from and the
// status it leaves the record in. Every lifecycle method consults this table.
var transitions = map[Operation]map[Status]Status{
	OpProcess: {
		StatusDraft: StatusProcessed,
	},
	OpMarkPaid: {
		StatusProcessed: StatusPaid,
	},
	OpRecalculate: {
		StatusDraft:     StatusDraft,
		StatusProcessed: StatusProcessed,
		StatusCancelled: StatusCancelled,
	},
	OpCancel: {
		StatusDraft:     StatusCancelled,
		StatusProcessed: StatusCancelled,
	},
	OpUpdate: {
		StatusDraft:     StatusDraft,
		StatusProcessed: StatusProcessed,
	},
	OpDelete: {
		StatusDraft:     StatusDraft,
		StatusProcessed: StatusProcessed,
		StatusCancelled: StatusCancelled,
	},
	OpPayslip: {
		StatusProcessed: StatusProcessed,
		StatusPaid:      StatusPaid,
	},
}

// Next returns the status op moves s to, or an *InvalidTransitionError.
func (s Status) Next(op Operation) (Status, error) {
	if to, ok := transitions[op][s]; ok {
		return to, nil
	}
	return s, &InvalidTransitionError{Op: op, From: s}
}

// Allows reports whether op is legal from s.
func (s Status) Allows(op Operation) bool {
	_, ok := transitions[op][s]
	return ok
}
