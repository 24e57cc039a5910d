package leave

// Status of a leave request.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
)

type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionCancel  Action = "cancel"
)

var transitions = map[Action]map[Status]Status{
	ActionApprove: {StatusPending: StatusApproved},
	ActionReject:  {StatusPending: StatusRejected},
	ActionCancel:  {StatusPending: StatusCancelled, StatusApproved: StatusCancelled},
}

// Next returns the status action moves s to.
func (s Status) Next(action Action) (Status, error) {
	if to, ok := transitions[action][s]; ok {
		return to, nil
	}
	return s, &InvalidTransitionError{Action: action, From: s}
}
