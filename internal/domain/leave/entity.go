package leave

import "time"

type LeaveType string

const (
	LeaveTypeCasual LeaveType = "CASUAL"
	LeaveTypeSick   LeaveType = "SICK"
	LeaveTypeAnnual LeaveType = "ANNUAL"
	LeaveTypeUnpaid LeaveType = "UNPAID"
	LeaveTypeOther  LeaveType = "OTHER"
)

var LeaveTypes = []LeaveType{LeaveTypeCasual, LeaveTypeSick, LeaveTypeAnnual, LeaveTypeUnpaid, LeaveTypeOther}

type Leave struct {
	ID         int64
	EmployeeID string
	LeaveType  LeaveType
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
	Status     Status
	ApprovedBy *string
	ApprovedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined fields
	EmployeeName   *string
	ApprovedByName *string
}

// Duration is the number of calendar days covered, both ends included.
func (l Leave) Duration() int {
	return int(l.EndDate.Sub(l.StartDate).Hours()/24) + 1
}

// Overlaps reports whether l and o share at least one day.
func (l Leave) Overlaps(o Leave) bool {
	return !l.StartDate.After(o.EndDate) && !o.StartDate.After(l.EndDate)
}

// Decide applies approve or reject, recording who decided and when.
func (l *Leave) Decide(action Action, approverID string, now time.Time) error {
	next, err := l.Status.Next(action)
	if err != nil {
		return err
	}
	l.Status = next
	l.ApprovedBy = &approverID
	l.ApprovedAt = &now
	return nil
}

func (l *Leave) Cancel() error {
	next, err := l.Status.Next(ActionCancel)
	if err != nil {
		return err
	}
	l.Status = next
	return nil
}
