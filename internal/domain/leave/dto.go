package leave

import (
	"time"

	"github.com/exellar/payroll-backend-go/internal/pkg/validator"
)

type CreateLeaveRequest struct {
	EmployeeID string `json:"employee"`
	LeaveType  string `json:"leave_type"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Reason     string `json:"reason"`
}

func (r *CreateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee", "is required")
	}
	validateLeaveType(&errs, r.LeaveType)
	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs.Add("start_date", "must be a date in YYYY-MM-DD format")
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs.Add("end_date", "must be a date in YYYY-MM-DD format")
	}
	if startOK && endOK && end.Before(start) {
		errs.Add("end_date", "end date must be after start date")
	}
	if validator.IsEmpty(r.Reason) {
		errs.Add("reason", "is required")
	}

	return errs.Err()
}

func (r *CreateLeaveRequest) ToEntity() Leave {
	start, _ := validator.IsValidDate(r.StartDate)
	end, _ := validator.IsValidDate(r.EndDate)
	return Leave{
		EmployeeID: r.EmployeeID,
		LeaveType:  LeaveType(r.LeaveType),
		StartDate:  start,
		EndDate:    end,
		Reason:     r.Reason,
		Status:     StatusPending,
	}
}

type UpdateLeaveRequest struct {
	ID        int64   `json:"-"`
	LeaveType *string `json:"leave_type,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	Reason    *string `json:"reason,omitempty"`
}

// Apply merges the request into l and validates the result.
func (r *UpdateLeaveRequest) Apply(l Leave) (Leave, error) {
	var errs validator.ValidationErrors

	if r.LeaveType != nil {
		validateLeaveType(&errs, *r.LeaveType)
		l.LeaveType = LeaveType(*r.LeaveType)
	}
	if r.StartDate != nil {
		if d, ok := validator.IsValidDate(*r.StartDate); ok {
			l.StartDate = d
		} else {
			errs.Add("start_date", "must be a date in YYYY-MM-DD format")
		}
	}
	if r.EndDate != nil {
		if d, ok := validator.IsValidDate(*r.EndDate); ok {
			l.EndDate = d
		} else {
			errs.Add("end_date", "must be a date in YYYY-MM-DD format")
		}
	}
	if r.Reason != nil {
		if validator.IsEmpty(*r.Reason) {
			errs.Add("reason", "must not be empty")
		}
		l.Reason = *r.Reason
	}
	if l.EndDate.Before(l.StartDate) {
		errs.Add("end_date", "end date must be after start date")
	}

	if err := errs.Err(); err != nil {
		return Leave{}, err
	}
	return l, nil
}

func validateLeaveType(errs *validator.ValidationErrors, leaveType string) {
	for _, lt := range LeaveTypes {
		if string(lt) == leaveType {
			return
		}
	}
	errs.Add("leave_type", "must be one of CASUAL, SICK, ANNUAL, UNPAID, OTHER")
}

type LeaveResponse struct {
	ID             int64   `json:"id"`
	EmployeeID     string  `json:"employee"`
	EmployeeName   string  `json:"employee_name"`
	LeaveType      string  `json:"leave_type"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	Duration       int     `json:"duration"`
	Reason         string  `json:"reason"`
	Status         string  `json:"status"`
	ApprovedBy     *string `json:"approved_by"`
	ApprovedByName *string `json:"approved_by_name"`
	ApprovedAt     *string `json:"approved_at"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

func ToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:             l.ID,
		EmployeeID:     l.EmployeeID,
		LeaveType:      string(l.LeaveType),
		StartDate:      l.StartDate.Format(validator.DateLayout),
		EndDate:        l.EndDate.Format(validator.DateLayout),
		Duration:       l.Duration(),
		Reason:         l.Reason,
		Status:         string(l.Status),
		ApprovedBy:     l.ApprovedBy,
		ApprovedByName: l.ApprovedByName,
		CreatedAt:      l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      l.UpdatedAt.Format(time.RFC3339),
	}
	if l.EmployeeName != nil {
		resp.EmployeeName = *l.EmployeeName
	}
	if l.ApprovedAt != nil {
		at := l.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &at
	}
	return resp
}

type LeaveFilter struct {
	EmployeeID *string
	LeaveType  *string
	Status     *string
	StartDate  *string // start_date >= StartDate
	EndDate    *string // end_date <= EndDate
	Search     *string
	Page       int
	Limit      int
	SortBy     string
	SortOrder  string
}

func (f *LeaveFilter) Validate() error {
	var errs validator.ValidationErrors
	if f.LeaveType != nil {
		validateLeaveType(&errs, *f.LeaveType)
	}
	if f.Status != nil && !validator.IsInSlice(*f.Status, []string{
		string(StatusPending), string(StatusApproved), string(StatusRejected), string(StatusCancelled),
	}) {
		errs.Add("status", "must be one of PENDING, APPROVED, REJECTED, CANCELLED")
	}
	for field, v := range map[string]*string{"start_date": f.StartDate, "end_date": f.EndDate} {
		if v != nil {
			if _, ok := validator.IsValidDate(*v); !ok {
				errs.Add(field, "must be a date in YYYY-MM-DD format")
			}
		}
	}
	if f.Limit < 0 || f.Limit > 100 {
		errs.Add("limit", "must be between 1 and 100")
	}
	return errs.Err()
}

type ListLeaveResponse struct {
	Data       []LeaveResponse `json:"data"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
}

type TypeCount struct {
	LeaveType string `json:"leave_type"`
	Count     int64  `json:"count"`
}

type MonthCount struct {
	Month int   `json:"month"`
	Count int64 `json:"count"`
}

type LeaveStatsResponse struct {
	TotalLeaves     int64        `json:"total_leaves"`
	PendingLeaves   int64        `json:"pending_leaves"`
	ApprovedLeaves  int64        `json:"approved_leaves"`
	RejectedLeaves  int64        `json:"rejected_leaves"`
	CancelledLeaves int64        `json:"cancelled_leaves"`
	LeaveTypes      []TypeCount  `json:"leave_types"`
	MonthlyTrends   []MonthCount `json:"monthly_trends"`
}
