package dashboard

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatsResponse is the compact dashboard summary. Keys follow the frontend's camelCase contract.
type StatsResponse struct {
	TotalEmployees  int64 `json:"totalEmployees"`
	TotalPayroll    int64 `json:"totalPayroll"`
	PendingRequests int64 `json:"pendingRequests"`
	LeaveRequests   int64 `json:"leaveRequests"`
}

type DepartmentStat struct {
	Department  *string         `json:"department__name"`
	Count       int64           `json:"count"`
	TotalSalary decimal.Decimal `json:"total_salary"`
}

type EmploymentStat struct {
	EmploymentType *string `json:"employment_type"`
	Count          int64   `json:"count"`
}

type DetailedStatsResponse struct {
	StatsResponse
	RecentHires         int64            `json:"recentHires"`
	DepartmentStats     []DepartmentStat `json:"departmentStats"`
	EmploymentBreakdown []EmploymentStat `json:"employmentBreakdown"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
