package designation

import "time"

type Designation struct {
	ID          int64
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	EmployeeCount int64
}
