package worklocation

import "time"

type WorkLocation struct {
	ID              int64
	Name            string
	Address         string
	Address2        *string
	City            string
	State           string
	Pincode         string
	IsFilingAddress bool
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined fields
	EmployeeCount int64
}
