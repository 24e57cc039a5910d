package employee

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderOther  Gender = "O"
)

type EmploymentType string

const (
	EmploymentTypeFullTime EmploymentType = "FULL_TIME"
	EmploymentTypePartTime EmploymentType = "PART_TIME"
	EmploymentTypeIntern   EmploymentType = "INTERN"
)

type Status string

const (
	StatusActive     Status = "ACTIVE"
	StatusInactive   Status = "INACTIVE"
	StatusTerminated Status = "TERMINATED"
)

const DefaultDesignation = "Employee"

type Employee struct {
	EmployeeID     string
	FirstName      string
	MiddleName     *string
	LastName       string
	WorkEmail      string
	PersonalEmail  *string
	DateOfJoining  time.Time
	DateOfBirth    time.Time
	Age            *int
	MobileNumber   *string
	PhoneNumber    *string
	Address        string
	Gender         Gender
	WorkLocation   *string
	Designation    string
	Status         Status
	DepartmentID   *int64
	EmploymentType *EmploymentType
	DateOfLeaving  *time.Time
	BasicSalary    decimal.Decimal
	AnnualCTC      decimal.Decimal
	BankName       *string
	AccountNumber  *string
	IFSCCode       *string
	PANNumber      *string
	AadharNumber   *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Joined fields
	DepartmentName *string
}

func (e Employee) FullName() string {
	parts := []string{e.FirstName}
	if e.MiddleName != nil && *e.MiddleName != "" {
		parts = append(parts, *e.MiddleName)
	}
	parts = append(parts, e.LastName)
	return strings.Join(parts, " ")
}

func (e Employee) MonthlyCTC() decimal.Decimal {
	return e.AnnualCTC.Div(decimal.NewFromInt(12)).Round(2)
}
