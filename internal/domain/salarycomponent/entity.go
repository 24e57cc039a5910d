package salarycomponent

import (
	"time"

	"github.com/shopspring/decimal"
)

type ComponentType string

const (
	ComponentTypeEarning   ComponentType = "EARNING"
	ComponentTypeDeduction ComponentType = "DEDUCTION"
)

type CalculationType string

const (
	CalculationFixed         CalculationType = "FIXED"
	CalculationPercentage    CalculationType = "PERCENTAGE"
	CalculationPercentageCTC CalculationType = "PERCENTAGE_CTC"
	CalculationCustom        CalculationType = "CUSTOM"
)

const DefaultName = "Basic Salary"

type SalaryComponent struct {
	ID              int64
	EmployeeID      *string
	Name            string
	ComponentType   ComponentType
	CalculationType CalculationType
	Value           decimal.Decimal
	IsTaxable       bool
	IsActive        bool
	Description     *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
