package salarycomponent

import (
	"time"

	"github.com/exellar/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type SalaryComponentResponse struct {
	ID              int64           `json:"id"`
	EmployeeID      *string         `json:"employee"`
	Name            string          `json:"name"`
	ComponentType   string          `json:"component_type"`
	CalculationType string          `json:"calculation_type"`
	Value           decimal.Decimal `json:"value"`
	IsTaxable       bool            `json:"is_taxable"`
	IsActive        bool            `json:"is_active"`
	Description     *string         `json:"description"`
	CreatedAt       string          `json:"created_at"`
	UpdatedAt       string          `json:"updated_at"`
}

func ToResponse(c SalaryComponent) SalaryComponentResponse {
	return SalaryComponentResponse{
		ID:              c.ID,
		EmployeeID:      c.EmployeeID,
		Name:            c.Name,
		ComponentType:   string(c.ComponentType),
		CalculationType: string(c.CalculationType),
		Value:           c.Value,
		IsTaxable:       c.IsTaxable,
		IsActive:        c.IsActive,
		Description:     c.Description,
		CreatedAt:       c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       c.UpdatedAt.Format(time.RFC3339),
	}
}

type CreateSalaryComponentRequest struct {
	EmployeeID      *string         `json:"employee,omitempty"`
	Name            string          `json:"name"`
	ComponentType   string          `json:"component_type"`
	CalculationType string          `json:"calculation_type"`
	Value           decimal.Decimal `json:"value"`
	IsTaxable       *bool           `json:"is_taxable,omitempty"`
	IsActive        *bool           `json:"is_active,omitempty"`
	Description     *string         `json:"description,omitempty"`
}

func (r *CreateSalaryComponentRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ComponentType == "" {
		r.ComponentType = string(ComponentTypeEarning)
	}
	if r.CalculationType == "" {
		r.CalculationType = string(CalculationFixed)
	}
	if len(r.Name) > 100 {
		errs.Add("name", "must not exceed 100 characters")
	}
	validateKinds(&errs, r.ComponentType, r.CalculationType)
	validateValue(&errs, CalculationType(r.CalculationType), r.Value)

	return errs.Err()
}

func (r *CreateSalaryComponentRequest) ToEntity() SalaryComponent {
	c := SalaryComponent{
		EmployeeID:      r.EmployeeID,
		Name:            r.Name,
		ComponentType:   ComponentType(r.ComponentType),
		CalculationType: CalculationType(r.CalculationType),
		Value:           r.Value,
		IsTaxable:       true,
		IsActive:        true,
		Description:     r.Description,
	}
	if validator.IsEmpty(c.Name) {
		c.Name = DefaultName
	}
	if r.IsTaxable != nil {
		c.IsTaxable = *r.IsTaxable
	}
	if r.IsActive != nil {
		c.IsActive = *r.IsActive
	}
	return c
}

type UpdateSalaryComponentRequest struct {
	ID              int64            `json:"-"`
	Name            *string          `json:"name,omitempty"`
	ComponentType   *string          `json:"component_type,omitempty"`
	CalculationType *string          `json:"calculation_type,omitempty"`
	Value           *decimal.Decimal `json:"value,omitempty"`
	IsTaxable       *bool            `json:"is_taxable,omitempty"`
	IsActive        *bool            `json:"is_active,omitempty"`
	Description     *string          `json:"description,omitempty"`
}

// Apply merges the request into c and validates the result.
func (r *UpdateSalaryComponentRequest) Apply(c SalaryComponent) (SalaryComponent, error) {
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.ComponentType != nil {
		c.ComponentType = ComponentType(*r.ComponentType)
	}
	if r.CalculationType != nil {
		c.CalculationType = CalculationType(*r.CalculationType)
	}
	if r.Value != nil {
		c.Value = *r.Value
	}
	if r.IsTaxable != nil {
		c.IsTaxable = *r.IsTaxable
	}
	if r.IsActive != nil {
		c.IsActive = *r.IsActive
	}
	if r.Description != nil {
		c.Description = r.Description
	}

	var errs validator.ValidationErrors
	if validator.IsEmpty(c.Name) {
		errs.Add("name", "must not be empty")
	}
	validateKinds(&errs, string(c.ComponentType), string(c.CalculationType))
	validateValue(&errs, c.CalculationType, c.Value)
	if err := errs.Err(); err != nil {
		return SalaryComponent{}, err
	}
	return c, nil
}

func validateKinds(errs *validator.ValidationErrors, componentType, calculationType string) {
	if !validator.IsInSlice(componentType, []string{string(ComponentTypeEarning), string(ComponentTypeDeduction)}) {
		errs.Add("component_type", "must be EARNING or DEDUCTION")
	}
	if !validator.IsInSlice(calculationType, []string{
		string(CalculationFixed), string(CalculationPercentage), string(CalculationPercentageCTC), string(CalculationCustom),
	}) {
		errs.Add("calculation_type", "must be one of FIXED, PERCENTAGE, PERCENTAGE_CTC, CUSTOM")
	}
}

func validateValue(errs *validator.ValidationErrors, calc CalculationType, value decimal.Decimal) {
	switch {
	case value.IsNegative():
		errs.Add("value", "must be non-negative")
	case (calc == CalculationPercentage || calc == CalculationPercentageCTC) && value.GreaterThan(hundred):
		errs.Add("value", "percentage cannot exceed 100")
	case !validator.HasMaxTwoDecimals(value):
		errs.Add("value", "must have at most 2 decimal places")
	}
}

type SalaryComponentFilter struct {
	EmployeeID      *string
	ComponentType   *string
	CalculationType *string
	IsActive        *bool
	IsTaxable       *bool
	Search          *string
	SortBy          string
	SortOrder       string
}

type SalaryComponentStatsResponse struct {
	TotalComponents    int64 `json:"total_components"`
	ActiveComponents   int64 `json:"active_components"`
	InactiveComponents int64 `json:"inactive_components"`
	Earnings           int64 `json:"earnings"`
	Deductions         int64 `json:"deductions"`
	TaxableComponents  int64 `json:"taxable_components"`
}
