package fixtures

import (
	"github.com/exellar/payroll-backend-go/internal/domain/employee"
	"github.com/exellar/payroll-backend-go/internal/domain/master/department"
	"github.com/exellar/payroll-backend-go/internal/domain/master/designation"
)

func strPtr(s string) *string { return &s }

// ==========================================
// DEFAULT DEPARTMENTS
// ==========================================

// GetDefaultDepartments returns the departments every fresh install starts with
func GetDefaultDepartments() []department.Department {
	return []department.Department{
		{Name: "Engineering", Description: strPtr("Product and platform development")},
		{Name: "Marketing", Description: strPtr("Brand, campaigns and communications")},
		{Name: "Sales", Description: strPtr("Customer acquisition and accounts")},
		{Name: "HR", Description: strPtr("People operations and payroll")},
		{Name: "Finance", Description: strPtr("Accounting, treasury and compliance")},
	}
}

// ==========================================
// DEFAULT DESIGNATIONS
// ==========================================

// GetDefaultDesignations returns common job titles, including the one new
// hires fall back to.
func GetDefaultDesignations() []designation.Designation {
	return []designation.Designation{
		{Name: employee.DefaultDesignation},
		{Name: "Intern"},
		{Name: "Software Engineer"},
		{Name: "Senior Software Engineer"},
		{Name: "Team Lead"},
		{Name: "Manager"},
		{Name: "HR Executive"},
		{Name: "Accountant"},
		{Name: "Director"},
	}
}
