package department

import (
	"time"

	"github.com/exellar/payroll-backend-go/internal/pkg/validator"
)

type DepartmentResponse struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Description   *string `json:"description"`
	EmployeeCount int64   `json:"employee_count"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

func ToResponse(d Department) DepartmentResponse {
	return DepartmentResponse{
		ID:            d.ID,
		Name:          d.Name,
		Description:   d.Description,
		EmployeeCount: d.EmployeeCount,
		CreatedAt:     d.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     d.UpdatedAt.Format(time.RFC3339),
	}
}

type CreateDepartmentRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

func (r *CreateDepartmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	}
	if len(r.Name) > 100 {
		errs.Add("name", "name must not exceed 100 characters")
	}

	return errs.Err()
}

type UpdateDepartmentRequest struct {
	ID          int64   `json:"-"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (r *UpdateDepartmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil {
		if validator.IsEmpty(*r.Name) {
			errs.Add("name", "name must not be empty")
		}
		if len(*r.Name) > 100 {
			errs.Add("name", "name must not exceed 100 characters")
		}
	}

	return errs.Err()
}

type DepartmentFilter struct {
	Search    *string
	SortBy    string
	SortOrder string
}

type DepartmentStatsResponse struct {
	TotalDepartments            int64 `json:"total_departments"`
	DepartmentsWithEmployees    int64 `json:"departments_with_employees"`
	DepartmentsWithoutEmployees int64 `json:"departments_without_employees"`
}
