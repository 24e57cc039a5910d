package designation

import (
	"time"

	"github.com/exellar/payroll-backend-go/internal/pkg/validator"
)

type DesignationResponse struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Description   *string `json:"description"`
	EmployeeCount int64   `json:"employee_count"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

func ToResponse(d Designation) DesignationResponse {
	return DesignationResponse{
		ID:            d.ID,
		Name:          d.Name,
		Description:   d.Description,
		EmployeeCount: d.EmployeeCount,
		CreatedAt:     d.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     d.UpdatedAt.Format(time.RFC3339),
	}
}

type CreateDesignationRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

func (r *CreateDesignationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	}
	if len(r.Name) > 100 {
		errs.Add("name", "name must not exceed 100 characters")
	}

	return errs.Err()
}

type UpdateDesignationRequest struct {
	ID          int64   `json:"-"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (r *UpdateDesignationRequest) Validate() error {
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

type DesignationFilter struct {
	Search    *string
	SortBy    string
	SortOrder string
}

type DesignationStatsResponse struct {
	TotalDesignations            int64 `json:"total_designations"`
	DesignationsWithEmployees    int64 `json:"designations_with_employees"`
	DesignationsWithoutEmployees int64 `json:"designations_without_employees"`
}
