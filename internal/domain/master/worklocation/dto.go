package worklocation

import (
	"time"

	"github.com/exellar/payroll-backend-go/internal/pkg/validator"
)

type WorkLocationResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Address         string  `json:"address"`
	Address2        *string `json:"address2"`
	City            string  `json:"city"`
	State           string  `json:"state"`
	Pincode         string  `json:"pincode"`
	IsFilingAddress bool    `json:"is_filing_address"`
	EmployeeCount   int64   `json:"employee_count"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

func ToResponse(w WorkLocation) WorkLocationResponse {
	return WorkLocationResponse{
		ID:              w.ID,
		Name:            w.Name,
		Address:         w.Address,
		Address2:        w.Address2,
		City:            w.City,
		State:           w.State,
		Pincode:         w.Pincode,
		IsFilingAddress: w.IsFilingAddress,
		EmployeeCount:   w.EmployeeCount,
		CreatedAt:       w.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       w.UpdatedAt.Format(time.RFC3339),
	}
}

type CreateWorkLocationRequest struct {
	Name            string  `json:"name"`
	Address         string  `json:"address"`
	Address2        *string `json:"address2,omitempty"`
	City            string  `json:"city"`
	State           string  `json:"state"`
	Pincode         string  `json:"pincode"`
	IsFilingAddress bool    `json:"is_filing_address"`
}

func (r *CreateWorkLocationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	} else if len(r.Name) > 100 {
		errs.Add("name", "name must not exceed 100 characters")
	}
	if validator.IsEmpty(r.Address) {
		errs.Add("address", "address is required")
	}
	if validator.IsEmpty(r.City) {
		errs.Add("city", "city is required")
	}
	if validator.IsEmpty(r.State) {
		errs.Add("state", "state is required")
	}
	if !validator.IsValidPincode(r.Pincode) {
		errs.Add("pincode", "pincode must be 6 digits")
	}

	return errs.Err()
}

type UpdateWorkLocationRequest struct {
	ID              int64   `json:"-"`
	Name            *string `json:"name,omitempty"`
	Address         *string `json:"address,omitempty"`
	Address2        *string `json:"address2,omitempty"`
	City            *string `json:"city,omitempty"`
	State           *string `json:"state,omitempty"`
	Pincode         *string `json:"pincode,omitempty"`
	IsFilingAddress *bool   `json:"is_filing_address,omitempty"`
}

func (r *UpdateWorkLocationRequest) Validate() error {
	var errs validator.ValidationErrors

	for field, v := range map[string]*string{
		"name":    r.Name,
		"address": r.Address,
		"city":    r.City,
		"state":   r.State,
	} {
		if v != nil && validator.IsEmpty(*v) {
			errs.Add(field, field+" must not be empty")
		}
	}
	if r.Pincode != nil && !validator.IsValidPincode(*r.Pincode) {
		errs.Add("pincode", "pincode must be 6 digits")
	}

	return errs.Err()
}

type WorkLocationFilter struct {
	Search          *string
	City            *string
	State           *string
	IsFilingAddress *bool
	SortBy          string
	SortOrder       string
}

type WorkLocationStatsResponse struct {
	TotalLocations            int64 `json:"total_locations"`
	FilingAddresses           int64 `json:"filing_addresses"`
	LocationsWithEmployees    int64 `json:"locations_with_employees"`
	LocationsWithoutEmployees int64 `json:"locations_without_employees"`
}
