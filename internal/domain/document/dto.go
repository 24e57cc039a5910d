package document

import (
	"io"

	"github.com/exellar/payroll-backend-go/internal/pkg/validator"
)

// MaxUploadSize caps multipart document uploads.
const MaxUploadSize = 10 << 20

type UploadDocumentRequest struct {
	Name        string
	Type        string
	Employee    string
	Department  string
	Description string
	Status      string

	// Optional file; nil creates a metadata-only document.
	File        io.Reader
	FileName    string
	FileSize    int64
	ContentType string
}

func (r *UploadDocumentRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Status == "" {
		r.Status = string(StatusActive)
	}
	if validator.IsEmpty(r.Name) {
		errs.Add("name", "is required")
	} else if len(r.Name) > 100 {
		errs.Add("name", "must not exceed 100 characters")
	}
	if !validator.IsInSlice(r.Type, DocumentTypes) {
		errs.Add("type", "must be one of Salary Report, Tax Document, Bonus Report, Leave Record, Other")
	}
	if validator.IsEmpty(r.Employee) {
		errs.Add("employee", "is required")
	}
	if !validator.IsInSlice(r.Department, Departments) {
		errs.Add("department", "must be one of Engineering, Marketing, Sales, HR, Finance")
	}
	if !validator.IsInSlice(r.Status, Statuses) {
		errs.Add("status", "must be one of Active, Pending, Archived")
	}
	if r.File != nil && r.FileSize > MaxUploadSize {
		errs.Add("file", ErrFileTooLarge.Error())
	}

	return errs.Err()
}

type UpdateDocumentRequest struct {
	ID          int64   `json:"-"`
	Name        *string `json:"name,omitempty"`
	Type        *string `json:"type,omitempty"`
	Employee    *string `json:"employee,omitempty"`
	Department  *string `json:"department,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

func (r *UpdateDocumentRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs.Add("name", "must not be empty")
	}
	if r.Type != nil && !validator.IsInSlice(*r.Type, DocumentTypes) {
		errs.Add("type", "must be one of Salary Report, Tax Document, Bonus Report, Leave Record, Other")
	}
	if r.Employee != nil && validator.IsEmpty(*r.Employee) {
		errs.Add("employee", "must not be empty")
	}
	if r.Department != nil && !validator.IsInSlice(*r.Department, Departments) {
		errs.Add("department", "must be one of Engineering, Marketing, Sales, HR, Finance")
	}
	if r.Status != nil && !validator.IsInSlice(*r.Status, Statuses) {
		errs.Add("status", "must be one of Active, Pending, Archived")
	}

	return errs.Err()
}

type DocumentResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Employee    string `json:"employee"`
	Department  string `json:"department"`
	Description string `json:"description"`
	FilePath    string `json:"file_path"`
	FileURL     string `json:"file_url,omitempty"`
	UploadDate  string `json:"upload_date"`
	Size        string `json:"size"`
	SizeBytes   int64  `json:"size_bytes"`
	Status      string `json:"status"`
}

type DocumentFilter struct {
	Type       *string
	Department *string
	Status     *string
	Search     *string
}
