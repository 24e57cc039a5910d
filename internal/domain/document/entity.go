package document

import (
	"fmt"
	"time"
)

type DocumentType string

const (
	TypeSalaryReport DocumentType = "Salary Report"
	TypeTaxDocument  DocumentType = "Tax Document"
	TypeBonusReport  DocumentType = "Bonus Report"
	TypeLeaveRecord  DocumentType = "Leave Record"
	TypeOther        DocumentType = "Other"
)

var DocumentTypes = []string{
	string(TypeSalaryReport), string(TypeTaxDocument), string(TypeBonusReport), string(TypeLeaveRecord), string(TypeOther),
}

var Departments = []string{"Engineering", "Marketing", "Sales", "HR", "Finance"}

type Status string

const (
	StatusActive   Status = "Active"
	StatusPending  Status = "Pending"
	StatusArchived Status = "Archived"
)

var Statuses = []string{string(StatusActive), string(StatusPending), string(StatusArchived)}

type Document struct {
	ID          int64
	Name        string
	Type        DocumentType
	Employee    string
	Department  string
	Description string
	FilePath    string
	SizeBytes   int64
	ContentType string
	UploadDate  time.Time
	Status      Status
}

// Size formats SizeBytes in megabytes with one decimal, e.g. "1.5 MB".
func (d Document) Size() string {
	return fmt.Sprintf("%.1f MB", float64(d.SizeBytes)/(1024*1024))
}
