package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmployeeIDExists   = errors.New("employee ID already exists")
	ErrEmailExists        = errors.New("work email already registered")
	ErrDepartmentNotFound = errors.New("department not found")
	ErrEmptyBulkRequest   = errors.New("at least one employee is required")
)
