package salarycomponent

import "errors"

var (
	ErrSalaryComponentNotFound = errors.New("salary component not found")
	ErrEmployeeNotFound        = errors.New("employee not found")
)
