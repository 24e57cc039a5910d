package employee

import (
	"time"

	"github.com/exellar/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	EmployeeID     string          `json:"employee_id"`
	FirstName      string          `json:"first_name"`
	MiddleName     *string         `json:"middle_name,omitempty"`
	LastName       string          `json:"last_name"`
	WorkEmail      string          `json:"work_email"`
	PersonalEmail  *string         `json:"personal_email,omitempty"`
	DateOfJoining  string          `json:"date_of_joining"`
	DateOfBirth    string          `json:"date_of_birth"`
	Age            *int            `json:"age,omitempty"`
	MobileNumber   *string         `json:"mobile_number,omitempty"`
	PhoneNumber    *string         `json:"phone_number,omitempty"`
	Address        *string         `json:"address,omitempty"`
	Gender         *string         `json:"gender,omitempty"`
	WorkLocation   *string         `json:"work_location,omitempty"`
	Designation    *string         `json:"designation,omitempty"`
	Status         *string         `json:"status,omitempty"`
	DepartmentID   *int64          `json:"department,omitempty"`
	EmploymentType *string         `json:"employment_type,omitempty"`
	DateOfLeaving  *string         `json:"date_of_leaving,omitempty"`
	BasicSalary    decimal.Decimal `json:"basic_salary"`
	AnnualCTC      decimal.Decimal `json:"annual_ctc"`
	BankName       *string         `json:"bank_name,omitempty"`
	AccountNumber  *string         `json:"account_number,omitempty"`
	IFSCCode       *string         `json:"ifsc_code,omitempty"`
	PANNumber      *string         `json:"pan_number,omitempty"`
	AadharNumber   *string         `json:"aadhar_number,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmployeeID(r.EmployeeID) {
		errs.Add("employee_id", "is required and must be at most 20 letters, digits, '-' or '_'")
	}
	if validator.IsEmpty(r.FirstName) {
		errs.Add("first_name", "is required")
	}
	if validator.IsEmpty(r.LastName) {
		errs.Add("last_name", "is required")
	}
	if !validator.IsValidEmail(r.WorkEmail) {
		errs.Add("work_email", "must be a valid email")
	}
	if r.PersonalEmail != nil && *r.PersonalEmail != "" && !validator.IsValidEmail(*r.PersonalEmail) {
		errs.Add("personal_email", "must be a valid email")
	}

	joined, joinedOK := validator.IsValidDate(r.DateOfJoining)
	if !joinedOK {
		errs.Add("date_of_joining", "must be a date in YYYY-MM-DD format")
	}
	if _, ok := validator.IsValidDate(r.DateOfBirth); !ok {
		errs.Add("date_of_birth", "must be a date in YYYY-MM-DD format")
	}
	if r.DateOfLeaving != nil {
		left, ok := validator.IsValidDate(*r.DateOfLeaving)
		if !ok {
			errs.Add("date_of_leaving", "must be a date in YYYY-MM-DD format")
		} else if joinedOK && !left.After(joined) {
			errs.Add("date_of_leaving", "must be after date of joining")
		}
	}

	validateSalary(&errs, r.BasicSalary, r.AnnualCTC)
	validateEnums(&errs, r.Gender, r.Status, r.EmploymentType)
	validateContact(&errs, r.MobileNumber, r.PhoneNumber)
	validateBank(&errs, r.IFSCCode, r.PANNumber, r.AadharNumber)

	return errs.Err()
}

// ToEntity converts a validated request.
func (r *CreateEmployeeRequest) ToEntity() Employee {
	joined, _ := validator.IsValidDate(r.DateOfJoining)
	born, _ := validator.IsValidDate(r.DateOfBirth)

	e := Employee{
		EmployeeID:    r.EmployeeID,
		FirstName:     r.FirstName,
		MiddleName:    r.MiddleName,
		LastName:      r.LastName,
		WorkEmail:     r.WorkEmail,
		PersonalEmail: r.PersonalEmail,
		DateOfJoining: joined,
		DateOfBirth:   born,
		Age:           r.Age,
		MobileNumber:  r.MobileNumber,
		PhoneNumber:   r.PhoneNumber,
		Address:       "Default Address",
		Gender:        GenderMale,
		WorkLocation:  r.WorkLocation,
		Designation:   DefaultDesignation,
		Status:        StatusActive,
		DepartmentID:  r.DepartmentID,
		BasicSalary:   r.BasicSalary,
		AnnualCTC:     r.AnnualCTC,
		BankName:      r.BankName,
		AccountNumber: r.AccountNumber,
		IFSCCode:      r.IFSCCode,
		PANNumber:     r.PANNumber,
		AadharNumber:  r.AadharNumber,
	}
	if r.Address != nil && *r.Address != "" {
		e.Address = *r.Address
	}
	if r.Gender != nil {
		e.Gender = Gender(*r.Gender)
	}
	if r.Designation != nil && *r.Designation != "" {
		e.Designation = *r.Designation
	}
	if r.Status != nil {
		e.Status = Status(*r.Status)
	}
	if r.EmploymentType != nil {
		et := EmploymentType(*r.EmploymentType)
		e.EmploymentType = &et
	}
	if r.DateOfLeaving != nil {
		left, _ := validator.IsValidDate(*r.DateOfLeaving)
		e.DateOfLeaving = &left
	}
	if e.Age == nil {
		age := ageOn(born, time.Now())
		e.Age = &age
	}
	return e
}

func ageOn(born, now time.Time) int {
	age := now.Year() - born.Year()
	if now.YearDay() < born.YearDay() {
		age--
	}
	return age
}

type UpdateEmployeeRequest struct {
	EmployeeID     string           `json:"-"`
	FirstName      *string          `json:"first_name,omitempty"`
	MiddleName     *string          `json:"middle_name,omitempty"`
	LastName       *string          `json:"last_name,omitempty"`
	WorkEmail      *string          `json:"work_email,omitempty"`
	PersonalEmail  *string          `json:"personal_email,omitempty"`
	DateOfJoining  *string          `json:"date_of_joining,omitempty"`
	DateOfBirth    *string          `json:"date_of_birth,omitempty"`
	Age            *int             `json:"age,omitempty"`
	MobileNumber   *string          `json:"mobile_number,omitempty"`
	PhoneNumber    *string          `json:"phone_number,omitempty"`
	Address        *string          `json:"address,omitempty"`
	Gender         *string          `json:"gender,omitempty"`
	WorkLocation   *string          `json:"work_location,omitempty"`
	Designation    *string          `json:"designation,omitempty"`
	Status         *string          `json:"status,omitempty"`
	DepartmentID   *int64           `json:"department,omitempty"`
	EmploymentType *string          `json:"employment_type,omitempty"`
	DateOfLeaving  *string          `json:"date_of_leaving,omitempty"`
	BasicSalary    *decimal.Decimal `json:"basic_salary,omitempty"`
	AnnualCTC      *decimal.Decimal `json:"annual_ctc,omitempty"`
	BankName       *string          `json:"bank_name,omitempty"`
	AccountNumber  *string          `json:"account_number,omitempty"`
	IFSCCode       *string          `json:"ifsc_code,omitempty"`
	PANNumber      *string          `json:"pan_number,omitempty"`
	AadharNumber   *string          `json:"aadhar_number,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FirstName != nil && validator.IsEmpty(*r.FirstName) {
		errs.Add("first_name", "cannot be empty")
	}
	if r.LastName != nil && validator.IsEmpty(*r.LastName) {
		errs.Add("last_name", "cannot be empty")
	}
	if r.WorkEmail != nil && !validator.IsValidEmail(*r.WorkEmail) {
		errs.Add("work_email", "must be a valid email")
	}
	if r.PersonalEmail != nil && *r.PersonalEmail != "" && !validator.IsValidEmail(*r.PersonalEmail) {
		errs.Add("personal_email", "must be a valid email")
	}
	for field, v := range map[string]*string{
		"date_of_joining": r.DateOfJoining,
		"date_of_birth":   r.DateOfBirth,
		"date_of_leaving": r.DateOfLeaving,
	} {
		if v != nil {
			if _, ok := validator.IsValidDate(*v); !ok {
				errs.Add(field, "must be a date in YYYY-MM-DD format")
			}
		}
	}
	if r.BasicSalary != nil && !r.BasicSalary.IsPositive() {
		errs.Add("basic_salary", "must be greater than 0")
	}
	if r.AnnualCTC != nil && !r.AnnualCTC.IsPositive() {
		errs.Add("annual_ctc", "must be greater than 0")
	}
	validateEnums(&errs, r.Gender, r.Status, r.EmploymentType)
	validateContact(&errs, r.MobileNumber, r.PhoneNumber)
	validateBank(&errs, r.IFSCCode, r.PANNumber, r.AadharNumber)

	return errs.Err()
}

// Apply merges the request into e and checks the rules that span fields.
func (r *UpdateEmployeeRequest) Apply(e Employee) (Employee, error) {
	setStr := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setStr(&e.FirstName, r.FirstName)
	setStr(&e.LastName, r.LastName)
	setStr(&e.WorkEmail, r.WorkEmail)
	setStr(&e.Address, r.Address)
	setStr(&e.Designation, r.Designation)
	if r.MiddleName != nil {
		e.MiddleName = r.MiddleName
	}
	if r.PersonalEmail != nil {
		e.PersonalEmail = r.PersonalEmail
	}
	if r.Age != nil {
		e.Age = r.Age
	}
	if r.MobileNumber != nil {
		e.MobileNumber = r.MobileNumber
	}
	if r.PhoneNumber != nil {
		e.PhoneNumber = r.PhoneNumber
	}
	if r.WorkLocation != nil {
		e.WorkLocation = r.WorkLocation
	}
	if r.DepartmentID != nil {
		e.DepartmentID = r.DepartmentID
	}
	if r.Gender != nil {
		e.Gender = Gender(*r.Gender)
	}
	if r.Status != nil {
		e.Status = Status(*r.Status)
	}
	if r.EmploymentType != nil {
		et := EmploymentType(*r.EmploymentType)
		e.EmploymentType = &et
	}
	if r.DateOfJoining != nil {
		e.DateOfJoining, _ = validator.IsValidDate(*r.DateOfJoining)
	}
	if r.DateOfBirth != nil {
		e.DateOfBirth, _ = validator.IsValidDate(*r.DateOfBirth)
	}
	if r.DateOfLeaving != nil {
		left, _ := validator.IsValidDate(*r.DateOfLeaving)
		e.DateOfLeaving = &left
	}
	if r.BasicSalary != nil {
		e.BasicSalary = *r.BasicSalary
	}
	if r.AnnualCTC != nil {
		e.AnnualCTC = *r.AnnualCTC
	}
	if r.BankName != nil {
		e.BankName = r.BankName
	}
	if r.AccountNumber != nil {
		e.AccountNumber = r.AccountNumber
	}
	if r.IFSCCode != nil {
		e.IFSCCode = r.IFSCCode
	}
	if r.PANNumber != nil {
		e.PANNumber = r.PANNumber
	}
	if r.AadharNumber != nil {
		e.AadharNumber = r.AadharNumber
	}

	var errs validator.ValidationErrors
	if e.DateOfLeaving != nil && !e.DateOfLeaving.After(e.DateOfJoining) {
		errs.Add("date_of_leaving", "must be after date of joining")
	}
	validateSalary(&errs, e.BasicSalary, e.AnnualCTC)
	if err := errs.Err(); err != nil {
		return Employee{}, err
	}
	return e, nil
}

func validateSalary(errs *validator.ValidationErrors, basic, annual decimal.Decimal) {
	if !basic.IsPositive() {
		errs.Add("basic_salary", "must be greater than 0")
	}
	if !annual.IsPositive() {
		errs.Add("annual_ctc", "must be greater than 0")
	}
	if !validator.HasMaxTwoDecimals(basic) {
		errs.Add("basic_salary", "must have at most 2 decimal places")
	}
	if basic.IsPositive() && annual.IsPositive() && basic.Mul(decimal.NewFromInt(12)).GreaterThan(annual) {
		errs.Add("basic_salary", "cannot exceed annual CTC when multiplied by 12")
	}
}

func validateEnums(errs *validator.ValidationErrors, gender, status, employmentType *string) {
	if gender != nil && !validator.IsInSlice(*gender, []string{string(GenderMale), string(GenderFemale), string(GenderOther)}) {
		errs.Add("gender", "must be one of M, F, O")
	}
	if status != nil && !validator.IsInSlice(*status, []string{string(StatusActive), string(StatusInactive), string(StatusTerminated)}) {
		errs.Add("status", "must be one of ACTIVE, INACTIVE, TERMINATED")
	}
	if employmentType != nil && !validator.IsInSlice(*employmentType, []string{string(EmploymentTypeFullTime), string(EmploymentTypePartTime), string(EmploymentTypeIntern)}) {
		errs.Add("employment_type", "must be one of FULL_TIME, PART_TIME, INTERN")
	}
}

func validateContact(errs *validator.ValidationErrors, mobile, phone *string) {
	if mobile != nil && *mobile != "" && !validator.IsValidPhoneNumber(*mobile) {
		errs.Add("mobile_number", "must be 10-13 digits")
	}
	if phone != nil && *phone != "" && !validator.IsValidPhoneNumber(*phone) {
		errs.Add("phone_number", "must be 10-13 digits")
	}
}

func validateBank(errs *validator.ValidationErrors, ifsc, pan, aadhar *string) {
	if ifsc != nil && *ifsc != "" && !validator.IsValidIFSC(*ifsc) {
		errs.Add("ifsc_code", "must be a valid IFSC code")
	}
	if pan != nil && *pan != "" && !validator.IsValidPAN(*pan) {
		errs.Add("pan_number", "must be a valid PAN")
	}
	if aadhar != nil && *aadhar != "" && !validator.IsValidAadhaar(*aadhar) {
		errs.Add("aadhar_number", "must be a valid 12-digit Aadhaar number")
	}
}

type BulkCreateEmployeeRequest struct {
	Employees []CreateEmployeeRequest `json:"employees"`
}

// Validate reports field errors keyed by the employee's position, e.g. "employees[1].work_email".
func (r *BulkCreateEmployeeRequest) Validate() error {
	if len(r.Employees) == 0 {
		return ErrEmptyBulkRequest
	}

	var errs validator.ValidationErrors
	seen := make(map[string]bool, len(r.Employees))
	for i := range r.Employees {
		prefix := "employees[" + validator.Itoa(i) + "]."
		if err := r.Employees[i].Validate(); err != nil {
			if verrs, ok := err.(validator.ValidationErrors); ok {
				for _, v := range verrs {
					errs.Add(prefix+v.Field, v.Message)
				}
			}
		}
		id := r.Employees[i].EmployeeID
		if seen[id] {
			errs.Add(prefix+"employee_id", "duplicated in request")
		}
		seen[id] = true
	}
	return errs.Err()
}

type EmployeeResponse struct {
	EmployeeID     string          `json:"employee_id"`
	FirstName      string          `json:"first_name"`
	MiddleName     *string         `json:"middle_name"`
	LastName       string          `json:"last_name"`
	FullName       string          `json:"full_name"`
	WorkEmail      string          `json:"work_email"`
	PersonalEmail  *string         `json:"personal_email"`
	DateOfJoining  string          `json:"date_of_joining"`
	DateOfBirth    string          `json:"date_of_birth"`
	Age            *int            `json:"age"`
	MobileNumber   *string         `json:"mobile_number"`
	PhoneNumber    *string         `json:"phone_number"`
	Address        string          `json:"address"`
	Gender         string          `json:"gender"`
	WorkLocation   *string         `json:"work_location"`
	Designation    string          `json:"designation"`
	Status         string          `json:"status"`
	DepartmentID   *int64          `json:"department"`
	DepartmentName *string         `json:"department_name"`
	EmploymentType *string         `json:"employment_type"`
	DateOfLeaving  *string         `json:"date_of_leaving"`
	BasicSalary    decimal.Decimal `json:"basic_salary"`
	AnnualCTC      decimal.Decimal `json:"annual_ctc"`
	MonthlyCTC     decimal.Decimal `json:"monthly_ctc"`
	BankName       *string         `json:"bank_name"`
	AccountNumber  *string         `json:"account_number"`
	IFSCCode       *string         `json:"ifsc_code"`
	PANNumber      *string         `json:"pan_number"`
	AadharNumber   *string         `json:"aadhar_number"`
	CreatedAt      string          `json:"created_at"`
	UpdatedAt      string          `json:"updated_at"`
}

func ToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		EmployeeID:     e.EmployeeID,
		FirstName:      e.FirstName,
		MiddleName:     e.MiddleName,
		LastName:       e.LastName,
		FullName:       e.FullName(),
		WorkEmail:      e.WorkEmail,
		PersonalEmail:  e.PersonalEmail,
		DateOfJoining:  e.DateOfJoining.Format(validator.DateLayout),
		DateOfBirth:    e.DateOfBirth.Format(validator.DateLayout),
		Age:            e.Age,
		MobileNumber:   e.MobileNumber,
		PhoneNumber:    e.PhoneNumber,
		Address:        e.Address,
		Gender:         string(e.Gender),
		WorkLocation:   e.WorkLocation,
		Designation:    e.Designation,
		Status:         string(e.Status),
		DepartmentID:   e.DepartmentID,
		DepartmentName: e.DepartmentName,
		BasicSalary:    e.BasicSalary,
		AnnualCTC:      e.AnnualCTC,
		MonthlyCTC:     e.MonthlyCTC(),
		BankName:       e.BankName,
		AccountNumber:  e.AccountNumber,
		IFSCCode:       e.IFSCCode,
		PANNumber:      e.PANNumber,
		AadharNumber:   e.AadharNumber,
		CreatedAt:      e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      e.UpdatedAt.Format(time.RFC3339),
	}
	if e.EmploymentType != nil {
		et := string(*e.EmploymentType)
		resp.EmploymentType = &et
	}
	if e.DateOfLeaving != nil {
		left := e.DateOfLeaving.Format(validator.DateLayout)
		resp.DateOfLeaving = &left
	}
	return resp
}

type EmployeeFilter struct {
	Search         *string `json:"search,omitempty"`
	DepartmentID   *int64  `json:"department,omitempty"`
	Designation    *string `json:"designation,omitempty"`
	WorkLocation   *string `json:"work_location,omitempty"`
	EmploymentType *string `json:"employment_type,omitempty"`
	Gender         *string `json:"gender,omitempty"`
	Status         *string `json:"status,omitempty"`
	Page           int     `json:"page"`
	Limit          int     `json:"limit"`
	SortBy         string  `json:"sort_by"`
	SortOrder      string  `json:"sort_order"`
}

func (f *EmployeeFilter) Validate() error {
	var errs validator.ValidationErrors
	validateEnums(&errs, f.Gender, f.Status, f.EmploymentType)
	if f.Page < 0 {
		errs.Add("page", "must be positive")
	}
	if f.Limit < 0 || f.Limit > 100 {
		errs.Add("limit", "must be between 1 and 100")
	}
	return errs.Err()
}

type ListEmployeeResponse struct {
	Data       []EmployeeResponse `json:"data"`
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
}

type LabelCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

type EmployeeStatsResponse struct {
	TotalEmployees      int64           `json:"total_employees"`
	ActiveEmployees     int64           `json:"active_employees"`
	InactiveEmployees   int64           `json:"inactive_employees"`
	TerminatedEmployees int64           `json:"terminated_employees"`
	TotalDepartments    int64           `json:"total_departments"`
	TotalDesignations   int64           `json:"total_designations"`
	TotalWorkLocations  int64           `json:"total_work_locations"`
	AverageCTC          decimal.Decimal `json:"average_ctc"`
	EmploymentBreakdown []LabelCount    `json:"employment_breakdown"`
	GenderBreakdown     []LabelCount    `json:"gender_breakdown"`
}
