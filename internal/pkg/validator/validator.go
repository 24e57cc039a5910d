package validator

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// Add appends a field error.
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, ValidationError{Field: field, Message: message})
}

// Err returns v as an error, or nil when no field failed.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email validation
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

var numericRegex = regexp.MustCompile(`^[0-9]+$`)

func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse(DateLayout, dateStr)
	return date, err == nil
}

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// IFSC: 4 bank letters, a literal zero, 6 alphanumeric branch characters.
var ifscRegex = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)

func IsValidIFSC(code string) bool {
	return ifscRegex.MatchString(code)
}

// PAN: 5 letters, 4 digits, 1 letter.
var panRegex = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)

func IsValidPAN(pan string) bool {
	return panRegex.MatchString(pan)
}

// Aadhaar numbers are 12 digits and never start with 0 or 1.
func IsValidAadhaar(aadhaar string) bool {
	return len(aadhaar) == 12 && IsNumeric(aadhaar) && aadhaar[0] >= '2'
}

var pincodeRegex = regexp.MustCompile(`^[1-9][0-9]{5}$`)

func IsValidPincode(pincode string) bool {
	return pincodeRegex.MatchString(pincode)
}

// Phone number validation
func IsValidPhoneNumber(phone string) bool {
	phone = strings.ReplaceAll(phone, " ", "")
	phone = strings.ReplaceAll(phone, "-", "")
	phone = strings.TrimPrefix(phone, "+")

	if len(phone) < 10 || len(phone) > 13 {
		return false
	}
	return IsNumeric(phone)
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

var employeeIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{1,20}$`)

func IsValidEmployeeID(id string) bool {
	return employeeIDRegex.MatchString(id)
}

// IsNonNegative reports whether d >= 0.
func IsNonNegative(d decimal.Decimal) bool {
	return !d.IsNegative()
}

// HasMaxTwoDecimals reports whether d fits a NUMERIC(_, 2) column without rounding.
func HasMaxTwoDecimals(d decimal.Decimal) bool {
	return d.Equal(d.Round(2))
}

// Itoa converts an integer to a string.
func Itoa(i int) string {
	return strconv.Itoa(i)
}
