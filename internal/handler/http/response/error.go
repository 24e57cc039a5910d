package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/exellar/payroll-backend-go/internal/domain/auth"
	"github.com/exellar/payroll-backend-go/internal/domain/document"
	"github.com/exellar/payroll-backend-go/internal/domain/employee"
	"github.com/exellar/payroll-backend-go/internal/domain/leave"
	"github.com/exellar/payroll-backend-go/internal/domain/master/department"
	"github.com/exellar/payroll-backend-go/internal/domain/master/designation"
	"github.com/exellar/payroll-backend-go/internal/domain/master/worklocation"
	"github.com/exellar/payroll-backend-go/internal/domain/paymentinfo"
	"github.com/exellar/payroll-backend-go/internal/domain/payroll"
	"github.com/exellar/payroll-backend-go/internal/domain/salarycomponent"
	"github.com/exellar/payroll-backend-go/internal/domain/user"
	"github.com/exellar/payroll-backend-go/internal/pkg/storage"
	"github.com/exellar/payroll-backend-go/internal/pkg/validator"
	"github.com/exellar/payroll-backend-go/internal/service/file"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// State machine violations carry the status the record is in.
	var payrollTransition *payroll.InvalidTransitionError
	if errors.As(err, &payrollTransition) {
		Conflict(w, payrollTransition.Error(), map[string]string{"current_status": string(payrollTransition.From)})
		return
	}
	var leaveTransition *leave.InvalidTransitionError
	if errors.As(err, &leaveTransition) {
		Conflict(w, leaveTransition.Error(), map[string]string{"current_status": string(leaveTransition.From)})
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrInvalidOAuthState):
		BadRequest(w, "Invalid OAuth state", nil)
	case errors.Is(err, auth.ErrEmailNotVerified):
		Forbidden(w, "Email not verified")
	case errors.Is(err, auth.ErrGoogleNotConfigured):
		ServiceUnavailable(w, "Google login is not configured")
	case errors.Is(err, auth.ErrTooManyAttempts):
		TooManyRequests(w, err.Error())
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered", nil)
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())

	// Payroll
	case errors.Is(err, payroll.ErrPayrollNotFound):
		NotFound(w, "Payroll not found")
	case errors.Is(err, payroll.ErrPayrollAlreadyExists):
		Conflict(w, err.Error(), nil)
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, err.Error(), map[string]string{"pay_period_end": err.Error()})
	case errors.Is(err, payroll.ErrInvalidStatus):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, payroll.ErrEmployeeIDRequired):
		BadRequest(w, err.Error(), nil)

	// Employee lookups from any domain
	case errors.Is(err, employee.ErrEmployeeNotFound),
		errors.Is(err, payroll.ErrEmployeeNotFound),
		errors.Is(err, leave.ErrEmployeeNotFound),
		errors.Is(err, salarycomponent.ErrEmployeeNotFound),
		errors.Is(err, paymentinfo.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeIDExists):
		Conflict(w, "Employee ID already exists", nil)
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Work email already registered", nil)
	case errors.Is(err, employee.ErrDepartmentNotFound):
		BadRequest(w, "Department not found", map[string]string{"department": "does not exist"})
	case errors.Is(err, employee.ErrEmptyBulkRequest):
		BadRequest(w, err.Error(), nil)

	// Master data
	case errors.Is(err, department.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, department.ErrDepartmentNameExists):
		Conflict(w, err.Error(), nil)
	case errors.Is(err, designation.ErrDesignationNotFound):
		NotFound(w, "Designation not found")
	case errors.Is(err, designation.ErrDesignationNameExists):
		Conflict(w, err.Error(), nil)
	case errors.Is(err, worklocation.ErrWorkLocationNotFound):
		NotFound(w, "Work location not found")
	case errors.Is(err, salarycomponent.ErrSalaryComponentNotFound):
		NotFound(w, "Salary component not found")
	case errors.Is(err, paymentinfo.ErrPaymentInfoNotFound):
		NotFound(w, "Payment information not found")

	// Leave
	case errors.Is(err, leave.ErrLeaveNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrOverlappingLeave):
		Conflict(w, err.Error(), nil)
	case errors.Is(err, leave.ErrLeaveNotPending):
		Conflict(w, err.Error(), nil)
	case errors.Is(err, leave.ErrApproverNotLinked), errors.Is(err, leave.ErrCannotApproveOwnLeave):
		Forbidden(w, err.Error())

	// Documents and files
	case errors.Is(err, document.ErrDocumentNotFound):
		NotFound(w, "Document not found")
	case errors.Is(err, document.ErrNoFileAttached):
		NotFound(w, err.Error())
	case errors.Is(err, document.ErrFileRequired), errors.Is(err, document.ErrFileTooLarge):
		BadRequest(w, err.Error(), map[string]string{"file": err.Error()})
	case errors.Is(err, file.ErrInvalidFileType):
		BadRequest(w, err.Error(), map[string]string{"file": err.Error()})
	case errors.Is(err, storage.ErrFileNotFound):
		NotFound(w, "File not found")
	case errors.Is(err, storage.ErrInvalidPath):
		BadRequest(w, err.Error(), nil)

	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
