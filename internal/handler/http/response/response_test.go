package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/exellar/payroll-backend-go/internal/domain/leave"
	"github.com/exellar/payroll-backend-go/internal/domain/payroll"
	"github.com/exellar/payroll-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestHandleError(t *testing.T) {
	var verrs validator.ValidationErrors
	verrs.Add("basic_salary", "must be greater than 0")

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", verrs.Err(), http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"payroll transition", &payroll.InvalidTransitionError{Op: payroll.OpProcess, From: payroll.StatusPaid}, http.StatusConflict, "CONFLICT"},
		{"leave transition", &leave.InvalidTransitionError{Action: leave.ActionApprove, From: leave.StatusRejected}, http.StatusConflict, "CONFLICT"},
		{"wrapped not found", fmt.Errorf("lookup: %w", payroll.ErrPayrollNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"overlap", leave.ErrOverlappingLeave, http.StatusConflict, "CONFLICT"},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			resp := decode(t, rec)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestHandleError_TransitionCarriesStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, &payroll.InvalidTransitionError{Op: payroll.OpMarkPaid, From: payroll.StatusDraft})

	resp := decode(t, rec)
	assert.Equal(t, "DRAFT", resp.Error.Details["current_status"])
	assert.Contains(t, resp.Error.Message, "only processed payrolls can be marked as paid")
}

func TestHandleError_HidesInternalMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, errors.New("pq: password authentication failed"))

	resp := decode(t, rec)
	assert.Equal(t, "An unexpected error occurred", resp.Error.Message)
}

func TestNewMeta(t *testing.T) {
	meta := NewMeta(2, 20, 41)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, int64(41), meta.TotalItems)
}
