package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/exellar/payroll-backend-go/internal/domain/dashboard"
	"github.com/exellar/payroll-backend-go/internal/domain/document"
	"github.com/exellar/payroll-backend-go/internal/domain/employee"
	"github.com/exellar/payroll-backend-go/internal/domain/leave"
	"github.com/exellar/payroll-backend-go/internal/domain/paymentinfo"
	"github.com/exellar/payroll-backend-go/internal/domain/payroll"
	"github.com/exellar/payroll-backend-go/internal/domain/salarycomponent"
	"github.com/exellar/payroll-backend-go/internal/domain/user"
	"github.com/exellar/payroll-backend-go/internal/handler/http/response"
	"github.com/exellar/payroll-backend-go/internal/pkg/jwt"
	"github.com/exellar/payroll-backend-go/internal/pkg/ratelimit"
	"github.com/exellar/payroll-backend-go/internal/service/master"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePayrollService struct {
	payroll.PayrollService
	status payroll.Status
}

func (f *fakePayrollService) Process(_ context.Context, id int64) (payroll.PayrollResponse, error) {
	next, err := f.status.Next(payroll.OpProcess)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	f.status = next
	return payroll.PayrollResponse{ID: id, Status: string(next)}, nil
}

func (f *fakePayrollService) Stats(context.Context) (payroll.PayrollStatsResponse, error) {
	return payroll.PayrollStatsResponse{TotalPayrolls: 3}, nil
}

type fakeDashboardService struct {
	dashboard.DashboardService
}

func (fakeDashboardService) Health(context.Context) dashboard.HealthResponse {
	return dashboard.HealthResponse{Status: "healthy", Message: "Payroll API is running"}
}

type testRouter struct {
	handler    http.Handler
	jwtService *jwt.JWTService
	payrolls   *fakePayrollService
}

func newTestRouter(t *testing.T) testRouter {
	t.Helper()
	jwtService, err := jwt.NewJWTService(handlerTestSecret, "15m", "24h", false)
	require.NoError(t, err)

	payrolls := &fakePayrollService{status: payroll.StatusDraft}
	router := NewRouter(
		jwtService,
		NewAuthHandler(jwtService, &fakeAuthService{}, fakeGoogle{}, false),
		NewDashboardHandler(fakeDashboardService{}),
		NewEmployeeHandler(struct{ employee.EmployeeService }{}),
		NewPayrollHandler(payrolls),
		NewMasterHandler(struct{ master.MasterService }{}),
		NewSalaryComponentHandler(struct{ salarycomponent.SalaryComponentService }{}),
		NewLeaveHandler(struct{ leave.LeaveService }{}),
		NewPaymentInfoHandler(struct{ paymentinfo.PaymentInfoService }{}),
		NewDocumentHandler(struct{ document.DocumentService }{}),
		RouterOptions{
			AllowedOrigins: []string{"http://localhost:3000"},
			LoginLimiter:   ratelimit.NewPerMinute(1),
		},
	)
	return testRouter{handler: router, jwtService: jwtService, payrolls: payrolls}
}

func (tr testRouter) token(t *testing.T, role user.Role) string {
	t.Helper()
	emp := "EMP001"
	token, _, err := tr.jwtService.GenerateAccessToken(1, "someone@example.com", &emp, role)
	require.NoError(t, err)
	return token
}

func (tr testRouter) do(method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	tr.handler.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Health(t *testing.T) {
	tr := newTestRouter(t)

	rec := tr.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestRouter_RequiresAuthentication(t *testing.T) {
	tr := newTestRouter(t)

	assert.Equal(t, http.StatusUnauthorized, tr.do(http.MethodGet, "/api/v1/payroll/stats", "").Code)
	assert.Equal(t, http.StatusOK, tr.do(http.MethodGet, "/api/v1/payroll/stats", tr.token(t, user.RoleEmployee)).Code)
}

func TestRouter_PayrollLifecyclePermissions(t *testing.T) {
	tr := newTestRouter(t)

	rec := tr.do(http.MethodPost, "/api/v1/payroll/7/process", tr.token(t, user.RoleEmployee))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, payroll.StatusDraft, tr.payrolls.status)

	hr := tr.token(t, user.RoleHR)
	rec = tr.do(http.MethodPost, "/api/v1/payroll/7/process", hr)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, payroll.StatusProcessed, tr.payrolls.status)

	rec = tr.do(http.MethodPost, "/api/v1/payroll/7/process", hr)
	require.Equal(t, http.StatusConflict, rec.Code)

	var body response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.Equal(t, "PROCESSED", body.Error.Details["current_status"])

	assert.Equal(t, http.StatusBadRequest, tr.do(http.MethodPost, "/api/v1/payroll/abc/process", hr).Code)
}

func TestRouter_LoginIsRateLimited(t *testing.T) {
	tr := newTestRouter(t)

	login := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		req.RemoteAddr = "198.51.100.4:4000"
		rec := httptest.NewRecorder()
		tr.handler.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusBadRequest, login().Code)
	rec := login()
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
}
