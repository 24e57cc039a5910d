package http

import (
	"net/http"

	"github.com/exellar/payroll-backend-go/internal/domain/dashboard"
	"github.com/exellar/payroll-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetStats handles GET /dashboard/stats
	GetStats(w http.ResponseWriter, r *http.Request)
	// GetDetailedStats handles GET /dashboard/detailed-stats
	GetDetailedStats(w http.ResponseWriter, r *http.Request)
	// Health handles GET /health
	Health(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

func (h *dashboardHandlerImpl) GetStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetStats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *dashboardHandlerImpl) GetDetailedStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetDetailedStats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Health always answers 200; a failed database ping shows up as status "degraded".
func (h *dashboardHandlerImpl) Health(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.dashboardService.Health(r.Context()))
}
