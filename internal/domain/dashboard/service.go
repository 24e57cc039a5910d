package dashboard

import "context"

type DashboardService interface {
	GetStats(ctx context.Context) (*StatsResponse, error)
	GetDetailedStats(ctx context.Context) (*DetailedStatsResponse, error)
	Health(ctx context.Context) HealthResponse
}
