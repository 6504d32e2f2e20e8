package http

import (
	"context"

	"scanpulse/internal/services"
	"scanpulse/pkg/contracts/domain"
)

// DataServiceInterface defines the data service surface the handlers
// depend on; tests substitute a stub implementation.
type DataServiceInterface interface {
	GetScanDates(ctx context.Context) ([]string, error)
	GetLatestScan(ctx context.Context) (*services.ScanView, error)
	GetScan(ctx context.Context, date string) (*services.ScanView, error)
	GetMovers(ctx context.Context, date string, limit int) ([]domain.ScanRow, error)
	GetMomentumMap(ctx context.Context, date string) ([]domain.MomentumPoint, error)
	GetSectors(ctx context.Context) ([]string, error)
	GetSectorTrend(ctx context.Context, sectors []string) ([]domain.SectorTrendPoint, error)
	GetSummary(ctx context.Context) (domain.ScanSummary, error)
	Dataset() *domain.ScanDataset
}

// HealthServiceInterface is the health check surface used by the health
// handler.
type HealthServiceInterface interface {
	Check(ctx context.Context) services.HealthStatus
}
