package services

import (
	"context"
	"log/slog"
	"time"

	"scanpulse/pkg/contracts/domain"
)

// HealthStatus is the liveness document returned by /healthz.
type HealthStatus struct {
	Status     string    `json:"status"`
	Version    string    `json:"version"`
	UptimeSecs int64     `json:"uptime_seconds"`
	CheckedAt  time.Time `json:"checked_at"`

	DatasetRows  int    `json:"dataset_rows"`
	DatasetDates int    `json:"dataset_dates"`
	LatestScan   string `json:"latest_scan,omitempty"`
}

// HealthService reports process liveness and dataset freshness. An empty
// dataset is "degraded", not unhealthy: the server still answers with
// empty charts.
type HealthService struct {
	dataset *domain.ScanDataset
	version string
	started time.Time
	logger  *slog.Logger
}

// NewHealthService creates a health service.
func NewHealthService(dataset *domain.ScanDataset, version string, logger *slog.Logger) *HealthService {
	return &HealthService{
		dataset: dataset,
		version: version,
		started: time.Now(),
		logger:  logger.With(slog.String("service", "health")),
	}
}

// Check returns the current health status.
func (s *HealthService) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:       "healthy",
		Version:      s.version,
		UptimeSecs:   int64(time.Since(s.started).Seconds()),
		CheckedAt:    time.Now().UTC(),
		DatasetRows:  s.dataset.Len(),
		DatasetDates: len(s.dataset.Dates()),
	}

	if latest, ok := s.dataset.LatestDate(); ok {
		status.LatestScan = latest.Format("2006-01-02")
	} else {
		status.Status = "degraded"
	}

	return status
}
