package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"scanpulse/internal/dataprocessing"
	"scanpulse/pkg/contracts/domain"
)

// ScanView is one scan date's rows as served to the dashboard.
type ScanView struct {
	Date string           `json:"date"`
	Rows []domain.ScanRow `json:"rows"`
}

// DataService answers dashboard queries against the immutable scan dataset
// built at startup. It holds no mutable state; every method is a pure read.
type DataService struct {
	dataset    *domain.ScanDataset
	moverLimit int
	logger     *slog.Logger
}

// NewDataService creates a data service over the given dataset. moverLimit
// caps the momentum leaderboard when the client does not pass a limit.
func NewDataService(dataset *domain.ScanDataset, moverLimit int, logger *slog.Logger) *DataService {
	return &DataService{
		dataset:    dataset,
		moverLimit: moverLimit,
		logger:     logger.With(slog.String("service", "data")),
	}
}

// Dataset exposes the underlying dataset for exporters.
func (s *DataService) Dataset() *domain.ScanDataset {
	return s.dataset
}

// GetScanDates returns every loaded scan date, ascending, formatted as
// YYYY-MM-DD. An empty dataset yields an empty list, not an error.
func (s *DataService) GetScanDates(ctx context.Context) ([]string, error) {
	dates := s.dataset.Dates()
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.Format("2006-01-02"))
	}
	return out, nil
}

// GetLatestScan returns the rows of the most recent scan date.
func (s *DataService) GetLatestScan(ctx context.Context) (*ScanView, error) {
	latest, ok := s.dataset.LatestDate()
	if !ok {
		return nil, ErrNoScanData
	}

	return &ScanView{
		Date: latest.Format("2006-01-02"),
		Rows: s.dataset.RowsFor(latest),
	}, nil
}

// GetScan returns the rows recorded on the given date.
func (s *DataService) GetScan(ctx context.Context, date string) (*ScanView, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	if !s.dataset.HasDate(day) {
		return nil, fmt.Errorf("scan for %s: %w", date, ErrScanNotFound)
	}

	return &ScanView{
		Date: day.Format("2006-01-02"),
		Rows: s.dataset.RowsFor(day),
	}, nil
}

// GetMovers returns the momentum leaderboard for a date: rows with a
// computed score, descending, capped at limit (or the configured default
// when limit is zero).
func (s *DataService) GetMovers(ctx context.Context, date string, limit int) ([]domain.ScanRow, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	if !s.dataset.HasDate(day) {
		return nil, fmt.Errorf("scan for %s: %w", date, ErrScanNotFound)
	}

	if limit <= 0 {
		limit = s.moverLimit
	}

	return dataprocessing.MomentumLeaders(s.dataset.RowsFor(day), limit), nil
}

// GetMomentumMap returns scatter points for a date's scan.
func (s *DataService) GetMomentumMap(ctx context.Context, date string) ([]domain.MomentumPoint, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	if !s.dataset.HasDate(day) {
		return nil, fmt.Errorf("scan for %s: %w", date, ErrScanNotFound)
	}

	return dataprocessing.MomentumPoints(s.dataset.RowsFor(day)), nil
}

// GetSectors returns the distinct sectors seen across all scans, sorted.
func (s *DataService) GetSectors(ctx context.Context) ([]string, error) {
	return dataprocessing.Sectors(s.dataset), nil
}

// GetSectorTrend returns the sector rotation series, optionally filtered to
// the given sectors.
func (s *DataService) GetSectorTrend(ctx context.Context, sectors []string) ([]domain.SectorTrendPoint, error) {
	return dataprocessing.SectorTrend(s.dataset, sectors), nil
}

// GetSummary returns the dashboard header statistics.
func (s *DataService) GetSummary(ctx context.Context) (domain.ScanSummary, error) {
	return dataprocessing.Summarize(s.dataset), nil
}

func parseDate(date string) (time.Time, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return day, nil
}
