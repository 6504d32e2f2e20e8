package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scanpulse/pkg/contracts/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func scanDay(d int) time.Time {
	return time.Date(2025, 7, d, 0, 0, 0, 0, time.UTC)
}

func scoredRow(symbol, sector string, date time.Time, score float64) domain.ScanRow {
	return domain.ScanRow{
		Symbol:         symbol,
		Sector:         sector,
		ScanDate:       date,
		ChangePercent:  &score,
		RelativeVolume: ptr(1.0),
		MomentumScore:  &score,
	}
}

func ptr(v float64) *float64 { return &v }

func testDataset() *domain.ScanDataset {
	return domain.NewScanDataset([]domain.ScanRow{
		scoredRow("AAA", "Tech", scanDay(1), 2.0),
		scoredRow("BBB", "Energy", scanDay(1), 5.0),
		scoredRow("CCC", "Tech", scanDay(2), 1.0),
		scoredRow("DDD", "Tech", scanDay(2), 4.0),
		scoredRow("EEE", "Energy", scanDay(2), 3.0),
	})
}

func newTestService() *DataService {
	return NewDataService(testDataset(), 15, testLogger())
}

func TestGetScanDates(t *testing.T) {
	t.Run("ascending formatted dates", func(t *testing.T) {
		dates, err := newTestService().GetScanDates(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"2025-07-01", "2025-07-02"}, dates)
	})

	t.Run("empty dataset yields empty list", func(t *testing.T) {
		svc := NewDataService(domain.NewScanDataset(nil), 15, testLogger())

		dates, err := svc.GetScanDates(context.Background())
		require.NoError(t, err)
		assert.Empty(t, dates)
	})
}

func TestGetLatestScan(t *testing.T) {
	t.Run("returns most recent date", func(t *testing.T) {
		scan, err := newTestService().GetLatestScan(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "2025-07-02", scan.Date)
		assert.Len(t, scan.Rows, 3)
	})

	t.Run("empty dataset returns sentinel", func(t *testing.T) {
		svc := NewDataService(domain.NewScanDataset(nil), 15, testLogger())

		_, err := svc.GetLatestScan(context.Background())
		assert.ErrorIs(t, err, ErrNoScanData)
	})
}

func TestGetScan(t *testing.T) {
	svc := newTestService()

	t.Run("known date", func(t *testing.T) {
		scan, err := svc.GetScan(context.Background(), "2025-07-01")
		require.NoError(t, err)
		assert.Equal(t, "2025-07-01", scan.Date)
		assert.Len(t, scan.Rows, 2)
	})

	t.Run("unknown date", func(t *testing.T) {
		_, err := svc.GetScan(context.Background(), "2025-08-01")
		assert.ErrorIs(t, err, ErrScanNotFound)
	})

	t.Run("malformed date", func(t *testing.T) {
		_, err := svc.GetScan(context.Background(), "July 1st")
		assert.ErrorIs(t, err, ErrInvalidDate)
	})
}

func TestGetMovers(t *testing.T) {
	svc := newTestService()

	t.Run("ranked descending", func(t *testing.T) {
		movers, err := svc.GetMovers(context.Background(), "2025-07-02", 10)
		require.NoError(t, err)
		require.Len(t, movers, 3)
		assert.Equal(t, "DDD", movers[0].Symbol)
		assert.Equal(t, "EEE", movers[1].Symbol)
		assert.Equal(t, "CCC", movers[2].Symbol)
	})

	t.Run("zero limit uses configured default", func(t *testing.T) {
		svc := NewDataService(testDataset(), 2, testLogger())

		movers, err := svc.GetMovers(context.Background(), "2025-07-02", 0)
		require.NoError(t, err)
		assert.Len(t, movers, 2)
	})

	t.Run("unknown date", func(t *testing.T) {
		_, err := svc.GetMovers(context.Background(), "2025-08-01", 10)
		assert.ErrorIs(t, err, ErrScanNotFound)
	})
}

func TestGetMomentumMap(t *testing.T) {
	svc := newTestService()

	points, err := svc.GetMomentumMap(context.Background(), "2025-07-01")
	require.NoError(t, err)
	assert.Len(t, points, 2)

	_, err = svc.GetMomentumMap(context.Background(), "2025-08-01")
	assert.ErrorIs(t, err, ErrScanNotFound)
}

func TestGetSectors(t *testing.T) {
	sectors, err := newTestService().GetSectors(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Energy", "Tech"}, sectors)
}

func TestGetSectorTrend(t *testing.T) {
	trend, err := newTestService().GetSectorTrend(context.Background(), []string{"Tech"})
	require.NoError(t, err)
	require.Len(t, trend, 2)
	assert.Equal(t, 1, trend[0].Count)
	assert.Equal(t, 2, trend[1].Count)
}

func TestGetSummary(t *testing.T) {
	summary, err := newTestService().GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, summary.TotalRows)
	assert.Equal(t, 2, summary.ScanDates)
	assert.Equal(t, 3, summary.LatestCount)
	assert.Equal(t, "Tech", summary.LargestSector)
}
