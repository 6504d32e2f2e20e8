package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scanpulse/pkg/contracts/domain"
)

func ptr(v float64) *float64 { return &v }

func exportDataset() *domain.ScanDataset {
	date := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	return domain.NewScanDataset([]domain.ScanRow{
		{
			Symbol:         "AAA",
			Sector:         "Tech",
			ChangePercent:  ptr(2.5),
			Volume:         ptr(1500000),
			RelativeVolume: ptr(1.8),
			MomentumScore:  ptr(4.5),
			MarketCap:      ptr(3.1e9),
			ScanDate:       date,
		},
		{
			Symbol:   "BBB",
			Sector:   "Energy",
			ScanDate: date,
		},
	})
}

func TestWriteDatasetCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDatasetCSV(&buf, exportDataset()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, datasetHeaders, records[0])

	assert.Equal(t, []string{"2025-07-01", "AAA", "Tech", "2.5", "1500000", "1.8", "4.5", "3100000000"}, records[1])

	// Missing values stay empty, never zero
	assert.Equal(t, []string{"2025-07-01", "BBB", "Energy", "", "", "", "", ""}, records[2])
}

func TestWriteDatasetCSVEmptyDataset(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDatasetCSV(&buf, domain.NewScanDataset(nil)))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, datasetHeaders, records[0])
}

func TestWriteDatasetCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "dataset.csv")
	require.NoError(t, WriteDatasetCSVFile(path, exportDataset()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// UTF-8 BOM for Excel
	require.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))

	records, err := csv.NewReader(bytes.NewReader(data[3:])).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 3)
}
