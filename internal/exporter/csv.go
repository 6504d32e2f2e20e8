package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"scanpulse/pkg/contracts/domain"
)

// datasetHeaders is the column order for merged-dataset exports.
var datasetHeaders = []string{
	"Date", "Symbol", "Sector", "Change %", "Volume",
	"Relative Volume", "Momentum Score", "Market Cap",
}

// WriteDatasetCSV writes the merged dataset to w. Missing values render as
// empty cells so a re-import keeps them missing.
func WriteDatasetCSV(w io.Writer, ds *domain.ScanDataset) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(datasetHeaders); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for i, row := range ds.Rows {
		record := []string{
			row.ScanDate.Format("2006-01-02"),
			row.Symbol,
			row.Sector,
			formatOptional(row.ChangePercent),
			formatOptional(row.Volume),
			formatOptional(row.RelativeVolume),
			formatOptional(row.MomentumScore),
			formatOptional(row.MarketCap),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteDatasetCSVFile writes the merged dataset to a file, prefixed with a
// UTF-8 BOM so Excel opens it correctly.
func WriteDatasetCSVFile(path string, ds *domain.ScanDataset) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	return WriteDatasetCSV(file, ds)
}

// formatOptional renders a possibly missing numeric as a CSV cell.
func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
