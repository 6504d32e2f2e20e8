package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"scanpulse/pkg/contracts/domain"
)

// ColumnPatterns maps each ScanRow field to the lowercase substrings that
// identify its column header. Exact header names vary between scanner
// exports, so they are configuration, not contract.
type ColumnPatterns struct {
	Symbol         []string
	Sector         []string
	ChangePercent  []string
	Volume         []string
	RelativeVolume []string
	MarketCap      []string
}

// DefaultColumns matches the headers the Stage 2 scanner emits
// ("Symbol", "Sector", "Price Change % 1 day", "Volume 1 day",
// "Relative Volume 1 day", "Market capitalization").
func DefaultColumns() ColumnPatterns {
	return ColumnPatterns{
		Symbol:         []string{"symbol", "ticker"},
		Sector:         []string{"sector"},
		ChangePercent:  []string{"price change", "change %", "% change", "chg %"},
		Volume:         []string{"volume"},
		RelativeVolume: []string{"relative volume", "rel volume", "rvol"},
		MarketCap:      []string{"market cap", "mkt cap"},
	}
}

// columnMap holds resolved header positions; -1 means not present.
type columnMap struct {
	symbol    int
	sector    int
	changePct int
	volume    int
	relVolume int
	marketCap int
}

// mapColumns resolves header positions by scanning columns left to right.
// The first column matching a field's patterns wins; later duplicates are
// ignored. Relative volume is matched before plain volume so that
// "Relative Volume 1 day" is not claimed by the volume patterns.
func mapColumns(header []string, patterns ColumnPatterns) columnMap {
	cm := columnMap{symbol: -1, sector: -1, changePct: -1, volume: -1, relVolume: -1, marketCap: -1}

	for i, raw := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(raw, "\ufeff")))
		switch {
		case cm.relVolume == -1 && matchesAny(name, patterns.RelativeVolume):
			cm.relVolume = i
		case cm.volume == -1 && matchesAny(name, patterns.Volume):
			cm.volume = i
		case cm.changePct == -1 && matchesAny(name, patterns.ChangePercent):
			cm.changePct = i
		case cm.symbol == -1 && matchesAny(name, patterns.Symbol):
			cm.symbol = i
		case cm.sector == -1 && matchesAny(name, patterns.Sector):
			cm.sector = i
		case cm.marketCap == -1 && matchesAny(name, patterns.MarketCap):
			cm.marketCap = i
		}
	}

	return cm
}

func matchesAny(name string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(name, p) {
			return true
		}
	}
	return false
}

func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// ParseFile reads one scan CSV and extracts its rows, tagged with the scan
// date taken from the filename. Rows without a symbol are dropped silently;
// malformed numeric cells become missing values on the row. Only a file
// that cannot be read, or whose header lacks a symbol column, is an error.
func ParseFile(path string, date time.Time, patterns ColumnPatterns, logger *slog.Logger) (*domain.ScanFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scan file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read scan file %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("scan file %s is empty", path)
	}

	cm := mapColumns(records[0], patterns)
	if cm.symbol == -1 {
		return nil, fmt.Errorf("could not find symbol column in %s", path)
	}

	scanFile := &domain.ScanFile{Date: date, Path: path}
	dropped := 0
	for _, record := range records[1:] {
		symbol := cell(record, cm.symbol)
		if symbol == "" {
			dropped++
			continue
		}

		scanFile.Rows = append(scanFile.Rows, domain.ScanRow{
			Symbol:         symbol,
			Sector:         cell(record, cm.sector),
			MarketCap:      CleanVolume(cell(record, cm.marketCap)),
			ChangePercent:  CleanPercent(cell(record, cm.changePct)),
			Volume:         CleanVolume(cell(record, cm.volume)),
			RelativeVolume: CleanRatio(cell(record, cm.relVolume)),
			ScanDate:       date,
		})
	}

	logger.Debug("parsed scan file",
		slog.String("path", path),
		slog.String("date", date.Format("2006-01-02")),
		slog.Int("rows", len(scanFile.Rows)),
		slog.Int("dropped", dropped))

	return scanFile, nil
}
