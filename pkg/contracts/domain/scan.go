package domain

import (
	"time"
)

// ScanRow represents a single symbol's result in one day's Stage 2 scan.
// Numeric fields are pointers because source files may carry malformed or
// empty cells; a nil value means "missing", never zero.
type ScanRow struct {
	Symbol         string    `json:"symbol" validate:"required"`
	Sector         string    `json:"sector"`
	MarketCap      *float64  `json:"market_cap,omitempty"`
	ChangePercent  *float64  `json:"change_percent,omitempty"`
	Volume         *float64  `json:"volume,omitempty"`
	RelativeVolume *float64  `json:"relative_volume,omitempty"`
	MomentumScore  *float64  `json:"momentum_score,omitempty"`
	ScanDate       time.Time `json:"scan_date" validate:"required"`
}

// HasScoreInputs reports whether both momentum score inputs are present.
func (r ScanRow) HasScoreInputs() bool {
	return r.ChangePercent != nil && r.RelativeVolume != nil
}

// ScanFile represents all rows parsed from a single scan file.
type ScanFile struct {
	Date time.Time `json:"date" validate:"required"`
	Path string    `json:"path"`
	Rows []ScanRow `json:"rows" validate:"dive"`
}

// ScanDataset is the merged result of all loaded scan files. Rows are
// ordered by scan date ascending with the original row order preserved
// within each date. The dataset is built once at startup and treated as
// read-only afterwards.
type ScanDataset struct {
	Rows  []ScanRow   `json:"rows"`
	dates []time.Time // unique scan dates, ascending
}

// NewScanDataset builds a dataset from rows already ordered by date. The
// unique date list is derived from the rows in order of first appearance.
func NewScanDataset(rows []ScanRow) *ScanDataset {
	ds := &ScanDataset{Rows: rows}
	for _, row := range rows {
		ds.addDate(row.ScanDate)
	}
	return ds
}

// NewScanDatasetWithDates builds a dataset whose scan dates are known
// independently of the rows. A date whose file parsed to zero rows still
// counts as a scan date.
func NewScanDatasetWithDates(rows []ScanRow, dates []time.Time) *ScanDataset {
	ds := &ScanDataset{Rows: rows}
	for _, date := range dates {
		ds.addDate(date)
	}
	for _, row := range rows {
		ds.addDate(row.ScanDate)
	}
	return ds
}

func (d *ScanDataset) addDate(date time.Time) {
	for _, dt := range d.dates {
		if sameDay(dt, date) {
			return
		}
	}
	d.dates = append(d.dates, date)
}

// Len returns the total number of rows across all scan dates.
func (d *ScanDataset) Len() int {
	return len(d.Rows)
}

// Dates returns the unique scan dates in ascending order.
func (d *ScanDataset) Dates() []time.Time {
	out := make([]time.Time, len(d.dates))
	copy(out, d.dates)
	return out
}

// LatestDate returns the most recent scan date. The second return value is
// false for an empty dataset.
func (d *ScanDataset) LatestDate() (time.Time, bool) {
	if len(d.dates) == 0 {
		return time.Time{}, false
	}
	return d.dates[len(d.dates)-1], true
}

// PreviousDate returns the scan date immediately before the latest one.
func (d *ScanDataset) PreviousDate() (time.Time, bool) {
	if len(d.dates) < 2 {
		return time.Time{}, false
	}
	return d.dates[len(d.dates)-2], true
}

// RowsFor returns the rows recorded on the given scan date, in their
// original file order. Unknown dates yield an empty slice.
func (d *ScanDataset) RowsFor(date time.Time) []ScanRow {
	var rows []ScanRow
	for _, row := range d.Rows {
		if sameDay(row.ScanDate, date) {
			rows = append(rows, row)
		}
	}
	return rows
}

// HasDate reports whether the dataset contains rows or a scan file for the
// given date.
func (d *ScanDataset) HasDate(date time.Time) bool {
	for _, dt := range d.dates {
		if sameDay(dt, date) {
			return true
		}
	}
	return false
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// ScanSummary represents aggregate statistics over the merged dataset,
// matching the dashboard's header cards.
type ScanSummary struct {
	TotalRows      int        `json:"total_rows" validate:"min=0"`
	ScanDates      int        `json:"scan_dates" validate:"min=0"`
	LatestDate     *time.Time `json:"latest_date,omitempty"`
	LatestCount    int        `json:"latest_count" validate:"min=0"`
	LargestSector  string     `json:"largest_sector,omitempty"`
	LargestCount   int        `json:"largest_count" validate:"min=0"`
	InflowSector   string     `json:"inflow_sector,omitempty"`
	InflowDelta    int        `json:"inflow_delta"`
	GeneratedAt    time.Time  `json:"generated_at"`
}

// SectorTrendPoint is one point of the sector rotation line chart: how many
// symbols a sector placed in the scan on a given date.
type SectorTrendPoint struct {
	Date   string `json:"date"`
	Sector string `json:"sector"`
	Count  int    `json:"count" validate:"min=0"`
}

// MomentumPoint is one marker on the momentum scatter map.
type MomentumPoint struct {
	Symbol         string   `json:"symbol" validate:"required"`
	Sector         string   `json:"sector"`
	ChangePercent  float64  `json:"change_percent"`
	RelativeVolume float64  `json:"relative_volume"`
	Volume         float64  `json:"volume"`
	MarketCap      *float64 `json:"market_cap,omitempty"`
}
