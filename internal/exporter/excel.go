package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"scanpulse/pkg/contracts/domain"
)

const (
	dataSheet    = "Scan Data"
	summarySheet = "Summary"
)

// BuildWorkbook renders the merged dataset into an xlsx workbook with a
// data sheet and a summary sheet. The caller owns closing the file.
func BuildWorkbook(ds *domain.ScanDataset, summary domain.ScanSummary) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", dataSheet); err != nil {
		return nil, fmt.Errorf("failed to rename data sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range datasetHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(dataSheet, cell, header); err != nil {
			return nil, err
		}
	}
	if err := f.SetRowStyle(dataSheet, 1, 1, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style header row: %w", err)
	}

	for i, row := range ds.Rows {
		values := []interface{}{
			row.ScanDate.Format("2006-01-02"),
			row.Symbol,
			row.Sector,
			optionalValue(row.ChangePercent),
			optionalValue(row.Volume),
			optionalValue(row.RelativeVolume),
			optionalValue(row.MomentumScore),
			optionalValue(row.MarketCap),
		}
		for col, value := range values {
			if value == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(dataSheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", i, err)
			}
		}
	}

	if err := writeSummarySheet(f, summary); err != nil {
		return nil, err
	}

	return f, nil
}

// WriteWorkbook streams the workbook to w.
func WriteWorkbook(w io.Writer, ds *domain.ScanDataset, summary domain.ScanSummary) error {
	f, err := BuildWorkbook(ds, summary)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// SaveWorkbook writes the workbook to a file path.
func SaveWorkbook(path string, ds *domain.ScanDataset, summary domain.ScanSummary) error {
	f, err := BuildWorkbook(ds, summary)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, summary domain.ScanSummary) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	rows := [][]interface{}{
		{"Total Rows", summary.TotalRows},
		{"Scan Dates", summary.ScanDates},
		{"Latest Scan Count", summary.LatestCount},
		{"Largest Sector", summary.LargestSector},
		{"Largest Sector Count", summary.LargestCount},
		{"Top Inflow Sector", summary.InflowSector},
		{"Inflow Delta", summary.InflowDelta},
	}
	if summary.LatestDate != nil {
		rows = append([][]interface{}{{"Latest Scan Date", summary.LatestDate.Format("2006-01-02")}}, rows...)
	}

	for i, pair := range rows {
		keyCell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		valCell, err := excelize.CoordinatesToCellName(2, i+1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(summarySheet, keyCell, pair[0]); err != nil {
			return err
		}
		if err := f.SetCellValue(summarySheet, valCell, pair[1]); err != nil {
			return err
		}
	}

	return nil
}

func optionalValue(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
