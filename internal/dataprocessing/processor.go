package dataprocessing

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"scanpulse/internal/files"
	"scanpulse/pkg/contracts/domain"
)

// ErrNoScanFiles is returned by Build when the scan directory contains no
// files matching the naming pattern. Callers recover by serving the empty
// dataset that accompanies the error; it is never fatal.
var ErrNoScanFiles = errors.New("no scan files found")

// Processor builds the merged scan dataset from a directory of daily scan
// exports. The resulting dataset is immutable; a process restart is the
// only way to pick up new files.
type Processor struct {
	discovery *files.Discovery
	patterns  ColumnPatterns
	logger    *slog.Logger
}

// NewProcessor creates a processor using the given discovery and column
// patterns.
func NewProcessor(discovery *files.Discovery, patterns ColumnPatterns, logger *slog.Logger) *Processor {
	return &Processor{
		discovery: discovery,
		patterns:  patterns,
		logger:    logger.With(slog.String("component", "scan_processor")),
	}
}

// Build discovers, parses, cleans and merges every scan file in dir into a
// single dataset ordered by scan date ascending, with momentum scores
// attached. Files that fail to parse are skipped with a warning. An
// unreadable directory or an empty match set returns an empty dataset
// alongside the error so the caller can degrade to an empty dashboard.
func (p *Processor) Build(ctx context.Context, dir string) (*domain.ScanDataset, error) {
	scanFiles, err := p.discovery.FindScanFiles(dir)
	if err != nil {
		return domain.NewScanDataset(nil), err
	}
	if len(scanFiles) == 0 {
		return domain.NewScanDataset(nil), ErrNoScanFiles
	}

	var rows []domain.ScanRow
	var dates []time.Time
	for _, info := range scanFiles {
		scanFile, err := ParseFile(info.Path, info.Date, p.patterns, p.logger)
		if err != nil {
			p.logger.WarnContext(ctx, "skipping unparseable scan file",
				slog.String("path", info.Path),
				slog.String("error", err.Error()))
			continue
		}
		rows = append(rows, scanFile.Rows...)
		// A file that parsed to zero rows still contributes its scan date
		dates = append(dates, info.Date)
	}

	AttachScores(rows)
	dataset := domain.NewScanDatasetWithDates(rows, dates)

	p.logger.InfoContext(ctx, "scan dataset built",
		slog.String("dir", dir),
		slog.Int("files_matched", len(scanFiles)),
		slog.Int("files_parsed", len(dates)),
		slog.Int("rows", dataset.Len()),
		slog.Int("dates", len(dataset.Dates())))

	return dataset, nil
}
