// Command scanmerge builds the merged scan dataset from a directory of
// daily scan exports and writes it to CSV or Excel, for offline analysis
// without running the server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"scanpulse/internal/dataprocessing"
	"scanpulse/internal/exporter"
	"scanpulse/internal/files"
)

func main() {
	var (
		dir    = flag.String("dir", "data", "directory containing scan files")
		out    = flag.String("out", "scan_dataset.csv", "output file path")
		format = flag.String("format", "csv", "output format: csv or xlsx")
		prefix = flag.String("prefix", "Stage 2", "scan filename prefix")
		ext    = flag.String("ext", "csv", "scan filename extension")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := run(*dir, *out, *format, *prefix, *ext, logger); err != nil {
		fmt.Fprintf(os.Stderr, "scanmerge: %v\n", err)
		os.Exit(1)
	}
}

func run(dir, out, format, prefix, ext string, logger *slog.Logger) error {
	discovery := files.NewDiscovery(prefix, ext)
	processor := dataprocessing.NewProcessor(discovery, dataprocessing.DefaultColumns(), logger)

	ds, err := processor.Build(context.Background(), dir)
	if err != nil {
		if !errors.Is(err, dataprocessing.ErrNoScanFiles) {
			return err
		}
		logger.Warn("no scan files found, writing empty dataset", slog.String("dir", dir))
	}

	switch format {
	case "csv":
		if err := exporter.WriteDatasetCSVFile(out, ds); err != nil {
			return err
		}
	case "xlsx":
		if err := exporter.SaveWorkbook(out, ds, dataprocessing.Summarize(ds)); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q, want csv or xlsx", format)
	}

	logger.Info("dataset written",
		slog.String("out", out),
		slog.Int("rows", ds.Len()),
		slog.Int("dates", len(ds.Dates())))

	return nil
}
