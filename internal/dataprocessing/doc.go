// Package dataprocessing turns raw daily scan exports into the merged,
// scored dataset the dashboard serves.
//
// The pipeline has three stages mirroring the data flow:
//
//   - parsing: each discovered CSV is read with a best-effort header map
//     into typed ScanRow values (parser.go, cleaner.go)
//   - merging: per-file row sets are concatenated ordered by scan date and
//     momentum scores are attached (processor.go, scorer.go)
//   - analytics: sector rotation and momentum rankings are derived on
//     demand from the immutable result (analytics.go)
//
// Malformed numeric cells become missing values, never zeros, so a bad
// source cell excludes a row from rankings without evicting it from the
// dataset.
package dataprocessing
