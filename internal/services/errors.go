package services

import "errors"

// Sentinel errors returned by the data service. Handlers map these to
// RFC 7807 problem responses; none of them is fatal.
var (
	// ErrNoScanData indicates the dataset is empty (no scan files were
	// found at startup).
	ErrNoScanData = errors.New("no scan data loaded")

	// ErrScanNotFound indicates no scan exists for the requested date.
	ErrScanNotFound = errors.New("scan not found")

	// ErrInvalidDate indicates a date parameter that does not parse as
	// YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid scan date")
)
