// Package exporter writes the merged scan dataset to CSV and Excel for
// download from the dashboard or offline use via the scanmerge command.
package exporter
