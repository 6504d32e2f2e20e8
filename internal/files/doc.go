// Package files provides discovery of daily scan files on disk.
//
// Scan exports follow the naming convention <prefix>_<YYYY-MM-DD>.<ext>
// (by default "Stage 2_2025-08-22.csv"); the date in the filename, not the
// file's modification time, identifies the scan day.
package files
