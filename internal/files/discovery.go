package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ScanFileInfo represents a discovered scan file and the date embedded in
// its name.
type ScanFileInfo struct {
	Path    string
	Name    string
	Date    time.Time
	Size    int64
	ModTime time.Time
}

// Discovery finds scan files following the <prefix>_<YYYY-MM-DD>.<ext>
// naming convention.
type Discovery struct {
	prefix    string
	extension string
}

// NewDiscovery creates a discovery instance for the given filename prefix
// and extension (without the leading dot).
func NewDiscovery(prefix, extension string) *Discovery {
	return &Discovery{prefix: prefix, extension: extension}
}

// FindScanFiles returns all files in dir whose names match the scan naming
// pattern, sorted by embedded date ascending. Files whose date portion does
// not parse are ignored. A missing or unreadable directory is an error; a
// readable directory with no matches returns an empty slice.
func (d *Discovery) FindScanFiles(dir string) ([]ScanFileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	suffix := "." + strings.ToLower(d.extension)
	prefix := d.prefix + "_"

	var files []ScanFileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(strings.ToLower(name), suffix) {
			continue
		}

		dateStr := strings.TrimPrefix(name, prefix)
		dateStr = dateStr[:len(dateStr)-len(suffix)]
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, ScanFileInfo{
			Path:    filepath.Join(dir, name),
			Name:    name,
			Date:    date,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	// Sort by embedded scan date (oldest first); ties by name for stability
	sort.Slice(files, func(i, j int) bool {
		if files[i].Date.Equal(files[j].Date) {
			return files[i].Name < files[j].Name
		}
		return files[i].Date.Before(files[j].Date)
	})

	return files, nil
}

// LatestScanFile returns the file with the most recent embedded date.
func LatestScanFile(files []ScanFileInfo) (ScanFileInfo, bool) {
	if len(files) == 0 {
		return ScanFileInfo{}, false
	}

	latest := files[0]
	for _, file := range files[1:] {
		if file.Date.After(latest.Date) {
			latest = file
		}
	}

	return latest, true
}
