package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
}

func TestFindScanFiles(t *testing.T) {
	d := NewDiscovery("Stage 2", "csv")

	t.Run("matches pattern and sorts by date", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, dir, "Stage 2_2025-07-03.csv")
		touch(t, dir, "Stage 2_2025-07-01.csv")
		touch(t, dir, "Stage 2_2025-07-02.csv")

		files, err := d.FindScanFiles(dir)
		require.NoError(t, err)
		require.Len(t, files, 3)
		assert.Equal(t, "Stage 2_2025-07-01.csv", files[0].Name)
		assert.Equal(t, "Stage 2_2025-07-02.csv", files[1].Name)
		assert.Equal(t, "Stage 2_2025-07-03.csv", files[2].Name)
	})

	t.Run("ignores non matching names", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, dir, "Stage 2_2025-07-01.csv")
		touch(t, dir, "Stage 3_2025-07-01.csv")
		touch(t, dir, "notes.txt")
		touch(t, dir, "Stage 2_notadate.csv")
		touch(t, dir, "Stage 2_2025-13-45.csv")
		require.NoError(t, os.Mkdir(filepath.Join(dir, "Stage 2_2025-07-02.csv"), 0755))

		files, err := d.FindScanFiles(dir)
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Equal(t, "Stage 2_2025-07-01.csv", files[0].Name)
	})

	t.Run("extension match is case insensitive", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, dir, "Stage 2_2025-07-01.CSV")

		files, err := d.FindScanFiles(dir)
		require.NoError(t, err)
		assert.Len(t, files, 1)
	})

	t.Run("empty directory returns empty slice", func(t *testing.T) {
		files, err := d.FindScanFiles(t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("missing directory is an error", func(t *testing.T) {
		_, err := d.FindScanFiles(filepath.Join(t.TempDir(), "nope"))
		assert.Error(t, err)
	})

	t.Run("embedded date is parsed", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, dir, "Stage 2_2025-07-15.csv")

		files, err := d.FindScanFiles(dir)
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Equal(t, "2025-07-15", files[0].Date.Format("2006-01-02"))
	})
}

func TestLatestScanFile(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		_, ok := LatestScanFile(nil)
		assert.False(t, ok)
	})

	t.Run("picks most recent date", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, dir, "Stage 2_2025-07-01.csv")
		touch(t, dir, "Stage 2_2025-07-05.csv")
		touch(t, dir, "Stage 2_2025-07-03.csv")

		files, err := NewDiscovery("Stage 2", "csv").FindScanFiles(dir)
		require.NoError(t, err)

		latest, ok := LatestScanFile(files)
		require.True(t, ok)
		assert.Equal(t, "Stage 2_2025-07-05.csv", latest.Name)
	})
}
