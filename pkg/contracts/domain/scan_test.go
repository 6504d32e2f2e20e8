package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDay(d int) time.Time {
	return time.Date(2025, 7, d, 0, 0, 0, 0, time.UTC)
}

func TestNewScanDataset(t *testing.T) {
	rows := []ScanRow{
		{Symbol: "AAA", ScanDate: testDay(1)},
		{Symbol: "BBB", ScanDate: testDay(1)},
		{Symbol: "CCC", ScanDate: testDay(2)},
	}

	ds := NewScanDataset(rows)

	assert.Equal(t, 3, ds.Len())
	dates := ds.Dates()
	require.Len(t, dates, 2)
	assert.True(t, dates[0].Equal(testDay(1)))
	assert.True(t, dates[1].Equal(testDay(2)))
}

func TestNewScanDatasetWithDates(t *testing.T) {
	rows := []ScanRow{{Symbol: "AAA", ScanDate: testDay(2)}}
	ds := NewScanDatasetWithDates(rows, []time.Time{testDay(1), testDay(2)})

	assert.Equal(t, 1, ds.Len())
	require.Len(t, ds.Dates(), 2)
	assert.True(t, ds.HasDate(testDay(1)))
	assert.Empty(t, ds.RowsFor(testDay(1)))
}

func TestScanDatasetLatestDate(t *testing.T) {
	t.Run("empty dataset", func(t *testing.T) {
		_, ok := NewScanDataset(nil).LatestDate()
		assert.False(t, ok)
	})

	t.Run("returns last date", func(t *testing.T) {
		ds := NewScanDataset([]ScanRow{
			{Symbol: "AAA", ScanDate: testDay(1)},
			{Symbol: "BBB", ScanDate: testDay(3)},
		})

		latest, ok := ds.LatestDate()
		require.True(t, ok)
		assert.True(t, latest.Equal(testDay(3)))
	})
}

func TestScanDatasetPreviousDate(t *testing.T) {
	t.Run("single date has no previous", func(t *testing.T) {
		ds := NewScanDataset([]ScanRow{{Symbol: "AAA", ScanDate: testDay(1)}})

		_, ok := ds.PreviousDate()
		assert.False(t, ok)
	})

	t.Run("returns second to last", func(t *testing.T) {
		ds := NewScanDataset([]ScanRow{
			{Symbol: "AAA", ScanDate: testDay(1)},
			{Symbol: "BBB", ScanDate: testDay(2)},
			{Symbol: "CCC", ScanDate: testDay(3)},
		})

		prev, ok := ds.PreviousDate()
		require.True(t, ok)
		assert.True(t, prev.Equal(testDay(2)))
	})
}

func TestScanDatasetRowsFor(t *testing.T) {
	ds := NewScanDataset([]ScanRow{
		{Symbol: "AAA", ScanDate: testDay(1)},
		{Symbol: "BBB", ScanDate: testDay(2)},
		{Symbol: "CCC", ScanDate: testDay(1)},
	})

	rows := ds.RowsFor(testDay(1))
	require.Len(t, rows, 2)
	assert.Equal(t, "AAA", rows[0].Symbol)
	assert.Equal(t, "CCC", rows[1].Symbol)

	assert.Empty(t, ds.RowsFor(testDay(9)))
}

func TestScanDatasetHasDate(t *testing.T) {
	ds := NewScanDataset([]ScanRow{{Symbol: "AAA", ScanDate: testDay(1)}})

	assert.True(t, ds.HasDate(testDay(1)))
	assert.False(t, ds.HasDate(testDay(2)))

	// Time of day does not matter, only the calendar day
	assert.True(t, ds.HasDate(time.Date(2025, 7, 1, 15, 30, 0, 0, time.UTC)))
}

func TestScanDatasetDatesIsACopy(t *testing.T) {
	ds := NewScanDataset([]ScanRow{{Symbol: "AAA", ScanDate: testDay(1)}})

	dates := ds.Dates()
	dates[0] = testDay(9)

	assert.True(t, ds.Dates()[0].Equal(testDay(1)))
}

func TestHasScoreInputs(t *testing.T) {
	change := 1.0
	rel := 2.0

	assert.True(t, ScanRow{ChangePercent: &change, RelativeVolume: &rel}.HasScoreInputs())
	assert.False(t, ScanRow{ChangePercent: &change}.HasScoreInputs())
	assert.False(t, ScanRow{RelativeVolume: &rel}.HasScoreInputs())
	assert.False(t, ScanRow{}.HasScoreInputs())
}
