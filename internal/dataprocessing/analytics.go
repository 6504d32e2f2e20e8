package dataprocessing

import (
	"sort"
	"time"

	"scanpulse/pkg/contracts/domain"
)

// Analytics derived from the merged dataset. Everything here is a pure
// function over immutable rows; results are computed per request, never
// cached.

// SectorCounts tallies how many symbols each sector placed in the given
// rows. Rows with an empty sector are ignored.
func SectorCounts(rows []domain.ScanRow) map[string]int {
	counts := make(map[string]int)
	for _, row := range rows {
		if row.Sector == "" {
			continue
		}
		counts[row.Sector]++
	}
	return counts
}

// LargestSector returns the sector with the highest count. Ties break on
// sector name so the result is deterministic.
func LargestSector(counts map[string]int) (string, int) {
	best, bestCount := "", 0
	for sector, count := range counts {
		if count > bestCount || (count == bestCount && best != "" && sector < best) {
			best, bestCount = sector, count
		}
	}
	return best, bestCount
}

// SectorInflow finds the sector whose scan count grew the most between the
// previous and current scan, the "top inflow" rotation signal. Sectors
// absent from one side count as zero there. Ties break on sector name.
func SectorInflow(current, previous map[string]int) (string, int) {
	sectors := make(map[string]bool, len(current)+len(previous))
	for s := range current {
		sectors[s] = true
	}
	for s := range previous {
		sectors[s] = true
	}

	best := ""
	bestDelta := 0
	first := true
	for sector := range sectors {
		delta := current[sector] - previous[sector]
		if first || delta > bestDelta || (delta == bestDelta && sector < best) {
			best, bestDelta = sector, delta
			first = false
		}
	}
	return best, bestDelta
}

// Sectors returns the distinct non-empty sectors across the whole dataset,
// sorted alphabetically.
func Sectors(ds *domain.ScanDataset) []string {
	seen := make(map[string]bool)
	for _, row := range ds.Rows {
		if row.Sector != "" {
			seen[row.Sector] = true
		}
	}

	out := make([]string, 0, len(seen))
	for sector := range seen {
		out = append(out, sector)
	}
	sort.Strings(out)
	return out
}

// SectorTrend builds the sector rotation series: one point per scan date
// per sector, counting symbols the sector placed that day. When a sector
// filter is given, only those sectors are reported and dates where a
// selected sector is absent get an explicit zero point. Points are ordered
// by date then sector.
func SectorTrend(ds *domain.ScanDataset, sectors []string) []domain.SectorTrendPoint {
	selected := sectors
	if len(selected) == 0 {
		selected = Sectors(ds)
	} else {
		selected = append([]string(nil), selected...)
		sort.Strings(selected)
	}

	var points []domain.SectorTrendPoint
	for _, date := range ds.Dates() {
		counts := SectorCounts(ds.RowsFor(date))
		for _, sector := range selected {
			points = append(points, domain.SectorTrendPoint{
				Date:   date.Format("2006-01-02"),
				Sector: sector,
				Count:  counts[sector],
			})
		}
	}
	return points
}

// MomentumLeaders returns the rows with a computed momentum score, sorted
// descending, capped at limit. Rows missing a score are excluded from the
// ranking but remain in the dataset.
func MomentumLeaders(rows []domain.ScanRow, limit int) []domain.ScanRow {
	ranked := make([]domain.ScanRow, 0, len(rows))
	for _, row := range rows {
		if row.MomentumScore != nil {
			ranked = append(ranked, row)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return *ranked[i].MomentumScore > *ranked[j].MomentumScore
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// MomentumPoints projects rows onto the momentum scatter map. Rows missing
// either axis are excluded; a missing volume renders as size zero rather
// than dropping the marker.
func MomentumPoints(rows []domain.ScanRow) []domain.MomentumPoint {
	points := make([]domain.MomentumPoint, 0, len(rows))
	for _, row := range rows {
		if !row.HasScoreInputs() {
			continue
		}

		point := domain.MomentumPoint{
			Symbol:         row.Symbol,
			Sector:         row.Sector,
			ChangePercent:  *row.ChangePercent,
			RelativeVolume: *row.RelativeVolume,
			MarketCap:      row.MarketCap,
		}
		if row.Volume != nil {
			point.Volume = *row.Volume
		}
		points = append(points, point)
	}
	return points
}

// Summarize computes the dashboard header cards: latest scan size, largest
// sector and the top inflow sector versus the previous scan.
func Summarize(ds *domain.ScanDataset) domain.ScanSummary {
	summary := domain.ScanSummary{
		TotalRows:   ds.Len(),
		ScanDates:   len(ds.Dates()),
		GeneratedAt: time.Now().UTC(),
	}

	latest, ok := ds.LatestDate()
	if !ok {
		return summary
	}
	summary.LatestDate = &latest

	latestRows := ds.RowsFor(latest)
	summary.LatestCount = len(latestRows)

	latestCounts := SectorCounts(latestRows)
	summary.LargestSector, summary.LargestCount = LargestSector(latestCounts)

	if prev, ok := ds.PreviousDate(); ok {
		prevCounts := SectorCounts(ds.RowsFor(prev))
		summary.InflowSector, summary.InflowDelta = SectorInflow(latestCounts, prevCounts)
	}

	return summary
}
