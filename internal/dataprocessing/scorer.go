package dataprocessing

import (
	"scanpulse/pkg/contracts/domain"
)

// MomentumScore combines price momentum with unusual trading activity:
// percent change multiplied by relative volume. It returns nil when either
// input is missing so that unrankable rows stay out of the leaderboard
// without being dropped from the dataset.
func MomentumScore(changePercent, relativeVolume *float64) *float64 {
	if changePercent == nil || relativeVolume == nil {
		return nil
	}
	score := *changePercent * *relativeVolume
	return &score
}

// AttachScores computes the momentum score for every row in place. Scoring
// is pure and per-row; no row's score depends on any other row.
func AttachScores(rows []domain.ScanRow) {
	for i := range rows {
		rows[i].MomentumScore = MomentumScore(rows[i].ChangePercent, rows[i].RelativeVolume)
	}
}
