package calculator

import (
	"sort"

	"MarketDashboard/internal/model"
)

// RankSectors sorts sector changes by ChangePercent, highest first. Ties keep
// their input order.
func RankSectors(changes []model.SectorChange) model.SectorRanking {
	ranked := make(model.SectorRanking, len(changes))
	copy(ranked, changes)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ChangePercent > ranked[j].ChangePercent
	})
	return ranked
}

// LatestPerformance returns, per label, the last point's PercentSinceStart.
// Labels appear in the order they are first seen.
func LatestPerformance(points []model.PerformancePoint) []model.SectorChange {
	index := make(map[string]int)
	var latest []model.SectorChange
	for _, p := range points {
		i, ok := index[p.Label]
		if !ok {
			index[p.Label] = len(latest)
			latest = append(latest, model.SectorChange{Name: p.Label, ChangePercent: p.PercentSinceStart})
			continue
		}
		latest[i].ChangePercent = p.PercentSinceStart
	}
	return latest
}
