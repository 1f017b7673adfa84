package calculator

import (
	"fmt"

	"MarketDashboard/internal/model"
)

// NormalizePerformance rebases the trailing lookback daily closes of series to
// 0% at the first retained bar: close[i] / close[anchor] * 100 - 100.
// When fewer bars exist than requested, all of them are used. An empty window
// yields no points and no error.
func NormalizePerformance(label string, series model.HistorySeries, lookback int) ([]model.PerformancePoint, error) {
	if series.Interval != "" && series.Interval != model.Daily {
		return nil, fmt.Errorf("performance needs daily bars, got %s", series.Interval)
	}
	window := SliceHistory(series, lookback)
	if len(window.Bars) == 0 {
		return nil, nil
	}
	anchor := window.Bars[0].Close
	if anchor <= 0 {
		return nil, model.Malformed(series.Symbol, "close", fmt.Errorf("anchor close %v", anchor))
	}

	points := make([]model.PerformancePoint, len(window.Bars))
	for i, b := range window.Bars {
		points[i] = model.PerformancePoint{
			Date:              b.Time,
			Label:             label,
			PercentSinceStart: b.Close/anchor*100 - 100,
		}
	}
	return points, nil
}
