package calculator

import "MarketDashboard/internal/model"

// SliceHistory returns the trailing n bars of series in ascending order, or
// the whole series when it holds fewer than n bars. n <= 0 yields an empty
// series. The result never shares its backing array with the input.
func SliceHistory(series model.HistorySeries, n int) model.HistorySeries {
	out := model.HistorySeries{Symbol: series.Symbol, Interval: series.Interval}
	if n <= 0 {
		out.Bars = []model.OHLCV{}
		return out
	}
	start := len(series.Bars) - n
	if start < 0 {
		start = 0
	}
	out.Bars = make([]model.OHLCV, len(series.Bars)-start)
	copy(out.Bars, series.Bars[start:])
	return out
}
