package dashboard

import (
	"context"
	"fmt"
	"log"

	"MarketDashboard/internal/calculator"
	"MarketDashboard/internal/model"
)

// stockBars is how many trailing bars the stock chart shows per interval.
var stockBars = map[model.Interval]int{
	model.Daily:   90,
	model.Weekly:  52,
	model.Monthly: 60,
}

// StockBars returns the chart length for interval, or 0 if unsupported.
func StockBars(interval model.Interval) int {
	return stockBars[interval]
}

// Stock builds the single-stock page. A failing quote fails the whole view;
// fundamentals and history are reported as errors on the view instead.
func (s *Service) Stock(ctx context.Context, symbol string, period model.Interval) (*StockView, error) {
	symbol = normalizeSymbol(symbol)
	if period == "" {
		period = model.Daily
	}
	if !period.Valid() {
		return nil, fmt.Errorf("unsupported period %q", period)
	}
	n := StockBars(period)

	q, err := s.src.Quote(ctx, symbol)
	if err != nil {
		return nil, err
	}
	view := &StockView{Symbol: symbol, Period: period, Quote: q, GeneratedAt: s.now()}

	if f, err := s.src.Fundamentals(ctx, symbol); err != nil {
		log.Printf("[WARN] fundamentals %s: %v", symbol, err)
		view.FundamentalsError = err.Error()
	} else {
		view.Fundamentals = &f
	}

	series, err := s.src.History(ctx, symbol, period)
	if err != nil {
		log.Printf("[WARN] history %s %s: %v", symbol, period, err)
		view.HistoryError = err.Error()
		return view, nil
	}
	window := calculator.SliceHistory(series, n)
	view.History = &window

	high, low, err := calculator.PeriodRange(window.Bars)
	if err != nil {
		return view, nil
	}
	change, err := calculator.PeriodChange(window.Bars)
	if err != nil {
		log.Printf("[WARN] period change %s: %v", symbol, err)
		return view, nil
	}
	view.Stats = &PeriodStats{High: high, Low: low, ChangePercent: change}
	return view, nil
}
