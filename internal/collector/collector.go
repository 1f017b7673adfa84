package collector

import (
	"context"
	"strings"

	"MarketDashboard/internal/model"
)

// Collector fetches raw provider data and normalizes it into model types.
type Collector struct {
	Fetcher Fetcher
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{Fetcher: fetcher}
}

// Quote fetches and normalizes the current quote for symbol.
func (c *Collector) Quote(ctx context.Context, symbol string) (model.Quote, error) {
	symbol = normalizeSymbol(symbol)
	rec, err := c.Fetcher.FetchQuote(ctx, symbol)
	if err != nil {
		return model.Quote{}, model.Unavailable(symbol, err)
	}
	return NormalizeQuote(symbol, rec)
}

// History fetches the full provider history for symbol at interval, sorted
// ascending.
func (c *Collector) History(ctx context.Context, symbol string, interval model.Interval) (model.HistorySeries, error) {
	symbol = normalizeSymbol(symbol)
	rows, err := c.Fetcher.FetchHistory(ctx, symbol, interval)
	if err != nil {
		return model.HistorySeries{}, model.Unavailable(symbol, err)
	}
	return NormalizeHistory(symbol, interval, rows)
}

// Fundamentals fetches the company overview for symbol.
func (c *Collector) Fundamentals(ctx context.Context, symbol string) (model.Fundamentals, error) {
	symbol = normalizeSymbol(symbol)
	rec, err := c.Fetcher.FetchOverview(ctx, symbol)
	if err != nil {
		return model.Fundamentals{}, model.Unavailable(symbol, err)
	}
	return NormalizeFundamentals(symbol, rec)
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
