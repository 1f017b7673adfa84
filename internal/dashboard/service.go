package dashboard

import (
	"context"
	"strings"
	"time"

	"MarketDashboard/internal/model"
)

// Source is the normalized market-data surface the views are built from.
// collector.Collector and cache.CachedSource both satisfy it.
type Source interface {
	Quote(ctx context.Context, symbol string) (model.Quote, error)
	History(ctx context.Context, symbol string, interval model.Interval) (model.HistorySeries, error)
	Fundamentals(ctx context.Context, symbol string) (model.Fundamentals, error)
}

// Symbol is one tracked ticker with its display name.
type Symbol struct {
	Symbol  string
	Name    string
	Inverse bool
}

func (s Symbol) label() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Symbol
}

// Settings lists the symbols each view covers.
type Settings struct {
	Benchmark     string
	BenchmarkBars int
	Indices       []Symbol
	International []Symbol
	Sectors       []Symbol
	SectorTrends  []Symbol
}

// Service builds dashboard views. Symbols are fetched one at a time and a
// failing symbol degrades to an unavailable row.
type Service struct {
	src      Source
	settings Settings
	now      func() time.Time
}

// NewService creates a Service reading from src.
func NewService(src Source, settings Settings) *Service {
	if settings.BenchmarkBars <= 0 {
		settings.BenchmarkBars = 100
	}
	settings.Benchmark = normalizeSymbol(settings.Benchmark)
	return &Service{src: src, settings: settings, now: time.Now}
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
