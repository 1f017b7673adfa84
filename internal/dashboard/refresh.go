package dashboard

import (
	"context"
	"log"
	"time"

	"MarketDashboard/internal/model"
)

// RefreshResult reports one warm-up pass. Requests counts upstream loads,
// one per distinct quote or history key.
type RefreshResult struct {
	Requests int           `json:"requests"`
	Failed   int           `json:"failed"`
	Duration time.Duration `json:"duration"`
}

// Reloader is implemented by cached sources that can replace an entry with
// a fresh upstream load regardless of its remaining TTL.
type Reloader interface {
	ReloadQuote(ctx context.Context, symbol string) (model.Quote, error)
	ReloadHistory(ctx context.Context, symbol string, interval model.Interval) (model.HistorySeries, error)
}

// Refresh loads every quote and daily history the overview and sector views
// need from upstream, so the next page load is served from cache. Entries
// still inside their TTL are replaced too. Failures are counted and logged,
// never returned; only cancellation stops the pass.
func (s *Service) Refresh(ctx context.Context) (RefreshResult, error) {
	start := s.now()
	var res RefreshResult

	quote, history := s.src.Quote, s.src.History
	if r, ok := s.src.(Reloader); ok {
		quote, history = r.ReloadQuote, r.ReloadHistory
	}

	seen := make(map[string]bool)
	try := func(key string, fetch func() error) {
		if seen[key] {
			return
		}
		seen[key] = true
		res.Requests++
		if err := fetch(); err != nil {
			res.Failed++
			log.Printf("[WARN] refresh %s: %v", key, err)
		}
	}

	quotes := make([]Symbol, 0, len(s.settings.Indices)+len(s.settings.International)+len(s.settings.Sectors))
	quotes = append(quotes, s.settings.Indices...)
	quotes = append(quotes, s.settings.International...)
	quotes = append(quotes, s.settings.Sectors...)
	for _, sym := range quotes {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		symbol := normalizeSymbol(sym.Symbol)
		try("quote:"+symbol, func() error {
			_, err := quote(ctx, symbol)
			return err
		})
	}

	histories := append([]Symbol{{Symbol: s.settings.Benchmark}}, s.settings.SectorTrends...)
	for _, sym := range histories {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		symbol := normalizeSymbol(sym.Symbol)
		try("history:"+symbol, func() error {
			_, err := history(ctx, symbol, model.Daily)
			return err
		})
	}

	res.Duration = s.now().Sub(start)
	log.Printf("[INFO] refresh done: %d requests, %d failed in %s", res.Requests, res.Failed, res.Duration)
	return res, nil
}
