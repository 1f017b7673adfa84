package cache

import (
	"context"

	"MarketDashboard/internal/model"
)

// Source is the normalized market-data surface that CachedSource wraps.
type Source interface {
	Quote(ctx context.Context, symbol string) (model.Quote, error)
	History(ctx context.Context, symbol string, interval model.Interval) (model.HistorySeries, error)
	Fundamentals(ctx context.Context, symbol string) (model.Fundamentals, error)
}

// CachedSource serves Source calls through a Cache.
type CachedSource struct {
	src   Source
	cache *Cache
}

// NewCachedSource wraps src with c.
func NewCachedSource(src Source, c *Cache) *CachedSource {
	return &CachedSource{src: src, cache: c}
}

func (s *CachedSource) Quote(ctx context.Context, symbol string) (model.Quote, error) {
	return Load(ctx, s.cache, Key{Kind: KindQuote, Symbol: symbol}, func(ctx context.Context) (model.Quote, error) {
		return s.src.Quote(ctx, symbol)
	})
}

func (s *CachedSource) History(ctx context.Context, symbol string, interval model.Interval) (model.HistorySeries, error) {
	key := Key{Kind: KindHistory, Symbol: symbol, Interval: interval}
	return Load(ctx, s.cache, key, func(ctx context.Context) (model.HistorySeries, error) {
		return s.src.History(ctx, symbol, interval)
	})
}

func (s *CachedSource) Fundamentals(ctx context.Context, symbol string) (model.Fundamentals, error) {
	return Load(ctx, s.cache, Key{Kind: KindFundamentals, Symbol: symbol}, func(ctx context.Context) (model.Fundamentals, error) {
		return s.src.Fundamentals(ctx, symbol)
	})
}

// ReloadQuote fetches symbol's quote upstream and replaces the cached entry.
func (s *CachedSource) ReloadQuote(ctx context.Context, symbol string) (model.Quote, error) {
	return Reload(ctx, s.cache, Key{Kind: KindQuote, Symbol: symbol}, func(ctx context.Context) (model.Quote, error) {
		return s.src.Quote(ctx, symbol)
	})
}

// ReloadHistory fetches symbol's history upstream and replaces the cached entry.
func (s *CachedSource) ReloadHistory(ctx context.Context, symbol string, interval model.Interval) (model.HistorySeries, error) {
	key := Key{Kind: KindHistory, Symbol: symbol, Interval: interval}
	return Reload(ctx, s.cache, key, func(ctx context.Context) (model.HistorySeries, error) {
		return s.src.History(ctx, symbol, interval)
	})
}
