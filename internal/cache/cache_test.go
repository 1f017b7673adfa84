package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"MarketDashboard/internal/model"

	"github.com/guregu/null/v6"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestCache() (*Cache, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 5, 17, 15, 0, 0, 0, time.UTC)}
	store := NewMemoryStore()
	store.now = clock.now
	return New(store, DefaultPolicy()), clock
}

type countingSource struct {
	calls map[string]int
	err   error
}

func (s *countingSource) Quote(_ context.Context, symbol string) (model.Quote, error) {
	s.calls["quote:"+symbol]++
	if s.err != nil {
		return model.Quote{}, s.err
	}
	return model.Quote{Symbol: symbol, Price: 150, Change: 3, ChangePercent: 2.04}, nil
}

func (s *countingSource) History(_ context.Context, symbol string, interval model.Interval) (model.HistorySeries, error) {
	s.calls["history:"+symbol+":"+string(interval)]++
	if s.err != nil {
		return model.HistorySeries{}, s.err
	}
	return model.HistorySeries{
		Symbol:   symbol,
		Interval: interval,
		Bars: []model.OHLCV{{
			Time: time.Date(2024, 5, 16, 0, 0, 0, 0, time.UTC), Open: 1, High: 2, Low: 0.5, Close: 1.5, Volume: 10,
		}},
	}, nil
}

func (s *countingSource) Fundamentals(_ context.Context, symbol string) (model.Fundamentals, error) {
	s.calls["fundamentals:"+symbol]++
	if s.err != nil {
		return model.Fundamentals{}, s.err
	}
	return model.Fundamentals{Symbol: symbol, Name: "Apple Inc", PERatio: null.FloatFrom(29.5)}, nil
}

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{Key{Kind: KindQuote, Symbol: "spy"}, "quote:SPY"},
		{Key{Kind: KindHistory, Symbol: "SPY", Interval: model.Weekly}, "history:SPY:weekly"},
		{Key{Kind: KindFundamentals, Symbol: "AAPL"}, "fundamentals:AAPL"},
	}
	for _, tt := range tests {
		if got := tt.key.String(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()
	if p.TTL(KindQuote) != 5*time.Minute || p.TTL(KindHistory) != 5*time.Minute {
		t.Errorf("expected 5m for quotes and history, got %v / %v", p.TTL(KindQuote), p.TTL(KindHistory))
	}
	if p.TTL(KindFundamentals) != time.Hour {
		t.Errorf("expected 1h for fundamentals, got %v", p.TTL(KindFundamentals))
	}
}

func TestCachedSource_ServesWithinTTL(t *testing.T) {
	c, clock := newTestCache()
	src := &countingSource{calls: map[string]int{}}
	cs := NewCachedSource(src, c)
	ctx := context.Background()

	first, err := cs.Quote(ctx, "SPY")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	clock.advance(4 * time.Minute)
	second, err := cs.Quote(ctx, "SPY")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Symbol != second.Symbol || first.Price != second.Price || first.ChangePercent != second.ChangePercent {
		t.Errorf("cached quote differs: %+v vs %+v", first, second)
	}
	if src.calls["quote:SPY"] != 1 {
		t.Errorf("expected 1 upstream call within TTL, got %d", src.calls["quote:SPY"])
	}

	clock.advance(2 * time.Minute)
	if _, err := cs.Quote(ctx, "SPY"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.calls["quote:SPY"] != 2 {
		t.Errorf("expected refetch after TTL, got %d calls", src.calls["quote:SPY"])
	}
}

func TestCachedSource_FundamentalsLiveAnHour(t *testing.T) {
	c, clock := newTestCache()
	src := &countingSource{calls: map[string]int{}}
	cs := NewCachedSource(src, c)
	ctx := context.Background()

	if _, err := cs.Fundamentals(ctx, "AAPL"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	clock.advance(59 * time.Minute)
	f, err := cs.Fundamentals(ctx, "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.calls["fundamentals:AAPL"] != 1 {
		t.Errorf("expected 1 upstream call, got %d", src.calls["fundamentals:AAPL"])
	}
	if !f.PERatio.Valid || f.PERatio.Float64 != 29.5 || f.DividendYield.Valid {
		t.Errorf("fundamentals did not survive the cache: %+v", f)
	}
}

func TestCachedSource_HistoryKeyedByInterval(t *testing.T) {
	c, _ := newTestCache()
	src := &countingSource{calls: map[string]int{}}
	cs := NewCachedSource(src, c)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := cs.History(ctx, "SPY", model.Daily); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := cs.History(ctx, "SPY", model.Weekly); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if src.calls["history:SPY:daily"] != 1 || src.calls["history:SPY:weekly"] != 1 {
		t.Errorf("expected one call per interval, got %v", src.calls)
	}

	h, _ := cs.History(ctx, "SPY", model.Daily)
	if h.Len() != 1 || h.Bars[0].Close != 1.5 || !h.Bars[0].Time.Equal(time.Date(2024, 5, 16, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("history did not survive the cache: %+v", h)
	}
}

func TestCachedSource_ErrorsNotCached(t *testing.T) {
	c, _ := newTestCache()
	src := &countingSource{calls: map[string]int{}, err: model.Unavailable("SPY", errors.New("rate limited"))}
	cs := NewCachedSource(src, c)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := cs.Quote(ctx, "SPY"); !errors.Is(err, model.ErrDataUnavailable) {
			t.Fatalf("expected ErrDataUnavailable, got %v", err)
		}
	}
	if src.calls["quote:SPY"] != 2 {
		t.Errorf("errors must not be cached, got %d calls", src.calls["quote:SPY"])
	}
}

func TestCache_Invalidate(t *testing.T) {
	c, _ := newTestCache()
	src := &countingSource{calls: map[string]int{}}
	cs := NewCachedSource(src, c)
	ctx := context.Background()

	_, _ = cs.Quote(ctx, "SPY")
	if err := c.Invalidate(ctx, Key{Kind: KindQuote, Symbol: "SPY"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, _ = cs.Quote(ctx, "SPY")
	if src.calls["quote:SPY"] != 2 {
		t.Errorf("expected refetch after invalidate, got %d calls", src.calls["quote:SPY"])
	}
}

func TestCachedSource_ReloadReplacesLiveEntry(t *testing.T) {
	c, clock := newTestCache()
	src := &countingSource{calls: map[string]int{}}
	cs := NewCachedSource(src, c)
	ctx := context.Background()

	if _, err := cs.Quote(ctx, "SPY"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	clock.advance(time.Minute)
	if _, err := cs.ReloadQuote(ctx, "SPY"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := cs.ReloadHistory(ctx, "SPY", model.Daily); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.calls["quote:SPY"] != 2 || src.calls["history:SPY:daily"] != 1 {
		t.Fatalf("expected reload to call upstream, got %v", src.calls)
	}

	// the reloaded entry restarts its TTL
	clock.advance(4 * time.Minute)
	if _, err := cs.Quote(ctx, "SPY"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.calls["quote:SPY"] != 2 {
		t.Errorf("expected reloaded quote served from cache, got %d calls", src.calls["quote:SPY"])
	}
}

func TestCachedSource_FailedReloadKeepsEntry(t *testing.T) {
	c, _ := newTestCache()
	src := &countingSource{calls: map[string]int{}}
	cs := NewCachedSource(src, c)
	ctx := context.Background()

	if _, err := cs.Quote(ctx, "SPY"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	src.err = model.Unavailable("SPY", errors.New("rate limited"))
	if _, err := cs.ReloadQuote(ctx, "SPY"); !errors.Is(err, model.ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable, got %v", err)
	}
	q, err := cs.Quote(ctx, "SPY")
	if err != nil || q.Price != 150 {
		t.Errorf("expected previous entry to survive, got %+v err=%v", q, err)
	}
}

func TestCache_ZeroTTLBypasses(t *testing.T) {
	src := &countingSource{calls: map[string]int{}}
	cs := NewCachedSource(src, New(NewMemoryStore(), Policy{}))
	ctx := context.Background()
	_, _ = cs.Quote(ctx, "SPY")
	_, _ = cs.Quote(ctx, "SPY")
	if src.calls["quote:SPY"] != 2 {
		t.Errorf("expected no caching with zero TTL, got %d calls", src.calls["quote:SPY"])
	}
}

func TestMemoryStore_CopiesValue(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	v := []byte("abc")
	_ = s.Set(ctx, "k", v, time.Minute)
	v[0] = 'x'
	got, ok, _ := s.Get(ctx, "k")
	if !ok || string(got) != "abc" {
		t.Errorf("expected stored copy abc, got %q (ok=%v)", got, ok)
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	if _, err := Open(context.Background(), Options{Backend: "memcached"}); err == nil {
		t.Error("expected error for unknown backend")
	}
	s, err := Open(context.Background(), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := s.(*MemoryStore); !ok {
		t.Errorf("expected memory store by default, got %T", s)
	}
}
