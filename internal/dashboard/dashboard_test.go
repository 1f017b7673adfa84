package dashboard

import (
	"context"
	"errors"
	"testing"

	"MarketDashboard/internal/cache"
	"MarketDashboard/internal/collector"
	"MarketDashboard/internal/model"
)

func testSettings() Settings {
	return Settings{
		Benchmark:     "SPY",
		Indices:       []Symbol{{Symbol: "SPY", Name: "S&P 500 ETF"}, {Symbol: "DIA", Name: "Dow Jones ETF"}},
		International: []Symbol{{Symbol: "VIX", Name: "Volatility Index", Inverse: true}},
		Sectors:       []Symbol{{Symbol: "XLK", Name: "Technology"}, {Symbol: "XLF", Name: "Financials"}, {Symbol: "XLE", Name: "Energy"}},
		SectorTrends:  []Symbol{{Symbol: "XLK", Name: "Technology"}, {Symbol: "XLF", Name: "Financials"}},
	}
}

func quoteRecord(price, change, percent string) collector.RawRecord {
	return collector.RawRecord{
		"05. price":          price,
		"09. change":         change,
		"10. change percent": percent,
	}
}

func TestOverview_AllAvailable(t *testing.T) {
	m := &collector.MockFetcher{Bars: 150}
	svc := NewService(collector.NewCollector(m), testSettings())

	view, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Indices) != 2 || len(view.International) != 1 {
		t.Fatalf("unexpected row counts: %d / %d", len(view.Indices), len(view.International))
	}
	for _, row := range append(view.Indices, view.International...) {
		if !row.Available || row.Quote == nil {
			t.Errorf("expected %s available, got %+v", row.Symbol, row)
		}
	}
	if !view.International[0].Inverse {
		t.Error("expected VIX row to carry the inverse flag")
	}
	if !view.Benchmark.Available || len(view.Benchmark.Bars) != 100 {
		t.Errorf("expected 100 benchmark bars, got %d (available=%v)", len(view.Benchmark.Bars), view.Benchmark.Available)
	}
	if len(view.SectorRanking) != 3 {
		t.Errorf("expected 3 ranked sectors, got %d", len(view.SectorRanking))
	}
}

func TestOverview_DegradesPerSymbol(t *testing.T) {
	m := &collector.MockFetcher{Missing: map[string]bool{"DIA": true, "XLF": true}}
	svc := NewService(collector.NewCollector(m), testSettings())

	view, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dia := view.Indices[1]
	if dia.Symbol != "DIA" || dia.Available || dia.Quote != nil || dia.Error == "" {
		t.Errorf("expected DIA unavailable with an error, got %+v", dia)
	}
	if !view.Indices[0].Available {
		t.Error("SPY should still render when DIA fails")
	}
	if len(view.UnavailableSectors) != 1 || view.UnavailableSectors[0] != "Financials" {
		t.Errorf("expected Financials unavailable, got %v", view.UnavailableSectors)
	}
	for _, s := range view.SectorRanking {
		if s.Name == "Financials" {
			t.Error("unavailable sector must not be ranked")
		}
	}
}

func TestOverview_SectorRankingOrder(t *testing.T) {
	m := &collector.MockFetcher{Quotes: map[string]collector.RawRecord{
		"XLK": quoteRecord("200", "2", "1.0%"),
		"XLF": quoteRecord("40", "-1", "-2.5%"),
		"XLE": quoteRecord("90", "2.7", "3.0%"),
	}}
	svc := NewService(collector.NewCollector(m), testSettings())

	view, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Energy", "Technology", "Financials"}
	if len(view.SectorRanking) != len(want) {
		t.Fatalf("expected %d sectors, got %d", len(want), len(view.SectorRanking))
	}
	for i, name := range want {
		if view.SectorRanking[i].Name != name {
			t.Errorf("rank %d: expected %s, got %s", i, name, view.SectorRanking[i].Name)
		}
	}
}

func TestStock_PeriodLengths(t *testing.T) {
	m := &collector.MockFetcher{Bars: 200}
	svc := NewService(collector.NewCollector(m), testSettings())

	tests := []struct {
		period model.Interval
		want   int
	}{
		{model.Daily, 90},
		{model.Weekly, 52},
		{model.Monthly, 60},
		{"", 90},
	}
	for _, tt := range tests {
		view, err := svc.Stock(context.Background(), " aapl ", tt.period)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tt.period, err)
		}
		if view.Symbol != "AAPL" {
			t.Errorf("expected normalized symbol AAPL, got %q", view.Symbol)
		}
		if view.History == nil || view.History.Len() != tt.want {
			t.Errorf("%q: expected %d bars, got %+v", tt.period, tt.want, view.History)
			continue
		}
		if view.Stats == nil || view.Stats.High < view.Stats.Low {
			t.Errorf("%q: unexpected stats %+v", tt.period, view.Stats)
		}
		if view.Fundamentals == nil || !view.Fundamentals.PERatio.Valid {
			t.Errorf("%q: expected fundamentals", tt.period)
		}
	}
}

func TestStock_UnknownSymbol(t *testing.T) {
	m := &collector.MockFetcher{Missing: map[string]bool{"ZZZZ": true}}
	svc := NewService(collector.NewCollector(m), testSettings())

	_, err := svc.Stock(context.Background(), "ZZZZ", model.Daily)
	if !errors.Is(err, model.ErrDataUnavailable) {
		t.Errorf("expected ErrDataUnavailable, got %v", err)
	}
}

func TestStock_PartialDegradation(t *testing.T) {
	m := &collector.MockFetcher{
		Overviews: map[string]collector.RawRecord{"AAPL": {"Symbol": "AAPL", "PERatio": "abc"}},
		Histories: map[string][]collector.RawBar{"AAPL": nil},
	}
	svc := NewService(collector.NewCollector(m), testSettings())

	view, err := svc.Stock(context.Background(), "AAPL", model.Daily)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Fundamentals != nil || view.FundamentalsError == "" {
		t.Errorf("expected fundamentals error, got %+v", view.Fundamentals)
	}
	if view.History != nil || view.HistoryError == "" || view.Stats != nil {
		t.Errorf("expected history error, got %+v", view.History)
	}
	if view.Quote.Price <= 0 {
		t.Errorf("expected quote to render, got %+v", view.Quote)
	}
}

func TestStock_UnsupportedPeriod(t *testing.T) {
	svc := NewService(collector.NewCollector(&collector.MockFetcher{}), testSettings())
	if _, err := svc.Stock(context.Background(), "AAPL", "hourly"); err == nil {
		t.Error("expected error for unsupported period")
	}
}

func TestSectors_RebasedAndRanked(t *testing.T) {
	m := &collector.MockFetcher{Histories: map[string][]collector.RawBar{
		"XLK": {
			collector.MockBar("2024-01-04", 120, 121, 119, 120, 1000),
			collector.MockBar("2024-01-02", 100, 101, 99, 100, 1000),
			collector.MockBar("2024-01-03", 110, 111, 109, 110, 1000),
		},
		"XLF": {
			collector.MockBar("2024-01-02", 50, 51, 49, 50, 1000),
			collector.MockBar("2024-01-03", 45, 46, 44, 45, 1000),
		},
	}}
	svc := NewService(collector.NewCollector(m), testSettings())

	view, err := svc.Sectors(context.Background(), Period1M)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Lookback != 30 {
		t.Errorf("expected lookback 30, got %d", view.Lookback)
	}
	if len(view.Series) != 2 {
		t.Fatalf("expected 2 series, got %d", len(view.Series))
	}
	xlk := view.Series[0]
	if !xlk.Available || len(xlk.Points) != 3 {
		t.Fatalf("unexpected XLK series: %+v", xlk)
	}
	if xlk.Points[0].PercentSinceStart != 0 || xlk.Points[2].PercentSinceStart != 20 {
		t.Errorf("unexpected XLK points: %+v", xlk.Points)
	}
	if xlk.Points[0].Label != "Technology" {
		t.Errorf("expected label Technology, got %q", xlk.Points[0].Label)
	}

	if len(view.Ranking) != 2 || view.Ranking[0].Name != "Technology" || view.Ranking[1].Name != "Financials" {
		t.Fatalf("unexpected ranking: %+v", view.Ranking)
	}
	if view.Ranking[1].ChangePercent != -10 {
		t.Errorf("expected Financials -10, got %v", view.Ranking[1].ChangePercent)
	}
}

func TestSectors_Lookbacks(t *testing.T) {
	m := &collector.MockFetcher{Bars: 400}
	svc := NewService(collector.NewCollector(m), testSettings())

	for period, want := range map[Period]int{Period1M: 30, Period3M: 90, Period6M: 180, Period1Y: 365} {
		view, err := svc.Sectors(context.Background(), period)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", period, err)
		}
		if got := len(view.Series[0].Points); got != want {
			t.Errorf("%s: expected %d points, got %d", period, want, got)
		}
	}
}

func TestSectors_DegradesAndRejectsUnknownPeriod(t *testing.T) {
	m := &collector.MockFetcher{Missing: map[string]bool{"XLF": true}}
	svc := NewService(collector.NewCollector(m), testSettings())

	view, err := svc.Sectors(context.Background(), Period3M)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Series[1].Available || view.Series[1].Error == "" {
		t.Errorf("expected XLF unavailable, got %+v", view.Series[1])
	}
	if len(view.Ranking) != 1 {
		t.Errorf("expected only XLK ranked, got %+v", view.Ranking)
	}

	if _, err := svc.Sectors(context.Background(), "2W"); !errors.Is(err, ErrUnknownPeriod) {
		t.Errorf("expected ErrUnknownPeriod, got %v", err)
	}
}

func TestIndicators(t *testing.T) {
	svc := NewService(collector.NewCollector(&collector.MockFetcher{}), testSettings())
	view := svc.Indicators()
	if len(view.Indicators) != 8 {
		t.Fatalf("expected 8 indicators, got %d", len(view.Indicators))
	}
	if view.Note == "" {
		t.Error("expected a note")
	}
	view.Indicators[0].Name = "changed"
	if svc.Indicators().Indicators[0].Name == "changed" {
		t.Error("Indicators must return a copy")
	}
}

func TestRefresh_WarmsCache(t *testing.T) {
	m := &collector.MockFetcher{}
	c := cache.New(cache.NewMemoryStore(), cache.DefaultPolicy())
	svc := NewService(cache.NewCachedSource(collector.NewCollector(m), c), testSettings())
	ctx := context.Background()

	res, err := svc.Refresh(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// quotes SPY DIA VIX XLK XLF XLE, histories SPY XLK XLF
	if res.Requests != 9 || res.Failed != 0 {
		t.Errorf("unexpected refresh result: %+v", res)
	}

	before := 0
	for _, n := range m.Calls {
		before += n
	}
	if _, err := svc.Overview(ctx); err != nil {
		t.Fatalf("overview: %v", err)
	}
	if _, err := svc.Sectors(ctx, Period1Y); err != nil {
		t.Fatalf("sectors: %v", err)
	}
	after := 0
	for _, n := range m.Calls {
		after += n
	}
	if after != before {
		t.Errorf("expected views to be served from cache, upstream calls went %d -> %d", before, after)
	}
}

func upstreamCalls(m *collector.MockFetcher) int {
	n := 0
	for _, c := range m.Calls {
		n += c
	}
	return n
}

func TestRefresh_ReloadsEntriesInsideTTL(t *testing.T) {
	m := &collector.MockFetcher{}
	c := cache.New(cache.NewMemoryStore(), cache.DefaultPolicy())
	svc := NewService(cache.NewCachedSource(collector.NewCollector(m), c), testSettings())
	ctx := context.Background()

	if _, err := svc.Refresh(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first := upstreamCalls(m)
	if first != 9 {
		t.Fatalf("expected 9 upstream calls on first refresh, got %d", first)
	}

	// second pass well inside the 5 minute TTL
	res, err := svc.Refresh(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := upstreamCalls(m) - first; got != 9 || res.Requests != got {
		t.Errorf("expected second refresh to reload 9 entries, upstream=%d result=%+v", got, res)
	}
}

func TestRefresh_CountsFailures(t *testing.T) {
	m := &collector.MockFetcher{Missing: map[string]bool{"DIA": true}}
	svc := NewService(collector.NewCollector(m), testSettings())

	res, err := svc.Refresh(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Failed != 1 {
		t.Errorf("expected 1 failure, got %+v", res)
	}
}

func TestRefresh_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc := NewService(collector.NewCollector(&collector.MockFetcher{}), testSettings())
	if _, err := svc.Refresh(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
