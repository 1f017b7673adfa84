package dashboard

import (
	"context"
	"log"

	"MarketDashboard/internal/calculator"
	"MarketDashboard/internal/model"
)

// Overview builds the market overview: index quotes, the benchmark's recent
// daily closes and today's sector ranking.
func (s *Service) Overview(ctx context.Context) (*OverviewView, error) {
	view := &OverviewView{
		Indices:       s.quoteRows(ctx, s.settings.Indices),
		International: s.quoteRows(ctx, s.settings.International),
		Benchmark:     s.recentBars(ctx, s.settings.Benchmark, s.settings.BenchmarkBars),
		GeneratedAt:   s.now(),
	}

	changes := make([]model.SectorChange, 0, len(s.settings.Sectors))
	for _, sym := range s.settings.Sectors {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		q, err := s.src.Quote(ctx, normalizeSymbol(sym.Symbol))
		if err != nil {
			log.Printf("[WARN] sector quote %s: %v", sym.Symbol, err)
			view.UnavailableSectors = append(view.UnavailableSectors, sym.label())
			continue
		}
		changes = append(changes, model.SectorChange{Name: sym.label(), ChangePercent: q.ChangePercent})
	}
	view.SectorRanking = calculator.RankSectors(changes)

	return view, ctx.Err()
}

func (s *Service) quoteRows(ctx context.Context, symbols []Symbol) []QuoteRow {
	rows := make([]QuoteRow, 0, len(symbols))
	for _, sym := range symbols {
		row := QuoteRow{Symbol: normalizeSymbol(sym.Symbol), Name: sym.label(), Inverse: sym.Inverse}
		q, err := s.src.Quote(ctx, row.Symbol)
		if err != nil {
			log.Printf("[WARN] quote %s: %v", row.Symbol, err)
			row.Error = err.Error()
		} else {
			row.Available = true
			row.Quote = &q
		}
		rows = append(rows, row)
	}
	return rows
}

func (s *Service) recentBars(ctx context.Context, symbol string, n int) SeriesView {
	view := SeriesView{Symbol: symbol}
	series, err := s.src.History(ctx, symbol, model.Daily)
	if err != nil {
		log.Printf("[WARN] history %s: %v", symbol, err)
		view.Error = err.Error()
		return view
	}
	view.Available = true
	view.Bars = calculator.SliceHistory(series, n).Bars
	return view
}
