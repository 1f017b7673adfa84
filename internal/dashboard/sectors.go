package dashboard

import (
	"context"
	"errors"
	"log"

	"MarketDashboard/internal/calculator"
	"MarketDashboard/internal/model"
)

// Period is a sector performance lookback window.
type Period string

const (
	Period1M Period = "1M"
	Period3M Period = "3M"
	Period6M Period = "6M"
	Period1Y Period = "1Y"
)

// ErrUnknownPeriod is returned for a lookback window other than 1M, 3M, 6M or 1Y.
var ErrUnknownPeriod = errors.New("unknown period")

var lookbacks = map[Period]int{
	Period1M: 30,
	Period3M: 90,
	Period6M: 180,
	Period1Y: 365,
}

// Lookback returns the number of trailing daily bars for p.
func (p Period) Lookback() (int, error) {
	n, ok := lookbacks[p]
	if !ok {
		return 0, ErrUnknownPeriod
	}
	return n, nil
}

// Sectors rebases each trend sector's daily closes to 0% at the start of the
// window and ranks sectors by their latest value.
func (s *Service) Sectors(ctx context.Context, period Period) (*SectorsView, error) {
	if period == "" {
		period = Period1M
	}
	lookback, err := period.Lookback()
	if err != nil {
		return nil, err
	}

	view := &SectorsView{
		Period:      period,
		Lookback:    lookback,
		Series:      make([]SectorSeries, 0, len(s.settings.SectorTrends)),
		GeneratedAt: s.now(),
	}
	var all []model.PerformancePoint
	for _, sym := range s.settings.SectorTrends {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row := SectorSeries{Symbol: normalizeSymbol(sym.Symbol), Name: sym.label()}
		points, err := s.sectorPoints(ctx, row.Symbol, row.Name, lookback)
		if err != nil {
			log.Printf("[WARN] sector performance %s: %v", row.Symbol, err)
			row.Error = err.Error()
		} else {
			row.Available = true
			row.Points = points
			all = append(all, points...)
		}
		view.Series = append(view.Series, row)
	}
	view.Ranking = calculator.RankSectors(calculator.LatestPerformance(all))
	return view, nil
}

func (s *Service) sectorPoints(ctx context.Context, symbol, label string, lookback int) ([]model.PerformancePoint, error) {
	series, err := s.src.History(ctx, symbol, model.Daily)
	if err != nil {
		return nil, err
	}
	return calculator.NormalizePerformance(label, series, lookback)
}
