package dashboard

import (
	"time"

	"MarketDashboard/internal/model"
)

// QuoteRow is one symbol on the overview. Quote is nil when Available is false.
type QuoteRow struct {
	Symbol    string       `json:"symbol"`
	Name      string       `json:"name"`
	Inverse   bool         `json:"inverse,omitempty"`
	Available bool         `json:"available"`
	Error     string       `json:"error,omitempty"`
	Quote     *model.Quote `json:"quote,omitempty"`
}

// SeriesView is a trailing window of bars for charting.
type SeriesView struct {
	Symbol    string        `json:"symbol"`
	Available bool          `json:"available"`
	Error     string        `json:"error,omitempty"`
	Bars      []model.OHLCV `json:"bars,omitempty"`
}

// OverviewView is the market overview page.
type OverviewView struct {
	Indices            []QuoteRow          `json:"indices"`
	International      []QuoteRow          `json:"international"`
	Benchmark          SeriesView          `json:"benchmark"`
	SectorRanking      model.SectorRanking `json:"sector_ranking"`
	UnavailableSectors []string            `json:"unavailable_sectors,omitempty"`
	GeneratedAt        time.Time           `json:"generated_at"`
}

// PeriodStats summarizes the bars shown on a stock page.
type PeriodStats struct {
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	ChangePercent float64 `json:"change_percent"`
}

// StockView is the single-stock analysis page. Quote is always present;
// fundamentals and history degrade independently.
type StockView struct {
	Symbol            string               `json:"symbol"`
	Period            model.Interval       `json:"period"`
	Quote             model.Quote          `json:"quote"`
	Fundamentals      *model.Fundamentals  `json:"fundamentals,omitempty"`
	FundamentalsError string               `json:"fundamentals_error,omitempty"`
	History           *model.HistorySeries `json:"history,omitempty"`
	HistoryError      string               `json:"history_error,omitempty"`
	Stats             *PeriodStats         `json:"stats,omitempty"`
	GeneratedAt       time.Time            `json:"generated_at"`
}

// SectorSeries is one sector's rebased performance line.
type SectorSeries struct {
	Symbol    string                   `json:"symbol"`
	Name      string                   `json:"name"`
	Available bool                     `json:"available"`
	Error     string                   `json:"error,omitempty"`
	Points    []model.PerformancePoint `json:"points,omitempty"`
}

// SectorsView is the sector performance page.
type SectorsView struct {
	Period      Period              `json:"period"`
	Lookback    int                 `json:"lookback"`
	Series      []SectorSeries      `json:"series"`
	Ranking     model.SectorRanking `json:"ranking"`
	GeneratedAt time.Time           `json:"generated_at"`
}

// Indicator describes an economic indicator worth adding to the dashboard.
type Indicator struct {
	Name       string `json:"name"`
	Importance string `json:"importance"`
	Frequency  string `json:"frequency"`
	Source     string `json:"source"`
}

// IndicatorsView is the economic indicators placeholder page.
type IndicatorsView struct {
	Indicators []Indicator `json:"indicators"`
	Note       string      `json:"note"`
}
