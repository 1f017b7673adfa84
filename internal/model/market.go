package model

import (
	"time"

	"github.com/guregu/null/v6"
)

// Interval is the bar period of a history series.
type Interval string

const (
	Daily   Interval = "daily"
	Weekly  Interval = "weekly"
	Monthly Interval = "monthly"
)

// Valid reports whether i is one of the supported intervals.
func (i Interval) Valid() bool {
	switch i {
	case Daily, Weekly, Monthly:
		return true
	}
	return false
}

// Quote is a point-in-time snapshot for one symbol.
type Quote struct {
	Symbol        string    `json:"symbol"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"change_percent"`
	Open          float64   `json:"open"`
	High          float64   `json:"high"`
	Low           float64   `json:"low"`
	PreviousClose float64   `json:"previous_close,omitempty"`
	Volume        int64     `json:"volume"`
	TradingDay    time.Time `json:"trading_day"`
}

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// HistorySeries holds bars for one symbol in strictly ascending time order.
type HistorySeries struct {
	Symbol   string   `json:"symbol"`
	Interval Interval `json:"interval"`
	Bars     []OHLCV  `json:"bars"`
}

// Len returns the number of bars.
func (s HistorySeries) Len() int { return len(s.Bars) }

// SectorChange is one sector's percent change for a single day or window.
type SectorChange struct {
	Name          string  `json:"name"`
	ChangePercent float64 `json:"change_percent"`
}

// SectorRanking is ordered non-increasing by ChangePercent.
type SectorRanking []SectorChange

// PerformancePoint is one rebased cumulative-return observation.
type PerformancePoint struct {
	Date              time.Time `json:"date"`
	Label             string    `json:"label"`
	PercentSinceStart float64   `json:"percent_since_start"`
}

// Fundamentals holds company overview fields. Invalid null.Floats and empty
// strings mean the provider did not report the field.
type Fundamentals struct {
	Symbol               string     `json:"symbol"`
	Name                 string     `json:"name,omitempty"`
	Sector               string     `json:"sector,omitempty"`
	Industry             string     `json:"industry,omitempty"`
	MarketCapitalization null.Float `json:"market_capitalization,omitzero"`
	PERatio              null.Float `json:"pe_ratio,omitzero"`
	DividendYield        null.Float `json:"dividend_yield,omitzero"` // fraction, 0.0052 = 0.52%
}
