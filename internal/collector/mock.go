package collector

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"MarketDashboard/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// Symbols listed in Missing return empty records; Err, when set, is returned
// for every call. Calls counts requests per "kind:symbol".
type MockFetcher struct {
	Price   float64
	Bars    int
	Missing map[string]bool
	Err     error

	Quotes    map[string]RawRecord
	Histories map[string][]RawBar
	Overviews map[string]RawRecord

	mu    sync.Mutex
	Calls map[string]int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) count(kind, symbol string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Calls == nil {
		m.Calls = make(map[string]int)
	}
	m.Calls[kind+":"+symbol]++
}

func (m *MockFetcher) FetchQuote(_ context.Context, symbol string) (RawRecord, error) {
	m.count("quote", symbol)
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Missing[symbol] {
		return RawRecord{}, nil
	}
	if rec, ok := m.Quotes[symbol]; ok {
		return rec, nil
	}
	price := m.basePrice()
	change := price * 0.01
	return RawRecord{
		quoteSymbol:        symbol,
		quoteOpen:          formatNumber(price * 0.995),
		quoteHigh:          formatNumber(price * 1.005),
		quoteLow:           formatNumber(price * 0.99),
		quotePrice:         formatNumber(price),
		quoteVolume:        "1000000",
		quoteTradingDay:    time.Now().Format(dateLayout),
		quotePreviousClose: formatNumber(price - change),
		quoteChange:        formatNumber(change),
		quoteChangePercent: "1.0101%",
	}, nil
}

func (m *MockFetcher) FetchHistory(_ context.Context, symbol string, _ model.Interval) ([]RawBar, error) {
	m.count("history", symbol)
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Missing[symbol] {
		return nil, nil
	}
	if rows, ok := m.Histories[symbol]; ok {
		return rows, nil
	}
	return generateMockBars(m.basePrice(), m.barCount()), nil
}

func (m *MockFetcher) FetchOverview(_ context.Context, symbol string) (RawRecord, error) {
	m.count("overview", symbol)
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Missing[symbol] {
		return RawRecord{}, nil
	}
	if rec, ok := m.Overviews[symbol]; ok {
		return rec, nil
	}
	return RawRecord{
		"Symbol":               symbol,
		"Name":                 symbol + " Inc",
		"Sector":               "TECHNOLOGY",
		"Industry":             "ELECTRONIC COMPUTERS",
		"MarketCapitalization": "2500000000000",
		"PERatio":              "29.5",
		"DividendYield":        "0.0052",
	}, nil
}

func (m *MockFetcher) basePrice() float64 {
	if m.Price > 0 {
		return m.Price
	}
	return 100
}

func (m *MockFetcher) barCount() int {
	if m.Bars > 0 {
		return m.Bars
	}
	return 100
}

// generateMockBars returns count daily rows ending yesterday, newest first
// like the provider does.
func generateMockBars(basePrice float64, count int) []RawBar {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	rows := make([]RawBar, 0, count)
	for i := count - 1; i >= 0; i-- {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		rows = append(rows, RawBar{
			Date: today.AddDate(0, 0, -(count - i)).Format(dateLayout),
			Fields: RawRecord{
				barOpen:   formatNumber(p * 0.999),
				barHigh:   formatNumber(p * 1.005),
				barLow:    formatNumber(p * 0.995),
				barClose:  formatNumber(p),
				barVolume: "1000000",
			},
		})
	}
	return rows
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// MockBar builds a provider history row; used by tests in other packages.
func MockBar(date string, open, high, low, closePrice, volume float64) RawBar {
	return RawBar{
		Date: date,
		Fields: RawRecord{
			barOpen:   formatNumber(open),
			barHigh:   formatNumber(high),
			barLow:    formatNumber(low),
			barClose:  formatNumber(closePrice),
			barVolume: fmt.Sprintf("%.0f", volume),
		},
	}
}
