package collector

import (
	"context"

	"MarketDashboard/internal/model"
)

// RawRecord is a provider record keyed by provider-specific labels.
type RawRecord map[string]string

// RawBar is one row of a provider history table. Fields are keyed by
// provider labels such as "1. open" or "4. close".
type RawBar struct {
	Date   string
	Fields RawRecord
}

// Fetcher defines the interface for fetching raw market data.
// An empty record with a nil error means the provider knows nothing about
// the symbol.
type Fetcher interface {
	FetchQuote(ctx context.Context, symbol string) (RawRecord, error)
	FetchHistory(ctx context.Context, symbol string, interval model.Interval) ([]RawBar, error)
	FetchOverview(ctx context.Context, symbol string) (RawRecord, error)
	Name() string
}
