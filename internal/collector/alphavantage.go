package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"MarketDashboard/internal/model"
)

const defaultAlphaVantageURL = "https://www.alphavantage.co/query"

// errProviderMessage is returned when the API answers with a note, an
// information message or an error message instead of data.
var errProviderMessage = errors.New("alpha vantage message")

// AlphaVantageFetcher implements Fetcher using the Alpha Vantage REST API.
type AlphaVantageFetcher struct {
	BaseURL         string
	APIKey          string
	DailyOutputSize string // "compact" (100 bars) or "full"
	Client          *http.Client
}

// NewAlphaVantageFetcher creates a new fetcher with optional proxy support.
func NewAlphaVantageFetcher(baseURL, apiKey, proxyURL string) *AlphaVantageFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if baseURL == "" {
		baseURL = defaultAlphaVantageURL
	}
	return &AlphaVantageFetcher{
		BaseURL:         baseURL,
		APIKey:          apiKey,
		DailyOutputSize: "compact",
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *AlphaVantageFetcher) Name() string { return "alphavantage" }

// seriesKeys maps each interval to its API function and response key.
var seriesKeys = map[model.Interval]struct {
	function string
	key      string
}{
	model.Daily:   {"TIME_SERIES_DAILY", "Time Series (Daily)"},
	model.Weekly:  {"TIME_SERIES_WEEKLY", "Weekly Time Series"},
	model.Monthly: {"TIME_SERIES_MONTHLY", "Monthly Time Series"},
}

func (f *AlphaVantageFetcher) FetchQuote(ctx context.Context, symbol string) (RawRecord, error) {
	body, err := f.get(ctx, url.Values{"function": {"GLOBAL_QUOTE"}, "symbol": {symbol}})
	if err != nil {
		return nil, err
	}
	var resp struct {
		GlobalQuote RawRecord `json:"Global Quote"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode quote: %w", err)
	}
	return resp.GlobalQuote, nil
}

func (f *AlphaVantageFetcher) FetchHistory(ctx context.Context, symbol string, interval model.Interval) ([]RawBar, error) {
	sk, ok := seriesKeys[interval]
	if !ok {
		return nil, fmt.Errorf("unsupported interval %q", interval)
	}
	params := url.Values{"function": {sk.function}, "symbol": {symbol}}
	if interval == model.Daily && f.DailyOutputSize != "" {
		params.Set("outputsize", f.DailyOutputSize)
	}
	body, err := f.get(ctx, params)
	if err != nil {
		return nil, err
	}
	var resp map[string]json.RawMessage
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	raw, ok := resp[sk.key]
	if !ok {
		return nil, nil
	}
	var table map[string]RawRecord
	if err := json.Unmarshal(raw, &table); err != nil {
		return nil, fmt.Errorf("decode %s: %w", sk.key, err)
	}
	// Map order is random; NormalizeHistory sorts.
	bars := make([]RawBar, 0, len(table))
	for date, fields := range table {
		bars = append(bars, RawBar{Date: date, Fields: fields})
	}
	return bars, nil
}

func (f *AlphaVantageFetcher) FetchOverview(ctx context.Context, symbol string) (RawRecord, error) {
	body, err := f.get(ctx, url.Values{"function": {"OVERVIEW"}, "symbol": {symbol}})
	if err != nil {
		return nil, err
	}
	// Overview values are all strings; anything else is dropped.
	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("decode overview: %w", err)
	}
	rec := make(RawRecord, len(fields))
	for k, v := range fields {
		if s, ok := v.(string); ok {
			rec[k] = s
		}
	}
	return rec, nil
}

func (f *AlphaVantageFetcher) get(ctx context.Context, params url.Values) ([]byte, error) {
	params.Set("apikey", f.APIKey)
	endpoint := f.BaseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("alpha vantage fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("alpha vantage read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("alpha vantage: status %d, body: %s", resp.StatusCode, string(body))
	}

	// Rate limits and bad symbols come back as 200 with a message body.
	var msg struct {
		Note        string `json:"Note"`
		Information string `json:"Information"`
		Error       string `json:"Error Message"`
	}
	if err := json.Unmarshal(body, &msg); err == nil {
		switch {
		case msg.Error != "":
			return nil, fmt.Errorf("%w: %s", errProviderMessage, msg.Error)
		case msg.Note != "":
			return nil, fmt.Errorf("%w: %s", errProviderMessage, msg.Note)
		case msg.Information != "":
			return nil, fmt.Errorf("%w: %s", errProviderMessage, msg.Information)
		}
	}
	return body, nil
}
