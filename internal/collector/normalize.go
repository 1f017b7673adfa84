package collector

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"MarketDashboard/internal/model"

	"github.com/guregu/null/v6"
)

// Alpha Vantage GLOBAL_QUOTE labels.
const (
	quoteSymbol        = "01. symbol"
	quoteOpen          = "02. open"
	quoteHigh          = "03. high"
	quoteLow           = "04. low"
	quotePrice         = "05. price"
	quoteVolume        = "06. volume"
	quoteTradingDay    = "07. latest trading day"
	quotePreviousClose = "08. previous close"
	quoteChange        = "09. change"
	quoteChangePercent = "10. change percent"
)

// Alpha Vantage time series labels.
const (
	barOpen   = "1. open"
	barHigh   = "2. high"
	barLow    = "3. low"
	barClose  = "4. close"
	barVolume = "5. volume"
)

const dateLayout = "2006-01-02"

var errMissingField = errors.New("missing")

// NormalizeQuote turns a GLOBAL_QUOTE record into a Quote. An empty record
// yields ErrDataUnavailable; unparsable or inconsistent fields yield
// ErrMalformedRecord.
func NormalizeQuote(symbol string, rec RawRecord) (model.Quote, error) {
	if len(rec) == 0 {
		return model.Quote{}, model.Unavailable(symbol, nil)
	}
	if s := strings.TrimSpace(rec[quoteSymbol]); s != "" {
		symbol = s
	}
	q := model.Quote{Symbol: symbol}

	var err error
	if q.Price, err = requiredFloat(symbol, rec, quotePrice); err != nil {
		return model.Quote{}, err
	}
	if q.Change, err = requiredFloat(symbol, rec, quoteChange); err != nil {
		return model.Quote{}, err
	}
	if q.ChangePercent, err = requiredFloat(symbol, rec, quoteChangePercent); err != nil {
		return model.Quote{}, err
	}
	if q.Price <= 0 {
		return model.Quote{}, model.Malformed(symbol, quotePrice, fmt.Errorf("non-positive price %v", q.Price))
	}
	// The percent field is rounded, so a tiny change on a high price may
	// read as zero percent. Only opposite non-zero signs disagree.
	if sign(q.Change)*sign(q.ChangePercent) < 0 {
		return model.Quote{}, model.Malformed(symbol, quoteChangePercent,
			fmt.Errorf("sign disagrees with change: %v vs %v", q.ChangePercent, q.Change))
	}

	for _, f := range []struct {
		label string
		dst   *float64
	}{
		{quoteOpen, &q.Open},
		{quoteHigh, &q.High},
		{quoteLow, &q.Low},
		{quotePreviousClose, &q.PreviousClose},
	} {
		if *f.dst, err = optionalFloat(symbol, rec, f.label); err != nil {
			return model.Quote{}, err
		}
	}

	vol, err := optionalFloat(symbol, rec, quoteVolume)
	if err != nil {
		return model.Quote{}, err
	}
	q.Volume = int64(vol)

	if v := strings.TrimSpace(rec[quoteTradingDay]); v != "" {
		day, err := time.Parse(dateLayout, v)
		if err != nil {
			return model.Quote{}, model.Malformed(symbol, quoteTradingDay, err)
		}
		q.TradingDay = day
	}
	return q, nil
}

// NormalizeHistory parses a provider history table into an ascending series.
// Input rows may come in any order. Duplicate dates and bars breaking
// low <= open,close <= high are rejected as malformed.
func NormalizeHistory(symbol string, interval model.Interval, rows []RawBar) (model.HistorySeries, error) {
	if len(rows) == 0 {
		return model.HistorySeries{}, model.Unavailable(symbol, nil)
	}
	bars := make([]model.OHLCV, 0, len(rows))
	for _, row := range rows {
		t, err := time.Parse(dateLayout, strings.TrimSpace(row.Date))
		if err != nil {
			return model.HistorySeries{}, model.Malformed(symbol, "date", err)
		}
		var b model.OHLCV
		b.Time = t
		for _, f := range []struct {
			label string
			dst   *float64
		}{
			{barOpen, &b.Open},
			{barHigh, &b.High},
			{barLow, &b.Low},
			{barClose, &b.Close},
			{barVolume, &b.Volume},
		} {
			if *f.dst, err = requiredFloat(symbol, row.Fields, f.label); err != nil {
				return model.HistorySeries{}, err
			}
		}
		if b.High < max(b.Open, b.Close) || b.Low > min(b.Open, b.Close) {
			return model.HistorySeries{}, model.Malformed(symbol, row.Date,
				fmt.Errorf("bar out of range: o=%v h=%v l=%v c=%v", b.Open, b.High, b.Low, b.Close))
		}
		bars = append(bars, b)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	for i := 1; i < len(bars); i++ {
		if bars[i].Time.Equal(bars[i-1].Time) {
			return model.HistorySeries{}, model.Malformed(symbol, "date",
				fmt.Errorf("duplicate bar %s", bars[i].Time.Format(dateLayout)))
		}
	}
	return model.HistorySeries{Symbol: symbol, Interval: interval, Bars: bars}, nil
}

// NormalizeFundamentals reads the company overview fields. Missing fields and
// the provider's "None" and "-" placeholders are left absent.
func NormalizeFundamentals(symbol string, rec RawRecord) (model.Fundamentals, error) {
	if len(rec) == 0 {
		return model.Fundamentals{}, model.Unavailable(symbol, nil)
	}
	f := model.Fundamentals{
		Symbol:   symbol,
		Name:     presentString(rec["Name"]),
		Sector:   presentString(rec["Sector"]),
		Industry: presentString(rec["Industry"]),
	}
	if s := presentString(rec["Symbol"]); s != "" {
		f.Symbol = s
	}
	for _, n := range []struct {
		label string
		dst   *null.Float
	}{
		{"MarketCapitalization", &f.MarketCapitalization},
		{"PERatio", &f.PERatio},
		{"DividendYield", &f.DividendYield},
	} {
		v := presentString(rec[n.label])
		if v == "" {
			continue
		}
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return model.Fundamentals{}, model.Malformed(symbol, n.label, err)
		}
		*n.dst = null.FloatFrom(parsed)
	}
	return f, nil
}

func presentString(v string) string {
	v = strings.TrimSpace(v)
	switch v {
	case "None", "-":
		return ""
	}
	return v
}

func parseNumber(v string) (float64, error) {
	v = strings.TrimSuffix(strings.TrimSpace(v), "%")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("non-finite value %q", v)
	}
	return f, nil
}

func requiredFloat(symbol string, rec RawRecord, label string) (float64, error) {
	v, ok := rec[label]
	if !ok || strings.TrimSpace(v) == "" {
		return 0, model.Malformed(symbol, label, errMissingField)
	}
	f, err := parseNumber(v)
	if err != nil {
		return 0, model.Malformed(symbol, label, err)
	}
	return f, nil
}

func optionalFloat(symbol string, rec RawRecord, label string) (float64, error) {
	v, ok := rec[label]
	if !ok || strings.TrimSpace(v) == "" {
		return 0, nil
	}
	f, err := parseNumber(v)
	if err != nil {
		return 0, model.Malformed(symbol, label, err)
	}
	return f, nil
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
