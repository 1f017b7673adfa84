package api

import (
	"fmt"
	"math"

	"MarketDashboard/internal/dashboard"
	"MarketDashboard/internal/model"

	"github.com/dustin/go-humanize"
	"github.com/guregu/null/v6"
)

const notAvailable = "N/A"

func formatMoney(v float64) string {
	if v < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -v)
	}
	return "$" + humanize.FormatFloat("#,###.##", v)
}

func formatSigned(v float64) string {
	if v > 0 {
		return "+" + humanize.FormatFloat("#,###.##", v)
	}
	return humanize.FormatFloat("#,###.##", v)
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// formatMarketCap abbreviates to trillions, billions or millions.
func formatMarketCap(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1e12:
		return fmt.Sprintf("$%.2fT", v/1e12)
	case abs >= 1e9:
		return fmt.Sprintf("$%.2fB", v/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("$%.2fM", v/1e6)
	}
	return formatMoney(v)
}

func formatOptional(v null.Float, f func(float64) string) string {
	if !v.Valid {
		return notAvailable
	}
	return f(v.Float64)
}

// stockDisplay renders the text fields the stock page shows.
func stockDisplay(v *dashboard.StockView) StockDisplay {
	d := StockDisplay{
		Price:         formatMoney(v.Quote.Price),
		Change:        formatSigned(v.Quote.Change),
		ChangePercent: formatPercent(v.Quote.ChangePercent),
		Volume:        humanize.Comma(v.Quote.Volume),
		MarketCap:     notAvailable,
		PERatio:       notAvailable,
		DividendYield: notAvailable,
		PeriodHigh:    notAvailable,
		PeriodLow:     notAvailable,
		PeriodChange:  notAvailable,
	}
	if f := v.Fundamentals; f != nil {
		d.MarketCap = formatOptional(f.MarketCapitalization, formatMarketCap)
		d.PERatio = formatOptional(f.PERatio, func(x float64) string { return fmt.Sprintf("%.2f", x) })
		d.DividendYield = formatOptional(f.DividendYield, func(x float64) string { return formatPercent(x * 100) })
	}
	if s := v.Stats; s != nil {
		d.PeriodHigh = formatMoney(s.High)
		d.PeriodLow = formatMoney(s.Low)
		d.PeriodChange = formatPercent(s.ChangePercent)
	}
	return d
}

// intervalOf maps the period query parameter to a history interval.
func intervalOf(period string) model.Interval {
	if period == "" {
		return model.Daily
	}
	return model.Interval(period)
}
