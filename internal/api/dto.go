package api

import "MarketDashboard/internal/dashboard"

// Res is the envelope every endpoint responds with.
type Res struct {
	Success bool `json:"success"`
	Error   any  `json:"error"`
	Data    any  `json:"data"`
}

// ErrorType is one failed request field.
type ErrorType struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type stockURI struct {
	Symbol string `uri:"symbol" binding:"required,symbol"`
}

type stockQuery struct {
	Period string `form:"period" binding:"omitempty,oneof=daily weekly monthly"`
}

type sectorsQuery struct {
	Period string `form:"period" binding:"omitempty,oneof=1M 3M 6M 1Y"`
}

// StockDisplay holds the stock page's pre-formatted text fields.
type StockDisplay struct {
	Price         string `json:"price"`
	Change        string `json:"change"`
	ChangePercent string `json:"change_percent"`
	Volume        string `json:"volume"`
	MarketCap     string `json:"market_cap"`
	PERatio       string `json:"pe_ratio"`
	DividendYield string `json:"dividend_yield"`
	PeriodHigh    string `json:"period_high"`
	PeriodLow     string `json:"period_low"`
	PeriodChange  string `json:"period_change"`
}

// StockRes is the stock view plus its display strings.
type StockRes struct {
	*dashboard.StockView
	Display StockDisplay `json:"display"`
}

// HealthRes is the GET /health payload.
type HealthRes struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}
