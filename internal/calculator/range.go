package calculator

import (
	"errors"
	"math"

	"MarketDashboard/internal/model"
)

// PeriodRange scans bars and returns the highest high and lowest low.
func PeriodRange(bars []model.OHLCV) (high, low float64, err error) {
	if len(bars) == 0 {
		return 0, 0, errors.New("no bars provided")
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, b := range bars {
		if b.High > high {
			high = b.High
		}
		if b.Low < low {
			low = b.Low
		}
	}
	return high, low, nil
}

// PeriodChange returns the percent change from the first bar's open to the
// last bar's close.
func PeriodChange(bars []model.OHLCV) (float64, error) {
	if len(bars) == 0 {
		return 0, errors.New("no bars provided")
	}
	first := bars[0].Open
	if first <= 0 {
		first = bars[0].Close
	}
	if first <= 0 {
		return 0, errors.New("first bar has no positive price")
	}
	return bars[len(bars)-1].Close/first*100 - 100, nil
}
