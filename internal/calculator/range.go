package calculator

import (
	"fmt"
	"math"

	"DayTradeDesk/internal/customerrors"
	"DayTradeDesk/internal/model"

	"github.com/shopspring/decimal"
)

// PeriodRange scans every bar and returns the highest high and lowest low.
func PeriodRange(bars []model.OHLCV) (high, low float64, err error) {
	if len(bars) == 0 {
		return 0, 0, fmt.Errorf("period range: %w", customerrors.ErrEmptyInput)
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

// Summarize builds the headline statistics shown above the charts.
// Change is measured from the first close to the last close of the series.
func Summarize(bars []model.OHLCV) (model.Snapshot, error) {
	high, low, err := PeriodRange(bars)
	if err != nil {
		return model.Snapshot{}, err
	}
	first := decimal.NewFromFloat(bars[0].Close)
	last := decimal.NewFromFloat(bars[len(bars)-1].Close)
	change := last.Sub(first)

	pct := decimal.Zero
	if !first.IsZero() {
		pct = change.Div(first).Mul(decimal.NewFromInt(100))
	}

	return model.Snapshot{
		LastClose:  last.Round(2),
		Change:     change.Round(2),
		ChangePct:  pct.Round(2),
		PeriodHigh: decimal.NewFromFloat(high).Round(2),
		PeriodLow:  decimal.NewFromFloat(low).Round(2),
		Sessions:   len(bars),
		From:       bars[0].Time,
		To:         bars[len(bars)-1].Time,
	}, nil
}
