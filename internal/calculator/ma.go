package calculator

import (
	"fmt"

	"DayTradeDesk/internal/customerrors"
	"DayTradeDesk/internal/model"

	"github.com/guregu/null/v6"
)

// DefaultWindow is the look-back used by the dashboard for both averages.
const DefaultWindow = 20

// ComputeSMA returns the simple moving average of closes over window.
// The first window-1 entries are absent.
func ComputeSMA(closes []float64, window int) (model.IndicatorSeries, error) {
	if window <= 0 {
		return model.IndicatorSeries{}, fmt.Errorf("sma window %d: %w", window, customerrors.ErrInvalidParameter)
	}
	if len(closes) == 0 {
		return model.IndicatorSeries{}, fmt.Errorf("sma: %w", customerrors.ErrEmptyInput)
	}

	values := make([]null.Float, len(closes))
	for i := window - 1; i < len(closes); i++ {
		sum := 0.0
		for j := i - window + 1; j <= i; j++ {
			sum += closes[j]
		}
		values[i] = null.FloatFrom(sum / float64(window))
	}
	return model.IndicatorSeries{Kind: model.IndicatorSMA, Window: window, Values: values}, nil
}

// ComputeEMA returns the exponential moving average of closes with
// alpha = 2/(span+1), seeded with the first close. Every entry is present.
func ComputeEMA(closes []float64, span int) (model.IndicatorSeries, error) {
	if span <= 0 {
		return model.IndicatorSeries{}, fmt.Errorf("ema span %d: %w", span, customerrors.ErrInvalidParameter)
	}
	if len(closes) == 0 {
		return model.IndicatorSeries{}, fmt.Errorf("ema: %w", customerrors.ErrEmptyInput)
	}

	alpha := 2.0 / float64(span+1)
	values := make([]null.Float, len(closes))
	prev := closes[0]
	values[0] = null.FloatFrom(prev)
	for i := 1; i < len(closes); i++ {
		prev = alpha*closes[i] + (1-alpha)*prev
		values[i] = null.FloatFrom(prev)
	}
	return model.IndicatorSeries{Kind: model.IndicatorEMA, Window: span, Values: values}, nil
}

// MovingAverages computes the SMA and EMA pair drawn on the overlay chart.
func MovingAverages(bars []model.OHLCV, window, span int) (sma, ema model.IndicatorSeries, err error) {
	closes := model.Closes(bars)
	if sma, err = ComputeSMA(closes, window); err != nil {
		return sma, ema, err
	}
	if ema, err = ComputeEMA(closes, span); err != nil {
		return sma, ema, err
	}
	return sma, ema, nil
}
