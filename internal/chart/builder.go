// Package chart turns OHLCV series and indicator series into declarative
// view descriptors. It has no dependency on a rendering engine.
package chart

import (
	"fmt"

	"DayTradeDesk/internal/customerrors"
	"DayTradeDesk/internal/model"
)

// OverlayYLabel is the value axis label of the moving-average chart.
const OverlayYLabel = "Price (USD)"

// BuildLinePrice returns the closing price line.
func BuildLinePrice(bars []model.OHLCV, ticker string) (*model.LinePriceView, error) {
	if len(bars) == 0 {
		return nil, emptyInput("line price")
	}
	points := make([]model.Point, len(bars))
	for i, b := range bars {
		points[i] = model.Point{X: b.Time, Y: b.Close}
	}
	return &model.LinePriceView{
		Type:    model.ViewLinePrice,
		Title:   fmt.Sprintf("%s Stock Prices", ticker),
		Markers: true,
		Points:  points,
	}, nil
}

// BuildCandlestick returns one candle per bar.
func BuildCandlestick(bars []model.OHLCV, ticker string) (*model.CandlestickView, error) {
	if len(bars) == 0 {
		return nil, emptyInput("candlestick")
	}
	candles := make([]model.Candle, len(bars))
	for i, b := range bars {
		candles[i] = model.Candle{X: b.Time, Open: b.Open, High: b.High, Low: b.Low, Close: b.Close}
	}
	return &model.CandlestickView{
		Type:    model.ViewCandlestick,
		Title:   fmt.Sprintf("%s Candlestick Chart", ticker),
		Candles: candles,
	}, nil
}

// BuildOverlay returns the close, SMA and EMA lines on a shared date axis.
// Absent indicator slots are left out of that indicator's line.
func BuildOverlay(bars []model.OHLCV, sma, ema model.IndicatorSeries, ticker string) (*model.OverlayView, error) {
	if len(bars) == 0 {
		return nil, emptyInput("overlay")
	}
	if sma.Len() != len(bars) || ema.Len() != len(bars) {
		return nil, fmt.Errorf("overlay: indicator length sma=%d ema=%d, bars=%d: %w",
			sma.Len(), ema.Len(), len(bars), customerrors.ErrInvalidParameter)
	}

	closeLine := model.Line{Name: "Close", Points: make([]model.Point, len(bars))}
	for i, b := range bars {
		closeLine.Points[i] = model.Point{X: b.Time, Y: b.Close}
	}

	return &model.OverlayView{
		Type:   model.ViewOverlayLines,
		Title:  fmt.Sprintf("%s Moving Averages", ticker),
		YLabel: OverlayYLabel,
		Lines:  []model.Line{closeLine, indicatorLine(bars, sma), indicatorLine(bars, ema)},
	}, nil
}

func indicatorLine(bars []model.OHLCV, s model.IndicatorSeries) model.Line {
	line := model.Line{Name: s.Label(), Points: make([]model.Point, 0, len(bars))}
	for i, b := range bars {
		if v, ok := s.At(i); ok {
			line.Points = append(line.Points, model.Point{X: b.Time, Y: v})
		}
	}
	return line
}

// BuildVolumeBars returns the traded volume per session.
func BuildVolumeBars(bars []model.OHLCV, ticker string) (*model.VolumeBarsView, error) {
	if len(bars) == 0 {
		return nil, emptyInput("volume bars")
	}
	out := make([]model.Bar, len(bars))
	for i, b := range bars {
		out[i] = model.Bar{X: b.Time, Volume: b.Volume}
	}
	return &model.VolumeBarsView{
		Type:  model.ViewVolumeBars,
		Title: fmt.Sprintf("%s Trading Volume", ticker),
		Bars:  out,
	}, nil
}

// BuildAll returns the four views in display order:
// price line, candlestick, moving-average overlay, volume.
func BuildAll(bars []model.OHLCV, sma, ema model.IndicatorSeries, ticker string) ([]model.ChartView, error) {
	line, err := BuildLinePrice(bars, ticker)
	if err != nil {
		return nil, err
	}
	candles, err := BuildCandlestick(bars, ticker)
	if err != nil {
		return nil, err
	}
	overlay, err := BuildOverlay(bars, sma, ema, ticker)
	if err != nil {
		return nil, err
	}
	volume, err := BuildVolumeBars(bars, ticker)
	if err != nil {
		return nil, err
	}
	return []model.ChartView{line, candles, overlay, volume}, nil
}

func emptyInput(view string) error {
	return fmt.Errorf("%s: %w", view, customerrors.ErrEmptyInput)
}
