package model

import "time"

// ViewKind tags a chart view descriptor.
type ViewKind string

const (
	ViewLinePrice    ViewKind = "line_price"
	ViewCandlestick  ViewKind = "candlestick"
	ViewOverlayLines ViewKind = "overlay_lines"
	ViewVolumeBars   ViewKind = "volume_bars"
)

// ChartView is a declarative chart description, independent of any rendering engine.
// Implemented by *LinePriceView, *CandlestickView, *OverlayView and *VolumeBarsView.
type ChartView interface {
	Kind() ViewKind
	Heading() string
}

// Point is one (x, y) pair on a date axis.
type Point struct {
	X time.Time `json:"x"`
	Y float64   `json:"y"`
}

// Candle is one (date, open, high, low, close) tuple.
type Candle struct {
	X     time.Time `json:"x"`
	Open  float64   `json:"o"`
	High  float64   `json:"h"`
	Low   float64   `json:"l"`
	Close float64   `json:"c"`
}

// Line is a named series drawn on a shared date axis.
type Line struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// Bar is one (date, volume) pair.
type Bar struct {
	X      time.Time `json:"x"`
	Volume int64     `json:"volume"`
}

// LinePriceView is the close-price line chart, optionally with point markers.
type LinePriceView struct {
	Type    ViewKind `json:"type"`
	Title   string   `json:"title"`
	Markers bool     `json:"markers"`
	Points  []Point  `json:"points"`
}

// CandlestickView is the OHLC candlestick chart.
type CandlestickView struct {
	Type    ViewKind `json:"type"`
	Title   string   `json:"title"`
	Candles []Candle `json:"candles"`
}

// OverlayView draws the close price with its moving averages on one axis.
type OverlayView struct {
	Type   ViewKind `json:"type"`
	Title  string   `json:"title"`
	YLabel string   `json:"y_label"`
	Lines  []Line   `json:"lines"`
}

// VolumeBarsView is the daily trading volume bar chart.
type VolumeBarsView struct {
	Type  ViewKind `json:"type"`
	Title string   `json:"title"`
	Bars  []Bar    `json:"bars"`
}

func (v *LinePriceView) Kind() ViewKind  { return ViewLinePrice }
func (v *LinePriceView) Heading() string { return v.Title }

func (v *CandlestickView) Kind() ViewKind  { return ViewCandlestick }
func (v *CandlestickView) Heading() string { return v.Title }

func (v *OverlayView) Kind() ViewKind  { return ViewOverlayLines }
func (v *OverlayView) Heading() string { return v.Title }

func (v *VolumeBarsView) Kind() ViewKind  { return ViewVolumeBars }
func (v *VolumeBarsView) Heading() string { return v.Title }
