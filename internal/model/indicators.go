package model

import (
	"fmt"

	"github.com/guregu/null/v6"
)

// IndicatorKind names a derived series.
type IndicatorKind string

const (
	IndicatorSMA IndicatorKind = "SMA"
	IndicatorEMA IndicatorKind = "EMA"
)

// IndicatorSeries is aligned 1:1 with the OHLCV series it was computed from.
// An invalid null.Float marks an index where the indicator has no value.
type IndicatorSeries struct {
	Kind   IndicatorKind `json:"kind"`
	Window int           `json:"window"`
	Values []null.Float  `json:"values"`
}

// Label returns the series name used on charts, e.g. "SMA_20".
func (s IndicatorSeries) Label() string {
	return fmt.Sprintf("%s_%d", s.Kind, s.Window)
}

// Len returns the number of slots, present or absent.
func (s IndicatorSeries) Len() int { return len(s.Values) }

// At returns the value at i and whether it is present.
func (s IndicatorSeries) At(i int) (float64, bool) {
	v := s.Values[i]
	return v.Float64, v.Valid
}
