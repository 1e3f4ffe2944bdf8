package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot holds headline statistics of a fetched series, rounded for display.
type Snapshot struct {
	LastClose  decimal.Decimal `json:"last_close"`
	Change     decimal.Decimal `json:"change"`
	ChangePct  decimal.Decimal `json:"change_pct"`
	PeriodHigh decimal.Decimal `json:"period_high"`
	PeriodLow  decimal.Decimal `json:"period_low"`
	Sessions   int             `json:"sessions"`
	From       time.Time       `json:"from"`
	To         time.Time       `json:"to"`
}

// Analysis is the complete result of one "Analyze" action.
type Analysis struct {
	ID          string      `json:"id"`
	Ticker      string      `json:"ticker"`
	Period      string      `json:"period"`
	Snapshot    Snapshot    `json:"snapshot"`
	Charts      []ChartView `json:"charts"`
	Summary     string      `json:"summary"`
	GeneratedAt time.Time   `json:"generated_at"`
}
