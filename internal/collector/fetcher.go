package collector

import (
	"context"

	"DayTradeDesk/internal/model"
)

// Fetcher returns the daily OHLCV history of a ticker over a period token
// such as "6mo". Results are ascending by date, one bar per session.
type Fetcher interface {
	Fetch(ctx context.Context, ticker, period string) ([]model.OHLCV, error)
	Name() string
}
