package customerrors

import "errors"

var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrEmptyInput       = errors.New("no data points to process")
	ErrUnknownTicker    = errors.New("unknown ticker")
	ErrDataUnavailable  = errors.New("market data unavailable")
	ErrAgentUnavailable = errors.New("agent pipeline unavailable")

	// ErrEmptyTicker is returned when the Analyze action is triggered without a symbol.
	ErrEmptyTicker = errors.New("ticker symbol is required")
)
