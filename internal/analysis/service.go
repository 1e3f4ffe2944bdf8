package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"DayTradeDesk/internal/agent"
	"DayTradeDesk/internal/calculator"
	"DayTradeDesk/internal/chart"
	"DayTradeDesk/internal/collector"
	"DayTradeDesk/internal/customerrors"
	"DayTradeDesk/internal/model"
	"DayTradeDesk/internal/sanitizer"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Service runs one complete analysis per call. It holds no per-request state.
type Service struct {
	Fetcher   collector.Fetcher
	Agent     agent.Client
	Sanitizer *sanitizer.Sanitizer
	Period    string
	SMAWindow int
	EMASpan   int

	now func() time.Time
}

// NewService creates a Service with the dashboard defaults for zero settings.
func NewService(fetcher collector.Fetcher, ag agent.Client, san *sanitizer.Sanitizer, period string, smaWindow, emaSpan int) *Service {
	if period == "" {
		period = collector.DefaultPeriod
	}
	if smaWindow == 0 {
		smaWindow = calculator.DefaultWindow
	}
	if emaSpan == 0 {
		emaSpan = calculator.DefaultWindow
	}
	if san == nil {
		san = sanitizer.Default()
	}
	return &Service{
		Fetcher:   fetcher,
		Agent:     ag,
		Sanitizer: san,
		Period:    period,
		SMAWindow: smaWindow,
		EMASpan:   emaSpan,
		now:       time.Now,
	}
}

// NormalizeTicker trims and upper-cases user input.
func NormalizeTicker(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// Analyze fetches history, derives indicators and charts, and asks the agent
// pipeline for a summary. Any failure aborts the whole analysis.
func (s *Service) Analyze(ctx context.Context, rawTicker string) (*model.Analysis, error) {
	ticker := NormalizeTicker(rawTicker)
	if ticker == "" {
		return nil, customerrors.ErrEmptyTicker
	}

	id := uuid.NewString()
	logger := log.With().Str("analysis_id", id).Str("ticker", ticker).Logger()
	start := s.now()

	bars, err := s.Fetcher.Fetch(ctx, ticker, s.Period)
	if err != nil {
		return nil, fmt.Errorf("fetch history: %w", err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("fetch history: %w", customerrors.ErrEmptyInput)
	}
	logger.Debug().Int("bars", len(bars)).Str("source", s.Fetcher.Name()).Msg("history fetched")

	sma, ema, err := calculator.MovingAverages(bars, s.SMAWindow, s.EMASpan)
	if err != nil {
		return nil, fmt.Errorf("moving averages: %w", err)
	}
	snapshot, err := calculator.Summarize(bars)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	charts, err := chart.BuildAll(bars, sma, ema, ticker)
	if err != nil {
		return nil, fmt.Errorf("build charts: %w", err)
	}

	raw, err := s.Agent.Run(ctx, agent.AnalystPrompt(ticker))
	if err != nil {
		return nil, fmt.Errorf("agent summary: %w", err)
	}
	summary := s.Sanitizer.Sanitize(raw)

	logger.Info().
		Int("bars", len(bars)).
		Int("summary_bytes", len(summary)).
		Dur("elapsed", s.now().Sub(start)).
		Msg("analysis complete")

	return &model.Analysis{
		ID:          id,
		Ticker:      ticker,
		Period:      s.Period,
		Snapshot:    snapshot,
		Charts:      charts,
		Summary:     summary,
		GeneratedAt: s.now().UTC(),
	}, nil
}
