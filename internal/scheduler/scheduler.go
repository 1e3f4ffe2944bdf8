package scheduler

import (
	"context"
	"fmt"

	"DayTradeDesk/internal/analysis"
	"DayTradeDesk/internal/model"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// DefaultWarmupCron runs after the US close on weekdays (seconds field first).
const DefaultWarmupCron = "0 30 16 * * 1-5"

// Refresher re-fetches and stores a ticker's history, bypassing any cache.
type Refresher interface {
	Refresh(ctx context.Context, ticker, period string) ([]model.OHLCV, error)
}

// Warmer keeps the history cache warm for the dashboard's example tickers.
type Warmer struct {
	Cron      *cron.Cron
	Refresher Refresher
	Tickers   []string
	Period    string
	Ctx       context.Context
}

// NewWarmer creates a Warmer with a seconds-enabled cron.
func NewWarmer(ctx context.Context, r Refresher, tickers []string, period string) *Warmer {
	normalized := make([]string, 0, len(tickers))
	for _, t := range tickers {
		if t = analysis.NormalizeTicker(t); t != "" {
			normalized = append(normalized, t)
		}
	}
	return &Warmer{
		Cron:      cron.New(cron.WithSeconds()),
		Refresher: r,
		Tickers:   normalized,
		Period:    period,
		Ctx:       ctx,
	}
}

// Register schedules the warmup task.
func (w *Warmer) Register(spec string) error {
	if _, err := w.Cron.AddFunc(spec, func() { w.RunNow() }); err != nil {
		return fmt.Errorf("register warmup task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (w *Warmer) Start() {
	w.Cron.Start()
	log.Info().Int("tickers", len(w.Tickers)).Msg("warmup scheduler started")
}

// Stop stops the cron scheduler and waits for a running task.
func (w *Warmer) Stop() {
	<-w.Cron.Stop().Done()
	log.Info().Msg("warmup scheduler stopped")
}

// RunNow refreshes every ticker once and returns how many succeeded.
func (w *Warmer) RunNow() int {
	ok := 0
	for _, t := range w.Tickers {
		if w.Ctx.Err() != nil {
			break
		}
		bars, err := w.Refresher.Refresh(w.Ctx, t, w.Period)
		if err != nil {
			log.Error().Err(err).Str("ticker", t).Msg("warmup refresh failed")
			continue
		}
		log.Debug().Str("ticker", t).Int("bars", len(bars)).Msg("warmup refreshed")
		ok++
	}
	log.Info().Int("refreshed", ok).Int("tickers", len(w.Tickers)).Msg("warmup complete")
	return ok
}
