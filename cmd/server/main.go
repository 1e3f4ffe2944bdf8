package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"DayTradeDesk/internal/agent"
	"DayTradeDesk/internal/analysis"
	"DayTradeDesk/internal/collector"
	"DayTradeDesk/internal/config"
	"DayTradeDesk/internal/sanitizer"
	"DayTradeDesk/internal/scheduler"
	"DayTradeDesk/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	setupLogging(cfg.Log.Level, cfg.Log.Pretty)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}
	log.Info().Msg("DayTradeDesk starting...")

	fetcher, err := newFetcher(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("init data source")
	}
	cached := collector.NewCachedFetcher(fetcher, cfg.DataSource.CacheTTL)
	log.Info().Str("source", cached.Name()).Str("period", cfg.DataSource.Period).Msg("data source ready")

	chat, err := agent.NewChatClient(agent.Options{
		BaseURL:      cfg.Agent.BaseURL,
		APIKey:       cfg.Agent.APIKey,
		Model:        cfg.Agent.Model,
		Instructions: cfg.Agent.Instructions,
		MaxRetries:   *cfg.Agent.MaxRetries,
		Timeout:      cfg.Agent.Timeout,
		Proxy:        cfg.Proxy,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("init agent client")
	}

	san, err := sanitizer.New(cfg.Sanitizer.Patterns...)
	if err != nil {
		log.Fatal().Err(err).Msg("init sanitizer")
	}

	svc := analysis.NewService(cached, chat, san, cfg.DataSource.Period, cfg.Indicators.SMAWindow, cfg.Indicators.EMASpan)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	warmer := scheduler.NewWarmer(ctx, cached, cfg.Warmup.Tickers, cfg.DataSource.Period)
	if err := warmer.Register(cfg.Warmup.Cron); err != nil {
		log.Fatal().Err(err).Msg("register warmup")
	}
	warmer.Start()
	defer warmer.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Info().Msg("RUN_ON_START enabled, warming cache now")
		go warmer.RunNow()
	}

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := web.NewServer(web.Params{
		Port:           cfg.Server.Port,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		ExampleTickers: cfg.Warmup.Tickers,
		RequestTimeout: cfg.Agent.Timeout * 2,
	}, svc)

	if err := srv.Run(ctx); err != nil {
		log.Error().Err(err).Msg("server stopped")
		return
	}
	log.Info().Msg("DayTradeDesk stopped")
}

func newFetcher(cfg *config.Config) (collector.Fetcher, error) {
	ds := cfg.DataSource
	switch ds.Provider {
	case "yahoo":
		return collector.NewYahooFetcher(ds.BaseURL, cfg.Proxy), nil
	case "alpaca":
		f, err := collector.NewAlpacaFetcher(ds.APIKey, ds.APISecret)
		if err != nil {
			return nil, err
		}
		return f, nil
	case "rest":
		return collector.NewRESTFetcher(ds.BaseURL, ds.APIKey, cfg.Proxy), nil
	case "mock":
		return &collector.MockFetcher{Price: 100}, nil
	default:
		return nil, fmt.Errorf("unsupported provider %q", ds.Provider)
	}
}

func setupLogging(level string, pretty bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	if pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
