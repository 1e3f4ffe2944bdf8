package collector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"DayTradeDesk/internal/customerrors"
	"DayTradeDesk/internal/model"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
)

// AlpacaFetcher implements Fetcher using Alpaca market data daily bars.
type AlpacaFetcher struct {
	client *marketdata.Client
	feed   marketdata.Feed
	now    func() time.Time
}

// NewAlpacaFetcher creates a fetcher for the IEX feed. Both keys are required.
func NewAlpacaFetcher(apiKey, apiSecret string) (*AlpacaFetcher, error) {
	if apiKey == "" || apiSecret == "" {
		return nil, errors.New("alpaca api key and secret are required")
	}
	return &AlpacaFetcher{
		client: marketdata.NewClient(marketdata.ClientOpts{
			APIKey:    apiKey,
			APISecret: apiSecret,
		}),
		feed: marketdata.IEX,
		now:  time.Now,
	}, nil
}

func (f *AlpacaFetcher) Name() string { return "alpaca" }

func (f *AlpacaFetcher) Fetch(ctx context.Context, ticker, period string) ([]model.OHLCV, error) {
	now := f.now()
	start, err := PeriodStart(now, period)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("alpaca %s: %v: %w", ticker, err, customerrors.ErrDataUnavailable)
	}

	bars, err := f.client.GetBars(ticker, marketdata.GetBarsRequest{
		TimeFrame: marketdata.OneDay,
		Start:     start,
		End:       now,
		Feed:      f.feed,
	})
	if err != nil {
		return nil, fmt.Errorf("alpaca %s: %v: %w", ticker, err, customerrors.ErrDataUnavailable)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("alpaca %s: no bars: %w", ticker, customerrors.ErrUnknownTicker)
	}

	out := make([]model.OHLCV, len(bars))
	for i, b := range bars {
		out[i] = model.OHLCV{
			Time:   b.Timestamp.UTC(),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: int64(b.Volume),
		}
	}
	return out, nil
}
