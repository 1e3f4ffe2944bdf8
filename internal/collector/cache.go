package collector

import (
	"context"
	"strings"
	"time"

	"DayTradeDesk/internal/model"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
)

// CachedFetcher memoizes another Fetcher by (ticker, period) for a TTL.
// Callers always receive their own copy of the series.
type CachedFetcher struct {
	Fetcher Fetcher
	cache   *cache.Cache
	now     func() time.Time
}

// NewCachedFetcher wraps f with a cache whose entries live for ttl.
func NewCachedFetcher(f Fetcher, ttl time.Duration) *CachedFetcher {
	return &CachedFetcher{
		Fetcher: f,
		cache:   cache.New(ttl, 2*ttl),
		now:     time.Now,
	}
}

func (c *CachedFetcher) Name() string { return c.Fetcher.Name() + "+cache" }

func (c *CachedFetcher) Fetch(ctx context.Context, ticker, period string) ([]model.OHLCV, error) {
	if series, ok := c.Series(ticker, period); ok {
		log.Debug().
			Str("ticker", series.Symbol).
			Str("period", series.Period).
			Dur("age", c.now().Sub(series.FetchedAt)).
			Msg("history cache hit")
		return copyBars(series.Bars), nil
	}
	return c.Refresh(ctx, ticker, period)
}

// Refresh bypasses the cache and stores the fresh result.
func (c *CachedFetcher) Refresh(ctx context.Context, ticker, period string) ([]model.OHLCV, error) {
	bars, err := c.Fetcher.Fetch(ctx, ticker, period)
	if err != nil {
		return nil, err
	}
	series := model.PriceSeries{
		Symbol:    strings.ToUpper(ticker),
		Period:    period,
		Bars:      copyBars(bars),
		FetchedAt: c.now(),
	}
	c.cache.Set(cacheKey(ticker, period), series, cache.DefaultExpiration)
	return bars, nil
}

// Series returns the cached entry for (ticker, period) if it has not expired.
// The returned Bars are shared with the cache and must not be modified.
func (c *CachedFetcher) Series(ticker, period string) (model.PriceSeries, bool) {
	v, ok := c.cache.Get(cacheKey(ticker, period))
	if !ok {
		return model.PriceSeries{}, false
	}
	return v.(model.PriceSeries), true
}

// Len reports the number of cached series, expired or not.
func (c *CachedFetcher) Len() int { return c.cache.ItemCount() }

func cacheKey(ticker, period string) string {
	return strings.ToUpper(ticker) + "|" + period
}

func copyBars(bars []model.OHLCV) []model.OHLCV {
	return append([]model.OHLCV(nil), bars...)
}
