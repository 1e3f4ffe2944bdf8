package collector

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"DayTradeDesk/internal/customerrors"
	"DayTradeDesk/internal/model"

	"github.com/go-resty/resty/v2"
)

// RESTFetcher implements Fetcher against a generic bars REST API
// serving GET /api/v1/bars/daily?symbol=&limit=.
type RESTFetcher struct {
	client *resty.Client
	now    func() time.Time
}

// NewRESTFetcher creates a fetcher with optional bearer key and proxy support.
func NewRESTFetcher(baseURL, apiKey, proxyURL string) *RESTFetcher {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second)
	if apiKey != "" {
		client.SetAuthToken(apiKey)
	}
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &RESTFetcher{client: client, now: time.Now}
}

func (f *RESTFetcher) Name() string { return "rest" }

// restBar is the expected JSON shape from the bars API.
type restBar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

func (f *RESTFetcher) Fetch(ctx context.Context, ticker, period string) ([]model.OHLCV, error) {
	limit, err := PeriodSessions(f.now(), period)
	if err != nil {
		return nil, err
	}

	var raw []restBar
	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"symbol": ticker,
			"limit":  strconv.Itoa(limit),
		}).
		SetResult(&raw).
		Get("/api/v1/bars/daily")
	if err != nil {
		return nil, fmt.Errorf("fetch bars %s: %v: %w", ticker, err, customerrors.ErrDataUnavailable)
	}
	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return nil, fmt.Errorf("fetch bars %s: status 404: %w", ticker, customerrors.ErrUnknownTicker)
	case !resp.IsSuccess():
		return nil, fmt.Errorf("fetch bars %s: status %d, body: %s: %w",
			ticker, resp.StatusCode(), resp.String(), customerrors.ErrDataUnavailable)
	case len(raw) == 0:
		return nil, fmt.Errorf("fetch bars %s: empty result: %w", ticker, customerrors.ErrUnknownTicker)
	}

	bars := make([]model.OHLCV, len(raw))
	for i, rb := range raw {
		bars[i] = model.OHLCV{
			Time:   time.Unix(rb.Timestamp, 0).UTC(),
			Open:   rb.Open,
			High:   rb.High,
			Low:    rb.Low,
			Close:  rb.Close,
			Volume: int64(rb.Volume),
		}
	}
	// Ensure chronological order
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}
