package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"DayTradeDesk/internal/customerrors"
	"DayTradeDesk/internal/model"

	"github.com/go-resty/resty/v2"
)

// YahooBaseURL is the public Yahoo Finance chart endpoint.
const YahooBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// YahooFetcher implements Fetcher using the Yahoo Finance chart API.
type YahooFetcher struct {
	client    *resty.Client
	SymbolMap map[string]string // maps dashboard symbol to Yahoo ticker
}

// NewYahooFetcher creates a Yahoo fetcher. An empty baseURL selects YahooBaseURL.
func NewYahooFetcher(baseURL, proxyURL string) *YahooFetcher {
	if baseURL == "" {
		baseURL = YahooBaseURL
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30*time.Second).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "Mozilla/5.0")
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &YahooFetcher{
		client: client,
		SymbolMap: map[string]string{
			"SPX":   "^GSPC",
			"SP500": "^GSPC",
			"NDX":   "^NDX",
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// yahooChart is the response structure from Yahoo Finance chart API.
// Price slots are null on non-trading rows.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (f *YahooFetcher) Fetch(ctx context.Context, ticker, period string) ([]model.OHLCV, error) {
	if err := ValidatePeriod(period); err != nil {
		return nil, err
	}

	var chart yahooChart
	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"interval": "1d",
			"range":    period,
		}).
		SetResult(&chart).
		SetError(&chart).
		Get("/" + url.PathEscape(f.yahooSymbol(ticker)))
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch %s: %v: %w", ticker, err, customerrors.ErrDataUnavailable)
	}

	if chart.Chart.Error != nil {
		if resp.StatusCode() == http.StatusNotFound || chart.Chart.Error.Code == "Not Found" {
			return nil, fmt.Errorf("yahoo %s: %s: %w", ticker, chart.Chart.Error.Description, customerrors.ErrUnknownTicker)
		}
		return nil, fmt.Errorf("yahoo %s: %s: %w", ticker, chart.Chart.Error.Description, customerrors.ErrDataUnavailable)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, fmt.Errorf("yahoo %s: status 404: %w", ticker, customerrors.ErrUnknownTicker)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("yahoo %s: status %d: %w", ticker, resp.StatusCode(), customerrors.ErrDataUnavailable)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 ||
		len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo %s: no data returned: %w", ticker, customerrors.ErrDataUnavailable)
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	bars := make([]model.OHLCV, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		o, okO := at(quote.Open, i)
		h, okH := at(quote.High, i)
		l, okL := at(quote.Low, i)
		c, okC := at(quote.Close, i)
		if !okO || !okH || !okL || !okC {
			continue // skip null bars (holidays etc.)
		}
		v, _ := at(quote.Volume, i)
		bars = append(bars, model.OHLCV{
			Time:   time.Unix(ts, 0).UTC(),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: int64(v),
		})
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("yahoo %s: only null bars: %w", ticker, customerrors.ErrDataUnavailable)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

func at(values []*float64, i int) (float64, bool) {
	if i >= len(values) || values[i] == nil {
		return 0, false
	}
	return *values[i], true
}
