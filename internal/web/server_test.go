package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"DayTradeDesk/internal/customerrors"
	"DayTradeDesk/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAnalyzer struct {
	err    error
	called string
}

func (f *fakeAnalyzer) Analyze(_ context.Context, ticker string) (*model.Analysis, error) {
	f.called = ticker
	if f.err != nil {
		return nil, f.err
	}
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return &model.Analysis{
		ID:     "a-1",
		Ticker: strings.ToUpper(ticker),
		Period: "6mo",
		Snapshot: model.Snapshot{
			LastClose: decimal.RequireFromString("415.5"),
			Change:    decimal.RequireFromString("12.25"),
			ChangePct: decimal.RequireFromString("3.04"),
			Sessions:  1,
		},
		Charts: []model.ChartView{
			&model.LinePriceView{Type: model.ViewLinePrice, Title: "MSFT Stock Prices", Markers: true,
				Points: []model.Point{{X: day, Y: 415.5}}},
			&model.VolumeBarsView{Type: model.ViewVolumeBars, Title: "MSFT Trading Volume",
				Bars: []model.Bar{{X: day, Volume: 1200}}},
		},
		Summary: "**Buy** rating from 30 analysts.\n\n- Earnings beat",
	}, nil
}

func postForm(h http.Handler, ticker string) *httptest.ResponseRecorder {
	form := url.Values{"ticker": {ticker}}
	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s := NewServer(Params{}, &fakeAnalyzer{})
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIndexPage(t *testing.T) {
	s := NewServer(Params{ExampleTickers: []string{"NVDA", "TSLA"}}, &fakeAnalyzer{})
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<title>Day Trade App</title>")
	assert.Contains(t, body, "Real-Time Day Trade Analytics with AI Agents")
	assert.Contains(t, body, "<code>NVDA</code>")
	assert.Contains(t, body, "<code>TSLA</code>")
	assert.NotContains(t, body, "<code>AMZN</code>")
	assert.Contains(t, body, "https://stockanalysis.com/list/nasdaq-stocks/")
	assert.Contains(t, body, "Purpose of the App")
	assert.NotContains(t, body, "AI Generated Analysis")
}

func TestIndexPage_NoExampleTickers(t *testing.T) {
	s := NewServer(Params{}, &fakeAnalyzer{})
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "Example tickers")
}

func TestAnalyzePage_Success(t *testing.T) {
	fa := &fakeAnalyzer{}
	s := NewServer(Params{}, fa)
	w := postForm(s.Handler(), "msft")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "msft", fa.called)
	body := w.Body.String()
	assert.Contains(t, body, "AI Generated Analysis")
	assert.Contains(t, body, "Data Visualization")
	assert.Contains(t, body, "<strong>Buy</strong>")
	assert.Contains(t, body, "<li>Earnings beat</li>")
	assert.Contains(t, body, `id="chart-0"`)
	assert.Contains(t, body, `id="chart-1"`)
	assert.Contains(t, body, `"type":"line_price"`)
	assert.Contains(t, body, "415.50")
	assert.Less(t, strings.Index(body, "AI Generated Analysis"), strings.Index(body, "Data Visualization"))
}

func TestAnalyzePage_Errors(t *testing.T) {
	tests := []struct {
		err    error
		status int
		msg    string
	}{
		{customerrors.ErrEmptyTicker, http.StatusBadRequest, msgEmptyTicker},
		{fmt.Errorf("fetch history: %w", customerrors.ErrEmptyInput), http.StatusUnprocessableEntity, msgInvalidTicker},
		{fmt.Errorf("yahoo: %w", customerrors.ErrUnknownTicker), http.StatusUnprocessableEntity, msgInvalidTicker},
		{fmt.Errorf("summary: %w", customerrors.ErrAgentUnavailable), http.StatusBadGateway, msgAgentDown},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			s := NewServer(Params{ExampleTickers: []string{"MSFT"}}, &fakeAnalyzer{err: tt.err})
			w := postForm(s.Handler(), "ZZZZ")

			assert.Equal(t, tt.status, w.Code)
			body := w.Body.String()
			assert.Contains(t, body, tt.msg)
			assert.Contains(t, body, "<code>MSFT</code>")
			assert.NotContains(t, body, "AI Generated Analysis")
			assert.NotContains(t, body, "Data Visualization")
		})
	}
}

func TestAnalyzeJSON(t *testing.T) {
	s := NewServer(Params{}, &fakeAnalyzer{})
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/analyze?ticker=msft", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Ticker string            `json:"ticker"`
			Charts []json.RawMessage `json:"charts"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "MSFT", resp.Data.Ticker)
	assert.Len(t, resp.Data.Charts, 2)
}

func TestAnalyzeJSON_Error(t *testing.T) {
	s := NewServer(Params{}, &fakeAnalyzer{err: customerrors.ErrEmptyTicker})
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/analyze", nil))

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, msgEmptyTicker, resp.Message)
}

func TestRenderMarkdown_DropsRawHTML(t *testing.T) {
	out, err := RenderMarkdown("hello <script>alert(1)</script>")
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<script>")
}
