package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"DayTradeDesk/internal/collector"
	"DayTradeDesk/internal/customerrors"
	"DayTradeDesk/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAgent struct {
	prompts []string
	reply   string
	err     error
}

func (f *fakeAgent) Run(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

type recordingFetcher struct {
	collector.MockFetcher
	tickers []string
	periods []string
}

func (r *recordingFetcher) Fetch(ctx context.Context, ticker, period string) ([]model.OHLCV, error) {
	r.tickers = append(r.tickers, ticker)
	r.periods = append(r.periods, period)
	return r.MockFetcher.Fetch(ctx, ticker, period)
}

func newFetcher() *recordingFetcher {
	return &recordingFetcher{MockFetcher: collector.MockFetcher{
		Price: 100,
		End:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
	}}
}

func TestNormalizeTicker(t *testing.T) {
	assert.Equal(t, "MSFT", NormalizeTicker("  msft "))
	assert.Equal(t, "", NormalizeTicker("   "))
}

func TestAnalyze(t *testing.T) {
	fetcher := newFetcher()
	ag := &fakeAgent{reply: "Running: YFinanceTools\n\ntransfer_task_to_finance_ai_agent.\n| Firm | Rating |\n|---|---|\n| A | Buy |\n"}
	svc := NewService(fetcher, ag, nil, "", 0, 0)

	got, err := svc.Analyze(context.Background(), " tsla ")
	require.NoError(t, err)

	assert.Equal(t, []string{"TSLA"}, fetcher.tickers)
	assert.Equal(t, []string{collector.DefaultPeriod}, fetcher.periods)
	assert.Equal(t, []string{"Summarize the analyst's recommendation and share the latest news to TSLA"}, ag.prompts)

	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "TSLA", got.Ticker)
	assert.Equal(t, "6mo", got.Period)
	assert.Equal(t, "| Firm | Rating |\n|---|---|\n| A | Buy |", got.Summary)
	assert.Equal(t, 126, got.Snapshot.Sessions)

	require.Len(t, got.Charts, 4)
	assert.Equal(t, "TSLA Stock Prices", got.Charts[0].Heading())
	assert.Equal(t, "TSLA Candlestick Chart", got.Charts[1].Heading())
	assert.Equal(t, "TSLA Moving Averages", got.Charts[2].Heading())
	assert.Equal(t, "TSLA Trading Volume", got.Charts[3].Heading())

	overlay, ok := got.Charts[2].(*model.OverlayView)
	require.True(t, ok)
	assert.Len(t, overlay.Lines[1].Points, 126-19)
}

func TestAnalyze_EmptyTickerSkipsPipeline(t *testing.T) {
	fetcher := newFetcher()
	ag := &fakeAgent{}
	svc := NewService(fetcher, ag, nil, "", 0, 0)

	_, err := svc.Analyze(context.Background(), "  ")
	require.ErrorIs(t, err, customerrors.ErrEmptyTicker)
	assert.Empty(t, fetcher.tickers)
	assert.Empty(t, ag.prompts)
}

func TestAnalyze_Failures(t *testing.T) {
	tests := []struct {
		name     string
		fetchErr error
		bars     []model.OHLCV
		agentErr error
		smaWin   int
		wantErr  error
		askAgent bool
	}{
		{name: "unknown ticker", fetchErr: customerrors.ErrUnknownTicker, wantErr: customerrors.ErrUnknownTicker},
		{name: "no data", bars: []model.OHLCV{}, wantErr: customerrors.ErrEmptyInput},
		{name: "bad window", smaWin: -1, wantErr: customerrors.ErrInvalidParameter},
		{name: "agent down", agentErr: customerrors.ErrAgentUnavailable, wantErr: customerrors.ErrAgentUnavailable, askAgent: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := newFetcher()
			fetcher.Err = tt.fetchErr
			fetcher.Bars = tt.bars
			ag := &fakeAgent{reply: "ok", err: tt.agentErr}
			svc := NewService(fetcher, ag, nil, "1mo", tt.smaWin, 0)

			got, err := svc.Analyze(context.Background(), "msft")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.Nil(t, got)
			assert.Equal(t, tt.askAgent, len(ag.prompts) == 1)
		})
	}
}
