package agent

import (
	"context"
	"fmt"
)

// Client is the hosted multi-agent pipeline: prompt in, Markdown out.
type Client interface {
	Run(ctx context.Context, prompt string) (string, error)
}

// AnalystPrompt is the request sent for every analyzed ticker.
func AnalystPrompt(ticker string) string {
	return fmt.Sprintf("Summarize the analyst's recommendation and share the latest news to %s", ticker)
}
