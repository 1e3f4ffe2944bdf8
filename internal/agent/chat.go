package agent

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"DayTradeDesk/internal/customerrors"

	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

// GroqBaseURL is Groq's OpenAI-compatible endpoint.
const GroqBaseURL = "https://api.groq.com/openai/v1"

// DefaultModel coordinates the team on Groq.
const DefaultModel = "llama-3.3-70b-versatile"

// DefaultInstructions mirror the team configuration of the hosted pipeline.
var DefaultInstructions = []string{
	"Always include sources",
	"Use tables to display data",
}

// Options configures a ChatClient.
type Options struct {
	BaseURL      string
	APIKey       string
	Model        string
	Instructions []string
	MaxRetries   int
	Backoff      time.Duration // first retry delay, doubled per attempt
	Timeout      time.Duration
	Proxy        string
}

// ChatClient runs prompts through an OpenAI-compatible chat completion API.
type ChatClient struct {
	api          *openai.Client
	model        string
	instructions []string
	maxRetries   int
	backoff      time.Duration
}

// NewChatClient validates credentials and builds the client.
func NewChatClient(opts Options) (*ChatClient, error) {
	if opts.APIKey == "" {
		return nil, errors.New("agent api key is required")
	}
	cfg := openai.DefaultConfig(opts.APIKey)
	cfg.BaseURL = GroqBaseURL
	if opts.BaseURL != "" {
		cfg.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	}

	transport := &http.Transport{}
	if opts.Proxy != "" {
		if u, err := url.Parse(opts.Proxy); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout, Transport: transport}

	c := &ChatClient{
		api:          openai.NewClientWithConfig(cfg),
		model:        opts.Model,
		instructions: opts.Instructions,
		maxRetries:   opts.MaxRetries,
		backoff:      opts.Backoff,
	}
	if c.model == "" {
		c.model = DefaultModel
	}
	if len(c.instructions) == 0 {
		c.instructions = DefaultInstructions
	}
	if c.maxRetries < 0 {
		c.maxRetries = 0
	}
	if c.backoff <= 0 {
		c.backoff = time.Second
	}
	return c, nil
}

func (c *ChatClient) systemPrompt() string {
	var b strings.Builder
	b.WriteString("You lead a team of a web search agent and a financial data agent. Respond in Markdown.\n")
	for _, in := range c.instructions {
		b.WriteString("- ")
		b.WriteString(in)
		b.WriteString("\n")
	}
	return b.String()
}

// Run sends the prompt, retrying upstream failures with exponential backoff.
func (c *ChatClient) Run(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: c.systemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	var lastErr error
	for i := 0; i <= c.maxRetries; i++ {
		content, err := c.complete(ctx, req)
		if err == nil {
			return content, nil
		}
		lastErr = err
		if i == c.maxRetries || !retryable(err) {
			break
		}
		backoff := c.backoff * time.Duration(1<<uint(i))
		log.Warn().Err(err).
			Int("attempt", i+1).
			Int("max_attempts", c.maxRetries+1).
			Dur("backoff", backoff).
			Msg("agent run failed, retrying")
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("agent run: %v: %w", ctx.Err(), customerrors.ErrAgentUnavailable)
		case <-time.After(backoff):
		}
	}
	return "", fmt.Errorf("agent run: %v: %w", lastErr, customerrors.ErrAgentUnavailable)
}

func (c *ChatClient) complete(ctx context.Context, req openai.ChatCompletionRequest) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

// retryable reports whether another attempt could succeed.
// Client-side rejections other than rate limiting are final.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests || apiErr.HTTPStatusCode >= 500
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == http.StatusTooManyRequests || reqErr.HTTPStatusCode >= 500
	}
	return true
}
