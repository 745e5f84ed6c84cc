// Package gemini wraps the Google Gemini API behind the small surface the
// content generator needs: one synchronous JSON generation call with
// retry/backoff discipline.
package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// Config holds tuning for the generation backend.
type Config struct {
	APIKey      string
	Model       string
	Temperature float32
	Timeout     time.Duration // per-attempt timeout
	MaxRetries  int           // retries after the first attempt
	RetryBase   time.Duration
	RetryMax    time.Duration
}

// DefaultConfig returns backend defaults matching the CLI defaults.
func DefaultConfig() *Config {
	return &Config{
		Model:       "gemini-2.0-flash",
		Temperature: 0.7,
		Timeout:     20 * time.Second,
		MaxRetries:  4,
		RetryBase:   2 * time.Second,
		RetryMax:    30 * time.Second,
	}
}

// Client is a Gemini-backed generation client.
type Client struct {
	client  *genai.Client
	cfg     *Config
	retrier *retrier
	logger  *zap.Logger
}

// NewClient creates a Gemini client. The API key is required; callers that
// have no key should not construct a client at all and rely on the fallback
// template instead.
func NewClient(ctx context.Context, cfg *Config, logger *zap.Logger) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		client:  client,
		cfg:     cfg,
		retrier: newRetrier(cfg.MaxRetries, cfg.RetryBase, cfg.RetryMax, logger),
		logger:  logger,
	}, nil
}

// GenerateJSON asks the model for a JSON response to prompt and returns the
// raw response text. Transient API failures are retried with exponential
// backoff and jitter; other API errors are returned immediately.
func (c *Client) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.cfg.Model)
	model.SetTemperature(c.cfg.Temperature)
	model.ResponseMIMEType = "application/json"

	resp, err := c.retrier.do(ctx, func(ctx context.Context) (*genai.GenerateContentResponse, error) {
		callCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
		return model.GenerateContent(callCtx, genai.Text(prompt))
	})
	if err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}

	return extractText(resp)
}

// Close releases resources held by the client.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractText pulls the text payload out of a Gemini response.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
