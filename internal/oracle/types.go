// Package oracle talks to the external text-generation service. The rest of
// specsync only sees the Generator contract: one prompt in, free-form text out.
package oracle

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Generator produces text for a single prompt. maxTokens bounds the response
// size; providers that do not support a bound ignore it.
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Func adapts a plain function to the Generator interface.
type Func func(ctx context.Context, prompt string, maxTokens int) (string, error)

func (f Func) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	return f(ctx, prompt, maxTokens)
}

var (
	// ErrNoAPIKey is returned when a network provider is configured without a key.
	ErrNoAPIKey = errors.New("oracle api key is required")
	// ErrDisabled is returned by NewGenerator for the "none" provider.
	ErrDisabled = errors.New("oracle disabled")
)

// StatusError reports a non-success response. Body is kept verbatim for
// diagnosis.
type StatusError struct {
	Provider string
	Status   int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s request failed (%d): %s", e.Provider, e.Status, strings.TrimSpace(e.Body))
}

// Options selects and configures a provider.
type Options struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
}

func NewGenerator(ctx context.Context, opts Options) (Generator, error) {
	provider := strings.ToLower(strings.TrimSpace(opts.Provider))
	if provider == "" {
		provider = "anthropic"
	}
	if provider == "none" {
		return nil, ErrDisabled
	}
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("%s: %w", provider, ErrNoAPIKey)
	}

	switch provider {
	case "anthropic":
		return NewAnthropicGenerator(opts.APIKey, opts.Model, opts.BaseURL, opts.Temperature), nil
	case "openai":
		return NewOpenAIGenerator(opts.APIKey, opts.Model, opts.BaseURL, opts.Temperature), nil
	case "gemini":
		return NewGeminiGenerator(ctx, opts.APIKey, opts.Model, opts.Temperature)
	default:
		return nil, fmt.Errorf("unsupported oracle provider: %s", opts.Provider)
	}
}
