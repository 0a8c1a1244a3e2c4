package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	anthropicDefaultModel = "claude-sonnet-4-20250514"
	anthropicVersion      = "2023-06-01"
)

type AnthropicGenerator struct {
	client      *http.Client
	apiKey      string
	model       string
	endpoint    string
	temperature float64
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func NewAnthropicGenerator(apiKey, model, baseURL string, temperature float64) *AnthropicGenerator {
	endpoint := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if endpoint == "" {
		endpoint = "https://api.anthropic.com/v1/messages"
	} else if !strings.HasSuffix(endpoint, "/messages") {
		if strings.HasSuffix(endpoint, "/v1") {
			endpoint += "/messages"
		} else {
			endpoint += "/v1/messages"
		}
	}
	if strings.TrimSpace(model) == "" {
		model = anthropicDefaultModel
	}
	return &AnthropicGenerator{
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
		apiKey:      apiKey,
		model:       model,
		endpoint:    endpoint,
		temperature: temperature,
	}
}

func (g *AnthropicGenerator) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if strings.TrimSpace(g.apiKey) == "" {
		return "", ErrNoAPIKey
	}
	if maxTokens <= 0 {
		maxTokens = 4000
	}

	body, err := json.Marshal(anthropicRequest{
		Model:       g.model,
		MaxTokens:   maxTokens,
		Temperature: g.temperature,
		Messages: []anthropicMessage{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-api-key", g.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("content-type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &StatusError{Provider: "anthropic", Status: resp.StatusCode, Body: string(raw)}
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, block := range parsed.Content {
		if block.Type == "" || block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return strings.TrimSpace(sb.String()), nil
}
