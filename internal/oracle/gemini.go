package oracle

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const geminiDefaultModel = "gemini-2.0-flash"

// GeminiGenerator implements Generator using Gemini text generation.
type GeminiGenerator struct {
	client      *genai.Client
	model       string
	temperature float64
}

func NewGeminiGenerator(ctx context.Context, apiKey string, modelName string, temperature float64) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	if strings.TrimSpace(modelName) == "" {
		modelName = geminiDefaultModel
	}
	return &GeminiGenerator{
		client:      client,
		model:       modelName,
		temperature: temperature,
	}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(g.temperature)),
	}
	if maxTokens > 0 {
		cfg.MaxOutputTokens = int32(maxTokens)
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Text()), nil
}
