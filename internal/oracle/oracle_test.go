package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUpdate_ExtractsObjectFromProse(t *testing.T) {
	raw := "Here is the update:\n```json\n{\n  \"docs/a.md\": \"| A | B |\",\n  \"スコープ\": \"範囲 {含む}\",\n  \"empty\": \"  \",\n  \"number\": 3\n}\n```\nLet me know."

	got := ParseUpdate(raw)
	require.Equal(t, OK, got.Outcome)
	assert.Equal(t, []Update{
		{Key: "docs/a.md", Value: "| A | B |"},
		{Key: "スコープ", Value: "範囲 {含む}"},
	}, got.Updates)
	assert.Equal(t, []string{"empty", "number"}, got.Skipped)
}

func TestParseUpdate_Malformed(t *testing.T) {
	for _, raw := range []string{
		"",
		"no json here",
		"} backwards {",
		"{ not: json }",
		"[\"array\"]",
		`{"a": "b"} and then {"c": "d"}`,
	} {
		got := ParseUpdate(raw)
		assert.Equal(t, Malformed, got.Outcome, raw)
		assert.Empty(t, got.Updates, raw)
		assert.NotEmpty(t, got.Detail, raw)
	}
}

func TestParseUpdate_EmptyObject(t *testing.T) {
	got := ParseUpdate("{}")
	assert.Equal(t, OK, got.Outcome)
	assert.Empty(t, got.Updates)
}

func TestRequest_TransportFailure(t *testing.T) {
	boom := errors.New("connection reset")
	gen := Func(func(ctx context.Context, prompt string, maxTokens int) (string, error) {
		return "", boom
	})

	got := Request(context.Background(), gen, "p", 10)
	assert.Equal(t, TransportFailure, got.Outcome)
	assert.ErrorIs(t, got.Err, boom)
}

func TestRequest_PassesPromptAndBound(t *testing.T) {
	var seenPrompt string
	var seenMax int
	gen := Func(func(ctx context.Context, prompt string, maxTokens int) (string, error) {
		seenPrompt, seenMax = prompt, maxTokens
		return `{"k": "v"}`, nil
	})

	got := Request(context.Background(), gen, "hello", 1200)
	assert.Equal(t, OK, got.Outcome)
	assert.Equal(t, "hello", seenPrompt)
	assert.Equal(t, 1200, seenMax)
}

func TestAnthropicGenerator(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var req anthropicRequest
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, 1200, req.MaxTokens)
		assert.Equal(t, anthropicDefaultModel, req.Model)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "prompt text", req.Messages[0].Content)

		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":" {\"a\": \"b\"} "}]}`))
	}))
	defer srv.Close()

	g := NewAnthropicGenerator("test-key", "", srv.URL, 0.2)
	out, err := g.Generate(context.Background(), "prompt text", 1200)
	require.NoError(t, err)
	assert.Equal(t, `{"a": "b"}`, out)
}

func TestAnthropicGenerator_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"type":"rate_limit_error"}}`))
	}))
	defer srv.Close()

	_, err := NewAnthropicGenerator("k", "m", srv.URL+"/v1", 0).Generate(context.Background(), "p", 10)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusTooManyRequests, se.Status)
	assert.Contains(t, se.Error(), "rate_limit_error")
}

func TestOpenAIGenerator(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hi"}}]}`))
	}))
	defer srv.Close()

	out, err := NewOpenAIGenerator("sk-test", "", srv.URL, 0.1).Generate(context.Background(), "p", 100)
	require.NoError(t, err)
	assert.Equal(t, "hi", out)
}

func TestNewGenerator(t *testing.T) {
	ctx := context.Background()

	_, err := NewGenerator(ctx, Options{Provider: "none"})
	assert.ErrorIs(t, err, ErrDisabled)

	_, err = NewGenerator(ctx, Options{Provider: "anthropic"})
	assert.ErrorIs(t, err, ErrNoAPIKey)

	_, err = NewGenerator(ctx, Options{Provider: "smoke-signals", APIKey: "k"})
	assert.Error(t, err)

	g, err := NewGenerator(ctx, Options{APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &AnthropicGenerator{}, g)

	g, err = NewGenerator(ctx, Options{Provider: "OpenAI", APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &OpenAIGenerator{}, g)
}

func TestCleanMarkdown(t *testing.T) {
	assert.Equal(t, "# T", CleanMarkdown("```markdown\n# T\n```"))
	assert.Equal(t, "# T", CleanMarkdown("```\n# T\n```\n"))
	assert.Equal(t, "plain", CleanMarkdown("  plain  "))
}
