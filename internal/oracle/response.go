package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Outcome classifies an oracle round trip.
type Outcome int

const (
	// OK means a JSON object was found and decoded.
	OK Outcome = iota
	// Malformed means the text held no decodable JSON object.
	Malformed
	// TransportFailure means the oracle call itself failed.
	TransportFailure
)

func (o Outcome) String() string {
	switch o {
	case OK:
		return "ok"
	case Malformed:
		return "malformed"
	case TransportFailure:
		return "transport_failure"
	default:
		return "unknown"
	}
}

// Update is one key/value pair of the oracle mapping.
type Update struct {
	Key   string
	Value string
}

// ParsedUpdate is the typed result of asking the oracle for a mapping.
// Updates keeps the order in which keys appeared in the response. Skipped
// lists keys whose value was not a non-empty string.
type ParsedUpdate struct {
	Outcome Outcome
	Updates []Update
	Skipped []string
	Detail  string
	Err     error
}

// Request calls gen once and parses its output. It never returns a partially
// applied state: transport errors surface as TransportFailure with Err set.
func Request(ctx context.Context, gen Generator, prompt string, maxTokens int) ParsedUpdate {
	raw, err := gen.Generate(ctx, prompt, maxTokens)
	if err != nil {
		return ParsedUpdate{Outcome: TransportFailure, Detail: err.Error(), Err: err}
	}
	return ParseUpdate(raw)
}

// ParseUpdate decodes the span between the first '{' and the last '}' of raw
// as a JSON object. Anything around it (prose, code fences) is ignored.
func ParseUpdate(raw string) ParsedUpdate {
	span, ok := ObjectSpan(raw)
	if !ok {
		return ParsedUpdate{Outcome: Malformed, Detail: "no JSON object in response"}
	}

	dec := json.NewDecoder(strings.NewReader(span))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return ParsedUpdate{Outcome: Malformed, Detail: "response is not a JSON object"}
	}

	var out ParsedUpdate
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return malformed(err)
		}
		key, ok := tok.(string)
		if !ok {
			return malformed(fmt.Errorf("unexpected key token %v", tok))
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return malformed(err)
		}
		var s string
		if err := json.Unmarshal(value, &s); err != nil || strings.TrimSpace(s) == "" {
			out.Skipped = append(out.Skipped, key)
			continue
		}
		out.Updates = append(out.Updates, Update{Key: key, Value: s})
	}
	if _, err := dec.Token(); err != nil {
		return malformed(err)
	}
	if dec.More() {
		return ParsedUpdate{Outcome: Malformed, Detail: "trailing data after JSON object"}
	}
	out.Outcome = OK
	return out
}

func malformed(err error) ParsedUpdate {
	return ParsedUpdate{Outcome: Malformed, Detail: err.Error()}
}

// ObjectSpan returns raw[first '{' : last '}'+1].
func ObjectSpan(raw string) (string, bool) {
	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start < 0 || end <= start {
		return "", false
	}
	return raw[start : end+1], true
}

// CleanMarkdown strips a surrounding ``` or ```markdown fence from generated text.
func CleanMarkdown(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```markdown") {
		text = strings.TrimPrefix(text, "```markdown")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```md") {
		text = strings.TrimPrefix(text, "```md")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	return strings.TrimSpace(text)
}
