// Package excerpt filters meeting transcripts down to the paragraphs that are
// likely to matter for project documentation.
package excerpt

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultBudget is the maximum excerpt size in characters (runes).
	DefaultBudget = 3000
	// TruncationMarker is appended when the excerpt exceeds the budget.
	TruncationMarker = "\n\n[以下、関連部分のみ抽出]"
)

// DefaultPatterns are the topic indicators a paragraph must hit to be kept.
// They are plain substring/regex tests, so a keyword embedded in an unrelated
// word still counts.
var DefaultPatterns = []string{
	`機能[：:について]`,
	`要件[：:について]`,
	`スケジュール[：:について]`,
	`納期[：:について]`,
	`予算[：:について]`,
	`仕様[：:について]`,
	`追加[：:について]`,
	`変更[：:について]`,
	`削除[：:について]`,
	`課題[：:について]`,
	`決定[：:について]`,
	`確認[：:について]`,
	`承認[：:について]`,
	`システム[：:について]`,
	`開発[：:について]`,
	`実装[：:について]`,
	`ヶ月|月末|月初`,
	`工数|時間|人日`,
	`円|万円|費用`,
}

var paragraphBreak = regexp.MustCompile(`\n\s*\n`)

// Extractor keeps the transcript paragraphs that match any of its patterns.
type Extractor struct {
	patterns []*regexp.Regexp
	budget   int
}

// New compiles patterns in order. An empty list means DefaultPatterns and a
// non-positive budget means DefaultBudget.
func New(patterns []string, budget int) (*Extractor, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	if budget <= 0 {
		budget = DefaultBudget
	}
	e := &Extractor{budget: budget}
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid excerpt pattern %q: %w", p, err)
		}
		e.patterns = append(e.patterns, re)
	}
	return e, nil
}

var defaultExtractor *Extractor

func init() {
	e, err := New(nil, DefaultBudget)
	if err != nil {
		panic(err)
	}
	defaultExtractor = e
}

// Extract runs the default extractor.
func Extract(transcript string) string {
	return defaultExtractor.Extract(transcript)
}

// Budget returns the character budget.
func (e *Extractor) Budget() int {
	return e.budget
}

// Extract returns the relevant paragraphs of transcript joined by blank
// lines, in their original order. Over-budget output is cut to the budget and
// suffixed with TruncationMarker. When nothing matches, the first budget
// characters of the raw transcript are returned instead.
func (e *Extractor) Extract(transcript string) string {
	transcript = strings.ReplaceAll(transcript, "\r\n", "\n")

	var relevant []string
	for _, para := range Paragraphs(transcript) {
		if e.Relevant(para) {
			relevant = append(relevant, para)
		}
	}

	joined := strings.Join(relevant, "\n\n")
	if joined == "" {
		return truncateRunes(transcript, e.budget)
	}
	if utf8.RuneCountInString(joined) > e.budget {
		return truncateRunes(joined, e.budget) + TruncationMarker
	}
	return joined
}

// Relevant reports whether para matches at least one pattern.
func (e *Extractor) Relevant(para string) bool {
	for _, re := range e.patterns {
		if re.MatchString(para) {
			return true
		}
	}
	return false
}

// Paragraphs splits text on blank lines. Whitespace-only paragraphs are dropped.
func Paragraphs(text string) []string {
	var out []string
	for _, p := range paragraphBreak.Split(text, -1) {
		if strings.TrimSpace(p) == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Stats describes how much of a transcript survived extraction.
type Stats struct {
	SourceChars  int
	ExcerptChars int
}

// Ratio returns the kept share of the source as a percentage.
func (s Stats) Ratio() int {
	if s.SourceChars == 0 {
		return 0
	}
	return s.ExcerptChars * 100 / s.SourceChars
}

// Measure reports rune counts for a transcript and its excerpt.
func Measure(source, excerpt string) Stats {
	return Stats{
		SourceChars:  utf8.RuneCountInString(source),
		ExcerptChars: utf8.RuneCountInString(excerpt),
	}
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
