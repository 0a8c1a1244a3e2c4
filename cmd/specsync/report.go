package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"specsync/internal/pipeline"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))
	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA"))
	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

func renderReport(r *pipeline.Report) string {
	lines := []string{
		titleStyle.Render(fmt.Sprintf("specsync %s", r.Mode)),
		mutedStyle.Render("run " + r.RunID),
	}
	if r.Transcript != "" {
		lines = append(lines, fmt.Sprintf("transcript: %s", r.Transcript))
	}
	if r.Stats.SourceChars > 0 {
		lines = append(lines, fmt.Sprintf("excerpt: %d -> %d chars (%d%%)",
			r.Stats.SourceChars, r.Stats.ExcerptChars, r.Stats.Ratio()))
	}
	if r.Outcome != "" {
		lines = append(lines, fmt.Sprintf("oracle: %s", r.Outcome))
	}

	lines = append(lines, section("ensured", r.Ensured, mutedStyle)...)
	lines = append(lines, section("updated", r.Touched, lipgloss.NewStyle())...)
	lines = append(lines, section("skipped", r.Skipped, warnStyle)...)
	if len(r.Ensured) == 0 && len(r.Touched) == 0 {
		lines = append(lines, mutedStyle.Render("no documents changed"))
	}

	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func section(label string, items []string, style lipgloss.Style) []string {
	if len(items) == 0 {
		return nil
	}
	out := []string{fmt.Sprintf("%s (%d):", label, len(items))}
	for _, it := range items {
		out = append(out, style.Render("  "+strings.TrimSpace(it)))
	}
	return out
}
