package excerpt

import (
	"regexp"
	"strings"
)

type digestCategory struct {
	title   string
	pattern *regexp.Regexp
	limit   int
}

var digestCategories = []digestCategory{
	{title: "決定事項", pattern: regexp.MustCompile(`決定|決まり|確定|承認`), limit: 5},
	{title: "要件・機能変更", pattern: regexp.MustCompile(`機能|要件|仕様|追加|変更|削除`), limit: 5},
	{title: "スケジュール関連", pattern: regexp.MustCompile(`月|週|日程|納期|期限|スケジュール`), limit: 3},
	// Tasks are collected but not rendered.
	{title: "", pattern: regexp.MustCompile(`TODO|タスク|やること|実施|対応`), limit: 0},
	{title: "課題・懸念事項", pattern: regexp.MustCompile(`課題|問題|懸念|リスク|困って`), limit: 3},
}

const digestLineLimit = 100

// Digest groups transcript lines by topic and renders a short Markdown
// summary. A line may land in several categories.
func Digest(transcript string) string {
	buckets := make([][]string, len(digestCategories))
	for _, line := range strings.Split(strings.ReplaceAll(transcript, "\r\n", "\n"), "\n") {
		for i, c := range digestCategories {
			if c.pattern.MatchString(line) {
				buckets[i] = append(buckets[i], truncateRunes(line, digestLineLimit))
			}
		}
	}

	var sb strings.Builder
	sb.WriteString("# 議事録要約\n\n")
	for i, c := range digestCategories {
		if c.title == "" || len(buckets[i]) == 0 {
			continue
		}
		sb.WriteString("## " + c.title + "\n")
		lines := buckets[i]
		if len(lines) > c.limit {
			lines = lines[:c.limit]
		}
		for _, l := range lines {
			sb.WriteString("- " + l + "\n")
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n") + "\n"
}
