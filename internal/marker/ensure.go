package marker

import (
	"fmt"
	"strings"
)

// Placeholder is the body written into a freshly created region.
func Placeholder(name string) string {
	return fmt.Sprintf("%sの内容を記載します。", NormalizeName(name))
}

// Skeleton renders a new document: a title heading followed by one heading
// and placeholder region per distinct section name.
func Skeleton(title string, names []string) string {
	var sb strings.Builder
	sb.WriteString("# " + strings.TrimSpace(title) + "\n")
	seen := make(map[string]bool)
	for _, name := range names {
		n := NormalizeName(name)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		sb.WriteString("\n")
		writeSection(&sb, n, Placeholder(n))
	}
	return sb.String()
}

// EnsureText appends a heading and placeholder region for every name whose
// start marker is absent from doc. Existing regions are never rewritten.
// The presence test looks at start markers only, so a second call with the
// same inputs is a no-op.
func EnsureText(doc string, names []string) (string, bool) {
	changed := false
	for _, name := range names {
		n := NormalizeName(name)
		if n == "" || HasStart(doc, Section, n) {
			continue
		}
		var sb strings.Builder
		if trimmed := strings.TrimRight(doc, " \t\r\n"); trimmed != "" {
			sb.WriteString(trimmed)
			sb.WriteString("\n\n")
		}
		writeSection(&sb, n, Placeholder(n))
		doc = sb.String()
		changed = true
	}
	return doc, changed
}
