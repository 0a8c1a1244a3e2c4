package marker

import "strings"

// Replace returns doc with the body of section name replaced by the trimmed
// body. When the start/end pair is missing or broken, a new heading and
// region holding the body are appended instead, so Replace always succeeds
// and a damaged document heals on the next patch.
//
// Replacing a region with the body it already holds returns doc unchanged
// apart from the newline framing of the body.
func Replace(doc, name, body string) string {
	body = strings.TrimSpace(body)
	if r, ok := Find(doc, Section, name); ok {
		return doc[:r.BodyStart] + "\n" + body + "\n" + doc[r.BodyEnd:]
	}
	return appendRegion(doc, name, body)
}

func appendRegion(doc, name, body string) string {
	var sb strings.Builder
	if trimmed := strings.TrimRight(doc, " \t\r\n"); trimmed != "" {
		sb.WriteString(trimmed)
		sb.WriteString("\n\n")
	}
	writeSection(&sb, name, body)
	return sb.String()
}

func writeSection(sb *strings.Builder, name, body string) {
	sb.WriteString("## " + NormalizeName(name) + "\n")
	sb.WriteString(StartMarker(Section, name) + "\n")
	sb.WriteString(body + "\n")
	sb.WriteString(EndMarker(Section, name) + "\n")
}
