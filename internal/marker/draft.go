package marker

import "strings"

// UpsertBlock removes every AI-DRAFT block carrying header and appends a
// fresh block holding body at the end of doc. After the call exactly one
// block exists for header. Blocks with other headers are left in place.
func UpsertBlock(doc, header, body string) string {
	doc = RemoveBlocks(doc, header)

	var sb strings.Builder
	if trimmed := strings.TrimRight(doc, " \t\r\n"); trimmed != "" {
		sb.WriteString(trimmed)
		sb.WriteString("\n")
	}
	sb.WriteString(StartMarker(Draft, header) + "\n")
	sb.WriteString(strings.TrimSpace(body) + "\n")
	sb.WriteString(EndMarker(Draft, header) + "\n")
	return sb.String()
}

// RemoveBlocks cuts every AI-DRAFT block for header, markers included, along
// with the newline that directly follows its end marker.
func RemoveBlocks(doc, header string) string {
	blocks := FindAll(doc, Draft, header)
	for i := len(blocks) - 1; i >= 0; i-- {
		b := blocks[i]
		end := b.End
		if end < len(doc) && doc[end] == '\n' {
			end++
		}
		doc = doc[:b.Start] + doc[end:]
	}
	return doc
}

// Blocks returns the headers of all AI-DRAFT blocks in doc, in order.
func Blocks(doc string) []string {
	return Names(doc, Draft)
}
