// Package marker parses and rewrites the HTML-comment delimited regions that
// specsync owns inside Markdown documents.
//
// Two marker families exist:
//
//	<!-- SECTION:<name> START --> ... <!-- SECTION:<name> END -->
//	<!-- AI-DRAFT: <header> START --> ... <!-- AI-DRAFT: <header> END -->
//
// Markers are matched with whitespace tolerance and always written in the
// canonical form above. Names are compared as literal strings after
// NormalizeName; they are never compiled into a pattern.
package marker

import (
	"regexp"
	"strings"
)

// Kind identifies a marker family.
type Kind int

const (
	Section Kind = iota
	Draft
)

func (k Kind) String() string {
	switch k {
	case Section:
		return "SECTION"
	case Draft:
		return "AI-DRAFT"
	default:
		return "UNKNOWN"
	}
}

// StartMarker returns the canonical start marker for name.
func StartMarker(k Kind, name string) string {
	return openTag(k, name) + " START -->"
}

// EndMarker returns the canonical end marker for name.
func EndMarker(k Kind, name string) string {
	return openTag(k, name) + " END -->"
}

func openTag(k Kind, name string) string {
	name = NormalizeName(name)
	if k == Draft {
		return "<!-- AI-DRAFT: " + name
	}
	return "<!-- SECTION:" + name
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeName is the single place where region names and draft headers are
// made safe: whitespace runs collapse to one space, the edges are trimmed and
// any comment terminator is defused so a name can never close its own marker.
func NormalizeName(name string) string {
	name = whitespaceRun.ReplaceAllString(name, " ")
	name = strings.ReplaceAll(name, "-->", "->")
	return strings.TrimSpace(name)
}

// tokenPattern matches one marker of either family on a single line.
// The name group is lazy so that a trailing START/END keyword is never
// swallowed into the name.
var tokenPattern = regexp.MustCompile(`<!--\s*(SECTION|AI-DRAFT)\s*:(.*?)(START|END)\s*-->`)

type edge int

const (
	edgeStart edge = iota
	edgeEnd
)

type token struct {
	kind  Kind
	name  string
	edge  edge
	begin int
	end   int
}

func scanTokens(text string) []token {
	locs := tokenPattern.FindAllStringSubmatchIndex(text, -1)
	tokens := make([]token, 0, len(locs))
	for _, loc := range locs {
		kind := Section
		if text[loc[2]:loc[3]] == "AI-DRAFT" {
			kind = Draft
		}
		e := edgeStart
		if text[loc[6]:loc[7]] == "END" {
			e = edgeEnd
		}
		tokens = append(tokens, token{
			kind:  kind,
			name:  NormalizeName(text[loc[4]:loc[5]]),
			edge:  e,
			begin: loc[0],
			end:   loc[1],
		})
	}
	return tokens
}
