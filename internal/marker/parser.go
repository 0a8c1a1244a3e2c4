package marker

import (
	"sort"
	"strings"
)

// Region is one well-formed start/end marker pair found in a document.
// Offsets are byte offsets into the scanned text: [Start, End) spans both
// markers, [BodyStart, BodyEnd) is the text strictly between them.
type Region struct {
	Kind      Kind
	Name      string
	Start     int
	BodyStart int
	BodyEnd   int
	End       int
}

// Raw returns the region body exactly as it appears in text.
func (r Region) Raw(text string) string {
	return text[r.BodyStart:r.BodyEnd]
}

// Body returns the region body without surrounding whitespace.
func (r Region) Body(text string) string {
	return strings.TrimSpace(r.Raw(text))
}

type regionKey struct {
	kind Kind
	name string
}

// Scan walks the document once and returns every well-formed region in
// document order. An END marker closes the nearest preceding unclosed START
// of the same kind and name; a repeated START re-opens, so a stray start
// marker left behind by a manual edit never swallows a later region. Orphan
// markers produce no region.
func Scan(text string) []Region {
	open := make(map[regionKey]token)
	var regions []Region
	for _, tok := range scanTokens(text) {
		key := regionKey{kind: tok.kind, name: tok.name}
		if tok.edge == edgeStart {
			open[key] = tok
			continue
		}
		start, ok := open[key]
		if !ok {
			continue
		}
		delete(open, key)
		regions = append(regions, Region{
			Kind:      tok.kind,
			Name:      tok.name,
			Start:     start.begin,
			BodyStart: start.end,
			BodyEnd:   tok.begin,
			End:       tok.end,
		})
	}
	// Regions close in END order; report them in START order.
	sort.SliceStable(regions, func(i, j int) bool {
		return regions[i].Start < regions[j].Start
	})
	return regions
}

// Find returns the first region of kind k named name.
func Find(text string, k Kind, name string) (Region, bool) {
	name = NormalizeName(name)
	for _, r := range Scan(text) {
		if r.Kind == k && r.Name == name {
			return r, true
		}
	}
	return Region{}, false
}

// FindAll returns every region of kind k named name.
func FindAll(text string, k Kind, name string) []Region {
	name = NormalizeName(name)
	var out []Region
	for _, r := range Scan(text) {
		if r.Kind == k && r.Name == name {
			out = append(out, r)
		}
	}
	return out
}

// HasStart reports whether a start marker for name exists, paired or not.
func HasStart(text string, k Kind, name string) bool {
	name = NormalizeName(name)
	for _, tok := range scanTokens(text) {
		if tok.kind == k && tok.edge == edgeStart && tok.name == name {
			return true
		}
	}
	return false
}

// Names returns the distinct names of all regions of kind k, in order.
func Names(text string, k Kind) []string {
	seen := make(map[string]bool)
	var names []string
	for _, r := range Scan(text) {
		if r.Kind != k || seen[r.Name] {
			continue
		}
		seen[r.Name] = true
		names = append(names, r.Name)
	}
	return names
}
