// Package catalog holds the static map from document paths to the section
// names those documents must contain, and resolves oracle mapping keys
// against it.
package catalog

import (
	"path"
	"path/filepath"
	"strings"

	"specsync/internal/config"
	"specsync/internal/marker"
)

// Entry is one managed document.
type Entry struct {
	Path     string
	Sections []string
}

// Has reports whether the entry declares section name.
func (e Entry) Has(name string) bool {
	name = marker.NormalizeName(name)
	for _, s := range e.Sections {
		if marker.NormalizeName(s) == name {
			return true
		}
	}
	return false
}

// Catalog is an ordered set of entries keyed by slash-separated clean path.
type Catalog struct {
	entries []Entry
	index   map[string]int
}

// Target is a resolved mapping key.
type Target struct {
	Path    string
	Section string
}

// New builds a catalog. Later duplicates of a path merge their sections into
// the first entry.
func New(docs []config.Document) *Catalog {
	c := &Catalog{index: make(map[string]int)}
	for _, d := range docs {
		p := CleanPath(d.Path)
		if p == "" {
			continue
		}
		i, ok := c.index[p]
		if !ok {
			c.index[p] = len(c.entries)
			c.entries = append(c.entries, Entry{Path: p})
			i = len(c.entries) - 1
		}
		for _, s := range d.Sections {
			n := marker.NormalizeName(s)
			if n != "" && !c.entries[i].Has(n) {
				c.entries[i].Sections = append(c.entries[i].Sections, n)
			}
		}
	}
	return c
}

// CleanPath normalizes a document path to the catalog key form.
func CleanPath(p string) string {
	p = strings.TrimSpace(filepath.ToSlash(p))
	if p == "" {
		return ""
	}
	p = path.Clean(p)
	return strings.TrimPrefix(p, "./")
}

// Entries returns the entries in declaration order.
func (c *Catalog) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// Entry looks up a document by path.
func (c *Catalog) Entry(p string) (Entry, bool) {
	i, ok := c.index[CleanPath(p)]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Sections returns the section names required for path.
func (c *Catalog) Sections(p string) []string {
	e, ok := c.Entry(p)
	if !ok {
		return nil
	}
	return append([]string(nil), e.Sections...)
}

// Lookup resolves an oracle mapping key to the sections it replaces.
// Accepted forms:
//
//	<path>            every declared section of that document
//	<path>#<section>  a declared section of that document
//	<section>         a section name declared by exactly one document
func (c *Catalog) Lookup(key string) ([]Target, bool) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, false
	}
	if e, ok := c.Entry(key); ok && len(e.Sections) > 0 {
		targets := make([]Target, 0, len(e.Sections))
		for _, s := range e.Sections {
			targets = append(targets, Target{Path: e.Path, Section: s})
		}
		return targets, true
	}
	if i := strings.LastIndex(key, "#"); i > 0 {
		if e, ok := c.Entry(key[:i]); ok && e.Has(key[i+1:]) {
			return []Target{{Path: e.Path, Section: marker.NormalizeName(key[i+1:])}}, true
		}
	}
	var found []Target
	for _, e := range c.entries {
		if e.Has(key) {
			found = append(found, Target{Path: e.Path, Section: marker.NormalizeName(key)})
		}
	}
	if len(found) == 1 {
		return found, true
	}
	return nil, false
}
