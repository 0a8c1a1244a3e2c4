// Package docstore reads and writes the Markdown document tree. Reads and
// writes are whole-file; the store never deletes a document.
package docstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"specsync/internal/marker"
)

type Store struct {
	root string
}

func New(root string) *Store {
	if strings.TrimSpace(root) == "" {
		root = "."
	}
	return &Store{root: root}
}

// Root returns the directory documents are resolved against.
func (s *Store) Root() string {
	return s.root
}

// Abs resolves a catalog-relative path.
func (s *Store) Abs(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(s.root, filepath.FromSlash(rel))
}

// Rel converts p to a slash-separated path relative to the root. Paths that
// are already relative are returned cleaned.
func (s *Store) Rel(p string) string {
	if !filepath.IsAbs(p) {
		return filepath.ToSlash(filepath.Clean(p))
	}
	root, err := filepath.Abs(s.root)
	if err != nil {
		return filepath.ToSlash(p)
	}
	rel, err := filepath.Rel(root, p)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(p)
	}
	return filepath.ToSlash(rel)
}

func (s *Store) Exists(rel string) bool {
	info, err := os.Stat(s.Abs(rel))
	return err == nil && !info.IsDir()
}

func (s *Store) Read(rel string) (string, error) {
	b, err := os.ReadFile(s.Abs(rel))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Write replaces the document, creating parent directories as needed.
func (s *Store) Write(rel, text string) error {
	p := s.Abs(rel)
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", rel, err)
	}
	return os.WriteFile(p, []byte(text), 0644)
}

// EnsureSections guarantees that the document has a region for every name.
// A missing document is created from a skeleton; an existing one gets the
// missing regions appended. It reports whether anything was written.
func (s *Store) EnsureSections(rel string, names []string) (bool, error) {
	text, err := s.Read(rel)
	if errors.Is(err, os.ErrNotExist) {
		title := strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel))
		if err := s.Write(rel, marker.Skeleton(title, names)); err != nil {
			return false, err
		}
		return true, nil
	}
	if err != nil {
		return false, err
	}

	next, changed := marker.EnsureText(text, names)
	if !changed {
		return false, nil
	}
	if err := s.Write(rel, next); err != nil {
		return false, err
	}
	return true, nil
}
