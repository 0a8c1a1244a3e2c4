package docstore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"specsync/internal/marker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureSections_CreatesMissingDocument(t *testing.T) {
	s := New(t.TempDir())
	rel := "00_商談段階/03_NA整理/NA一覧.md"

	changed, err := s.EnsureSections(rel, []string{"NA一覧", "NA整理"})
	require.NoError(t, err)
	assert.True(t, changed)

	text, err := s.Read(rel)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "# NA一覧\n"))
	assert.Equal(t, []string{"NA一覧", "NA整理"}, marker.Names(text, marker.Section))
}

func TestEnsureSections_Idempotent(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.Write("docs/x.md", "# X\n\nhand written\n"))

	changed, err := s.EnsureSections("docs/x.md", []string{"A", "B"})
	require.NoError(t, err)
	assert.True(t, changed)
	first, err := s.Read("docs/x.md")
	require.NoError(t, err)

	changed, err = s.EnsureSections("docs/x.md", []string{"A", "B"})
	require.NoError(t, err)
	assert.False(t, changed)
	second, err := s.Read("docs/x.md")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.True(t, strings.HasPrefix(second, "# X\n\nhand written\n"))
}

func TestEnsureThenReplace_EndToEnd(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.Write("X.md", "# X\n\nno markers yet\n"))

	_, err := s.EnsureSections("X.md", []string{"機能一覧"})
	require.NoError(t, err)
	text, err := s.Read("X.md")
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(text, marker.StartMarker(marker.Section, "機能一覧")))
	assert.Equal(t, 1, strings.Count(text, marker.EndMarker(marker.Section, "機能一覧")))
	r, ok := marker.Find(text, marker.Section, "機能一覧")
	require.True(t, ok)
	assert.Equal(t, marker.Placeholder("機能一覧"), r.Body(text))

	text = marker.Replace(text, "機能一覧", "| A | B |")
	require.NoError(t, s.Write("X.md", text))

	text, err = s.Read("X.md")
	require.NoError(t, err)
	r, ok = marker.Find(text, marker.Section, "機能一覧")
	require.True(t, ok)
	assert.Equal(t, "| A | B |", r.Body(text))
	assert.NotContains(t, text, marker.Placeholder("機能一覧"))
}

func TestEnsureSections_ReadError(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "dir.md"), 0755))

	_, err := New(root).EnsureSections("dir.md", []string{"A"})
	assert.Error(t, err)
}

func TestRel(t *testing.T) {
	root := t.TempDir()
	s := New(root)

	assert.Equal(t, "a/b.md", s.Rel(filepath.Join(root, "a", "b.md")))
	assert.Equal(t, "a/b.md", s.Rel("./a/b.md"))
	assert.False(t, s.Exists("a/b.md"))
}
