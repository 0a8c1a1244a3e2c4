package transcript

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var exts = []string{".md", ".txt"}

func writeAt(t *testing.T, root, rel string, mod time.Time) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte(rel), 0644))
	require.NoError(t, os.Chtimes(p, mod, mod))
}

func TestLatest_SortsByFilename(t *testing.T) {
	root := t.TempDir()
	now := time.Now()
	writeAt(t, root, "b/2024-05-01_kickoff.md", now)
	writeAt(t, root, "a/2024-06-10_review.txt", now.Add(-time.Hour))
	writeAt(t, root, "a/2024-07-01_image.png", now)
	writeAt(t, root, "b/2024-01-01_old.md", now.Add(time.Hour))

	f, err := Latest(root, []string{"a", "b", "missing"}, exts)
	require.NoError(t, err)
	assert.Equal(t, "a/2024-06-10_review.txt", f.Path)
	assert.Equal(t, "2024-06-10_review.txt", f.Name)
}

func TestLatest_NoTranscripts(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a"), 0755))

	_, err := Latest(root, []string{"a"}, exts)
	assert.ErrorIs(t, err, ErrNoTranscripts)
}

func TestRecent_ByModTime(t *testing.T) {
	root := t.TempDir()
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	writeAt(t, root, "a/1.md", base)
	writeAt(t, root, "a/2.md", base.Add(3*time.Hour))
	writeAt(t, root, "b/3.md", base.Add(time.Hour))
	writeAt(t, root, "b/4.md", base.Add(2*time.Hour))

	files, err := Recent(root, []string{"a", "b"}, exts, 3)
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, "a/2.md", files[0].Path)
	assert.Equal(t, "b/4.md", files[1].Path)
	assert.Equal(t, "b/3.md", files[2].Path)
}

func TestDateHint(t *testing.T) {
	assert.Equal(t, "2024-05-01_kickoff", DateHint("00_商談段階/04_議事録/2024-05-01_kickoff.md"))
	assert.Equal(t, "2024-05-01", DateHint("2024-05-01.TXT"))
	assert.Equal(t, "notes.docx", DateHint("x/notes.docx"))
}
