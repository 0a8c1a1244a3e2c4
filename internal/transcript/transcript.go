// Package transcript enumerates meeting transcripts in the watched
// directories. Filenames are expected to sort chronologically
// (YYYY-MM-DD_*); this is a caller contract and is not validated.
package transcript

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ErrNoTranscripts is returned when no watched directory holds a transcript.
var ErrNoTranscripts = errors.New("no transcripts found")

// File is one transcript on disk. Path is relative to the scanned root.
type File struct {
	Path    string
	Name    string
	ModTime time.Time
}

// List returns every transcript with one of exts under dirs, sorted by
// filename and then by path. Missing directories are skipped.
func List(root string, dirs, exts []string) ([]File, error) {
	var files []File
	for _, dir := range dirs {
		entries, err := os.ReadDir(filepath.Join(root, filepath.FromSlash(dir)))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() || !hasExt(e.Name(), exts) {
				continue
			}
			info, err := e.Info()
			if err != nil {
				return nil, err
			}
			files = append(files, File{
				Path:    filepath.ToSlash(filepath.Join(dir, e.Name())),
				Name:    e.Name(),
				ModTime: info.ModTime(),
			})
		}
	}
	sort.Slice(files, func(i, j int) bool {
		if files[i].Name == files[j].Name {
			return files[i].Path < files[j].Path
		}
		return files[i].Name < files[j].Name
	})
	return files, nil
}

// Latest returns the transcript whose filename sorts last.
func Latest(root string, dirs, exts []string) (File, error) {
	files, err := List(root, dirs, exts)
	if err != nil {
		return File{}, err
	}
	if len(files) == 0 {
		return File{}, ErrNoTranscripts
	}
	return files[len(files)-1], nil
}

// Recent returns up to n transcripts, newest modification time first.
func Recent(root string, dirs, exts []string, n int) ([]File, error) {
	files, err := List(root, dirs, exts)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].ModTime.After(files[j].ModTime)
	})
	if n >= 0 && len(files) > n {
		files = files[:n]
	}
	return files, nil
}

// DateHint strips the directory and a .md/.txt extension from p, leaving the
// identifier used in draft headers.
func DateHint(p string) string {
	base := filepath.Base(filepath.FromSlash(p))
	ext := filepath.Ext(base)
	switch strings.ToLower(ext) {
	case ".md", ".txt":
		return strings.TrimSuffix(base, ext)
	}
	return base
}

func hasExt(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}
