// Package pipeline drives a sync run: transcript in, patched documents out.
package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"

	"specsync/internal/catalog"
	"specsync/internal/config"
	"specsync/internal/docstore"
	"specsync/internal/excerpt"
	"specsync/internal/oracle"
	"specsync/internal/prompt"
	"specsync/internal/transcript"
)

// DraftMaxTokens bounds the response for one draft generation.
const DraftMaxTokens = 1200

var (
	// ErrMissingInput is returned when a required document or template is absent.
	ErrMissingInput = errors.New("required input is missing")
	// ErrNoTranscripts is returned when no transcript was given and none was found.
	ErrNoTranscripts = transcript.ErrNoTranscripts
	// ErrNoGenerator is returned by modes that cannot run without an oracle.
	ErrNoGenerator = errors.New("no generator configured")
)

// Syncer runs the sync modes against one document tree.
type Syncer struct {
	cfg       *config.Config
	store     *docstore.Store
	catalog   *catalog.Catalog
	stages    *catalog.Stages
	extractor *excerpt.Extractor
	prompts   *prompt.Builder
	gen       oracle.Generator
	logger    *slog.Logger
}

type Option func(*Syncer)

// WithGenerator sets the oracle. Without one, Drafts writes placeholder
// checklists and the other modes fail with ErrNoGenerator.
func WithGenerator(g oracle.Generator) Option {
	return func(s *Syncer) { s.gen = g }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Syncer) {
		if l != nil {
			s.logger = l
		}
	}
}

func New(cfg *config.Config, opts ...Option) (*Syncer, error) {
	ext, err := excerpt.New(cfg.Excerpt.Patterns, cfg.Excerpt.Budget)
	if err != nil {
		return nil, err
	}
	s := &Syncer{
		cfg:       cfg,
		store:     docstore.New(cfg.Project.Root),
		catalog:   catalog.New(cfg.Catalog),
		stages:    catalog.NewStages(cfg.Stages),
		extractor: ext,
		prompts:   &prompt.Builder{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Store exposes the document tree the syncer writes to.
func (s *Syncer) Store() *docstore.Store {
	return s.store
}

// Report summarizes one run.
type Report struct {
	RunID      string
	Mode       string
	Transcript string
	Outcome    string
	// Ensured lists documents created or extended by the marker manager.
	Ensured []string
	// Touched lists documents whose text changed through patching or drafts.
	Touched []string
	Skipped []string
	Stats   excerpt.Stats
}

func (s *Syncer) newRun(mode string) (*Report, *slog.Logger) {
	r := &Report{RunID: uuid.NewString(), Mode: mode}
	return r, s.logger.With("run", r.RunID, "mode", mode)
}

// Changed returns every path the run wrote, sorted and unique.
func (r *Report) Changed() []string {
	return uniqueSorted(append(append([]string(nil), r.Ensured...), r.Touched...))
}

func (r *Report) finish() {
	r.Ensured = uniqueSorted(r.Ensured)
	r.Touched = uniqueSorted(r.Touched)
}

func uniqueSorted(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, p := range in {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

// loadTranscript reads p, or the latest transcript when p is empty.
func (s *Syncer) loadTranscript(p string) (string, string, error) {
	if strings.TrimSpace(p) == "" {
		f, err := transcript.Latest(s.store.Root(), s.cfg.TranscriptDirs(), s.cfg.Transcripts.Extensions)
		if err != nil {
			return "", "", err
		}
		p = f.Path
	}
	rel := s.store.Rel(p)
	text, err := s.store.Read(rel)
	if errors.Is(err, os.ErrNotExist) {
		return "", "", fmt.Errorf("transcript %s: %w", rel, ErrMissingInput)
	}
	if err != nil {
		return "", "", fmt.Errorf("failed to read transcript %s: %w", rel, err)
	}
	return rel, text, nil
}

// workspace buffers document texts so several updates to one document end
// in a single write.
type workspace struct {
	store    *docstore.Store
	original map[string]string
	current  map[string]string
	order    []string
}

func newWorkspace(store *docstore.Store) *workspace {
	return &workspace{
		store:    store,
		original: make(map[string]string),
		current:  make(map[string]string),
	}
}

func (w *workspace) get(rel string) (string, error) {
	if text, ok := w.current[rel]; ok {
		return text, nil
	}
	text, err := w.store.Read(rel)
	if errors.Is(err, os.ErrNotExist) {
		text, err = "", nil
	}
	if err != nil {
		return "", err
	}
	w.original[rel] = text
	w.current[rel] = text
	w.order = append(w.order, rel)
	return text, nil
}

func (w *workspace) set(rel, text string) {
	w.current[rel] = text
}

// flush writes the documents whose text changed and returns their paths.
func (w *workspace) flush() ([]string, error) {
	var written []string
	for _, rel := range w.order {
		if w.current[rel] == w.original[rel] {
			continue
		}
		if err := w.store.Write(rel, w.current[rel]); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", rel, err)
		}
		written = append(written, rel)
	}
	return written, nil
}
