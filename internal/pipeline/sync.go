package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"specsync/internal/excerpt"
	"specsync/internal/marker"
	"specsync/internal/oracle"
)

// EnsureAll runs the marker manager over every catalog document.
func (s *Syncer) EnsureAll(ctx context.Context) (*Report, error) {
	report, logger := s.newRun("ensure")
	if err := s.ensureStage(ctx, logger, report); err != nil {
		return nil, err
	}
	report.finish()
	return report, nil
}

// Sync applies one oracle mapping to the catalog documents. An empty
// transcriptPath selects the latest transcript.
func (s *Syncer) Sync(ctx context.Context, transcriptPath string) (*Report, error) {
	if s.gen == nil {
		return nil, ErrNoGenerator
	}
	report, logger := s.newRun("sync")

	rel, text, err := s.loadTranscript(transcriptPath)
	if err != nil {
		return nil, err
	}
	report.Transcript = rel
	logger = logger.With("transcript", rel)
	logger.Info("sync started")

	if err := s.ensureStage(ctx, logger, report); err != nil {
		return nil, err
	}

	ex := s.extractor.Extract(text)
	report.Stats = excerpt.Measure(text, ex)
	logger.Info("excerpt extracted", "source_chars", report.Stats.SourceChars, "excerpt_chars", report.Stats.ExcerptChars)

	parsed := oracle.Request(ctx, s.gen, s.prompts.Catalog(s.catalog.Entries(), ex), s.cfg.Oracle.MaxTokens)
	if err := s.applyCatalog(logger, report, parsed); err != nil {
		return nil, err
	}
	report.finish()
	logger.Info("sync finished", "touched", len(report.Touched), "skipped", len(report.Skipped))
	return report, nil
}

func (s *Syncer) ensureStage(ctx context.Context, logger *slog.Logger, report *Report) error {
	for _, e := range s.catalog.Entries() {
		if err := ctx.Err(); err != nil {
			return err
		}
		changed, err := s.store.EnsureSections(e.Path, e.Sections)
		if err != nil {
			return fmt.Errorf("failed to ensure sections of %s: %w", e.Path, err)
		}
		if changed {
			logger.Debug("sections ensured", "path", e.Path)
			report.Ensured = append(report.Ensured, e.Path)
		}
	}
	return nil
}

func (s *Syncer) applyCatalog(logger *slog.Logger, report *Report, parsed oracle.ParsedUpdate) error {
	report.Outcome = parsed.Outcome.String()
	switch parsed.Outcome {
	case oracle.TransportFailure:
		return fmt.Errorf("oracle request failed: %w", parsed.Err)
	case oracle.Malformed:
		logger.Warn("oracle response held no JSON object, nothing applied", "detail", parsed.Detail)
		return nil
	case oracle.OK:
	default:
		return fmt.Errorf("unexpected oracle outcome %v", parsed.Outcome)
	}

	for _, key := range parsed.Skipped {
		logger.Warn("skipping empty or non-string value", "key", key)
		report.Skipped = append(report.Skipped, key)
	}

	ws := newWorkspace(s.store)
	for _, u := range parsed.Updates {
		targets, ok := s.catalog.Lookup(u.Key)
		if !ok {
			logger.Warn("skipping unknown mapping key", "key", u.Key)
			report.Skipped = append(report.Skipped, u.Key)
			continue
		}
		for _, target := range targets {
			doc, err := ws.get(target.Path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", target.Path, err)
			}
			ws.set(target.Path, marker.Replace(doc, target.Section, u.Value))
		}
	}

	written, err := ws.flush()
	report.Touched = append(report.Touched, written...)
	return err
}
