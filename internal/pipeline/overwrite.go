package pipeline

import (
	"context"
	"fmt"

	"specsync/internal/excerpt"
	"specsync/internal/marker"
	"specsync/internal/oracle"
)

// Overwrite rewrites whole sections of the requirements document. Keys of
// the oracle mapping are section names; only configured sections and
// sections already marked in the document are accepted.
func (s *Syncer) Overwrite(ctx context.Context, transcriptPath string) (*Report, error) {
	if s.gen == nil {
		return nil, ErrNoGenerator
	}
	report, logger := s.newRun("overwrite")

	doc := s.cfg.Requirements.Path
	if !s.store.Exists(doc) {
		return nil, fmt.Errorf("requirements document %s: %w", doc, ErrMissingInput)
	}
	rel, text, err := s.loadTranscript(transcriptPath)
	if err != nil {
		return nil, err
	}
	report.Transcript = rel
	logger = logger.With("transcript", rel, "document", doc)

	existing, err := s.store.Read(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", doc, err)
	}
	known := knownSections(s.cfg.Requirements.Sections, marker.Names(existing, marker.Section))

	ex := s.extractor.Extract(text)
	report.Stats = excerpt.Measure(text, ex)

	parsed := oracle.Request(ctx, s.gen, s.prompts.Overwrite(existing, known, ex), s.cfg.Oracle.MaxTokens)
	report.Outcome = parsed.Outcome.String()
	switch parsed.Outcome {
	case oracle.TransportFailure:
		return nil, fmt.Errorf("oracle request failed: %w", parsed.Err)
	case oracle.Malformed:
		logger.Warn("oracle response held no JSON object, nothing applied", "detail", parsed.Detail)
		report.finish()
		return report, nil
	case oracle.OK:
	default:
		return nil, fmt.Errorf("unexpected oracle outcome %v", parsed.Outcome)
	}
	report.Skipped = append(report.Skipped, parsed.Skipped...)

	next := existing
	accepted := make(map[string]bool, len(known))
	for _, name := range known {
		accepted[name] = true
	}
	for _, u := range parsed.Updates {
		name := marker.NormalizeName(u.Key)
		if !accepted[name] {
			logger.Warn("skipping unknown section", "key", u.Key)
			report.Skipped = append(report.Skipped, u.Key)
			continue
		}
		next = marker.Replace(next, name, u.Value)
	}

	if next != existing {
		if err := s.store.Write(doc, next); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", doc, err)
		}
		report.Touched = append(report.Touched, doc)
	}
	report.finish()
	logger.Info("overwrite finished", "touched", len(report.Touched), "skipped", len(report.Skipped))
	return report, nil
}

func knownSections(configured, marked []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range [][]string{configured, marked} {
		for _, name := range list {
			n := marker.NormalizeName(name)
			if n != "" && !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	return out
}
