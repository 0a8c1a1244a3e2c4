package pipeline

import (
	"context"
	"fmt"
	"strings"

	"specsync/internal/prompt"
	"specsync/internal/transcript"
)

// Estimate generates the initial effort estimate from the function list, the
// estimate template and the most recently modified transcripts. The result
// replaces both the AI input template and the initial estimate document.
func (s *Syncer) Estimate(ctx context.Context) (*Report, error) {
	if s.gen == nil {
		return nil, ErrNoGenerator
	}
	report, logger := s.newRun("estimate")
	est := s.cfg.Estimate

	for _, p := range []string{est.FunctionList, est.Template} {
		if !s.store.Exists(p) {
			return nil, fmt.Errorf("%s: %w", p, ErrMissingInput)
		}
	}
	functionList, err := s.store.Read(est.FunctionList)
	if err != nil {
		return nil, err
	}
	template, err := s.store.Read(est.Template)
	if err != nil {
		return nil, err
	}

	recent, err := transcript.Recent(s.store.Root(), s.cfg.TranscriptDirs(), s.cfg.Transcripts.Extensions, est.Recent)
	if err != nil {
		return nil, fmt.Errorf("failed to list transcripts: %w", err)
	}
	notes := make([]prompt.Document, 0, len(recent))
	for _, f := range recent {
		text, err := s.store.Read(f.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read transcript %s: %w", f.Path, err)
		}
		notes = append(notes, prompt.Document{Path: f.Name, Text: text})
	}
	logger.Info("estimate inputs loaded", "transcripts", len(notes))

	out, err := s.gen.Generate(ctx, s.prompts.Estimate(template, functionList, prompt.RecentNotes(notes)), est.MaxTokens)
	if err != nil {
		return nil, fmt.Errorf("oracle request failed: %w", err)
	}
	if strings.TrimSpace(out) == "" {
		report.Outcome = "empty"
		logger.Warn("oracle returned an empty estimate, nothing written")
		report.finish()
		return report, nil
	}
	report.Outcome = "ok"

	ws := newWorkspace(s.store)
	for _, p := range []string{est.AIInput, est.Output} {
		if p == "" {
			continue
		}
		if _, err := ws.get(p); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", p, err)
		}
		ws.set(p, strings.TrimSpace(out)+"\n")
	}
	written, err := ws.flush()
	report.Touched = append(report.Touched, written...)
	if err != nil {
		return nil, err
	}
	report.finish()
	return report, nil
}
