package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"specsync/internal/config"
	"specsync/internal/marker"
	"specsync/internal/oracle"
	"specsync/internal/prompt"
	"specsync/internal/transcript"
)

// Drafts appends one AI-DRAFT block per transcript to the target documents
// of the transcript's stage. Transcripts outside every stage directory are
// skipped. Only target documents that already exist are updated. Without a
// generator the stage's function list also receives a placeholder block.
func (s *Syncer) Drafts(ctx context.Context, transcripts []string) (*Report, error) {
	report, logger := s.newRun("drafts")

	for _, p := range transcripts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rel := s.store.Rel(p)
		stage, ok := s.stages.Classify(rel)
		if !ok {
			logger.Info("transcript outside watched directories", "transcript", rel)
			report.Skipped = append(report.Skipped, rel)
			continue
		}
		if err := s.draftStage(ctx, logger.With("transcript", rel, "stage", stage.Name), report, stage, rel); err != nil {
			return nil, err
		}
	}

	report.finish()
	logger.Info("drafts finished", "touched", len(report.Touched), "skipped", len(report.Skipped))
	return report, nil
}

func (s *Syncer) draftStage(ctx context.Context, logger *slog.Logger, report *Report, stage config.Stage, rel string) error {
	_, minutes, err := s.loadTranscript(rel)
	if err != nil {
		return err
	}
	if strings.TrimSpace(minutes) == "" {
		logger.Info("empty transcript")
		report.Skipped = append(report.Skipped, rel)
		return nil
	}

	dateHint := transcript.DateHint(rel)
	header := fmt.Sprintf("%s: %s", stage.Label, dateHint)

	var md string
	generated := s.gen != nil
	if generated {
		md, err = s.generateDraft(ctx, stage, minutes)
		if err != nil {
			return err
		}
	} else {
		md = prompt.PlaceholderDraft(stage.Name)
	}
	body := prompt.DraftHeading(stage.Title, dateHint) + "\n\n" + md

	targets := stage.DraftTargets
	if !generated && stage.FunctionList != "" {
		targets = append(targets[:len(targets):len(targets)], stage.FunctionList)
	}

	ws := newWorkspace(s.store)
	for _, target := range targets {
		if !s.store.Exists(target) {
			logger.Debug("draft target missing", "path", target)
			continue
		}
		doc, err := ws.get(target)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", target, err)
		}
		ws.set(target, marker.UpsertBlock(doc, header, body))
	}

	if generated && stage.FunctionList != "" && stage.FunctionListSection != "" && s.store.Exists(stage.FunctionList) {
		doc, err := ws.get(stage.FunctionList)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", stage.FunctionList, err)
		}
		ws.set(stage.FunctionList, marker.Replace(doc, stage.FunctionListSection, md))
	}

	written, err := ws.flush()
	report.Touched = append(report.Touched, written...)
	return err
}

func (s *Syncer) generateDraft(ctx context.Context, stage config.Stage, minutes string) (string, error) {
	var existing []prompt.Document
	paths := stage.DraftTargets
	if stage.FunctionList != "" {
		paths = append([]string{stage.FunctionList}, paths...)
	}
	for _, p := range paths {
		text, err := s.store.Read(p)
		if errors.Is(err, os.ErrNotExist) {
			text, err = "", nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", p, err)
		}
		existing = append(existing, prompt.Document{Path: p, Text: text})
	}

	out, err := s.gen.Generate(ctx, s.prompts.Draft(stage.Name, existing, minutes), DraftMaxTokens)
	if err != nil {
		return "", fmt.Errorf("oracle request failed: %w", err)
	}
	return oracle.CleanMarkdown(out), nil
}
