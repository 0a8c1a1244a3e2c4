package catalog

import (
	"strings"

	"specsync/internal/config"
)

// Stages classifies transcripts by the watched directory they live under.
type Stages struct {
	stages []config.Stage
}

func NewStages(stages []config.Stage) *Stages {
	return &Stages{stages: stages}
}

// Classify returns the stage whose transcript directory contains p.
func (s *Stages) Classify(p string) (config.Stage, bool) {
	p = CleanPath(p)
	for _, st := range s.stages {
		dir := CleanPath(st.TranscriptDir)
		if dir == "" {
			continue
		}
		if strings.HasPrefix(p, dir+"/") {
			return st, true
		}
	}
	return config.Stage{}, false
}

// Dirs returns the watched directories in declaration order.
func (s *Stages) Dirs() []string {
	var dirs []string
	for _, st := range s.stages {
		if st.TranscriptDir != "" {
			dirs = append(dirs, st.TranscriptDir)
		}
	}
	return dirs
}
