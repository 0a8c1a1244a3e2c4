package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Project struct {
		Root string `yaml:"root"`
	} `yaml:"project"`
	Oracle       Oracle       `yaml:"oracle"`
	Transcripts  Transcripts  `yaml:"transcripts"`
	Excerpt      Excerpt      `yaml:"excerpt"`
	Catalog      []Document   `yaml:"catalog"`
	Stages       []Stage      `yaml:"stages"`
	Requirements Requirements `yaml:"requirements"`
	Estimate     Estimate     `yaml:"estimate"`
	Git          Git          `yaml:"git"`
}

type Oracle struct {
	Provider    string  `yaml:"provider"`
	Model       string  `yaml:"model"`
	APIKey      string  `yaml:"api_key"`
	BaseURL     string  `yaml:"base_url"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

type Transcripts struct {
	Extensions []string `yaml:"extensions"`
}

type Excerpt struct {
	Budget   int      `yaml:"budget"`
	Patterns []string `yaml:"patterns"`
}

// Document is one catalog entry: a path relative to the project root and the
// ordered section names it must contain. The first section is the primary one.
type Document struct {
	Path     string   `yaml:"path"`
	Sections []string `yaml:"sections"`
}

// Stage describes one watched transcript directory and the documents that
// receive draft blocks for transcripts found there.
type Stage struct {
	Name          string   `yaml:"name"`
	Label         string   `yaml:"label"`
	Title         string   `yaml:"title"`
	TranscriptDir string   `yaml:"transcript_dir"`
	DraftTargets  []string `yaml:"draft_targets"`
	// FunctionList, when set, also gets its table section replaced by the
	// generated draft.
	FunctionList        string `yaml:"function_list"`
	FunctionListSection string `yaml:"function_list_section"`
}

// Requirements is the single document rewritten section by section by the
// overwrite mode.
type Requirements struct {
	Path     string   `yaml:"path"`
	Sections []string `yaml:"sections"`
}

type Git struct {
	Stage bool `yaml:"stage"`
}

type Estimate struct {
	FunctionList string `yaml:"function_list"`
	Template     string `yaml:"template"`
	AIInput      string `yaml:"ai_input"`
	Output       string `yaml:"output"`
	Recent       int    `yaml:"recent"`
	MaxTokens    int    `yaml:"max_tokens"`
}

// TranscriptDirs returns the watched directories of all stages, in order.
func (c *Config) TranscriptDirs() []string {
	dirs := make([]string, 0, len(c.Stages))
	for _, s := range c.Stages {
		if s.TranscriptDir != "" {
			dirs = append(dirs, s.TranscriptDir)
		}
	}
	return dirs
}

// LoadConfig loads .env, then the YAML file at path on top of Default().
// A missing file yields the defaults; a malformed one is an error.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := Default()

	// 2. Load YAML config
	file, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := validateYAML(file); err != nil {
			return nil, fmt.Errorf("invalid config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, err
		}
	}

	// 3. Override with Environment Variables if present
	applyEnv(cfg)
	cfg.fillDefaults()
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if apiKey := os.Getenv("SPECSYNC_API_KEY"); apiKey != "" {
		cfg.Oracle.APIKey = apiKey
	} else if apiKey := os.Getenv("CLAUDE_API_KEY"); apiKey != "" && cfg.Oracle.APIKey == "" {
		cfg.Oracle.APIKey = apiKey
	}
	if provider := os.Getenv("SPECSYNC_PROVIDER"); provider != "" {
		cfg.Oracle.Provider = provider
	}
	if model := os.Getenv("SPECSYNC_MODEL"); model != "" {
		cfg.Oracle.Model = model
	}
}

func (c *Config) fillDefaults() {
	d := Default()
	if strings.TrimSpace(c.Project.Root) == "" {
		c.Project.Root = d.Project.Root
	}
	if c.Oracle.Provider == "" {
		c.Oracle.Provider = d.Oracle.Provider
	}
	if c.Oracle.MaxTokens <= 0 {
		c.Oracle.MaxTokens = d.Oracle.MaxTokens
	}
	if len(c.Transcripts.Extensions) == 0 {
		c.Transcripts.Extensions = d.Transcripts.Extensions
	}
	if c.Estimate.Recent <= 0 {
		c.Estimate.Recent = d.Estimate.Recent
	}
	if c.Estimate.MaxTokens <= 0 {
		c.Estimate.MaxTokens = d.Estimate.MaxTokens
	}
}

func validateYAML(raw []byte) error {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return err
	}
	if doc == nil {
		return nil
	}
	// Round-trip through JSON so the validator sees JSON-native types.
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	schema, err := compiledSchema()
	if err != nil {
		return err
	}
	return schema.Validate(v)
}
