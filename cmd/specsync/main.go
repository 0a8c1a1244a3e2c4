package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"specsync/internal/config"
	"specsync/internal/excerpt"
	"specsync/internal/git"
	"specsync/internal/oracle"
	"specsync/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "specsync",
		Short: "Keep project documents in sync with meeting transcripts",
	}
	configPath string
	rootDir    string
	verbose    bool
	noStage    bool
	baseRef    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to the config file")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "root", "r", "", "Project root (overrides project.root)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noStage, "no-stage", false, "Do not git add changed documents")

	draftsCmd.Flags().StringVar(&baseRef, "base", "", "Detect changed transcripts with git diff against this ref")

	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(overwriteCmd)
	rootCmd.AddCommand(draftsCmd)
	rootCmd.AddCommand(ensureCmd)
	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(excerptCmd)
	rootCmd.AddCommand(digestCmd)
}

func loadConfig() *config.Config {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if rootDir != "" {
		cfg.Project.Root = rootDir
	}
	return cfg
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// initSyncer builds the syncer. When requireOracle is false a missing key
// or the "none" provider leaves the syncer without a generator.
func initSyncer(ctx context.Context, cfg *config.Config, requireOracle bool) *pipeline.Syncer {
	opts := []pipeline.Option{pipeline.WithLogger(newLogger())}

	gen, err := oracle.NewGenerator(ctx, oracle.Options{
		Provider:    cfg.Oracle.Provider,
		APIKey:      cfg.Oracle.APIKey,
		Model:       cfg.Oracle.Model,
		BaseURL:     cfg.Oracle.BaseURL,
		Temperature: cfg.Oracle.Temperature,
	})
	switch {
	case err == nil:
		opts = append(opts, pipeline.WithGenerator(gen))
	case !requireOracle && (errors.Is(err, oracle.ErrNoAPIKey) || errors.Is(err, oracle.ErrDisabled)):
		fmt.Println("⚠️  No oracle configured, writing placeholder drafts.")
	default:
		log.Fatalf("Failed to initialize oracle: %v", err)
	}

	s, err := pipeline.New(cfg, opts...)
	if err != nil {
		log.Fatalf("Failed to initialize syncer: %v", err)
	}
	return s
}

func finish(cfg *config.Config, s *pipeline.Syncer, report *pipeline.Report) {
	fmt.Println(renderReport(report))

	changed := report.Changed()
	if !cfg.Git.Stage || noStage || len(changed) == 0 {
		return
	}
	if err := git.Stage(s.Store().Root(), changed); err != nil {
		log.Fatalf("Failed to stage documents: %v", err)
	}
	fmt.Printf("📌 Staged %d documents.\n", len(changed))
}

var syncCmd = &cobra.Command{
	Use:   "sync [transcript]",
	Short: "Update catalog documents from a transcript (default: the latest one)",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cfg := loadConfig()
		s := initSyncer(ctx, cfg, true)

		var transcriptPath string
		if len(args) > 0 {
			transcriptPath = args[0]
		}

		fmt.Println("🔄 Syncing documents with the transcript...")
		report, err := s.Sync(ctx, transcriptPath)
		if err != nil {
			log.Fatalf("Sync failed: %v", err)
		}
		finish(cfg, s, report)
	},
}

var overwriteCmd = &cobra.Command{
	Use:   "overwrite [transcript]",
	Short: "Rewrite sections of the requirements document from a transcript",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cfg := loadConfig()
		s := initSyncer(ctx, cfg, true)

		var transcriptPath string
		if len(args) > 0 {
			transcriptPath = args[0]
		}

		fmt.Printf("✍️  Overwriting sections of %s...\n", cfg.Requirements.Path)
		report, err := s.Overwrite(ctx, transcriptPath)
		if err != nil {
			log.Fatalf("Overwrite failed: %v", err)
		}
		finish(cfg, s, report)
	},
}

var draftsCmd = &cobra.Command{
	Use:   "drafts [transcript...]",
	Short: "Append AI draft blocks for changed transcripts",
	Long: "Transcripts are taken from the arguments, then from the CHANGED_MINUTES " +
		"environment variable (one path per line), then from git diff against --base.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cfg := loadConfig()
		s := initSyncer(ctx, cfg, false)

		transcripts := args
		if len(transcripts) == 0 {
			transcripts = git.ParseList(os.Getenv("CHANGED_MINUTES"))
		}
		if len(transcripts) == 0 && baseRef != "" {
			changed, err := git.ChangedFiles(s.Store().Root(), baseRef, cfg.TranscriptDirs())
			if err != nil {
				log.Fatalf("Failed to detect changed transcripts: %v", err)
			}
			transcripts = changed
		}
		if len(transcripts) == 0 {
			fmt.Println("✅ No changed transcripts.")
			return
		}

		fmt.Printf("📝 Drafting from %d transcripts...\n", len(transcripts))
		report, err := s.Drafts(ctx, transcripts)
		if err != nil {
			log.Fatalf("Drafts failed: %v", err)
		}
		finish(cfg, s, report)
	},
}

var ensureCmd = &cobra.Command{
	Use:   "ensure",
	Short: "Create missing catalog documents and section markers",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cfg := loadConfig()
		s, err := pipeline.New(cfg, pipeline.WithLogger(newLogger()))
		if err != nil {
			log.Fatalf("Failed to initialize syncer: %v", err)
		}

		fmt.Println("🧱 Ensuring section markers...")
		report, err := s.EnsureAll(ctx)
		if err != nil {
			log.Fatalf("Ensure failed: %v", err)
		}
		finish(cfg, s, report)
	},
}

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Generate the initial effort estimate",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cfg := loadConfig()
		s := initSyncer(ctx, cfg, true)

		fmt.Println("🧮 Generating estimate...")
		report, err := s.Estimate(ctx)
		if err != nil {
			log.Fatalf("Estimate failed: %v", err)
		}
		finish(cfg, s, report)
	},
}

var excerptCmd = &cobra.Command{
	Use:   "excerpt <transcript>",
	Short: "Print the relevant excerpt of a transcript",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		ext, err := excerpt.New(cfg.Excerpt.Patterns, cfg.Excerpt.Budget)
		if err != nil {
			log.Fatalf("Invalid excerpt config: %v", err)
		}
		text := readTranscript(args[0])
		out := ext.Extract(text)
		fmt.Println(out)

		stats := excerpt.Measure(text, out)
		fmt.Fprintf(os.Stderr, "📏 %d -> %d chars (%d%%)\n", stats.SourceChars, stats.ExcerptChars, stats.Ratio())
	},
}

var digestCmd = &cobra.Command{
	Use:   "digest <transcript>",
	Short: "Print a keyword digest of a transcript",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Print(excerpt.Digest(readTranscript(args[0])))
	},
}

func readTranscript(p string) string {
	b, err := os.ReadFile(p)
	if err != nil {
		log.Fatalf("Failed to read transcript: %v", err)
	}
	return strings.ReplaceAll(string(b), "\r\n", "\n")
}
