// Command scantext turns scanned document images into corrected plain
// text: it tries several preprocessing variants per image, keeps the OCR
// result that recognized the most text, and runs the correction pipeline
// over it.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ironsheep/scantext/internal/config"
	"github.com/ironsheep/scantext/internal/correct"
	"github.com/ironsheep/scantext/internal/correct/langtool"
	"github.com/ironsheep/scantext/internal/recognize"
	"github.com/ironsheep/scantext/internal/scan"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var (
	imagePath  string
	folderPath string
	configPath string
	noCheck    bool
	saveOutput bool
	verbose    bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "scantext",
		Short:         "Recognize and correct text from scanned document images",
		Version:       fmt.Sprintf("%s (built %s, commit %s)", Version, BuildTime, GitCommit),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	cmd.Flags().StringVarP(&imagePath, "image", "i", "", "path to a single image")
	cmd.Flags().StringVarP(&folderPath, "folder", "d", "", "folder with images to process")
	cmd.Flags().StringVar(&configPath, "config", "", "path to a TOML config file")
	cmd.Flags().BoolVar(&noCheck, "no-check", false, "skip the correction passes")
	cmd.Flags().BoolVarP(&saveOutput, "output", "o", false, "save recognized text to <output_dir>/result.txt")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

func run(cmd *cobra.Command, _ []string) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
	}
	initLogging(cfg.LogLevel, verbose)

	if imagePath == "" && folderPath == "" {
		return cmd.Help()
	}

	extractor, err := recognize.NewTesseract()
	if err != nil {
		return fmt.Errorf("OCR engine unavailable: %w", err)
	}

	opts := []recognize.Option{recognize.WithTimeout(cfg.OCRTimeout())}
	if cfg.Workers > 0 {
		opts = append(opts, recognize.WithWorkers(cfg.Workers))
	}
	selector := recognize.NewSelector(extractor, opts...)

	pipeline := buildPipeline(cfg)
	defer pipeline.Close()

	processor := scan.NewProcessor(selector, pipeline, cfg.LanguageHint())
	defer processor.FlushCache()
	ctx := context.Background()

	if imagePath != "" {
		return processOne(ctx, processor, cfg, imagePath)
	}
	return processFolder(ctx, processor, cfg, folderPath)
}

// buildPipeline assembles the correction pipeline from the config,
// injecting LanguageTool-backed capabilities when a server is configured
// and reachable. An unreachable server degrades the grammar and spelling
// passes instead of failing the run.
func buildPipeline(cfg config.Config) *correct.Pipeline {
	ccfg := correct.Config{
		Hyphenation:    cfg.Passes.Hyphenation,
		Confusable:     cfg.Passes.Confusable,
		Context:        cfg.Passes.Context,
		Grammar:        cfg.Passes.Grammar,
		Spelling:       cfg.Passes.Spelling,
		ContextPhrases: cfg.Phrases(),
	}

	if cfg.LanguageToolURL != "" && (cfg.Passes.Grammar || cfg.Passes.Spelling) {
		client, err := langtool.New(cfg.LanguageToolURL, cfg.LanguageToolLanguage)
		if err != nil {
			slog.Warn("languagetool unavailable, grammar and spelling passes disabled", "error", err)
		} else {
			ccfg.GrammarChecker = client
			ccfg.Speller = langtool.NewSpeller(client)
		}
	}

	p := correct.New(ccfg)
	slog.Debug("correction pipeline ready",
		"grammar", p.GrammarEnabled(), "spelling", p.SpellingEnabled())
	return p
}

func processOne(ctx context.Context, processor *scan.Processor, cfg config.Config, path string) error {
	res := processor.Process(ctx, path, scan.Options{CheckErrors: !noCheck})
	printResult(path, res)
	if !res.Success {
		return fmt.Errorf("failed to process %s: %s", path, res.Error)
	}
	if saveOutput {
		return saveResult(cfg, res)
	}
	return nil
}

// processFolder handles every supported image in the folder. A failure on
// one image is reported and does not stop the batch.
func processFolder(ctx context.Context, processor *scan.Processor, cfg config.Config, folder string) error {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return fmt.Errorf("failed to read folder: %w", err)
	}

	processed := 0
	for _, entry := range entries {
		if entry.IsDir() || !cfg.IsSupported(filepath.Ext(entry.Name())) {
			continue
		}
		processed++
		path := filepath.Join(folder, entry.Name())
		color.Cyan("\nProcessing: %s", entry.Name())

		res := processor.Process(ctx, path, scan.Options{CheckErrors: !noCheck})
		printResult(path, res)
	}
	if processed == 0 {
		return fmt.Errorf("no supported images in %s", folder)
	}
	return nil
}

func printResult(path string, res *scan.Result) {
	if !res.Success {
		color.Red("Error: %s", res.Error)
		return
	}

	divider := strings.Repeat("=", 70)
	fmt.Println()
	fmt.Println(divider)
	color.Green("  RECOGNIZED TEXT (%s variant):", res.Variant)
	fmt.Println(divider)
	if res.FullText == "" {
		fmt.Println("(empty)")
	} else {
		fmt.Println(res.FullText)
	}
	fmt.Println()
	color.Green("  STATISTICS:")
	fmt.Printf("  Characters: %d\n", res.Statistics.Characters)
	fmt.Printf("  Words: %d\n", res.Statistics.Words)

	if res.Issues != nil || res.IssueCount > 0 {
		fmt.Println()
		color.Yellow("  ISSUES FOUND: %d", res.IssueCount)
		for i, is := range res.Issues {
			fmt.Printf("  %d. [%s] %q -> %q\n", i+1, is.Kind, is.Matched, is.Suggestion)
		}
	}
	fmt.Println(divider)
	fmt.Println()
}

func saveResult(cfg config.Config, res *scan.Result) error {
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	out := filepath.Join(cfg.OutputDir, "result.txt")
	if err := os.WriteFile(out, []byte(res.FullText), 0o644); err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}
	color.Green("Result saved: %s", out)
	return nil
}

// initLogging configures the process-wide logger. The config file's
// log_level sets the base level; --verbose forces debug regardless.
func initLogging(level string, verbose bool) {
	lvl := parseLogLevel(level)
	if verbose {
		lvl = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}

// parseLogLevel maps a log_level string to a slog level. Unknown or empty
// values fall back to info.
func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
