// Package config holds the runtime configuration of the scantext tool:
// languages, supported input formats, pass toggles, and the correction
// tables. Defaults are compiled in; a TOML file can override any field.
package config

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/ironsheep/scantext/internal/correct"
)

// Config is the full runtime configuration.
type Config struct {
	// Languages are Tesseract language codes, combined into the
	// extraction hint in order (e.g. ["rus","eng"] -> "rus+eng").
	Languages []string `toml:"languages"`

	// OutputDir receives result.txt when saving is requested.
	OutputDir string `toml:"output_dir"`

	// SupportedFormats are the file extensions accepted in folder mode.
	SupportedFormats []string `toml:"supported_formats"`

	// Workers bounds concurrent per-variant OCR calls. Zero picks the
	// CPU count; 1 runs fully sequentially.
	Workers int `toml:"workers"`

	// OCRTimeoutSeconds bounds each per-variant extraction call. Zero
	// disables the deadline.
	OCRTimeoutSeconds int `toml:"ocr_timeout_seconds"`

	// LanguageToolURL points at a LanguageTool server for the grammar
	// and spelling passes. Empty leaves both passes degraded.
	LanguageToolURL string `toml:"languagetool_url"`

	// LanguageToolLanguage is the language code sent to the server.
	LanguageToolLanguage string `toml:"languagetool_language"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// Passes toggles the correction passes individually.
	Passes Passes `toml:"passes"`

	// ContextPhrases overrides the wrong->correct phrase table. Empty
	// keeps the built-in table.
	ContextPhrases map[string]string `toml:"context_phrases"`
}

// Passes is one explicit toggle per correction pass.
type Passes struct {
	Hyphenation bool `toml:"hyphenation"`
	Confusable  bool `toml:"confusable"`
	Context     bool `toml:"context"`
	Grammar     bool `toml:"grammar"`
	Spelling    bool `toml:"spelling"`
}

// Default returns the compiled-in configuration.
func Default() Config {
	return Config{
		Languages:            []string{"rus", "eng"},
		OutputDir:            "output",
		SupportedFormats:     []string{".jpg", ".jpeg", ".png", ".bmp", ".gif"},
		OCRTimeoutSeconds:    30,
		LanguageToolLanguage: "ru",
		LogLevel:             "info",
		Passes: Passes{
			Hyphenation: true,
			Confusable:  true,
			Context:     true,
			Grammar:     true,
			Spelling:    true,
		},
	}
}

// Load reads a TOML file over the defaults: fields absent from the file
// keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return cfg, nil
}

// LanguageHint joins the configured languages into a Tesseract hint.
func (c Config) LanguageHint() string {
	return strings.Join(c.Languages, "+")
}

// OCRTimeout returns the per-extraction deadline as a duration.
func (c Config) OCRTimeout() time.Duration {
	return time.Duration(c.OCRTimeoutSeconds) * time.Second
}

// IsSupported reports whether the extension (with leading dot, any case)
// is an accepted input format.
func (c Config) IsSupported(ext string) bool {
	ext = strings.ToLower(ext)
	for _, s := range c.SupportedFormats {
		if ext == s {
			return true
		}
	}
	return false
}

// Phrases converts the configured phrase table into the pipeline's
// representation. TOML tables are unordered, so entries are sorted by the
// wrong phrase to keep runs deterministic. Nil when no override is set.
func (c Config) Phrases() []correct.Phrase {
	if len(c.ContextPhrases) == 0 {
		return nil
	}
	wrongs := make([]string, 0, len(c.ContextPhrases))
	for wrong := range c.ContextPhrases {
		wrongs = append(wrongs, wrong)
	}
	sort.Strings(wrongs)

	phrases := make([]correct.Phrase, 0, len(wrongs))
	for _, wrong := range wrongs {
		phrases = append(phrases, correct.Phrase{Wrong: wrong, Right: c.ContextPhrases[wrong]})
	}
	return phrases
}
