package correct

import (
	"context"
	"errors"
	"io"
	"sync"
)

// Config is the immutable configuration of a Pipeline: one explicit toggle
// per pass plus the injected capability handles for the passes that need
// one. The pipeline never probes for capabilities itself; availability is
// decided by the caller at construction time and exposed back through
// GrammarEnabled and SpellingEnabled.
type Config struct {
	Hyphenation bool
	Confusable  bool
	Context     bool
	Grammar     bool
	Spelling    bool

	// GrammarChecker backs the grammar pass. A nil handle disables the
	// pass for the lifetime of the pipeline even when Grammar is true.
	GrammarChecker GrammarChecker

	// Speller backs the spelling pass. A nil handle disables the pass
	// for the lifetime of the pipeline even when Spelling is true.
	Speller SpellChecker

	// ContextPhrases overrides the wrong->correct phrase table of the
	// context pass. Nil selects DefaultContextPhrases.
	ContextPhrases []Phrase

	// Confusables overrides the confusable-character mapping. Nil selects
	// DefaultConfusables.
	Confusables map[rune]rune
}

// DefaultConfig enables every pass with the built-in tables and no
// capability handles (grammar and spelling stay off until handles are
// injected).
func DefaultConfig() Config {
	return Config{
		Hyphenation: true,
		Confusable:  true,
		Context:     true,
		Grammar:     true,
		Spelling:    true,
	}
}

// Pipeline sequences the correction passes over one text. It owns the
// injected capability handles for its lifetime: construct once, Check any
// number of times, Close once.
type Pipeline struct {
	cfg         Config
	rules       []contextRule
	confusables map[rune]rune
	closeOnce   sync.Once
	closeErr    error
}

// New builds a pipeline from cfg. The configuration is copied; mutating
// cfg after New has no effect on the pipeline.
func New(cfg Config) *Pipeline {
	phrases := cfg.ContextPhrases
	if phrases == nil {
		phrases = DefaultContextPhrases
	}
	confusables := cfg.Confusables
	if confusables == nil {
		confusables = DefaultConfusables
	}
	return &Pipeline{
		cfg:         cfg,
		rules:       compilePhrases(phrases),
		confusables: confusables,
	}
}

// GrammarEnabled reports whether the grammar pass will actually run:
// toggled on and backed by a handle. Callers can use this to decide
// whether degraded behavior is acceptable.
func (p *Pipeline) GrammarEnabled() bool {
	return p.cfg.Grammar && p.cfg.GrammarChecker != nil
}

// SpellingEnabled reports whether the spelling pass will actually run.
func (p *Pipeline) SpellingEnabled() bool {
	return p.cfg.Spelling && p.cfg.Speller != nil
}

// Check runs the enabled passes over text in the fixed order and returns
// the corrected text together with the ordered issue audit trail.
//
// Each pass scans the text as corrected by the passes before it. Within a
// pass, issues are collected first and then applied one by one through the
// shared substitution step, each under its recorded policy. Grammar issues
// are additionally gated on confidence: a suggestion is applied only when
// its confidence strictly exceeds the auto-apply threshold.
//
// Failures inside the grammar or spelling capability never abort the run;
// they are logged inside the pass and contribute zero issues.
func (p *Pipeline) Check(ctx context.Context, text string) *Result {
	corrected := text
	issues := []Issue{}

	if p.cfg.Hyphenation {
		found := hyphenationIssues(corrected)
		issues = append(issues, found...)
		for _, is := range found {
			corrected = applyIssue(corrected, is)
		}
	}

	if p.cfg.Confusable {
		found := confusableIssues(corrected, p.confusables)
		issues = append(issues, found...)
		for _, is := range found {
			corrected = applyIssue(corrected, is)
		}
	}

	if p.cfg.Context {
		found := contextIssues(corrected, p.rules)
		issues = append(issues, found...)
		for _, is := range found {
			corrected = applyIssue(corrected, is)
		}
	}

	if p.GrammarEnabled() {
		found := grammarIssues(ctx, p.cfg.GrammarChecker, corrected)
		issues = append(issues, found...)
		for _, is := range found {
			if is.Confidence > autoApplyThreshold {
				corrected = applyIssue(corrected, is)
			}
		}
	}

	if p.SpellingEnabled() {
		found := spellingIssues(ctx, p.cfg.Speller, corrected)
		issues = append(issues, found...)
		for _, is := range found {
			corrected = applyIssue(corrected, is)
		}
	}

	counts := make(map[Kind]int)
	for _, is := range issues {
		counts[is.Kind]++
	}

	return &Result{
		OriginalText:  text,
		CorrectedText: corrected,
		Issues:        issues,
		IssueCount:    len(issues),
		CountsByKind:  counts,
	}
}

// Close releases the injected capability handles exactly once. Handles
// that do not implement io.Closer are ignored. Close is safe to call
// multiple times; later calls return the first result.
func (p *Pipeline) Close() error {
	p.closeOnce.Do(func() {
		var errs []error
		if c, ok := p.cfg.GrammarChecker.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
		if c, ok := p.cfg.Speller.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
		p.closeErr = errors.Join(errs...)
	})
	return p.closeErr
}
