package correct

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
)

// SpellChecker is the external spell-checking capability: Unknown filters
// a word list down to the words absent from the dictionary, Candidates
// ranks correction candidates best-first for one word.
type SpellChecker interface {
	Unknown(ctx context.Context, words []string) (map[string]struct{}, error)
	Candidates(ctx context.Context, word string) ([]string, error)
}

// Words of the target alphabet; only these are sent to the dictionary.
// Text is first cut into word-boundary tokens (tokenPattern) and a token
// must then be Cyrillic end to end, so a confusable hybrid like
// "3ажигалка" contributes no word at all rather than a bogus "ажигалка"
// fragment.
var cyrillicWord = regexp.MustCompile("^[а-яёА-ЯЁ]+$")

// maxCandidates bounds how many alternative suggestions an issue retains
// for display.
const maxCandidates = 3

// spellingIssues extracts the target-alphabet words from the text, asks the
// capability which are unknown, and emits one issue per unknown word with
// the first ranked candidate as the suggestion. Words are processed in
// first-appearance order so runs are deterministic. Capability failures
// are logged and yield no issues.
func spellingIssues(ctx context.Context, speller SpellChecker, text string) []Issue {
	all := tokenPattern.FindAllString(text, -1)
	words := make([]string, 0, len(all))
	seen := make(map[string]bool, len(all))
	for _, w := range all {
		if cyrillicWord.MatchString(w) && !seen[w] {
			seen[w] = true
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return nil
	}

	unknown, err := speller.Unknown(ctx, words)
	if err != nil {
		slog.Warn("spell check failed", "error", err)
		return nil
	}

	var issues []Issue
	for _, word := range words {
		if _, ok := unknown[word]; !ok {
			continue
		}
		candidates, err := speller.Candidates(ctx, word)
		if err != nil {
			slog.Warn("spell candidates failed", "word", word, "error", err)
			continue
		}
		if len(candidates) == 0 {
			continue
		}
		kept := candidates
		if len(kept) > maxCandidates {
			kept = kept[:maxCandidates]
		}

		issues = append(issues, Issue{
			Kind:        KindSpelling,
			Original:    word,
			Suggestion:  candidates[0],
			Matched:     word,
			Description: fmt.Sprintf("spelling: %q -> %q", word, candidates[0]),
			Candidates:  kept,
			Policy:      ReplaceFirst,
		})
	}
	return issues
}
