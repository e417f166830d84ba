package correct

import (
	"context"
	"fmt"
	"log/slog"
)

// Match is one span flagged by the external grammar-checking capability.
// Offset and Length are rune offsets into the exact text that was checked.
type Match struct {
	Category     string
	Offset       int
	Length       int
	Replacements []string
}

// GrammarChecker is the external grammar-checking capability. Check may be
// slow (it is typically a service call); implementations should honor ctx.
type GrammarChecker interface {
	Check(ctx context.Context, text string) ([]Match, error)
}

// grammarConfidence is the fixed heuristic score attached to every grammar
// suggestion. A suggestion is applied automatically only when its
// confidence strictly exceeds autoApplyThreshold; with both constants at
// 0.8 grammar issues are recorded for the caller but never auto-applied,
// matching the tool's established behavior.
const (
	grammarConfidence  = 0.8
	autoApplyThreshold = 0.8
)

// Grammar match categories that are kept; everything else (style,
// punctuation, casing) is discarded.
var grammarCategories = map[string]bool{
	"TYPOS":   true,
	"GRAMMAR": true,
}

// grammarIssues asks the capability to check the text and converts the
// kept matches into issues. A capability failure is logged and yields no
// issues; it never aborts the remaining passes.
func grammarIssues(ctx context.Context, checker GrammarChecker, text string) []Issue {
	matches, err := checker.Check(ctx, text)
	if err != nil {
		slog.Warn("grammar check failed", "error", err)
		return nil
	}

	runes := []rune(text)
	var issues []Issue
	for _, m := range matches {
		if !grammarCategories[m.Category] || len(m.Replacements) == 0 {
			continue
		}
		if m.Offset < 0 || m.Length < 0 || m.Offset+m.Length > len(runes) {
			continue
		}
		original := string(runes[m.Offset : m.Offset+m.Length])
		suggestion := m.Replacements[0]

		issues = append(issues, Issue{
			Kind:        KindGrammar,
			Original:    original,
			Suggestion:  suggestion,
			Matched:     original,
			Description: fmt.Sprintf("grammar: %q -> %q", original, suggestion),
			Confidence:  grammarConfidence,
			Policy:      ReplaceFirst,
		})
	}
	return issues
}
