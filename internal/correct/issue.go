package correct

import "strings"

// Kind identifies which correction pass produced an issue.
type Kind string

// Issue kinds, one per pass.
const (
	KindHyphenation Kind = "hyphenation"
	KindConfusable  Kind = "confusable_char"
	KindContext     Kind = "context"
	KindGrammar     Kind = "grammar"
	KindSpelling    Kind = "spelling"
)

// Policy selects how an issue's substitution is applied to the text.
//
// The table-driven passes replace every occurrence of the matched string;
// the grammar and spelling passes replace only the first remaining
// occurrence. Recording the policy on the issue keeps the asymmetry
// explicit and auditable instead of buried in per-pass code.
type Policy int

const (
	// ReplaceAll substitutes every occurrence of Original in the text.
	ReplaceAll Policy = iota

	// ReplaceFirst substitutes only the first remaining occurrence.
	ReplaceFirst
)

// Issue is one correction found by a pass. Issues are created by exactly
// one pass and never mutated afterwards; the ordered issue list is exposed
// to callers as an audit trail.
type Issue struct {
	// Kind names the pass that produced the issue.
	Kind Kind `json:"kind"`

	// Original is the text the substitution replaces.
	Original string `json:"original"`

	// Suggestion is the replacement text.
	Suggestion string `json:"suggestion"`

	// Matched is the exact span that triggered the issue. For passes that
	// widen the match to a full word, Matched keeps the raw trigger while
	// Original carries the widened text.
	Matched string `json:"matched"`

	// Description is a human-readable summary of the correction.
	Description string `json:"description"`

	// Confidence gates automatic application for the grammar pass.
	// Zero means the pass does not score its suggestions.
	Confidence float64 `json:"confidence,omitempty"`

	// Candidates holds alternative suggestions, best first, when the
	// producing capability offers them.
	Candidates []string `json:"candidates,omitempty"`

	// Policy is the replacement policy the issue was applied under.
	Policy Policy `json:"-"`
}

// Result is the outcome of one pipeline run. Built once and immutable.
type Result struct {
	// OriginalText is the input exactly as given.
	OriginalText string `json:"original_text"`

	// CorrectedText is the input after applying every retained issue in
	// pipeline order.
	CorrectedText string `json:"corrected_text"`

	// Issues is the ordered audit trail of corrections.
	Issues []Issue `json:"issues"`

	// IssueCount equals len(Issues).
	IssueCount int `json:"issue_count"`

	// CountsByKind maps each kind to the number of issues of that kind;
	// the counts always sum to IssueCount.
	CountsByKind map[Kind]int `json:"counts_by_kind"`
}

// applyIssue performs the substitution an issue encodes, honoring its
// policy. Replacement is by substring, not by original match position, so
// an identical substring elsewhere in the text is affected too; this
// mirrors the established output of the tool and is kept deliberately.
func applyIssue(text string, is Issue) string {
	if is.Policy == ReplaceFirst {
		return strings.Replace(text, is.Original, is.Suggestion, 1)
	}
	return strings.ReplaceAll(text, is.Original, is.Suggestion)
}
