package correct

import (
	"fmt"
	"regexp"
)

// Phrase is one wrong-phrase -> correct-phrase pair for the context pass.
type Phrase struct {
	Wrong string
	Right string
}

// DefaultContextPhrases lists short phrases the OCR engine reliably
// garbles in Russian text, with their intended forms.
var DefaultContextPhrases = []Phrase{
	{"в нес", "в нее"},
	{"на нес", "на нее"},
	{"к неи", "к ней"},
	{"из нес", "из нее"},
	{"для нес", "для нее"},
	{"ве", "её"},
	{"кнам", "к нам"},
}

// contextRule is a phrase compiled for case-insensitive scanning.
type contextRule struct {
	pattern *regexp.Regexp
	right   string
}

func compilePhrases(phrases []Phrase) []contextRule {
	rules := make([]contextRule, 0, len(phrases))
	for _, ph := range phrases {
		rules = append(rules, contextRule{
			pattern: regexp.MustCompile(`(?i)` + regexp.QuoteMeta(ph.Wrong)),
			right:   ph.Right,
		})
	}
	return rules
}

// contextIssues scans for each configured wrong phrase, case-insensitively,
// emitting one issue per occurrence found. The suggestion is always the
// configured correct phrase, and the substitution applies to every
// occurrence of the exact matched text.
func contextIssues(text string, rules []contextRule) []Issue {
	var issues []Issue
	for _, rule := range rules {
		for _, match := range rule.pattern.FindAllString(text, -1) {
			issues = append(issues, Issue{
				Kind:        KindContext,
				Original:    match,
				Suggestion:  rule.right,
				Matched:     match,
				Description: fmt.Sprintf("context error: %q -> %q", match, rule.right),
				Policy:      ReplaceAll,
			})
		}
	}
	return issues
}
