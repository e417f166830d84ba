package correct

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultConfusables maps ASCII/Latin characters the OCR engine commonly
// substitutes for visually similar Cyrillic ones to their likely intended
// character.
var DefaultConfusables = map[rune]rune{
	'0': 'О',
	'1': 'І',
	'3': 'З',
	'l': 'і',
}

// Word-boundary tokens: letters, digits, underscore, any script.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// confusableIssues finds tokens containing mapped confusable characters
// and suggests the token with every mapped character substituted.
//
// One issue is emitted per distinct affected token; the substitution
// applies to every occurrence of that exact token string in the text.
// Tokens with no mapped characters produce no issues.
func confusableIssues(text string, mapping map[rune]rune) []Issue {
	var issues []Issue
	seen := make(map[string]bool)

	for _, token := range tokenPattern.FindAllString(text, -1) {
		if seen[token] {
			continue
		}
		seen[token] = true

		corrected := strings.Map(func(r rune) rune {
			if to, ok := mapping[r]; ok {
				return to
			}
			return r
		}, token)

		if corrected == token {
			continue
		}
		issues = append(issues, Issue{
			Kind:        KindConfusable,
			Original:    token,
			Suggestion:  corrected,
			Matched:     token,
			Description: fmt.Sprintf("confusable OCR characters: %q -> %q", token, corrected),
			Policy:      ReplaceAll,
		})
	}
	return issues
}
