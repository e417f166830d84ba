package correct

import (
	"fmt"
	"regexp"
	"unicode"
	"unicode/utf8"
)

// A line-wrap hyphenation artifact: a letter, a hyphen, a line break, and
// another letter, restricted to the Cyrillic alphabet the pipeline targets.
var hyphenPattern = regexp.MustCompile("([а-яёА-ЯЁ])-\n([а-яёА-ЯЁ])")

// hyphenationIssues finds words split across lines by the original
// document's wrapping and suggests the rejoined word.
//
// Each raw match covers only the two letters around the break; the issue
// widens it to the full word by extending left and right over contiguous
// letters, so the substitution rejoins the whole word rather than a
// two-letter fragment. The substitution applies to every occurrence of the
// widened original substring, which can over-apply when the identical
// hyphenated spelling appears verbatim elsewhere; accepted simplification.
func hyphenationIssues(text string) []Issue {
	var issues []Issue
	for _, m := range hyphenPattern.FindAllStringSubmatchIndex(text, -1) {
		start, end := m[0], m[1]

		// Widen left across contiguous letters.
		ws := start
		for ws > 0 {
			r, size := utf8.DecodeLastRuneInString(text[:ws])
			if !unicode.IsLetter(r) {
				break
			}
			ws -= size
		}

		// Widen right across contiguous letters.
		we := end
		for we < len(text) {
			r, size := utf8.DecodeRuneInString(text[we:])
			if !unicode.IsLetter(r) {
				break
			}
			we += size
		}

		collapsed := text[m[2]:m[3]] + text[m[4]:m[5]]
		original := text[ws:we]
		suggestion := text[ws:start] + collapsed + text[end:we]

		issues = append(issues, Issue{
			Kind:        KindHyphenation,
			Original:    original,
			Suggestion:  suggestion,
			Matched:     text[start:end],
			Description: fmt.Sprintf("word split across lines: %q -> %q", original, suggestion),
			Policy:      ReplaceAll,
		})
	}
	return issues
}
