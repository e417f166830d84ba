// Package correct cleans OCR output through a fixed sequence of correction
// passes.
//
// Five passes run in a fixed order, each consuming the text produced by the
// one before it:
//
//	hyphenation -> confusable characters -> context phrases -> grammar -> spelling
//
// The order matters: words split across lines must be rejoined before any
// word-level matching, and characters the OCR engine commonly confuses
// (digit 0 for the letter О and the like) must be repaired before the
// dictionary and grammar checks see them.
//
// The first three passes are rule tables built into the pipeline; grammar
// and spelling delegate to external capabilities injected through the
// Config. A nil handle disables its pass for the lifetime of the pipeline
// (the feature degrades rather than failing), and a capability call that
// errors at runtime is logged and contributes zero issues without aborting
// the remaining passes.
//
// Every correction is recorded as an Issue carrying the substitution it
// encodes and the replacement policy it was applied under, so the full
// ordered issue list doubles as an audit trail of how CorrectedText was
// derived from OriginalText.
package correct
