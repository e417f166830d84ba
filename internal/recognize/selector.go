package recognize

import (
	"context"
	"log/slog"
	"runtime"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/ironsheep/scantext/internal/preprocess"
)

// Result pairs the text extracted from one variant with the tag of the
// transform that produced it. Only the winning result survives a Select
// call; the rest are discarded.
type Result struct {
	Tag  string
	Text string
}

// Selector runs the extractor over a set of image variants and picks the
// best result by trimmed character count.
type Selector struct {
	extractor Extractor
	workers   int
	timeout   time.Duration
}

// Option configures a Selector.
type Option func(*Selector)

// WithWorkers bounds the number of concurrent extractions. The default is
// runtime.NumCPU(); a value of 1 gives fully sequential recognition.
func WithWorkers(n int) Option {
	return func(s *Selector) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithTimeout imposes a per-variant extraction deadline. A timed-out
// extraction is treated like any other capability failure: logged and
// counted as an empty result. Zero means no deadline.
func WithTimeout(d time.Duration) Option {
	return func(s *Selector) {
		s.timeout = d
	}
}

// NewSelector creates a Selector around the given extractor.
func NewSelector(extractor Extractor, opts ...Option) *Selector {
	s := &Selector{
		extractor: extractor,
		workers:   runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Select extracts text from every variant and returns the best result.
//
// Variants are independent, so extraction fans out over a bounded worker
// pool. The reduction is deterministic regardless of completion order:
// the variant whose trimmed text has the most characters wins, and ties
// go to the earliest variant in generation order.
//
// A failed extraction is logged and scored as empty text; it never aborts
// the batch. When every variant yields nothing, Select returns an empty
// Result tagged with the first variant (or an all-zero Result for an empty
// variant slice) — an empty page is not an error.
func (s *Selector) Select(ctx context.Context, variants []preprocess.Variant, language string) Result {
	if len(variants) == 0 {
		return Result{}
	}

	texts := make([]string, len(variants))
	sem := make(chan struct{}, s.workers)
	var wg sync.WaitGroup

	for i, v := range variants {
		wg.Add(1)
		go func(i int, v preprocess.Variant) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			callCtx := ctx
			if s.timeout > 0 {
				var cancel context.CancelFunc
				callCtx, cancel = context.WithTimeout(ctx, s.timeout)
				defer cancel()
			}

			text, err := s.extractor.Extract(callCtx, v.Image, language)
			if err != nil {
				slog.Warn("extraction failed for variant", "tag", v.Tag, "error", err)
				return
			}
			texts[i] = text
		}(i, v)
	}
	wg.Wait()

	// Deterministic reduction: most trimmed characters, earliest index wins
	// ties. Length is counted in runes, not bytes, so Cyrillic text is not
	// weighed double against Latin text of the same character count.
	best := 0
	bestLen := utf8.RuneCountInString(strings.TrimSpace(texts[0]))
	for i := 1; i < len(texts); i++ {
		if n := utf8.RuneCountInString(strings.TrimSpace(texts[i])); n > bestLen {
			best = i
			bestLen = n
		}
	}

	return Result{Tag: variants[best].Tag, Text: texts[best]}
}
