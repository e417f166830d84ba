// Package scan composes preprocessing, recognition, and correction into
// the end-to-end "image in, corrected text and issue report out"
// operation.
//
// Each Process call produces an independent result: a batch caller aborts
// simply by not issuing further calls, and a failure on one image never
// affects the next. Decoded images are held in a cache for the life of the
// batch, so repeated Process calls on the same path hit the disk once;
// callers flush the cache when the batch ends. The result shape is stable
// whether or not correction ran.
package scan

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/ironsheep/scantext/internal/correct"
	"github.com/ironsheep/scantext/internal/imaging"
	"github.com/ironsheep/scantext/internal/preprocess"
	"github.com/ironsheep/scantext/internal/recognize"
)

// Statistics summarizes the recognized text.
type Statistics struct {
	// Characters is the rune count of the trimmed recognized text.
	Characters int `json:"characters"`

	// Words is the number of whitespace-delimited tokens.
	Words int `json:"words"`
}

// Options controls one Process call.
type Options struct {
	// CheckErrors runs the correction pipeline over the recognized text.
	CheckErrors bool
}

// Result is the outcome of processing one image. Error is set and Success
// false when the image could not be loaded; recognition producing no text
// is not a failure.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`

	// Variant is the tag of the winning preprocessing transform.
	Variant string `json:"variant,omitempty"`

	// FullText is the trimmed recognized text, before correction.
	FullText   string     `json:"full_text"`
	Statistics Statistics `json:"statistics"`

	// CorrectedText and the issue fields are populated only when
	// correction ran.
	CorrectedText string               `json:"corrected_text,omitempty"`
	Issues        []correct.Issue      `json:"errors,omitempty"`
	IssueCount    int                  `json:"error_count,omitempty"`
	CountsByKind  map[correct.Kind]int `json:"counts_by_kind,omitempty"`
}

// Processor wires the pipeline stages together. Construct once and reuse
// across images; the correction pipeline's capability handles live as long
// as the processor's pipeline does.
type Processor struct {
	cache    *imaging.Cache
	selector *recognize.Selector
	pipeline *correct.Pipeline
	language string
}

// NewProcessor builds a processor around a recognition selector and a
// correction pipeline. pipeline may be nil when correction will never be
// requested. language is the extraction hint (e.g. "rus+eng").
func NewProcessor(selector *recognize.Selector, pipeline *correct.Pipeline, language string) *Processor {
	return &Processor{
		cache:    imaging.NewCache(),
		selector: selector,
		pipeline: pipeline,
		language: language,
	}
}

// Process turns one image file into recognized (and optionally corrected)
// text.
//
// Loading failures (missing file, undecodable bytes) produce a
// Success:false result with the error message; they are fatal for this
// image only. Everything past loading degrades instead of failing: a
// page with no recognizable text yields an empty FullText and zero
// statistics.
func (p *Processor) Process(ctx context.Context, imagePath string, opts Options) *Result {
	img, err := p.cache.Load(imagePath)
	if err != nil {
		return &Result{Error: err.Error()}
	}

	variants := preprocess.Generate(img)
	best := p.selector.Select(ctx, variants, p.language)

	text := strings.TrimSpace(best.Text)
	res := &Result{
		Success:  true,
		Variant:  best.Tag,
		FullText: text,
		Statistics: Statistics{
			Characters: utf8.RuneCountInString(text),
			Words:      len(strings.Fields(text)),
		},
	}

	if opts.CheckErrors && p.pipeline != nil {
		checked := p.pipeline.Check(ctx, text)
		res.CorrectedText = checked.CorrectedText
		res.Issues = checked.Issues
		res.IssueCount = checked.IssueCount
		res.CountsByKind = checked.CountsByKind
	}
	return res
}

// FlushCache releases every decoded image held since the last flush. Call
// it when a batch ends; large scans otherwise stay in memory for the life
// of the processor.
func (p *Processor) FlushCache() {
	p.cache.Clear()
}
