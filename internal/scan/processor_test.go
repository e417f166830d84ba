package scan

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/ironsheep/scantext/internal/correct"
	"github.com/ironsheep/scantext/internal/recognize"
)

// fixedExtractor returns the same text for every variant.
type fixedExtractor struct {
	text string
}

func (f *fixedExtractor) Extract(_ context.Context, _ image.Image, _ string) (string, error) {
	return f.text, nil
}

func writeScanPNG(t *testing.T) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			img.SetGray(x, y, color.Gray{uint8(x * 8)})
		}
	}
	path := filepath.Join(t.TempDir(), "page.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode: %v", err)
	}
	return path
}

func newProcessor(text string, pipeline *correct.Pipeline) *Processor {
	selector := recognize.NewSelector(&fixedExtractor{text: text}, recognize.WithWorkers(1))
	return NewProcessor(selector, pipeline, "rus+eng")
}

func TestProcess_Statistics(t *testing.T) {
	path := writeScanPNG(t)
	p := newProcessor("  Привет мир \n", nil)

	res := p.Process(context.Background(), path, Options{})
	if !res.Success {
		t.Fatalf("Process failed: %s", res.Error)
	}
	if res.FullText != "Привет мир" {
		t.Errorf("FullText = %q", res.FullText)
	}
	if res.Statistics.Characters != utf8.RuneCountInString(res.FullText) {
		t.Errorf("Characters = %d, want %d", res.Statistics.Characters, utf8.RuneCountInString(res.FullText))
	}
	if res.Statistics.Words != len(strings.Fields(res.FullText)) {
		t.Errorf("Words = %d, want %d", res.Statistics.Words, len(strings.Fields(res.FullText)))
	}
	if res.Variant == "" {
		t.Error("winning variant tag missing")
	}
}

func TestProcess_MissingFile(t *testing.T) {
	p := newProcessor("text", nil)

	res := p.Process(context.Background(), filepath.Join(t.TempDir(), "nope.png"), Options{})
	if res.Success {
		t.Fatal("expected failure for missing file")
	}
	if res.Error == "" {
		t.Error("expected error message")
	}
}

func TestProcess_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.png")
	if err := os.WriteFile(path, []byte("garbage"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	p := newProcessor("text", nil)

	res := p.Process(context.Background(), path, Options{})
	if res.Success {
		t.Fatal("expected failure for undecodable file")
	}
}

func TestProcess_EmptyRecognitionIsNotAnError(t *testing.T) {
	path := writeScanPNG(t)
	p := newProcessor("", nil)

	res := p.Process(context.Background(), path, Options{})
	if !res.Success {
		t.Fatalf("empty page must not fail: %s", res.Error)
	}
	if res.FullText != "" || res.Statistics.Characters != 0 || res.Statistics.Words != 0 {
		t.Errorf("unexpected result for empty page: %+v", res)
	}
}

func TestProcess_CachesDecodedImages(t *testing.T) {
	path := writeScanPNG(t)
	p := newProcessor("text", nil)

	if res := p.Process(context.Background(), path, Options{}); !res.Success {
		t.Fatalf("first Process failed: %s", res.Error)
	}

	// The decoded image outlives the file: a second call must not touch
	// the disk.
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if res := p.Process(context.Background(), path, Options{}); !res.Success {
		t.Errorf("second Process should be served from the cache: %s", res.Error)
	}

	p.FlushCache()
	if res := p.Process(context.Background(), path, Options{}); res.Success {
		t.Error("expected failure after flush, the file is gone")
	}
}

func TestProcess_WithCorrection(t *testing.T) {
	path := writeScanPNG(t)
	pipeline := correct.New(correct.Config{Hyphenation: true, Confusable: true})
	defer pipeline.Close()
	p := newProcessor("Привет 3 3ажигалка", pipeline)

	res := p.Process(context.Background(), path, Options{CheckErrors: true})
	if !res.Success {
		t.Fatalf("Process failed: %s", res.Error)
	}
	if res.IssueCount != len(res.Issues) {
		t.Errorf("IssueCount %d != len(Issues) %d", res.IssueCount, len(res.Issues))
	}
	if res.CountsByKind[correct.KindConfusable] != 2 {
		t.Errorf("confusable count = %d, want 2", res.CountsByKind[correct.KindConfusable])
	}
	if !strings.Contains(res.CorrectedText, "Зажигалка") {
		t.Errorf("corrected text %q", res.CorrectedText)
	}
	// The uncorrected text and its statistics stay untouched.
	if res.FullText != "Привет 3 3ажигалка" {
		t.Errorf("FullText mutated: %q", res.FullText)
	}
}

func TestProcess_NoCorrectionKeepsShape(t *testing.T) {
	path := writeScanPNG(t)
	pipeline := correct.New(correct.DefaultConfig())
	defer pipeline.Close()
	p := newProcessor("превет", pipeline)

	res := p.Process(context.Background(), path, Options{CheckErrors: false})
	if !res.Success {
		t.Fatalf("Process failed: %s", res.Error)
	}
	if res.Issues != nil || res.IssueCount != 0 || res.CorrectedText != "" {
		t.Errorf("correction fields populated without CheckErrors: %+v", res)
	}
}
