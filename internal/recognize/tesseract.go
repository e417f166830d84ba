package recognize

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"
)

// Extractor is the external text-extraction capability: given a raster and
// a language hint, it returns the recognized text. Implementations may
// return an empty string for images with no recognizable text; they must
// not fail for malformed-but-decodable images.
type Extractor interface {
	Extract(ctx context.Context, img image.Image, language string) (string, error)
}

// Tesseract extracts text using the Tesseract OCR engine via gosseract.
//
// Each Extract call creates and closes its own gosseract client, so a
// single Tesseract value is safe for concurrent use by the selector's
// worker pool.
type Tesseract struct{}

// NewTesseract returns a Tesseract-backed extractor. It fails when the
// engine is not usable on this system, so callers can detect the missing
// capability at construction time instead of per call.
func NewTesseract() (*Tesseract, error) {
	client := gosseract.NewClient()
	defer client.Close()
	if v := client.Version(); v == "" {
		return nil, fmt.Errorf("tesseract engine not available")
	}
	return &Tesseract{}, nil
}

// Extract runs OCR over img with the given Tesseract language hint
// (e.g. "rus+eng"). The image is PNG-encoded in memory and handed to the
// engine; no temporary files are written.
//
// The engine call itself is blocking; ctx is checked before the expensive
// steps so a caller-imposed timeout or cancellation is honored between
// them.
func (t *Tesseract) Extract(ctx context.Context, img image.Image, language string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode image for OCR: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(language); err != nil {
		return "", fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return text, nil
}
