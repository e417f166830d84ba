package preprocess

import (
	"image"

	"github.com/anthonynsimon/bild/convolution"
	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"
)

// Variant tags, in generation order.
const (
	TagGrayscale  = "grayscale"
	TagCLAHE      = "clahe"
	TagOtsu       = "otsu"
	TagAdaptive   = "adaptive"
	TagMorphology = "morphology"
	TagDenoise    = "denoise"
	TagSharpen    = "sharpen"
)

// Variant is one transformed rendition of a source image, tagged with the
// name of the transform that produced it. Variants are immutable once
// created and are discarded after recognition.
type Variant struct {
	Tag   string
	Image image.Image
}

// CLAHE and adaptive-threshold parameters. Values match the usual defaults
// for document scans: an 8x8 tile grid with a 3.0 clip limit, and an 11x11
// neighborhood with a small constant offset.
const (
	claheTiles     = 8
	claheClipLimit = 3.0

	adaptiveWindow = 11
	adaptiveOffset = 2
)

// Generate produces the ordered set of image variants for recognition.
//
// Seven transforms are attempted, in a fixed order:
//
//  1. grayscale  - plain luminance conversion (baseline)
//  2. clahe      - contrast-limited adaptive histogram equalization
//  3. otsu       - global binarization at the Otsu threshold
//  4. adaptive   - local mean-based binarization
//  5. morphology - closing (dilate then erode) to bridge stroke gaps
//  6. denoise    - median smoothing to suppress sensor noise
//  7. sharpen    - high-pass kernel to crisp faint strokes
//
// A transform that produces no usable output for a degenerate input is
// skipped, so the result may have fewer than seven entries, but the
// grayscale baseline is always present for any non-empty image. A nil or
// empty image yields an empty slice.
//
// Generate is deterministic and has no external state.
func Generate(img image.Image) []Variant {
	if img == nil {
		return nil
	}
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil
	}

	gray := toGray(img)

	transforms := []struct {
		tag string
		fn  func(*image.Gray) image.Image
	}{
		{TagGrayscale, func(g *image.Gray) image.Image { return g }},
		{TagCLAHE, func(g *image.Gray) image.Image { return equalizeCLAHE(g, claheTiles, claheClipLimit) }},
		{TagOtsu, func(g *image.Gray) image.Image { return segment.Threshold(g, otsuLevel(g)) }},
		{TagAdaptive, func(g *image.Gray) image.Image { return adaptiveThreshold(g, adaptiveWindow, adaptiveOffset) }},
		{TagMorphology, func(g *image.Gray) image.Image { return effect.Erode(effect.Dilate(g, 1), 1) }},
		{TagDenoise, func(g *image.Gray) image.Image { return effect.Median(g, 2) }},
		{TagSharpen, sharpen},
	}

	variants := make([]Variant, 0, len(transforms))
	for _, tr := range transforms {
		out := tr.fn(gray)
		if out == nil || out.Bounds().Dx() <= 0 || out.Bounds().Dy() <= 0 {
			continue
		}
		variants = append(variants, Variant{Tag: tr.tag, Image: out})
	}
	return variants
}

// sharpen applies a 3x3 high-pass kernel that weighs the center pixel
// against its eight neighbors:
//
//	-1 -1 -1
//	-1  9 -1
//	-1 -1 -1
func sharpen(g *image.Gray) image.Image {
	k := convolution.NewKernel(3, 3)
	k.Matrix = []float64{
		-1, -1, -1,
		-1, 9, -1,
		-1, -1, -1,
	}
	return convolution.Convolve(g, k, &convolution.Options{Bias: 0, Wrap: false, KeepAlpha: false})
}

// toGray converts any image to single-channel 8-bit grayscale. The
// luminance conversion is delegated to the imaging library; its NRGBA
// output carries equal channels, so collapsing to image.Gray is a copy of
// the red channel.
func toGray(img image.Image) *image.Gray {
	flat := imaging.Grayscale(img)
	bounds := flat.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	gray := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gray.Pix[y*gray.Stride+x] = flat.Pix[y*flat.Stride+x*4]
		}
	}
	return gray
}
