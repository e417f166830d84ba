package preprocess

import "image"

// otsuLevel computes the global binarization threshold that maximizes the
// between-class variance of the grayscale histogram, separating the two
// intensity modes of a document scan (ink and paper).
func otsuLevel(g *image.Gray) uint8 {
	var hist [256]int
	bounds := g.Bounds()
	total := bounds.Dx() * bounds.Dy()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			hist[g.GrayAt(x, y).Y]++
		}
	}

	var sum float64
	for i, n := range hist {
		sum += float64(i) * float64(n)
	}

	var sumBack, weightBack float64
	var best float64
	var level uint8
	for i := 0; i < 256; i++ {
		weightBack += float64(hist[i])
		if weightBack == 0 {
			continue
		}
		weightFore := float64(total) - weightBack
		if weightFore == 0 {
			break
		}
		sumBack += float64(i) * float64(hist[i])

		meanBack := sumBack / weightBack
		meanFore := (sum - sumBack) / weightFore
		between := weightBack * weightFore * (meanBack - meanFore) * (meanBack - meanFore)
		if between > best {
			best = between
			level = uint8(i)
		}
	}
	return level
}

// adaptiveThreshold binarizes using a locally computed threshold: a pixel
// becomes white when it exceeds the mean of its window x window neighborhood
// minus offset, black otherwise. The local mean compensates for
// illumination gradients across the page that defeat a single global
// threshold.
//
// Neighborhood means are computed with a summed-area table so the cost is
// independent of the window size. Returns nil when the image is smaller
// than the window.
func adaptiveThreshold(g *image.Gray, window, offset int) image.Image {
	w := g.Bounds().Dx()
	h := g.Bounds().Dy()
	if w < window || h < window {
		return nil
	}

	// Summed-area table with a one-cell border of zeros.
	integral := make([]int64, (w+1)*(h+1))
	stride := w + 1
	for y := 0; y < h; y++ {
		var rowSum int64
		for x := 0; x < w; x++ {
			rowSum += int64(g.GrayAt(x+g.Bounds().Min.X, y+g.Bounds().Min.Y).Y)
			integral[(y+1)*stride+x+1] = integral[y*stride+x+1] + rowSum
		}
	}

	half := window / 2
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		y0 := clampInt(y-half, 0, h-1)
		y1 := clampInt(y+half, 0, h-1)
		for x := 0; x < w; x++ {
			x0 := clampInt(x-half, 0, w-1)
			x1 := clampInt(x+half, 0, w-1)

			area := int64((x1 - x0 + 1) * (y1 - y0 + 1))
			sum := integral[(y1+1)*stride+x1+1] -
				integral[y0*stride+x1+1] -
				integral[(y1+1)*stride+x0] +
				integral[y0*stride+x0]
			mean := sum / area

			if int64(g.GrayAt(x+g.Bounds().Min.X, y+g.Bounds().Min.Y).Y) > mean-int64(offset) {
				out.Pix[y*out.Stride+x] = 255
			}
		}
	}
	return out
}
