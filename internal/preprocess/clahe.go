package preprocess

import (
	"image"
	"math"
)

// equalizeCLAHE performs contrast-limited adaptive histogram equalization
// over a tiles x tiles grid.
//
// Each tile gets its own equalization mapping built from a clipped
// histogram (the clip limit caps any bin at clip times the mean bin count,
// redistributing the excess uniformly), and every output pixel is the
// bilinear interpolation of the mappings of the four nearest tile centers.
// The interpolation removes the visible tile seams plain per-tile
// equalization would produce.
//
// Returns nil when the image is too small to carve into the tile grid.
func equalizeCLAHE(g *image.Gray, tiles int, clip float64) image.Image {
	w := g.Bounds().Dx()
	h := g.Bounds().Dy()
	if w < tiles || h < tiles {
		return nil
	}

	tileW := (w + tiles - 1) / tiles
	tileH := (h + tiles - 1) / tiles

	// Per-tile lookup tables.
	luts := make([][256]uint8, tiles*tiles)
	for ty := 0; ty < tiles; ty++ {
		for tx := 0; tx < tiles; tx++ {
			x0, y0 := tx*tileW, ty*tileH
			x1, y1 := min(x0+tileW, w), min(y0+tileH, h)
			luts[ty*tiles+tx] = tileLUT(g, x0, y0, x1, y1, clip)
		}
	}

	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		// Position of the pixel row relative to tile centers.
		fy := (float64(y)-float64(tileH)/2) / float64(tileH)
		ty0 := int(math.Floor(fy))
		wy := fy - float64(ty0)
		ty1 := ty0 + 1
		ty0 = clampInt(ty0, 0, tiles-1)
		ty1 = clampInt(ty1, 0, tiles-1)

		for x := 0; x < w; x++ {
			fx := (float64(x)-float64(tileW)/2) / float64(tileW)
			tx0 := int(math.Floor(fx))
			wx := fx - float64(tx0)
			tx1 := tx0 + 1
			tx0 = clampInt(tx0, 0, tiles-1)
			tx1 = clampInt(tx1, 0, tiles-1)

			v := g.GrayAt(x, y).Y
			top := (1-wx)*float64(luts[ty0*tiles+tx0][v]) + wx*float64(luts[ty0*tiles+tx1][v])
			bottom := (1-wx)*float64(luts[ty1*tiles+tx0][v]) + wx*float64(luts[ty1*tiles+tx1][v])
			out.Pix[y*out.Stride+x] = uint8(math.Round((1-wy)*top + wy*bottom))
		}
	}
	return out
}

// tileLUT builds the clipped-equalization lookup table for one tile.
func tileLUT(g *image.Gray, x0, y0, x1, y1 int, clip float64) [256]uint8 {
	var hist [256]int
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			hist[g.GrayAt(x, y).Y]++
		}
	}
	pixels := (x1 - x0) * (y1 - y0)

	// Clip the histogram and collect the excess.
	limit := int(clip * float64(pixels) / 256)
	if limit < 1 {
		limit = 1
	}
	excess := 0
	for i := range hist {
		if hist[i] > limit {
			excess += hist[i] - limit
			hist[i] = limit
		}
	}

	// Redistribute the excess uniformly across all bins.
	share := excess / 256
	remainder := excess % 256
	for i := range hist {
		hist[i] += share
		if i < remainder {
			hist[i]++
		}
	}

	// Cumulative mapping scaled to the full output range.
	var lut [256]uint8
	cum := 0
	for i := range hist {
		cum += hist[i]
		lut[i] = uint8(math.Round(255 * float64(cum) / float64(pixels)))
	}
	return lut
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
