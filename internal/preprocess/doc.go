// Package preprocess generates recognition-ready variants of a scanned
// document image.
//
// OCR accuracy on noisy scans depends heavily on preprocessing, and no
// single transform wins for every page: uneven illumination wants local
// contrast equalization, faded ink wants sharpening, sensor noise wants
// smoothing. Instead of guessing, Generate produces a fixed, ordered set of
// independently transformed variants of the same page; the recognition
// layer runs OCR on each and keeps the best result.
//
// All transforms operate on the grayscale rendition of the source image,
// never on each other's output, so each variant isolates the effect of one
// transform. The order of the returned slice is fixed for reproducibility.
//
// Generation is a pure function of the input raster: the same image always
// produces the same variants in the same order.
package preprocess
