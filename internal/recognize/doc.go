// Package recognize extracts text from preprocessed image variants and
// selects the best result.
//
// Extraction is delegated to an Extractor, an interface over the external
// OCR capability. The default implementation wraps the Tesseract engine via
// gosseract/v2, which requires Tesseract and the relevant language data to
// be installed on the system (e.g. tesseract-ocr-rus and tesseract-ocr-eng
// for the default "rus+eng" hint).
//
// The Selector runs every variant through the extractor and keeps the one
// whose trimmed text is longest, breaking ties by variant order. Length is
// a cheap, robust proxy for recognition quality here: the variants are
// diverse enough that garbage extractions tend to be short or empty.
//
// A failed extraction on one variant is logged and treated as an empty
// result; it never aborts the other variants. When every variant yields
// nothing the selector returns an empty result, not an error.
package recognize
