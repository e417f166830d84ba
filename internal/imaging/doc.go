// Package imaging handles loading and caching of scanned document images.
//
// Loading distinguishes two failure classes: a missing file (ErrNotFound)
// and a file whose bytes cannot be decoded as a raster image (ErrDecode).
// Both are fatal for the affected image only; batch callers are expected to
// report the failure and move on to the next file.
//
// # Supported Formats
//
// PNG, JPEG, GIF, and BMP decoders are registered. Format detection uses
// the file contents, not the extension.
//
// # Thread Safety
//
// The Cache type is safe for concurrent use. The package-level Load is
// stateless and can be called concurrently.
package imaging
