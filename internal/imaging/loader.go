package imaging

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sync"

	_ "golang.org/x/image/bmp" // Register BMP format decoder
)

// Sentinel errors distinguishing the two ways loading an image can fail.
// Both are fatal for the affected image and non-fatal for a batch: callers
// report the failure and continue with the next file.
var (
	// ErrNotFound indicates the image path does not exist.
	ErrNotFound = errors.New("image file not found")

	// ErrDecode indicates the file exists but its bytes could not be
	// decoded as a supported raster format. Non-retryable for that input.
	ErrDecode = errors.New("image could not be decoded")
)

// Load reads and decodes the image at path.
//
// Returns an error wrapping ErrNotFound if the path is absent, or ErrDecode
// if the file contents are not a decodable PNG, JPEG, GIF, or BMP image.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}
	return img, nil
}

// Cache provides thread-safe caching of loaded images to avoid redundant
// disk reads during batch runs. Images are keyed by the exact path string
// used to load them.
//
// Cache is safe for concurrent use by multiple goroutines. Cached images
// remain in memory until Evict or Clear; batch callers hold entries for
// the life of the batch and Clear when it ends.
type Cache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewCache creates an empty image cache ready for use.
func NewCache() *Cache {
	return &Cache{images: make(map[string]image.Image)}
}

// Load retrieves an image from the cache or loads it from disk if not
// cached. Errors are the same as the package-level Load.
func (c *Cache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := Load(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Evict removes a specific image from the cache by its path. If the path
// is not cached, Evict does nothing.
func (c *Cache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Clear removes all images from the cache, freeing the associated memory.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}
