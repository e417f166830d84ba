package imaging

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// writeTestPNG writes a small solid-color PNG and returns its path.
func writeTestPNG(t *testing.T, dir, name string) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, color.White)
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test image: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "scan.png")

	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 16 {
		t.Errorf("unexpected bounds: %v", img.Bounds())
	}
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.png"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLoad_DecodeError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	_, err := Load(path)
	if !errors.Is(err, ErrDecode) {
		t.Errorf("expected ErrDecode, got %v", err)
	}
}

func TestCache_LoadAndEvict(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "scan.png")

	cache := NewCache()
	first, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Second load must come from the cache: deleting the file on disk
	// must not matter.
	if err := os.Remove(path); err != nil {
		t.Fatalf("failed to remove file: %v", err)
	}
	second, err := cache.Load(path)
	if err != nil {
		t.Fatalf("cached Load failed: %v", err)
	}
	if first != second {
		t.Error("expected cached image to be returned")
	}

	cache.Evict(path)
	if _, err := cache.Load(path); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after eviction, got %v", err)
	}
}

func TestCache_Clear(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "scan.png")

	cache := NewCache()
	if _, err := cache.Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cache.Clear()

	if err := os.Remove(path); err != nil {
		t.Fatalf("failed to remove file: %v", err)
	}
	if _, err := cache.Load(path); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after Clear, got %v", err)
	}
}
