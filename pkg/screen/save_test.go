package screen

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testImage builds a noisy-enough RGBA image that JPEG at low quality beats
// PNG on size.
func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8((x * 7) % 256),
				G: uint8((y * 13) % 256),
				B: uint8((x*y + 31) % 256),
				A: 255,
			})
		}
	}
	return img
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	img := testImage(64, 48)

	info, err := Save(img, dir, 70)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if info.Width != 64 || info.Height != 48 {
		t.Errorf("dimensions = %dx%d, want 64x48", info.Width, info.Height)
	}
	if info.Format != "png" && info.Format != "jpeg" {
		t.Errorf("unexpected format %q", info.Format)
	}

	stat, err := os.Stat(info.Path)
	if err != nil {
		t.Fatalf("screenshot file missing: %v", err)
	}
	if stat.Size() != info.ByteSize {
		t.Errorf("ByteSize = %d, file size = %d", info.ByteSize, stat.Size())
	}
	if filepath.Dir(info.Path) != dir {
		t.Errorf("screenshot written outside target dir: %s", info.Path)
	}
	if !strings.HasPrefix(filepath.Base(info.Path), "screenshot_") {
		t.Errorf("unexpected filename %s", filepath.Base(info.Path))
	}
}

func TestSaveUniqueNames(t *testing.T) {
	dir := t.TempDir()
	img := testImage(16, 16)

	a, err := Save(img, dir, 70)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Save(img, dir, 70)
	if err != nil {
		t.Fatal(err)
	}
	if a.Path == b.Path {
		t.Errorf("two saves produced the same path: %s", a.Path)
	}
}

func TestCompressJPEG(t *testing.T) {
	img := testImage(64, 64)

	low, err := CompressJPEG(img, 10)
	if err != nil {
		t.Fatalf("CompressJPEG(10) error = %v", err)
	}
	high, err := CompressJPEG(img, 95)
	if err != nil {
		t.Fatalf("CompressJPEG(95) error = %v", err)
	}

	if low.Len() == 0 || high.Len() == 0 {
		t.Fatal("empty JPEG output")
	}
	if low.Len() >= high.Len() {
		t.Errorf("quality 10 (%d bytes) should be smaller than quality 95 (%d bytes)",
			low.Len(), high.Len())
	}
}

func TestCompressJPEGInvalidQuality(t *testing.T) {
	img := testImage(8, 8)

	if _, err := CompressJPEG(img, 0); err == nil {
		t.Error("quality 0 should be rejected")
	}
	if _, err := CompressJPEG(img, 101); err == nil {
		t.Error("quality 101 should be rejected")
	}
}
