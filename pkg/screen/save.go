package screen

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Save writes img to dir as PNG, recompresses it to JPEG at the given
// quality, and keeps whichever representation is smaller. The filename embeds
// a timestamp plus a short random suffix so two captures in the same second
// never collide.
func Save(img image.Image, dir string, quality int) (*FileInfo, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create screenshot directory: %w", err)
	}

	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}

	jpegBuf, jpegErr := CompressJPEG(img, quality)

	bounds := img.Bounds()
	info := &FileInfo{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}

	data := pngBuf.Bytes()
	ext := "png"
	info.Format = "png"
	if jpegErr == nil && jpegBuf.Len() < pngBuf.Len() {
		data = jpegBuf.Bytes()
		ext = "jpg"
		info.Format = "jpeg"
	}

	name := fmt.Sprintf("screenshot_%s_%s.%s",
		time.Now().Format("20060102_150405"),
		uuid.NewString()[:8],
		ext)
	info.Path = filepath.Join(dir, name)
	info.ByteSize = int64(len(data))

	if err := os.WriteFile(info.Path, data, 0600); err != nil {
		return nil, fmt.Errorf("failed to write screenshot: %w", err)
	}

	return info, nil
}

// CompressJPEG encodes img as JPEG at the given quality (1-100).
func CompressJPEG(img image.Image, quality int) (*bytes.Buffer, error) {
	if quality < 1 || quality > 100 {
		return nil, fmt.Errorf("jpeg quality must be between 1 and 100, got %d", quality)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return &buf, nil
}
