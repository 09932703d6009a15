package screen

import "image"

// FileInfo describes a screenshot written to disk
type FileInfo struct {
	Path     string
	Format   string // "png" or "jpeg"
	Width    int
	Height   int
	ByteSize int64
}

// Grabber is the interface that all screenshot capture implementations must satisfy
type Grabber interface {
	// Capture grabs the full screen and returns the decoded image
	Capture() (image.Image, error)

	// IsAvailable checks if this grabber can run on the current system
	IsAvailable() bool

	// DisplayServer returns the display server type ("x11" or "wayland")
	DisplayServer() string

	// Close cleans up any resources used by the grabber
	Close() error
}

// Probe checks whether the system allows taking screenshots by capturing and
// discarding one frame
func Probe(g Grabber) bool {
	img, err := g.Capture()
	return err == nil && img != nil
}
