package x11

import (
	"image/color"
	"testing"
)

func TestBGRAToRGBA(t *testing.T) {
	// Two pixels: pure red and pure blue in BGRx order.
	data := []byte{
		0x00, 0x00, 0xff, 0x00, // red
		0xff, 0x00, 0x00, 0x00, // blue
	}

	img := bgraToRGBA(data, 2, 1)

	want := []color.RGBA{
		{R: 0xff, G: 0, B: 0, A: 0xff},
		{R: 0, G: 0, B: 0xff, A: 0xff},
	}
	for i, w := range want {
		got := img.RGBAAt(i, 0)
		if got != w {
			t.Errorf("pixel %d = %v, want %v", i, got, w)
		}
	}
}

func TestBGRAToRGBAAlphaForcedOpaque(t *testing.T) {
	// Alpha byte from the server is garbage for depth-24 visuals and must be
	// overwritten.
	data := []byte{0x10, 0x20, 0x30, 0x00}

	img := bgraToRGBA(data, 1, 1)
	if a := img.RGBAAt(0, 0).A; a != 0xff {
		t.Errorf("alpha = %#x, want 0xff", a)
	}
}

func TestNewGrabber(t *testing.T) {
	g, err := NewGrabber()
	if err != nil {
		t.Skipf("X server not available: %v", err)
	}
	defer g.Close()

	if g.DisplayServer() != "x11" {
		t.Errorf("DisplayServer() = %s, want x11", g.DisplayServer())
	}
	if g.width == 0 || g.height == 0 {
		t.Errorf("screen dimensions not resolved: %dx%d", g.width, g.height)
	}

	img, err := g.Capture()
	if err != nil {
		t.Logf("Capture() error (may be expected headless): %v", err)
		return
	}
	if img.Bounds().Dx() != int(g.width) || img.Bounds().Dy() != int(g.height) {
		t.Errorf("captured %v, want %dx%d", img.Bounds(), g.width, g.height)
	}
}
