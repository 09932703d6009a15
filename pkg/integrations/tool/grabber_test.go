package tool

import "testing"

func TestNewGrabberWayland(t *testing.T) {
	g := NewGrabber("wayland")

	if g.DisplayServer() != "wayland" {
		t.Errorf("DisplayServer() = %s, want wayland", g.DisplayServer())
	}
	if g.IsAvailable() && g.ToolName() != "grim" {
		t.Errorf("wayland grabber picked %s, only grim is wayland-capable", g.ToolName())
	}
}

func TestNewGrabberX11(t *testing.T) {
	g := NewGrabber("x11")

	if g.DisplayServer() != "x11" {
		t.Errorf("DisplayServer() = %s, want x11", g.DisplayServer())
	}
	if !g.IsAvailable() {
		t.Log("no screenshot tool installed, nothing more to check")
		if g.ToolName() != "" {
			t.Errorf("ToolName() = %q for unavailable grabber, want empty", g.ToolName())
		}
		return
	}
	t.Logf("selected tool: %s", g.ToolName())
}

func TestCaptureWithoutTool(t *testing.T) {
	g := &Grabber{displayServer: "x11"}

	if _, err := g.Capture(); err == nil {
		t.Error("Capture() without a tool should fail")
	}
	if err := g.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
