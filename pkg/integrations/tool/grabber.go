package tool

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"

	"timeclock/pkg/screen"
)

// candidate describes an external screenshot tool and how to ask it for a
// full-screen PNG written to a file.
type candidate struct {
	name    string
	wayland bool
	args    func(outPath string) []string
}

var candidates = []candidate{
	{
		name:    "grim",
		wayland: true,
		args:    func(out string) []string { return []string{out} },
	},
	{
		name: "gnome-screenshot",
		args: func(out string) []string { return []string{"--file", out} },
	},
	{
		name: "spectacle",
		args: func(out string) []string { return []string{"-b", "-n", "-o", out} },
	},
	{
		name: "scrot",
		args: func(out string) []string { return []string{"-o", out} },
	},
	{
		name: "import",
		args: func(out string) []string { return []string{"-window", "root", out} },
	},
}

// Grabber shells out to whatever screenshot tool is installed. It is the
// fallback when the X protocol path is unavailable, and the only option on
// Wayland.
type Grabber struct {
	tool          candidate
	found         bool
	displayServer string
}

var _ screen.Grabber = (*Grabber)(nil)

// NewGrabber probes PATH for a usable screenshot tool. Wayland sessions only
// accept Wayland-capable tools.
func NewGrabber(displayServer string) *Grabber {
	g := &Grabber{displayServer: displayServer}
	for _, c := range candidates {
		if displayServer == "wayland" && !c.wayland {
			continue
		}
		if _, err := exec.LookPath(c.name); err == nil {
			g.tool = c
			g.found = true
			break
		}
	}
	return g
}

// Capture runs the tool against a temp file and decodes the result
func (g *Grabber) Capture() (image.Image, error) {
	if !g.found {
		return nil, fmt.Errorf("no screenshot tool available (tried grim, gnome-screenshot, spectacle, scrot, import)")
	}

	tmpDir, err := os.MkdirTemp("", "timeclock-capture-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	outPath := filepath.Join(tmpDir, "capture.png")
	cmd := exec.Command(g.tool.name, g.tool.args(outPath)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("%s failed: %w (%s)", g.tool.name, err, string(out))
	}

	f, err := os.Open(outPath)
	if err != nil {
		return nil, fmt.Errorf("%s produced no output file: %w", g.tool.name, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s output: %w", g.tool.name, err)
	}

	return img, nil
}

// IsAvailable reports whether a tool was found in PATH
func (g *Grabber) IsAvailable() bool {
	return g.found
}

// ToolName returns the selected tool, empty when none was found
func (g *Grabber) ToolName() string {
	if !g.found {
		return ""
	}
	return g.tool.name
}

// DisplayServer returns the display server the grabber was created for
func (g *Grabber) DisplayServer() string {
	return g.displayServer
}

// Close is a no-op; external tools hold no persistent resources
func (g *Grabber) Close() error {
	return nil
}
