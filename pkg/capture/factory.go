package capture

import (
	"fmt"
	"os"

	"timeclock/pkg/integrations/tool"
	"timeclock/pkg/integrations/x11"
	"timeclock/pkg/screen"
)

// New picks a screenshot backend for the current session: the X protocol
// grabber on X11, otherwise the first external tool found in PATH.
func New() (screen.Grabber, error) {
	displayServer := DetectDisplayServer()

	if displayServer == "x11" {
		if g, err := x11.NewGrabber(); err == nil {
			return g, nil
		}
		// Connection refused or no DISPLAY; fall through to tools.
	}

	g := tool.NewGrabber(displayServer)
	if !g.IsAvailable() {
		return nil, fmt.Errorf("no screenshot backend available for display server %q", displayServer)
	}
	return g, nil
}

func DetectDisplayServer() string {
	sessionType := os.Getenv("XDG_SESSION_TYPE")
	waylandDisplay := os.Getenv("WAYLAND_DISPLAY")
	x11Display := os.Getenv("DISPLAY")

	if sessionType == "wayland" || waylandDisplay != "" {
		return "wayland"
	}

	if sessionType == "x11" || x11Display != "" {
		return "x11"
	}

	return "unknown"
}
