package x11

import (
	"fmt"
	"image"
	"os"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"timeclock/pkg/screen"
)

// Grabber captures the root window over the X protocol. No external tools
// are needed; the image is read straight from the server with GetImage.
type Grabber struct {
	conn   *xgb.Conn
	root   xproto.Window
	width  uint16
	height uint16
}

var _ screen.Grabber = (*Grabber)(nil)

// NewGrabber connects to the X server and resolves the default screen
func NewGrabber() (*Grabber, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}

	defaultScreen := xproto.Setup(conn).DefaultScreen(conn)

	return &Grabber{
		conn:   conn,
		root:   defaultScreen.Root,
		width:  defaultScreen.WidthInPixels,
		height: defaultScreen.HeightInPixels,
	}, nil
}

// Capture grabs the entire root window
func (g *Grabber) Capture() (image.Image, error) {
	reply, err := xproto.GetImage(g.conn,
		xproto.ImageFormatZPixmap,
		xproto.Drawable(g.root),
		0, 0, g.width, g.height,
		0xffffffff).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to read root window image: %w", err)
	}

	if reply.Depth != 24 && reply.Depth != 32 {
		return nil, fmt.Errorf("unsupported root window depth %d", reply.Depth)
	}

	expected := int(g.width) * int(g.height) * 4
	if len(reply.Data) < expected {
		return nil, fmt.Errorf("short image reply: got %d bytes, want %d", len(reply.Data), expected)
	}

	return bgraToRGBA(reply.Data, int(g.width), int(g.height)), nil
}

// bgraToRGBA converts the ZPixmap byte order (BGRx on little-endian servers)
// into a standard RGBA image with an opaque alpha channel.
func bgraToRGBA(data []byte, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < width*height; i++ {
		src := i * 4
		dst := i * 4
		img.Pix[dst+0] = data[src+2]
		img.Pix[dst+1] = data[src+1]
		img.Pix[dst+2] = data[src+0]
		img.Pix[dst+3] = 0xff
	}
	return img
}

// IsAvailable checks whether an X display is reachable
func (g *Grabber) IsAvailable() bool {
	return g.conn != nil && os.Getenv("DISPLAY") != ""
}

// DisplayServer returns "x11"
func (g *Grabber) DisplayServer() string {
	return "x11"
}

// Close disconnects from the X server
func (g *Grabber) Close() error {
	if g.conn != nil {
		g.conn.Close()
		g.conn = nil
	}
	return nil
}
