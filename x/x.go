// Package x previews integer scaled images inside the X11 window of the
// terminal intscale runs in.
package x

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"os"
	"strconv"
	"sync"

	"github.com/containerd/console"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

var ErrNoWindow = errors.New("no terminal window")

// Terminal is the X11 window of a terminal emulator.
type Terminal struct {
	sem sync.Mutex

	x   *xgb.Conn
	wnd xproto.Window

	console console.Console

	viewports []*Viewport

	depth  xproto.DepthInfo
	visual xproto.VisualInfo
}

// NewFromEnv connects to the window set in WINDOWID, which most X11
// terminal emulators export.
func NewFromEnv() (*Terminal, error) {
	id := os.Getenv("WINDOWID")
	if id == "" {
		return nil, fmt.Errorf("%w: WINDOWID not set", ErrNoWindow)
	}
	return New(id)
}

func New(windowID string) (*Terminal, error) {
	wnd, err := strconv.ParseUint(windowID, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: '%s' is not a valid X window id", ErrNoWindow, windowID)
	}

	x, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}

	t := &Terminal{x: x, wnd: xproto.Window(wnd)}
	screen := xproto.Setup(x).DefaultScreen(x)
	for _, d := range screen.AllowedDepths {
		if d.Depth == screen.RootDepth && len(d.Visuals) != 0 {
			t.depth, t.visual = d, d.Visuals[0]
			break
		}
	}
	if t.depth.Depth == 0 {
		x.Close()
		return nil, errors.New("no usable visual on the default screen")
	}

	return t, nil
}

func (t *Terminal) Close() {
	t.sem.Lock()
	vps := t.viewports
	t.viewports = nil
	t.sem.Unlock()

	for _, v := range vps {
		v.Close()
	}
	t.x.Close()
}

func (t *Terminal) Console() console.Console {
	if t.console != nil {
		return t.console
	}

	t.console = console.Current()
	return t.console
}

// Size of the terminal window in pixels.
func (t *Terminal) Size() (Dimensions, error) {
	d, err := xproto.GetGeometry(t.x, xproto.Drawable(t.wnd)).Reply()
	if err != nil {
		return Dimensions{}, err
	}

	return Dimensions{W: int(d.Width), H: int(d.Height)}, nil
}

// CharSize returns the size of a single character in pixels, preferably
// from the window's resize increment hint, otherwise derived from the
// number of columns and lines.
func (t *Terminal) CharSize() (Dimensions, error) {
	if p, err := t.resizeIncrement(); err == nil {
		return p, nil
	}

	size, err := t.Console().Size()
	if err != nil {
		return Dimensions{}, err
	}

	win, err := t.Size()
	if err != nil {
		return Dimensions{}, err
	}

	return cellSize(win, int(size.Width), int(size.Height))
}

func cellSize(win Dimensions, cols, lines int) (Dimensions, error) {
	if cols <= 0 || lines <= 0 {
		return Dimensions{}, errors.New("console reports no size")
	}

	d := Dimensions{W: win.W / cols, H: win.H / lines}
	if d.W == 0 || d.H == 0 {
		return d, fmt.Errorf("window of %s is too small for %dx%d cells", win, cols, lines)
	}
	return d, nil
}

// ToPixels converts a rectangle in columns and lines to pixels.
func (t *Terminal) ToPixels(r image.Rectangle) (image.Rectangle, error) {
	chr, err := t.CharSize()
	if err != nil {
		return r, err
	}

	return cellsToPixels(r, chr), nil
}

func cellsToPixels(r image.Rectangle, chr Dimensions) image.Rectangle {
	return image.Rect(r.Min.X*chr.W, r.Min.Y*chr.H, r.Max.X*chr.W, r.Max.Y*chr.H)
}

func (t *Terminal) resizeIncrement() (Dimensions, error) {
	const name = "WM_NORMAL_HINTS"
	atom, err := xproto.InternAtom(t.x, true, uint16(len(name)), name).Reply()
	if err != nil {
		return Dimensions{}, err
	}

	reply, err := xproto.GetProperty(
		t.x,
		false,
		t.wnd,
		atom.Atom,
		xproto.GetPropertyTypeAny, 0, (1<<32)-1,
	).Reply()
	if err != nil {
		return Dimensions{}, err
	}

	return parseResizeIncrement(reply.Format, reply.Value)
}

// parseResizeIncrement extracts width_inc and height_inc from a
// WM_SIZE_HINTS property value.
func parseResizeIncrement(format byte, value []byte) (Dimensions, error) {
	size := int(format / 8)
	if size == 0 {
		return Dimensions{}, fmt.Errorf("invalid property format %d", format)
	}

	vals := make([]int, 0, len(value)/size)
	for i := 0; i+size <= len(value); i += size {
		switch format {
		case 16:
			vals = append(vals, int(binary.LittleEndian.Uint16(value[i:])))
		case 32:
			vals = append(vals, int(binary.LittleEndian.Uint32(value[i:])))
		default:
			vals = append(vals, int(value[i]))
		}
	}

	if len(vals) < 11 {
		return Dimensions{}, errors.New("no resize increment in hints")
	}

	d := Dimensions{W: vals[9], H: vals[10]}
	if d.W <= 0 || d.H <= 0 {
		return d, errors.New("no valid resize increment set")
	}

	return d, nil
}

// Render processes X11 expose events so viewports are redrawn when needed.
// Blocks until an event is received when block is true.
func (t *Terminal) Render(block bool) error {
	var evt xgb.Event
	var xerr xgb.Error
	if block {
		evt, xerr = t.x.WaitForEvent()
		if evt == nil && xerr == nil {
			return errors.New("X server connection closed")
		}
	} else {
		evt, xerr = t.x.PollForEvent()
	}
	if xerr != nil {
		return xerr
	}

	if _, ok := evt.(xproto.ExposeEvent); ok {
		t.sem.Lock()
		vps := make([]*Viewport, len(t.viewports))
		copy(vps, t.viewports)
		t.sem.Unlock()

		for _, v := range vps {
			v.Render()
		}
	}

	return nil
}
