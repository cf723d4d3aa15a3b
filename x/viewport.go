package x

import (
	"image"
	"sync"

	"github.com/jezek/xgb/xproto"
)

// Viewport shows a single image, scaled and centered, in an area of the
// terminal window.
type Viewport struct {
	sem sync.Mutex
	t   *Terminal

	wnd    xproto.Window
	pixmap xproto.Pixmap
	gc     xproto.Gcontext

	area    image.Rectangle
	src     Image
	scaling Scaling
	geom    Geometry

	mapped  bool
	created bool
	change  bool
	reload  bool

	// OnError receives errors that occur while drawing.
	OnError func(error)
}

// Viewport creates a new viewport in t.
func (t *Terminal) Viewport() *Viewport {
	v := &Viewport{t: t, OnError: func(error) {}}
	t.sem.Lock()
	t.viewports = append(t.viewports, v)
	t.sem.Unlock()
	return v
}

// Close frees the resources on the X server, v must not be used afterwards.
func (v *Viewport) Close() {
	v.sem.Lock()
	v.destroy(true)
	v.src = nil
	v.sem.Unlock()

	t := v.t
	t.sem.Lock()
	for i, w := range t.viewports {
		if w == v {
			t.viewports = append(t.viewports[:i], t.viewports[i+1:]...)
			break
		}
	}
	t.sem.Unlock()
}

func (v *Viewport) SetImage(img Image) {
	v.sem.Lock()
	v.src = img
	v.change = true
	v.reload = true
	v.sem.Unlock()
}

func (v *Viewport) SetScaling(s Scaling) {
	v.sem.Lock()
	v.change = v.change || v.scaling != s
	v.reload = v.reload || v.scaling.Method.Smooth() != s.Method.Smooth()
	v.scaling = s
	v.sem.Unlock()
}

// SetArea in pixels relative to the terminal window.
func (v *Viewport) SetArea(r image.Rectangle) {
	v.sem.Lock()
	v.change = v.change || v.area != r
	v.area = r
	v.sem.Unlock()
}

// SetAreaTerminal in columns and lines.
func (v *Viewport) SetAreaTerminal(r image.Rectangle) error {
	px, err := v.t.ToPixels(r)
	if err != nil {
		return err
	}
	v.SetArea(px)
	return nil
}

// Geometry calculates where the current image would be shown.
func (v *Viewport) Geometry() (Geometry, error) {
	v.sem.Lock()
	defer v.sem.Unlock()
	return v.calcGeom()
}

func (v *Viewport) Show() {
	v.sem.Lock()
	defer v.sem.Unlock()
	if v.mapped {
		return
	}

	v.mapped = true
	if v.created {
		xproto.MapWindow(v.t.x, v.wnd)
	}
	v.draw()
}

func (v *Viewport) Hide() {
	v.sem.Lock()
	defer v.sem.Unlock()
	if !v.mapped {
		return
	}

	v.mapped = false
	if v.created {
		xproto.UnmapWindow(v.t.x, v.wnd)
	}
}

// Render redraws v if it is shown.
func (v *Viewport) Render() {
	v.sem.Lock()
	defer v.sem.Unlock()
	if v.mapped {
		v.draw()
	}
}

func (v *Viewport) calcGeom() (Geometry, error) {
	if v.src == nil {
		return Geometry{}, nil
	}

	b := v.src.Bounds()
	return v.scaling.Scale(
		Dimensions{W: b.Dx(), H: b.Dy()},
		Dimensions{W: v.area.Dx(), H: v.area.Dy()},
	)
}

func (v *Viewport) destroy(pixmap bool) {
	if v.created {
		xproto.DestroyWindow(v.t.x, v.wnd)
		v.wnd, v.created = 0, false
	}
	if !pixmap {
		return
	}
	if v.pixmap != 0 {
		xproto.FreePixmap(v.t.x, v.pixmap)
		v.pixmap = 0
	}
	if v.gc != 0 {
		xproto.FreeGC(v.t.x, v.gc)
		v.gc = 0
	}
}

func (v *Viewport) rebuild() error {
	geom, err := v.calcGeom()
	if err != nil {
		return err
	}

	resized := v.reload || geom.Image != v.geom.Image || v.pixmap == 0
	v.reload = false
	v.geom = geom
	v.destroy(resized)

	if geom.Window.W <= 0 || geom.Window.H <= 0 {
		return nil
	}

	if resized {
		v.src.Reset()
		b := v.src.Bounds()
		if b.Dx() != geom.Image.W || b.Dy() != geom.Image.H {
			v.src.Resize(geom.Image.W, geom.Image.H, v.scaling.Method.Smooth())
		}
	}

	if v.wnd, err = xproto.NewWindowId(v.t.x); err != nil {
		return err
	}
	xproto.CreateWindow(
		v.t.x,
		v.t.depth.Depth,
		v.wnd,
		v.t.wnd,
		int16(v.area.Min.X+geom.Offset.X),
		int16(v.area.Min.Y+geom.Offset.Y),
		uint16(geom.Window.W),
		uint16(geom.Window.H),
		0,
		xproto.WindowClassInputOutput,
		v.t.visual.VisualId,
		xproto.CwBackPixel|xproto.CwEventMask,
		[]uint32{0, xproto.EventMaskExposure},
	)
	v.created = true

	if resized {
		if err := v.upload(v.src.BGRA()); err != nil {
			return err
		}
	}

	if v.mapped {
		xproto.MapWindow(v.t.x, v.wnd)
	}
	return nil
}

func (v *Viewport) upload(img *BGRA) error {
	var err error
	if v.pixmap, err = xproto.NewPixmapId(v.t.x); err != nil {
		return err
	}
	if v.gc, err = xproto.NewGcontextId(v.t.x); err != nil {
		return err
	}

	b := img.Bounds()
	xproto.CreatePixmap(
		v.t.x,
		v.t.depth.Depth,
		v.pixmap,
		xproto.Drawable(v.wnd),
		uint16(b.Dx()),
		uint16(b.Dy()),
	)
	xproto.CreateGC(v.t.x, v.gc, xproto.Drawable(v.pixmap), 0, nil)

	return v.t.putImage(img, xproto.Drawable(v.pixmap), v.gc)
}

func (v *Viewport) draw() {
	if v.src == nil || v.area.Empty() {
		return
	}

	if v.change || !v.created {
		v.change = false
		if err := v.rebuild(); err != nil {
			v.OnError(err)
			return
		}
	}
	if v.pixmap == 0 || !v.created {
		return
	}

	crop := v.geom.Crop()
	xproto.CopyArea(
		v.t.x,
		xproto.Drawable(v.pixmap),
		xproto.Drawable(v.wnd),
		v.gc,
		int16(crop.X),
		int16(crop.Y),
		0,
		0,
		uint16(v.geom.Window.W),
		uint16(v.geom.Window.H),
	)
}

const maxRequest = 1<<16 - 1

// putImage uploads img in chunks of lines that fit a single request.
func (t *Terminal) putImage(img *BGRA, dst xproto.Drawable, gc xproto.Gcontext) error {
	width, height := img.Rect.Dx(), img.Rect.Dy()
	if width == 0 || height == 0 {
		return nil
	}

	stride := width * 4
	lines := maxRequest / stride
	if lines == 0 {
		lines = 1
	}

	for y := 0; y < height; y += lines {
		n := lines
		if y+n > height {
			n = height - y
		}
		err := xproto.PutImageChecked(
			t.x,
			xproto.ImageFormatZPixmap,
			dst,
			gc,
			uint16(width),
			uint16(n),
			0, int16(y),
			0, t.depth.Depth,
			img.Pix[y*stride:(y+n)*stride],
		).Check()
		if err != nil {
			return err
		}
	}

	return nil
}
