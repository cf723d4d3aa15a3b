package x

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

type Image interface {
	Bounds() image.Rectangle
	Reset()
	Resize(w, h int, smooth bool)
	BGRA() *BGRA
}

type nativeImage struct {
	in  *BGRA
	out *BGRA
}

// NewImage converts i for display.
func NewImage(i image.Image) Image { return &nativeImage{in: ToBGRA(i)} }

func (n *nativeImage) Bounds() image.Rectangle { return n.in.Bounds() }

func (n *nativeImage) Reset() { n.out = nil }

// Resize samples the nearest source pixel unless smooth is set, so integer
// multiples keep every source pixel a sharp block.
func (n *nativeImage) Resize(w, h int, smooth bool) {
	var kernel draw.Interpolator = draw.NearestNeighbor
	if smooth {
		kernel = draw.ApproxBiLinear
	}

	n.out = NewBGRA(image.Rect(0, 0, w, h))
	kernel.Scale(n.out, n.out.Bounds(), n.in, n.in.Bounds(), draw.Src, nil)
}

func (n *nativeImage) BGRA() *BGRA {
	if n.out == nil {
		return n.in
	}
	return n.out
}

// BGRA is a premultiplied 32 bit image in the byte order of a little endian
// X11 ZPixmap.
type BGRA struct {
	Rect   image.Rectangle
	Pix    []byte
	Stride int
}

func NewBGRA(r image.Rectangle) *BGRA {
	return &BGRA{
		Rect:   r,
		Pix:    make([]uint8, 4*r.Dx()*r.Dy()),
		Stride: 4 * r.Dx(),
	}
}

func (i *BGRA) ColorModel() color.Model { return color.RGBAModel }
func (i *BGRA) Bounds() image.Rectangle { return i.Rect }

func (i *BGRA) PixOffset(x, y int) int {
	return (y-i.Rect.Min.Y)*i.Stride + (x-i.Rect.Min.X)*4
}

func (i *BGRA) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(i.Rect)) {
		return color.RGBA{}
	}
	s := i.Pix[i.PixOffset(x, y):]
	return color.RGBA{s[2], s[1], s[0], s[3]}
}

func (i *BGRA) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(i.Rect)) {
		return
	}
	c1 := color.RGBAModel.Convert(c).(color.RGBA)
	s := i.Pix[i.PixOffset(x, y):]
	s[0], s[1], s[2], s[3] = c1.B, c1.G, c1.R, c1.A
}
