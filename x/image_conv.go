package x

import (
	"image"

	"github.com/disintegration/imaging"
)

// ToBGRA converts any image to a BGRA image with its origin at 0,0.
func ToBGRA(i image.Image) *BGRA {
	src := imaging.Clone(i)
	dst := NewBGRA(image.Rect(0, 0, src.Rect.Dx(), src.Rect.Dy()))

	for o := 0; o < len(src.Pix); o += 4 {
		p := src.Pix[o : o+4 : o+4]
		a := uint32(p[3])
		dst.Pix[o+0] = uint8(uint32(p[2]) * a / 0xff)
		dst.Pix[o+1] = uint8(uint32(p[1]) * a / 0xff)
		dst.Pix[o+2] = uint8(uint32(p[0]) * a / 0xff)
		dst.Pix[o+3] = p[3]
	}

	return dst
}
