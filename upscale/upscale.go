// Package upscale applies sizes calculated by intscale to images.
package upscale

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/frizinak/intscale"
	"github.com/lucasb-eyer/go-colorful"
)

var ErrInvalidColor = errors.New("invalid color")

type Options struct {
	// Fill places the scaled image centered on an area sized canvas.
	Fill       bool
	Background color.Color
}

// Resize scales src to s using nearest neighbour sampling, each source pixel
// becomes a block of identical pixels when s is an integer multiple of the
// source size.
func Resize(src image.Image, s intscale.Size) *image.NRGBA {
	return imaging.Resize(src, s.Width, s.Height, imaging.NearestNeighbor)
}

// Render resizes src to s and, if o.Fill is set, centers it in area.
func Render(src image.Image, area intscale.Dimensions, s intscale.Size, o Options) *image.NRGBA {
	img := Resize(src, s)
	if !o.Fill {
		return img
	}

	bg := o.Background
	if bg == nil {
		bg = color.Black
	}

	x, y := s.Offset(area)
	return imaging.Paste(imaging.New(area.W, area.H, bg), img, image.Pt(x, y))
}

// Save writes img to path, the format is derived from the extension.
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save '%s': %w", path, err)
	}
	return nil
}

// Encode writes img to w as PNG, which is lossless and keeps the pixel
// blocks intact.
func Encode(w io.Writer, img image.Image) error {
	return imaging.Encode(w, img, imaging.PNG)
}

// ParseColor parses "#rgb", "#rrggbb" or "#rrggbbaa", the '#' is optional.
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	c := color.NRGBA{A: 255}
	switch len(hex) {
	case 3, 6:
	case 8:
		a, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return c, fmt.Errorf("%w: '%s'", ErrInvalidColor, s)
		}
		hex, c.A = hex[:6], uint8(a)
	default:
		return c, fmt.Errorf("%w: '%s'", ErrInvalidColor, s)
	}

	col, err := colorful.Hex("#" + hex)
	if err != nil {
		return c, fmt.Errorf("%w: '%s'", ErrInvalidColor, s)
	}

	c.R, c.G, c.B = col.RGB255()
	return c, nil
}
