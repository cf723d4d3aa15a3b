package x

import (
	"fmt"
	"image"

	"github.com/frizinak/intscale"
)

type Dimensions = intscale.Dimensions

// Geometry describes an image placed in an area. Before scaling Image is
// the source size and Area the available space, after scaling Image is the
// output size, Window the visible part of it and Offset the position of the
// window relative to the area.
type Geometry struct {
	Image  Dimensions
	Area   Dimensions
	Window Dimensions
	Offset image.Point
}

// Crop returns the position within the scaled image of the window's top
// left corner. It is non-zero only when the image overflows the area.
func (g Geometry) Crop() image.Point {
	return image.Pt((g.Image.W-g.Window.W)/2, (g.Image.H-g.Window.H)/2)
}

func (g Geometry) place() Geometry {
	g.Window = Dimensions{W: min(g.Image.W, g.Area.W), H: min(g.Image.H, g.Area.H)}
	g.Offset = image.Pt((g.Area.W-g.Window.W)/2, (g.Area.H-g.Window.H)/2)
	return g
}

type Scaler func(g Geometry, aspect intscale.Aspect) (Geometry, error)

// ScalerInteger scales by whole multiples as calculated by intscale.Fit.
func ScalerInteger(mode intscale.Mode) Scaler {
	return func(g Geometry, aspect intscale.Aspect) (Geometry, error) {
		s, err := intscale.Fit(g.Area, g.Image, aspect, mode)
		if err != nil {
			return g, err
		}
		g.Image = s.Dimensions()
		return g.place(), nil
	}
}

// ScalerContain scales to the largest size that fits, ignoring the aspect
// ratio and pixel boundaries.
func ScalerContain(upscale bool) Scaler {
	return func(g Geometry, _ intscale.Aspect) (Geometry, error) {
		if g.Image.W <= 0 || g.Image.H <= 0 || g.Area.W <= 0 || g.Area.H <= 0 {
			return g, fmt.Errorf("%w: geometry %+v", intscale.ErrInvalidArgument, g)
		}

		if !upscale && g.Image.W <= g.Area.W && g.Image.H <= g.Area.H {
			return g.place(), nil
		}

		ir := float64(g.Image.W) / float64(g.Image.H)
		ar := float64(g.Area.W) / float64(g.Area.H)
		if ir > ar {
			g.Image.W = g.Area.W
			g.Image.H = int(float64(g.Image.W) / ir)
			return g.place(), nil
		}

		g.Image.H = g.Area.H
		g.Image.W = int(float64(g.Image.H) * ir)
		return g.place(), nil
	}
}

type ScaleMethod byte

const (
	ScaleInteger ScaleMethod = iota
	ScaleIntegerCorrected
	ScaleIntegerPerfectY
	ScaleRatio
	ScaleRatioUpscale
)

// Smooth reports whether images scaled by s should be interpolated rather
// than sampled.
func (s ScaleMethod) Smooth() bool { return s == ScaleRatio || s == ScaleRatioUpscale }

// MethodFor returns the integer ScaleMethod for m.
func MethodFor(m intscale.Mode) ScaleMethod {
	switch m {
	case intscale.ModeCorrected:
		return ScaleIntegerCorrected
	case intscale.ModePerfectY:
		return ScaleIntegerPerfectY
	}
	return ScaleInteger
}

var scalers = map[ScaleMethod]Scaler{
	ScaleInteger:          ScalerInteger(intscale.ModeSquare),
	ScaleIntegerCorrected: ScalerInteger(intscale.ModeCorrected),
	ScaleIntegerPerfectY:  ScalerInteger(intscale.ModePerfectY),
	ScaleRatio:            ScalerContain(false),
	ScaleRatioUpscale:     ScalerContain(true),
}

// Scaling is a ScaleMethod with the aspect ratio it corrects to.
type Scaling struct {
	Method ScaleMethod
	Aspect intscale.Aspect
}

// Scale places an image of the given size in area.
func (s Scaling) Scale(img, area Dimensions) (Geometry, error) {
	scaler, ok := scalers[s.Method]
	if !ok {
		return Geometry{}, fmt.Errorf("%w: scale method %d", intscale.ErrInvalidArgument, s.Method)
	}

	return scaler(Geometry{Image: img, Area: area}, s.Aspect)
}
