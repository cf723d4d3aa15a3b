package intscale

import (
	"fmt"
	"strconv"
	"strings"
)

// Dimensions of an area or image in pixels.
type Dimensions struct {
	W, H int
}

func (d Dimensions) String() string { return fmt.Sprintf("%dx%d", d.W, d.H) }

// ParseDimensions parses "WxH", e.g. "1920x1080".
func ParseDimensions(s string) (Dimensions, error) {
	d := Dimensions{}
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "x")
	if len(parts) != 2 {
		return d, fmt.Errorf("%w: '%s' is not of the form WIDTHxHEIGHT", ErrInvalidArgument, s)
	}

	var err error
	if d.W, err = strconv.Atoi(parts[0]); err != nil {
		return d, fmt.Errorf("%w: width in '%s'", ErrInvalidArgument, s)
	}
	if d.H, err = strconv.Atoi(parts[1]); err != nil {
		return d, fmt.Errorf("%w: height in '%s'", ErrInvalidArgument, s)
	}

	if err = checkPositive("width", d.W); err != nil {
		return d, err
	}
	return d, checkPositive("height", d.H)
}

// Aspect is the width to height ratio a scaled image should be displayed
// at, e.g. 4:3 for a 320x200 image made for a 4:3 screen. An image whose
// own ratio equals the aspect ratio has square pixels.
type Aspect struct {
	X, Y float64
}

// AspectOf returns the aspect ratio of d itself.
func AspectOf(d Dimensions) Aspect { return Aspect{float64(d.W), float64(d.H)} }

func (a Aspect) String() string {
	return strconv.FormatFloat(a.X, 'g', -1, 64) + ":" + strconv.FormatFloat(a.Y, 'g', -1, 64)
}

// Matches reports whether an image of size d already has aspect ratio a.
func (a Aspect) Matches(d Dimensions) bool {
	return float64(d.W)*a.Y == float64(d.H)*a.X
}

// ParseAspect parses "X:Y", "X/Y" or a single number R meaning "R:1".
func ParseAspect(s string) (Aspect, error) {
	s = strings.TrimSpace(s)
	sep := strings.IndexAny(s, ":/")
	a := Aspect{Y: 1}

	var err error
	if sep == -1 {
		a.X, err = strconv.ParseFloat(s, 64)
	} else {
		a.X, err = strconv.ParseFloat(s[:sep], 64)
		if err == nil {
			a.Y, err = strconv.ParseFloat(s[sep+1:], 64)
		}
	}
	if err != nil {
		return a, fmt.Errorf("%w: '%s' is not an aspect ratio", ErrInvalidArgument, s)
	}

	return a, checkAspect(a.X, a.Y)
}
