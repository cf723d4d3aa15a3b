package intscale

import "fmt"

// Mode selects which of the size calculations Fit uses.
type Mode byte

const (
	// ModeSquare ignores the aspect ratio and scales both axes equally.
	ModeSquare Mode = iota
	// ModeCorrected uses per axis integer ratios.
	ModeCorrected
	// ModePerfectY keeps the vertical ratio integer and derives the width
	// from the aspect ratio.
	ModePerfectY
)

var modeNames = map[Mode]string{
	ModeSquare:    "square",
	ModeCorrected: "corrected",
	ModePerfectY:  "perfect-y",
}

func (m Mode) String() string {
	if n, ok := modeNames[m]; ok {
		return n
	}
	return fmt.Sprintf("Mode(%d)", m)
}

// ParseMode is the inverse of Mode.String.
func ParseMode(s string) (Mode, error) {
	for m, n := range modeNames {
		if n == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown mode '%s'", ErrInvalidArgument, s)
}

// Fit calculates the size image should be scaled to in order to fit area
// using mode. aspect is ignored for ModeSquare and image.W is ignored for
// ModePerfectY.
func Fit(area, image Dimensions, aspect Aspect, mode Mode) (Size, error) {
	switch mode {
	case ModeSquare:
		return CalculateSize(area.W, area.H, image.W, image.H)
	case ModeCorrected:
		return CalculateSizeCorrected(area.W, area.H, image.W, image.H, aspect.X, aspect.Y)
	case ModePerfectY:
		return CalculateSizeCorrectedPerfectY(area.W, area.H, image.H, aspect.X, aspect.Y)
	}

	return Size{}, fmt.Errorf("%w: unknown mode %s", ErrInvalidArgument, mode)
}
