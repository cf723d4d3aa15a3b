// Package intscale calculates integer scaling ratios and resulting sizes for
// upscaling small images, such as emulator output or pixel art, into a
// larger area without blurring, optionally correcting the aspect ratio for
// images with non-square pixels.
package intscale

import "math"

// tieThreshold is the aspect error difference below which the floor and
// ceiling candidates are considered equally good.
const tieThreshold = .001

// Ratios holds the horizontal and vertical integer scaling ratios.
type Ratios struct {
	X, Y int
}

// Apply scales d by r.
func (r Ratios) Apply(d Dimensions) Size {
	return Size{Width: d.W * r.X, Height: d.H * r.Y}
}

// CalculateRatio calculates an integer scaling ratio common for both axes
// (square pixels). The result is at least 1, even when the image is larger
// than the area, in which case the scaled image does not fit.
func CalculateRatio(areaWidth, areaHeight, imageWidth, imageHeight int) (int, error) {
	if err := checkDimensions(areaWidth, areaHeight, imageWidth, imageHeight); err != nil {
		return 0, err
	}

	return ratio(areaWidth, areaHeight, imageWidth, imageHeight), nil
}

func ratio(areaWidth, areaHeight, imageWidth, imageHeight int) int {
	areaSize, imageSize := areaWidth, imageWidth
	if areaHeight*imageWidth < areaWidth*imageHeight {
		areaSize, imageSize = areaHeight, imageHeight
	}

	return atLeastOne(areaSize / imageSize)
}

// CalculateRatios calculates integer scaling ratios, potentially different
// for the X and Y axes, that make the scaled image approximate the aspect
// ratio aspectX:aspectY as closely as possible (rectangular pixels).
func CalculateRatios(
	areaWidth, areaHeight, imageWidth, imageHeight int,
	aspectX, aspectY float64,
) (Ratios, error) {
	if err := checkDimensions(areaWidth, areaHeight, imageWidth, imageHeight); err != nil {
		return Ratios{}, err
	}
	if err := checkAspect(aspectX, aspectY); err != nil {
		return Ratios{}, err
	}

	return ratios(areaWidth, areaHeight, imageWidth, imageHeight, aspectX, aspectY), nil
}

func ratios(
	areaWidth, areaHeight, imageWidth, imageHeight int,
	aspectX, aspectY float64,
) Ratios {
	if (Aspect{X: aspectX, Y: aspectY}).Matches(Dimensions{W: imageWidth, H: imageHeight}) {
		r := ratio(areaWidth, areaHeight, imageWidth, imageHeight)
		return Ratios{X: r, Y: r}
	}

	maxRatioX := areaWidth / imageWidth
	maxRatioY := areaHeight / imageHeight
	maxWidth := imageWidth * maxRatioX
	maxHeight := imageHeight * maxRatioY
	maxWidthAspectY := float64(maxWidth) * aspectY
	maxHeightAspectX := float64(maxHeight) * aspectX

	if maxWidthAspectY == maxHeightAspectX {
		return Ratios{X: atLeastOne(maxRatioX), Y: atLeastOne(maxRatioY)}
	}

	// Axis A keeps its maximum integer ratio, axis B is solved for the
	// target aspect ratio and rounded whichever way distorts least.
	widthIsA := maxWidthAspectY < maxHeightAspectX

	ratioA, maxSizeA, imageSizeB := maxRatioY, maxHeight, imageWidth
	aspectA, aspectB := aspectY, aspectX
	if widthIsA {
		ratioA, maxSizeA, imageSizeB = maxRatioX, maxWidth, imageHeight
		aspectA, aspectB = aspectX, aspectY
	}

	fract := float64(maxSizeA) * aspectB / aspectA / float64(imageSizeB)
	floor, ceil := math.Floor(fract), math.Ceil(fract)

	parFloor := floor / float64(ratioA)
	parCeil := ceil / float64(ratioA)
	if widthIsA {
		parFloor, parCeil = 1/parFloor, 1/parCeil
	}

	common := float64(imageWidth) * aspectY / aspectX / float64(imageHeight)
	// Explicit conversions prevent fused multiply-add, keeping results
	// identical across architectures.
	errFloor := math.Abs(1 - float64(common*parFloor))
	errCeil := math.Abs(1 - float64(common*parCeil))

	ratioB := ceil
	if math.Abs(errFloor-errCeil) < tieThreshold {
		a := float64(ratioA)
		if math.Abs(a-floor) < math.Abs(a-ceil) {
			ratioB = floor
		}
	} else if errFloor < errCeil {
		ratioB = floor
	}

	r := Ratios{X: int(ratioB), Y: ratioA}
	if widthIsA {
		r = Ratios{X: ratioA, Y: int(ratioB)}
	}

	r.X, r.Y = atLeastOne(r.X), atLeastOne(r.Y)
	return r
}

func atLeastOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
