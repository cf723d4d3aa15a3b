package intscale

import "math"

// Size is the resulting size of a scaled image in pixels.
type Size struct {
	Width, Height int
}

// Dimensions returns s as Dimensions.
func (s Size) Dimensions() Dimensions { return Dimensions{W: s.Width, H: s.Height} }

// Offset returns the position of the top-left corner that centers s in
// area. Either coordinate is negative when s overflows area.
func (s Size) Offset(area Dimensions) (x, y int) {
	return (area.W - s.Width) / 2, (area.H - s.Height) / 2
}

// CalculateSize calculates the size of the image scaled with the ratio
// returned by CalculateRatio (square pixels).
func CalculateSize(areaWidth, areaHeight, imageWidth, imageHeight int) (Size, error) {
	r, err := CalculateRatio(areaWidth, areaHeight, imageWidth, imageHeight)
	if err != nil {
		return Size{}, err
	}

	return Size{Width: imageWidth * r, Height: imageHeight * r}, nil
}

// CalculateSizeCorrected calculates the size of the image scaled with the
// ratios returned by CalculateRatios.
func CalculateSizeCorrected(
	areaWidth, areaHeight, imageWidth, imageHeight int,
	aspectX, aspectY float64,
) (Size, error) {
	r, err := CalculateRatios(areaWidth, areaHeight, imageWidth, imageHeight, aspectX, aspectY)
	if err != nil {
		return Size{}, err
	}

	return Size{Width: imageWidth * r.X, Height: imageHeight * r.Y}, nil
}

// CalculateSizeCorrectedPerfectY calculates the size of an image with the
// given height scaled by an integer vertical ratio, while its width is
// derived from the aspect ratio and therefore scaled by a possibly
// fractional amount. Only the height is used of the source image, its width
// is imageHeight * aspectX / aspectY.
func CalculateSizeCorrectedPerfectY(
	areaWidth, areaHeight, imageHeight int,
	aspectX, aspectY float64,
) (Size, error) {
	if err := checkPositive("area width", areaWidth); err != nil {
		return Size{}, err
	}
	if err := checkPositive("area height", areaHeight); err != nil {
		return Size{}, err
	}
	if err := checkPositive("image height", imageHeight); err != nil {
		return Size{}, err
	}
	if err := checkAspect(aspectX, aspectY); err != nil {
		return Size{}, err
	}

	imageWidth := float64(imageHeight) * aspectX / aspectY

	areaSize, imageSize := float64(areaWidth), imageWidth
	if float64(areaHeight)*imageWidth < float64(areaWidth)*float64(imageHeight) {
		areaSize, imageSize = float64(areaHeight), float64(imageHeight)
	}

	r := atLeastOne(int(math.Floor(areaSize / imageSize)))

	width := int(math.Round(imageWidth * float64(r)))
	if width > areaWidth {
		width--
	}

	return Size{Width: width, Height: imageHeight * r}, nil
}
