package intscale

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidArgument is wrapped by every error caused by a dimension or
// aspect ratio that can not be scaled with.
var ErrInvalidArgument = errors.New("invalid argument")

func checkPositive(name string, v int) error {
	if v <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidArgument, name, v)
	}
	return nil
}

func checkDimensions(areaWidth, areaHeight, imageWidth, imageHeight int) error {
	if err := checkPositive("area width", areaWidth); err != nil {
		return err
	}
	if err := checkPositive("area height", areaHeight); err != nil {
		return err
	}
	if err := checkPositive("image width", imageWidth); err != nil {
		return err
	}
	return checkPositive("image height", imageHeight)
}

func checkAspect(x, y float64) error {
	for _, v := range []float64{x, y} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return fmt.Errorf("%w: aspect ratio %g:%g", ErrInvalidArgument, x, y)
		}
	}
	return nil
}
