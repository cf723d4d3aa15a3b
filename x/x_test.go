package x

import (
	"encoding/binary"
	"image"
	"image/color"
	"testing"

	"github.com/frizinak/intscale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalingInteger(t *testing.T) {
	area := Dimensions{W: 1920, H: 1080}
	img := Dimensions{W: 320, H: 200}

	g, err := Scaling{Method: ScaleInteger}.Scale(img, area)
	require.NoError(t, err)
	assert.Equal(t, Geometry{
		Image:  Dimensions{W: 1600, H: 1000},
		Area:   area,
		Window: Dimensions{W: 1600, H: 1000},
		Offset: image.Pt(160, 40),
	}, g)
	assert.Equal(t, image.Point{}, g.Crop())

	g, err = Scaling{Method: ScaleIntegerCorrected, Aspect: intscale.Aspect{X: 4, Y: 3}}.Scale(img, area)
	require.NoError(t, err)
	assert.Equal(t, Dimensions{W: 1280, H: 1000}, g.Image)
	assert.Equal(t, image.Pt(320, 40), g.Offset)

	g, err = Scaling{Method: ScaleIntegerPerfectY, Aspect: intscale.Aspect{X: 4, Y: 3}}.Scale(img, area)
	require.NoError(t, err)
	assert.Equal(t, Dimensions{W: 1333, H: 1000}, g.Image)
	assert.Equal(t, image.Pt(293, 40), g.Offset)

	_, err = Scaling{Method: ScaleIntegerCorrected}.Scale(img, area)
	assert.ErrorIs(t, err, intscale.ErrInvalidArgument)
}

func TestScalingOverflow(t *testing.T) {
	g, err := Scaling{Method: ScaleInteger}.Scale(Dimensions{W: 320, H: 240}, Dimensions{W: 100, H: 100})
	require.NoError(t, err)
	assert.Equal(t, Dimensions{W: 320, H: 240}, g.Image)
	assert.Equal(t, Dimensions{W: 100, H: 100}, g.Window)
	assert.Equal(t, image.Point{}, g.Offset)
	assert.Equal(t, image.Pt(110, 70), g.Crop())
}

func TestScalingContain(t *testing.T) {
	area := Dimensions{W: 1000, H: 1000}

	g, err := Scaling{Method: ScaleRatio}.Scale(Dimensions{W: 200, H: 100}, area)
	require.NoError(t, err)
	assert.Equal(t, Dimensions{W: 200, H: 100}, g.Image)
	assert.Equal(t, image.Pt(400, 450), g.Offset)

	g, err = Scaling{Method: ScaleRatioUpscale}.Scale(Dimensions{W: 200, H: 100}, area)
	require.NoError(t, err)
	assert.Equal(t, Dimensions{W: 1000, H: 500}, g.Image)

	g, err = Scaling{Method: ScaleRatio}.Scale(Dimensions{W: 500, H: 2000}, area)
	require.NoError(t, err)
	assert.Equal(t, Dimensions{W: 250, H: 1000}, g.Image)

	_, err = Scaling{Method: ScaleRatio}.Scale(Dimensions{}, area)
	assert.ErrorIs(t, err, intscale.ErrInvalidArgument)

	_, err = Scaling{Method: ScaleMethod(99)}.Scale(Dimensions{W: 1, H: 1}, area)
	assert.ErrorIs(t, err, intscale.ErrInvalidArgument)
}

func TestMethodFor(t *testing.T) {
	assert.Equal(t, ScaleInteger, MethodFor(intscale.ModeSquare))
	assert.Equal(t, ScaleIntegerCorrected, MethodFor(intscale.ModeCorrected))
	assert.Equal(t, ScaleIntegerPerfectY, MethodFor(intscale.ModePerfectY))
	assert.False(t, ScaleIntegerPerfectY.Smooth())
	assert.True(t, ScaleRatioUpscale.Smooth())
}

func TestParseResizeIncrement(t *testing.T) {
	value := make([]byte, 18*4)
	binary.LittleEndian.PutUint32(value[9*4:], 7)
	binary.LittleEndian.PutUint32(value[10*4:], 15)

	d, err := parseResizeIncrement(32, value)
	require.NoError(t, err)
	assert.Equal(t, Dimensions{W: 7, H: 15}, d)

	_, err = parseResizeIncrement(32, value[:10*4])
	assert.Error(t, err)

	_, err = parseResizeIncrement(32, make([]byte, 18*4))
	assert.Error(t, err)

	_, err = parseResizeIncrement(0, value)
	assert.Error(t, err)
}

func TestCellSize(t *testing.T) {
	d, err := cellSize(Dimensions{W: 1600, H: 900}, 200, 60)
	require.NoError(t, err)
	assert.Equal(t, Dimensions{W: 8, H: 15}, d)

	_, err = cellSize(Dimensions{W: 1600, H: 900}, 0, 60)
	assert.Error(t, err)

	_, err = cellSize(Dimensions{W: 100, H: 10}, 80, 24)
	assert.Error(t, err)
}

func TestCellsToPixels(t *testing.T) {
	r := cellsToPixels(image.Rect(0, 0, 80, 23), Dimensions{W: 7, H: 15})
	assert.Equal(t, image.Rect(0, 0, 560, 345), r)

	r = cellsToPixels(image.Rect(2, 1, 4, 3), Dimensions{W: 10, H: 20})
	assert.Equal(t, image.Rect(20, 20, 40, 60), r)
}

func TestToBGRA(t *testing.T) {
	src := image.NewNRGBA(image.Rect(5, 5, 7, 6))
	src.SetNRGBA(5, 5, color.NRGBA{10, 20, 30, 255})
	src.SetNRGBA(6, 5, color.NRGBA{200, 100, 50, 0})

	b := ToBGRA(src)
	assert.Equal(t, image.Rect(0, 0, 2, 1), b.Bounds())
	assert.Equal(t, []byte{30, 20, 10, 255, 0, 0, 0, 0}, b.Pix)
	assert.Equal(t, color.RGBA{10, 20, 30, 255}, b.At(0, 0))
	assert.Equal(t, color.RGBA{}, b.At(4, 4))

	b.Set(1, 0, color.RGBA{1, 2, 3, 4})
	assert.Equal(t, []byte{3, 2, 1, 4}, b.Pix[4:])
}

func TestImageResize(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 255})
	src.SetNRGBA(1, 0, color.NRGBA{0, 0, 255, 255})

	img := NewImage(src)
	img.Resize(6, 2, false)
	out := img.BGRA()
	require.Equal(t, image.Rect(0, 0, 6, 2), out.Bounds())
	for y := 0; y < 2; y++ {
		for x := 0; x < 6; x++ {
			want := color.RGBA{255, 0, 0, 255}
			if x >= 3 {
				want = color.RGBA{0, 0, 255, 255}
			}
			assert.Equal(t, want, out.At(x, y), "pixel %d,%d", x, y)
		}
	}

	img.Reset()
	assert.Equal(t, image.Rect(0, 0, 2, 1), img.BGRA().Bounds())
}
