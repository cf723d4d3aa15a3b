package upscale

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/frizinak/intscale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red   = color.NRGBA{255, 0, 0, 255}
	green = color.NRGBA{0, 255, 0, 255}
	blue  = color.NRGBA{0, 0, 255, 255}
	white = color.NRGBA{255, 255, 255, 255}
)

func checker() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, red)
	img.SetNRGBA(1, 0, green)
	img.SetNRGBA(0, 1, blue)
	img.SetNRGBA(1, 1, white)
	return img
}

func TestResizeBlocks(t *testing.T) {
	src := checker()
	r := intscale.Ratios{X: 3, Y: 2}
	s := r.Apply(intscale.Dimensions{W: 2, H: 2})

	dst := Resize(src, s)
	require.Equal(t, 6, dst.Bounds().Dx())
	require.Equal(t, 4, dst.Bounds().Dy())

	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			want := src.NRGBAAt(x/r.X, y/r.Y)
			assert.Equal(t, want, dst.NRGBAAt(x, y), "pixel %d,%d", x, y)
		}
	}
}

func TestRenderFill(t *testing.T) {
	area := intscale.Dimensions{W: 10, H: 6}
	s := intscale.Size{Width: 4, Height: 4}
	bg := color.NRGBA{1, 2, 3, 255}

	img := Render(checker(), area, s, Options{Fill: true, Background: bg})
	require.Equal(t, image.Rect(0, 0, 10, 6), img.Bounds())

	assert.Equal(t, bg, img.NRGBAAt(0, 0))
	assert.Equal(t, bg, img.NRGBAAt(2, 2))
	assert.Equal(t, red, img.NRGBAAt(3, 1))
	assert.Equal(t, white, img.NRGBAAt(6, 4))
	assert.Equal(t, bg, img.NRGBAAt(7, 4))
	assert.Equal(t, bg, img.NRGBAAt(9, 5))
}

func TestRenderNoFill(t *testing.T) {
	img := Render(checker(), intscale.Dimensions{W: 10, H: 6}, intscale.Size{Width: 4, Height: 2}, Options{})
	assert.Equal(t, image.Rect(0, 0, 4, 2), img.Bounds())
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, Save(Resize(checker(), intscale.Size{Width: 8, Height: 8}), path))

	img, err := imaging.Open(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 8), img.Bounds())

	assert.Error(t, Save(checker(), filepath.Join(t.TempDir(), "out.unknown")))
}

func TestEncode(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, Encode(buf, checker()))
	img, err := png.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, 2, img.Bounds().Dx())
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in string
		c  color.NRGBA
	}{
		{"#000000", color.NRGBA{0, 0, 0, 255}},
		{"ff8000", color.NRGBA{255, 128, 0, 255}},
		{"#fff", color.NRGBA{255, 255, 255, 255}},
		{"#10203040", color.NRGBA{16, 32, 48, 64}},
		{" #8a0 ", color.NRGBA{136, 170, 0, 255}},
	}
	for _, tt := range tests {
		c, err := ParseColor(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.c, c, tt.in)
	}

	for _, in := range []string{"", "#12", "#zzzzzz", "#zzz", "#1234567", "#102030zz", "#1020303040"} {
		_, err := ParseColor(in)
		assert.ErrorIs(t, err, ErrInvalidColor, in)
	}
}
