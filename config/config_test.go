package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/frizinak/intscale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, e := range env {
		t.Setenv(e.key, "")
	}

	if content == "" {
		return
	}
	path := filepath.Join(dir, "intscale", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestLoadMissing(t *testing.T) {
	setup(t, "")
	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Config{}, c)

	s, err := c.Settings()
	require.NoError(t, err)
	assert.Equal(t, intscale.Dimensions{}, s.Area)
	assert.Equal(t, intscale.ModeSquare, s.Mode)
	assert.Equal(t, color.NRGBA{A: 255}, s.Background)
}

func TestLoadFileAndEnv(t *testing.T) {
	setup(t, `
area = "1920x1080"
aspect = "4:3"
mode = "corrected"
background = "#202020"
`)
	t.Setenv("INTSCALE_MODE", "perfect-y")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Config{
		Area:       "1920x1080",
		Aspect:     "4:3",
		Mode:       "perfect-y",
		Background: "#202020",
	}, c)

	s, err := c.Settings()
	require.NoError(t, err)
	assert.Equal(t, Settings{
		Area:       intscale.Dimensions{W: 1920, H: 1080},
		Aspect:     intscale.Aspect{X: 4, Y: 3},
		Mode:       intscale.ModePerfectY,
		Background: color.NRGBA{32, 32, 32, 255},
	}, s)
}

func TestLoadMalformed(t *testing.T) {
	setup(t, `area = `)
	_, err := Load()
	assert.Error(t, err)
}

func TestSettingsInvalid(t *testing.T) {
	for _, c := range []Config{
		{Area: "big"},
		{Aspect: "0:1"},
		{Mode: "smooth"},
		{Background: "red"},
	} {
		_, err := c.Settings()
		assert.Error(t, err, "%+v", c)
	}

	_, err := Config{Mode: "smooth"}.Settings()
	assert.ErrorIs(t, err, intscale.ErrInvalidArgument)
}
