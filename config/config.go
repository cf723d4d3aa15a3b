// Package config loads the defaults used by the intscale command.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/frizinak/intscale"
	"github.com/frizinak/intscale/upscale"
)

type Config struct {
	Area       string `toml:"area"`
	Aspect     string `toml:"aspect"`
	Mode       string `toml:"mode"`
	Background string `toml:"background"`
}

// Settings is a validated Config. A zero Area or Aspect means it was not
// configured.
type Settings struct {
	Area       intscale.Dimensions
	Aspect     intscale.Aspect
	Mode       intscale.Mode
	Background color.NRGBA
}

var env = []struct {
	key string
	set func(*Config, string)
}{
	{"INTSCALE_AREA", func(c *Config, v string) { c.Area = v }},
	{"INTSCALE_ASPECT", func(c *Config, v string) { c.Aspect = v }},
	{"INTSCALE_MODE", func(c *Config, v string) { c.Mode = v }},
	{"INTSCALE_BACKGROUND", func(c *Config, v string) { c.Background = v }},
}

// Path returns the location of the config file.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "intscale", "config.toml"), nil
	}
	h, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(h, ".config", "intscale", "config.toml"), nil
}

// Load reads the config file at Path, a missing file is not an error, and
// overlays the INTSCALE_* environment variables.
func Load() (Config, error) {
	c := Config{}
	path, err := Path()
	if err == nil {
		if c, err = LoadFile(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return c, err
		}
	}

	for _, e := range env {
		if v := os.Getenv(e.key); v != "" {
			e.set(&c, v)
		}
	}

	return c, nil
}

func LoadFile(path string) (Config, error) {
	c := Config{}
	if _, err := toml.DecodeFile(path, &c); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, err
		}
		return c, fmt.Errorf("invalid config '%s': %w", path, err)
	}
	return c, nil
}

// Settings parses and validates all configured values.
func (c Config) Settings() (Settings, error) {
	s := Settings{Background: color.NRGBA{A: 255}}
	var err error
	if c.Area != "" {
		if s.Area, err = intscale.ParseDimensions(c.Area); err != nil {
			return s, fmt.Errorf("area: %w", err)
		}
	}
	if c.Aspect != "" {
		if s.Aspect, err = intscale.ParseAspect(c.Aspect); err != nil {
			return s, fmt.Errorf("aspect: %w", err)
		}
	}
	if c.Mode != "" {
		if s.Mode, err = intscale.ParseMode(c.Mode); err != nil {
			return s, fmt.Errorf("mode: %w", err)
		}
	}
	if c.Background != "" {
		if s.Background, err = upscale.ParseColor(c.Background); err != nil {
			return s, fmt.Errorf("background: %w", err)
		}
	}

	return s, nil
}
