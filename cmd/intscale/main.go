package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/frizinak/intscale"
	"github.com/frizinak/intscale/config"
	"github.com/frizinak/intscale/img"
	"github.com/frizinak/intscale/upscale"
)

type flags struct {
	area, aspect, mode, bg string
	output                 string
	fill, show, verbose    bool
}

type input struct {
	arg  string
	dims intscale.Dimensions
	img  image.Image
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// settings merges the config with the flags, flags take precedence.
func settings(f flags) (config.Settings, error) {
	c, err := config.Load()
	if err != nil {
		return config.Settings{}, err
	}
	if f.area != "" {
		c.Area = f.area
	}
	if f.aspect != "" {
		c.Aspect = f.aspect
	}
	if f.mode != "" {
		c.Mode = f.mode
	}
	if f.bg != "" {
		c.Background = f.bg
	}

	return c.Settings()
}

// aspectFor returns the aspect ratio to correct to, an image is assumed to
// have square pixels if none is configured.
func aspectFor(s config.Settings, d intscale.Dimensions) intscale.Aspect {
	if s.Aspect == (intscale.Aspect{}) {
		return intscale.AspectOf(d)
	}
	return s.Aspect
}

func load(ctx context.Context, l *log.Logger, m *img.Manager, args []string) ([]input, error) {
	in := make([]input, 0, len(args))
	for _, arg := range args {
		if d, err := intscale.ParseDimensions(arg); err == nil {
			in = append(in, input{arg: arg, dims: d})
			continue
		}

		start := time.Now()
		i, err := m.Open(ctx, arg)
		if err != nil {
			return nil, err
		}
		b := i.Bounds()
		d := intscale.Dimensions{W: b.Dx(), H: b.Dy()}
		l.Debug("loaded", "image", arg, "size", d, "took", time.Since(start).Round(time.Millisecond))
		in = append(in, input{arg: arg, dims: d, img: i})
	}

	return in, nil
}

func describe(w io.Writer, s config.Settings, in input) (intscale.Size, error) {
	aspect := aspectFor(s, in.dims)
	a, i := s.Area, in.dims

	var ratio string
	switch s.Mode {
	case intscale.ModeSquare:
		r, err := intscale.CalculateRatio(a.W, a.H, i.W, i.H)
		if err != nil {
			return intscale.Size{}, err
		}
		ratio = fmt.Sprintf("%dx", r)
	case intscale.ModeCorrected:
		r, err := intscale.CalculateRatios(a.W, a.H, i.W, i.H, aspect.X, aspect.Y)
		if err != nil {
			return intscale.Size{}, err
		}
		ratio = fmt.Sprintf("%dx%d", r.X, r.Y)
	}

	size, err := intscale.Fit(a, i, aspect, s.Mode)
	if err != nil {
		return size, err
	}
	if s.Mode == intscale.ModePerfectY {
		ratio = fmt.Sprintf("%gx%d", float64(size.Width)/float64(i.W), size.Height/i.H)
	}

	fmt.Fprintf(w, "%s\t%s\t%s@%s\t%s\t%dx%d\n", in.arg, i, a, aspect, ratio, size.Width, size.Height)
	return size, nil
}

func run(ctx context.Context, l *log.Logger, stdout io.Writer, f flags, args []string) error {
	if len(args) == 0 {
		return errors.New("no images or sizes given")
	}

	s, err := settings(f)
	if err != nil {
		return err
	}

	m := img.DefaultManager
	defer func() {
		if err := m.Cleanup(); err != nil {
			l.Warn("cleanup failed", "err", err)
		}
	}()

	in, err := load(ctx, l, m, args)
	if err != nil {
		return err
	}

	if f.show {
		return preview(l, s, in)
	}

	if s.Area == (intscale.Dimensions{}) {
		return errors.New("no area given, use -area or set it in the config")
	}
	if f.output != "" && (len(in) != 1 || in[0].img == nil) {
		return errors.New("-o requires exactly one image")
	}

	desc := stdout
	if f.output == "-" {
		desc = io.Discard
	}

	l.Debug("scaling", "area", s.Area, "mode", s.Mode, "aspect", s.Aspect)
	for _, i := range in {
		size, err := describe(desc, s, i)
		if err != nil {
			return fmt.Errorf("%s: %w", i.arg, err)
		}

		if f.output == "" {
			continue
		}

		start := time.Now()
		out := upscale.Render(i.img, s.Area, size, upscale.Options{Fill: f.fill, Background: s.Background})
		if f.output == "-" {
			if err := upscale.Encode(stdout, out); err != nil {
				return err
			}
			l.Debug("encoded", "size", out.Bounds().Size(), "took", time.Since(start).Round(time.Millisecond))
			continue
		}
		if err := upscale.Save(out, f.output); err != nil {
			return err
		}
		l.Info("saved", "file", f.output, "size", out.Bounds().Size(), "took", time.Since(start).Round(time.Millisecond))
	}

	return nil
}

func main() {
	var f flags
	flag.StringVar(&f.area, "area", "", "area to fit in, WIDTHxHEIGHT")
	flag.StringVar(&f.aspect, "aspect", "", "aspect ratio to correct to, X:Y (default: that of the image)")
	flag.StringVar(&f.mode, "mode", "", "square, corrected or perfect-y (default square)")
	flag.StringVar(&f.output, "o", "", "write the scaled image to this file, - writes PNG to stdout")
	flag.BoolVar(&f.fill, "fill", false, "center the scaled image on an area sized background")
	flag.StringVar(&f.bg, "bg", "", "background color for -fill, #rrggbb")
	flag.BoolVar(&f.show, "show", false, "preview in the terminal window (X11)")
	flag.BoolVar(&f.verbose, "v", false, "verbose logging")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] WIDTHxHEIGHT|IMAGE...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	l := newLogger(os.Stderr, f.verbose)
	if err := run(context.Background(), l, os.Stdout, f, flag.Args()); err != nil {
		l.Error(err)
		os.Exit(1)
	}
}
