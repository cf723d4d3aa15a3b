package main

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/frizinak/intscale"
	"github.com/frizinak/intscale/config"
	"github.com/frizinak/intscale/x"
)

// previewArea returns the cells the image is shown in, the bottom line is
// kept for the status line.
func previewArea(cols, lines int) image.Rectangle {
	if lines > 1 {
		lines--
	}
	return image.Rect(0, 0, cols, lines)
}

// view selects how the preview scales, s cycles through them.
type view byte

const (
	viewInteger view = iota
	viewSmooth
	viewSource
	views
)

// scalingFor returns the integer scaling for the configured mode, or for
// comparison a smooth scale to the full area or the image at its own size.
func scalingFor(s config.Settings, d intscale.Dimensions, v view) x.Scaling {
	switch v {
	case viewSmooth:
		return x.Scaling{Method: x.ScaleRatioUpscale}
	case viewSource:
		return x.Scaling{Method: x.ScaleRatio}
	}
	return x.Scaling{Method: x.MethodFor(s.Mode), Aspect: aspectFor(s, d)}
}

func status(ix, n int, in input, sc x.Scaling, g x.Geometry) string {
	var method string
	switch sc.Method {
	case x.ScaleRatioUpscale:
		method = "smooth"
	case x.ScaleRatio:
		method = "source"
	default:
		method = fmt.Sprintf("integer@%s", sc.Aspect)
	}
	return fmt.Sprintf("[%d/%d] %s %s -> %s %s", ix+1, n, in.arg, in.dims, g.Image, method)
}

// poll calls fn every interval until done is closed.
func poll(done <-chan struct{}, interval time.Duration, fn func()) {
	tick := time.NewTicker(interval)
	defer tick.Stop()
	for {
		fn()
		select {
		case <-done:
			return
		case <-tick.C:
		}
	}
}

// preview shows the images one at a time in the terminal window until q is
// pressed. j or space shows the next image, k the previous one, s cycles
// between integer, smooth and unscaled display and h hides the image.
func preview(l *log.Logger, s config.Settings, in []input) error {
	imgs := make([]input, 0, len(in))
	for _, i := range in {
		if i.img != nil {
			imgs = append(imgs, i)
		}
	}
	if len(imgs) == 0 {
		return errors.New("-show requires at least one image")
	}

	t, err := x.NewFromEnv()
	if err != nil {
		return err
	}
	defer t.Close()

	term := t.Console()
	if err := term.SetRaw(); err != nil {
		l.Warn("could not set raw mode", "err", err)
	}
	defer term.Reset()

	done := make(chan struct{})
	defer close(done)

	v := t.Viewport()
	v.OnError = func(err error) { l.Error("draw failed", "err", err) }

	var (
		sem    sync.Mutex
		ix     = -1
		mode   view
		hidden bool
		cells  image.Rectangle
		win    x.Dimensions
		line   int
	)

	printStatus := func(w io.Writer) {
		if line == 0 || ix < 0 {
			return
		}
		sc := scalingFor(s, imgs[ix].dims, mode)
		g, err := v.Geometry()
		if err != nil {
			return
		}
		fmt.Fprintf(w, "\x1b[%d;1H\x1b[2K%s", line, status(ix, len(imgs), imgs[ix], sc, g))
	}

	resize := func() {
		sem.Lock()
		defer sem.Unlock()

		d, err := t.Size()
		if err != nil {
			l.Debug("window size", "err", err)
			return
		}
		ws, err := term.Size()
		c := previewArea(int(ws.Width), int(ws.Height))
		if c == cells && d == win {
			return
		}
		cells, win, line = c, d, 0

		if err == nil && c.Empty() {
			err = errors.New("console reports no size")
		}
		if err == nil {
			err = v.SetAreaTerminal(c)
		}
		if err != nil {
			l.Debug("no character size, using the whole window", "err", err)
			v.SetArea(image.Rect(0, 0, d.W, d.H))
		} else if int(ws.Height) > c.Dy() {
			line = int(ws.Height)
		}

		l.Debug("area", "window", d, "cells", c.Size())
		v.Render()
		printStatus(os.Stdout)
	}

	show := func(next int) {
		sem.Lock()
		defer sem.Unlock()

		i := imgs[next]
		if next != ix {
			ix = next
			v.SetImage(x.NewImage(i.img))
		}
		v.SetScaling(scalingFor(s, i.dims, mode))
		v.Render()
		if g, err := v.Geometry(); err == nil {
			l.Debug("showing", "image", i.arg, "size", g.Image, "offset", g.Offset)
		}
		printStatus(os.Stdout)
	}

	toggle := func() {
		sem.Lock()
		hidden = !hidden
		h := hidden
		sem.Unlock()
		if h {
			v.Hide()
			return
		}
		v.Show()
	}

	resize()
	show(0)
	v.Show()

	quit := make(chan error, 1)
	exit := func(err error) {
		select {
		case quit <- err:
		case <-done:
		}
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sig)

	go poll(done, time.Millisecond*200, resize)

	go func() {
		for {
			if err := t.Render(true); err != nil {
				exit(err)
				return
			}
		}
	}()

	go func() {
		input := bufio.NewReader(os.Stdin)
		cur := 0
		for {
			n, err := input.ReadByte()
			if err != nil {
				exit(err)
				return
			}

			switch n {
			case 3, 'q':
				exit(nil)
				return
			case 'j', ' ':
				if cur < len(imgs)-1 {
					cur++
				}
			case 'k':
				if cur > 0 {
					cur--
				}
			case 's':
				sem.Lock()
				mode = (mode + 1) % views
				sem.Unlock()
			case 'h':
				toggle()
				continue
			default:
				continue
			}
			show(cur)
		}
	}()

	select {
	case <-sig:
		return nil
	case err := <-quit:
		return err
	}
}
