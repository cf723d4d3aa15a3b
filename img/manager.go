// Package img resolves image URIs to local files and decodes them.
package img

import (
	"context"
	"errors"
	"fmt"
	"image"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/disintegration/imaging"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var ErrNoHandler = errors.New("no handler")

// Source is a local file an URI resolved to. Temp files are removed by
// Manager.Cleanup.
type Source struct {
	Path string
	Temp bool
}

// Handler resolves the URIs it supports, ok is false for all others.
type Handler interface {
	Resolve(ctx context.Context, u *url.URL, dir string) (src Source, ok bool, err error)
}

type Manager struct {
	rw       sync.RWMutex
	handlers []Handler
	temp     []string
	dir      string
	mkdir    sync.Once
	mkdirErr error
}

func NewManager(dir string, handlers ...Handler) *Manager {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "intscale")
	}

	return &Manager{handlers: handlers, dir: dir}
}

func (m *Manager) Register(h Handler) {
	m.rw.Lock()
	m.handlers = append(m.handlers, h)
	m.rw.Unlock()
}

// Resolve returns the path of a local file containing the resource uri
// points to.
func (m *Manager) Resolve(ctx context.Context, uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", err
	}

	m.rw.RLock()
	handlers := make([]Handler, len(m.handlers))
	copy(handlers, m.handlers)
	m.rw.RUnlock()

	m.mkdir.Do(func() { m.mkdirErr = os.MkdirAll(m.dir, 0700) })
	if m.mkdirErr != nil {
		return "", m.mkdirErr
	}

	for _, h := range handlers {
		src, ok, err := h.Resolve(ctx, u, m.dir)
		if err != nil {
			return "", fmt.Errorf("%w: '%s'", err, uri)
		}
		if !ok {
			continue
		}

		if src.Temp {
			m.rw.Lock()
			m.temp = append(m.temp, src.Path)
			m.rw.Unlock()
		}

		return src.Path, nil
	}

	return "", fmt.Errorf("%w: '%s'", ErrNoHandler, uri)
}

// Open resolves and decodes uri, rotating it according to its EXIF
// orientation.
func (m *Manager) Open(ctx context.Context, uri string) (image.Image, error) {
	path, err := m.Resolve(ctx, uri)
	if err != nil {
		return nil, err
	}

	i, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode '%s': %w", uri, err)
	}
	return i, nil
}

// Cleanup removes all temporary files, the last error encountered is
// returned.
func (m *Manager) Cleanup() error {
	m.rw.Lock()
	temp := m.temp
	m.temp = nil
	m.rw.Unlock()

	var gerr error
	for _, f := range temp {
		if err := os.Remove(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			gerr = err
		}
	}

	return gerr
}

var DefaultManager = NewManager("", HTTPH, FileH)
