package img

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// HTTPHandler downloads http and https URIs into the manager's directory,
// named after the hash of the URI so repeated requests are served from disk.
type HTTPHandler struct {
	Client *http.Client
}

func (h *HTTPHandler) Resolve(ctx context.Context, u *url.URL, dir string) (src Source, ok bool, err error) {
	if u.Scheme != "http" && u.Scheme != "https" {
		return
	}

	ok = true
	src.Temp = true
	hash := sha256.Sum256([]byte(u.String()))
	src.Path = filepath.Join(dir, base64.RawURLEncoding.EncodeToString(hash[:]))
	if stat, _ := os.Stat(src.Path); stat != nil {
		return
	}
	err = h.get(ctx, u, src.Path)
	return
}

func (h *HTTPHandler) get(ctx context.Context, u *url.URL, dest string) error {
	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}

	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status '%s'", res.Status)
	}

	tmp := dest + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	_, err = io.Copy(f, res.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, dest)
}

var HTTPH Handler = &HTTPHandler{Client: &http.Client{Timeout: 30 * time.Second}}
