package img

import (
	"context"
	"fmt"
	"net/url"
	"os"
)

type fileHandler struct{}

func (h *fileHandler) Resolve(_ context.Context, u *url.URL, _ string) (src Source, ok bool, err error) {
	if (u.Scheme != "" && u.Scheme != "file") || u.Host != "" {
		return
	}

	ok = true
	stat, err := os.Stat(u.Path)
	if err != nil {
		return
	}
	if stat.IsDir() {
		err = fmt.Errorf("'%s' is a directory", u.Path)
		return
	}

	src.Path = u.Path
	return
}

var FileH Handler = &fileHandler{}
