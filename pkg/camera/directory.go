package camera

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

type directoryCamera struct {
	mu    sync.Mutex
	files []string
	next  int
}

// NewDirectoryCamera replays the images of dir in lexical order, wrapping around
// once exhausted.
func NewDirectoryCamera(dir string) (ICamera, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".jpg", ".jpeg", ".png":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no images in %s", ErrUnavailable, dir)
	}
	sort.Strings(files)

	return &directoryCamera{files: files}, nil
}

func (c *directoryCamera) Capture(ctx context.Context) (*Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	path := c.files[c.next%len(c.files)]
	c.next++
	c.mu.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return NewFrame(data, time.Now())
}

func (c *directoryCamera) Close() error {
	return nil
}
