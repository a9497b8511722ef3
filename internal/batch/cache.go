package batch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/cwbudde/algo-voicefx/dsp/buffer"
	"github.com/cwbudde/algo-voicefx/internal/observe"
	"github.com/cwbudde/algo-voicefx/internal/wavio"
)

// inputCache decodes each input path at most once per Run. Cached buffers
// are shared read-only between requests.
type inputCache struct {
	metrics *observe.Metrics

	mu      sync.Mutex
	entries map[string]*cacheEntry
}

type cacheEntry struct {
	once  sync.Once
	audio *buffer.Audio
	err   error
}

func newInputCache(m *observe.Metrics) *inputCache {
	return &inputCache{metrics: m, entries: make(map[string]*cacheEntry)}
}

func (c *inputCache) load(ctx context.Context, path string) (*buffer.Audio, error) {
	c.mu.Lock()
	e, ok := c.entries[path]
	if !ok {
		e = &cacheEntry{}
		c.entries[path] = e
	}
	c.mu.Unlock()

	e.once.Do(func() {
		start := time.Now()
		e.audio, e.err = decode(path)
		c.metrics.RecordDecode(ctx, time.Since(start))
	})

	return e.audio, e.err
}

func decode(path string) (*buffer.Audio, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingInput, path)
		}

		return nil, err
	}

	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", ErrMissingInput, path)
	}

	frames, channels, sampleRate, err := wavio.Decode(path)
	if err != nil {
		return nil, err
	}

	a, err := buffer.Deinterleave(frames, channels, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", wavio.ErrDecode, path, err)
	}

	return a, nil
}
