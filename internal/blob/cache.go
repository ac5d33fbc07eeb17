package blob

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/golang/groupcache/lru"
	"golang.org/x/sync/singleflight"

	"github.com/opendataloader-project/odlsite/internal/logfields"
	"github.com/opendataloader-project/odlsite/internal/metrics"
)

// Cache wraps a Source with a bounded LRU of fetched objects and collapses
// concurrent fetches of the same key into one.
type Cache struct {
	src      Source
	group    singleflight.Group
	mu       sync.Mutex
	entries  *lru.Cache
	timeout  time.Duration
	recorder metrics.Recorder
}

// CacheOption customizes a Cache.
type CacheOption func(*Cache)

// WithRecorder reports hits, misses and fetch durations.
func WithRecorder(r metrics.Recorder) CacheOption {
	return func(c *Cache) {
		if r != nil {
			c.recorder = r
		}
	}
}

// WithFetchTimeout bounds a shared fetch once it is detached from its first caller.
func WithFetchTimeout(d time.Duration) CacheOption {
	return func(c *Cache) { c.timeout = d }
}

// NewCache keeps at most maxEntries objects. Zero disables retention but keeps
// fetch deduplication.
func NewCache(src Source, maxEntries int, opts ...CacheOption) *Cache {
	c := &Cache{
		src:      src,
		timeout:  30 * time.Second,
		recorder: metrics.NoopRecorder{},
	}
	if maxEntries > 0 {
		c.entries = lru.New(maxEntries)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns the object for key. A caller whose context ends stops waiting,
// while the shared fetch keeps going for other waiters.
func (c *Cache) Fetch(ctx context.Context, key string) ([]byte, error) {
	if data, ok := c.get(key); ok {
		c.recorder.IncBlobCache(true)
		return data, nil
	}
	c.recorder.IncBlobCache(false)

	ch := c.group.DoChan(key, func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()

		start := time.Now()
		data, err := c.src.Fetch(fctx, key)
		c.recorder.ObserveBlobFetch(dataTypeOf(key), time.Since(start), metrics.ResultOf(err))
		if err != nil {
			slog.DebugContext(ctx, "Blob fetch failed", logfields.Object(key), logfields.Error(err))
			return nil, err
		}
		c.put(key, data)
		return data, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

// Len reports the number of retained objects.
func (c *Cache) Len() int {
	if c.entries == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Len()
}

func (c *Cache) get(key string) ([]byte, bool) {
	if c.entries == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries.Get(key)
	if !ok {
		return nil, false
	}
	return v.([]byte), true
}

func (c *Cache) put(key string, data []byte) {
	if c.entries == nil {
		return
	}
	c.mu.Lock()
	c.entries.Add(key, data)
	c.mu.Unlock()
}

// dataTypeOf derives a low-cardinality label from the key's extension.
func dataTypeOf(key string) string {
	for i := len(key) - 1; i >= 0 && key[i] != '/'; i-- {
		if key[i] == '.' {
			return key[i+1:]
		}
	}
	return "unknown"
}
