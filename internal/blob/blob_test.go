package blob

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPSource_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/samples/a.md" {
			_, _ = w.Write([]byte("# A"))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL+"/", srv.Client())

	data, err := src.Fetch(context.Background(), "samples/a.md")
	require.NoError(t, err)
	assert.Equal(t, "# A", string(data))

	_, err = src.Fetch(context.Background(), "samples/missing.md")
	require.Error(t, err)
	assert.True(t, IsStatus(err))
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.Code)
}

func TestHTTPSource_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPSource(url, nil).Fetch(context.Background(), "x.md")
	require.Error(t, err)
	assert.False(t, IsStatus(err))
}

type countingSource struct {
	calls   atomic.Int32
	release chan struct{}
	data    []byte
	err     error
}

func (s *countingSource) Fetch(ctx context.Context, _ string) ([]byte, error) {
	s.calls.Add(1)
	if s.release != nil {
		select {
		case <-s.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.data, s.err
}

func TestCache_CollapsesConcurrentFetches(t *testing.T) {
	src := &countingSource{release: make(chan struct{}), data: []byte("payload")}
	c := NewCache(src, 4)

	const n = 8
	var wg sync.WaitGroup
	results := make([]string, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			data, err := c.Fetch(context.Background(), "k.json")
			if err == nil {
				results[i] = string(data)
			}
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(src.release)
	wg.Wait()

	assert.Equal(t, int32(1), src.calls.Load())
	for _, r := range results {
		assert.Equal(t, "payload", r)
	}

	// Served from the LRU afterwards.
	_, err := c.Fetch(context.Background(), "k.json")
	require.NoError(t, err)
	assert.Equal(t, int32(1), src.calls.Load())
	assert.Equal(t, 1, c.Len())
}

func TestCache_CallerCancellation(t *testing.T) {
	src := &countingSource{release: make(chan struct{}), data: []byte("late")}
	c := NewCache(src, 4)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := c.Fetch(ctx, "k.md")
		done <- err
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	// The detached fetch still completes and fills the cache.
	close(src.release)
	require.Eventually(t, func() bool { return c.Len() == 1 }, time.Second, 10*time.Millisecond)
}

func TestCache_ErrorsAreNotCached(t *testing.T) {
	src := &countingSource{err: errors.New("boom")}
	c := NewCache(src, 4)

	_, err := c.Fetch(context.Background(), "k.html")
	require.Error(t, err)
	_, err = c.Fetch(context.Background(), "k.html")
	require.Error(t, err)
	assert.Equal(t, int32(2), src.calls.Load())
	assert.Zero(t, c.Len())
}

func TestCache_Eviction(t *testing.T) {
	src := &countingSource{data: []byte("x")}
	c := NewCache(src, 2)
	for _, k := range []string{"a", "b", "c"} {
		_, err := c.Fetch(context.Background(), k)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, c.Len())
}

func TestDataTypeOf(t *testing.T) {
	assert.Equal(t, "md", dataTypeOf("samples/prediction/opendataloader/markdown/1.md"))
	assert.Equal(t, "unknown", dataTypeOf("dir.v1/file"))
}
