package viewer

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendataloader-project/odlsite/internal/blob"
	"github.com/opendataloader-project/odlsite/internal/samples"
)

func TestParseTab(t *testing.T) {
	assert.Equal(t, TabJSON, ParseTab("json", DefaultPrimary))
	assert.Equal(t, DefaultPrimary, ParseTab("JSON", DefaultPrimary))
	assert.Equal(t, DefaultSecondary, ParseTab("", DefaultSecondary))

	p, s := ResolveViews("md", "bogus")
	assert.Equal(t, TabMD, p)
	assert.Equal(t, TabPreview, s)
}

func TestTabDataTypes(t *testing.T) {
	tests := []struct {
		tab  Tab
		want samples.DataType
		ok   bool
	}{
		{TabPDF, "", false},
		{TabAnnot, "", false},
		{TabPreview, samples.DataHTML, true},
		{TabHTML, samples.DataHTML, true},
		{TabMD, samples.DataMarkdown, true},
		{TabJSON, samples.DataJSON, true},
	}
	for _, tt := range tests {
		dt, ok := tt.tab.DataType()
		assert.Equal(t, tt.ok, ok, tt.tab)
		assert.Equal(t, tt.want, dt, tt.tab)
	}
	labels := make([]string, 0, len(Tabs))
	for _, tab := range Tabs {
		labels = append(labels, tab.Label())
	}
	assert.Equal(t, []string{"PDF", "Annot", "Preview", "HTML", "MD", "JSON"}, labels)
}

// fakeLoader blocks each load until released and counts calls per payload.
type fakeLoader struct {
	mu      sync.Mutex
	calls   map[string]int
	release chan struct{}
	payload map[samples.DataType]string
	err     error
	started atomic.Int32
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{
		calls:   make(map[string]int),
		release: make(chan struct{}),
		payload: map[samples.DataType]string{
			samples.DataMarkdown: "# Title",
			samples.DataHTML:     "<h1>Title</h1>",
			samples.DataJSON:     `{"a":[1,2]}`,
		},
	}
}

func (f *fakeLoader) Load(ctx context.Context, id string, dt samples.DataType) ([]byte, error) {
	f.mu.Lock()
	f.calls[id+"/"+string(dt)]++
	f.mu.Unlock()
	f.started.Add(1)
	select {
	case <-f.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	return []byte(f.payload[dt]), nil
}

func (f *fakeLoader) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

func TestSession_LoadsRequestedPayloads(t *testing.T) {
	loader := newFakeLoader()
	s := NewSession(context.Background(), loader)
	defer s.Close()

	s.Select("01030000000001")
	s.Request(TabAnnot, TabPreview)

	assert.Equal(t, StatusLoading, s.State(samples.DataHTML).Status)
	assert.Equal(t, StatusIdle, s.State(samples.DataJSON).Status)

	close(loader.release)
	s.Wait()

	html := s.State(samples.DataHTML)
	assert.Equal(t, StatusReady, html.Status)
	assert.Equal(t, "<h1>Title</h1>", html.Content)
	_, ok := s.StateFor(TabPDF)
	assert.False(t, ok)
}

func TestSession_SkipsLoadingAndReadyPayloads(t *testing.T) {
	loader := newFakeLoader()
	s := NewSession(context.Background(), loader)
	defer s.Close()

	s.Select("01030000000002")
	s.Request(TabPreview, TabHTML)
	s.Request(TabHTML)
	close(loader.release)
	s.Wait()
	s.Request(TabPreview)
	s.Wait()

	assert.Equal(t, 1, loader.count("01030000000002/html"))
}

func TestSession_SampleChangeCancelsAndResets(t *testing.T) {
	loader := newFakeLoader()
	s := NewSession(context.Background(), loader)
	defer s.Close()

	s.Select("01030000000003")
	s.Request(TabMD)
	require.Eventually(t, func() bool { return loader.started.Load() == 1 }, time.Second, 5*time.Millisecond)

	s.Select("01030000000004")
	s.Wait()

	// The cancelled load for the old sample must not surface as an error.
	assert.Equal(t, StatusIdle, s.State(samples.DataMarkdown).Status)

	s.Request(TabMD)
	close(loader.release)
	s.Wait()
	assert.Equal(t, "# Title", s.State(samples.DataMarkdown).Content)
	assert.Equal(t, 1, loader.count("01030000000004/md"))
}

func TestSession_StaleResultDiscarded(t *testing.T) {
	release := make(chan struct{})
	var once sync.Once
	loader := LoaderFunc(func(ctx context.Context, id string, dt samples.DataType) ([]byte, error) {
		if id == "old" {
			<-release // ignores cancellation on purpose
			return []byte("stale"), nil
		}
		return []byte("fresh"), nil
	})
	s := NewSession(context.Background(), loader)
	defer s.Close()

	s.Select("old")
	s.Request(TabMD)
	s.Select("new")
	once.Do(func() { close(release) })
	s.Wait()

	assert.Equal(t, StatusIdle, s.State(samples.DataMarkdown).Status)
	assert.Equal(t, "new", s.SampleID())
}

func TestSession_ErrorMessages(t *testing.T) {
	t.Run("non-OK response", func(t *testing.T) {
		loader := LoaderFunc(func(context.Context, string, samples.DataType) ([]byte, error) {
			return nil, &blob.StatusError{Key: "k", Code: http.StatusNotFound}
		})
		s := NewSession(context.Background(), loader)
		defer s.Close()
		s.Select("x")
		s.Request(TabJSON, TabMD)
		s.Wait()

		assert.Equal(t, DataState{Status: StatusError, Error: "Failed to load JSON data"}, s.State(samples.DataJSON))
		assert.Equal(t, "Failed to load MD data", s.State(samples.DataMarkdown).Error)
	})

	t.Run("transport error", func(t *testing.T) {
		loader := LoaderFunc(func(context.Context, string, samples.DataType) ([]byte, error) {
			return nil, errors.New("connection refused")
		})
		s := NewSession(context.Background(), loader)
		defer s.Close()
		s.Select("x")
		s.Request(TabHTML)
		s.Wait()

		assert.Equal(t, "connection refused", s.State(samples.DataHTML).Error)
	})
}

func TestSession_ErrorStateIsRetried(t *testing.T) {
	var calls atomic.Int32
	loader := LoaderFunc(func(context.Context, string, samples.DataType) ([]byte, error) {
		if calls.Add(1) == 1 {
			return nil, errors.New("flaky")
		}
		return []byte("ok"), nil
	})
	s := NewSession(context.Background(), loader)
	defer s.Close()
	s.Select("x")
	s.Request(TabMD)
	s.Wait()
	require.Equal(t, StatusError, s.State(samples.DataMarkdown).Status)

	s.Request(TabMD)
	s.Wait()
	assert.Equal(t, StatusReady, s.State(samples.DataMarkdown).Status)
}

func TestSession_ParentCancellation(t *testing.T) {
	loader := newFakeLoader()
	ctx, cancel := context.WithCancel(context.Background())
	s := NewSession(ctx, loader)

	s.Select("x")
	s.Request(TabJSON)
	cancel()
	s.Close()

	assert.Equal(t, StatusLoading, s.State(samples.DataJSON).Status)
	s.Request(TabMD) // closed sessions ignore requests
	assert.Equal(t, StatusIdle, s.State(samples.DataMarkdown).Status)
}

func TestFormatPayload(t *testing.T) {
	assert.Equal(t, "{\n  \"a\": [\n    1,\n    2\n  ]\n}", formatPayload(samples.DataJSON, []byte(`{"a":[1,2]}`)))
	assert.Equal(t, "{not json", formatPayload(samples.DataJSON, []byte("{not json")))
	assert.Equal(t, "{\"a\":1}", formatPayload(samples.DataMarkdown, []byte("{\"a\":1}")))
}

func TestBlobLoader_UsesDataKey(t *testing.T) {
	var got string
	l := BlobLoader(fetchFunc(func(_ context.Context, key string) ([]byte, error) {
		got = key
		return nil, nil
	}))
	_, err := l.Load(context.Background(), "01030000000000", samples.DataMarkdown)
	require.NoError(t, err)
	assert.Equal(t, "samples/prediction/opendataloader/markdown/01030000000000.md", got)
}

type fetchFunc func(ctx context.Context, key string) ([]byte, error)

func (f fetchFunc) Fetch(ctx context.Context, key string) ([]byte, error) { return f(ctx, key) }
