package docs

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/opendataloader-project/odlsite/internal/metrics"
)

// Store holds the current collection and replaces it on Reload.
type Store struct {
	opts     Options
	renderer *Renderer
	recorder metrics.Recorder
	current  atomic.Pointer[Collection]
	reloadMu sync.Mutex
}

// NewStore creates an empty store; call Reload before serving.
func NewStore(opts Options, recorder metrics.Recorder) *Store {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Store{opts: opts, renderer: NewRenderer(), recorder: recorder}
}

// Reload loads the collection again. On failure the previous collection stays
// in place.
func (s *Store) Reload(ctx context.Context) error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	c, err := Load(ctx, s.opts, s.renderer)
	s.recorder.IncDocsReload(metrics.ResultOf(err))
	if err != nil {
		return err
	}
	s.current.Store(c)
	return nil
}

// Current returns the active collection, or an empty one before the first load.
func (s *Store) Current() *Collection {
	if c := s.current.Load(); c != nil {
		return c
	}
	return &Collection{Root: &Node{Folder: true, Title: "Documentation", URL: URLPrefix}, bySlug: map[string]*Page{}}
}

// Dir is the content directory.
func (s *Store) Dir() string { return s.opts.Dir }
