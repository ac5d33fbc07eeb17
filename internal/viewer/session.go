package viewer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/opendataloader-project/odlsite/internal/blob"
	"github.com/opendataloader-project/odlsite/internal/logfields"
	"github.com/opendataloader-project/odlsite/internal/samples"
)

// Loader fetches a sample payload.
type Loader interface {
	Load(ctx context.Context, sampleID string, dt samples.DataType) ([]byte, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, sampleID string, dt samples.DataType) ([]byte, error)

func (f LoaderFunc) Load(ctx context.Context, sampleID string, dt samples.DataType) ([]byte, error) {
	return f(ctx, sampleID, dt)
}

// BlobLoader resolves payload keys against the blob store.
func BlobLoader(f interface {
	Fetch(ctx context.Context, key string) ([]byte, error)
}) Loader {
	return LoaderFunc(func(ctx context.Context, sampleID string, dt samples.DataType) ([]byte, error) {
		return f.Fetch(ctx, samples.DataKey(sampleID, dt))
	})
}

// Session tracks payload loads for the currently selected sample. Loads run in
// their own goroutines under a context that is cancelled when the selection
// changes or the session closes. Safe for concurrent use.
type Session struct {
	loader Loader
	parent context.Context

	mu       sync.Mutex
	sampleID string
	gen      uint64
	ctx      context.Context
	cancel   context.CancelFunc
	states   map[samples.DataType]DataState
	closed   bool

	wg sync.WaitGroup
}

// NewSession binds loads to parent; cancelling parent cancels every load.
func NewSession(parent context.Context, loader Loader) *Session {
	ctx, cancel := context.WithCancel(parent)
	return &Session{
		loader: loader,
		parent: parent,
		ctx:    ctx,
		cancel: cancel,
		states: initialStates(),
	}
}

// SampleID is the current selection.
func (s *Session) SampleID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sampleID
}

// Select switches the session to sampleID. Changing the sample cancels in-flight
// loads and resets every payload to idle; reselecting the same sample is a no-op.
func (s *Session) Select(sampleID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || sampleID == s.sampleID {
		return
	}
	s.cancel()
	s.ctx, s.cancel = context.WithCancel(s.parent)
	s.gen++
	s.sampleID = sampleID
	s.states = initialStates()
}

// Request starts one load per distinct payload the views need, skipping
// payloads already loading or ready.
func (s *Session) Request(views ...Tab) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.sampleID == "" {
		return
	}

	seen := make(map[samples.DataType]bool, len(views))
	for _, v := range views {
		dt, ok := v.DataType()
		if !ok || seen[dt] {
			continue
		}
		seen[dt] = true
		if s.states[dt].Busy() {
			continue
		}

		prev := s.states[dt]
		s.states[dt] = DataState{Status: StatusLoading, Content: prev.Content}

		s.wg.Add(1)
		go s.load(s.ctx, s.gen, s.sampleID, dt)
	}
}

func (s *Session) load(ctx context.Context, gen uint64, sampleID string, dt samples.DataType) {
	defer s.wg.Done()

	data, err := s.loader.Load(ctx, sampleID, dt)
	next := DataState{Status: StatusReady}
	if err != nil {
		next = DataState{Status: StatusError, Error: loadErrorMessage(dt, err)}
	} else {
		next.Content = formatPayload(dt, data)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ctx.Err() != nil || gen != s.gen {
		return
	}
	if err != nil {
		slog.Debug("Sample payload load failed",
			logfields.SampleID(sampleID), logfields.DataType(string(dt)), logfields.Error(err))
	}
	s.states[dt] = next
}

// State returns the load state of one payload.
func (s *Session) State(dt samples.DataType) DataState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[dt]
}

// StateFor returns the state backing a tab, and false for tabs without a payload.
func (s *Session) StateFor(t Tab) (DataState, bool) {
	dt, ok := t.DataType()
	if !ok {
		return DataState{}, false
	}
	return s.State(dt), true
}

// States returns a snapshot of every payload state.
func (s *Session) States() map[samples.DataType]DataState {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[samples.DataType]DataState, len(s.states))
	for k, v := range s.states {
		out[k] = v
	}
	return out
}

// Wait blocks until every started load has returned.
func (s *Session) Wait() {
	s.wg.Wait()
}

// Close cancels outstanding loads and waits for them. Further calls are no-ops.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.cancel()
	s.mu.Unlock()
	s.wg.Wait()
}

func loadErrorMessage(dt samples.DataType, err error) string {
	if blob.IsStatus(err) {
		return fmt.Sprintf("Failed to load %s data", dataLabel(dt))
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "Failed to load data"
}

// formatPayload pretty-prints JSON with two-space indentation and leaves
// anything unparsable as is.
func formatPayload(dt samples.DataType, data []byte) string {
	if dt != samples.DataJSON {
		return string(data)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(data), "", "  "); err != nil {
		return string(data)
	}
	return buf.String()
}
