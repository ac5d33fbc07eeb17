// Package preview watches the docs content directory during local authoring,
// reloads the docs store on change and tells open browsers to refresh.
package preview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/opendataloader-project/odlsite/internal/logfields"
)

// DefaultDebounce coalesces bursts of editor writes into one reload.
const DefaultDebounce = 300 * time.Millisecond

// Reloader rebuilds the served content.
type Reloader interface {
	Reload(ctx context.Context) error
}

// Watcher drives reloads from filesystem events.
type Watcher struct {
	dir      string
	reloader Reloader
	hub      *LiveReloadHub
	debounce time.Duration

	mu      sync.RWMutex
	lastErr error
}

// Option configures a Watcher.
type Option func(*Watcher)

func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// NewWatcher validates dir and returns a watcher for it. hub may be nil.
func NewWatcher(dir string, reloader Reloader, hub *LiveReloadHub, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve docs dir: %w", err)
	}
	if st, statErr := os.Stat(abs); statErr != nil || !st.IsDir() {
		return nil, fmt.Errorf("docs dir not found or not a directory: %s", abs)
	}
	if reloader == nil {
		return nil, errors.New("preview requires a reloader")
	}
	w := &Watcher{dir: abs, reloader: reloader, hub: hub, debounce: DefaultDebounce}
	for _, o := range opts {
		o(w)
	}
	return w, nil
}

// Dir is the absolute watched directory.
func (w *Watcher) Dir() string { return w.dir }

// LastError is the error of the most recent reload, nil after a success.
func (w *Watcher) LastError() error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lastErr
}

// Run watches until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = fw.Close() }()
	if err := addDirsRecursive(fw, w.dir); err != nil {
		return err
	}

	reloadReq := make(chan struct{}, 1)
	trigger, stop := debouncer(w.debounce, reloadReq)
	defer stop()

	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	defer func() {
		cancel()
		wg.Wait()
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case <-reloadReq:
				w.reload(ctx)
			}
		}
	}()

	slog.Info("Watching docs for changes", logfields.DocPath(w.dir))
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if shouldIgnoreEvent(ev.Name) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if fi, statErr := os.Stat(ev.Name); statErr == nil && fi.IsDir() {
					_ = addDirsRecursive(fw, ev.Name)
				}
			}
			slog.Debug("File change detected", logfields.DocPath(ev.Name), slog.String("op", ev.Op.String()))
			trigger()
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) reload(ctx context.Context) {
	slog.Info("Change detected; reloading docs")
	err := w.reloader.Reload(ctx)
	w.mu.Lock()
	w.lastErr = err
	w.mu.Unlock()

	stamp := strconv.FormatInt(time.Now().UnixNano(), 10)
	if err != nil {
		slog.Warn("docs reload failed", logfields.Error(err))
		stamp = "error:" + stamp
	}
	if w.hub != nil {
		w.hub.Broadcast(stamp)
	}
}

// debouncer returns a trigger that signals out once events stop arriving for d.
func debouncer(d time.Duration, out chan<- struct{}) (trigger, stop func()) {
	var mu sync.Mutex
	var timer *time.Timer
	trigger = func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(d, func() {
			select {
			case out <- struct{}{}:
			default:
			}
		})
	}
	stop = func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}
	return trigger, stop
}

func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != root && shouldIgnoreEvent(path) {
				return filepath.SkipDir
			}
			if err := w.Add(path); err != nil {
				slog.Warn("watch add failed", logfields.DocPath(path), logfields.Error(err))
			}
		}
		return nil
	})
}

// shouldIgnoreEvent filters hidden, swap and lock files.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}
	return base == "Thumbs.db"
}
