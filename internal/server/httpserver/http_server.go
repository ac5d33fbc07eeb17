package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/opendataloader-project/odlsite/internal/config"
	derrors "github.com/opendataloader-project/odlsite/internal/foundation/errors"
	"github.com/opendataloader-project/odlsite/internal/logfields"
	"github.com/opendataloader-project/odlsite/internal/metrics"
	handlers "github.com/opendataloader-project/odlsite/internal/server/handlers"
	smw "github.com/opendataloader-project/odlsite/internal/server/middleware"
)

// Server runs the public site and the admin endpoints on separate ports.
type Server struct {
	siteServer   *http.Server
	adminServer  *http.Server
	cfg          *config.Config
	deps         Deps
	opts         Options
	errorAdapter *derrors.HTTPErrorAdapter

	pageHandlers       *handlers.PageHandlers
	samplesAPI         *handlers.SamplesAPI
	seoHandlers        *handlers.SEOHandlers
	monitoringHandlers *handlers.MonitoringHandlers

	mchain func(http.Handler) http.Handler

	mu        sync.Mutex
	siteAddr  net.Addr
	adminAddr net.Addr
}

// New constructs a server wiring instance. Nothing listens until Start.
func New(cfg *config.Config, deps Deps, opts Options) *Server {
	if deps.Recorder == nil {
		deps.Recorder = metrics.NoopRecorder{}
	}
	s := &Server{
		cfg:          cfg,
		deps:         deps,
		opts:         opts,
		errorAdapter: derrors.NewHTTPErrorAdapter(slog.Default()),
	}

	s.pageHandlers = handlers.NewPageHandlers(handlers.PageDeps{
		Config:     cfg,
		Renderer:   deps.Renderer,
		Catalog:    deps.Catalog,
		Loader:     viewerLoader(deps.Blobs),
		Docs:       deps.Docs,
		Stats:      deps.Stats,
		LiveReload: opts.LiveReloadHub != nil,
	})
	s.samplesAPI = handlers.NewSamplesAPI(deps.Catalog, deps.Blobs, s.errorAdapter)
	s.seoHandlers = handlers.NewSEOHandlers(cfg.Site.BaseURL, deps.Docs)
	s.monitoringHandlers = handlers.NewMonitoringHandlers(deps.Docs, deps.Stats, opts.ReloadStatus)

	s.mchain = smw.Chain(slog.Default(), s.errorAdapter, deps.Recorder)
	return s
}

// Start binds both ports before serving so a busy port fails the whole start.
func (s *Server) Start(ctx context.Context) error {
	type preBind struct {
		name string
		port int
		ln   net.Listener
	}
	binds := []preBind{{name: "site", port: s.cfg.Server.Port}}
	if s.cfg.Server.AdminPort > 0 {
		binds = append(binds, preBind{name: "admin", port: s.cfg.Server.AdminPort})
	}

	var bindErrs []error
	lc := net.ListenConfig{}
	for i := range binds {
		ln, err := lc.Listen(ctx, "tcp", fmt.Sprintf(":%d", binds[i].port))
		if err != nil {
			bindErrs = append(bindErrs, fmt.Errorf("%s port %d: %w", binds[i].name, binds[i].port, err))
			continue
		}
		binds[i].ln = ln
	}
	if len(bindErrs) > 0 {
		for _, b := range binds {
			if b.ln != nil {
				_ = b.ln.Close()
			}
		}
		return fmt.Errorf("http startup failed: %w", errors.Join(bindErrs...))
	}

	s.startSiteServerWithListener(binds[0].ln)
	if len(binds) > 1 {
		s.startAdminServerWithListener(binds[1].ln)
	}

	attrs := []any{slog.String("site_addr", binds[0].ln.Addr().String())}
	if len(binds) > 1 {
		attrs = append(attrs, slog.String("admin_addr", binds[1].ln.Addr().String()))
	}
	slog.Info("HTTP servers started", attrs...)
	return nil
}

// Stop gracefully shuts the servers down. Live reload streams are closed
// first so they do not hold the shutdown open.
func (s *Server) Stop(ctx context.Context) error {
	if s.opts.LiveReloadHub != nil {
		s.opts.LiveReloadHub.Shutdown()
	}
	var errs []error
	if s.adminServer != nil {
		if err := s.adminServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("admin server shutdown: %w", err))
		}
	}
	if s.siteServer != nil {
		if err := s.siteServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("site server shutdown: %w", err))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	slog.Info("HTTP servers stopped")
	return nil
}

// SiteAddr is the bound site address once started.
func (s *Server) SiteAddr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.siteAddr
}

// AdminAddr is the bound admin address once started.
func (s *Server) AdminAddr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adminAddr
}

// startServerWithListener serves srv on ln in the background.
func (s *Server) startServerWithListener(kind string, srv *http.Server, ln net.Listener) {
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error(fmt.Sprintf("%s server error", kind), logfields.Error(err))
		}
	}()
}
