package httpserver

import (
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/opendataloader-project/odlsite/internal/metrics"
)

var errNoBlobStore = errors.New("no blob store configured")

// AdminHandler serves health, readiness and metrics.
func (s *Server) AdminHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.monitoringHandlers.HandleHealthCheck)
	mux.HandleFunc("GET /readyz", s.monitoringHandlers.HandleReadiness)
	if s.cfg.Monitoring.MetricsEnabled && s.deps.Registry != nil {
		mux.Handle("GET "+s.cfg.Monitoring.MetricsPath, metrics.HTTPHandler(s.deps.Registry))
	}
	return s.mchain(mux)
}

func (s *Server) startAdminServerWithListener(ln net.Listener) {
	s.adminServer = &http.Server{
		Handler:           s.AdminHandler(),
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	s.mu.Lock()
	s.adminAddr = ln.Addr()
	s.mu.Unlock()
	s.startServerWithListener("admin", s.adminServer, ln)
}
