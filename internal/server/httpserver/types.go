package httpserver

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/opendataloader-project/odlsite/internal/contact"
	"github.com/opendataloader-project/odlsite/internal/metrics"
	"github.com/opendataloader-project/odlsite/internal/samples"
	"github.com/opendataloader-project/odlsite/internal/server/handlers"
	"github.com/opendataloader-project/odlsite/internal/site"
	"github.com/opendataloader-project/odlsite/internal/stats"
	"github.com/opendataloader-project/odlsite/internal/tracking"
)

// Deps are the domain services the routes are wired to.
type Deps struct {
	Renderer *site.Renderer
	Catalog  *samples.Catalog
	Blobs    handlers.Fetcher
	Docs     handlers.DocsSource
	Stats    *stats.Refresher
	Contact  *contact.Service
	Tracker  *tracking.Tracker
	Recorder metrics.Recorder
	// Registry backs /metrics on the admin port; nil disables it.
	Registry *prometheus.Registry
}

// LiveReloadHub supports the /livereload SSE endpoint in preview mode.
type LiveReloadHub interface {
	http.Handler
	Broadcast(hash string)
	Shutdown()
}

// Options configures runtime-specific wiring.
type Options struct {
	// Optional: live reload support (preview mode).
	LiveReloadHub LiveReloadHub

	// Optional: docs reload outcome (preview mode).
	ReloadStatus handlers.ReloadStatus

	// SecureCookies marks the consent cookie Secure.
	SecureCookies bool
}
