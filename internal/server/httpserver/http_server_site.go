package httpserver

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/opendataloader-project/odlsite/internal/consent"
	"github.com/opendataloader-project/odlsite/internal/contact"
	"github.com/opendataloader-project/odlsite/internal/samples"
	"github.com/opendataloader-project/odlsite/internal/server/handlers"
	"github.com/opendataloader-project/odlsite/internal/site"
	"github.com/opendataloader-project/odlsite/internal/stats"
	"github.com/opendataloader-project/odlsite/internal/tracking"
	"github.com/opendataloader-project/odlsite/internal/viewer"
)

// SiteHandler is the public route table wrapped in the middleware chain.
func (s *Server) SiteHandler() http.Handler {
	mux := http.NewServeMux()
	p := s.pageHandlers

	mux.HandleFunc("GET /{$}", p.HandleHome)
	mux.HandleFunc("GET /demo", p.HandleDemo)
	mux.HandleFunc("GET /demo/samples", p.HandleSamples)
	mux.HandleFunc("GET /demo/samples/{id}", p.HandleSample)
	mux.HandleFunc("GET /docs", p.HandleDocs)
	mux.HandleFunc("GET /docs/{slugs...}", p.HandleDocs)
	mux.HandleFunc("GET /contact", p.HandleContact)
	mux.HandleFunc("GET /privacy-policy", p.HandlePrivacy)
	mux.HandleFunc("GET /showcase", p.HandleShowcase)
	mux.HandleFunc("/", p.HandleNotFound)

	mux.Handle("GET /static/", http.StripPrefix("/static", site.StaticHandler()))
	mux.HandleFunc("GET /sitemap.xml", s.seoHandlers.HandleSitemap)
	mux.HandleFunc("GET /llms.txt", s.seoHandlers.HandleLLMs)
	mux.HandleFunc("GET /llms-full.txt", s.seoHandlers.HandleLLMsFull)

	mux.Handle("POST /api/contact", contact.NewHandler(s.deps.Contact, s.errorAdapter))
	mux.Handle("/api/consent", consent.NewHandler(s.errorAdapter, s.opts.SecureCookies))
	mux.Handle("POST /api/track", tracking.NewHandler(s.tracker(), s.errorAdapter))
	mux.Handle("GET /api/stats", stats.Handler(s.deps.Stats))
	mux.HandleFunc("GET /api/samples", s.samplesAPI.HandleList)
	mux.HandleFunc("GET /api/samples/{id}", s.samplesAPI.HandleGet)
	mux.HandleFunc("GET /api/samples/{id}/data/{type}", s.samplesAPI.HandleData)

	if hub := s.opts.LiveReloadHub; hub != nil {
		mux.HandleFunc("GET /livereload", func(w http.ResponseWriter, r *http.Request) {
			// The stream outlives the server write timeout.
			_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})
			hub.ServeHTTP(w, r)
		})
	}
	return s.mchain(mux)
}

func (s *Server) startSiteServerWithListener(ln net.Listener) {
	sc := s.cfg.Server
	s.siteServer = &http.Server{
		Handler:           s.SiteHandler(),
		ReadTimeout:       sc.ReadTimeout,
		ReadHeaderTimeout: sc.ReadTimeout,
		WriteTimeout:      sc.WriteTimeout,
		IdleTimeout:       sc.IdleTimeout,
	}
	s.mu.Lock()
	s.siteAddr = ln.Addr()
	s.mu.Unlock()
	s.startServerWithListener("site", s.siteServer, ln)
}

func (s *Server) tracker() *tracking.Tracker {
	if s.deps.Tracker != nil {
		return s.deps.Tracker
	}
	return tracking.NewTracker(tracking.LogSink{}, s.deps.Recorder)
}

// viewerLoader adapts the blob fetcher to the viewer's loader.
func viewerLoader(blobs handlers.Fetcher) viewer.Loader {
	if blobs == nil {
		return viewer.LoaderFunc(func(context.Context, string, samples.DataType) ([]byte, error) {
			return nil, errNoBlobStore
		})
	}
	return viewer.BlobLoader(blobs)
}
