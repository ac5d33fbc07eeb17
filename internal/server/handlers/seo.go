package handlers

import (
	"bytes"
	"log/slog"
	"net/http"
	"time"

	"github.com/opendataloader-project/odlsite/internal/logfields"
	"github.com/opendataloader-project/odlsite/internal/seo"
)

// SEOHandlers serve sitemap.xml and the llms text files from the docs collection.
type SEOHandlers struct {
	baseURL string
	docs    DocsSource
	now     func() time.Time
}

func NewSEOHandlers(baseURL string, docs DocsSource) *SEOHandlers {
	return &SEOHandlers{baseURL: baseURL, docs: docs, now: time.Now}
}

func (h *SEOHandlers) HandleSitemap(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	entries := seo.Sitemap(h.baseURL, h.docs.Current().Pages(), h.now())
	if err := seo.WriteSitemap(&buf, entries); err != nil {
		slog.Error("sitemap generation failed", logfields.Path(r.URL.Path), logfields.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (h *SEOHandlers) HandleLLMs(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(seo.LLMsText))
}

func (h *SEOHandlers) HandleLLMsFull(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := seo.WriteLLMsFull(&buf, h.baseURL, h.docs.Current().Pages()); err != nil {
		slog.Error("llms-full generation failed", logfields.Path(r.URL.Path), logfields.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
