// Package site renders the marketing pages, docs pages and demo viewer with
// html/template, and serves the embedded static assets.
package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/opendataloader-project/odlsite/internal/config"
	"github.com/opendataloader-project/odlsite/internal/consent"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Pages rendered inside the shared layout.
const (
	PageHome     = "home.html"
	PageDemo     = "demo.html"
	PageSamples  = "samples.html"
	PageSample   = "sample.html"
	PageDocs     = "docs.html"
	PageContact  = "contact.html"
	PagePrivacy  = "privacy.html"
	PageShowcase = "showcase.html"
	PageNotFound = "notfound.html"
)

var pageNames = []string{PageHome, PageDemo, PageSamples, PageSample, PageDocs, PageContact, PagePrivacy, PageShowcase, PageNotFound}

// Meta is per-page head metadata.
type Meta struct {
	Title       string
	Description string
	Path        string
	NoIndex     bool
}

// Layout is the data every page shares.
type Layout struct {
	Site       config.SiteConfig
	Meta       Meta
	Consent    consent.State
	Scripts    []consent.Script
	Nav        []Link
	Footer     []Link
	LiveReload bool
	Year       int
}

// FullTitle is the document title.
func (l Layout) FullTitle() string {
	if l.Meta.Title == "" || l.Meta.Title == l.Site.Title {
		return l.Site.Title
	}
	return l.Meta.Title + " | " + l.Site.Title
}

// Description falls back to the site description.
func (l Layout) Description() string {
	if l.Meta.Description != "" {
		return l.Meta.Description
	}
	return l.Site.Description
}

// CanonicalURL is the absolute URL of the page.
func (l Layout) CanonicalURL() string {
	return strings.TrimRight(l.Site.BaseURL, "/") + l.Meta.Path
}

// View pairs the layout with page-specific data.
type View struct {
	Layout
	Page any
}

// Renderer executes page templates.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render writes page with status. Output is buffered so a failing template
// never leaves a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, v View) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page template %q", page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", v); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// StaticHandler serves the embedded static directory.
func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err) // embedded directory always exists
	}
	return http.FileServer(http.FS(sub))
}

var funcs = template.FuncMap{
	"withQuery": withQuery,
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("January 2, 2006")
	},
	"isoDate": func(t time.Time) string { return t.UTC().Format(time.RFC3339) },
	"add":     func(a, b int) int { return a + b },
}

// withQuery sets key=value pairs on a path, dropping empty values.
func withQuery(path string, kv ...string) string {
	q := url.Values{}
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] != "" {
			q.Set(kv[i], kv[i+1])
		}
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
