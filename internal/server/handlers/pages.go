package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/opendataloader-project/odlsite/internal/config"
	"github.com/opendataloader-project/odlsite/internal/consent"
	"github.com/opendataloader-project/odlsite/internal/docs"
	"github.com/opendataloader-project/odlsite/internal/logfields"
	"github.com/opendataloader-project/odlsite/internal/samples"
	"github.com/opendataloader-project/odlsite/internal/site"
	"github.com/opendataloader-project/odlsite/internal/stats"
	"github.com/opendataloader-project/odlsite/internal/viewer"
)

// DocsSource yields the active docs collection.
type DocsSource interface {
	Current() *docs.Collection
}

// StatsSource yields the latest stats snapshot.
type StatsSource interface {
	Current() stats.Snapshot
}

// featuredSamples is how many samples the demo landing page shows.
const featuredSamples = 6

// PageHandlers render HTML pages.
type PageHandlers struct {
	cfg        *config.Config
	renderer   *site.Renderer
	catalog    *samples.Catalog
	loader     viewer.Loader
	docs       DocsSource
	stats      StatsSource
	liveReload bool
	sections   site.Sections
	showcase   site.Showcase
	now        func() time.Time
}

// PageDeps are the collaborators of PageHandlers.
type PageDeps struct {
	Config     *config.Config
	Renderer   *site.Renderer
	Catalog    *samples.Catalog
	Loader     viewer.Loader
	Docs       DocsSource
	Stats      StatsSource
	LiveReload bool
}

func NewPageHandlers(d PageDeps) *PageHandlers {
	return &PageHandlers{
		cfg:        d.Config,
		renderer:   d.Renderer,
		catalog:    d.Catalog,
		loader:     d.Loader,
		docs:       d.Docs,
		stats:      d.Stats,
		liveReload: d.LiveReload,
		sections:   site.DefaultSections(),
		showcase:   site.DefaultShowcase(),
		now:        time.Now,
	}
}

func (h *PageHandlers) layout(r *http.Request, meta site.Meta) site.Layout {
	state := consent.FromRequest(r)
	return site.Layout{
		Site:       h.cfg.Site,
		Meta:       meta,
		Consent:    state,
		Scripts:    consent.Scripts(h.cfg.Analytics, state),
		Nav:        site.Nav(),
		Footer:     h.sections.Footer,
		LiveReload: h.liveReload,
		Year:       h.now().Year(),
	}
}

func (h *PageHandlers) render(w http.ResponseWriter, r *http.Request, status int, page string, meta site.Meta, data any) {
	if meta.Path == "" {
		meta.Path = r.URL.Path
	}
	if err := h.renderer.Render(w, status, page, site.View{Layout: h.layout(r, meta), Page: data}); err != nil {
		slog.Error("page render failed", logfields.Path(r.URL.Path), logfields.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (h *PageHandlers) notFound(w http.ResponseWriter, r *http.Request, message string) {
	h.render(w, r, http.StatusNotFound, site.PageNotFound,
		site.Meta{Title: "Page not found", NoIndex: true}, site.NotFoundPage{Message: message})
}

// HandleNotFound serves the 404 page for unmatched routes.
func (h *PageHandlers) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	h.notFound(w, r, "")
}

func (h *PageHandlers) HandleHome(w http.ResponseWriter, r *http.Request) {
	snap := h.stats.Current()
	h.render(w, r, http.StatusOK, site.PageHome, site.Meta{Path: "/"},
		site.HomePage{Sections: h.sections, Stats: snap.Stats.Formatted()})
}

func (h *PageHandlers) HandleDemo(w http.ResponseWriter, r *http.Request) {
	all := h.catalog.All()
	featured := all
	if len(featured) > featuredSamples {
		featured = featured[:featuredSamples]
	}
	h.render(w, r, http.StatusOK, site.PageDemo, site.Meta{
		Title:       "Demo",
		Description: "Compare PDFs with the Markdown, HTML and JSON produced by OpenDataLoader PDF.",
	}, site.DemoPage{Featured: featured, Total: len(all)})
}

// HandleSamples lists the catalog filtered by ?q= and laid out by ?mode=.
func (h *PageHandlers) HandleSamples(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	mode := r.URL.Query().Get("mode")
	if mode != site.LayoutList {
		mode = site.LayoutGrid
	}
	h.render(w, r, http.StatusOK, site.PageSamples, site.Meta{Title: "Samples"}, site.SamplesPage{
		Docs:   h.catalog.FilterByName(query),
		Query:  query,
		Layout: mode,
		Total:  h.catalog.Len(),
	})
}

// HandleSample renders the two-pane viewer. Payload loads are bound to the
// request, so a client that goes away cancels them.
func (h *PageHandlers) HandleSample(w http.ResponseWriter, r *http.Request) {
	doc, err := h.catalog.Get(r.PathValue("id"))
	if err != nil {
		h.notFound(w, r, "Sample not found.")
		return
	}
	q := r.URL.Query()
	filter := strings.TrimSpace(q.Get("q"))
	primary, secondary := viewer.ResolveViews(q.Get("view1"), q.Get("view2"))

	session := viewer.NewSession(r.Context(), h.loader)
	defer session.Close()
	session.Select(doc.ID)
	session.Request(primary, secondary)
	session.Wait()
	if r.Context().Err() != nil {
		return
	}

	views := [2]viewer.Tab{primary, secondary}
	page := site.SamplePage{
		Doc:     doc,
		Sidebar: h.catalog.FilterByID(filter),
		Filter:  filter,
		Views:   views,
		Panes: []site.Pane{
			h.pane(session, doc, "view1", 0, views, filter),
			h.pane(session, doc, "view2", 1, views, filter),
		},
	}
	h.render(w, r, http.StatusOK, site.PageSample, site.Meta{
		Title:   doc.Name,
		NoIndex: true,
	}, page)
}

func (h *PageHandlers) pane(s *viewer.Session, doc samples.Doc, name string, idx int, views [2]viewer.Tab, filter string) site.Pane {
	active := views[idx]
	p := site.Pane{Name: name, Active: active, Preview: active == viewer.TabPreview}
	switch active {
	case viewer.TabPDF:
		p.Document = doc.PDFURL
	case viewer.TabAnnot:
		p.Document = doc.AnnotatedPDFURL
	default:
		p.State, _ = s.StateFor(active)
	}
	for _, t := range viewer.Tabs {
		next := views
		next[idx] = t
		p.Tabs = append(p.Tabs, site.TabLink{
			Tab:    t,
			Label:  t.Label(),
			Active: t == active,
			Href: pathWithQuery("/demo/samples/"+doc.ID,
				"view1", string(next[0]), "view2", string(next[1]), "q", filter),
		})
	}
	return p
}

// HandleDocs renders /docs and /docs/{slugs...}. Pages carry their content
// fingerprint as ETag.
func (h *PageHandlers) HandleDocs(w http.ResponseWriter, r *http.Request) {
	var slugs []string
	if rest := strings.Trim(r.PathValue("slugs"), "/"); rest != "" {
		slugs = strings.Split(rest, "/")
	}
	col := h.docs.Current()
	page, ok := col.Lookup(slugs)
	if !ok {
		h.notFound(w, r, "This documentation page does not exist.")
		return
	}
	if etag := page.ETag(); etag != "" {
		w.Header().Set("ETag", etag)
		if match := r.Header.Get("If-None-Match"); match == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}
	prev, next := col.Neighbours(page)
	h.render(w, r, http.StatusOK, site.PageDocs, site.Meta{
		Title:       page.Title(),
		Description: page.Description(),
		Path:        page.URL,
	}, site.DocsPage{Page: page, Tree: col.Root, Prev: prev, Next: next})
}

func (h *PageHandlers) HandleContact(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, site.PageContact, site.Meta{
		Title:       "Contact",
		Description: "Talk to the OpenDataLoader team about your PDF pipeline.",
	}, site.ContactPage{Configured: h.cfg.Contact.Configured()})
}

func (h *PageHandlers) HandlePrivacy(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, site.PagePrivacy, site.Meta{Title: "Privacy Policy"}, nil)
}

func (h *PageHandlers) HandleShowcase(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, site.PageShowcase, site.Meta{
		Title:       "Showcase",
		Description: "See how HANCOM built the commercial Data Loader Studio experience on top of OpenDataLoader PDF.",
	}, site.ShowcasePage{Showcase: h.showcase})
}
