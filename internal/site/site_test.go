package site

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendataloader-project/odlsite/internal/config"
	"github.com/opendataloader-project/odlsite/internal/consent"
	"github.com/opendataloader-project/odlsite/internal/samples"
	"github.com/opendataloader-project/odlsite/internal/stats"
	"github.com/opendataloader-project/odlsite/internal/viewer"
)

func testLayout(t *testing.T, state consent.State) Layout {
	t.Helper()
	cfg, err := config.Default()
	require.NoError(t, err)
	site := cfg.Site
	analytics := config.AnalyticsConfig{GoogleAnalyticsID: "G-TEST123"}
	return Layout{
		Site:    site,
		Meta:    Meta{Title: "Demo", Path: "/demo"},
		Consent: state,
		Scripts: consent.Scripts(analytics, state),
		Nav:     Nav(),
		Footer:  DefaultSections().Footer,
		Year:    2026,
	}
}

func render(t *testing.T, page string, v View) (int, string) {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	require.NoError(t, r.Render(rec, http.StatusOK, page, v))
	return rec.Code, rec.Body.String()
}

func TestRenderHome(t *testing.T) {
	s := stats.Stats{GitHubStars: 1234, PyPIDownloads: 2500000}
	_, body := render(t, PageHome, View{
		Layout: testLayout(t, consent.State{Status: consent.StatusUnknown, Ready: true}),
		Page:   HomePage{Sections: DefaultSections(), Stats: s.Formatted()},
	})

	assert.Contains(t, body, "Best Open-Source PDF Parser")
	assert.Contains(t, body, "for RAG &amp; LLM Pipelines")
	assert.Contains(t, body, "1.2k")
	assert.Contains(t, body, "2.5M")
	assert.Contains(t, body, "pip install -U opendataloader-pdf")
	assert.Contains(t, body, `id="consent-banner"`)
	assert.NotContains(t, body, "googletagmanager")
}

func TestRenderScriptsOnlyAfterAccept(t *testing.T) {
	_, body := render(t, PageNotFound, View{
		Layout: testLayout(t, consent.State{Status: consent.StatusAccepted, Ready: true}),
		Page:   NotFoundPage{},
	})
	assert.Contains(t, body, "https://www.googletagmanager.com/gtag/js?id=G-TEST123")
	assert.Contains(t, body, "gtag('config','G-TEST123')")
	assert.NotContains(t, body, `id="consent-banner"`)

	_, body = render(t, PageNotFound, View{
		Layout: testLayout(t, consent.State{Status: consent.StatusRejected, Ready: true}),
		Page:   NotFoundPage{},
	})
	assert.NotContains(t, body, "googletagmanager")
	assert.NotContains(t, body, `id="consent-banner"`)
}

func TestRenderTitleAndCanonical(t *testing.T) {
	_, body := render(t, PageNotFound, View{
		Layout: testLayout(t, consent.State{Status: consent.StatusRejected, Ready: true}),
		Page:   NotFoundPage{Message: "Sample not found"},
	})
	assert.Contains(t, body, "<title>Demo | ")
	assert.Contains(t, body, `rel="canonical" href="https://opendataloader.org/demo"`)
	assert.Contains(t, body, "Sample not found")
}

func TestRenderSampleViewer(t *testing.T) {
	doc := samples.Doc{ID: "01030000000001", Name: "01030000000001.pdf", PDFURL: "https://blob.example/a.pdf"}
	_, body := render(t, PageSample, View{
		Layout: testLayout(t, consent.State{Status: consent.StatusRejected, Ready: true}),
		Page: SamplePage{
			Doc:     doc,
			Sidebar: []samples.Doc{doc},
			Views:   [2]viewer.Tab{viewer.TabPDF, viewer.TabPreview},
			Panes: []Pane{
				{Name: "view1", Active: viewer.TabPDF, Document: doc.PDFURL},
				{Name: "view2", Active: viewer.TabPreview, Preview: true,
					State: viewer.DataState{Status: viewer.StatusReady, Content: `<h1 class="x">Hi</h1>`}},
			},
		},
	})
	assert.Contains(t, body, `src="https://blob.example/a.pdf"`)
	assert.Contains(t, body, `srcdoc="&lt;h1 class=&#34;x&#34;&gt;Hi&lt;/h1&gt;"`)
	assert.Contains(t, body, "view1=pdf&amp;view2=preview")
}

func TestRenderSampleError(t *testing.T) {
	_, body := render(t, PageSample, View{
		Layout: testLayout(t, consent.State{Status: consent.StatusRejected, Ready: true}),
		Page: SamplePage{
			Doc:   samples.Doc{ID: "01030000000001"},
			Views: [2]viewer.Tab{viewer.TabMD, viewer.TabJSON},
			Panes: []Pane{
				{Name: "view1", Active: viewer.TabMD, State: viewer.DataState{Status: viewer.StatusError, Error: "Failed to load MD data"}},
				{Name: "view2", Active: viewer.TabJSON, State: viewer.DataState{Status: viewer.StatusLoading}},
			},
		},
	})
	assert.Contains(t, body, "Failed to load MD data")
	assert.Contains(t, body, "Loading&hellip;")
}

func TestRenderUnknownPage(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	err = r.Render(httptest.NewRecorder(), http.StatusOK, "missing.html", View{})
	require.Error(t, err)
}

func TestWithQuery(t *testing.T) {
	assert.Equal(t, "/demo/samples", withQuery("/demo/samples", "q", ""))
	assert.Equal(t, "/demo/samples?layout=list&q=a+b", withQuery("/demo/samples", "q", "a b", "layout", "list"))
}

func TestStaticHandlerServesConsentScript(t *testing.T) {
	rec := httptest.NewRecorder()
	StaticHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/consent.js", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "cookie-consent"))
}

// Other tabs react to the storage event by reloading, so the cookie has to be
// written by the POST before localStorage changes.
func TestConsentScriptSetsCookieBeforeStorage(t *testing.T) {
	rec := httptest.NewRecorder()
	StaticHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/consent.js", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	js := rec.Body.String()
	post := strings.Index(js, `fetch("/api/consent"`)
	store := strings.Index(js, "localStorage.setItem")
	require.NotEqual(t, -1, post)
	require.NotEqual(t, -1, store)
	assert.Less(t, post, store)
	assert.Contains(t, js[post:store], ".then(")
	assert.Equal(t, 1, strings.Count(js, "localStorage.setItem"))
}
