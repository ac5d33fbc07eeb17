package stats

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendataloader-project/odlsite/internal/config"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1.0k"},
		{1540, "1.5k"},
		{25_300, "25.3k"},
		{1_000_000, "1.0M"},
		{2_460_000, "2.5M"},
		{1250, "1.3k"},
		{12_250, "12.3k"},
		{1_250_000, "1.3M"},
		{1150, "1.1k"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNumber(tt.in), tt.in)
	}
}

func newTestConfig(url string) config.StatsConfig {
	return config.StatsConfig{
		GitHubRepo:        "opendataloader-project/opendataloader-pdf",
		GitHubAPIURL:      url,
		GitHubToken:       "tok",
		PyPIPackage:       "opendataloader-pdf",
		PyPIStatsURL:      url,
		FallbackStars:     700,
		FallbackDownloads: 10000,
	}
}

func TestClient_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/opendataloader-project/opendataloader-pdf":
			assert.Equal(t, "application/vnd.github.v3+json", r.Header.Get("Accept"))
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"stargazers_count": 1234}`))
		case "/api/packages/opendataloader-pdf/recent":
			_, _ = w.Write([]byte(`{"data":{"last_day":10,"last_month":56789}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	got, err := NewClient(newTestConfig(srv.URL), srv.Client(), nil).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Stats{GitHubStars: 1234, PyPIDownloads: 56789}, got)
	assert.Equal(t, FormattedStats{GitHubStars: "1.2k", PyPIDownloads: "56.8k"}, got.Formatted())
}

func TestClient_Fallbacks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/opendataloader-project/opendataloader-pdf":
			w.WriteHeader(http.StatusForbidden)
		default:
			_, _ = w.Write([]byte(`{"data":{}}`))
		}
	}))
	defer srv.Close()

	got, err := NewClient(newTestConfig(srv.URL), srv.Client(), nil).Fetch(context.Background())
	require.Error(t, err)
	assert.Equal(t, Stats{GitHubStars: 700, PyPIDownloads: 10000}, got)
}

func TestClient_MissingFieldUsesFallbackWithoutError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	stars, err := NewClient(newTestConfig(srv.URL), srv.Client(), nil).GitHubStars(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 700, stars)
}

type stubFetcher struct {
	stats Stats
	err   error
	calls int
}

func (s *stubFetcher) Fetch(context.Context) (Stats, error) {
	s.calls++
	return s.stats, s.err
}

func (s *stubFetcher) Fallback() Stats { return Stats{GitHubStars: 700, PyPIDownloads: 10000} }

func TestRefresher_PublishesSnapshot(t *testing.T) {
	f := &stubFetcher{stats: Stats{GitHubStars: 900, PyPIDownloads: 20000}}
	r, err := NewRefresher(f, time.Hour)
	require.NoError(t, err)

	before := r.Current()
	assert.True(t, before.Degraded)
	assert.Equal(t, 700, before.Stats.GitHubStars)

	r.Refresh(context.Background())
	after := r.Current()
	assert.False(t, after.Degraded)
	assert.Equal(t, 900, after.Stats.GitHubStars)
	assert.False(t, after.FetchedAt.IsZero())

	f.err = errors.New("down")
	r.Refresh(context.Background())
	assert.True(t, r.Current().Degraded)
}

func TestRefresher_StartRunsImmediately(t *testing.T) {
	f := &stubFetcher{stats: Stats{GitHubStars: 1, PyPIDownloads: 2}}
	r, err := NewRefresher(f, time.Hour)
	require.NoError(t, err)
	require.NoError(t, r.Start(context.Background()))
	defer func() { _ = r.Stop() }()

	require.Eventually(t, func() bool { return r.Current().Stats.GitHubStars == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestHandler(t *testing.T) {
	f := &stubFetcher{stats: Stats{GitHubStars: 1500, PyPIDownloads: 3_200_000}}
	r, err := NewRefresher(f, time.Hour)
	require.NoError(t, err)
	r.Refresh(context.Background())

	rec := httptest.NewRecorder()
	Handler(r).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.EqualValues(t, 1500, body["githubStars"])
	assert.Equal(t, map[string]any{"githubStars": "1.5k", "pypiDownloads": "3.2M"}, body["formatted"])
	assert.Contains(t, body, "fetchedAt")
}
