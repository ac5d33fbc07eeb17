// Package stats fetches the GitHub star count and PyPI download count shown on
// the home page, falling back to fixed figures when either source is down.
package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/big"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/opendataloader-project/odlsite/internal/config"
	derrors "github.com/opendataloader-project/odlsite/internal/foundation/errors"
	"github.com/opendataloader-project/odlsite/internal/logfields"
	"github.com/opendataloader-project/odlsite/internal/metrics"
)

// Stats are the raw project counters.
type Stats struct {
	GitHubStars   int `json:"githubStars"`
	PyPIDownloads int `json:"pypiDownloads"`
}

// Formatted returns the counters as display strings.
func (s Stats) Formatted() FormattedStats {
	return FormattedStats{
		GitHubStars:   FormatNumber(s.GitHubStars),
		PyPIDownloads: FormatNumber(s.PyPIDownloads),
	}
}

// FormattedStats holds display strings such as "1.2k".
type FormattedStats struct {
	GitHubStars   string `json:"githubStars"`
	PyPIDownloads string `json:"pypiDownloads"`
}

// FormatNumber abbreviates thousands as k and millions as M with one decimal.
func FormatNumber(n int) string {
	switch {
	case n >= 1_000_000:
		return oneDecimal(float64(n)/1_000_000) + "M"
	case n >= 1000:
		return oneDecimal(float64(n)/1000) + "k"
	default:
		return fmt.Sprintf("%d", n)
	}
}

// oneDecimal rounds the exact value of x to one decimal. Exact ties round up,
// so 1.25 shows as 1.3.
func oneDecimal(x float64) string {
	tenths := new(big.Float).SetPrec(256).SetFloat64(x)
	tenths.Mul(tenths, big.NewFloat(10))
	whole, _ := tenths.Int(nil)
	frac := new(big.Float).SetPrec(256).Sub(tenths, new(big.Float).SetInt(whole))
	if frac.Cmp(big.NewFloat(0.5)) == 0 {
		whole.Add(whole, big.NewInt(1))
		n := whole.Int64()
		return fmt.Sprintf("%d.%d", n/10, n%10)
	}
	return strconv.FormatFloat(x, 'f', 1, 64)
}

// Client queries GitHub and pypistats.
type Client struct {
	http     *http.Client
	cfg      config.StatsConfig
	recorder metrics.Recorder
}

// NewClient builds a client. A nil httpClient uses http.DefaultClient.
func NewClient(cfg config.StatsConfig, httpClient *http.Client, recorder metrics.Recorder) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Client{http: httpClient, cfg: cfg, recorder: recorder}
}

// Fallback returns the figures used when a source cannot be reached.
func (c *Client) Fallback() Stats {
	return Stats{GitHubStars: c.cfg.FallbackStars, PyPIDownloads: c.cfg.FallbackDownloads}
}

// Fetch queries both sources in parallel. The returned Stats are always usable:
// a failing source contributes its fallback, and the first failure is returned
// alongside.
func (c *Client) Fetch(ctx context.Context) (Stats, error) {
	out := c.Fallback()

	var g errgroup.Group
	g.Go(func() error {
		stars, err := c.GitHubStars(ctx)
		c.recorder.IncStatsRefresh("github", metrics.ResultOf(err))
		if err != nil {
			return err
		}
		out.GitHubStars = stars
		return nil
	})
	g.Go(func() error {
		downloads, err := c.PyPIDownloads(ctx)
		c.recorder.IncStatsRefresh("pypi", metrics.ResultOf(err))
		if err != nil {
			return err
		}
		out.PyPIDownloads = downloads
		return nil
	})
	err := g.Wait()
	return out, err
}

type githubRepo struct {
	StargazersCount *int `json:"stargazers_count"`
}

// GitHubStars returns the repository's stargazer count.
func (c *Client) GitHubStars(ctx context.Context) (int, error) {
	url := strings.TrimRight(c.cfg.GitHubAPIURL, "/") + "/repos/" + c.cfg.GitHubRepo
	headers := map[string]string{"Accept": "application/vnd.github.v3+json"}
	if c.cfg.GitHubToken != "" {
		headers["Authorization"] = "Bearer " + c.cfg.GitHubToken
	}

	var repo githubRepo
	if err := c.getJSON(ctx, url, headers, &repo); err != nil {
		return c.cfg.FallbackStars, err
	}
	if repo.StargazersCount == nil {
		return c.cfg.FallbackStars, nil
	}
	return *repo.StargazersCount, nil
}

type pypiRecent struct {
	Data *struct {
		LastMonth *int `json:"last_month"`
	} `json:"data"`
}

// PyPIDownloads returns last month's download count.
func (c *Client) PyPIDownloads(ctx context.Context) (int, error) {
	url := strings.TrimRight(c.cfg.PyPIStatsURL, "/") + "/api/packages/" + c.cfg.PyPIPackage + "/recent"

	var recent pypiRecent
	if err := c.getJSON(ctx, url, nil, &recent); err != nil {
		return c.cfg.FallbackDownloads, err
	}
	if recent.Data == nil || recent.Data.LastMonth == nil {
		return c.cfg.FallbackDownloads, nil
	}
	return *recent.Data.LastMonth, nil
}

func (c *Client) getJSON(ctx context.Context, url string, headers map[string]string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return derrors.InternalError("build stats request").WithCause(err).Build()
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return derrors.NetworkError("stats source unreachable").
			WithCause(err).
			WithContext("url", url).
			Build()
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return derrors.UpstreamError(fmt.Sprintf("stats source returned %d", resp.StatusCode)).
			WithContext("url", url).
			Build()
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return derrors.UpstreamError("stats source returned invalid JSON").
			WithCause(err).
			WithContext("url", url).
			Build()
	}
	slog.Debug("Fetched stats", logfields.URL(url))
	return nil
}
