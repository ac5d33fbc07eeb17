package metrics

import (
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "odlsite"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	httpDuration  *prom.HistogramVec
	httpRequests  *prom.CounterVec
	contact       *prom.CounterVec
	blobDuration  *prom.HistogramVec
	blobCache     *prom.CounterVec
	statsRefresh  *prom.CounterVec
	trackedEvents *prom.CounterVec
	docsReloads   *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers the site metrics on reg.
// A nil registry gets a fresh private one.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		httpDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests by route",
			Buckets:   prom.DefBuckets,
		}, []string{"route"}),
		httpRequests: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code",
		}, []string{"route", "status"}),
		contact: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "contact_submissions_total",
			Help:      "Contact form submissions by outcome",
		}, []string{"result"}),
		blobDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "blob_fetch_duration_seconds",
			Help:      "Duration of sample payload fetches from the blob store",
			Buckets:   prom.DefBuckets,
		}, []string{"data_type", "result"}),
		blobCache: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "blob_cache_lookups_total",
			Help:      "Sample payload cache lookups by hit or miss",
		}, []string{"result"}),
		statsRefresh: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "stats_refresh_total",
			Help:      "Project stats fetches by source and outcome",
		}, []string{"source", "result"}),
		trackedEvents: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "tracked_events_total",
			Help:      "UI analytics events by name and whether they were forwarded",
		}, []string{"event", "forwarded"}),
		docsReloads: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "docs_reloads_total",
			Help:      "Documentation reloads by outcome",
		}, []string{"result"}),
	}
	reg.MustRegister(pr.httpDuration, pr.httpRequests, pr.contact, pr.blobDuration,
		pr.blobCache, pr.statsRefresh, pr.trackedEvents, pr.docsReloads)
	return pr
}

func (p *PrometheusRecorder) ObserveHTTPRequest(route string, status int, d time.Duration) {
	if p == nil {
		return
	}
	p.httpDuration.WithLabelValues(route).Observe(d.Seconds())
	p.httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

func (p *PrometheusRecorder) IncContactOutcome(result ResultLabel) {
	if p == nil {
		return
	}
	p.contact.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveBlobFetch(dataType string, d time.Duration, result ResultLabel) {
	if p == nil {
		return
	}
	p.blobDuration.WithLabelValues(dataType, string(result)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBlobCache(hit bool) {
	if p == nil {
		return
	}
	res := "miss"
	if hit {
		res = "hit"
	}
	p.blobCache.WithLabelValues(res).Inc()
}

func (p *PrometheusRecorder) IncStatsRefresh(source string, result ResultLabel) {
	if p == nil {
		return
	}
	p.statsRefresh.WithLabelValues(source, string(result)).Inc()
}

func (p *PrometheusRecorder) IncTrackedEvent(event string, forwarded bool) {
	if p == nil {
		return
	}
	p.trackedEvents.WithLabelValues(event, strconv.FormatBool(forwarded)).Inc()
}

func (p *PrometheusRecorder) IncDocsReload(result ResultLabel) {
	if p == nil {
		return
	}
	p.docsReloads.WithLabelValues(string(result)).Inc()
}
