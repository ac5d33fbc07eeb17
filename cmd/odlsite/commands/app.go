package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"cloud.google.com/go/storage"

	"github.com/opendataloader-project/odlsite/internal/blob"
	"github.com/opendataloader-project/odlsite/internal/config"
	"github.com/opendataloader-project/odlsite/internal/contact"
	"github.com/opendataloader-project/odlsite/internal/docs"
	"github.com/opendataloader-project/odlsite/internal/logfields"
	"github.com/opendataloader-project/odlsite/internal/metrics"
	"github.com/opendataloader-project/odlsite/internal/samples"
	"github.com/opendataloader-project/odlsite/internal/server/httpserver"
	"github.com/opendataloader-project/odlsite/internal/site"
	"github.com/opendataloader-project/odlsite/internal/stats"
	"github.com/opendataloader-project/odlsite/internal/tracking"
)

// app holds the long-lived services shared by serve and preview.
type app struct {
	cfg       *config.Config
	deps      httpserver.Deps
	docs      *docs.Store
	refresher *stats.Refresher
	closers   []func() error
}

func newCatalog(cfg *config.Config) (*samples.Catalog, error) {
	return samples.NewCatalog(samples.Options{
		Start:            cfg.Samples.Start,
		Total:            cfg.Samples.Total,
		BlobBaseURL:      cfg.Samples.BlobBaseURL,
		ThumbnailBaseURL: cfg.Samples.ThumbnailBaseURL,
	})
}

func newBlobSource(ctx context.Context, cfg *config.Config, client *http.Client) (blob.Source, func() error, error) {
	if cfg.Samples.Backend == config.BlobBackendGCS {
		gcs, err := storage.NewClient(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("create GCS client: %w", err)
		}
		return blob.NewGCSSource(gcs, cfg.Samples.GCSBucket), gcs.Close, nil
	}
	return blob.NewHTTPSource(cfg.Samples.BlobBaseURL, client), nil, nil
}

func newTrackingSink(ctx context.Context, cfg *config.Config) tracking.Sink {
	if cfg.Analytics.NATSURL == "" {
		return tracking.LogSink{}
	}
	sink, err := tracking.NewNATSSink(ctx, cfg.Analytics.NATSURL, cfg.Analytics.Subject)
	if err != nil {
		slog.Warn("NATS unavailable; logging analytics events instead", logfields.URL(cfg.Analytics.NATSURL), logfields.Error(err))
		return tracking.LogSink{}
	}
	return sink
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{cfg: cfg}
	client := &http.Client{Timeout: cfg.Server.ClientTimeout}

	var (
		reg      = metrics.NewRegistry()
		recorder metrics.Recorder = metrics.NoopRecorder{}
	)
	if cfg.Monitoring.MetricsEnabled {
		recorder = metrics.NewPrometheusRecorder(reg)
	}

	catalog, err := newCatalog(cfg)
	if err != nil {
		return nil, err
	}
	src, closeSrc, err := newBlobSource(ctx, cfg, client)
	if err != nil {
		return nil, err
	}
	if closeSrc != nil {
		a.closers = append(a.closers, closeSrc)
	}

	renderer, err := site.NewRenderer()
	if err != nil {
		return nil, err
	}
	svc, err := contact.NewFromConfig(cfg, contact.WithRecorder(recorder))
	if err != nil {
		return nil, err
	}
	if !cfg.Contact.Configured() {
		slog.Warn("Contact relay is not configured; submissions will be rejected")
	}

	a.refresher, err = stats.NewRefresher(stats.NewClient(cfg.Stats, client, recorder), cfg.Stats.RefreshInterval)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, a.refresher.Stop)

	tracker := tracking.NewTracker(newTrackingSink(ctx, cfg), recorder)
	a.closers = append(a.closers, tracker.Close)

	a.docs = docs.NewStore(docs.Options{Dir: cfg.Docs.ContentDir, GitLastModified: cfg.Docs.GitLastModified}, recorder)

	a.deps = httpserver.Deps{
		Renderer: renderer,
		Catalog:  catalog,
		Blobs: blob.NewCache(src, cfg.Samples.CacheEntries,
			blob.WithRecorder(recorder), blob.WithFetchTimeout(cfg.Server.ClientTimeout)),
		Docs:     a.docs,
		Stats:    a.refresher,
		Contact:  svc,
		Tracker:  tracker,
		Recorder: recorder,
	}
	if cfg.Monitoring.MetricsEnabled {
		a.deps.Registry = reg
	}
	return a, nil
}

// close releases resources in reverse order of acquisition.
func (a *app) close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
