package stats

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/opendataloader-project/odlsite/internal/logfields"
)

// Snapshot is the most recent fetch result.
type Snapshot struct {
	Stats     Stats     `json:"stats"`
	FetchedAt time.Time `json:"fetchedAt"`
	Degraded  bool      `json:"degraded"` // at least one source fell back
}

// Fetcher is satisfied by Client.
type Fetcher interface {
	Fetch(ctx context.Context) (Stats, error)
	Fallback() Stats
}

// Refresher keeps a Snapshot current by re-fetching on a fixed interval.
// Readers never block on the network.
type Refresher struct {
	fetcher   Fetcher
	interval  time.Duration
	scheduler gocron.Scheduler
	current   atomic.Pointer[Snapshot]
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewRefresher seeds the snapshot with fallback figures.
func NewRefresher(fetcher Fetcher, interval time.Duration) (*Refresher, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	r := &Refresher{fetcher: fetcher, interval: interval, scheduler: s}
	r.current.Store(&Snapshot{Stats: fetcher.Fallback(), Degraded: true})
	return r, nil
}

// Start schedules the refresh job, running it once immediately. The job's
// fetches are cancelled when ctx ends or Stop is called.
func (r *Refresher) Start(ctx context.Context) error {
	r.ctx, r.cancel = context.WithCancel(ctx)
	_, err := r.scheduler.NewJob(
		gocron.DurationJob(r.interval),
		gocron.NewTask(func() { r.Refresh(r.ctx) }),
		gocron.WithName("stats-refresh"),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to create stats refresh job: %w", err)
	}
	slog.Info("Starting stats refresher", slog.Duration("interval", r.interval))
	r.scheduler.Start()
	return nil
}

// Stop shuts the scheduler down.
func (r *Refresher) Stop() error {
	if r.cancel != nil {
		r.cancel()
	}
	return r.scheduler.Shutdown()
}

// Refresh fetches once and publishes the result.
func (r *Refresher) Refresh(ctx context.Context) {
	stats, err := r.fetcher.Fetch(ctx)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		slog.Warn("Stats refresh used fallback figures", logfields.Error(err))
	}
	r.current.Store(&Snapshot{Stats: stats, FetchedAt: time.Now().UTC(), Degraded: err != nil})
}

// Current returns the latest snapshot.
func (r *Refresher) Current() Snapshot {
	return *r.current.Load()
}
