package handlers

import (
	"net/http"
	"time"

	"github.com/opendataloader-project/odlsite/internal/server/responses"
	"github.com/opendataloader-project/odlsite/internal/version"
)

// ReloadStatus reports the outcome of the latest docs reload.
type ReloadStatus interface {
	LastError() error
}

// MonitoringHandlers answer liveness and readiness probes.
type MonitoringHandlers struct {
	started time.Time
	docs    DocsSource
	stats   StatsSource
	reload  ReloadStatus
}

// NewMonitoringHandlers builds the probes; reload may be nil outside preview.
func NewMonitoringHandlers(docs DocsSource, stats StatsSource, reload ReloadStatus) *MonitoringHandlers {
	return &MonitoringHandlers{started: time.Now(), docs: docs, stats: stats, reload: reload}
}

func (h *MonitoringHandlers) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	_ = writeJSONPretty(w, r, http.StatusOK, responses.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   version.Version,
		Uptime:    time.Since(h.started).Seconds(),
	})
}

// HandleReadiness is ready once a docs collection has loaded. Stale stats
// only degrade the response; fallbacks are always servable.
func (h *MonitoringHandlers) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	col := h.docs.Current()
	snap := h.stats.Current()
	resp := responses.ReadinessResponse{
		Ready:      !col.LoadedAt.IsZero(),
		DocsPages:  len(col.Pages()),
		DocsLoaded: col.LoadedAt,
		StatsAt:    snap.FetchedAt,
		Degraded:   snap.Degraded,
	}
	if h.reload != nil {
		if err := h.reload.LastError(); err != nil {
			resp.ReloadError = err.Error()
		}
	}
	status := http.StatusOK
	if !resp.Ready {
		status = http.StatusServiceUnavailable
	}
	_ = writeJSONPretty(w, r, status, resp)
}
