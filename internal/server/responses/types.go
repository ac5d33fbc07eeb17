// Package responses defines JSON bodies shared by the site and admin handlers.
package responses

import "time"

// HealthResponse is the body of /healthz.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    float64   `json:"uptime"`
}

// ReadinessResponse is the body of /readyz.
type ReadinessResponse struct {
	Ready      bool      `json:"ready"`
	DocsPages  int       `json:"docs_pages"`
	DocsLoaded time.Time `json:"docs_loaded_at"`
	StatsAt    time.Time `json:"stats_fetched_at"`
	Degraded   bool      `json:"stats_degraded"`
	// Set in preview mode when the latest docs reload failed.
	ReloadError string `json:"reload_error,omitempty"`
}

// SampleList is the body of GET /api/samples.
type SampleList[T any] struct {
	Total   int `json:"total"`
	Samples []T `json:"samples"`
}
