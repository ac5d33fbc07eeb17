package stats

import (
	"encoding/json"
	"net/http"
	"time"
)

type response struct {
	Stats
	Formatted FormattedStats `json:"formatted"`
	FetchedAt *time.Time     `json:"fetchedAt,omitempty"`
}

// Handler serves GET /api/stats from the refresher's snapshot.
func Handler(r *Refresher) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		snap := r.Current()
		resp := response{Stats: snap.Stats, Formatted: snap.Stats.Formatted()}
		if !snap.FetchedAt.IsZero() {
			resp.FetchedAt = &snap.FetchedAt
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=300")
		_ = json.NewEncoder(w).Encode(resp)
	})
}
