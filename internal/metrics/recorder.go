package metrics

import "time"

// ResultLabel enumerates outcome categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultFailure  ResultLabel = "failure"
	ResultRejected ResultLabel = "rejected"
	ResultCanceled ResultLabel = "canceled"
)

// Recorder defines observability hooks for the site. Implementations may
// forward to Prometheus; NoopRecorder is the default.
type Recorder interface {
	ObserveHTTPRequest(route string, status int, d time.Duration)
	IncContactOutcome(result ResultLabel)
	ObserveBlobFetch(dataType string, d time.Duration, result ResultLabel)
	IncBlobCache(hit bool)
	IncStatsRefresh(source string, result ResultLabel)
	IncTrackedEvent(event string, forwarded bool)
	IncDocsReload(result ResultLabel)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveHTTPRequest(string, int, time.Duration)           {}
func (NoopRecorder) IncContactOutcome(ResultLabel)                           {}
func (NoopRecorder) ObserveBlobFetch(string, time.Duration, ResultLabel)     {}
func (NoopRecorder) IncBlobCache(bool)                                       {}
func (NoopRecorder) IncStatsRefresh(string, ResultLabel)                     {}
func (NoopRecorder) IncTrackedEvent(string, bool)                            {}
func (NoopRecorder) IncDocsReload(ResultLabel)                               {}

// ResultOf maps an error to a success or failure label.
func ResultOf(err error) ResultLabel {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}
