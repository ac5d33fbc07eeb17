// Package metrics provides observability hooks for the site server.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so call sites never check for nil:
//
//	type Service struct {
//	    recorder metrics.Recorder
//	}
//
//	svc := &Service{recorder: metrics.NoopRecorder{}}
//
// When monitoring is enabled the serve command swaps in a PrometheusRecorder
// backed by a dedicated registry, and the admin listener exposes it through
// HTTPHandler.
package metrics
