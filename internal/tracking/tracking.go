// Package tracking forwards UI analytics events to a sink once the visitor has
// accepted cookies.
package tracking

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/opendataloader-project/odlsite/internal/consent"
	"github.com/opendataloader-project/odlsite/internal/logfields"
	"github.com/opendataloader-project/odlsite/internal/metrics"
)

// Event is one UI interaction, such as a CTA click or a viewer tab switch.
type Event struct {
	ID        string         `json:"id"`
	Name      string         `json:"event" validate:"required,max=64,printascii"`
	Params    map[string]any `json:"params,omitempty" validate:"max=25"`
	Path      string         `json:"path,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

var validate = validator.New()

// Validate checks the event name and parameter count.
func (e Event) Validate() error {
	if err := validate.Struct(e); err != nil {
		return err
	}
	if strings.ContainsAny(e.Name, " \t") {
		return fmt.Errorf("event name %q contains whitespace", e.Name)
	}
	return nil
}

// Sink receives forwarded events.
type Sink interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Tracker applies the consent gate in front of a Sink.
type Tracker struct {
	sink     Sink
	recorder metrics.Recorder
}

func NewTracker(sink Sink, recorder metrics.Recorder) *Tracker {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Tracker{sink: sink, recorder: recorder}
}

// Track forwards e when state allows cookies and reports whether it did.
// Sink failures are logged and swallowed.
func (t *Tracker) Track(ctx context.Context, state consent.State, e Event) bool {
	if !state.CanUseCookies() {
		t.recorder.IncTrackedEvent(e.Name, false)
		return false
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	if err := t.sink.Publish(ctx, e); err != nil {
		slog.DebugContext(ctx, "Dropped analytics event", logfields.Event(e.Name), logfields.Error(err))
		t.recorder.IncTrackedEvent(e.Name, false)
		return false
	}
	t.recorder.IncTrackedEvent(e.Name, true)
	return true
}

// Close releases the sink.
func (t *Tracker) Close() error {
	return t.sink.Close()
}

// LogSink writes events to the structured log.
type LogSink struct {
	Logger *slog.Logger
}

func (s LogSink) Publish(ctx context.Context, e Event) error {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "Analytics event",
		logfields.Event(e.Name),
		logfields.Path(e.Path),
		slog.String("id", e.ID),
		slog.Any("params", e.Params))
	return nil
}

func (LogSink) Close() error { return nil }
