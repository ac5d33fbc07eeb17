package tracking

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// StreamName is the JetStream stream capturing analytics events.
const StreamName = "ODLSITE_ANALYTICS"

// NATSSink publishes events to a JetStream subject.
type NATSSink struct {
	conn    *nats.Conn
	js      jetstream.JetStream
	subject string
}

// NewNATSSink connects and makes sure a stream captures subject.
func NewNATSSink(ctx context.Context, url, subject string) (*NATSSink, error) {
	conn, err := nats.Connect(url,
		nats.Name("odlsite"),
		nats.Timeout(5*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	sctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if _, err := js.CreateOrUpdateStream(sctx, jetstream.StreamConfig{
		Name:        StreamName,
		Description: "Consented UI analytics events from opendataloader.org",
		Subjects:    []string{subject},
		MaxAge:      90 * 24 * time.Hour,
	}); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ensure analytics stream: %w", err)
	}

	slog.Info("NATS analytics sink initialized", "url", url, "subject", subject)
	return &NATSSink{conn: conn, js: js, subject: subject}, nil
}

func (s *NATSSink) Publish(ctx context.Context, e Event) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if _, err := s.js.Publish(ctx, s.subject, data, jetstream.WithMsgID(e.ID)); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// Close drains the connection.
func (s *NATSSink) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Drain()
}
