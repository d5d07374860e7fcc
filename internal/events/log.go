package events

import (
	"context"
	"log/slog"
)

// LogPublisher writes events to the log instead of a broker.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates a LogPublisher.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs event and never fails.
func (p *LogPublisher) Publish(_ context.Context, event Event) error {
	p.logger.Info("event published",
		"event_id", event.ID,
		"event_type", event.Type,
		"payload", event.Payload,
	)
	publishedTotal.WithLabelValues("log", event.Type, "ok").Inc()
	return nil
}

// Close is a no-op.
func (p *LogPublisher) Close() {}
