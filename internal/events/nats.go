package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// StreamName is the JetStream stream that retains published events.
const StreamName = "SETTLEMENT_EVENTS"

// NATSPublisher publishes events to JetStream subjects <prefix>.<type>.
type NATSPublisher struct {
	conn   *nats.Conn
	js     nats.JetStreamContext
	prefix string
	logger *slog.Logger
}

// NewNATSPublisher connects to NATS and makes sure the event stream exists.
func NewNATSPublisher(url, prefix string, logger *slog.Logger) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("settlement"),
		nats.Timeout(10*time.Second),
		nats.ReconnectWait(5*time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("nats disconnected", "error", err)
			brokerConnected.WithLabelValues("nats").Set(0)
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("nats reconnected")
			brokerConnected.WithLabelValues("nats").Set(1)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create jetstream context: %w", err)
	}

	p := &NATSPublisher{conn: conn, js: js, prefix: prefix, logger: logger}
	if err := p.ensureStream(); err != nil {
		conn.Close()
		return nil, err
	}

	brokerConnected.WithLabelValues("nats").Set(1)
	return p, nil
}

func (p *NATSPublisher) ensureStream() error {
	if _, err := p.js.StreamInfo(StreamName); err == nil {
		return nil
	}

	_, err := p.js.AddStream(&nats.StreamConfig{
		Name:      StreamName,
		Subjects:  []string{routingKey(p.prefix, ">")},
		Retention: nats.LimitsPolicy,
		MaxAge:    7 * 24 * time.Hour,
		Storage:   nats.FileStorage,
	})
	if err != nil {
		return fmt.Errorf("failed to create stream %s: %w", StreamName, err)
	}

	p.logger.Info("created event stream", "stream", StreamName)
	return nil
}

// Publish writes event to JetStream and waits for the ack. The event ID is
// used as message ID so broker-side deduplication drops replays.
func (p *NATSPublisher) Publish(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := routingKey(p.prefix, event.Type)
	if _, err := p.js.Publish(subject, body, nats.Context(ctx), nats.MsgId(event.ID.String())); err != nil {
		publishedTotal.WithLabelValues("nats", event.Type, "error").Inc()
		return fmt.Errorf("failed to publish %s: %w", subject, err)
	}

	publishedTotal.WithLabelValues("nats", event.Type, "ok").Inc()
	return nil
}

// Close drains pending messages and closes the connection.
func (p *NATSPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
	}
	brokerConnected.WithLabelValues("nats").Set(0)
}
