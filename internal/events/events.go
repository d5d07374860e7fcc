// Package events publishes domain events (checkout confirmations, renewal
// failures, content unlocks) to a message broker.
package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/myfans/settlement/internal/config"
)

// Event types. They double as AMQP routing keys and NATS subject suffixes.
const (
	TypeCheckoutConfirmed         = "checkout.confirmed"
	TypeSubscriptionRenewalFailed = "subscription.renewal_failed"
	TypeContentUnlocked           = "content.unlocked"
)

// Event is the envelope written to the broker.
type Event struct {
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload"`
	Type       string    `json:"type"`
	ID         uuid.UUID `json:"id"`
}

// New wraps payload in an envelope of the given type.
func New(eventType string, payload any, at time.Time) Event {
	return Event{
		ID:         uuid.New(),
		Type:       eventType,
		OccurredAt: at.UTC(),
		Payload:    payload,
	}
}

// CheckoutConfirmed is published when a checkout records its transaction hash.
type CheckoutConfirmed struct {
	CheckoutID     uuid.UUID `json:"checkoutId"`
	FanAddress     string    `json:"fanAddress"`
	CreatorAddress string    `json:"creatorAddress"`
	PlanID         int64     `json:"planId"`
	AssetCode      string    `json:"assetCode"`
	Total          string    `json:"total"`
	TxHash         string    `json:"txHash"`
}

// RenewalFailed is published when a checkout is marked failed.
type RenewalFailed struct {
	Timestamp      time.Time `json:"timestamp"`
	SubscriptionID string    `json:"subscriptionId"`
	Reason         string    `json:"reason,omitempty"`
	UserID         string    `json:"userId,omitempty"`
}

// ContentUnlocked is published once per successful unlock.
type ContentUnlocked struct {
	PurchaseID uuid.UUID `json:"purchaseId"`
	Buyer      string    `json:"buyer"`
	ContentID  uint64    `json:"contentId"`
}

// Publisher is the interface implemented by types that can publish events.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close()
}

// NewPublisher connects the configured backend. When the broker cannot be
// reached at startup it logs the failure and returns a LogPublisher so the
// service can still serve requests.
func NewPublisher(cfg *config.EventsConfig, logger *slog.Logger) Publisher {
	var (
		p   Publisher
		err error
	)

	switch cfg.Backend {
	case "amqp":
		p, err = NewAMQPPublisher(cfg.AMQPURL, cfg.Exchange, logger)
	case "nats":
		p, err = NewNATSPublisher(cfg.NATSURL, cfg.SubjectPrefix, logger)
	default:
		return NewLogPublisher(logger)
	}

	if err != nil {
		logger.Warn("event broker unavailable, falling back to log publisher",
			"backend", cfg.Backend,
			"error", err,
		)
		return NewLogPublisher(logger)
	}

	logger.Info("event publisher connected", "backend", cfg.Backend)
	return p
}

func routingKey(prefix, eventType string) string {
	if prefix == "" {
		return eventType
	}
	return fmt.Sprintf("%s.%s", prefix, eventType)
}
