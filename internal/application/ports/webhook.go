package ports

import (
	"context"
	"time"
)

// EventEnvelope is the wire shape of a published domain event.
type EventEnvelope struct {
	EventID     string         `json:"event_id"`
	EventType   string         `json:"event_type"`
	AggregateID string         `json:"aggregate_id"`
	OccurredAt  time.Time      `json:"occurred_at"`
	Payload     map[string]any `json:"payload,omitempty"`
}

// WebhookEmitter delivers event envelopes to an external endpoint.
type WebhookEmitter interface {
	Emit(ctx context.Context, envelope EventEnvelope) error
}
