// Package queue publishes domain events through Asynq/Redis and runs the
// worker that delivers them to the configured webhook endpoint.
package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/7Spade/tortoise/internal/application/ports"
	"github.com/7Spade/tortoise/internal/domain"
)

// TypeDomainEvent is the Asynq task type carrying an event envelope.
const TypeDomainEvent = "domain:event"

// EventPublisher enqueues domain events as Asynq tasks.
type EventPublisher struct {
	client *asynq.Client
	log    zerolog.Logger
}

// NewAsynqPublisher connects the publisher to Redis.
func NewAsynqPublisher(redisOpt asynq.RedisClientOpt, log zerolog.Logger) *EventPublisher {
	return &EventPublisher{client: asynq.NewClient(redisOpt), log: log}
}

// Close releases the underlying Redis client.
func (q *EventPublisher) Close() error {
	return q.client.Close()
}

// Publish enqueues one task per event. Publishing stops at the first enqueue
// failure; already-enqueued events may be re-published by the caller, and the
// event ID lets consumers drop duplicates.
func (q *EventPublisher) Publish(ctx context.Context, events []domain.Event) error {
	for _, ev := range events {
		body, err := json.Marshal(Envelope(ev))
		if err != nil {
			return err
		}
		task := asynq.NewTask(TypeDomainEvent, body)
		if _, err := q.client.EnqueueContext(ctx, task); err != nil {
			q.log.Warn().Err(err).Str("event_type", ev.EventType().String()).Msg("enqueue domain event failed")
			return err
		}
	}
	return nil
}

// Envelope projects a domain event onto its wire shape. The payload carries
// the full serialized event, base fields included.
func Envelope(ev domain.Event) ports.EventEnvelope {
	payload := map[string]any{}
	if raw, err := json.Marshal(ev); err == nil {
		_ = json.Unmarshal(raw, &payload)
	}
	return ports.EventEnvelope{
		EventID:     ev.EventID(),
		EventType:   ev.EventType().String(),
		AggregateID: ev.AggregateID(),
		OccurredAt:  ev.OccurredAt(),
		Payload:     payload,
	}
}

var _ ports.EventPublisher = (*EventPublisher)(nil)
