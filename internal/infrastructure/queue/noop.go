package queue

import (
	"context"

	"github.com/7Spade/tortoise/internal/application/ports"
	"github.com/7Spade/tortoise/internal/domain"
)

// NoopPublisher discards events when Redis/Asynq is not configured.
type NoopPublisher struct{}

// NewNoopPublisher returns an EventPublisher that discards all events.
func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

// Publish implements ports.EventPublisher.
func (q *NoopPublisher) Publish(ctx context.Context, events []domain.Event) error {
	return nil
}

var _ ports.EventPublisher = (*NoopPublisher)(nil)
