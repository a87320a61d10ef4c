package ports

import (
	"context"

	"github.com/7Spade/tortoise/internal/domain"
)

// EventPublisher delivers domain events pulled from an aggregate after the
// mutated snapshot has been persisted. Implementations must tolerate
// re-delivery; event IDs make duplicates detectable downstream.
type EventPublisher interface {
	Publish(ctx context.Context, events []domain.Event) error
}
