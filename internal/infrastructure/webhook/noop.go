package webhook

import (
	"context"

	"github.com/7Spade/tortoise/internal/application/ports"
)

// NoopEmitter discards envelopes when no webhook URL is configured.
type NoopEmitter struct{}

// NewNoopEmitter returns a WebhookEmitter that discards all envelopes.
func NewNoopEmitter() *NoopEmitter {
	return &NoopEmitter{}
}

// Emit implements ports.WebhookEmitter.
func (e *NoopEmitter) Emit(ctx context.Context, envelope ports.EventEnvelope) error {
	return nil
}

var _ ports.WebhookEmitter = (*NoopEmitter)(nil)
