package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/7Spade/tortoise/internal/application/ports"
)

// Worker consumes domain-event tasks and hands each envelope to the webhook
// emitter. Call Run to start.
type Worker struct {
	srv     *asynq.Server
	mux     *asynq.ServeMux
	emitter ports.WebhookEmitter
	log     zerolog.Logger
}

// NewWorker creates an Asynq server and registers the event handler.
func NewWorker(redisOpt asynq.RedisClientOpt, emitter ports.WebhookEmitter, log zerolog.Logger) *Worker {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 2,
		LogLevel:    asynq.InfoLevel,
	})
	mux := asynq.NewServeMux()
	w := &Worker{srv: srv, mux: mux, emitter: emitter, log: log}
	mux.HandleFunc(TypeDomainEvent, w.handleDomainEvent)
	return w
}

func (w *Worker) handleDomainEvent(ctx context.Context, t *asynq.Task) error {
	var envelope ports.EventEnvelope
	if err := json.Unmarshal(t.Payload(), &envelope); err != nil {
		w.log.Error().Err(err).Msg("domain event payload invalid")
		return err
	}
	if err := w.emitter.Emit(ctx, envelope); err != nil {
		w.log.Warn().Err(err).
			Str("event_id", envelope.EventID).
			Str("event_type", envelope.EventType).
			Msg("webhook delivery failed")
		return err
	}
	w.log.Debug().
		Str("event_id", envelope.EventID).
		Str("event_type", envelope.EventType).
		Str("aggregate_id", envelope.AggregateID).
		Msg("domain event delivered")
	return nil
}

// Run blocks until shutdown. Use Shutdown for graceful stop.
func (w *Worker) Run() error {
	return w.srv.Run(w.mux)
}

// Shutdown stops the worker.
func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}
