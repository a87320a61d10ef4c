package domain

// AggregateRoot is the base embedded by aggregate roots. It buffers domain
// events raised during a unit of work; the use-case layer pulls and publishes
// them after persistence. Buffers are per-instance and unsynchronized: an
// aggregate instance must not be mutated from two call sites concurrently.
type AggregateRoot struct {
	events []Event
}

// Record appends a domain event to the pending buffer.
func (a *AggregateRoot) Record(e Event) {
	a.events = append(a.events, e)
}

// PendingEvents returns the buffered events without clearing them.
func (a *AggregateRoot) PendingEvents() []Event {
	out := make([]Event, len(a.events))
	copy(out, a.events)
	return out
}

// PullEvents returns and clears all pending domain events.
func (a *AggregateRoot) PullEvents() []Event {
	events := a.events
	a.events = nil
	return events
}

// ClearEvents drops any pending events without returning them.
func (a *AggregateRoot) ClearEvents() {
	a.events = nil
}

// HasPendingEvents reports whether undispatched events remain.
func (a *AggregateRoot) HasPendingEvents() bool {
	return len(a.events) > 0
}
