package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBaseEvent(t *testing.T) {
	aggregateID := NewWorkspaceID().String()

	ev := NewBaseEvent(EventWorkspaceCreated, aggregateID)

	assert.Equal(t, EventWorkspaceCreated, ev.EventType())
	assert.Equal(t, aggregateID, ev.AggregateID())
	assert.Equal(t, ev.OccurredAt().UTC(), ev.OccurredAt(), "timestamps are UTC")

	parsed, err := uuid.Parse(ev.EventID())
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version(), "event IDs sort by creation time")
}

func TestBaseEventIDsAreUnique(t *testing.T) {
	a := NewBaseEvent(EventWorkspaceCreated, "agg")
	b := NewBaseEvent(EventWorkspaceCreated, "agg")
	assert.NotEqual(t, a.EventID(), b.EventID())
}
