package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	err := NewValidation("email", "must not be empty")
	assert.Equal(t, "validation failed for email: must not be empty", err.Error())
	assert.True(t, IsDomainError(err))

	var target *ValidationError
	require.True(t, errors.As(error(err), &target))
	assert.Equal(t, "email", target.Field)
}

func TestIllegalStateTransitionError(t *testing.T) {
	err := NewIllegalStateTransition("deleted", "archive")
	assert.Equal(t, "deleted", err.CurrentState)
	assert.Equal(t, "archive", err.AttemptedTransition)
	assert.Equal(t, "illegal state transition: cannot archive from deleted", err.Error())
}

func TestQuotaExceededError(t *testing.T) {
	err := NewQuotaExceeded("projects", 5, 6)
	assert.Equal(t, "projects", err.QuotaType)
	assert.Equal(t, 5, err.Limit)
	assert.Equal(t, 6, err.Attempted)
	assert.Contains(t, err.Error(), "limit 5")
	assert.Contains(t, err.Error(), "attempted 6")
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFound("workspace", "abc")
	assert.Equal(t, "workspace abc not found", err.Error())
}

func TestConcurrentModificationError(t *testing.T) {
	err := NewConcurrentModification("organization", "abc", 7)
	assert.Equal(t, int64(7), err.ExpectedVersion)
	assert.Contains(t, err.Error(), "version 7 is stale")
}

func TestIsDomainError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"validation", NewValidation("f", "m"), true},
		{"invariant", NewInvariantViolation("broken"), true},
		{"illegal state", NewIllegalStateTransition("a", "b"), true},
		{"quota", NewQuotaExceeded("projects", 1, 2), true},
		{"authorization", NewAuthorization("denied"), true},
		{"not found", NewNotFound("r", "id"), true},
		{"concurrent", NewConcurrentModification("r", "id", 1), true},
		{"plain error", fmt.Errorf("boom"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsDomainError(tc.err))
		})
	}
}
