package statemachine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateMachineBasicTransition(t *testing.T) {
	sm := NewWithState("a")
	sm.Allow("a", "b").Allow("b", "c")

	require.NoError(t, sm.TransitionTo("b"))
	assert.Equal(t, "b", sm.Current())

	require.NoError(t, sm.TransitionTo("c"))
	assert.Equal(t, "c", sm.Current())
}

func TestStateMachineInvalidTransition(t *testing.T) {
	sm := NewWithState("a")
	sm.Allow("a", "b")

	err := sm.TransitionTo("c")
	assert.Error(t, err)
	assert.Equal(t, "a", sm.Current())
}

func TestStateMachineTransitionHook(t *testing.T) {
	sm := NewWithState("a")
	sm.Allow("a", "b")

	var hookFrom, hookTo string
	sm.OnTransition(func(from, to string) error {
		hookFrom, hookTo = from, to
		return nil
	})

	require.NoError(t, sm.TransitionTo("b"))
	assert.Equal(t, "a", hookFrom)
	assert.Equal(t, "b", hookTo)
}

func TestStateMachineHookFailureBlocksTransition(t *testing.T) {
	sm := NewWithState("a")
	sm.Allow("a", "b")
	sm.OnTransition(func(from, to string) error {
		return errors.New("rejected")
	})

	assert.Error(t, sm.TransitionTo("b"))
	assert.Equal(t, "a", sm.Current())
}

func TestProjectionStateMachine(t *testing.T) {
	tests := []struct {
		name  string
		from  ProjectionStatus
		to    ProjectionStatus
		valid bool
	}{
		{"pending to accepted", ProjectionPending, ProjectionAccepted, true},
		{"pending to declined", ProjectionPending, ProjectionDeclined, true},
		{"pending to revoked", ProjectionPending, ProjectionRevoked, true},
		{"accepted to revoked", ProjectionAccepted, ProjectionRevoked, true},
		{"declined to pending", ProjectionDeclined, ProjectionPending, true},
		{"revoked to pending", ProjectionRevoked, ProjectionPending, true},
		{"accepted to declined", ProjectionAccepted, ProjectionDeclined, false},
		{"revoked to accepted", ProjectionRevoked, ProjectionAccepted, false},
		{"declined to accepted", ProjectionDeclined, ProjectionAccepted, false},
	}

	sm := NewProjectionStateMachine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, sm.CanTransition(tt.from, tt.to))
		})
	}
}

func TestProjectionStatusPredicates(t *testing.T) {
	assert.True(t, ProjectionPending.IsActive())
	assert.True(t, ProjectionAccepted.IsActive())
	assert.False(t, ProjectionDeclined.IsActive())
	assert.False(t, ProjectionRevoked.IsActive())

	assert.True(t, ProjectionDeclined.IsClosed())
	assert.True(t, ProjectionRevoked.IsClosed())
	assert.False(t, ProjectionPending.IsClosed())
}
