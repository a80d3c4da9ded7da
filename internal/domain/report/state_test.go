package report

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_HappyPath(t *testing.T) {
	tr := NewTracker()
	for _, s := range []State{StateValidating, StateFetching, StateRendering, StateStoring, StateNotifying, StateDone} {
		require.NoError(t, tr.Advance(s))
	}
	assert.Equal(t, StateDone, tr.State())
	assert.Equal(t, []State{
		StateIdle, StateValidating, StateFetching, StateRendering, StateStoring, StateNotifying, StateDone,
	}, tr.History())
}

func TestTracker_EmptyShortCircuit(t *testing.T) {
	tr := NewTracker()
	require.NoError(t, tr.Advance(StateValidating))
	require.NoError(t, tr.Advance(StateFetching))
	require.NoError(t, tr.Advance(StateEmptyShortCircuit))
	require.NoError(t, tr.Advance(StateDone))
	assert.True(t, tr.State().Terminal())
}

func TestTracker_RejectsSkippedStages(t *testing.T) {
	tr := NewTracker()
	require.NoError(t, tr.Advance(StateValidating))

	err := tr.Advance(StateRendering)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StateValidating, tr.State())
}

func TestCanTransition_Failed(t *testing.T) {
	for _, s := range []State{StateIdle, StateValidating, StateFetching, StateRendering, StateStoring, StateNotifying} {
		assert.True(t, CanTransition(s, StateFailed), s)
	}
	assert.False(t, CanTransition(StateDone, StateFailed))
	assert.False(t, CanTransition(StateFailed, StateFailed))
	assert.False(t, CanTransition(StateFailed, StateValidating))
}

func TestStageError(t *testing.T) {
	cause := errors.New("bucket not found")
	err := fmt.Errorf("run: %w", NewStageError(StateStoring, cause))

	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindStore, kind)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "run: StoreError: bucket not found", err.Error())

	_, ok = KindOf(cause)
	assert.False(t, ok)
}
