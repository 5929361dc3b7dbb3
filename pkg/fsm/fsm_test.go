package fsm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/fsm"
)

const (
	stateIdle       fsm.State = "idle"
	stateRunning    fsm.State = "running"
	stateDone       fsm.State = "done"
	eventStart      fsm.Event = "start"
	eventFinish     fsm.Event = "finish"
	eventNeverAdded fsm.Event = "never_added"
)

func newMachine() *fsm.Machine {
	m := fsm.New(stateIdle)
	m.AddTransition(stateIdle, eventStart, stateRunning).
		AddTransition(stateRunning, eventFinish, stateDone)
	return m
}

func TestMachine_Fire(t *testing.T) {
	t.Parallel()

	t.Run("walks registered transitions", func(t *testing.T) {
		t.Parallel()
		m := newMachine()

		assert.Equal(t, stateIdle, m.Current())
		require.NoError(t, m.Fire(eventStart))
		assert.Equal(t, stateRunning, m.Current())
		require.NoError(t, m.Fire(eventFinish))
		assert.Equal(t, stateDone, m.Current())
	})

	t.Run("rejects unregistered events", func(t *testing.T) {
		t.Parallel()
		m := newMachine()

		err := m.Fire(eventNeverAdded)
		require.Error(t, err)

		var noTransition *fsm.NoTransitionError
		require.ErrorAs(t, err, &noTransition)
		assert.Equal(t, stateIdle, noTransition.State)
		assert.Equal(t, eventNeverAdded, noTransition.Event)
		assert.Equal(t, stateIdle, m.Current(), "state unchanged on rejected event")
	})

	t.Run("rejects events valid only in other states", func(t *testing.T) {
		t.Parallel()
		m := newMachine()

		assert.Error(t, m.Fire(eventFinish))
	})
}

func TestMachine_CanFire(t *testing.T) {
	t.Parallel()
	m := newMachine()

	assert.True(t, m.CanFire(eventStart))
	assert.False(t, m.CanFire(eventFinish))

	require.NoError(t, m.Fire(eventStart))
	assert.True(t, m.CanFire(eventFinish))
}

func TestMachine_Reset(t *testing.T) {
	t.Parallel()
	m := newMachine()

	require.NoError(t, m.Fire(eventStart))
	m.Reset()
	assert.Equal(t, stateIdle, m.Current())
	assert.True(t, m.CanFire(eventStart))
}
