package transition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	m := NewManager(nil)
	_ = m.Register(KindFade, New(NewFade(0.2, 0.1)))
	_ = m.Register(KindStripe, New(NewStripe(6, 0.2, 0.02, 0.1)))
	return m
}

func TestManager_StartAndFinish(t *testing.T) {
	m := newTestManager()
	calls := 0
	require.NoError(t, m.Start(KindStripe, func() { calls++ }))
	assert.True(t, m.IsTransitioning())

	active, ok := m.Active()
	require.True(t, ok)
	stripe, _ := m.Get(KindStripe)
	assert.Same(t, stripe, active)
	assert.NotEmpty(t, m.Quads(320, 240))

	for i := 0; m.IsTransitioning(); i++ {
		require.Less(t, i, 1000)
		m.Update(step)
	}
	assert.Equal(t, 1, calls)
	assert.Nil(t, m.Quads(320, 240))
}

func TestManager_RejectsWhileActive(t *testing.T) {
	m := newTestManager()
	require.NoError(t, m.Start(KindFade, func() {}))
	m.Update(step)

	fade, _ := m.Get(KindFade)
	state, elapsed := fade.State(), fade.Elapsed()

	called := false
	// A different kind is rejected too: only one transition runs at a time.
	assert.ErrorIs(t, m.Start(KindStripe, func() { called = true }), ErrTransitionActive)
	assert.ErrorIs(t, m.Start(KindFade, func() { called = true }), ErrTransitionActive)

	stripe, _ := m.Get(KindStripe)
	assert.False(t, stripe.IsTransitioning())
	assert.Equal(t, state, fade.State())
	assert.Equal(t, elapsed, fade.Elapsed())

	for m.IsTransitioning() {
		m.Update(step)
	}
	assert.False(t, called, "rejected requests are dropped, not queued")
}

func TestManager_UnregisteredKindChangesImmediately(t *testing.T) {
	m := newTestManager()
	called := 0
	require.NoError(t, m.Start(Kind("swirl"), func() { called++ }))
	assert.Equal(t, 1, called)
	assert.False(t, m.IsTransitioning())

	// Nil callbacks are tolerated.
	assert.NoError(t, m.Start(Kind("swirl"), nil))
}

func TestManager_Kinds(t *testing.T) {
	m := newTestManager()
	assert.Equal(t, []Kind{KindFade, KindStripe}, m.Kinds())
	_, ok := m.Get(Kind("swirl"))
	assert.False(t, ok)
}

func TestManager_UpdateIdle(t *testing.T) {
	m := newTestManager()
	m.Update(step)
	_, ok := m.Active()
	assert.False(t, ok)
}

func TestManager_RegisterKeepsRunningTransition(t *testing.T) {
	m := newTestManager()
	calls := 0
	require.NoError(t, m.Start(KindFade, func() { calls++ }))
	m.Update(step)

	running, _ := m.Get(KindFade)
	assert.ErrorIs(t, m.Register(KindFade, New(NewFade(1, 1))), ErrTransitionActive)
	got, _ := m.Get(KindFade)
	assert.Same(t, running, got)

	// Other kinds can still be replaced.
	stripe := New(NewStripe(4, 0.1, 0.01, 0.1))
	require.NoError(t, m.Register(KindStripe, stripe))
	got, _ = m.Get(KindStripe)
	assert.Same(t, stripe, got)

	for i := 0; m.IsTransitioning(); i++ {
		require.Less(t, i, 1000)
		m.Update(step)
	}
	assert.Equal(t, 1, calls)
	require.NoError(t, m.Register(KindFade, New(NewFade(1, 1))))
}
