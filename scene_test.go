package blaster

import (
	"errors"
	"testing"

	"github.com/gekko3d/blaster/fx/core"
	"github.com/gekko3d/blaster/transition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingScene struct {
	id      string
	events  *[]string
	initErr error
}

func (s *recordingScene) Initialize(ctx *SceneContext) error {
	*s.events = append(*s.events, "init "+s.id)
	return s.initErr
}
func (s *recordingScene) Update(ctx *SceneContext, dt float32) {
	*s.events = append(*s.events, "update "+s.id)
}
func (s *recordingScene) Draw(ctx *SceneContext) {}
func (s *recordingScene) Finalize(ctx *SceneContext) {
	*s.events = append(*s.events, "finalize "+s.id)
}

func newTestScenes(t *testing.T, transitions *transition.Manager) (*SceneManager, *[]string) {
	t.Helper()
	events := &[]string{}
	ctx := &SceneContext{Particles: core.NewManager(nil, nil), Input: &Input{}}
	m := NewSceneManager(transitions, ctx)
	for _, id := range []SceneID{"a", "b"} {
		m.Register(id, func() Scene { return &recordingScene{id: string(id), events: events} })
	}
	return m, events
}

func TestSceneManager_StartAndUpdate(t *testing.T) {
	m, events := newTestScenes(t, nil)

	require.NoError(t, m.Start("a"))
	m.Update(0.1)
	require.NoError(t, m.Start("b"))

	assert.Equal(t, []string{"init a", "update a", "finalize a", "init b"}, *events)
	id, _ := m.Current()
	assert.Equal(t, SceneID("b"), id)
	assert.Equal(t, []SceneID{"a", "b"}, m.Registered())
}

func TestSceneManager_UnknownScene(t *testing.T) {
	m, _ := newTestScenes(t, transition.NewManager(nil))

	assert.ErrorIs(t, m.Start("nope"), ErrSceneNotRegistered)
	assert.ErrorIs(t, m.ChangeScene("nope", transition.KindFade), ErrSceneNotRegistered)
}

func TestSceneManager_ChangeSceneSwapsDuringHold(t *testing.T) {
	transitions := transition.NewManager(nil)
	fade := transition.New(transition.NewFade(0.1, 0.1))
	require.NoError(t, transitions.Register(transition.KindFade, fade))

	m, events := newTestScenes(t, transitions)
	require.NoError(t, m.Start("a"))
	require.NoError(t, m.ChangeScene("b", transition.KindFade))

	// Still on a while fading in.
	transitions.Update(0.05)
	id, _ := m.Current()
	assert.Equal(t, SceneID("a"), id)
	assert.Equal(t, transition.FadeIn, fade.State())

	// A second request while the first is running is dropped.
	err := m.ChangeScene("a", transition.KindFade)
	assert.ErrorIs(t, err, transition.ErrTransitionActive)

	for i := 0; i < 10 && fade.State() != transition.Hold; i++ {
		transitions.Update(0.05)
	}
	require.Equal(t, transition.Hold, fade.State())
	id, _ = m.Current()
	assert.Equal(t, SceneID("b"), id)

	for i := 0; i < 20 && transitions.IsTransitioning(); i++ {
		transitions.Update(0.05)
	}
	assert.False(t, transitions.IsTransitioning())
	assert.Equal(t, []string{"init a", "finalize a", "init b"}, *events)
}

func TestSceneManager_UnregisteredTransitionSwapsImmediately(t *testing.T) {
	m, _ := newTestScenes(t, transition.NewManager(nil))
	require.NoError(t, m.Start("a"))

	require.NoError(t, m.ChangeScene("b", transition.Kind("missing")))
	id, _ := m.Current()
	assert.Equal(t, SceneID("b"), id)
}

func TestSceneManager_InitializeFailureLeavesNoScene(t *testing.T) {
	events := &[]string{}
	m := NewSceneManager(nil, &SceneContext{})
	m.Register("bad", func() Scene {
		return &recordingScene{id: "bad", events: events, initErr: errors.New("boom")}
	})

	err := m.Start("bad")
	assert.ErrorContains(t, err, "boom")
	_, cur := m.Current()
	assert.Nil(t, cur)
	m.Update(0.1)
	m.Shutdown()
	assert.Equal(t, []string{"init bad", "finalize bad"}, *events)
}

func TestSceneManager_FailedInitializeReleasesGroups(t *testing.T) {
	particles := core.NewManager(nil, nil)
	ctx := &SceneContext{Particles: particles, Input: &Input{}, Logger: NewNopLogger()}
	m := NewSceneManager(nil, ctx)
	m.Register(SceneGame, func() Scene { return NewGameScene() })

	// The fountain group is taken, so the game scene fails after creating
	// its bursts group.
	require.NoError(t, particles.CreateGroup(gameFountain, ""))
	assert.ErrorIs(t, m.Start(SceneGame), core.ErrGroupExists)
	_, leaked := particles.Group(gameBursts)
	assert.False(t, leaked)
	_, cur := m.Current()
	assert.Nil(t, cur)

	// Entering again is not blocked by the earlier attempt.
	_ = particles.DestroyGroup(gameFountain)
	require.NoError(t, m.Start(SceneGame))
	id, _ := m.Current()
	assert.Equal(t, SceneGame, id)
}
