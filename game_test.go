package blaster

import (
	"testing"

	"github.com/gekko3d/blaster/fx/core"
	"github.com/gekko3d/blaster/overlay"
	"github.com/gekko3d/blaster/transition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type headlessGame struct {
	app         *App
	input       *Input
	scenes      *SceneManager
	particles   *core.Manager
	transitions *transition.Manager
	batch       *overlay.Batch
}

func newHeadlessGame(t *testing.T) *headlessGame {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Log.Prefix = "test"
	cfg.Particles.Seed = 42

	app := NewAppBuilder().UseModule(DefaultModules(cfg, Options{Headless: true})...).Build()
	t.Cleanup(app.Shutdown)

	g := &headlessGame{app: app}
	var ok bool
	g.input, ok = Resource[Input](app)
	require.True(t, ok)
	g.scenes, ok = Resource[SceneManager](app)
	require.True(t, ok)
	g.particles, ok = Resource[core.Manager](app)
	require.True(t, ok)
	g.transitions, ok = Resource[transition.Manager](app)
	require.True(t, ok)
	g.batch, ok = Resource[overlay.Batch](app)
	require.True(t, ok)
	return g
}

func (g *headlessGame) press(key int) {
	g.input.Set(key, true)
	g.app.Tick()
	g.input.Set(key, false)
}

// tickUntil ticks until cond holds, failing after limit frames.
func (g *headlessGame) tickUntil(t *testing.T, limit int, cond func() bool) {
	t.Helper()
	for i := 0; i < limit; i++ {
		if cond() {
			return
		}
		g.app.Tick()
	}
	require.True(t, cond(), "condition not reached within %d frames", limit)
}

func (g *headlessGame) scene() SceneID {
	id, _ := g.scenes.Current()
	return id
}

func TestHeadlessGame_TitleEmitsAndDraws(t *testing.T) {
	g := newHeadlessGame(t)
	assert.Equal(t, SceneTitle, g.scene())

	for i := 0; i < 30; i++ {
		g.app.Tick()
	}

	group, ok := g.particles.Group(titleSparks)
	require.True(t, ok)
	assert.Greater(t, group.Len(), 0)
	assert.Equal(t, group.Len(), group.InstanceCount())
	assert.Greater(t, g.batch.Len(), 0, "title text is drawn into the overlay")
}

func TestHeadlessGame_FullRound(t *testing.T) {
	g := newHeadlessGame(t)
	g.app.Tick()

	g.press(KeyEnter)
	assert.True(t, g.transitions.IsTransitioning())
	assert.Equal(t, SceneTitle, g.scene(), "the swap waits for the screen to be covered")

	g.tickUntil(t, 120, func() bool { return g.scene() == SceneGame })
	active, ok := g.transitions.Active()
	require.True(t, ok)
	assert.Equal(t, transition.Hold, active.State())
	_, titleAlive := g.particles.Group(titleSparks)
	assert.False(t, titleAlive, "title groups are destroyed with the scene")

	g.tickUntil(t, 120, func() bool { return !g.transitions.IsTransitioning() })

	g.press(KeySpace)
	g.press(KeySpace)
	assert.Equal(t, 2, g.scenes.Score)
	bursts, ok := g.particles.Group(gameBursts)
	require.True(t, ok)
	assert.Equal(t, 128, bursts.Len())

	fieldBefore := g.particles.Field().Enabled
	g.press(KeyG)
	assert.NotEqual(t, fieldBefore, g.particles.Field().Enabled)

	// Escape ends the round early.
	g.press(KeyEscape)
	g.tickUntil(t, 120, func() bool { return g.scene() == SceneResult })
	g.tickUntil(t, 120, func() bool { return !g.transitions.IsTransitioning() })

	_, cur := g.scenes.Current()
	result := cur.(*ResultScene)
	assert.Equal(t, 2, result.score)

	g.press(KeyEnter)
	g.tickUntil(t, 120, func() bool { return g.scene() == SceneTitle })
}

func TestHeadlessGame_RoundTimesOut(t *testing.T) {
	g := newHeadlessGame(t)
	require.NoError(t, g.scenes.Start(SceneGame))
	_, cur := g.scenes.Current()
	game := cur.(*GameScene)
	game.remaining = 0.05

	g.tickUntil(t, 10, func() bool { return g.transitions.IsTransitioning() })
	assert.Equal(t, float32(0), game.Remaining())
	g.tickUntil(t, 120, func() bool { return g.scene() == SceneResult })
}

func TestHeadlessGame_EscapeDuringFadeOutStillEndsRound(t *testing.T) {
	g := newHeadlessGame(t)
	g.app.Tick()

	g.press(KeyEnter)
	g.tickUntil(t, 120, func() bool { return g.scene() == SceneGame })
	g.tickUntil(t, 120, func() bool {
		active, ok := g.transitions.Active()
		return ok && active.State() == transition.FadeOut
	})

	g.press(KeyEscape)
	assert.Equal(t, SceneGame, g.scene())
	active, ok := g.transitions.Active()
	require.True(t, ok)
	assert.Equal(t, transition.KindStripe, activeKind(g.transitions, active))

	g.tickUntil(t, 240, func() bool { return g.scene() == SceneResult })
}

// activeKind reports which registered kind the running transition is.
func activeKind(m *transition.Manager, active *transition.Transition) transition.Kind {
	for _, k := range m.Kinds() {
		if t, _ := m.Get(k); t == active {
			return k
		}
	}
	return ""
}

func TestHeadlessGame_QuitFromTitle(t *testing.T) {
	g := newHeadlessGame(t)
	g.press(KeyEscape)
	assert.True(t, g.app.Quitting())
}
