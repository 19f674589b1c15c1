package blaster

import (
	"fmt"
	"sort"

	"github.com/gekko3d/blaster/fx/core"
	"github.com/gekko3d/blaster/overlay"
	"github.com/gekko3d/blaster/transition"
)

type SceneID string

// SceneContext is what a scene can reach. Camera, Overlay and Assets are nil
// when the corresponding module is not installed.
type SceneContext struct {
	Particles *core.Manager
	Input     *Input
	Camera    *core.CameraState
	Overlay   *overlay.Batch
	Assets    *AssetServer
	Scenes    *SceneManager
	Logger    Logger

	// SpriteTexture is the texture path scenes bind their particle groups to.
	SpriteTexture string
	Quit          func()
}

type Scene interface {
	Initialize(ctx *SceneContext) error
	Update(ctx *SceneContext, dt float32)
	Draw(ctx *SceneContext)
	Finalize(ctx *SceneContext)
}

type SceneFactory func() Scene

// SceneManager owns the current scene. Scene changes requested through
// ChangeScene happen inside the transition callback, while the screen is
// fully covered.
type SceneManager struct {
	factories   map[SceneID]SceneFactory
	transitions *transition.Manager
	ctx         *SceneContext

	current   Scene
	currentID SceneID

	// Score carries the last round's result between scenes.
	Score int
}

func NewSceneManager(transitions *transition.Manager, ctx *SceneContext) *SceneManager {
	m := &SceneManager{
		factories:   make(map[SceneID]SceneFactory),
		transitions: transitions,
		ctx:         ctx,
	}
	if ctx.Logger == nil {
		ctx.Logger = NewNopLogger()
	}
	if ctx.Quit == nil {
		ctx.Quit = func() {}
	}
	ctx.Scenes = m
	return m
}

func (m *SceneManager) Register(id SceneID, factory SceneFactory) {
	m.factories[id] = factory
}

func (m *SceneManager) Registered() []SceneID {
	ids := make([]SceneID, 0, len(m.factories))
	for id := range m.factories {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (m *SceneManager) Current() (SceneID, Scene) {
	return m.currentID, m.current
}

// Start switches to id immediately, without a transition.
func (m *SceneManager) Start(id SceneID) error {
	if _, ok := m.factories[id]; !ok {
		return fmt.Errorf("start scene %q: %w", id, ErrSceneNotRegistered)
	}
	return m.switchTo(id)
}

// ChangeScene switches to id behind the transition of the given kind. It
// returns transition.ErrTransitionActive when another change is in flight;
// that request is dropped.
func (m *SceneManager) ChangeScene(id SceneID, kind transition.Kind) error {
	if _, ok := m.factories[id]; !ok {
		return fmt.Errorf("change scene to %q: %w", id, ErrSceneNotRegistered)
	}
	swap := func() {
		if err := m.switchTo(id); err != nil {
			m.ctx.Logger.Errorf("%v", err)
		}
	}
	if m.transitions == nil {
		swap()
		return nil
	}
	if err := m.transitions.Start(kind, swap); err != nil {
		return fmt.Errorf("change scene to %q: %w", id, err)
	}
	return nil
}

func (m *SceneManager) switchTo(id SceneID) error {
	next := m.factories[id]()
	if m.current != nil {
		m.current.Finalize(m.ctx)
		m.ctx.Logger.Debugf("scene %q finalized", m.currentID)
	}
	m.current, m.currentID = nil, ""

	if err := next.Initialize(m.ctx); err != nil {
		// undo whatever Initialize set up before failing
		next.Finalize(m.ctx)
		return fmt.Errorf("initialize scene %q: %w", id, err)
	}
	m.current, m.currentID = next, id
	m.ctx.Logger.Infof("scene %q started", id)
	return nil
}

func (m *SceneManager) Update(dt float32) {
	if m.current != nil {
		m.current.Update(m.ctx, dt)
	}
}

func (m *SceneManager) Draw() {
	if m.current != nil && m.ctx.Overlay != nil {
		m.current.Draw(m.ctx)
	}
}

// Shutdown finalizes the current scene.
func (m *SceneManager) Shutdown() {
	if m.current != nil {
		m.current.Finalize(m.ctx)
		m.current, m.currentID = nil, ""
	}
}

// SceneModule builds the SceneManager from the installed resources and starts
// Initial. It needs ParticleModule, InputModule, TimeModule and
// TransitionModule installed before it.
type SceneModule struct {
	Initial SceneID
}

const spriteTexturePath = "sprite:spark"

func (mod SceneModule) Install(app *App, cmd *Commands) {
	particles, ok := Resource[core.Manager](app)
	if !ok {
		panic("SceneModule requires ParticleModule")
	}
	input, ok := Resource[Input](app)
	if !ok {
		panic("SceneModule requires InputModule")
	}
	transitions, ok := Resource[transition.Manager](app)
	if !ok {
		panic("SceneModule requires TransitionModule")
	}

	ctx := &SceneContext{
		Particles: particles,
		Input:     input,
		Logger:    app.Logger(),
		Quit:      cmd.Quit,
	}
	ctx.Camera, _ = Resource[core.CameraState](app)
	ctx.Overlay, _ = Resource[overlay.Batch](app)
	if assets, ok := Resource[AssetServer](app); ok {
		ctx.Assets = assets
		assets.CreateRadialTexture(spriteTexturePath, 64, [4]uint8{255, 255, 255, 255})
		ctx.SpriteTexture = spriteTexturePath
	}

	scenes := NewSceneManager(transitions, ctx)
	RegisterDefaultScenes(scenes)

	initial := mod.Initial
	if initial == "" {
		initial = SceneTitle
	}
	if err := scenes.Start(initial); err != nil {
		panic(err)
	}

	cmd.AddResources(scenes)
	cmd.UseSystem(System(sceneUpdateSystem).InStage(Update))
	if ctx.Overlay != nil {
		cmd.UseSystem(System(sceneDrawSystem).InStage(PostUpdate))
	}
	app.onShutdown(scenes.Shutdown)
}

func sceneUpdateSystem(scenes *SceneManager, t *Time) {
	scenes.Update(t.Delta())
}

// sceneDrawSystem runs after the transition step, so the wipe covers the
// scene's own overlay.
func sceneDrawSystem(scenes *SceneManager, transitions *transition.Manager, batch *overlay.Batch) {
	scenes.Draw()
	drawTransition(transitions, batch)
}
