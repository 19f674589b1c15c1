package blaster

import (
	"errors"
	"fmt"
	"math"

	"github.com/gekko3d/blaster/transition"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	SceneTitle  SceneID = "title"
	SceneGame   SceneID = "game"
	SceneResult SceneID = "result"
)

func RegisterDefaultScenes(m *SceneManager) {
	m.Register(SceneTitle, func() Scene { return &TitleScene{} })
	m.Register(SceneGame, func() Scene { return NewGameScene() })
	m.Register(SceneResult, func() Scene { return &ResultScene{} })
}

var (
	textWhite = [4]float32{1, 1, 1, 1}
	textDim   = [4]float32{0.7, 0.7, 0.7, 1}
)

// requestScene asks for a scene change and reports whether it was accepted.
// A request dropped because a transition is running is logged, not treated as
// an error, so the caller can ask again on a later frame.
func requestScene(ctx *SceneContext, id SceneID, kind transition.Kind) bool {
	err := ctx.Scenes.ChangeScene(id, kind)
	switch {
	case err == nil:
		return true
	case errors.Is(err, transition.ErrTransitionActive):
		ctx.Logger.Debugf("scene change to %q deferred: %v", id, err)
	default:
		ctx.Logger.Errorf("%v", err)
	}
	return false
}

// emitter emits rate particles per second into a group, carrying the
// fractional remainder across frames.
type emitter struct {
	group string
	rate  float32
	acc   float32
}

func (e *emitter) update(ctx *SceneContext, position mgl32.Vec3, dt float32) {
	e.acc += e.rate * dt
	n := int(e.acc)
	if n == 0 {
		return
	}
	e.acc -= float32(n)
	if _, err := ctx.Particles.Emit(e.group, position, n); err != nil {
		ctx.Logger.Warnf("emit into %q: %v", e.group, err)
	}
}

// TitleScene shows a slow ring of sparks. Enter starts a round, Escape quits.
type TitleScene struct {
	sparks emitter
	t      float32
}

const titleSparks = "title.sparks"

func (s *TitleScene) Initialize(ctx *SceneContext) error {
	if err := ctx.Particles.CreateGroup(titleSparks, ctx.SpriteTexture); err != nil {
		return err
	}
	s.sparks = emitter{group: titleSparks, rate: 120}
	return nil
}

func (s *TitleScene) Update(ctx *SceneContext, dt float32) {
	s.t += dt
	angle := float64(s.t) * 1.5
	pos := mgl32.Vec3{float32(math.Cos(angle)) * 3, 0, float32(math.Sin(angle)) * 3}
	s.sparks.update(ctx, pos, dt)

	switch {
	case ctx.Input.JustPressed[KeyEnter], ctx.Input.JustPressed[KeySpace]:
		requestScene(ctx, SceneGame, transition.KindStripe)
	case ctx.Input.JustPressed[KeyEscape]:
		ctx.Quit()
	}
}

func (s *TitleScene) Draw(ctx *SceneContext) {
	_, h := ctx.Overlay.Size()
	ctx.Overlay.TextCentered("BLASTER", h*0.3, 2, textWhite)
	ctx.Overlay.TextCentered("press enter to start", h*0.6, 1, textDim)
}

func (s *TitleScene) Finalize(ctx *SceneContext) {
	_ = ctx.Particles.DestroyGroup(titleSparks)
}

// GameScene is one timed round. Space detonates a burst at the next target
// position and scores a point; G toggles the gravity field. When the round
// ends the result screen fades in.
type GameScene struct {
	RoundTime float32
	BurstSize int

	remaining float32
	bursts    int
	fountain  emitter
	// ending is set once the round is over; finished once the result scene
	// has been accepted. A request dropped by a running transition is retried.
	ending   bool
	finished bool
}

const (
	gameBursts   = "game.bursts"
	gameFountain = "game.fountain"

	// golden angle, spreads successive targets evenly around the ring
	targetStep = 2.39996
)

func NewGameScene() *GameScene {
	return &GameScene{RoundTime: 30, BurstSize: 64}
}

func (s *GameScene) Initialize(ctx *SceneContext) error {
	for _, name := range []string{gameBursts, gameFountain} {
		if err := ctx.Particles.CreateGroup(name, ctx.SpriteTexture); err != nil {
			return fmt.Errorf("game scene: %w", err)
		}
	}
	s.remaining = s.RoundTime
	s.fountain = emitter{group: gameFountain, rate: 60}
	ctx.Scenes.Score = 0
	return nil
}

// Target is where the next burst goes off.
func (s *GameScene) Target() mgl32.Vec3 {
	angle := float64(s.bursts) * targetStep
	radius := float32(2 + s.bursts%3)
	return mgl32.Vec3{float32(math.Cos(angle)) * radius, 1, float32(math.Sin(angle)) * radius}
}

func (s *GameScene) Remaining() float32 { return s.remaining }

func (s *GameScene) Update(ctx *SceneContext, dt float32) {
	s.fountain.update(ctx, mgl32.Vec3{}, dt)
	if s.finished {
		return
	}
	if s.ending {
		s.finished = requestScene(ctx, SceneResult, transition.KindFade)
		return
	}

	if ctx.Input.JustPressed[KeySpace] {
		if _, err := ctx.Particles.Emit(gameBursts, s.Target(), s.BurstSize); err != nil {
			ctx.Logger.Warnf("burst: %v", err)
		}
		s.bursts++
		ctx.Scenes.Score = s.bursts
	}
	if ctx.Input.JustPressed[KeyG] {
		field := ctx.Particles.Field()
		field.Enabled = !field.Enabled
		ctx.Particles.SetField(field)
		ctx.Logger.Infof("gravity field enabled: %v", field.Enabled)
	}

	s.remaining -= dt
	if s.remaining <= 0 || ctx.Input.JustPressed[KeyEscape] {
		s.remaining = max(s.remaining, 0)
		s.ending = true
		s.finished = requestScene(ctx, SceneResult, transition.KindFade)
	}
}

func (s *GameScene) Draw(ctx *SceneContext) {
	ctx.Overlay.Text(fmt.Sprintf("SCORE %d", ctx.Scenes.Score), 16, 16, 1, textWhite)
	ctx.Overlay.Text(fmt.Sprintf("TIME %.1f", s.remaining), 16, 16+ctx.Overlay.Atlas().LineHeight(1), 1, textWhite)
	ctx.Overlay.Text(fmt.Sprintf("particles %d", ctx.Particles.ParticleCount()), 16,
		16+2*ctx.Overlay.Atlas().LineHeight(1), 0.75, textDim)
}

func (s *GameScene) Finalize(ctx *SceneContext) {
	_ = ctx.Particles.DestroyGroup(gameBursts)
	_ = ctx.Particles.DestroyGroup(gameFountain)
}

// ResultScene shows the score of the last round.
type ResultScene struct {
	score int
	shown bool
}

const resultSparks = "result.sparks"

func (s *ResultScene) Initialize(ctx *SceneContext) error {
	s.score = ctx.Scenes.Score
	return ctx.Particles.CreateGroup(resultSparks, ctx.SpriteTexture)
}

func (s *ResultScene) Update(ctx *SceneContext, dt float32) {
	if !s.shown {
		// one celebratory burst per point, capped by the group capacity
		n := min(s.score*8, ctx.Particles.Capacity())
		if n > 0 {
			_, _ = ctx.Particles.Emit(resultSparks, mgl32.Vec3{0, 1, 0}, n)
		}
		s.shown = true
	}
	if ctx.Input.JustPressed[KeyEnter] || ctx.Input.JustPressed[KeyEscape] {
		requestScene(ctx, SceneTitle, transition.KindFade)
	}
}

func (s *ResultScene) Draw(ctx *SceneContext) {
	_, h := ctx.Overlay.Size()
	ctx.Overlay.TextCentered("ROUND OVER", h*0.3, 2, textWhite)
	ctx.Overlay.TextCentered(fmt.Sprintf("score %d", s.score), h*0.5, 1.5, textWhite)
	ctx.Overlay.TextCentered("press enter", h*0.7, 1, textDim)
}

func (s *ResultScene) Finalize(ctx *SceneContext) {
	_ = ctx.Particles.DestroyGroup(resultSparks)
}
