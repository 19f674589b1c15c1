package blaster

import (
	"github.com/gekko3d/blaster/overlay"
	"github.com/gekko3d/blaster/transition"
)

// TransitionModule registers the fade and stripe transitions and advances the
// active one once per frame.
type TransitionModule struct {
	Fade   FadeConfig
	Stripe StripeConfig
}

func (mod TransitionModule) Install(app *App, cmd *Commands) {
	transitions := transition.NewManager(app.Logger())

	fade := transition.NewFade(mod.Fade.Duration, mod.Fade.Hold)
	fade.Color = mod.Fade.Color
	transitions.Register(transition.KindFade, transition.New(fade))

	stripe := transition.NewStripe(mod.Stripe.Count, mod.Stripe.Duration, mod.Stripe.Delay, mod.Stripe.Hold)
	if mod.Stripe.Color != ([4]float32{}) {
		stripe.Color = mod.Stripe.Color
	}
	transitions.Register(transition.KindStripe, transition.New(stripe))

	cmd.AddResources(transitions)
	cmd.UseSystem(System(transitionSystem).InStage(PostUpdate))
}

func transitionSystem(transitions *transition.Manager, t *Time) {
	transitions.Update(t.Delta())
}

// drawTransition adds the active transition's quads on top of the batch.
func drawTransition(transitions *transition.Manager, batch *overlay.Batch) {
	w, h := batch.Size()
	for _, q := range transitions.Quads(w, h) {
		batch.Rect(q.X, q.Y, q.W, q.H, q.Color)
	}
}
