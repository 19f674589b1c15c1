// Package transition drives screen transitions that gate when a scene swap happens.
//
// Every transition walks None -> FadeIn -> Hold -> FadeOut -> None. The scene
// change callback fires once, on entry to Hold, while the screen is fully covered.
package transition

import (
	"errors"
	"fmt"
)

type State int

const (
	None State = iota
	FadeIn
	Hold
	FadeOut
)

func (s State) String() string {
	switch s {
	case None:
		return "None"
	case FadeIn:
		return "FadeIn"
	case Hold:
		return "Hold"
	case FadeOut:
		return "FadeOut"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

var ErrTransitionActive = errors.New("transition already active")

// Effect is the visual part of a transition. The state machine is shared; an
// effect only decides when FadeIn and FadeOut are complete and what to draw.
type Effect interface {
	// Reset clears per-run state before a new Start.
	Reset()
	// Progress reports whether state (FadeIn or FadeOut) is complete after elapsed seconds in it.
	Progress(state State, elapsed float32) bool
	HoldDuration() float32
	Quads(state State, elapsed float32, width, height float32) []Quad
}

// Quad is a solid screen-space rectangle in pixels, origin top-left.
type Quad struct {
	X, Y, W, H float32
	Color      [4]float32
}

type Transition struct {
	effect Effect

	state         State
	elapsed       float32
	transitioning bool
	fired         bool
	onChange      func()
}

func New(effect Effect) *Transition {
	return &Transition{effect: effect}
}

func (t *Transition) Effect() Effect        { return t.effect }
func (t *Transition) State() State          { return t.state }
func (t *Transition) Elapsed() float32      { return t.elapsed }
func (t *Transition) IsTransitioning() bool { return t.transitioning }

// Start begins a transition. It is rejected with ErrTransitionActive while one
// is running; the running transition is left untouched.
func (t *Transition) Start(onChange func()) error {
	if t.transitioning {
		return ErrTransitionActive
	}
	t.effect.Reset()
	t.transitioning = true
	t.state = FadeIn
	t.elapsed = 0
	t.onChange = onChange
	t.fired = false
	return nil
}

// Update advances the transition by dt seconds.
func (t *Transition) Update(dt float32) {
	if !t.transitioning {
		return
	}
	t.elapsed += dt
	advance(t, t.effect.Progress, t.effect.HoldDuration())
}

// advance is the state machine shared by every effect; progress decides when
// the FadeIn and FadeOut phases are done.
func advance(t *Transition, progress func(State, float32) bool, hold float32) {
	switch t.state {
	case FadeIn:
		if progress(FadeIn, t.elapsed) {
			t.state = Hold
			t.elapsed = 0
			t.fire()
		}
	case Hold:
		t.fire()
		if t.elapsed >= hold {
			t.state = FadeOut
			t.elapsed = 0
		}
	case FadeOut:
		if progress(FadeOut, t.elapsed) {
			t.state = None
			t.elapsed = 0
			t.transitioning = false
			t.onChange = nil
		}
	}
}

func (t *Transition) fire() {
	if t.fired {
		return
	}
	t.fired = true
	if t.onChange != nil {
		t.onChange()
	}
}

// Quads returns what to draw over a width x height screen this frame.
func (t *Transition) Quads(width, height float32) []Quad {
	if !t.transitioning {
		return nil
	}
	return t.effect.Quads(t.state, t.elapsed, width, height)
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
