package transition

// Stripe wipes the screen with Count horizontal bars. Bar i starts Delay*i
// seconds after the first and takes Duration to cross; even bars enter from the
// left, odd bars from the right. FadeOut retracts them in the same order.
type Stripe struct {
	Count    int
	Duration float32
	Delay    float32
	Hold     float32
	Color    [4]float32
}

func NewStripe(count int, duration, delay, hold float32) *Stripe {
	return &Stripe{
		Count:    count,
		Duration: duration,
		Delay:    delay,
		Hold:     hold,
		Color:    [4]float32{0, 0, 0, 1},
	}
}

func (s *Stripe) Reset() {}

func (s *Stripe) HoldDuration() float32 { return s.Hold }

func (s *Stripe) count() int {
	if s.Count < 1 {
		return 1
	}
	return s.Count
}

// StripeProgress is how far bar i has travelled, 0..1, after elapsed seconds.
func (s *Stripe) StripeProgress(i int, elapsed float32) float32 {
	local := elapsed - s.Delay*float32(i)
	if s.Duration <= 0 {
		if local >= 0 {
			return 1
		}
		return 0
	}
	return clamp01(local / s.Duration)
}

// Progress is complete once the last bar has finished moving.
func (s *Stripe) Progress(state State, elapsed float32) bool {
	if state != FadeIn && state != FadeOut {
		return false
	}
	return s.StripeProgress(s.count()-1, elapsed) >= 1
}

// Coverage is the covered fraction of bar i's width in state.
func (s *Stripe) Coverage(state State, i int, elapsed float32) float32 {
	switch state {
	case FadeIn:
		return s.StripeProgress(i, elapsed)
	case Hold:
		return 1
	case FadeOut:
		return 1 - s.StripeProgress(i, elapsed)
	}
	return 0
}

func (s *Stripe) Quads(state State, elapsed float32, width, height float32) []Quad {
	n := s.count()
	barH := height / float32(n)
	quads := make([]Quad, 0, n)
	for i := 0; i < n; i++ {
		w := width * s.Coverage(state, i, elapsed)
		if w <= 0 {
			continue
		}
		x := float32(0)
		fromRight := i%2 == 1
		// Entering bars grow from their edge; leaving bars shrink toward the far edge.
		if fromRight != (state == FadeOut) {
			x = width - w
		}
		quads = append(quads, Quad{X: x, Y: barH * float32(i), W: w, H: barH, Color: s.Color})
	}
	return quads
}
