package transition

// Fade covers the screen with a solid color whose alpha ramps up over
// Duration, holds, then ramps back down.
type Fade struct {
	Duration float32
	Hold     float32
	Color    [3]float32
}

func NewFade(duration, hold float32) *Fade {
	return &Fade{Duration: duration, Hold: hold}
}

func (f *Fade) Reset() {}

func (f *Fade) HoldDuration() float32 { return f.Hold }

func (f *Fade) Progress(state State, elapsed float32) bool {
	switch state {
	case FadeIn:
		return f.Alpha(state, elapsed) >= 1
	case FadeOut:
		return f.Alpha(state, elapsed) <= 0
	}
	return false
}

// Alpha is the cover opacity in state after elapsed seconds.
func (f *Fade) Alpha(state State, elapsed float32) float32 {
	t := float32(1)
	if f.Duration > 0 {
		t = clamp01(elapsed / f.Duration)
	}
	switch state {
	case FadeIn:
		return t
	case Hold:
		return 1
	case FadeOut:
		return 1 - t
	}
	return 0
}

func (f *Fade) Quads(state State, elapsed float32, width, height float32) []Quad {
	a := f.Alpha(state, elapsed)
	if a <= 0 {
		return nil
	}
	return []Quad{{
		W:     width,
		H:     height,
		Color: [4]float32{f.Color[0], f.Color[1], f.Color[2], a},
	}}
}
