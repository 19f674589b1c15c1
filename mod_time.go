package blaster

import (
	"time"
)

type Time struct {
	Time  time.Time
	Dt    time.Duration
	Frame uint64

	// Fixed makes Delta return Step regardless of wall-clock time.
	Fixed bool
	Step  float32
}

// Delta is the simulation step for the current frame in seconds.
func (t *Time) Delta() float32 {
	if t.Fixed {
		return t.Step
	}
	if dt := float32(t.Dt.Seconds()); dt > 0 {
		return dt
	}
	return t.Step
}

type TimeModule struct {
	Fixed bool
	Step  float32
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	step := mod.Step
	if step <= 0 {
		step = 1.0 / 60.0
	}
	cmd.AddResources(&Time{
		Time:  time.Now(),
		Dt:    0,
		Fixed: mod.Fixed,
		Step:  step,
	})
	cmd.UseSystem(System(timeSystem).InStage(Prelude))
}

func timeSystem(timeResource *Time) {
	now := time.Now()

	timeResource.Dt = now.Sub(timeResource.Time)
	timeResource.Time = now
	timeResource.Frame++
}
