package blaster

import (
	"errors"
	"fmt"
	"os"

	"github.com/gekko3d/blaster/fx/core"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Window      WindowConfig      `toml:"window"`
	Log         LogConfig         `toml:"log"`
	Simulation  SimulationConfig  `toml:"simulation"`
	Particles   ParticlesConfig   `toml:"particles"`
	Transitions TransitionsConfig `toml:"transitions"`
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

type LogConfig struct {
	Prefix string `toml:"prefix"`
	Debug  bool   `toml:"debug"`
}

type SimulationConfig struct {
	FixedStep bool    `toml:"fixed_step"`
	Step      float32 `toml:"step"`
}

type ParticlesConfig struct {
	Capacity       int         `toml:"capacity"`
	LifeTime       float32     `toml:"life_time"`
	VelocityScale  float32     `toml:"velocity_scale"`
	UseRandomColor bool        `toml:"use_random_color"`
	BaseColor      [4]float32  `toml:"base_color"`
	Scale          [3]float32  `toml:"scale"`
	Seed           uint64      `toml:"seed"`
	Field          FieldConfig `toml:"field"`
}

type FieldConfig struct {
	Enabled      bool       `toml:"enabled"`
	Acceleration [3]float32 `toml:"acceleration"`
	Min          [3]float32 `toml:"min"`
	Max          [3]float32 `toml:"max"`
}

type TransitionsConfig struct {
	Fade   FadeConfig   `toml:"fade"`
	Stripe StripeConfig `toml:"stripe"`
}

type FadeConfig struct {
	Duration float32    `toml:"duration"`
	Hold     float32    `toml:"hold"`
	Color    [3]float32 `toml:"color"`
}

type StripeConfig struct {
	Count    int        `toml:"count"`
	Duration float32    `toml:"duration"`
	Delay    float32    `toml:"delay"`
	Hold     float32    `toml:"hold"`
	Color    [4]float32 `toml:"color"`
}

var ErrInvalidConfig = errors.New("invalid config")

func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{Width: 1280, Height: 720, Title: "Blaster"},
		Log:    LogConfig{Prefix: "blaster"},
		Simulation: SimulationConfig{
			FixedStep: true,
			Step:      core.NominalStep,
		},
		Particles: ParticlesConfig{
			Capacity:       core.MaxInstanceCount,
			LifeTime:       core.DefaultLifeTime,
			VelocityScale:  1,
			UseRandomColor: true,
			BaseColor:      [4]float32{1, 1, 1, 1},
			Scale:          [3]float32{0.1, 0.1, 0.1},
			Field: FieldConfig{
				Acceleration: [3]float32{0, -9.8, 0},
				Min:          [3]float32{-100, -100, -100},
				Max:          [3]float32{100, 100, 100},
			},
		},
		Transitions: TransitionsConfig{
			Fade:   FadeConfig{Duration: 0.5, Hold: 0.1},
			Stripe: StripeConfig{Count: 8, Duration: 0.3, Delay: 0.04, Hold: 0.1, Color: [4]float32{0, 0, 0, 1}},
		},
	}
}

// ParseConfig decodes TOML on top of DefaultConfig, so absent keys keep their
// defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("load config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	case c.Simulation.Step <= 0:
		return fmt.Errorf("%w: simulation.step must be positive", ErrInvalidConfig)
	case c.Particles.Capacity <= 0:
		return fmt.Errorf("%w: particles.capacity must be positive", ErrInvalidConfig)
	case c.Particles.LifeTime <= 0:
		return fmt.Errorf("%w: particles.life_time must be positive", ErrInvalidConfig)
	case c.Transitions.Fade.Duration <= 0:
		return fmt.Errorf("%w: transitions.fade.duration must be positive", ErrInvalidConfig)
	case c.Transitions.Stripe.Count <= 0 || c.Transitions.Stripe.Duration <= 0:
		return fmt.Errorf("%w: transitions.stripe needs a positive count and duration", ErrInvalidConfig)
	case c.Transitions.Fade.Hold < 0 || c.Transitions.Stripe.Hold < 0 || c.Transitions.Stripe.Delay < 0:
		return fmt.Errorf("%w: transition hold and delay must not be negative", ErrInvalidConfig)
	}
	for i := 0; i < 3; i++ {
		if c.Particles.Field.Min[i] > c.Particles.Field.Max[i] {
			return fmt.Errorf("%w: particles.field min exceeds max on axis %d", ErrInvalidConfig, i)
		}
	}
	return nil
}

func (c ParticlesConfig) EmitterSettings() core.EmitterSettings {
	return core.EmitterSettings{
		VelocityScale:  c.VelocityScale,
		UseRandomColor: c.UseRandomColor,
		BaseColor:      mgl32.Vec4(c.BaseColor),
		LifeTime:       c.LifeTime,
		Scale:          mgl32.Vec3(c.Scale),
	}
}

func (c FieldConfig) AccelerationField() core.AccelerationField {
	return core.AccelerationField{
		Acceleration: mgl32.Vec3(c.Acceleration),
		Area:         core.AABB{Min: mgl32.Vec3(c.Min), Max: mgl32.Vec3(c.Max)},
		Enabled:      c.Enabled,
	}
}
