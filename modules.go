package blaster

type Options struct {
	ConfigPath string
	Watch      bool
	// Debug forces debug logging, overriding the config file and its reloads.
	Debug bool
	// Headless skips the window and the renderer; particle buffers stay in
	// host memory.
	Headless bool
}

// DefaultModules lists the game's modules in install order. Later modules
// look up resources of earlier ones while installing.
func DefaultModules(cfg Config, opts Options) []Module {
	modules := []Module{
		LoggingModule{Prefix: cfg.Log.Prefix, Debug: cfg.Log.Debug || opts.Debug},
		ConfigModule{Config: cfg, Path: opts.ConfigPath, Watch: opts.Watch, Debug: opts.Debug},
		TimeModule{Fixed: cfg.Simulation.FixedStep, Step: cfg.Simulation.Step},
	}
	if !opts.Headless {
		modules = append(modules, NewPlatformWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title))
	}
	modules = append(modules,
		InputModule{},
		AssetServerModule{},
		OverlayModule{Width: cfg.Window.Width, Height: cfg.Window.Height},
	)
	if !opts.Headless {
		modules = append(modules, RenderModule{ClearColor: [4]float64{0.02, 0.02, 0.05, 1}})
	}
	return append(modules,
		CameraModule{Position: [3]float32{0, 4, 12}},
		ParticleModule{Particles: cfg.Particles},
		TransitionModule{Fade: cfg.Transitions.Fade, Stripe: cfg.Transitions.Stripe},
		SceneModule{Initial: SceneTitle},
	)
}
