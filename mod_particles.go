package blaster

import (
	"github.com/gekko3d/blaster/fx/core"
)

// Simulate runs right after Update so scenes emit before the step that
// first moves their particles.
var Simulate = Stage{Name: "Simulate"}

// ParticleModule provides the core.Manager resource and steps it every frame
// against the core.CameraState resource. When a Renderer is installed the
// group instance buffers live on the GPU; otherwise they are host memory.
type ParticleModule struct {
	Particles ParticlesConfig
}

func (mod ParticleModule) Install(app *App, cmd *Commands) {
	var allocator core.InstanceAllocator
	if r, ok := Resource[Renderer](app); ok {
		allocator = r.Particles
	}
	var textures core.TextureRegistry
	if assets, ok := Resource[AssetServer](app); ok {
		textures = assets
	}

	opts := []core.Option{
		core.WithLogger(app.Logger()),
		core.WithCapacity(mod.Particles.Capacity),
		core.WithEmitterSettings(mod.Particles.EmitterSettings()),
		core.WithField(mod.Particles.Field.AccelerationField()),
	}
	if mod.Particles.Seed != 0 {
		opts = append(opts, core.WithSeed(mod.Particles.Seed))
	}
	particles := core.NewManager(allocator, textures, opts...)

	cmd.AddResources(particles)
	app.UseStage(Simulate, AfterStage(Update))
	cmd.UseSystem(System(particleSimulationSystem).InStage(Simulate))
	if _, ok := Resource[ConfigReloads](app); ok {
		cmd.UseSystem(System(particleConfigSystem).InStage(PreUpdate))
	}
	app.onShutdown(particles.DestroyAll)
}

func particleSimulationSystem(particles *core.Manager, cam *core.CameraState, t *Time) {
	particles.Update(t.Delta(), cam)
}

// particleConfigSystem applies reloaded emitter settings and field. Capacity
// is fixed once groups are allocated and only takes effect on restart.
func particleConfigSystem(particles *core.Manager, cfg *Config, reloads *ConfigReloads, cmd *Commands) {
	if !reloads.Changed {
		return
	}
	particles.SetEmitterSettings(cfg.Particles.EmitterSettings())
	particles.SetField(cfg.Particles.Field.AccelerationField())
	if cfg.Particles.Capacity != particles.Capacity() {
		cmd.Logger().Warnf("particles.capacity change to %d needs a restart", cfg.Particles.Capacity)
	}
}
