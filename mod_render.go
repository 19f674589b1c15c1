package blaster

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/blaster/fx/core"
	fxgpu "github.com/gekko3d/blaster/fx/gpu"
	"github.com/gekko3d/blaster/overlay"
)

// Renderer owns the swapchain and the passes drawn into it each frame.
type Renderer struct {
	gpu        *GpuState
	Particles  *fxgpu.ParticlePass
	Overlay    *fxgpu.OverlayPass
	ClearColor wgpu.Color

	// Draws is the number of instanced particle draws in the last frame.
	Draws int
}

// RenderModule draws particles and the overlay into the window. Without a
// WindowState it installs nothing, leaving the simulation headless.
type RenderModule struct {
	ClearColor [4]float64
}

func (mod RenderModule) Install(app *App, cmd *Commands) {
	ws, ok := Resource[WindowState](app)
	if !ok {
		app.Logger().Infof("no window: rendering disabled")
		return
	}
	batch, ok := Resource[overlay.Batch](app)
	if !ok {
		panic("RenderModule requires OverlayModule to be installed first")
	}

	gs, err := createGpuState(ws)
	if err != nil {
		panic(err)
	}

	var textures fxgpu.TextureSource
	if assets, ok := Resource[AssetServer](app); ok {
		textures = assets
	}
	particles, err := fxgpu.NewParticlePass(gs.device, gs.surfaceConfig.Format, textures, app.Logger())
	if err != nil {
		panic(fmt.Sprintf("particle pass: %v", err))
	}
	overlayPass, err := fxgpu.NewOverlayPass(gs.device, gs.surfaceConfig.Format, batch.Atlas())
	if err != nil {
		panic(fmt.Sprintf("overlay pass: %v", err))
	}

	r := &Renderer{
		gpu:       gs,
		Particles: particles,
		Overlay:   overlayPass,
		ClearColor: wgpu.Color{
			R: mod.ClearColor[0], G: mod.ClearColor[1], B: mod.ClearColor[2], A: mod.ClearColor[3],
		},
	}
	cmd.AddResources(r)
	cmd.UseSystem(System(renderSystem).InStage(Render))
	app.onShutdown(r.release)
}

func renderSystem(r *Renderer, ws *WindowState, particles *core.Manager, batch *overlay.Batch, cmd *Commands) {
	w, h := ws.windowGlfw.GetSize()
	ws.WindowWidth, ws.WindowHeight = w, h
	r.gpu.resize(w, h)

	if err := r.renderFrame(particles, batch); err != nil {
		cmd.Logger().Errorf("render: %v", err)
	}
}

func (r *Renderer) renderFrame(particles *core.Manager, batch *overlay.Batch) error {
	if err := r.Overlay.Upload(batch); err != nil {
		return fmt.Errorf("overlay upload: %w", err)
	}

	nextTexture, err := r.gpu.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("get current texture: %w", err)
	}
	defer nextTexture.Release()

	view, err := nextTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("create view: %w", err)
	}
	defer view.Release()

	encoder, err := r.gpu.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: r.ClearColor,
		}},
	})
	r.Draws = r.Particles.Draw(pass, particles)
	r.Overlay.Draw(pass)
	if err := pass.End(); err != nil {
		return fmt.Errorf("render pass end: %w", err)
	}
	pass.Release()

	cmdBuf, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("encoder finish: %w", err)
	}
	defer cmdBuf.Release()

	r.gpu.queue.Submit(cmdBuf)
	r.gpu.surface.Present()
	return nil
}

func (r *Renderer) release() {
	r.Overlay.Release()
	r.Particles.Release()
	r.gpu.release()
}
