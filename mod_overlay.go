package blaster

import (
	"github.com/gekko3d/blaster/overlay"
)

// OverlayModule provides the per-frame overlay.Batch that scenes and
// transitions draw into. The batch is cleared at the start of every frame.
type OverlayModule struct {
	FontSize float64
	Width    int
	Height   int
}

func (mod OverlayModule) Install(app *App, cmd *Commands) {
	size := mod.FontSize
	if size <= 0 {
		size = 32
	}
	atlas, err := overlay.NewDefaultAtlas(size)
	if err != nil {
		panic(err)
	}
	batch := overlay.NewBatch(atlas)
	batch.Begin(mod.Width, mod.Height)
	cmd.AddResources(batch)

	fallbackW, fallbackH := mod.Width, mod.Height
	cmd.UseSystem(System(func(batch *overlay.Batch, input *Input) {
		w, h := input.WindowWidth, input.WindowHeight
		if w <= 0 || h <= 0 {
			w, h = fallbackW, fallbackH
		}
		batch.Begin(w, h)
	}).InStage(Prelude))
}
