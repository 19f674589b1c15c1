package shaders

import (
	_ "embed"
)

//go:embed particle.wgsl
var ParticleWGSL string

//go:embed overlay.wgsl
var OverlayWGSL string
