package blaster

import (
	"image"
	"math"
)

// CreateRadialTexture registers a size x size soft disc under name: full
// color at the center, alpha falling off quadratically to zero at the rim.
func (server *AssetServer) CreateRadialTexture(name string, size int, color [4]uint8) AssetId {
	if size < 1 {
		size = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	center := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := (float64(x) + 0.5 - center) / center
			dy := (float64(y) + 0.5 - center) / center
			d := math.Sqrt(dx*dx + dy*dy)
			falloff := 1 - d
			if falloff < 0 {
				falloff = 0
			}
			falloff *= falloff

			i := img.PixOffset(x, y)
			img.Pix[i+0] = color[0]
			img.Pix[i+1] = color[1]
			img.Pix[i+2] = color[2]
			img.Pix[i+3] = uint8(math.Round(float64(color[3]) * falloff))
		}
	}
	return server.CreateTexture(name, img)
}
