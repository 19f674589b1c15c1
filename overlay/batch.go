// Package overlay collects screen-space quads and text for the overlay pass.
package overlay

// Vertex matches the overlay.wgsl vertex input.
type Vertex struct {
	Pos   [2]float32 // NDC
	UV    [2]float32
	Color [4]float32
}

// Batch accumulates overlay geometry for one frame. Coordinates passed in are
// pixels with the origin at the top-left of the screen.
type Batch struct {
	atlas    *Atlas
	width    float32
	height   float32
	vertices []Vertex
}

func NewBatch(atlas *Atlas) *Batch {
	return &Batch{atlas: atlas, width: 1, height: 1}
}

func (b *Batch) Atlas() *Atlas { return b.atlas }

// Begin clears the batch for a screen of width x height pixels.
func (b *Batch) Begin(width, height int) {
	b.vertices = b.vertices[:0]
	b.width = float32(max(width, 1))
	b.height = float32(max(height, 1))
}

func (b *Batch) Size() (float32, float32) { return b.width, b.height }

func (b *Batch) Vertices() []Vertex { return b.vertices }

func (b *Batch) Len() int { return len(b.vertices) }

func (b *Batch) ndc(x, y float32) [2]float32 {
	return [2]float32{x/b.width*2.0 - 1.0, 1.0 - y/b.height*2.0}
}

func (b *Batch) quad(x0, y0, x1, y1 float32, uv0, uv1 [2]float32, color [4]float32) {
	p0 := b.ndc(x0, y0)
	p1 := b.ndc(x1, y1)
	b.vertices = append(b.vertices,
		Vertex{Pos: [2]float32{p0[0], p0[1]}, UV: [2]float32{uv0[0], uv0[1]}, Color: color},
		Vertex{Pos: [2]float32{p1[0], p0[1]}, UV: [2]float32{uv1[0], uv0[1]}, Color: color},
		Vertex{Pos: [2]float32{p0[0], p1[1]}, UV: [2]float32{uv0[0], uv1[1]}, Color: color},

		Vertex{Pos: [2]float32{p1[0], p0[1]}, UV: [2]float32{uv1[0], uv0[1]}, Color: color},
		Vertex{Pos: [2]float32{p1[0], p1[1]}, UV: [2]float32{uv1[0], uv1[1]}, Color: color},
		Vertex{Pos: [2]float32{p0[0], p1[1]}, UV: [2]float32{uv0[0], uv1[1]}, Color: color},
	)
}

// Rect adds a solid rectangle.
func (b *Batch) Rect(x, y, w, h float32, color [4]float32) {
	if w <= 0 || h <= 0 || color[3] <= 0 {
		return
	}
	uv := [2]float32{0, 0}
	if b.atlas != nil {
		uv = b.atlas.whiteUV
	}
	b.quad(x, y, x+w, y+h, uv, uv, color)
}

// Text adds a string whose first line's top edge is at y.
func (b *Batch) Text(text string, x, y, scale float32, color [4]float32) {
	if b.atlas == nil {
		return
	}
	lineHeight := b.atlas.LineHeight(scale)
	posX := x
	posY := y + b.atlas.ascent()*scale

	for _, r := range text {
		if r == '\n' {
			posX = x
			posY += lineHeight
			continue
		}
		g, ok := b.atlas.Glyphs[r]
		if !ok {
			continue
		}
		if g.Size[0] > 0 && g.Size[1] > 0 {
			b.quad(
				posX+g.Off[0]*scale, posY+g.Off[1]*scale,
				posX+(g.Off[0]+g.Size[0])*scale, posY+(g.Off[1]+g.Size[1])*scale,
				g.UVMin, g.UVMax, color,
			)
		}
		posX += g.Adv * scale
	}
}

// TextCentered adds text horizontally centered on the screen.
func (b *Batch) TextCentered(text string, y, scale float32, color [4]float32) {
	if b.atlas == nil {
		return
	}
	w, _ := b.atlas.MeasureText(text, scale)
	b.Text(text, (b.width-w)/2, y, scale, color)
}
