package overlay

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const atlasSize = 512

type GlyphInfo struct {
	UVMin [2]float32
	UVMax [2]float32
	Size  [2]float32
	Off   [2]float32
	Adv   float32
}

// Atlas is a single-channel glyph atlas. The top-left 2x2 texels are opaque so
// solid rectangles can sample them with the same pipeline as text.
type Atlas struct {
	Image  *image.Alpha
	Glyphs map[rune]GlyphInfo
	Face   font.Face

	whiteUV [2]float32
}

// NewDefaultAtlas builds an atlas from the embedded Go Regular font.
func NewDefaultAtlas(fontSize float64) (*Atlas, error) {
	return NewAtlas(goregular.TTF, fontSize)
}

func NewAtlas(fontBytes []byte, fontSize float64) (*Atlas, error) {
	f, err := opentype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create face: %w", err)
	}

	img := image.NewAlpha(image.Rect(0, 0, atlasSize, atlasSize))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.Pix[y*img.Stride+x] = 0xff
		}
	}
	glyphs := make(map[rune]GlyphInfo)

	x, y := 4, 4
	rowHeight := 0

	for r := rune(32); r < 127; r++ {
		bounds, mask, maskp, adv, ok := face.Glyph(fixed.Point26_6{}, r)
		if !ok {
			continue
		}

		w := bounds.Dx()
		h := bounds.Dy()

		if x+w >= atlasSize {
			x = 4
			y += rowHeight + 4
			rowHeight = 0
		}
		if y+h >= atlasSize {
			break
		}

		draw.Draw(img, image.Rect(x, y, x+w, y+h), mask, maskp, draw.Src)

		glyphs[r] = GlyphInfo{
			UVMin: [2]float32{float32(x) / atlasSize, float32(y) / atlasSize},
			UVMax: [2]float32{float32(x+w) / atlasSize, float32(y+h) / atlasSize},
			Size:  [2]float32{float32(w), float32(h)},
			Off:   [2]float32{float32(bounds.Min.X), float32(bounds.Min.Y)},
			Adv:   float32(adv) / 64.0,
		}

		x += w + 4
		if h > rowHeight {
			rowHeight = h
		}
	}

	return &Atlas{
		Image:   img,
		Glyphs:  glyphs,
		Face:    face,
		whiteUV: [2]float32{1.0 / atlasSize, 1.0 / atlasSize},
	}, nil
}

func (a *Atlas) ascent() float32 {
	return float32(a.Face.Metrics().Ascent.Ceil())
}

func (a *Atlas) LineHeight(scale float32) float32 {
	return float32(a.Face.Metrics().Height.Ceil()) * scale
}

// MeasureText returns the width and height in pixels of text drawn at scale.
func (a *Atlas) MeasureText(text string, scale float32) (float32, float32) {
	maxW := float32(0)
	currentW := float32(0)
	lines := 1

	for _, r := range text {
		if r == '\n' {
			maxW = max(maxW, currentW)
			currentW = 0
			lines++
			continue
		}
		if g, ok := a.Glyphs[r]; ok {
			currentW += g.Adv * scale
		}
	}
	return max(maxW, currentW), a.LineHeight(scale) * float32(lines)
}
