package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAtlas(t *testing.T) *Atlas {
	t.Helper()
	a, err := NewDefaultAtlas(24)
	require.NoError(t, err)
	return a
}

func TestAtlas_Glyphs(t *testing.T) {
	a := newTestAtlas(t)

	g, ok := a.Glyphs['A']
	require.True(t, ok)
	assert.Greater(t, g.Size[0], float32(0))
	assert.Greater(t, g.Adv, float32(0))
	assert.Less(t, g.Off[1], float32(0), "capital letters sit above the baseline")

	// Reserved opaque texels for solid fills.
	assert.Equal(t, uint8(0xff), a.Image.AlphaAt(0, 0).A)
	assert.Equal(t, uint8(0xff), a.Image.AlphaAt(1, 1).A)
}

func TestAtlas_BadFont(t *testing.T) {
	_, err := NewAtlas([]byte("not a font"), 12)
	assert.ErrorContains(t, err, "failed to parse font")
}

func TestAtlas_MeasureText(t *testing.T) {
	a := newTestAtlas(t)
	w1, h1 := a.MeasureText("HELLO", 1)
	w2, h2 := a.MeasureText("HELLO", 2)
	assert.InDelta(t, w1*2, w2, 1e-3)
	assert.InDelta(t, h1*2, h2, 1e-3)

	_, h := a.MeasureText("A\nB", 1)
	assert.InDelta(t, a.LineHeight(1)*2, h, 1e-3)
}

func TestBatch_RectToNDC(t *testing.T) {
	b := NewBatch(newTestAtlas(t))
	b.Begin(200, 100)
	b.Rect(0, 0, 100, 50, [4]float32{1, 0, 0, 1})

	v := b.Vertices()
	require.Len(t, v, 6)
	assert.Equal(t, [2]float32{-1, 1}, v[0].Pos)
	assert.Equal(t, [2]float32{0, 0}, v[4].Pos)
	assert.Equal(t, [4]float32{1, 0, 0, 1}, v[0].Color)
	assert.Equal(t, v[0].UV, v[4].UV, "solid fills sample a single texel")

	b.Rect(0, 0, 0, 10, [4]float32{1, 1, 1, 1})
	b.Rect(0, 0, 10, 10, [4]float32{1, 1, 1, 0})
	assert.Equal(t, 6, b.Len(), "empty and transparent rects are skipped")

	b.Begin(200, 100)
	assert.Zero(t, b.Len())
}

func TestBatch_Text(t *testing.T) {
	b := NewBatch(newTestAtlas(t))
	b.Begin(640, 480)
	b.Text("A B", 10, 10, 1, [4]float32{1, 1, 1, 1})
	assert.Equal(t, 12, b.Len(), "the space advances without geometry")

	b.Begin(640, 480)
	b.TextCentered("GAME OVER", 200, 2, [4]float32{1, 1, 1, 1})
	assert.Equal(t, 8*6, b.Len())
}

func TestBatch_NoAtlas(t *testing.T) {
	b := NewBatch(nil)
	b.Begin(10, 10)
	b.Text("ignored", 0, 0, 1, [4]float32{1, 1, 1, 1})
	b.Rect(0, 0, 5, 5, [4]float32{1, 1, 1, 1})
	assert.Equal(t, 6, b.Len())
}
