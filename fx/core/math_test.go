package core

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func closeEnough(a, b, eps float32) bool {
	return float32(math.Abs(float64(a-b))) <= eps
}

func TestBillboardMatrix_IdentityView(t *testing.T) {
	bb := BillboardMatrix(mgl32.Ident4())
	if !bb.ApproxEqual(mgl32.Ident4()) {
		t.Errorf("billboard of identity view should be identity, got %v", bb)
	}
}

func TestBillboardMatrix_CancelsViewRotation(t *testing.T) {
	view := mgl32.LookAtV(mgl32.Vec3{3, 4, 5}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})
	bb := BillboardMatrix(view)

	rot := view.Mat3().Mul3(bb.Mat3())
	if !rot.ApproxEqualThreshold(mgl32.Ident3(), 1e-5) {
		t.Errorf("view rotation times billboard should be identity, got %v", rot)
	}

	// Rows of the billboard are the columns of the view.
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(t, view.At(j, i), bb.At(i, j), 1e-6)
		}
	}

	// Translation and projective parts stay identity.
	for i := 0; i < 3; i++ {
		assert.Equal(t, float32(0), bb.At(i, 3))
		assert.Equal(t, float32(0), bb.At(3, i))
	}
	assert.Equal(t, float32(1), bb.At(3, 3))
}

func TestBillboardWorld_ScaleThenTranslate(t *testing.T) {
	world := BillboardWorld(mgl32.Vec3{2, 2, 2}, Identity(), mgl32.Vec3{10, 0, 0})
	got := world.Mul4x1(mgl32.Vec4{1, 1, 0, 1})

	want := mgl32.Vec4{12, 2, 0, 1}
	if !got.ApproxEqual(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if !world.ApproxEqual(TranslationMatrix(mgl32.Vec3{10, 0, 0}).Mul4(ScaleMatrix(mgl32.Vec3{2, 2, 2}))) {
		t.Errorf("identity billboard should reduce to translate*scale, got %v", world)
	}
}

func TestBillboardWorld_ScalesBeforeRotating(t *testing.T) {
	// Non-uniform scale must act on the quad's local axes, not the rotated ones.
	bb := BillboardMatrix(mgl32.HomogRotate3DZ(float32(math.Pi / 2)))
	world := BillboardWorld(mgl32.Vec3{3, 1, 1}, bb, mgl32.Vec3{})

	got := world.Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	assert.InDelta(t, 3.0, got.Len(), 1e-5)
}

func TestRotationMatrix_AxisOrder(t *testing.T) {
	got := RotationMatrix(mgl32.Vec3{0, float32(math.Pi / 2), 0}).Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	if !closeEnough(got.X(), 0, 1e-5) || !closeEnough(got.Z(), -1, 1e-5) {
		t.Errorf("rotating +X by 90 degrees about Y should give -Z, got %v", got)
	}

	// X is applied before Z: +Y rotated about X lands on +Z, which Z rotation leaves alone.
	got = RotationMatrix(mgl32.Vec3{float32(math.Pi / 2), 0, float32(math.Pi / 2)}).Mul4x1(mgl32.Vec4{0, 1, 0, 1})
	if !got.Vec3().ApproxEqualThreshold(mgl32.Vec3{0, 0, 1}, 1e-5) {
		t.Errorf("expected +Z, got %v", got)
	}
}

func TestComposeInverse(t *testing.T) {
	m := Compose(mgl32.Vec3{2, 3, 4}, mgl32.Vec3{0.3, -1.1, 0.7}, mgl32.Vec3{5, -6, 7})
	id := m.Mul4(Inverse(m))

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			want := float32(0)
			if i == j {
				want = 1
			}
			if !closeEnough(id.At(i, j), want, 1e-4) {
				t.Errorf("element [%d,%d] should be %f, got %f", i, j, want, id.At(i, j))
			}
		}
	}
}

func TestViewProjection_Order(t *testing.T) {
	view := TranslationMatrix(mgl32.Vec3{0, 0, -5})
	proj := ScaleMatrix(mgl32.Vec3{2, 2, 2})

	got := ViewProjection(view, proj).Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	// View first (z=-5), then projection scales it.
	assert.InDelta(t, -10.0, got.Z(), 1e-6)
}
