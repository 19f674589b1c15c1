package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Matrices follow the mgl32 column-vector convention: a vertex v is transformed
// as M*v, so the right-most factor of a product is applied first.

func Identity() mgl32.Mat4 {
	return mgl32.Ident4()
}

func ScaleMatrix(s mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Scale3D(s.X(), s.Y(), s.Z())
}

func TranslationMatrix(t mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(t.X(), t.Y(), t.Z())
}

// RotationMatrix builds a rotation from Euler angles in radians, applied X, then Y, then Z.
func RotationMatrix(euler mgl32.Vec3) mgl32.Mat4 {
	rx := mgl32.HomogRotate3DX(euler.X())
	ry := mgl32.HomogRotate3DY(euler.Y())
	rz := mgl32.HomogRotate3DZ(euler.Z())
	return rz.Mul4(ry).Mul4(rx)
}

// Compose returns the affine transform that scales, then rotates, then translates.
func Compose(scale, rotation, translation mgl32.Vec3) mgl32.Mat4 {
	return TranslationMatrix(translation).Mul4(RotationMatrix(rotation)).Mul4(ScaleMatrix(scale))
}

func Inverse(m mgl32.Mat4) mgl32.Mat4 {
	return m.Inv()
}

func ViewProjection(view, proj mgl32.Mat4) mgl32.Mat4 {
	return proj.Mul4(view)
}

// BillboardMatrix cancels the camera rotation held in view: its upper-left 3x3
// block is the transpose of the view's, everything else is identity.
func BillboardMatrix(view mgl32.Mat4) mgl32.Mat4 {
	return view.Mat3().Transpose().Mat4()
}

// BillboardWorld places a camera-facing quad: scale in local space, reorient by
// the billboard rotation, then move to position.
func BillboardWorld(scale mgl32.Vec3, billboard mgl32.Mat4, position mgl32.Vec3) mgl32.Mat4 {
	return TranslationMatrix(position).Mul4(billboard).Mul4(ScaleMatrix(scale))
}
