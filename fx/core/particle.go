package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// MaxInstanceCount is the default per-group particle and instance capacity.
	MaxInstanceCount = 1000
	// DefaultLifeTime is the lifetime given to particles when settings leave it unset.
	DefaultLifeTime float32 = 2.0
	// NominalStep is the fixed simulation tick.
	NominalStep float32 = 1.0 / 60.0
)

// Transform of a single particle. Rotation is carried for symmetry with other
// transforms; billboards ignore it.
type Transform struct {
	Scale       mgl32.Vec3
	Rotation    mgl32.Vec3
	Translation mgl32.Vec3
}

type Particle struct {
	Transform   Transform
	Velocity    mgl32.Vec3 // world units per second
	Color       mgl32.Vec4
	LifeTime    float32
	CurrentTime float32
}

// expiryTolerance absorbs float32 drift when ages are accumulated from a fixed
// step: 120 steps of 1/60 sum to 1.9999988, not 2.
const expiryTolerance float32 = 1e-4

// Expired reports whether the particle has reached its lifetime.
func (p *Particle) Expired() bool {
	return p.CurrentTime >= p.LifeTime-expiryTolerance
}

// InstanceRecord matches the per-instance vertex layout in particle.wgsl:
// two column-major mat4 followed by an RGBA color, 144 bytes.
type InstanceRecord struct {
	WVP   mgl32.Mat4
	World mgl32.Mat4
	Color mgl32.Vec4
}

// AABB is an axis-aligned box with inclusive bounds.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

func (b AABB) Contains(p mgl32.Vec3) bool {
	return p.X() >= b.Min.X() && p.X() <= b.Max.X() &&
		p.Y() >= b.Min.Y() && p.Y() <= b.Max.Y() &&
		p.Z() >= b.Min.Z() && p.Z() <= b.Max.Z()
}

// AccelerationField adds Acceleration*dt to the velocity of every particle inside Area.
type AccelerationField struct {
	Acceleration mgl32.Vec3
	Area         AABB
	Enabled      bool
}

func (f *AccelerationField) apply(p *Particle, dt float32) {
	if !f.Enabled || !f.Area.Contains(p.Transform.Translation) {
		return
	}
	p.Velocity = p.Velocity.Add(f.Acceleration.Mul(dt))
}

// EmitterSettings shape newly spawned particles.
type EmitterSettings struct {
	VelocityScale  float32
	UseRandomColor bool
	BaseColor      mgl32.Vec4
	LifeTime       float32
	Scale          mgl32.Vec3
}

func DefaultEmitterSettings() EmitterSettings {
	return EmitterSettings{
		VelocityScale:  1.0,
		UseRandomColor: true,
		BaseColor:      mgl32.Vec4{1, 1, 1, 1},
		LifeTime:       DefaultLifeTime,
		Scale:          mgl32.Vec3{1, 1, 1},
	}
}
