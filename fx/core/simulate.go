package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Update advances every group by dt seconds and rewrites each group's instance
// records from the surviving particles. View-projection and billboard matrices
// are computed once for all groups.
func (m *Manager) Update(dt float32, cam Camera) {
	view := cam.GetViewMatrix()
	viewProj := ViewProjection(view, cam.GetProjectionMatrix())
	billboard := BillboardMatrix(view)

	for _, g := range m.groups {
		g.step(dt, viewProj, billboard, &m.field)
	}
}

func (g *Group) step(dt float32, viewProj, billboard mgl32.Mat4, field *AccelerationField) {
	var records []InstanceRecord
	if g.buffer != nil {
		records = g.buffer.Records()
	}
	limit := min(len(records), g.capacity)

	written := 0
	i := 0
	for i < len(g.particles) {
		p := &g.particles[i]

		p.CurrentTime += dt
		if p.Expired() {
			g.removeAt(i)
			continue
		}

		field.apply(p, dt)
		p.Transform.Translation = p.Transform.Translation.Add(p.Velocity.Mul(dt))

		// Particles past the buffer capacity keep simulating but are not drawn.
		if written < limit {
			world := BillboardWorld(p.Transform.Scale, billboard, p.Transform.Translation)
			records[written] = InstanceRecord{
				WVP:   viewProj.Mul4(world),
				World: world,
				Color: p.Color,
			}
			written++
		}
		i++
	}
	g.instanceCount = written
}
