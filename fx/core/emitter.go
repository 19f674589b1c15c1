package core

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Emit spawns up to count particles at position into the named group. Emission
// stops early once the group is full; that is not an error. It returns how many
// particles were spawned.
func (m *Manager) Emit(name string, position mgl32.Vec3, count int) (int, error) {
	g, ok := m.groups[name]
	if !ok {
		return 0, fmt.Errorf("emit into %q: %w", name, ErrGroupNotFound)
	}

	s := m.settings
	half := 0.5 * s.VelocityScale
	emitted := 0
	for ; emitted < count && !g.full(); emitted++ {
		g.particles = append(g.particles, Particle{
			Transform: Transform{
				Scale:       s.Scale,
				Translation: position,
			},
			Velocity: mgl32.Vec3{
				m.uniform(-half, half),
				m.uniform(0, half),
				m.uniform(-half, half),
			},
			Color:       m.spawnColor(),
			LifeTime:    s.LifeTime,
			CurrentTime: 0,
		})
	}
	if emitted < count {
		m.logger.Debugf("group %q full: emitted %d of %d", name, emitted, count)
	}
	return emitted, nil
}

func (m *Manager) spawnColor() mgl32.Vec4 {
	if !m.settings.UseRandomColor {
		return m.settings.BaseColor
	}
	return mgl32.Vec4{m.rng.Float32(), m.rng.Float32(), m.rng.Float32(), 1}
}

func (m *Manager) uniform(lo, hi float32) float32 {
	return lo + (hi-lo)*m.rng.Float32()
}
