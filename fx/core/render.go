package core

// QuadVertexCount is the number of vertices per particle: two triangles.
const QuadVertexCount = 6

// DrawSubmitter issues one instanced draw for a group.
type DrawSubmitter interface {
	DrawInstanced(group *Group, vertexCount, instanceCount uint32)
}

// Submit issues one instanced draw per non-empty group, in name order, and
// returns the number of draws. Call it after Update in the same tick.
func (m *Manager) Submit(s DrawSubmitter) int {
	draws := 0
	for _, g := range m.Groups() {
		if g.instanceCount == 0 {
			continue
		}
		s.DrawInstanced(g, QuadVertexCount, uint32(g.instanceCount))
		draws++
	}
	return draws
}
