package core

// TextureHandle identifies a texture in the external texture registry.
type TextureHandle string

// Group is a named bucket of particles sharing one texture and one instance buffer.
type Group struct {
	name        string
	texturePath string
	texture     TextureHandle
	capacity    int

	particles     []Particle
	buffer        InstanceBuffer
	instanceCount int
}

func (g *Group) Name() string           { return g.name }
func (g *Group) Texture() TextureHandle { return g.texture }
func (g *Group) TexturePath() string    { return g.texturePath }
func (g *Group) Capacity() int          { return g.capacity }
func (g *Group) Len() int               { return len(g.particles) }
func (g *Group) Buffer() InstanceBuffer { return g.buffer }

// InstanceCount is the number of valid leading records written by the last Update.
func (g *Group) InstanceCount() int { return g.instanceCount }

// Particles returns the live particles. The slice is owned by the group and is
// only valid until the next Emit or Update.
func (g *Group) Particles() []Particle { return g.particles }

// Instances returns the records written by the last Update; entries past
// InstanceCount are stale and excluded.
func (g *Group) Instances() []InstanceRecord {
	if g.buffer == nil {
		return nil
	}
	return g.buffer.Records()[:g.instanceCount]
}

// Clear drops every particle without touching the instance buffer; the next
// Update reports zero instances.
func (g *Group) Clear() {
	g.particles = g.particles[:0]
}

func (g *Group) full() bool {
	return len(g.particles) >= g.capacity
}

// removeAt swap-removes particle i. Survivor order is not preserved.
func (g *Group) removeAt(i int) {
	last := len(g.particles) - 1
	g.particles[i] = g.particles[last]
	g.particles = g.particles[:last]
}

func (g *Group) release() {
	if g.buffer != nil {
		g.buffer.Release()
		g.buffer = nil
	}
	g.particles = nil
	g.instanceCount = 0
}
