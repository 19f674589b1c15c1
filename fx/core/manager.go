package core

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/gekko3d/blaster/logging"
	"github.com/go-gl/mathgl/mgl32"
)

// TextureRegistry resolves texture paths to handles. LoadTexture must be idempotent.
type TextureRegistry interface {
	LoadTexture(path string) error
	TextureHandle(path string) (TextureHandle, error)
}

// Manager owns every particle group plus the global field and emitter settings.
// It is not safe for concurrent use; the game loop drives it from one goroutine.
type Manager struct {
	groups    map[string]*Group
	allocator InstanceAllocator
	textures  TextureRegistry
	logger    logging.Logger

	capacity int
	field    AccelerationField
	settings EmitterSettings
	rng      *rand.Rand
}

type Option func(*Manager)

// WithCapacity sets the per-group particle and instance capacity.
func WithCapacity(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.capacity = n
		}
	}
}

// WithSeed makes emission deterministic.
func WithSeed(seed uint64) Option {
	return func(m *Manager) {
		m.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

func WithLogger(l logging.Logger) Option {
	return func(m *Manager) { m.logger = logging.OrNop(l) }
}

func WithEmitterSettings(s EmitterSettings) Option {
	return func(m *Manager) { m.SetEmitterSettings(s) }
}

func WithField(f AccelerationField) Option {
	return func(m *Manager) { m.field = f }
}

// NewManager creates an empty manager. textures may be nil, in which case
// groups carry no texture handle.
func NewManager(allocator InstanceAllocator, textures TextureRegistry, opts ...Option) *Manager {
	if allocator == nil {
		allocator = HostAllocator{}
	}
	m := &Manager{
		groups:    make(map[string]*Group),
		allocator: allocator,
		textures:  textures,
		logger:    logging.NewNopLogger(),
		capacity:  MaxInstanceCount,
		settings:  DefaultEmitterSettings(),
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) Capacity() int { return m.capacity }

// CreateGroup registers a new group bound to the texture at texturePath.
func (m *Manager) CreateGroup(name, texturePath string) error {
	if _, ok := m.groups[name]; ok {
		return fmt.Errorf("create group %q: %w", name, ErrGroupExists)
	}

	var handle TextureHandle
	if m.textures != nil && texturePath != "" {
		if err := m.textures.LoadTexture(texturePath); err != nil {
			return fmt.Errorf("create group %q: %w", name, err)
		}
		h, err := m.textures.TextureHandle(texturePath)
		if err != nil {
			return fmt.Errorf("create group %q: %w", name, err)
		}
		handle = h
	}

	buf, err := m.allocator.Allocate(name, m.capacity)
	if err != nil {
		return fmt.Errorf("create group %q: allocate instance buffer: %w", name, err)
	}

	m.groups[name] = &Group{
		name:        name,
		texturePath: texturePath,
		texture:     handle,
		capacity:    m.capacity,
		particles:   make([]Particle, 0, m.capacity),
		buffer:      buf,
	}
	m.logger.Debugf("particle group %q created (texture %q, capacity %d)", name, texturePath, m.capacity)
	return nil
}

// DestroyGroup removes the group and releases its instance buffer.
func (m *Manager) DestroyGroup(name string) error {
	g, ok := m.groups[name]
	if !ok {
		return fmt.Errorf("destroy group %q: %w", name, ErrGroupNotFound)
	}
	g.release()
	delete(m.groups, name)
	m.logger.Debugf("particle group %q destroyed", name)
	return nil
}

// DestroyAll removes every group.
func (m *Manager) DestroyAll() {
	for name, g := range m.groups {
		g.release()
		delete(m.groups, name)
	}
}

func (m *Manager) Group(name string) (*Group, bool) {
	g, ok := m.groups[name]
	return g, ok
}

// Groups returns all groups sorted by name.
func (m *Manager) Groups() []*Group {
	out := make([]*Group, 0, len(m.groups))
	for _, g := range m.groups {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// ParticleCount is the number of live particles across all groups.
func (m *Manager) ParticleCount() int {
	n := 0
	for _, g := range m.groups {
		n += len(g.particles)
	}
	return n
}

func (m *Manager) Field() AccelerationField     { return m.field }
func (m *Manager) SetField(f AccelerationField) { m.field = f }

func (m *Manager) EmitterSettings() EmitterSettings { return m.settings }

// SetEmitterSettings replaces the settings used by subsequent Emit calls.
// Zero lifetime and zero scale fall back to the defaults.
func (m *Manager) SetEmitterSettings(s EmitterSettings) {
	if s.LifeTime <= 0 {
		s.LifeTime = DefaultLifeTime
	}
	if s.Scale == (mgl32.Vec3{}) {
		s.Scale = DefaultEmitterSettings().Scale
	}
	m.settings = s
}
