package core

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

var identityCamera = FixedCamera{View: mgl32.Ident4(), Projection: mgl32.Ident4()}

// shortAllocator hands out buffers with fewer records than requested.
type shortAllocator struct {
	records  int
	released []string
}

func (a *shortAllocator) Allocate(name string, capacity int) (InstanceBuffer, error) {
	return &trackedBuffer{name: name, records: make([]InstanceRecord, a.records), owner: a}, nil
}

type trackedBuffer struct {
	name    string
	records []InstanceRecord
	owner   *shortAllocator
}

func (b *trackedBuffer) Records() []InstanceRecord { return b.records }
func (b *trackedBuffer) Release() {
	b.owner.released = append(b.owner.released, b.name)
	b.records = nil
}

type failingAllocator struct{}

func (failingAllocator) Allocate(string, int) (InstanceBuffer, error) {
	return nil, errors.New("out of device memory")
}

type fakeTextures struct {
	loads   map[string]int
	missing map[string]bool
}

func newFakeTextures() *fakeTextures {
	return &fakeTextures{loads: map[string]int{}, missing: map[string]bool{}}
}

func (f *fakeTextures) LoadTexture(path string) error {
	if f.missing[path] {
		return errors.New("no such file")
	}
	f.loads[path]++
	return nil
}

func (f *fakeTextures) TextureHandle(path string) (TextureHandle, error) {
	if f.loads[path] == 0 {
		return "", errors.New("not loaded")
	}
	return TextureHandle("tex:" + path), nil
}

type drawCall struct {
	group         string
	vertexCount   uint32
	instanceCount uint32
}

type recordingSubmitter struct {
	calls []drawCall
}

func (r *recordingSubmitter) DrawInstanced(g *Group, vertexCount, instanceCount uint32) {
	r.calls = append(r.calls, drawCall{group: g.Name(), vertexCount: vertexCount, instanceCount: instanceCount})
}

func newTestManager(opts ...Option) *Manager {
	opts = append([]Option{WithSeed(42)}, opts...)
	return NewManager(HostAllocator{}, nil, opts...)
}
