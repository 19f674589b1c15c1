package core

// InstanceBuffer is a fixed-capacity, CPU-writable array of instance records
// that a renderer reads after each simulation step.
type InstanceBuffer interface {
	Records() []InstanceRecord
	Release()
}

// InstanceAllocator provides one InstanceBuffer per particle group.
type InstanceAllocator interface {
	Allocate(name string, capacity int) (InstanceBuffer, error)
}

// HostAllocator hands out plain memory buffers; used headless and in tests.
type HostAllocator struct{}

func (HostAllocator) Allocate(name string, capacity int) (InstanceBuffer, error) {
	return &hostBuffer{records: make([]InstanceRecord, capacity)}, nil
}

type hostBuffer struct {
	records []InstanceRecord
}

func (b *hostBuffer) Records() []InstanceRecord { return b.records }
func (b *hostBuffer) Release()                  { b.records = nil }
