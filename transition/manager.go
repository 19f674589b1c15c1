package transition

import (
	"fmt"
	"sort"

	"github.com/gekko3d/blaster/logging"
)

// Kind names a registered transition.
type Kind string

const (
	KindFade   Kind = "fade"
	KindStripe Kind = "stripe"
)

// Manager maps kinds to live transitions and allows one to run at a time.
type Manager struct {
	transitions map[Kind]*Transition
	active      Kind
	logger      logging.Logger
}

func NewManager(logger logging.Logger) *Manager {
	return &Manager{
		transitions: make(map[Kind]*Transition),
		logger:      logging.OrNop(logger),
	}
}

// Register binds kind to t, replacing any previous registration. The kind
// that is currently running cannot be replaced until it finishes.
func (m *Manager) Register(kind Kind, t *Transition) error {
	if cur, ok := m.Active(); ok && kind == m.active {
		return fmt.Errorf("register %q while %s: %w", kind, cur.State(), ErrTransitionActive)
	}
	m.transitions[kind] = t
	return nil
}

func (m *Manager) Get(kind Kind) (*Transition, bool) {
	t, ok := m.transitions[kind]
	return t, ok
}

// Kinds returns the registered kinds in sorted order.
func (m *Manager) Kinds() []Kind {
	kinds := make([]Kind, 0, len(m.transitions))
	for k := range m.transitions {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Start runs the transition registered as kind and calls onChange when the
// screen is covered. While any transition is running the request is dropped
// with ErrTransitionActive and onChange is never called. An unregistered kind
// calls onChange immediately so the scene change still happens.
func (m *Manager) Start(kind Kind, onChange func()) error {
	if cur, ok := m.Active(); ok {
		m.logger.Debugf("transition %q rejected: %q is %s", kind, m.active, cur.State())
		return ErrTransitionActive
	}

	t, ok := m.transitions[kind]
	if !ok {
		m.logger.Warnf("transition %q not registered; changing scene without one", kind)
		if onChange != nil {
			onChange()
		}
		return nil
	}

	if err := t.Start(onChange); err != nil {
		return err
	}
	m.active = kind
	return nil
}

// Update advances the running transition, if any.
func (m *Manager) Update(dt float32) {
	t, ok := m.Active()
	if !ok {
		return
	}
	before := t.State()
	t.Update(dt)
	if after := t.State(); after != before {
		m.logger.Debugf("transition %q: %s -> %s", m.active, before, after)
	}
	if !t.IsTransitioning() {
		m.active = ""
	}
}

// Active returns the running transition.
func (m *Manager) Active() (*Transition, bool) {
	if m.active == "" {
		return nil, false
	}
	t, ok := m.transitions[m.active]
	if !ok || !t.IsTransitioning() {
		return nil, false
	}
	return t, true
}

func (m *Manager) IsTransitioning() bool {
	_, ok := m.Active()
	return ok
}

// Quads returns the running transition's overlay for a width x height screen.
func (m *Manager) Quads(width, height float32) []Quad {
	t, ok := m.Active()
	if !ok {
		return nil
	}
	return t.Quads(width, height)
}
