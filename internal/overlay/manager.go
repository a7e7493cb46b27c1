// Package overlay binds visualization layers to a map surface.
//
// Binding is deferred by a short delay after Attach so the surface can finish
// initializing. A Teardown before the delay elapses cancels the bind and the
// surface is never touched.
package overlay

import (
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jengzang/fleetmap-backend-go/internal/models"
)

// DefaultAttachDelay is the delay between Attach and the first bind
const DefaultAttachDelay = 150 * time.Millisecond

// ErrNilSurface is returned by Attach when no surface is given
var ErrNilSurface = errors.New("overlay: nil surface")

// State is the lifecycle state of a Manager
type State int

const (
	Unattached State = iota
	Attaching
	Attached
	Detached
)

func (s State) String() string {
	switch s {
	case Unattached:
		return "unattached"
	case Attaching:
		return "attaching"
	case Attached:
		return "attached"
	case Detached:
		return "detached"
	default:
		return "unknown"
	}
}

// Manager owns the layers bound to at most one surface at a time. All
// transitions, the deferred bind and surface calls run under one mutex.
type Manager struct {
	clock Clock
	delay time.Duration
	log   logrus.FieldLogger

	mu      sync.Mutex
	state   State
	surface Surface
	layers  models.LayerSet
	timer   Timer
	gen     uint64
}

// NewManager creates a manager. A nil clock uses RealClock; a negative delay
// uses DefaultAttachDelay.
func NewManager(clock Clock, delay time.Duration, log logrus.FieldLogger) *Manager {
	if clock == nil {
		clock = RealClock()
	}
	if delay < 0 {
		delay = DefaultAttachDelay
	}
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	return &Manager{clock: clock, delay: delay, log: log}
}

// State returns the current lifecycle state
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Layers returns the latest layer set passed to Update
func (m *Manager) Layers() models.LayerSet {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.layers
}

// Attach schedules binding the current layers to surface. Attaching the
// surface that is already attaching or attached is a no-op; attaching a
// different one tears down the current surface first.
func (m *Manager) Attach(surface Surface) error {
	if surface == nil {
		return ErrNilSurface
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == Attaching || m.state == Attached {
		if m.surface.ID() == surface.ID() {
			return nil
		}
		m.teardownLocked()
	}

	m.gen++
	gen := m.gen
	m.surface = surface
	m.state = Attaching
	m.timer = m.clock.AfterFunc(m.delay, func() { m.bind(gen) })

	m.log.WithFields(logrus.Fields{
		"surface": surface.ID(),
		"delay":   m.delay.String(),
	}).Debug("overlay attach scheduled")
	return nil
}

func (m *Manager) bind(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if gen != m.gen || m.state != Attaching {
		return
	}
	m.timer = nil

	if err := m.surface.SetLayers(m.layers); err != nil {
		m.log.WithError(err).WithField("surface", m.surface.ID()).Error("overlay bind failed")
		m.state = Detached
		m.surface = nil
		return
	}
	m.state = Attached
	m.log.WithField("surface", m.surface.ID()).Debug("overlay attached")
}

// Update stores ls as the latest layer set and, when attached, replaces the
// surface's layers with it. While attaching, ls is what the bind will use.
func (m *Manager) Update(ls models.LayerSet) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.layers = ls
	if m.state != Attached {
		return nil
	}
	return m.surface.SetLayers(ls)
}

// Teardown detaches from the current surface. It is idempotent.
func (m *Manager) Teardown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.teardownLocked()
}

func (m *Manager) teardownLocked() {
	switch m.state {
	case Attaching:
		if m.timer != nil {
			m.timer.Stop()
			m.timer = nil
		}
		// a timer that already fired sees a stale generation
		m.gen++
		m.log.WithField("surface", m.surface.ID()).Debug("overlay attach cancelled")
	case Attached:
		if err := m.surface.ClearLayers(); err != nil {
			m.log.WithError(err).WithField("surface", m.surface.ID()).Warn("failed to clear overlay layers")
		}
		m.gen++
		m.log.WithField("surface", m.surface.ID()).Debug("overlay detached")
	default:
		return
	}
	m.state = Detached
	m.surface = nil
}
