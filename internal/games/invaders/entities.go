package invaders

import (
	"time"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// EntityManager owns the live entities and the pending-removal set.
// Removal is two-phase: passes only mark, RemoveDeadEntities sweeps.
type EntityManager struct {
	entities []Entity
	pending  map[EntityID]struct{}
	nextID   EntityID

	alienCount    int
	logicRequired bool
	outbox        Outbox
}

// NewEntityManager creates an empty manager.
func NewEntityManager() *EntityManager {
	return &EntityManager{
		pending: make(map[EntityID]struct{}),
	}
}

// Add inserts an entity into the live set and assigns its id.
func (m *EntityManager) Add(e Entity) {
	m.nextID++
	e.assign(m.nextID)
	m.entities = append(m.entities, e)
	if e.Kind() == KindAlien {
		m.alienCount++
	}
}

// Entities returns the live set. Callers must not modify it.
func (m *EntityManager) Entities() []Entity {
	return m.entities
}

// Len returns the number of live entities.
func (m *EntityManager) Len() int {
	return len(m.entities)
}

// AlienCount returns the number of aliens in the live set.
func (m *EntityManager) AlienCount() int {
	return m.alienCount
}

// MoveEntities advances every entity. Nothing moves outside of Playing.
func (m *EntityManager) MoveEntities(delta time.Duration, flow FlowState) {
	if flow != FlowPlaying {
		return
	}
	for _, e := range m.entities {
		e.Move(delta, &m.outbox)
	}
}

// CheckCollisions runs both reactions for every overlapping unordered pair
// of the live set and returns the number of overlapping pairs.
func (m *EntityManager) CheckCollisions() int {
	pairs := 0
	for i := 0; i < len(m.entities); i++ {
		a := m.entities[i]
		for j := i + 1; j < len(m.entities); j++ {
			b := m.entities[j]
			if !a.CollidesWith(b) {
				continue
			}
			pairs++
			a.CollidedWith(b, &m.outbox)
			b.CollidedWith(a, &m.outbox)
		}
	}
	return pairs
}

// RequestRemoval marks an entity for the next sweep.
func (m *EntityManager) RequestRemoval(e Entity) {
	m.pending[e.ID()] = struct{}{}
}

// IsPending reports whether an entity is marked for removal.
func (m *EntityManager) IsPending(e Entity) bool {
	_, ok := m.pending[e.ID()]
	return ok
}

// Drain moves queued removals into the pending set and returns queued events.
func (m *EntityManager) Drain() []Event {
	removals, events := m.outbox.drain()
	for _, e := range removals {
		m.RequestRemoval(e)
	}
	return events
}

// RemoveDeadEntities sweeps the pending set out of the live set, keeping
// order, and returns how many entities were removed.
func (m *EntityManager) RemoveDeadEntities() int {
	if len(m.pending) == 0 {
		return 0
	}

	kept := m.entities[:0]
	removed := 0
	for _, e := range m.entities {
		if _, dead := m.pending[e.ID()]; !dead {
			kept = append(kept, e)
			continue
		}
		removed++
		if e.Kind() == KindAlien && m.alienCount > 0 {
			m.alienCount--
		}
	}
	for i := len(kept); i < len(m.entities); i++ {
		m.entities[i] = nil
	}
	m.entities = kept
	clear(m.pending)
	return removed
}

// UpdateLogic schedules a logic pass.
func (m *EntityManager) UpdateLogic() {
	m.logicRequired = true
}

// LogicRequired reports whether a logic pass is scheduled.
func (m *EntityManager) LogicRequired() bool {
	return m.logicRequired
}

// ProcessEntityLogic runs DoLogic on every live entity if a pass is
// scheduled and returns the events it raised.
func (m *EntityManager) ProcessEntityLogic() []Event {
	if !m.logicRequired {
		return nil
	}
	m.logicRequired = false

	for _, e := range m.entities {
		e.DoLogic(&m.outbox)
	}
	return m.Drain()
}

// Clear drops every entity at once.
func (m *EntityManager) Clear() {
	clear(m.entities)
	m.entities = m.entities[:0]
	clear(m.pending)
	m.outbox.drain()
	m.alienCount = 0
	m.logicRequired = false
}

// Aliens returns living aliens that are not marked for removal.
func (m *EntityManager) Aliens() []*Alien {
	aliens := make([]*Alien, 0, m.alienCount)
	for _, e := range m.entities {
		a, ok := e.(*Alien)
		if !ok || a.Dead() || m.IsPending(a) {
			continue
		}
		aliens = append(aliens, a)
	}
	return aliens
}

// SpeedUpAliens multiplies the horizontal speed of every surviving alien.
func (m *EntityManager) SpeedUpAliens(factor float64) {
	for _, a := range m.Aliens() {
		a.SpeedUp(factor)
	}
}

// Ship returns a player's ship if it is in the live set.
func (m *EntityManager) Ship(player core.PlayerID) *Ship {
	for _, e := range m.entities {
		if s, ok := e.(*Ship); ok && s.Player == player && !m.IsPending(s) {
			return s
		}
	}
	return nil
}
