package invaders

import "github.com/vovakirdan/tui-invaders/internal/core"

// lethalDamage is larger than any health pool.
const lethalDamage = 1 << 20

// EventKind enumerates the notifications entities raise during a pass.
type EventKind int

const (
	EventAlienKilled EventKind = iota
	EventBossKilled
	EventPlayerHit
	EventLogicRequired
	EventDeath
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventAlienKilled:
		return "alien_killed"
	case EventBossKilled:
		return "boss_killed"
	case EventPlayerHit:
		return "player_hit"
	case EventLogicRequired:
		return "logic_required"
	case EventDeath:
		return "death"
	default:
		return "unknown"
	}
}

// Event is a notification raised by an entity.
type Event struct {
	Kind   EventKind
	Score  int           // EventAlienKilled
	Player core.PlayerID // EventPlayerHit
	Damage int           // EventPlayerHit
}

// Outbox collects removal requests and events during a pass.
type Outbox struct {
	removals []Entity
	events   []Event
}

// Remove requests that e leaves the live set after the current pass.
func (o *Outbox) Remove(e Entity) {
	o.removals = append(o.removals, e)
}

// Emit queues an event for the tick to dispatch.
func (o *Outbox) Emit(ev Event) {
	o.events = append(o.events, ev)
}

// Len returns the number of queued removals and events.
func (o *Outbox) Len() int {
	return len(o.removals) + len(o.events)
}

// drain hands over everything queued and resets the outbox.
func (o *Outbox) drain() ([]Entity, []Event) {
	removals, events := o.removals, o.events
	o.removals = nil
	o.events = nil
	return removals, events
}
