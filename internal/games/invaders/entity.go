// Package invaders implements a stage-based Space Invaders simulation.
//
// The simulation is pure: it advances on a fixed tick driven by the host and
// talks to persistence, buffs and rendering through narrow interfaces.
// Entities never touch the collections that own them. Reactions are written
// to an Outbox that the tick drains after each pass.
package invaders

import (
	"time"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// EntityID identifies an entity inside one EntityManager.
type EntityID uint64

// Kind identifies the concrete entity type.
type Kind int

const (
	KindShip Kind = iota
	KindAlien
	KindShot
)

// Entity is a movable, collidable simulation object.
type Entity interface {
	ID() EntityID
	Kind() Kind
	Base() *Body

	// Move advances the entity by delta. It may request its own removal or
	// raise events through out.
	Move(delta time.Duration, out *Outbox)

	// CollidesWith is a pure bounding-box overlap test.
	CollidesWith(other Entity) bool

	// CollidedWith is this entity's reaction to overlapping other.
	// The manager calls it on both sides of every overlapping pair.
	CollidedWith(other Entity, out *Outbox)

	// DoLogic runs during a logic pass.
	DoLogic(out *Outbox)

	assign(id EntityID)
}

var (
	_ Entity = (*Ship)(nil)
	_ Entity = (*Shot)(nil)
	_ Entity = (*Alien)(nil)
)

// Body holds the position, velocity and extent shared by every entity.
// Velocities are in world units per second.
type Body struct {
	id     EntityID
	X, Y   float64
	DX, DY float64
	W, H   float64
}

// ID returns the arena id assigned when the entity was added.
func (b *Body) ID() EntityID { return b.id }

func (b *Body) assign(id EntityID) { b.id = id }

// Base returns the shared body.
func (b *Body) Base() *Body { return b }

// Bounds returns the bounding box.
func (b *Body) Bounds() core.Box {
	return core.Box{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

// Advance moves the body along its velocity.
func (b *Body) Advance(delta time.Duration) {
	secs := delta.Seconds()
	b.X += b.DX * secs
	b.Y += b.DY * secs
}

// CollidesWith reports whether the two bounding boxes overlap.
func (b *Body) CollidesWith(other Entity) bool {
	return b.Bounds().Intersects(other.Base().Bounds())
}

// DoLogic is a no-op for entities without a logic step.
func (b *Body) DoLogic(*Outbox) {}

// Ship is a player's cannon. It only moves horizontally.
type Ship struct {
	Body
	Player core.PlayerID

	left, right float64
}

// NewShip creates a ship for a player at (x, y).
func NewShip(player core.PlayerID, x, y, w, h, left, right float64) *Ship {
	return &Ship{
		Body:   Body{X: x, Y: y, W: w, H: h},
		Player: player,
		left:   left,
		right:  right,
	}
}

// Kind implements Entity.
func (s *Ship) Kind() Kind { return KindShip }

// Move refuses to carry the ship past its lateral bounds.
func (s *Ship) Move(delta time.Duration, _ *Outbox) {
	if s.DX < 0 && s.X < s.left {
		return
	}
	if s.DX > 0 && s.X > s.right {
		return
	}
	s.DY = 0
	s.Advance(delta)
}

// CollidedWith makes contact with an alien lethal for this ship's player.
// Enemy shots report their own hits.
func (s *Ship) CollidedWith(other Entity, out *Outbox) {
	if _, ok := other.(*Alien); ok {
		out.Emit(Event{Kind: EventPlayerHit, Player: s.Player, Damage: lethalDamage})
	}
}

// Side tells who fired a shot.
type Side int

const (
	SidePlayer Side = iota
	SideEnemy
)

// ShotBounds are the limits outside of which a shot is discarded.
type ShotBounds struct {
	Top    float64 // Player shots above this y vanish
	Width  float64 // Enemy shots outside [0, Width] vanish
	Height float64 // Enemy shots below this y vanish
}

// Shot is a projectile fired by a player or an alien.
type Shot struct {
	Body
	Side   Side
	Player core.PlayerID // Shooter, for player shots

	bounds   ShotBounds
	target   EntityID
	hasClaim bool
}

// NewShot creates a projectile with the given velocity.
func NewShot(side Side, x, y, w, h, dx, dy float64, bounds ShotBounds) *Shot {
	return &Shot{
		Body:   Body{X: x, Y: y, W: w, H: h, DX: dx, DY: dy},
		Side:   side,
		bounds: bounds,
	}
}

// Kind implements Entity.
func (s *Shot) Kind() Kind { return KindShot }

// Move advances the shot and discards it once it leaves the field.
func (s *Shot) Move(delta time.Duration, out *Outbox) {
	s.Advance(delta)

	switch s.Side {
	case SidePlayer:
		if s.Y < s.bounds.Top {
			out.Remove(s)
		}
	case SideEnemy:
		if s.Y > s.bounds.Height || s.X < 0 || s.X > s.bounds.Width {
			out.Remove(s)
		}
	}
}

// claim binds the shot to the first target it hits. Later calls succeed
// only for that same target, so one shot never damages two entities.
func (s *Shot) claim(target Entity) bool {
	if !s.hasClaim {
		s.target = target.ID()
		s.hasClaim = true
		return true
	}
	return s.target == target.ID()
}

// Spent reports whether the shot already hit something.
func (s *Shot) Spent() bool { return s.hasClaim }

// CollidedWith consumes the shot on its first valid target.
func (s *Shot) CollidedWith(other Entity, out *Outbox) {
	switch o := other.(type) {
	case *Alien:
		if s.Side == SidePlayer && o.accepts(s) && s.claim(o) {
			out.Remove(s)
		}
	case *Ship:
		if s.Side == SideEnemy && s.claim(o) {
			out.Remove(s)
			out.Emit(Event{Kind: EventPlayerHit, Player: o.Player, Damage: 1})
		}
	}
}
