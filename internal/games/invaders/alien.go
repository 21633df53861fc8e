package invaders

import (
	"math"
	"time"
)

// AlienType is one of the five alien kinds.
type AlienType int

const (
	AlienBasic AlienType = iota
	AlienFast
	AlienHeavy
	AlienSpecial
	AlienBoss
)

// String returns the config key of the type.
func (t AlienType) String() string {
	switch t {
	case AlienBasic:
		return "basic"
	case AlienFast:
		return "fast"
	case AlienHeavy:
		return "heavy"
	case AlienSpecial:
		return "special"
	case AlienBoss:
		return "boss"
	default:
		return "unknown"
	}
}

// AlienStats are the per-type combat numbers before stage scaling.
type AlienStats struct {
	Health     int
	Score      int
	Speed      float64
	FireWeight float64
	Shots      int
	Spread     float64 // Radians
}

// AlienGeometry carries the alien size and the lines it reacts to.
type AlienGeometry struct {
	W, H       float64
	LeftBound  float64
	RightBound float64
	StepDown   float64
	DeathLine  float64
}

const animationFrame = 250 * time.Millisecond

// Alien is an enemy with its own movement strategy and combat stats.
type Alien struct {
	Body
	Type AlienType

	Health          int
	BaseHealth      int
	ScoreValue      int
	FireWeight      float64
	ShotCount       int
	Spread          float64
	StageMultiplier float64

	baseSpeed float64
	speed     float64
	movement  MovementStrategy
	geom      AlienGeometry

	frame      int
	frameTimer time.Duration

	dead   bool
	killer EntityID
}

// NewAlien creates an alien moving left at its base speed.
// The movement strategy is owned by this alien alone.
func NewAlien(t AlienType, x, y float64, stats AlienStats, geom AlienGeometry, movement MovementStrategy) *Alien {
	if movement == nil {
		movement = &NormalMovement{}
	}
	return &Alien{
		Body:            Body{X: x, Y: y, W: geom.W, H: geom.H, DX: -stats.Speed},
		Type:            t,
		Health:          stats.Health,
		BaseHealth:      stats.Health,
		ScoreValue:      stats.Score,
		FireWeight:      stats.FireWeight,
		ShotCount:       stats.Shots,
		Spread:          stats.Spread,
		StageMultiplier: 1,
		baseSpeed:       stats.Speed,
		speed:           stats.Speed,
		movement:        movement,
		geom:            geom,
	}
}

// Kind implements Entity.
func (a *Alien) Kind() Kind { return KindAlien }

// Movement returns the alien's strategy.
func (a *Alien) Movement() MovementStrategy { return a.movement }

// Speed returns the current horizontal speed magnitude.
func (a *Alien) Speed() float64 { return a.speed }

// Frame returns the animation frame (0 or 1).
func (a *Alien) Frame() int { return a.frame }

// Dead reports whether the alien took a fatal hit.
func (a *Alien) Dead() bool { return a.dead }

// SetStageMultiplier rescales speed and health from the base stats and
// resets the movement strategy. It is the only path that resets strategy state.
func (a *Alien) SetStageMultiplier(m float64) {
	a.StageMultiplier = m
	a.speed = a.baseSpeed * m
	a.Health = max(1, int(float64(a.BaseHealth)*m))

	if a.DX < 0 {
		a.DX = -a.speed
	} else {
		a.DX = a.speed
	}
	a.movement.Reset()
}

// SpeedUp multiplies horizontal speed, keeping direction.
func (a *Alien) SpeedUp(factor float64) {
	a.speed *= factor
	a.DX *= factor
}

// Move runs the strategy, raises a logic pass at the lateral bounds and
// then advances along the possibly overwritten velocity.
func (a *Alien) Move(delta time.Duration, out *Outbox) {
	a.frameTimer += delta
	for a.frameTimer >= animationFrame {
		a.frameTimer -= animationFrame
		a.frame = 1 - a.frame
	}

	a.movement.Apply(a, delta)

	if (a.DX < 0 && a.X < a.geom.LeftBound) || (a.DX > 0 && a.X > a.geom.RightBound) {
		out.Emit(Event{Kind: EventLogicRequired})
	}

	a.Advance(delta)
}

// DoLogic turns the alien around and steps it down. Crossing the death line
// ends the run.
func (a *Alien) DoLogic(out *Outbox) {
	a.DX = -a.DX
	a.Y += a.geom.StepDown

	if a.Y > a.geom.DeathLine {
		out.Emit(Event{Kind: EventDeath})
	}
}

// accepts reports whether a player shot may still interact with this alien.
// A dead alien only keeps interacting with the shot that killed it.
func (a *Alien) accepts(s *Shot) bool {
	return !a.dead || a.killer == s.ID()
}

// CollidedWith applies one point of damage per player shot.
func (a *Alien) CollidedWith(other Entity, out *Outbox) {
	s, ok := other.(*Shot)
	if !ok || s.Side != SidePlayer {
		return
	}
	if a.dead || !s.claim(a) {
		return
	}

	a.Health--
	if a.Health > 0 {
		return
	}

	a.dead = true
	a.killer = s.ID()
	out.Remove(a)
	if a.Type == AlienBoss {
		out.Emit(Event{Kind: EventBossKilled})
	} else {
		out.Emit(Event{Kind: EventAlienKilled, Score: a.ScoreValue})
	}
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
