package invaders

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// EffectiveInterval applies a fire-rate multiplier to a cooldown.
// The result is never shorter than a millisecond.
func EffectiveInterval(base time.Duration, fireRate float64) time.Duration {
	d := time.Duration(math.Round(float64(base) * fireRate))
	return max(time.Millisecond, d)
}

// TryFire consumes the cooldown at now. It fails while the previous shot is
// younger than interval.
func (p *PlayerState) TryFire(now, interval time.Duration) bool {
	if p.HasFired && now-p.LastFire < interval {
		return false
	}
	p.LastFire = now
	p.HasFired = true
	return true
}

// SelectShooters rolls every alien with probability weight/alive. When no
// roll succeeds one alien is picked uniformly, so a volley is never empty.
func SelectShooters(aliens []*Alien, rng *rand.Rand) []*Alien {
	if len(aliens) == 0 {
		return nil
	}

	alive := float64(len(aliens))
	var shooters []*Alien
	for _, a := range aliens {
		if rng.Float64() < a.FireWeight/alive {
			shooters = append(shooters, a)
		}
	}
	if len(shooters) == 0 {
		shooters = append(shooters, aliens[rng.Intn(len(aliens))])
	}
	return shooters
}

// Velocity is a shot velocity in px/s.
type Velocity struct {
	DX, DY float64
}

// SpreadVelocities fans n shots evenly across spread radians, centered on
// straight down. A single shot always goes straight down.
func SpreadVelocities(n int, spread, speed float64) []Velocity {
	if n <= 1 {
		return []Velocity{{DX: 0, DY: speed}}
	}

	out := make([]Velocity, n)
	step := spread / float64(n-1)
	for i := range n {
		angle := -spread/2 + float64(i)*step
		out[i] = Velocity{DX: speed * math.Sin(angle), DY: speed * math.Cos(angle)}
	}
	return out
}

// tryToFire spawns one player shot if the player's cooldown allows it.
func (g *Game) tryToFire(player core.PlayerID) bool {
	ship := g.entities.Ship(player)
	if ship == nil {
		return false
	}
	ps := &g.state.players[player]
	if !ps.Alive() {
		return false
	}

	interval := EffectiveInterval(ps.FireInterval, g.items.FireRateMultiplier())
	if !ps.TryFire(g.now, interval) {
		return false
	}

	sc := g.cfg.Shots
	shot := NewShot(SidePlayer,
		ship.X+sc.PlayerOffset.X, ship.Y+sc.PlayerOffset.Y,
		sc.Width, sc.Height,
		0, -sc.PlayerSpeed,
		g.shotBounds())
	shot.Player = player
	g.entities.Add(shot)
	return true
}

// fireEnemies runs the enemy volley check on its fixed period.
func (g *Game) fireEnemies(delta time.Duration) {
	g.enemyCheck += delta
	period := time.Duration(g.cfg.Firing.EnemyCheckMs * float64(time.Millisecond))
	if g.enemyCheck < period {
		return
	}
	g.enemyCheck -= period

	aliens := g.entities.Aliens()
	if len(aliens) == 0 {
		return
	}

	interval := g.state.scaling.EnemyFireInterval(g.state.stage, len(aliens))
	if g.now-g.state.enemyLastFire < interval {
		return
	}
	g.state.enemyLastFire = g.now

	sc := g.cfg.Shots
	for _, a := range SelectShooters(aliens, g.rng) {
		for _, v := range SpreadVelocities(a.ShotCount, a.Spread, sc.EnemySpeed) {
			g.entities.Add(NewShot(SideEnemy,
				a.X+sc.EnemyOffset.X, a.Y+sc.EnemyOffset.Y,
				sc.Width, sc.Height,
				v.DX, v.DY,
				g.shotBounds()))
		}
	}
}

func (g *Game) shotBounds() ShotBounds {
	return ShotBounds{
		Top:    g.cfg.Shots.PlayerTop,
		Width:  g.cfg.World.Width,
		Height: g.cfg.World.Height,
	}
}
