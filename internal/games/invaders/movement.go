package invaders

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
)

// MovementStrategy drives an alien's trajectory. Every instance belongs to
// exactly one alien and keeps its own timers.
type MovementStrategy interface {
	// Apply updates the alien's velocity, or its position for discontinuous
	// moves, before the alien advances.
	Apply(a *Alien, delta time.Duration)

	// Reset drops all internal state. Only stage-multiplier reapplication calls it.
	Reset()

	Name() string
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// NormalMovement sweeps horizontally only.
type NormalMovement struct{}

func (m *NormalMovement) Apply(a *Alien, _ time.Duration) { a.DY = 0 }
func (m *NormalMovement) Reset()                          {}
func (m *NormalMovement) Name() string                    { return "normal" }

// ZigzagMovement flips vertical velocity between +speed and -speed on a
// fixed interval.
type ZigzagMovement struct {
	cfg     config.ZigzagConfig
	timerMs float64
	up      bool
}

// NewZigzagMovement creates a zigzag strategy that starts moving down.
func NewZigzagMovement(cfg config.ZigzagConfig) *ZigzagMovement {
	return &ZigzagMovement{cfg: cfg}
}

func (m *ZigzagMovement) Apply(a *Alien, delta time.Duration) {
	m.timerMs += millis(delta)
	if m.timerMs >= m.cfg.IntervalMs {
		m.up = !m.up
		m.timerMs = 0
	}

	if m.up {
		a.DY = -m.cfg.Speed
	} else {
		a.DY = m.cfg.Speed
	}
}

func (m *ZigzagMovement) Reset() {
	m.timerMs = 0
	m.up = false
}

func (m *ZigzagMovement) Name() string { return "zigzag" }

// PursuitMovement steers toward a sine target around the Y the alien had
// on the first call. Wave and boss movement differ only in tuning.
type PursuitMovement struct {
	name   string
	cfg    config.PursuitConfig
	timeMs float64

	anchorY     float64
	initialized bool
}

// NewWaveMovement creates the gentle wave pursuit.
func NewWaveMovement(cfg config.PursuitConfig) *PursuitMovement {
	return &PursuitMovement{name: "wave", cfg: cfg}
}

// NewBossMovement creates the boss pursuit.
func NewBossMovement(cfg config.PursuitConfig) *PursuitMovement {
	return &PursuitMovement{name: "boss", cfg: cfg}
}

// Anchor returns the captured anchor and whether it has been captured.
func (m *PursuitMovement) Anchor() (float64, bool) {
	return m.anchorY, m.initialized
}

func (m *PursuitMovement) Apply(a *Alien, delta time.Duration) {
	if !m.initialized {
		m.anchorY = a.Y
		m.initialized = true
	}

	m.timeMs += millis(delta)
	target := m.anchorY + math.Sin(m.timeMs*m.cfg.Frequency)*m.cfg.Amplitude
	target = math.Max(m.anchorY-m.cfg.Amplitude, math.Min(target, m.cfg.MaxDepth))

	a.DY = (target - a.Y) * m.cfg.Gain
}

func (m *PursuitMovement) Reset() {
	m.timeMs = 0
	m.anchorY = 0
	m.initialized = false
}

func (m *PursuitMovement) Name() string { return m.name }

// TeleportMovement jumps the alien to a random spot on a fixed interval.
type TeleportMovement struct {
	cfg     config.TeleportConfig
	rng     *rand.Rand
	timerMs float64
}

// NewTeleportMovement creates a teleport strategy with its own random source.
func NewTeleportMovement(cfg config.TeleportConfig, seed int64) *TeleportMovement {
	return &TeleportMovement{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)), //#nosec G404 -- gameplay randomness
	}
}

func (m *TeleportMovement) Apply(a *Alien, delta time.Duration) {
	a.DY = 0

	m.timerMs += millis(delta)
	if m.timerMs < m.cfg.IntervalMs {
		return
	}
	m.timerMs = 0

	a.X = m.cfg.MinX + m.rng.Float64()*(m.cfg.MaxX-m.cfg.MinX)
	jitter := (m.rng.Float64()*2 - 1) * m.cfg.JitterY
	a.Y = core.ClampF(a.Y+jitter, m.cfg.MinY, m.cfg.MaxY)

	if m.rng.Float64() < m.cfg.ReverseChance {
		a.DX = -a.DX
	}
}

func (m *TeleportMovement) Reset() { m.timerMs = 0 }

func (m *TeleportMovement) Name() string { return "teleport" }
