package invaders

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// EntityView is a read-only copy of one entity for rendering.
type EntityView struct {
	ID     EntityID
	Kind   Kind
	Alien  AlienType     // KindAlien
	Frame  int           // KindAlien
	Side   Side          // KindShot
	Player core.PlayerID // KindShip and player shots
	X, Y   float64
	W, H   float64
}

// PlayerView is the HUD view of one player.
type PlayerView struct {
	Active    bool
	Health    int
	MaxHealth int
}

// ItemView is the HUD view of one item slot.
type ItemView struct {
	Name      string
	Count     int
	Remaining time.Duration
}

// Snapshot contains everything a renderer needs, detached from the live state.
type Snapshot struct {
	Tick          uint64
	Flow          FlowState
	Stage         int
	SelectedStage int
	StageLimit    int
	FinalStage    int
	MaxCleared    int
	Score         int
	FinalScore    int
	Points        int
	Message       string

	Players    []PlayerView
	Items      [len(ItemSlots)]ItemView
	Invincible bool
	ScoreMult  float64

	WorldW, WorldH float64
	Entities       []EntityView
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	s := g.state
	snap := Snapshot{
		Tick:          g.tickCount,
		Flow:          s.flow,
		Stage:         s.stage,
		SelectedStage: s.selected,
		StageLimit:    s.StageLimit(),
		FinalStage:    g.cfg.World.FinalStage,
		MaxCleared:    g.profile.MaxClearedStage(),
		Score:         s.score,
		FinalScore:    s.final,
		Points:        g.profile.Points(),
		Message:       s.message,
		Invincible:    g.items.Invincible(),
		ScoreMult:     g.items.ScoreMultiplier(),
		WorldW:        g.cfg.World.Width,
		WorldH:        g.cfg.World.Height,
	}

	snap.Players = make([]PlayerView, s.numPlayers)
	for i := range snap.Players {
		p := s.players[i]
		snap.Players[i] = PlayerView{Active: p.Active, Health: p.Health, MaxHealth: p.MaxHealth}
	}
	for i, name := range ItemSlots {
		snap.Items[i] = ItemView{Name: name, Count: g.items.Count(name), Remaining: g.items.Remaining(name)}
	}

	snap.Entities = make([]EntityView, 0, g.entities.Len())
	for _, e := range g.entities.Entities() {
		b := e.Base()
		v := EntityView{ID: e.ID(), Kind: e.Kind(), X: b.X, Y: b.Y, W: b.W, H: b.H}
		switch o := e.(type) {
		case *Alien:
			v.Alien = o.Type
			v.Frame = o.Frame()
		case *Shot:
			v.Side = o.Side
			v.Player = o.Player
		case *Ship:
			v.Player = o.Player
		}
		snap.Entities = append(snap.Entities, v)
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Flow)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Stage) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score) //#nosec G115 -- hash computation

	for _, p := range snap.Players {
		h = h*31 + uint64(p.Health) //#nosec G115 -- hash computation
	}

	for _, e := range snap.Entities {
		h = h*31 + uint64(e.ID)
		h = h*31 + uint64(e.Kind) //#nosec G115 -- hash computation
		h = h*31 + math.Float64bits(e.X)
		h = h*31 + math.Float64bits(e.Y)
	}
	return h
}
