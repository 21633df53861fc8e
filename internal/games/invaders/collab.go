package invaders

import (
	"io"

	"github.com/charmbracelet/log"
)

// Upgrade kinds stored by the persistence layer.
const (
	UpgradeAttack = "attack"
	UpgradeHealth = "health"
	UpgradeSpeed  = "speed"
)

// Run outcomes passed to RecordRun.
const (
	OutcomeDeath   = "death"
	OutcomeCleared = "cleared"
	OutcomeVictory = "victory"
	OutcomeQuit    = "quit"
)

// Persistence stores player progress. Every call may fail; the simulation
// treats all of them as best effort.
type Persistence interface {
	MaxClearedStage() (int, error)
	SaveMaxClearedStage(stage int) error
	UpgradeLevel(kind string) (int, error)
	AddPoints(delta int) error
	UserPoints() (int, error)
	UpdateUserPoints(points int) error
	HighestScore() (int, error)
	UpdateHighestScore(score int) error
	PurchasedItems() ([]string, error)
	ConsumeItem(item string) error
	RecordRun(runID, mode string, stage, score int, outcome string) error
}

// Buffs exposes the temporary modifiers that affect a tick.
type Buffs interface {
	ScoreMultiplier() float64
	FireRateMultiplier() float64
	Invincible() bool
}

// Profile wraps a Persistence with logging and last-known local values.
// Failures are logged and never reach the simulation.
type Profile struct {
	store Persistence
	log   *log.Logger

	maxCleared int
	points     int
	highest    int
}

// NewProfile loads the cached values from store. A nil store gives an
// in-memory profile.
func NewProfile(store Persistence, logger *log.Logger) *Profile {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	p := &Profile{store: store, log: logger}
	if store == nil {
		return p
	}

	if v, err := store.MaxClearedStage(); err == nil {
		p.maxCleared = v
	} else {
		p.warn("load max cleared stage", err)
	}
	if v, err := store.UserPoints(); err == nil {
		p.points = v
	} else {
		p.warn("load points", err)
	}
	if v, err := store.HighestScore(); err == nil {
		p.highest = v
	} else {
		p.warn("load highest score", err)
	}
	return p
}

func (p *Profile) warn(op string, err error) {
	p.log.Warn("persistence failed", "op", op, "error", err)
}

// MaxClearedStage returns the last known highest cleared stage.
func (p *Profile) MaxClearedStage() int { return p.maxCleared }

// Points returns the last known point balance.
func (p *Profile) Points() int { return p.points }

// HighestScore returns the last known best score.
func (p *Profile) HighestScore() int { return p.highest }

// SaveMaxClearedStage raises the cleared stage, locally and in the store.
func (p *Profile) SaveMaxClearedStage(stage int) {
	if stage <= p.maxCleared {
		return
	}
	p.maxCleared = stage
	if p.store == nil {
		return
	}
	if err := p.store.SaveMaxClearedStage(stage); err != nil {
		p.warn("save max cleared stage", err)
	}
}

// UpgradeLevel returns a permanent upgrade level, 0 when unknown.
func (p *Profile) UpgradeLevel(kind string) int {
	if p.store == nil {
		return 0
	}
	level, err := p.store.UpgradeLevel(kind)
	if err != nil {
		p.warn("load upgrade "+kind, err)
		return 0
	}
	return max(0, level)
}

// AddPoints credits points.
func (p *Profile) AddPoints(delta int) {
	if delta <= 0 {
		return
	}
	p.points += delta
	if p.store == nil {
		return
	}
	if err := p.store.AddPoints(delta); err != nil {
		p.warn("add points", err)
	}
}

// SaveScoreAsPoints records a finished score: it may raise the highest
// score and is credited to the point balance.
func (p *Profile) SaveScoreAsPoints(score int) {
	if score <= 0 {
		return
	}

	if score > p.highest {
		p.highest = score
		if p.store != nil {
			if err := p.store.UpdateHighestScore(score); err != nil {
				p.warn("update highest score", err)
			}
		}
	}

	if p.store != nil {
		if current, err := p.store.UserPoints(); err == nil {
			p.points = current
		} else {
			p.warn("load points", err)
		}
	}
	p.points += score
	if p.store == nil {
		return
	}
	if err := p.store.UpdateUserPoints(p.points); err != nil {
		p.warn("update points", err)
	}
}

// PurchasedItems lists owned consumables.
func (p *Profile) PurchasedItems() []string {
	if p.store == nil {
		return nil
	}
	items, err := p.store.PurchasedItems()
	if err != nil {
		p.warn("load purchased items", err)
		return nil
	}
	return items
}

// ConsumeItem removes one owned item. It returns false when the store
// could not confirm the removal.
func (p *Profile) ConsumeItem(item string) bool {
	if p.store == nil {
		return true
	}
	if err := p.store.ConsumeItem(item); err != nil {
		p.warn("consume item "+item, err)
		return false
	}
	return true
}

// RecordRun appends a finished run to the history.
func (p *Profile) RecordRun(runID, mode string, stage, score int, outcome string) {
	if p.store == nil {
		return
	}
	if err := p.store.RecordRun(runID, mode, stage, score, outcome); err != nil {
		p.warn("record run", err)
	}
}
