package invaders

import (
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
)

// FlowState is the top-level screen the game is in.
type FlowState int

const (
	FlowWaitingForKeyPress FlowState = iota
	FlowStageSelect
	FlowPlaying
	FlowPaused
	FlowTransitioning
)

// String returns the flow name.
func (f FlowState) String() string {
	switch f {
	case FlowWaitingForKeyPress:
		return "waiting"
	case FlowStageSelect:
		return "stage_select"
	case FlowPlaying:
		return "playing"
	case FlowPaused:
		return "paused"
	case FlowTransitioning:
		return "transitioning"
	default:
		return "unknown"
	}
}

// PlayerState is the per-player combat state.
type PlayerState struct {
	Active       bool
	Health       int
	MaxHealth    int
	Speed        float64
	FireInterval time.Duration

	LastFire time.Duration
	HasFired bool
}

// Alive reports whether the player is in the run with health left.
func (p *PlayerState) Alive() bool {
	return p.Active && p.Health > 0
}

// Damage removes at least one point of health. It reports whether this hit
// took the player to zero. A player already at zero is left alone.
func (p *PlayerState) Damage(n int) bool {
	if !p.Active || p.Health <= 0 {
		return false
	}
	p.Health = max(0, p.Health-max(1, n))
	return p.Health == 0
}

// Heal restores health up to the pool size. Dead players stay dead.
func (p *PlayerState) Heal(n int) {
	if !p.Alive() || n <= 0 {
		return
	}
	p.Health = min(p.MaxHealth, p.Health+n)
}

// StateManager owns the flow state machine, score, health pools and the
// persistence side effects of wins and deaths.
type StateManager struct {
	cfg      config.InvadersConfig
	scaling  *config.Scaling
	entities *EntityManager
	profile  *Profile
	buffs    Buffs
	log      *log.Logger

	mode       string
	numPlayers int
	runID      string

	flow     FlowState
	target   FlowState
	stage    int
	selected int
	score    int
	final    int
	message  string
	exit     bool

	players       [core.MaxPlayers]PlayerState
	enemyLastFire time.Duration
	waveActive    bool
}

// NewStateManager creates a state manager waiting for the first key press.
func NewStateManager(cfg config.InvadersConfig, entities *EntityManager, numPlayers int) *StateManager {
	s := &StateManager{
		cfg:        cfg,
		scaling:    config.NewScaling(cfg),
		entities:   entities,
		profile:    NewProfile(nil, nil),
		buffs:      noBuffs{},
		log:        log.New(io.Discard),
		numPlayers: core.Clamp(numPlayers, 1, core.MaxPlayers),
		flow:       FlowWaitingForKeyPress,
		stage:      1,
		selected:   1,
	}
	s.resetPlayers(0, 0, 0)
	return s
}

// Flow returns the current flow state.
func (s *StateManager) Flow() FlowState { return s.flow }

// Stage returns the current stage.
func (s *StateManager) Stage() int { return s.stage }

// SelectedStage returns the stage-select cursor.
func (s *StateManager) SelectedStage() int { return s.selected }

// Score returns the score of the running game.
func (s *StateManager) Score() int { return s.score }

// FinalScore returns the score the last run ended with.
func (s *StateManager) FinalScore() int { return s.final }

// Message returns the text of the last transition.
func (s *StateManager) Message() string { return s.message }

// ExitRequested reports whether the player asked to leave.
func (s *StateManager) ExitRequested() bool { return s.exit }

// Player returns a copy of a player's state.
func (s *StateManager) Player(id core.PlayerID) PlayerState {
	if id < 0 || int(id) >= core.MaxPlayers {
		return PlayerState{}
	}
	return s.players[id]
}

// NumPlayers returns 1 or 2.
func (s *StateManager) NumPlayers() int { return s.numPlayers }

// MaxClearedStage returns the highest stage ever cleared.
func (s *StateManager) MaxClearedStage() int { return s.profile.MaxClearedStage() }

// StageLimit is the highest stage that can be selected.
func (s *StateManager) StageLimit() int {
	return min(s.cfg.World.FinalStage, s.profile.MaxClearedStage()+1)
}

// ClampStage limits a stage number to the selectable range.
func (s *StateManager) ClampStage(stage int) int {
	return core.Clamp(stage, 1, max(1, s.StageLimit()))
}

// MoveCursor shifts the stage-select cursor by delta, clamped.
func (s *StateManager) MoveCursor(delta int) {
	s.selected = s.ClampStage(s.selected + delta)
}

// BeginStage resets per-stage state and applies permanent upgrades.
// The caller spawns the entities.
func (s *StateManager) BeginStage(stage int, runID string) {
	s.stage = core.Clamp(stage, 1, s.cfg.World.FinalStage)
	s.runID = runID
	s.flow = FlowPlaying
	s.message = ""
	s.enemyLastFire = 0
	s.waveActive = true

	s.resetPlayers(
		s.profile.UpgradeLevel(UpgradeAttack),
		s.profile.UpgradeLevel(UpgradeHealth),
		s.profile.UpgradeLevel(UpgradeSpeed),
	)
	s.log.Info("stage started", "stage", s.stage, "players", s.numPlayers, "run", runID)
}

func (s *StateManager) resetPlayers(attack, health, speed int) {
	for i := range s.players {
		s.players[i] = PlayerState{
			Active:       i < s.numPlayers,
			MaxHealth:    s.scaling.MaxHealth(health),
			Speed:        s.scaling.ShipSpeed(speed),
			FireInterval: s.scaling.PlayerFireInterval(attack),
		}
		s.players[i].Health = s.players[i].MaxHealth
	}
}

// Pause moves Playing to Paused.
func (s *StateManager) Pause() {
	if s.flow == FlowPlaying {
		s.flow = FlowPaused
	}
}

// Resume moves Paused back to Playing.
func (s *StateManager) Resume() {
	if s.flow == FlowPaused {
		s.flow = FlowPlaying
	}
}

// ConfirmExit ends a paused run: the score is banked as points and the
// host is asked to leave.
func (s *StateManager) ConfirmExit() {
	if s.flow != FlowPaused {
		return
	}
	s.final = s.score
	s.saveScoreAsPoints(OutcomeQuit)
	s.score = 0
	s.exit = true
}

// RequestExit asks the host to leave without touching the score.
func (s *StateManager) RequestExit() {
	s.exit = true
}

// UpdateLogic schedules an entity logic pass.
func (s *StateManager) UpdateLogic() {
	s.entities.UpdateLogic()
}

// NotifyAlienKilled adds a kill to the score and speeds up the survivors.
func (s *StateManager) NotifyAlienKilled(base int) {
	if s.flow != FlowPlaying {
		return
	}
	s.addScore(base)
	s.entities.SpeedUpAliens(s.scaling.KillSpeedup(s.stage))
}

// NotifyBossKilled adds the boss reward to the score.
func (s *StateManager) NotifyBossKilled() {
	if s.flow != FlowPlaying {
		return
	}
	s.addScore(s.cfg.Scoring.AlienKillPoints * s.cfg.Scoring.BossFactor)
}

func (s *StateManager) addScore(base int) {
	gain := math.Round(float64(base) * float64(s.stage) * s.buffs.ScoreMultiplier())
	s.score += int(gain)
}

// NotifyPlayerHit damages one player. Losing the last point removes only
// that player's ship; the run ends once every active player is down.
func (s *StateManager) NotifyPlayerHit(player core.PlayerID, damage int) {
	if s.flow != FlowPlaying || s.buffs.Invincible() {
		return
	}
	if player < 0 || int(player) >= s.numPlayers {
		return
	}

	if !s.players[player].Damage(damage) {
		return
	}
	if ship := s.entities.Ship(player); ship != nil {
		s.entities.RequestRemoval(ship)
	}
	s.log.Debug("player down", "player", int(player)+1, "stage", s.stage)

	if s.allPlayersDown() {
		s.NotifyDeath()
	}
}

func (s *StateManager) allPlayersDown() bool {
	for i := range s.numPlayers {
		if s.players[i].Alive() {
			return false
		}
	}
	return true
}

// NotifyWin ends the current stage as cleared.
func (s *StateManager) NotifyWin() {
	if s.flow != FlowPlaying {
		return
	}
	s.final = s.score
	s.waveActive = false

	if s.stage >= s.cfg.World.FinalStage {
		s.saveScoreAsPoints(OutcomeVictory)
		s.score = 0
		s.stage = 1
		s.selected = 1
		s.message = "All stages cleared!"
		s.begin(FlowWaitingForKeyPress)
		s.log.Info("game won", "score", s.final)
		return
	}

	s.profile.SaveMaxClearedStage(s.stage)
	s.profile.AddPoints(s.stage * s.cfg.Scoring.StageBonus)
	s.profile.RecordRun(s.runID, s.mode, s.stage, s.score, OutcomeCleared)
	s.selected = s.ClampStage(s.profile.MaxClearedStage() + 1)
	s.message = "Stage cleared!"
	s.begin(FlowStageSelect)
	s.log.Info("stage cleared", "stage", s.stage, "score", s.score)
}

// NotifyDeath ends the run as lost.
func (s *StateManager) NotifyDeath() {
	if s.flow != FlowPlaying {
		return
	}
	s.final = s.score
	s.waveActive = false

	s.saveScoreAsPoints(OutcomeDeath)
	if s.stage-1 > s.profile.MaxClearedStage() {
		s.profile.SaveMaxClearedStage(s.stage - 1)
	}
	s.selected = s.ClampStage(s.profile.MaxClearedStage() + 1)
	s.score = 0
	for i := range s.players {
		s.players[i].Health = s.players[i].MaxHealth
	}
	s.message = "Game over"
	s.begin(FlowStageSelect)
	s.log.Info("run lost", "stage", s.stage, "score", s.final)
}

// begin enters Transitioning. The orchestrator finishes it at the end of the tick.
func (s *StateManager) begin(target FlowState) {
	s.target = target
	s.flow = FlowTransitioning
}

// FinishTransition clears the board and moves to the pending target.
// It reports whether a transition happened.
func (s *StateManager) FinishTransition() bool {
	if s.flow != FlowTransitioning {
		return false
	}
	s.entities.Clear()
	s.flow = s.target
	return true
}

func (s *StateManager) saveScoreAsPoints(outcome string) {
	s.profile.SaveScoreAsPoints(s.score)
	s.profile.RecordRun(s.runID, s.mode, s.stage, s.score, outcome)
}

// CheckWaveCleared raises a win once the last alien of the wave is swept.
func (s *StateManager) CheckWaveCleared() {
	if s.waveActive && s.flow == FlowPlaying && s.entities.AlienCount() == 0 {
		s.waveActive = false
		s.NotifyWin()
	}
}

type noBuffs struct{}

func (noBuffs) ScoreMultiplier() float64    { return 1 }
func (noBuffs) FireRateMultiplier() float64 { return 1 }
func (noBuffs) Invincible() bool            { return false }
