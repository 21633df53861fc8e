package invaders

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// Game is the Space Invaders orchestrator. It owns the entities, the flow
// state and the items, and advances them once per Step.
type Game struct {
	numPlayers int

	cfg      config.InvadersConfig
	override *config.InvadersConfig
	runtime  core.RuntimeConfig
	tick     time.Duration

	persistence Persistence
	log         *log.Logger
	newRunID    func() string

	rng      *rand.Rand
	entities *EntityManager
	state    *StateManager
	factory  *Factory
	items    *ItemManager
	profile  *Profile

	now        time.Duration
	tickCount  uint64
	enemyCheck time.Duration
}

// Mode identifiers, also used as leaderboard keys.
const (
	ModeSolo = "invaders"
	ModeCoop = "invaders_coop"
)

// New creates a single-player game.
func New() *Game {
	return newGame(1)
}

// NewCoop creates a two-player game sharing one keyboard.
func NewCoop() *Game {
	return newGame(2)
}

func newGame(players int) *Game {
	return &Game{
		numPlayers: players,
		log:        log.New(io.Discard),
		newRunID:   uuid.NewString,
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.numPlayers > 1 {
		return ModeCoop
	}
	return ModeSolo
}

// Players returns the number of local players.
func (g *Game) Players() int { return g.numPlayers }

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.numPlayers > 1 {
		return "Space Invaders (2 players)"
	}
	return "Space Invaders"
}

// Configure replaces the loaded configuration on the next Reset.
func (g *Game) Configure(cfg config.InvadersConfig) {
	g.override = &cfg
}

// Bind attaches the player's persistent profile and a logger. It may be
// called before or after Reset.
func (g *Game) Bind(p Persistence, logger *log.Logger) {
	g.persistence = p
	if logger != nil {
		g.log = logger
	}
	if g.state == nil {
		return
	}
	g.profile = NewProfile(p, g.log)
	g.items.profile = g.profile
	g.state.profile = g.profile
	g.state.log = g.log
	g.state.selected = g.state.ClampStage(g.profile.MaxClearedStage() + 1)
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	if g.override != nil {
		g.cfg = *g.override
	} else {
		cfg, err := config.LoadInvaders(configPath)
		if err != nil {
			g.log.Warn("config load failed, using defaults", "error", err)
			cfg = config.DefaultInvadersConfig()
		}
		if difficultyPreset != "" {
			config.ApplyInvadersPreset(&cfg, difficultyPreset)
		}
		g.cfg = cfg
	}

	rate := runtime.TickRate
	if rate <= 0 {
		rate = core.DefaultConfig().TickRate
	}
	g.tick = time.Second / time.Duration(rate)

	g.rng = rand.New(rand.NewSource(runtime.Seed)) //#nosec G404 -- gameplay randomness
	g.now = 0
	g.tickCount = 0
	g.enemyCheck = 0

	g.entities = NewEntityManager()
	g.factory = NewFactory(g.cfg, config.NewScaling(g.cfg), runtime.Seed+1)
	g.profile = NewProfile(g.persistence, g.log)
	g.items = NewItemManager(g.cfg.Items, g.profile)

	g.state = NewStateManager(g.cfg, g.entities, g.numPlayers)
	g.state.profile = g.profile
	g.state.buffs = g.items
	g.state.log = g.log
	g.state.mode = g.ID()
	g.state.selected = g.state.ClampStage(g.profile.MaxClearedStage() + 1)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tickCount++
	g.now += g.tick
	g.items.Tick(g.now)

	g.handleFlowInput(in)

	if g.state.flow == FlowPlaying {
		g.fireEnemies(g.tick)
		g.entities.MoveEntities(g.tick, g.state.flow)
		g.entities.CheckCollisions()
		g.dispatch(g.entities.Drain())
	}

	g.entities.RemoveDeadEntities()
	g.state.CheckWaveCleared()

	if g.entities.LogicRequired() {
		g.dispatch(g.entities.ProcessEntityLogic())
	}

	if g.state.FinishTransition() {
		g.log.Debug("transition finished", "flow", g.state.flow, "stage", g.state.stage)
	}

	if g.state.flow == FlowPlaying {
		g.applyHeldInput(in)
	}

	return core.StepResult{State: g.State()}
}

// handleFlowInput applies edge actions for the current flow state.
// At most one flow change happens per tick.
func (g *Game) handleFlowInput(in core.InputFrame) {
	switch g.state.flow {
	case FlowWaitingForKeyPress:
		switch {
		case in.Has(core.ActionBack):
			g.state.RequestExit()
		case startsGame(in):
			g.startStage(g.state.stage)
		}

	case FlowStageSelect:
		switch {
		case in.Has(core.ActionBack):
			g.state.RequestExit()
		case in.Has(core.ActionConfirm):
			g.startStage(g.state.selected)
		case in.Has(core.ActionLeft):
			g.state.MoveCursor(-1)
		case in.Has(core.ActionRight):
			g.state.MoveCursor(1)
		}

	case FlowPlaying:
		if in.Has(core.ActionBack) {
			g.state.Pause()
			return
		}
		for a := core.ActionItem1; a <= core.ActionItem4; a++ {
			if in.Has(a) {
				g.useItem(a.ItemSlot())
			}
		}

	case FlowPaused:
		switch {
		case in.Has(core.ActionBack):
			g.state.ConfirmExit()
		case in.Has(core.ActionFire), in.Has(core.ActionConfirm):
			g.state.Resume()
		}
	}
}

// startsGame reports whether the frame holds a non-movement key press.
func startsGame(in core.InputFrame) bool {
	for a, on := range in.Actions {
		if !on {
			continue
		}
		switch a {
		case core.ActionNone, core.ActionLeft, core.ActionRight, core.ActionQuit:
			continue
		}
		return true
	}
	return false
}

// startStage clears the board and spawns ships and the stage formation.
func (g *Game) startStage(stage int) {
	g.entities.Clear()
	g.enemyCheck = 0
	g.state.BeginStage(stage, g.newRunID())
	g.items.Load()

	pc := g.cfg.Player
	for i := range g.numPlayers {
		player := core.PlayerID(i)
		g.entities.Add(NewShip(player, pc.StartX[i], pc.StartY, pc.Width, pc.Height, pc.LeftBound, pc.RightBound))
	}
	for _, a := range g.factory.CreateFormation(g.state.stage) {
		g.entities.Add(a)
	}
}

// applyHeldInput turns level-triggered controls into ship velocity and fire.
func (g *Game) applyHeldInput(in core.InputFrame) {
	for i := range g.numPlayers {
		player := core.PlayerID(i)
		ship := g.entities.Ship(player)
		if ship == nil {
			continue
		}

		c := in.Player(player)
		speed := g.state.players[i].Speed
		switch {
		case c.Left && !c.Right:
			ship.DX = -speed
		case c.Right && !c.Left:
			ship.DX = speed
		default:
			ship.DX = 0
		}

		if c.Fire {
			g.tryToFire(player)
		}
	}
}

func (g *Game) useItem(slot int) {
	name, ok := g.items.Use(slot)
	if !ok {
		return
	}
	if name == ItemPlusLife {
		for i := range g.state.players {
			g.state.players[i].Heal(1)
		}
	}
	g.log.Debug("item used", "item", name, "stage", g.state.stage)
}

// dispatch forwards drained entity events to the state manager.
func (g *Game) dispatch(events []Event) {
	for _, ev := range events {
		switch ev.Kind {
		case EventAlienKilled:
			g.state.NotifyAlienKilled(ev.Score)
		case EventBossKilled:
			g.state.NotifyBossKilled()
		case EventPlayerHit:
			g.state.NotifyPlayerHit(ev.Player, ev.Damage)
		case EventLogicRequired:
			g.state.UpdateLogic()
		case EventDeath:
			g.state.NotifyDeath()
		}
	}
}

// Now returns the simulation clock.
func (g *Game) Now() time.Duration { return g.now }

// HoldWindow is how long a terminal key counts as held after its last
// press or auto-repeat.
func (g *Game) HoldWindow() time.Duration {
	return time.Duration(g.cfg.Input.HoldMs) * time.Millisecond
}

// Flow returns the current flow state.
func (g *Game) Flow() FlowState { return g.state.flow }

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.state.score,
		GameOver: g.state.flow == FlowStageSelect || g.state.flow == FlowWaitingForKeyPress,
		Paused:   g.state.flow == FlowPaused,
		Exit:     g.state.exit,
	}
}

// Register the games with the registry
func init() {
	registry.Register(ModeSolo, func() registry.Game {
		return New()
	})
	registry.Register(ModeCoop, func() registry.Game {
		return NewCoop()
	})
}
