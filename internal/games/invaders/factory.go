package invaders

import (
	"math/rand"

	"github.com/vovakirdan/tui-invaders/internal/config"
)

// Factory builds aliens for a stage and applies the stage multiplier.
type Factory struct {
	cfg     config.InvadersConfig
	scaling *config.Scaling
	rng     *rand.Rand
}

// NewFactory creates a factory whose random choices derive from seed.
func NewFactory(cfg config.InvadersConfig, scaling *config.Scaling, seed int64) *Factory {
	return &Factory{
		cfg:     cfg,
		scaling: scaling,
		rng:     rand.New(rand.NewSource(seed)), //#nosec G404 -- gameplay randomness
	}
}

// TypeFor picks the alien type for a formation slot.
func (f *Factory) TypeFor(stage, row, col int) AlienType {
	switch stage {
	case 1:
		return AlienBasic
	case 2:
		if row == 0 {
			return AlienFast
		}
		return AlienBasic
	case 3:
		switch row {
		case 0:
			return AlienFast
		case 1:
			return AlienHeavy
		}
		return AlienBasic
	case 4:
		switch row {
		case 0:
			if col%2 == 0 {
				return AlienFast
			}
			return AlienSpecial
		case 1:
			return AlienHeavy
		}
		return AlienBasic
	default:
		return f.weightedType()
	}
}

// weightedType draws FAST 30%, HEAVY 30%, SPECIAL 20%, BASIC 20%.
func (f *Factory) weightedType() AlienType {
	r := f.rng.Float64()
	switch {
	case r < 0.3:
		return AlienFast
	case r < 0.6:
		return AlienHeavy
	case r < 0.8:
		return AlienSpecial
	default:
		return AlienBasic
	}
}

// CreateAlien builds the alien for a formation slot at (x, y).
func (f *Factory) CreateAlien(stage, row, col int, x, y float64) *Alien {
	return f.build(f.TypeFor(stage, row, col), x, y, stage)
}

// CreateBoss builds the single boss of a boss stage.
func (f *Factory) CreateBoss(x, y float64, stage int) *Alien {
	return f.build(AlienBoss, x, y, stage)
}

// CreateFormation builds every alien of a stage, boss included.
func (f *Factory) CreateFormation(stage int) []*Alien {
	formation, ok := f.cfg.FormationFor(stage)
	if !ok {
		return nil
	}

	aliens := make([]*Alien, 0, formation.Rows*formation.Cols+1)
	for row := range formation.Rows {
		for col := range formation.Cols {
			x := formation.StartX + float64(col)*formation.SpacingX
			y := formation.StartY + float64(row)*formation.SpacingY
			aliens = append(aliens, f.CreateAlien(stage, row, col, x, y))
		}
	}
	if formation.Boss != nil {
		aliens = append(aliens, f.CreateBoss(formation.Boss.X, formation.Boss.Y, stage))
	}
	return aliens
}

func (f *Factory) build(t AlienType, x, y float64, stage int) *Alien {
	tc := f.typeConfig(t)

	stats := AlienStats{
		Health:     tc.Health,
		Score:      tc.Score,
		Speed:      tc.Speed,
		FireWeight: tc.FireWeight,
		Shots:      max(1, tc.Shots),
		Spread:     degreesToRadians(tc.SpreadDeg),
	}
	geom := AlienGeometry{
		W:          f.cfg.Aliens.Width,
		H:          f.cfg.Aliens.Height,
		LeftBound:  f.cfg.Aliens.LeftBound,
		RightBound: f.cfg.Aliens.RightBound,
		StepDown:   f.cfg.Aliens.StepDown,
		DeathLine:  f.cfg.World.DeathLine,
	}
	if t == AlienBoss {
		geom.StepDown = f.cfg.Aliens.BossStepDown
	}

	a := NewAlien(t, x, y, stats, geom, f.strategy(tc.Movement))
	a.SetStageMultiplier(f.scaling.StageMultiplier(stage))
	return a
}

// typeConfig looks the type up in the config, falling back to built-in stats.
func (f *Factory) typeConfig(t AlienType) config.AlienTypeConfig {
	if tc, ok := f.cfg.Aliens.Types[t.String()]; ok {
		return tc
	}
	return config.DefaultInvadersConfig().Aliens.Types[t.String()]
}

func (f *Factory) strategy(name string) MovementStrategy {
	m := f.cfg.Movement
	switch name {
	case "zigzag":
		return NewZigzagMovement(m.Zigzag)
	case "wave":
		return NewWaveMovement(m.Wave)
	case "boss":
		return NewBossMovement(m.Boss)
	case "teleport":
		return NewTeleportMovement(m.Teleport, f.rng.Int63())
	default:
		return &NormalMovement{}
	}
}
