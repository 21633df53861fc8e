// Package config provides YAML-based configuration for Space Invaders along
// with difficulty presets and the stage scaling formulas.
package config

// InvadersConfig contains all tunables of the simulation.
// World units are pixels of an 800x600 play field, speeds are pixels per second.
type InvadersConfig struct {
	World      WorldConfig       `yaml:"world"`
	Player     PlayerConfig      `yaml:"player"`
	Shots      ShotConfig        `yaml:"shots"`
	Aliens     AlienConfig       `yaml:"aliens"`
	Movement   MovementConfig    `yaml:"movement"`
	Formations []FormationConfig `yaml:"formations"`
	Firing     FiringConfig      `yaml:"firing"`
	Scoring    ScoringConfig     `yaml:"scoring"`
	Items      ItemsConfig       `yaml:"items"`
	Upgrades   UpgradesConfig    `yaml:"upgrades"`
	Input      InputConfig       `yaml:"input"`
	Scaling    ScalingConfig     `yaml:"scaling"`
}

// WorldConfig defines the play field.
type WorldConfig struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	DeathLine  float64 `yaml:"death_line"`  // Aliens below this line end the run
	FinalStage int     `yaml:"final_stage"` // Clearing this stage wins the game
}

// PlayerConfig defines ship geometry, bounds and base stats.
type PlayerConfig struct {
	Width       float64    `yaml:"width"`
	Height      float64    `yaml:"height"`
	StartX      [2]float64 `yaml:"start_x"` // Per player
	StartY      float64    `yaml:"start_y"`
	LeftBound   float64    `yaml:"left_bound"`
	RightBound  float64    `yaml:"right_bound"`
	BaseSpeed   float64    `yaml:"base_speed"`
	SpeedGrowth float64    `yaml:"speed_growth"` // Multiplier per speed upgrade level
	BaseHealth  int        `yaml:"base_health"`
}

// ShotConfig defines projectile geometry and speeds.
type ShotConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	PlayerSpeed  float64 `yaml:"player_speed"`
	EnemySpeed   float64 `yaml:"enemy_speed"`
	PlayerTop    float64 `yaml:"player_top"` // Player shots above this y are discarded
	PlayerOffset Offset  `yaml:"player_offset"`
	EnemyOffset  Offset  `yaml:"enemy_offset"`
}

// Offset is a spawn offset relative to the shooter's top-left corner.
type Offset struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// AlienConfig defines alien geometry, bounds and per-type stats.
type AlienConfig struct {
	Width        float64                    `yaml:"width"`
	Height       float64                    `yaml:"height"`
	LeftBound    float64                    `yaml:"left_bound"`
	RightBound   float64                    `yaml:"right_bound"`
	StepDown     float64                    `yaml:"step_down"`
	BossStepDown float64                    `yaml:"boss_step_down"`
	Types        map[string]AlienTypeConfig `yaml:"types"`
}

// AlienTypeConfig holds the combat stats of one alien type.
type AlienTypeConfig struct {
	Health     int     `yaml:"health"`
	Score      int     `yaml:"score"`
	Speed      float64 `yaml:"speed"`
	Movement   string  `yaml:"movement"` // normal, zigzag, wave, boss, teleport
	FireWeight float64 `yaml:"fire_weight"`
	Shots      int     `yaml:"shots"`
	SpreadDeg  float64 `yaml:"spread_deg"`
}

// MovementConfig tunes the movement strategies.
type MovementConfig struct {
	Zigzag   ZigzagConfig   `yaml:"zigzag"`
	Wave     PursuitConfig  `yaml:"wave"`
	Boss     PursuitConfig  `yaml:"boss"`
	Teleport TeleportConfig `yaml:"teleport"`
}

// ZigzagConfig tunes the square-wave vertical drift.
type ZigzagConfig struct {
	IntervalMs float64 `yaml:"interval_ms"`
	Speed      float64 `yaml:"speed"`
}

// PursuitConfig tunes the sine-target pursuit used by wave and boss movement.
type PursuitConfig struct {
	Frequency float64 `yaml:"frequency"` // Radians per millisecond
	Amplitude float64 `yaml:"amplitude"`
	MaxDepth  float64 `yaml:"max_depth"`
	Gain      float64 `yaml:"gain"`
}

// TeleportConfig tunes the teleporting movement.
type TeleportConfig struct {
	IntervalMs    float64 `yaml:"interval_ms"`
	MinX          float64 `yaml:"min_x"`
	MaxX          float64 `yaml:"max_x"`
	MinY          float64 `yaml:"min_y"`
	MaxY          float64 `yaml:"max_y"`
	JitterY       float64 `yaml:"jitter_y"`
	ReverseChance float64 `yaml:"reverse_chance"`
}

// FormationConfig describes the alien grid for one stage.
type FormationConfig struct {
	Stage    int     `yaml:"stage"`
	Rows     int     `yaml:"rows"`
	Cols     int     `yaml:"cols"`
	StartX   float64 `yaml:"start_x"`
	StartY   float64 `yaml:"start_y"`
	SpacingX float64 `yaml:"spacing_x"`
	SpacingY float64 `yaml:"spacing_y"`
	Boss     *Offset `yaml:"boss,omitempty"` // Boss spawn position, if any
}

// FiringConfig defines player and enemy fire pacing.
type FiringConfig struct {
	PlayerIntervalMs    float64 `yaml:"player_interval_ms"`
	AttackFactor        float64 `yaml:"attack_factor"` // Interval multiplier per attack level
	EnemyBaseIntervalMs float64 `yaml:"enemy_base_interval_ms"`
	EnemyMinIntervalMs  float64 `yaml:"enemy_min_interval_ms"`
	EnemyCheckMs        float64 `yaml:"enemy_check_ms"`
	StageReduction      float64 `yaml:"stage_reduction"`
	DensityDivisor      float64 `yaml:"density_divisor"`
	DensityFloor        float64 `yaml:"density_floor"`
}

// ScoringConfig defines kill rewards and the per-kill speedup.
type ScoringConfig struct {
	AlienKillPoints int     `yaml:"alien_kill_points"`
	BossFactor      int     `yaml:"boss_factor"`
	StageBonus      int     `yaml:"stage_bonus"` // Points per stage number on clear
	SpeedupBase     float64 `yaml:"speedup_base"`
	SpeedupPerStage float64 `yaml:"speedup_per_stage"`
}

// ItemsConfig defines consumable durations, effects and prices.
type ItemsConfig struct {
	AmmoMs             float64        `yaml:"ammo_ms"`
	DoubleScoreMs      float64        `yaml:"double_score_ms"`
	InvincibilityMs    float64        `yaml:"invincibility_ms"`
	FireRateMultiplier float64        `yaml:"fire_rate_multiplier"`
	ScoreMultiplier    float64        `yaml:"score_multiplier"`
	Prices             map[string]int `yaml:"prices"`
}

// UpgradesConfig defines permanent upgrade costs.
type UpgradesConfig struct {
	MaxLevel  int            `yaml:"max_level"`
	BaseCosts map[string]int `yaml:"base_costs"` // Cost of level n is base * n
}

// InputConfig tunes the terminal key state.
type InputConfig struct {
	HoldMs int `yaml:"hold_ms"` // How long a key counts as held after its last repeat
}

// ScalingConfig tunes stage-based alien scaling.
type ScalingConfig struct {
	StageStep float64 `yaml:"stage_step"` // Multiplier gained per stage after the first
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string to a preset. Unknown values map to "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	}
	return ""
}

// FormationFor returns the formation for a stage, falling back to the last one.
func (c InvadersConfig) FormationFor(stage int) (FormationConfig, bool) {
	for _, f := range c.Formations {
		if f.Stage == stage {
			return f, true
		}
	}
	if len(c.Formations) == 0 {
		return FormationConfig{}, false
	}
	return c.Formations[len(c.Formations)-1], true
}
