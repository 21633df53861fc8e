package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const invadersFile = "invaders.yaml"

// LoadInvaders loads the game configuration.
// Search order: customPath -> ~/.invaders/configs/invaders.yaml -> ./configs/invaders.yaml -> embedded default.
// Files are decoded on top of the defaults, so partial files only override what they name.
func LoadInvaders(customPath string) (InvadersConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultInvadersConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := decode(data)
		if err != nil {
			return DefaultInvadersConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(invadersFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := decode(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", invadersFile)); err == nil {
		if cfg, err := decode(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := decode(defaultInvadersYAML)
	if err != nil {
		return DefaultInvadersConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func decode(data []byte) (InvadersConfig, error) {
	cfg := DefaultInvadersConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultInvadersConfig(), err
	}
	if err := cfg.Validate(); err != nil {
		return DefaultInvadersConfig(), err
	}
	return cfg, nil
}

// Validate rejects configurations the simulation cannot run with.
func (c InvadersConfig) Validate() error {
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("config: world size must be positive, got %vx%v", c.World.Width, c.World.Height)
	}
	if c.World.FinalStage < 1 {
		return fmt.Errorf("config: final_stage must be at least 1, got %d", c.World.FinalStage)
	}
	if c.Player.LeftBound >= c.Player.RightBound {
		return fmt.Errorf("config: player bounds are inverted (%v >= %v)", c.Player.LeftBound, c.Player.RightBound)
	}
	if c.Firing.PlayerIntervalMs <= 0 || c.Firing.EnemyCheckMs <= 0 {
		return fmt.Errorf("config: firing intervals must be positive")
	}
	if len(c.Formations) == 0 {
		return fmt.Errorf("config: at least one formation is required")
	}
	for name, t := range c.Aliens.Types {
		if t.Shots < 1 {
			return fmt.Errorf("config: alien type %q must fire at least one shot", name)
		}
	}
	return nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".invaders", "configs", filename)
}

// ApplyInvadersPreset adjusts the config for a difficulty preset.
func ApplyInvadersPreset(cfg *InvadersConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Player.BaseHealth = 5
		cfg.Firing.EnemyBaseIntervalMs = 1600
		cfg.Firing.EnemyMinIntervalMs = 600
	case DifficultyHard:
		cfg.Player.BaseHealth = 2
		cfg.Firing.EnemyBaseIntervalMs = 900
		cfg.Firing.EnemyMinIntervalMs = 300
	case DifficultyFixed:
		// Every stage plays with first-stage alien speed and health
		cfg.Scaling.StageStep = 0
	}
}
