// Package settings persists the player's launcher preferences with gdata.
package settings

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-invaders/internal/config"
)

// AppName is the gdata application name.
const AppName = "tui-invaders"

const (
	settingsObject   = "settings"
	settingsProperty = "launcher"
)

// Settings are the preferences remembered between launches.
type Settings struct {
	TwoPlayer  bool   `yaml:"two_player"`
	Difficulty string `yaml:"difficulty"`
	Profile    string `yaml:"profile"`
}

// Defaults returns the settings used before anything was saved.
func Defaults() Settings {
	return Settings{
		TwoPlayer:  false,
		Difficulty: string(config.DifficultyNormal),
		Profile:    "player",
	}
}

// Mode returns the registry id of the game the settings select.
func (s Settings) Mode() string {
	if s.TwoPlayer {
		return "invaders_coop"
	}
	return "invaders"
}

// Manager loads and saves Settings. A nil gdata manager keeps settings in
// memory only.
type Manager struct {
	data     *gdata.Manager
	settings Settings
}

// Open opens the default gdata location for appName.
func Open(appName string) (*Manager, error) {
	data, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("settings: cannot open data dir: %w", err)
	}
	m := NewManager(data)
	if err := m.Load(); err != nil {
		return m, err
	}
	return m, nil
}

// NewManager wraps an opened gdata manager, starting from the defaults.
func NewManager(data *gdata.Manager) *Manager {
	return &Manager{data: data, settings: Defaults()}
}

// Load reads saved settings. Missing data leaves the defaults in place.
func (m *Manager) Load() error {
	m.settings = Defaults()
	if m.data == nil || !m.data.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	raw, err := m.data.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("settings: cannot load: %w", err)
	}

	loaded := Defaults()
	if err := yaml.Unmarshal(raw, &loaded); err != nil {
		return fmt.Errorf("settings: cannot decode: %w", err)
	}
	if config.ParsePreset(loaded.Difficulty) == "" {
		loaded.Difficulty = Defaults().Difficulty
	}
	if loaded.Profile == "" {
		loaded.Profile = Defaults().Profile
	}
	m.settings = loaded
	return nil
}

// Save writes the current settings.
func (m *Manager) Save() error {
	if m.data == nil {
		return nil
	}

	raw, err := yaml.Marshal(m.settings)
	if err != nil {
		return fmt.Errorf("settings: cannot encode: %w", err)
	}
	if err := m.data.SaveObjectProp(settingsObject, settingsProperty, raw); err != nil {
		return fmt.Errorf("settings: cannot save: %w", err)
	}
	return nil
}

// Get returns a copy of the current settings.
func (m *Manager) Get() Settings {
	return m.settings
}

// SetTwoPlayer toggles cooperative play. Call Save to persist.
func (m *Manager) SetTwoPlayer(on bool) {
	m.settings.TwoPlayer = on
}

// SetDifficulty selects a difficulty preset by name.
func (m *Manager) SetDifficulty(name string) error {
	preset := config.ParsePreset(name)
	if preset == "" {
		return fmt.Errorf("settings: unknown difficulty %q", name)
	}
	m.settings.Difficulty = string(preset)
	return nil
}

// SetProfile selects the active profile.
func (m *Manager) SetProfile(name string) error {
	if name == "" {
		return fmt.Errorf("settings: profile name is empty")
	}
	m.settings.Profile = name
	return nil
}
