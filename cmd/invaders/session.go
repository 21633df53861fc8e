package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-invaders/internal/settings"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

// dataDir is where logs and screenshots go.
func dataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".invaders"
	}
	return filepath.Join(home, ".invaders")
}

// openLog opens the session log file. The terminal belongs to the game,
// so diagnostics go to disk. Falls back to discarding on error.
func openLog() (*log.Logger, func()) {
	dir := dataDir()
	if err := os.MkdirAll(dir, 0o755); err == nil {
		f, err := os.OpenFile(filepath.Join(dir, "invaders.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err == nil {
			logger := log.NewWithOptions(f, log.Options{
				ReportTimestamp: true,
				Prefix:          "invaders",
				Level:           log.InfoLevel,
			})
			return logger, func() { f.Close() }
		}
	}
	return log.New(io.Discard), func() {}
}

// loadSettings opens the launcher settings. Errors fall back to defaults
// kept in memory.
func loadSettings() *settings.Manager {
	m, err := settings.Open(settings.AppName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load settings: %v\n", err)
		if m == nil {
			m = settings.NewManager(nil)
		}
	}
	return m
}

// profileName picks --profile over the saved setting.
func profileName(s settings.Settings) string {
	if flagProfile != "" {
		return flagProfile
	}
	return s.Profile
}

// openProfile opens the database and the named profile, exiting on error.
func openProfile(name string) (*storage.Store, *storage.Profile) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	profile, err := store.Profile(name)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error opening profile: %v\n", err)
		os.Exit(1)
	}
	return store, profile
}

// tryOpenProfile is openProfile for play: a missing database only means the
// run is not saved.
func tryOpenProfile(name string) (*storage.Store, *storage.Profile) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database, progress will not be saved: %v\n", err)
		return nil, nil
	}
	profile, err := store.Profile(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open profile %q: %v\n", name, err)
		return store, nil
	}
	return store, profile
}
