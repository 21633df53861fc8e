package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/games/invaders"
	"github.com/vovakirdan/tui-invaders/internal/platform/tui"
	"github.com/vovakirdan/tui-invaders/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the launcher menu",
	Long: `Start the interactive launcher. Pick the mode and difficulty, play,
and come back to the menu after each game.

Controls:
  Up/Down      - Navigate
  Left/Right   - Change mode or difficulty
  Enter        - Select
  Tab          - High scores
  Q/Esc        - Quit`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	prefs := loadSettings()
	name := profileName(prefs.Get())

	store, profile := tryOpenProfile(name)
	if store != nil {
		defer store.Close()
	}

	logger, closeLog := openLog()
	defer closeLog()

	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	for {
		result, err := tui.RunMenu(prefs, name, cfg)
		if err != nil {
			logger.Warn("menu", "error", err)
		}
		cfg = result.Config

		switch result.Choice {
		case tui.ChoiceScores:
			if store == nil {
				continue
			}
			if err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return
			}

		case tui.ChoicePlay:
			s := prefs.Get()
			invaders.SetDifficultyPreset(s.Difficulty)

			game, err := registry.Create(s.Mode())
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
				return
			}
			opts := tui.Options{
				Logger:        logger.With("mode", game.ID()),
				ScreenshotDir: filepath.Join(dataDir(), "screenshots"),
			}
			if profile != nil {
				opts.Profile = profile
			}
			if err := tui.Run(game, cfg, opts); err != nil {
				fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
				return
			}

		default:
			return
		}
	}
}
