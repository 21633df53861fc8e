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

var (
	flagConfig     string
	flagDifficulty string
	flagTwoPlayer  bool
)

var playCmd = &cobra.Command{
	Use:   "play [solo|coop]",
	Short: "Play Space Invaders",
	Long: `Start a game. Without an argument the mode saved in settings is used.

Controls:
  Left/Right, Space  - Player 1 move, fire
  A/D, W             - Player 2 move, fire (coop)
  Enter              - Start / pick stage
  1-4                - Use ammo, double score, invincibility, +life
  Esc                - Pause, then Esc again to leave
  Q/Ctrl+C           - Quit
  Ctrl+S             - Screenshot

Difficulty options:
  easy, normal, hard - Scale alien fire and speed
  fixed              - Use the config as written

Examples:
  invaders play
  invaders play coop
  invaders play --difficulty hard
  invaders play --config ./my-invaders.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagTwoPlayer, "two-player", false, "Play the cooperative mode")
}

// resolveMode maps the positional argument and flags to a registry id.
func resolveMode(args []string, saved string) (string, error) {
	if flagTwoPlayer {
		return invaders.ModeCoop, nil
	}
	if len(args) == 0 {
		return saved, nil
	}
	switch args[0] {
	case "solo", invaders.ModeSolo:
		return invaders.ModeSolo, nil
	case "coop", invaders.ModeCoop:
		return invaders.ModeCoop, nil
	}
	return "", fmt.Errorf("unknown mode %q", args[0])
}

func runPlay(cmd *cobra.Command, args []string) {
	prefs := loadSettings().Get()

	mode, err := resolveMode(args, prefs.Mode())
	if err == nil && !registry.Exists(mode) {
		err = fmt.Errorf("unknown mode %q", mode)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'invaders list' to see the game modes.")
		os.Exit(1)
	}

	difficulty := flagDifficulty
	if difficulty == "" {
		difficulty = prefs.Difficulty
	}
	invaders.SetConfigPath(flagConfig)
	invaders.SetDifficultyPreset(difficulty)

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	game, err := registry.Create(mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := openLog()
	defer closeLog()

	opts := tui.Options{
		Logger:        logger.With("mode", mode),
		ScreenshotDir: filepath.Join(dataDir(), "screenshots"),
	}

	store, profile := tryOpenProfile(profileName(prefs))
	if profile != nil {
		opts.Profile = profile
	}

	runErr := tui.Run(game, cfg, opts)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
