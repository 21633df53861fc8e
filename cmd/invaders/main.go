// invaders is a Space Invaders arcade game for the terminal.
//
// Usage:
//
//	invaders                   - Launcher menu (same as "invaders menu")
//	invaders list              - List game modes
//	invaders play [mode]       - Play (solo or coop)
//	invaders serve             - Start SSH server for remote play
//	invaders scores            - Browse the leaderboards
//	invaders profile           - Show points, upgrades and items
//	invaders buy <item>        - Buy a consumable item
//	invaders upgrade <kind>    - Buy a permanent upgrade level
//	invaders settings          - Show or change launcher settings
//
// Global flags:
//
//	--fps <rate>      - Set tick rate (default: 60)
//	--seed <value>    - Set RNG seed for reproducible gameplay
//	--db <path>       - Set database path (default: ~/.invaders/invaders.db)
//	--profile <name>  - Play on another profile than the saved one
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Register the game modes
	_ "github.com/vovakirdan/tui-invaders/internal/games/invaders"
)

var (
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagProfile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "invaders",
	Short: "Space Invaders in your terminal",
	Long: `Shoot down alien waves stage by stage, earn points and spend them
on upgrades and items between runs.

Examples:
  invaders
  invaders play
  invaders play coop --difficulty hard
  invaders scores
  invaders buy ammo
  invaders serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.invaders/invaders.db", "Path to the profile database")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", "", "Profile name (default: from settings)")

	rootCmd.Run = runMenu
	rootCmd.Args = cobra.NoArgs

	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(buyCmd)
	rootCmd.AddCommand(upgradeCmd)
	rootCmd.AddCommand(settingsCmd)
}
