package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagSetTwoPlayer  string
	flagSetDifficulty string
	flagSetProfile    string
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change launcher settings",
	Long: `Without flags the current settings are printed.

Examples:
  invaders settings --two-player on
  invaders settings --difficulty hard --profile alice`,
	Args: cobra.NoArgs,
	Run:  runSettings,
}

func init() {
	settingsCmd.Flags().StringVar(&flagSetTwoPlayer, "two-player", "", "on or off")
	settingsCmd.Flags().StringVar(&flagSetDifficulty, "difficulty", "", "Default difficulty: easy, normal, hard, fixed")
	settingsCmd.Flags().StringVar(&flagSetProfile, "set-profile", "", "Default profile name")
}

func runSettings(cmd *cobra.Command, args []string) {
	m := loadSettings()
	changed := false

	switch flagSetTwoPlayer {
	case "":
	case "on", "true", "yes":
		m.SetTwoPlayer(true)
		changed = true
	case "off", "false", "no":
		m.SetTwoPlayer(false)
		changed = true
	default:
		fmt.Fprintf(os.Stderr, "Error: --two-player expects on or off, got %q\n", flagSetTwoPlayer)
		os.Exit(1)
	}

	if flagSetDifficulty != "" {
		if err := m.SetDifficulty(flagSetDifficulty); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		changed = true
	}
	if flagSetProfile != "" {
		if err := m.SetProfile(flagSetProfile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		changed = true
	}

	if changed {
		if err := m.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	s := m.Get()
	fmt.Printf("  two player  %v\n", s.TwoPlayer)
	fmt.Printf("  difficulty  %s\n", s.Difficulty)
	fmt.Printf("  profile     %s\n", s.Profile)
	fmt.Printf("  mode        %s\n", s.Mode())
}
