package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/games/invaders"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

var upgradeKinds = []string{invaders.UpgradeAttack, invaders.UpgradeHealth, invaders.UpgradeSpeed}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show points, upgrades, items and recent runs",
	Args:  cobra.NoArgs,
	Run:   runProfile,
}

var buyCmd = &cobra.Command{
	Use:   "buy <item>",
	Short: "Buy a consumable item with points",
	Long: `Buy one unit of an item. Owned items are loaded at the start of every
stage and used with keys 1-4.

Items: ammo, double_score, invincibility, plus_life`,
	Args: cobra.ExactArgs(1),
	Run:  runBuy,
}

var upgradeCmd = &cobra.Command{
	Use:   "upgrade <kind>",
	Short: "Buy the next level of a permanent upgrade",
	Long: `Raise a permanent upgrade by one level.

Kinds: attack (fire rate), health (max lives), speed (ship speed)`,
	Args: cobra.ExactArgs(1),
	Run:  runUpgrade,
}

// shopConfig loads the prices the game itself uses.
func shopConfig() config.InvadersConfig {
	cfg, err := config.LoadInvaders("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: config load failed, using defaults: %v\n", err)
		return config.DefaultInvadersConfig()
	}
	return cfg
}

// buyItem spends points on item at its configured price.
func buyItem(p *storage.Profile, cfg config.InvadersConfig, item string) (int, error) {
	if !slices.Contains(invaders.ItemSlots[:], item) {
		return 0, fmt.Errorf("%w: %q", storage.ErrUnknownItem, item)
	}
	price, ok := cfg.Items.Prices[item]
	if !ok {
		return 0, fmt.Errorf("%w: %q has no price", storage.ErrUnknownItem, item)
	}
	return price, p.BuyItem(item, price)
}

// buyUpgrade spends points on the next level of kind.
func buyUpgrade(p *storage.Profile, cfg config.InvadersConfig, kind string) (level, cost int, err error) {
	if !slices.Contains(upgradeKinds, kind) {
		return 0, 0, fmt.Errorf("unknown upgrade %q", kind)
	}
	current, err := p.UpgradeLevel(kind)
	if err != nil {
		return 0, 0, err
	}
	cost = config.NewScaling(cfg).UpgradeCost(kind, current)
	if err := p.BuyUpgrade(kind, cost); err != nil {
		return current, cost, err
	}
	return current + 1, cost, nil
}

func runBuy(cmd *cobra.Command, args []string) {
	store, profile := openProfile(profileName(loadSettings().Get()))
	defer store.Close()

	price, err := buyItem(profile, shopConfig(), args[0])
	if err != nil {
		reportShopError(err)
		return
	}
	fmt.Printf("Bought %s for %d points.\n", args[0], price)
}

func runUpgrade(cmd *cobra.Command, args []string) {
	store, profile := openProfile(profileName(loadSettings().Get()))
	defer store.Close()

	level, cost, err := buyUpgrade(profile, shopConfig(), args[0])
	if err != nil {
		reportShopError(err)
		return
	}
	fmt.Printf("%s is now level %d (%d points).\n", args[0], level, cost)
}

func reportShopError(err error) {
	switch {
	case errors.Is(err, storage.ErrInsufficientPoints):
		fmt.Fprintln(os.Stderr, "Not enough points.")
	case errors.Is(err, storage.ErrMaxLevel):
		fmt.Fprintln(os.Stderr, "That upgrade is already at its max level.")
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

func runProfile(cmd *cobra.Command, args []string) {
	store, profile := openProfile(profileName(loadSettings().Get()))
	defer store.Close()

	if err := printProfile(os.Stdout, profile, shopConfig()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

// printProfile writes a summary of p, including what the next upgrade
// levels cost.
func printProfile(w io.Writer, p *storage.Profile, cfg config.InvadersConfig) error {
	points, err := p.UserPoints()
	if err != nil {
		return err
	}
	highest, err := p.HighestScore()
	if err != nil {
		return err
	}
	cleared, err := p.MaxClearedStage()
	if err != nil {
		return err
	}
	levels, err := p.Upgrades()
	if err != nil {
		return err
	}
	items, err := p.PurchasedItems()
	if err != nil {
		return err
	}
	runs, err := p.Runs(5)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Profile %s\n\n", p.Name())
	fmt.Fprintf(w, "  Points         %d\n", points)
	fmt.Fprintf(w, "  Best score     %d\n", highest)
	fmt.Fprintf(w, "  Stages cleared %d\n\n", cleared)

	scaling := config.NewScaling(cfg)
	fmt.Fprintln(w, "Upgrades:")
	for _, kind := range upgradeKinds {
		next := "max"
		if cost := scaling.UpgradeCost(kind, levels[kind]); cost >= 0 {
			next = fmt.Sprintf("%d pts", cost)
		}
		fmt.Fprintf(w, "  %-8s level %d/%d  next: %s\n", kind, levels[kind], cfg.Upgrades.MaxLevel, next)
	}

	fmt.Fprintln(w, "\nItems:")
	for i, item := range invaders.ItemSlots {
		fmt.Fprintf(w, "  [%d] %-14s x%d  price %d\n", i+1, item, countOf(items, item), cfg.Items.Prices[item])
	}

	if len(runs) > 0 {
		fmt.Fprintln(w, "\nRecent runs:")
		for _, r := range runs {
			fmt.Fprintf(w, "  %s  %-14s stage %-3d %-8s %d\n",
				r.CreatedAt.Format("2006-01-02 15:04"), r.Mode, r.Stage, r.Outcome, r.Score)
		}
	}
	return nil
}

func countOf(items []string, item string) int {
	n := 0
	for _, it := range items {
		if it == item {
			n++
		}
	}
	return n
}
