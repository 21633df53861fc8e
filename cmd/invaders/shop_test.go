package main

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/games/invaders"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

func openTestProfile(t *testing.T, points int) *storage.Profile {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	p, err := store.Profile("tester")
	if err != nil {
		t.Fatalf("Profile() failed: %v", err)
	}
	if err := p.AddPoints(points); err != nil {
		t.Fatalf("AddPoints() failed: %v", err)
	}
	return p
}

func TestBuyItem(t *testing.T) {
	cfg := config.DefaultInvadersConfig()
	p := openTestProfile(t, 1500)

	price, err := buyItem(p, cfg, invaders.ItemPlusLife)
	if err != nil {
		t.Fatalf("buyItem() failed: %v", err)
	}
	if price != cfg.Items.Prices[invaders.ItemPlusLife] {
		t.Errorf("expected configured price, got %d", price)
	}

	if _, err := buyItem(p, cfg, invaders.ItemAmmo); !errors.Is(err, storage.ErrInsufficientPoints) {
		t.Errorf("expected ErrInsufficientPoints, got %v", err)
	}
	if _, err := buyItem(p, cfg, "laser"); !errors.Is(err, storage.ErrUnknownItem) {
		t.Errorf("expected ErrUnknownItem, got %v", err)
	}

	items, _ := p.PurchasedItems()
	if len(items) != 1 || items[0] != invaders.ItemPlusLife {
		t.Errorf("unexpected items %v", items)
	}
}

func TestBuyUpgrade(t *testing.T) {
	cfg := config.DefaultInvadersConfig()
	cfg.Upgrades.MaxLevel = 2
	cfg.Upgrades.BaseCosts = map[string]int{invaders.UpgradeSpeed: 100}
	p := openTestProfile(t, 1000)

	level, cost, err := buyUpgrade(p, cfg, invaders.UpgradeSpeed)
	if err != nil || level != 1 || cost != 100 {
		t.Fatalf("first level: level=%d cost=%d err=%v", level, cost, err)
	}
	level, cost, err = buyUpgrade(p, cfg, invaders.UpgradeSpeed)
	if err != nil || level != 2 || cost != 200 {
		t.Fatalf("second level: level=%d cost=%d err=%v", level, cost, err)
	}
	if _, _, err = buyUpgrade(p, cfg, invaders.UpgradeSpeed); !errors.Is(err, storage.ErrMaxLevel) {
		t.Errorf("expected ErrMaxLevel, got %v", err)
	}
	if _, _, err = buyUpgrade(p, cfg, "luck"); err == nil {
		t.Error("expected error for unknown upgrade")
	}

	points, _ := p.UserPoints()
	if points != 700 {
		t.Errorf("expected 700 points left, got %d", points)
	}
}

func TestPrintProfile(t *testing.T) {
	cfg := config.DefaultInvadersConfig()
	p := openTestProfile(t, 42)

	var sb strings.Builder
	if err := printProfile(&sb, p, cfg); err != nil {
		t.Fatalf("printProfile() failed: %v", err)
	}

	out := sb.String()
	for _, want := range []string{"Profile tester", "Points         42", "attack", "plus_life"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestResolveMode(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		twoPlayer bool
		saved     string
		want      string
		wantErr   bool
	}{
		{"saved", nil, false, invaders.ModeCoop, invaders.ModeCoop, false},
		{"solo", []string{"solo"}, false, invaders.ModeCoop, invaders.ModeSolo, false},
		{"coop", []string{"coop"}, false, invaders.ModeSolo, invaders.ModeCoop, false},
		{"registry id", []string{"invaders_coop"}, false, invaders.ModeSolo, invaders.ModeCoop, false},
		{"flag wins", []string{"solo"}, true, invaders.ModeSolo, invaders.ModeCoop, false},
		{"unknown", []string{"versus"}, false, invaders.ModeSolo, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flagTwoPlayer = tt.twoPlayer
			defer func() { flagTwoPlayer = false }()

			got, err := resolveMode(tt.args, tt.saved)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveMode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("resolveMode() = %q, want %q", got, tt.want)
			}
		})
	}
}
