package invaders

import (
	"time"

	"github.com/vovakirdan/tui-invaders/internal/config"
)

// Item names as stored by the shop.
const (
	ItemAmmo          = "ammo"
	ItemDoubleScore   = "double_score"
	ItemInvincibility = "invincibility"
	ItemPlusLife      = "plus_life"
)

// ItemSlots maps keys 1-4 to item names.
var ItemSlots = [4]string{ItemAmmo, ItemDoubleScore, ItemInvincibility, ItemPlusLife}

// ItemManager tracks owned consumables and the timed buffs they grant.
// Buff timers run on the simulation clock.
type ItemManager struct {
	cfg     config.ItemsConfig
	profile *Profile

	counts map[string]int
	until  map[string]time.Duration
	now    time.Duration
}

// NewItemManager creates an item manager backed by profile.
func NewItemManager(cfg config.ItemsConfig, profile *Profile) *ItemManager {
	return &ItemManager{
		cfg:     cfg,
		profile: profile,
		counts:  make(map[string]int),
		until:   make(map[string]time.Duration),
	}
}

// Load refreshes owned counts from the profile and drops running buffs.
func (m *ItemManager) Load() {
	clear(m.counts)
	clear(m.until)
	for _, name := range m.profile.PurchasedItems() {
		m.counts[name]++
	}
}

// Tick moves the item clock.
func (m *ItemManager) Tick(now time.Duration) {
	m.now = now
}

// Count returns how many of an item are owned.
func (m *ItemManager) Count(name string) int {
	return m.counts[name]
}

// Remaining returns the time left on a buff.
func (m *ItemManager) Remaining(name string) time.Duration {
	return max(0, m.until[name]-m.now)
}

// Use consumes the item in a slot. It returns the item name and whether the
// use went through; the caller applies instant effects.
func (m *ItemManager) Use(slot int) (string, bool) {
	if slot < 0 || slot >= len(ItemSlots) {
		return "", false
	}
	name := ItemSlots[slot]
	if m.counts[name] <= 0 {
		return name, false
	}
	if !m.profile.ConsumeItem(name) {
		return name, false
	}
	m.counts[name]--

	switch name {
	case ItemAmmo:
		m.extend(name, m.cfg.AmmoMs)
	case ItemDoubleScore:
		m.extend(name, m.cfg.DoubleScoreMs)
	case ItemInvincibility:
		m.extend(name, m.cfg.InvincibilityMs)
	}
	return name, true
}

func (m *ItemManager) extend(name string, ms float64) {
	d := time.Duration(ms * float64(time.Millisecond))
	m.until[name] = max(m.until[name], m.now) + d
}

func (m *ItemManager) active(name string) bool {
	return m.until[name] > m.now
}

// ScoreMultiplier implements Buffs.
func (m *ItemManager) ScoreMultiplier() float64 {
	if m.active(ItemDoubleScore) {
		return m.cfg.ScoreMultiplier
	}
	return 1
}

// FireRateMultiplier implements Buffs.
func (m *ItemManager) FireRateMultiplier() float64 {
	if m.active(ItemAmmo) {
		return m.cfg.FireRateMultiplier
	}
	return 1
}

// Invincible implements Buffs.
func (m *ItemManager) Invincible() bool {
	return m.active(ItemInvincibility)
}
