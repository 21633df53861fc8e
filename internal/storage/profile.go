package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for shop operations.
var (
	ErrInsufficientPoints = errors.New("storage: insufficient points")
	ErrMaxLevel           = errors.New("storage: upgrade already at max level")
	ErrUnknownItem        = errors.New("storage: unknown item")
	ErrItemNotOwned       = errors.New("storage: item not owned")
)

// Outcomes that end a run and put its score on the leaderboard.
var leaderboardOutcomes = map[string]bool{
	"death":   true,
	"victory": true,
	"quit":    true,
}

// Profile is one player's progress: points, best score, cleared stages,
// permanent upgrades and owned items.
type Profile struct {
	store *Store
	name  string
}

// RunEntry is one recorded stage attempt.
type RunEntry struct {
	RunID     string
	Mode      string
	Stage     int
	Score     int
	Outcome   string
	CreatedAt time.Time
}

// Profile returns the named profile, creating it on first use.
func (s *Store) Profile(name string) (*Profile, error) {
	if name == "" {
		return nil, fmt.Errorf("storage: profile name is empty")
	}
	if _, err := s.db.Exec(`INSERT OR IGNORE INTO profiles (name) VALUES (?)`, name); err != nil {
		return nil, fmt.Errorf("storage: cannot create profile %s: %w", name, err)
	}
	return &Profile{store: s, name: name}, nil
}

// Name returns the profile name.
func (p *Profile) Name() string { return p.name }

func (p *Profile) intColumn(column string) (int, error) {
	var v int
	err := p.store.db.QueryRow(`SELECT `+column+` FROM profiles WHERE name = ?`, p.name).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot read %s: %w", column, err)
	}
	return v, nil
}

func (p *Profile) setIntColumn(column string, v int) error {
	_, err := p.store.db.Exec(`UPDATE profiles SET `+column+` = ? WHERE name = ?`, v, p.name)
	if err != nil {
		return fmt.Errorf("storage: cannot update %s: %w", column, err)
	}
	return nil
}

// MaxClearedStage returns the highest stage cleared.
func (p *Profile) MaxClearedStage() (int, error) { return p.intColumn("max_cleared_stage") }

// SaveMaxClearedStage raises the highest cleared stage. Lower values are ignored.
func (p *Profile) SaveMaxClearedStage(stage int) error {
	_, err := p.store.db.Exec(
		`UPDATE profiles SET max_cleared_stage = MAX(max_cleared_stage, ?) WHERE name = ?`,
		stage, p.name,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save max cleared stage: %w", err)
	}
	return nil
}

// UserPoints returns the spendable point balance.
func (p *Profile) UserPoints() (int, error) { return p.intColumn("points") }

// UpdateUserPoints overwrites the point balance.
func (p *Profile) UpdateUserPoints(points int) error {
	return p.setIntColumn("points", max(0, points))
}

// AddPoints credits points to the balance.
func (p *Profile) AddPoints(delta int) error {
	_, err := p.store.db.Exec(`UPDATE profiles SET points = points + ? WHERE name = ?`, delta, p.name)
	if err != nil {
		return fmt.Errorf("storage: cannot add points: %w", err)
	}
	return nil
}

// HighestScore returns the best single-run score.
func (p *Profile) HighestScore() (int, error) { return p.intColumn("highest_score") }

// UpdateHighestScore overwrites the best score.
func (p *Profile) UpdateHighestScore(score int) error {
	return p.setIntColumn("highest_score", score)
}

// UpgradeLevel returns the level of a permanent upgrade, 0 if never bought.
func (p *Profile) UpgradeLevel(kind string) (int, error) {
	var level int
	err := p.store.db.QueryRow(
		`SELECT level FROM upgrades WHERE profile = ? AND kind = ?`,
		p.name, kind,
	).Scan(&level)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot read upgrade %s: %w", kind, err)
	}
	return level, nil
}

// Upgrades returns every upgrade level bought so far.
func (p *Profile) Upgrades() (map[string]int, error) {
	rows, err := p.store.db.Query(`SELECT kind, level FROM upgrades WHERE profile = ?`, p.name)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query upgrades: %w", err)
	}
	defer rows.Close()

	levels := make(map[string]int)
	for rows.Next() {
		var kind string
		var level int
		if err := rows.Scan(&kind, &level); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		levels[kind] = level
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return levels, nil
}

// PurchasedItems lists owned items, one entry per unit.
func (p *Profile) PurchasedItems() ([]string, error) {
	rows, err := p.store.db.Query(
		`SELECT item FROM purchased_items WHERE profile = ? ORDER BY id`,
		p.name,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query items: %w", err)
	}
	defer rows.Close()

	var items []string
	for rows.Next() {
		var item string
		if err := rows.Scan(&item); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return items, nil
}

// ConsumeItem deletes one unit of an owned item.
func (p *Profile) ConsumeItem(item string) error {
	res, err := p.store.db.Exec(
		`DELETE FROM purchased_items WHERE id = (
			SELECT id FROM purchased_items WHERE profile = ? AND item = ? ORDER BY id LIMIT 1
		)`,
		p.name, item,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot consume %s: %w", item, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot consume %s: %w", item, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrItemNotOwned, item)
	}
	return nil
}

// RecordRun appends a run to the history. Runs that end a game also put
// their score on the leaderboard.
func (p *Profile) RecordRun(runID, mode string, stage, score int, outcome string) error {
	tx, err := p.store.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot record run: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(
		`INSERT INTO runs (run_id, profile, mode, stage, score, outcome) VALUES (?, ?, ?, ?, ?, ?)`,
		runID, p.name, mode, stage, score, outcome,
	); err != nil {
		return fmt.Errorf("storage: cannot record run: %w", err)
	}

	if leaderboardOutcomes[outcome] && score > 0 {
		if _, err := p.store.saveScore(tx, mode, p.name, score); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot record run: %w", err)
	}
	return nil
}

// Runs returns the most recent runs first.
func (p *Profile) Runs(limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := p.store.db.Query(
		`SELECT run_id, mode, stage, score, outcome, created_at
		 FROM runs
		 WHERE profile = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		p.name, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunEntry
	for rows.Next() {
		var r RunEntry
		var createdAt any
		if err := rows.Scan(&r.RunID, &r.Mode, &r.Stage, &r.Score, &r.Outcome, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// BuyItem spends price points on one unit of item.
func (p *Profile) BuyItem(item string, price int) error {
	if item == "" || price <= 0 {
		return fmt.Errorf("%w: %q", ErrUnknownItem, item)
	}

	return p.spend(price, func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO purchased_items (profile, item) VALUES (?, ?)`, p.name, item)
		return err
	})
}

// BuyUpgrade spends cost points on the next level of kind. A negative cost
// means the upgrade is maxed out.
func (p *Profile) BuyUpgrade(kind string, cost int) error {
	if cost < 0 {
		return fmt.Errorf("%w: %s", ErrMaxLevel, kind)
	}

	return p.spend(cost, func(tx *sql.Tx) error {
		_, err := tx.Exec(
			`INSERT INTO upgrades (profile, kind, level) VALUES (?, ?, 1)
			 ON CONFLICT(profile, kind) DO UPDATE SET level = level + 1`,
			p.name, kind,
		)
		return err
	})
}

// spend deducts cost and runs apply in the same transaction.
func (p *Profile) spend(cost int, apply func(tx *sql.Tx) error) error {
	tx, err := p.store.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin purchase: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var points int
	if err := tx.QueryRow(`SELECT points FROM profiles WHERE name = ?`, p.name).Scan(&points); err != nil {
		return fmt.Errorf("storage: cannot read points: %w", err)
	}
	if points < cost {
		return fmt.Errorf("%w: have %d, need %d", ErrInsufficientPoints, points, cost)
	}

	if _, err := tx.Exec(`UPDATE profiles SET points = points - ? WHERE name = ?`, cost, p.name); err != nil {
		return fmt.Errorf("storage: cannot deduct points: %w", err)
	}
	if err := apply(tx); err != nil {
		return fmt.Errorf("storage: cannot apply purchase: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit purchase: %w", err)
	}
	return nil
}
