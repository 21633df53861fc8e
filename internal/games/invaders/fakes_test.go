package invaders

import (
	"errors"
	"time"
)

var errStoreDown = errors.New("store down")

// memStore is an in-memory Persistence for tests.
type memStore struct {
	maxCleared int
	points     int
	highest    int
	levels     map[string]int
	items      []string
	runs       []string

	failConsume bool
	failAll     bool
}

func newMemStore() *memStore {
	return &memStore{levels: make(map[string]int)}
}

func (m *memStore) err() error {
	if m.failAll {
		return errStoreDown
	}
	return nil
}

func (m *memStore) MaxClearedStage() (int, error) { return m.maxCleared, m.err() }

func (m *memStore) SaveMaxClearedStage(stage int) error {
	if err := m.err(); err != nil {
		return err
	}
	m.maxCleared = stage
	return nil
}

func (m *memStore) UpgradeLevel(kind string) (int, error) { return m.levels[kind], m.err() }

func (m *memStore) AddPoints(delta int) error {
	if err := m.err(); err != nil {
		return err
	}
	m.points += delta
	return nil
}

func (m *memStore) UserPoints() (int, error) { return m.points, m.err() }

func (m *memStore) UpdateUserPoints(points int) error {
	if err := m.err(); err != nil {
		return err
	}
	m.points = points
	return nil
}

func (m *memStore) HighestScore() (int, error) { return m.highest, m.err() }

func (m *memStore) UpdateHighestScore(score int) error {
	if err := m.err(); err != nil {
		return err
	}
	m.highest = score
	return nil
}

func (m *memStore) PurchasedItems() ([]string, error) {
	return append([]string(nil), m.items...), m.err()
}

func (m *memStore) ConsumeItem(item string) error {
	if m.failConsume {
		return errStoreDown
	}
	for i, name := range m.items {
		if name == item {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return errors.New("not owned")
}

func (m *memStore) RecordRun(_, _ string, _, _ int, outcome string) error {
	if err := m.err(); err != nil {
		return err
	}
	m.runs = append(m.runs, outcome)
	return nil
}

// recorder records every collision reaction it receives.
type recorder struct {
	Body
	hits map[EntityID]int
}

func newRecorder(x, y float64) *recorder {
	return &recorder{Body: Body{X: x, Y: y, W: 10, H: 10}, hits: make(map[EntityID]int)}
}

func (p *recorder) Kind() Kind                        { return KindShot }
func (p *recorder) Move(time.Duration, *Outbox)       {}
func (p *recorder) CollidedWith(o Entity, _ *Outbox) { p.hits[o.ID()]++ }
