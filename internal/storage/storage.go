// Package storage persists the engine's whole-state snapshot.
package storage

import (
	"github.com/roundsight/predictor/models"
)

// Store loads and saves the full snapshot. Save overwrites the previous
// state wholesale; there are no partial writes.
//
// Load contract: a missing location is first-run state and returns an
// empty snapshot with no error; a present but unreadable location
// returns an error the caller may treat as non-fatal.
type Store interface {
	Load() (*models.Snapshot, error)
	Save(snap *models.Snapshot) error
	Close() error
}

// Memory is an in-process Store for tests and replay runs.
type Memory struct {
	snap *models.Snapshot
}

// NewMemory creates an empty in-process store.
func NewMemory() *Memory {
	return &Memory{}
}

// Load returns the last saved snapshot, or first-run state.
func (m *Memory) Load() (*models.Snapshot, error) {
	if m.snap == nil {
		return models.EmptySnapshot(), nil
	}
	return m.snap, nil
}

// Save keeps the snapshot in memory.
func (m *Memory) Save(snap *models.Snapshot) error {
	m.snap = snap
	return nil
}

// Close is a no-op.
func (m *Memory) Close() error {
	return nil
}
