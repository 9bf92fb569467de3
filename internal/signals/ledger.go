// Package signals keeps the ordered record of predictions made and their
// resolution state.
package signals

import (
	"github.com/roundsight/predictor/models"
)

// Ledger holds every SignalEntry in creation order. By construction at
// most one entry, the most recent, is unresolved at a time.
type Ledger struct {
	entries []models.SignalEntry
}

// New creates a ledger seeded with persisted entries.
func New(entries []models.SignalEntry) *Ledger {
	return &Ledger{entries: append([]models.SignalEntry(nil), entries...)}
}

// Append records a new pending entry.
func (l *Ledger) Append(entry models.SignalEntry) {
	l.entries = append(l.entries, entry)
}

// Pending returns the most recent unresolved entry, or nil. The pointer
// stays valid until the next Append/Remove/Clear.
func (l *Ledger) Pending() *models.SignalEntry {
	for i := len(l.entries) - 1; i >= 0; i-- {
		if l.entries[i].Status == models.SignalUnresolved {
			return &l.entries[i]
		}
	}
	return nil
}

// RemoveLastIfUnresolved drops the tail entry when it is still pending.
// Resolved entries stay: their outcome already moved the counters.
func (l *Ledger) RemoveLastIfUnresolved() bool {
	n := len(l.entries)
	if n == 0 || l.entries[n-1].Status != models.SignalUnresolved {
		return false
	}
	l.entries = l.entries[:n-1]
	return true
}

// Clear empties the ledger.
func (l *Ledger) Clear() {
	l.entries = nil
}

// Len returns the number of recorded signals.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Recent returns a copy of the most recent n entries, oldest first.
func (l *Ledger) Recent(n int) []models.SignalEntry {
	start := len(l.entries) - n
	if start < 0 {
		start = 0
	}
	return append([]models.SignalEntry(nil), l.entries[start:]...)
}

// All returns a copy of every entry, oldest first.
func (l *Ledger) All() []models.SignalEntry {
	return append([]models.SignalEntry(nil), l.entries...)
}
