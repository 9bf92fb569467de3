// Package history keeps the append-only log of observed outcomes.
package history

import (
	"time"

	"github.com/roundsight/predictor/models"
)

// Log is an ordered sequence of outcomes. Entries are immutable once
// appended; the only removals are the tail (undo) or everything (clear).
type Log struct {
	entries []models.HistoryEntry
}

// New creates a log seeded with previously persisted entries.
func New(entries []models.HistoryEntry) *Log {
	return &Log{entries: append([]models.HistoryEntry(nil), entries...)}
}

// Append records an outcome at the given time and returns the entry.
func (l *Log) Append(outcome models.Outcome, at time.Time) models.HistoryEntry {
	entry := models.HistoryEntry{Result: outcome, Timestamp: at}
	l.entries = append(l.entries, entry)
	return entry
}

// RemoveLast drops the most recent entry. False when the log is empty.
func (l *Log) RemoveLast() bool {
	if len(l.entries) == 0 {
		return false
	}
	l.entries = l.entries[:len(l.entries)-1]
	return true
}

// Clear empties the log.
func (l *Log) Clear() {
	l.entries = nil
}

// Len returns the number of recorded outcomes.
func (l *Log) Len() int {
	return len(l.entries)
}

// Window returns the results of the most recent n entries, oldest first.
func (l *Log) Window(n int) []models.Outcome {
	start := len(l.entries) - n
	if start < 0 {
		start = 0
	}
	out := make([]models.Outcome, 0, len(l.entries)-start)
	for _, e := range l.entries[start:] {
		out = append(out, e.Result)
	}
	return out
}

// Recent returns a copy of the most recent n entries, oldest first.
func (l *Log) Recent(n int) []models.HistoryEntry {
	start := len(l.entries) - n
	if start < 0 {
		start = 0
	}
	return append([]models.HistoryEntry(nil), l.entries[start:]...)
}

// All returns a copy of every entry, oldest first.
func (l *Log) All() []models.HistoryEntry {
	return append([]models.HistoryEntry(nil), l.entries...)
}
