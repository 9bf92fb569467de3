// Package learning resolves pending signals against observed outcomes
// and adapts per-pattern-kind priorities from the hit record.
package learning

import (
	"math"

	"github.com/roundsight/predictor/models"
)

const (
	// DefaultPriority is the weight of a kind with no resolution record.
	DefaultPriority = 2
	// minSamples is the resolution count a kind needs before its hit
	// ratio drives the priority.
	minSamples = 5
	// maxPriority caps the learned weight.
	maxPriority = 5
)

// Stats owns the per-kind resolution counters and priorities.
type Stats struct {
	scores map[models.PatternKind]models.PatternStats
}

// NewStats creates a store seeded with persisted scores.
func NewStats(scores map[models.PatternKind]models.PatternStats) *Stats {
	s := &Stats{scores: make(map[models.PatternKind]models.PatternStats, len(scores))}
	for kind, st := range scores {
		s.scores[kind] = st
	}
	return s
}

// Get returns the stats for a kind, defaulted when nothing is recorded.
func (s *Stats) Get(kind models.PatternKind) models.PatternStats {
	if st, ok := s.scores[kind]; ok {
		return st
	}
	return models.PatternStats{Priority: DefaultPriority}
}

// Scores returns a copy of every tracked kind's stats for persistence.
func (s *Stats) Scores() map[models.PatternKind]models.PatternStats {
	out := make(map[models.PatternKind]models.PatternStats, len(s.scores))
	for kind, st := range s.scores {
		out[kind] = st
	}
	return out
}

// Reset drops every counter back to first-run defaults.
func (s *Stats) Reset() {
	s.scores = make(map[models.PatternKind]models.PatternStats)
}

// RecomputePriorities refreshes every known kind just before selection:
// a kind with more than minSamples resolutions and a hit ratio above 0.5
// earns floor(min(5, ratio*5)); anything else decays by 1 toward the
// floor of 1.
func (s *Stats) RecomputePriorities() {
	for _, kind := range models.PatternKinds {
		st := s.Get(kind)
		if st.Total > minSamples && st.HitRatio() > 0.5 {
			st.Priority = int(math.Floor(math.Min(maxPriority, st.HitRatio()*maxPriority)))
		} else if st.Priority > 1 {
			st.Priority--
		} else {
			st.Priority = 1
		}
		s.scores[kind] = st
	}
}

// Resolve classifies a pending signal against the newly observed
// outcome. The performance counters move once per resolution; every
// pattern kind embedded in the signal gets a total attribution, and a
// hit attribution only when the prediction was correct.
func (s *Stats) Resolve(entry *models.SignalEntry, outcome models.Outcome, perf *models.Performance) {
	if entry == nil || entry.Status != models.SignalUnresolved {
		return
	}

	perf.Total++
	correct := entry.Prediction == outcome
	if correct {
		entry.Status = models.SignalCorrect
		perf.Hits++
	} else {
		entry.Status = models.SignalIncorrect
		perf.Misses++
	}

	for _, match := range entry.Patterns {
		st := s.Get(match.Kind)
		st.Total++
		if correct {
			st.Hits++
		}
		s.scores[match.Kind] = st
	}
}
