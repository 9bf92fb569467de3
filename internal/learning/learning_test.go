package learning

import (
	"testing"

	"github.com/roundsight/predictor/models"
)

func pendingSignal(prediction models.Outcome, kinds ...models.PatternKind) *models.SignalEntry {
	entry := &models.SignalEntry{
		Prediction: prediction,
		Status:     models.SignalUnresolved,
	}
	for _, kind := range kinds {
		entry.Patterns = append(entry.Patterns, models.PatternMatch{Kind: kind})
	}
	return entry
}

func TestResolveCorrect(t *testing.T) {
	stats := NewStats(nil)
	var perf models.Performance

	entry := pendingSignal(models.Red, models.KindAlternating, models.KindStreakEnd)
	stats.Resolve(entry, models.Red, &perf)

	if entry.Status != models.SignalCorrect {
		t.Errorf("status = %v, want correct", entry.Status)
	}
	if perf.Total != 1 || perf.Hits != 1 || perf.Misses != 0 {
		t.Errorf("performance = %+v, want 1/1/0", perf)
	}
	for _, kind := range []models.PatternKind{models.KindAlternating, models.KindStreakEnd} {
		st := stats.Get(kind)
		if st.Total != 1 || st.Hits != 1 {
			t.Errorf("%s stats = %d/%d, want 1/1", kind, st.Hits, st.Total)
		}
	}
}

func TestResolveIncorrect(t *testing.T) {
	stats := NewStats(nil)
	var perf models.Performance

	entry := pendingSignal(models.Red, models.KindAlternating)
	stats.Resolve(entry, models.Blue, &perf)

	if entry.Status != models.SignalIncorrect {
		t.Errorf("status = %v, want incorrect", entry.Status)
	}
	if perf.Total != 1 || perf.Hits != 0 || perf.Misses != 1 {
		t.Errorf("performance = %+v, want 1/0/1", perf)
	}
	if st := stats.Get(models.KindAlternating); st.Total != 1 || st.Hits != 0 {
		t.Errorf("alternating stats = %d/%d, want 0/1", st.Hits, st.Total)
	}
}

func TestResolveIgnoresResolvedEntries(t *testing.T) {
	stats := NewStats(nil)
	var perf models.Performance

	entry := pendingSignal(models.Red, models.KindAlternating)
	entry.Status = models.SignalCorrect
	stats.Resolve(entry, models.Red, &perf)

	if perf.Total != 0 {
		t.Errorf("performance moved on an already-resolved entry: %+v", perf)
	}
}

// Every resolution moves total by exactly one and hits never overtake it.
func TestResolutionMonotonicity(t *testing.T) {
	stats := NewStats(nil)
	var perf models.Performance

	outcomes := []models.Outcome{models.Red, models.Blue, models.Red, models.Red, models.Blue, models.Tie}
	for i, outcome := range outcomes {
		before := stats.Get(models.KindAlternating)
		entry := pendingSignal(models.Red, models.KindAlternating)
		stats.Resolve(entry, outcome, &perf)
		after := stats.Get(models.KindAlternating)

		if after.Total != before.Total+1 {
			t.Fatalf("resolution %d: total moved %d -> %d, want +1", i, before.Total, after.Total)
		}
		if after.Hits > after.Total {
			t.Fatalf("resolution %d: hits %d exceed total %d", i, after.Hits, after.Total)
		}
	}
	if perf.Total != len(outcomes) || perf.Total != perf.Hits+perf.Misses {
		t.Errorf("performance = %+v, want total %d = hits+misses", perf, len(outcomes))
	}
}

func TestRecomputePriorities(t *testing.T) {
	tests := []struct {
		name     string
		stats    models.PatternStats
		expected int
	}{
		{name: "Fresh kind decays from the default", stats: models.PatternStats{Priority: DefaultPriority}, expected: 1},
		{name: "Floor holds at one", stats: models.PatternStats{Priority: 1}, expected: 1},
		{name: "Strong record earns its ratio", stats: models.PatternStats{Hits: 8, Total: 10, Priority: 1}, expected: 4},
		{name: "Perfect record caps at five", stats: models.PatternStats{Hits: 10, Total: 10, Priority: 1}, expected: 5},
		{name: "Weak record decays", stats: models.PatternStats{Hits: 4, Total: 10, Priority: 3}, expected: 2},
		{name: "Small sample decays regardless of ratio", stats: models.PatternStats{Hits: 4, Total: 4, Priority: 3}, expected: 2},
		{name: "Boundary sample count still decays", stats: models.PatternStats{Hits: 5, Total: 5, Priority: 3}, expected: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := NewStats(map[models.PatternKind]models.PatternStats{
				models.KindAlternating: tt.stats,
			})
			stats.RecomputePriorities()
			if got := stats.Get(models.KindAlternating).Priority; got != tt.expected {
				t.Errorf("priority = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	stats := NewStats(map[models.PatternKind]models.PatternStats{
		models.KindAlternating: {Hits: 3, Total: 9, Priority: 1},
	})
	stats.Reset()

	st := stats.Get(models.KindAlternating)
	if st.Hits != 0 || st.Total != 0 || st.Priority != DefaultPriority {
		t.Errorf("stats after reset = %+v, want zeroed with default priority", st)
	}
	if len(stats.Scores()) != 0 {
		t.Errorf("scores after reset = %v, want empty", stats.Scores())
	}
}
