package analyze

import (
	"math"

	"github.com/roundsight/predictor/internal/learning"
	"github.com/roundsight/predictor/models"
)

// Prediction is the synthesized next-outcome call. An empty Color means
// no prediction.
type Prediction struct {
	Color      models.Outcome
	Confidence int
}

// PredictAdaptive selects the detected pattern whose kind carries the
// strictly highest learned priority and maps it to a directional call.
// Equal priorities resolve to the earliest match, so the detector
// declaration order (alternating, streak_end, 2x2) is the tie-break.
// No selected pattern, or a selection that would need the flip of a tie,
// yields no prediction.
func PredictAdaptive(results []models.Outcome, matches []models.PatternMatch, stats *learning.Stats) Prediction {
	if len(results) == 0 || len(matches) == 0 {
		return Prediction{}
	}

	selected := -1
	best := 0
	for i := range matches {
		matches[i].Priority = stats.Get(matches[i].Kind).Priority
		if matches[i].Priority > best {
			best = matches[i].Priority
			selected = i
		}
	}
	if selected < 0 {
		return Prediction{}
	}

	match := matches[selected]
	last := results[len(results)-1]

	var color models.Outcome
	var ok bool
	switch match.Kind {
	case models.KindAlternating, models.KindTwoByTwo:
		color, ok = last.Opposite()
	case models.KindStreakEnd:
		color, ok = match.Color.Opposite()
	}
	if !ok {
		return Prediction{}
	}

	confidence := 50
	if st := stats.Get(match.Kind); st.Total > 0 {
		confidence = int(math.Round(st.HitRatio() * 100))
	}

	return Prediction{Color: color, Confidence: confidence}
}

// PredictClassic applies the original fixed rules: bet against a streak
// of three or more, follow an alternation, and otherwise fall back to
// the flip of the last non-tie outcome with a stock 55% confidence.
func PredictClassic(results []models.Outcome, matches []models.PatternMatch) Prediction {
	if len(results) == 0 {
		return Prediction{}
	}
	last := results[len(results)-1]

	var streak, alternating *models.PatternMatch
	for i := range matches {
		switch {
		case matches[i].Kind == models.KindStreak && matches[i].Color != models.Tie && streak == nil:
			streak = &matches[i]
		case matches[i].Kind == models.KindAlternating && alternating == nil:
			alternating = &matches[i]
		}
	}

	if streak != nil && streak.Length >= 3 {
		color, _ := streak.Color.Opposite()
		confidence := 50 + streak.Length*8
		if confidence > 95 {
			confidence = 95
		}
		return Prediction{Color: color, Confidence: confidence}
	}

	if alternating != nil && last != models.Tie {
		color, _ := last.Opposite()
		return Prediction{Color: color, Confidence: 75}
	}

	// Fallback: flip of the most recent non-tie outcome.
	for i := len(results) - 1; i >= 0; i-- {
		if results[i] != models.Tie {
			color, _ := results[i].Opposite()
			return Prediction{Color: color, Confidence: 55}
		}
	}

	return Prediction{}
}
