// Package analyze scores the trailing window and synthesizes the next
// prediction from the detected patterns.
package analyze

import (
	"math"

	"github.com/roundsight/predictor/models"
)

// BaselineTieProbability is the theoretical tie share of a fair round.
const BaselineTieProbability = 0.027

// AssessRisk applies the ratio tests of the adaptive strategy: a tie
// ratio above three times the baseline (or three raw ties) is high risk,
// a color split further than 0.15 from even is medium.
func AssessRisk(results []models.Outcome) models.Level {
	if len(results) == 0 {
		return models.LevelLow
	}

	ties, reds, blues := 0, 0, 0
	for _, r := range results {
		switch r {
		case models.Tie:
			ties++
		case models.Red:
			reds++
		case models.Blue:
			blues++
		}
	}

	tieRatio := float64(ties) / float64(len(results))
	if tieRatio > 3*BaselineTieProbability || ties >= 3 {
		return models.LevelHigh
	}

	if reds+blues > 0 {
		redRatio := float64(reds) / float64(reds+blues)
		if math.Abs(redRatio-0.5) > 0.15 {
			return models.LevelMedium
		}
	}

	return models.LevelLow
}

// ScoreRisk is the classic additive risk score: long streaks and
// consecutive tail ties raise it.
func ScoreRisk(results []models.Outcome) models.Level {
	if len(results) == 0 {
		return models.LevelLow
	}

	score := 0

	maxStreak, streak := 1, 1
	for i := 1; i < len(results); i++ {
		if results[i] == results[i-1] {
			streak++
			if streak > maxStreak {
				maxStreak = streak
			}
		} else {
			streak = 1
		}
	}
	switch {
	case maxStreak >= 5:
		score += 40
	case maxStreak >= 4:
		score += 25
	case maxStreak >= 3:
		score += 10
	}

	tieTail := 0
	for i := len(results) - 1; i >= 0 && results[i] == models.Tie; i-- {
		tieTail++
	}
	if tieTail >= 2 {
		score += 30
	}

	switch {
	case score >= 50:
		return models.LevelHigh
	case score >= 25:
		return models.LevelMedium
	default:
		return models.LevelLow
	}
}

// Volatility measures the adjacent-pair change rate of the window. A low
// change rate means long streaks and reads as high volatility risk; a
// high change rate means fast alternation and reads as low.
func Volatility(results []models.Outcome) models.Level {
	if len(results) < 2 {
		return models.LevelMedium
	}

	changes := 0
	for i := 1; i < len(results); i++ {
		if results[i] != results[i-1] {
			changes++
		}
	}
	rate := float64(changes) / float64(len(results)-1)

	switch {
	case rate < 0.2:
		return models.LevelHigh
	case rate > 0.6:
		return models.LevelLow
	default:
		return models.LevelMedium
	}
}

// DetectManipulation is the classic volatility signal: a heavy tie share
// or two consecutive same-color triples (AAABBB) at the tail.
func DetectManipulation(results []models.Outcome) models.Level {
	if len(results) == 0 {
		return models.LevelLow
	}

	score := 0

	ties := 0
	for _, r := range results {
		if r == models.Tie {
			ties++
		}
	}
	if float64(ties)/float64(len(results)) > 0.25 {
		score += 30
	}

	if n := len(results); n >= 6 {
		tail := results[n-6:]
		if tail[0] == tail[1] && tail[1] == tail[2] &&
			tail[3] == tail[4] && tail[4] == tail[5] &&
			tail[0] != tail[3] {
			score += 25
		}
	}

	switch {
	case score >= 40:
		return models.LevelHigh
	case score >= 20:
		return models.LevelMedium
	default:
		return models.LevelLow
	}
}

// Recommend maps the analysis to betting advice: avoid on any high
// signal, bet when a pattern is present under low risk, otherwise
// observe.
func Recommend(risk, volatility models.Level, matches []models.PatternMatch) models.Recommendation {
	if risk == models.LevelHigh || volatility == models.LevelHigh {
		return models.RecommendAvoid
	}
	if len(matches) > 0 && risk == models.LevelLow {
		return models.RecommendBet
	}
	return models.RecommendObserve
}
