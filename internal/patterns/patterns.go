// Package patterns scans a trailing window of outcomes for named shapes.
// Detection is a pure function of the window: every detector runs
// unconditionally and matches accumulate in declaration order.
package patterns

import (
	"fmt"

	"github.com/roundsight/predictor/models"
)

// DetectAdaptive runs the adaptive detector set: alternating,
// streak-end and 2x2.
func DetectAdaptive(results []models.Outcome) []models.PatternMatch {
	var matches []models.PatternMatch

	if m, ok := detectAlternating(results); ok {
		matches = append(matches, m)
	}
	if m, ok := detectStreakEnd(results); ok {
		matches = append(matches, m)
	}
	if m, ok := detectTwoByTwo(results); ok {
		matches = append(matches, m)
	}

	return matches
}

// DetectClassic runs the original detector set: streak, alternating,
// 2x2 and triple-repeat.
func DetectClassic(results []models.Outcome) []models.PatternMatch {
	var matches []models.PatternMatch

	if m, ok := detectStreak(results); ok {
		matches = append(matches, m)
	}
	if m, ok := detectAlternating(results); ok {
		matches = append(matches, m)
	}
	if m, ok := detectTwoByTwo(results); ok {
		matches = append(matches, m)
	}
	if m, ok := detectTripleRepeat(results); ok {
		matches = append(matches, m)
	}

	return matches
}

// runLength counts the run of identical outcomes ending at index end.
func runLength(results []models.Outcome, end int) int {
	length := 1
	for i := end - 1; i >= 0; i-- {
		if results[i] != results[end] {
			break
		}
		length++
	}
	return length
}

// detectStreak matches a run of length >= 2 ending at the last entry.
func detectStreak(results []models.Outcome) (models.PatternMatch, bool) {
	if len(results) < 2 {
		return models.PatternMatch{}, false
	}
	last := len(results) - 1
	length := runLength(results, last)
	if length < 2 {
		return models.PatternMatch{}, false
	}
	return models.PatternMatch{
		Kind:        models.KindStreak,
		Color:       results[last],
		Length:      length,
		Description: fmt.Sprintf("%dx %s in a row", length, results[last]),
	}, true
}

// detectStreakEnd matches when the last outcome breaks a run of length
// >= 2, carrying the just-broken run's color and length.
func detectStreakEnd(results []models.Outcome) (models.PatternMatch, bool) {
	n := len(results)
	if n < 3 || results[n-1] == results[n-2] {
		return models.PatternMatch{}, false
	}
	length := runLength(results, n-2)
	if length < 2 {
		return models.PatternMatch{}, false
	}
	return models.PatternMatch{
		Kind:        models.KindStreakEnd,
		Color:       results[n-2],
		Length:      length,
		Description: fmt.Sprintf("streak of %dx %s just ended", length, results[n-2]),
	}, true
}

// detectAlternating matches when the two most recent outcomes differ.
func detectAlternating(results []models.Outcome) (models.PatternMatch, bool) {
	n := len(results)
	if n < 2 || results[n-1] == results[n-2] {
		return models.PatternMatch{}, false
	}
	return models.PatternMatch{
		Kind:        models.KindAlternating,
		Description: "alternating pattern (e.g. red blue red)",
	}, true
}

// detectTwoByTwo matches an AABB tail with A != B.
func detectTwoByTwo(results []models.Outcome) (models.PatternMatch, bool) {
	n := len(results)
	if n < 4 {
		return models.PatternMatch{}, false
	}
	a, b := results[n-4], results[n-2]
	if results[n-3] != a || results[n-1] != b || a == b {
		return models.PatternMatch{}, false
	}
	return models.PatternMatch{
		Kind:        models.KindTwoByTwo,
		Description: fmt.Sprintf("2x2 block pattern (%s %s %s %s)", a, a, b, b),
	}, true
}

// detectTripleRepeat matches three identical outcomes at the tail.
func detectTripleRepeat(results []models.Outcome) (models.PatternMatch, bool) {
	n := len(results)
	if n < 3 || results[n-1] != results[n-2] || results[n-2] != results[n-3] {
		return models.PatternMatch{}, false
	}
	return models.PatternMatch{
		Kind:        models.KindTripleRepeat,
		Description: fmt.Sprintf("triple repeat (%s %s %s)", results[n-1], results[n-1], results[n-1]),
	}, true
}
