// Package backtest replays a recorded outcome sequence through a fresh
// engine session and reports how the heuristics would have scored.
package backtest

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/roundsight/predictor/internal/config"
	"github.com/roundsight/predictor/internal/engine"
	"github.com/roundsight/predictor/internal/storage"
	"github.com/roundsight/predictor/models"
)

// Results aggregates a replay run.
type Results struct {
	Outcomes             int
	Total                int
	Hits                 int
	Misses               int
	HitRate              float64 // percent
	MaxConsecutiveHits   int
	MaxConsecutiveMisses int
	PatternScores        map[models.PatternKind]models.PatternStats
}

// Run feeds every outcome through a memory-backed session and tracks the
// running hit/miss streaks.
func Run(cfg *config.Config, outcomes []models.Outcome, logger zerolog.Logger) (*Results, error) {
	if len(outcomes) < minAnalysisInput {
		return nil, fmt.Errorf("insufficient outcomes for a replay, got %d", len(outcomes))
	}

	eng, err := engine.New(cfg, storage.NewMemory(), logger)
	if err != nil {
		return nil, err
	}

	results := &Results{Outcomes: len(outcomes)}
	consecutiveHits, consecutiveMisses := 0, 0

	for _, outcome := range outcomes {
		before := eng.Performance()
		if err := eng.RecordOutcome(outcome); err != nil {
			return nil, err
		}
		after := eng.Performance()

		switch {
		case after.Hits > before.Hits:
			consecutiveHits++
			consecutiveMisses = 0
		case after.Misses > before.Misses:
			consecutiveMisses++
			consecutiveHits = 0
		}
		if consecutiveHits > results.MaxConsecutiveHits {
			results.MaxConsecutiveHits = consecutiveHits
		}
		if consecutiveMisses > results.MaxConsecutiveMisses {
			results.MaxConsecutiveMisses = consecutiveMisses
		}
	}

	perf := eng.Performance()
	results.Total = perf.Total
	results.Hits = perf.Hits
	results.Misses = perf.Misses
	results.HitRate = eng.Accuracy()
	results.PatternScores = eng.PatternScores()

	return results, nil
}

// minAnalysisInput mirrors the engine's minimum history for analysis.
const minAnalysisInput = 3

// ParseSequence reads a whitespace-separated outcome list. Tokens are
// case-insensitive full names or single letters; '#' starts a comment
// running to end of line.
func ParseSequence(r io.Reader) ([]models.Outcome, error) {
	var outcomes []models.Outcome

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		for _, token := range strings.Fields(text) {
			outcome, err := parseToken(token)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			outcomes = append(outcomes, outcome)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading sequence: %w", err)
	}

	return outcomes, nil
}

func parseToken(token string) (models.Outcome, error) {
	switch strings.ToLower(token) {
	case "red", "r":
		return models.Red, nil
	case "blue", "b":
		return models.Blue, nil
	case "tie", "t":
		return models.Tie, nil
	default:
		return "", fmt.Errorf("unknown outcome token %q", token)
	}
}
