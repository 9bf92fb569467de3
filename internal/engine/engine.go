// Package engine owns one analysis session: it records outcomes,
// resolves pending signals, rebuilds the analysis snapshot and persists
// the whole state after every mutation.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/roundsight/predictor/internal/analyze"
	"github.com/roundsight/predictor/internal/config"
	"github.com/roundsight/predictor/internal/history"
	"github.com/roundsight/predictor/internal/learning"
	"github.com/roundsight/predictor/internal/patterns"
	"github.com/roundsight/predictor/internal/signals"
	"github.com/roundsight/predictor/internal/storage"
	"github.com/roundsight/predictor/models"
)

// ErrInvalidOutcome rejects input outside the three-value enumeration.
var ErrInvalidOutcome = errors.New("invalid outcome")

// Display limits for the trailing read accessors.
const (
	HistoryDisplayLimit = 90
	SignalDisplayLimit  = 5
)

// minAnalysisLen is the history size below which no analysis runs.
const minAnalysisLen = 3

// Engine is a single-session analyzer. All operations are synchronous;
// concurrent use of one Engine is unsupported.
type Engine struct {
	mode     string
	window   int
	store    storage.Store
	history  *history.Log
	ledger   *signals.Ledger
	stats    *learning.Stats
	perf     models.Performance
	analysis models.AnalysisSnapshot
	logger   zerolog.Logger
	now      func() time.Time
}

// New loads the persisted snapshot and builds a session around it. A
// malformed snapshot is downgraded to a warning and an empty start.
func New(cfg *config.Config, store storage.Store, logger zerolog.Logger) (*Engine, error) {
	snap, err := store.Load()
	if err != nil {
		logger.Warn().Err(err).Msg("Stored snapshot unreadable, starting from empty state")
		snap = models.EmptySnapshot()
	}

	e := &Engine{
		mode:    cfg.Mode,
		window:  cfg.Window(),
		store:   store,
		history: history.New(snap.History),
		ledger:  signals.New(snap.Signals),
		stats:   learning.NewStats(snap.PatternScores),
		perf:    snap.Performance,
		logger:  logger.With().Str("component", "engine").Logger(),
		now:     time.Now,
	}
	e.analyze()
	return e, nil
}

// RecordOutcome is the single entry point for a new observation: resolve
// the pending signal, append to history, rebuild the analysis and record
// a new signal when a prediction was produced.
func (e *Engine) RecordOutcome(outcome models.Outcome) error {
	if !outcome.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidOutcome, outcome)
	}

	e.stats.Resolve(e.ledger.Pending(), outcome, &e.perf)

	entry := e.history.Append(outcome, e.now())
	e.analyze()

	if e.analysis.Prediction != "" {
		e.ledger.Append(models.SignalEntry{
			Time:       entry.Timestamp,
			Patterns:   append([]models.PatternMatch(nil), e.analysis.Patterns...),
			Prediction: e.analysis.Prediction,
			Confidence: e.analysis.Confidence,
			Status:     models.SignalUnresolved,
		})
	}

	e.logger.Debug().
		Str("outcome", string(outcome)).
		Str("prediction", string(e.analysis.Prediction)).
		Int("confidence", e.analysis.Confidence).
		Msg("Outcome recorded")

	return e.persist()
}

// UndoLast removes the most recent outcome and, when the tail signal is
// still unresolved, that signal too. Counters already moved by an
// earlier resolution stay as they are.
func (e *Engine) UndoLast() (bool, error) {
	if !e.history.RemoveLast() {
		return false, nil
	}
	e.ledger.RemoveLastIfUnresolved()
	e.analyze()

	if err := e.persist(); err != nil {
		return true, err
	}
	return true, nil
}

// ClearAll resets every entity to first-run state.
func (e *Engine) ClearAll() error {
	e.history.Clear()
	e.ledger.Clear()
	e.stats.Reset()
	e.perf = models.Performance{}
	e.analysis = models.EmptyAnalysis()
	return e.persist()
}

// Analysis returns the current snapshot.
func (e *Engine) Analysis() models.AnalysisSnapshot {
	return e.analysis
}

// Accuracy is the overall hit percentage, 0 before any resolution.
func (e *Engine) Accuracy() float64 {
	if e.perf.Total == 0 {
		return 0.0
	}
	return float64(e.perf.Hits) / float64(e.perf.Total) * 100
}

// Performance returns the aggregate counters.
func (e *Engine) Performance() models.Performance {
	return e.perf
}

// PatternScores returns the learned per-kind stats.
func (e *Engine) PatternScores() map[models.PatternKind]models.PatternStats {
	return e.stats.Scores()
}

// RecentHistory returns up to the display limit of trailing entries.
func (e *Engine) RecentHistory(n int) []models.HistoryEntry {
	if n <= 0 || n > HistoryDisplayLimit {
		n = HistoryDisplayLimit
	}
	return e.history.Recent(n)
}

// RecentSignals returns up to the display limit of trailing signals.
func (e *Engine) RecentSignals(n int) []models.SignalEntry {
	if n <= 0 || n > SignalDisplayLimit {
		n = SignalDisplayLimit
	}
	return e.ledger.Recent(n)
}

// HistoryLen returns the number of recorded outcomes.
func (e *Engine) HistoryLen() int {
	return e.history.Len()
}

// SignalLen returns the number of recorded signals.
func (e *Engine) SignalLen() int {
	return e.ledger.Len()
}

// Close flushes the state and releases the store.
func (e *Engine) Close() error {
	if err := e.persist(); err != nil {
		e.store.Close()
		return err
	}
	return e.store.Close()
}

// analyze rebuilds the snapshot wholesale from the trailing window.
func (e *Engine) analyze() {
	if e.history.Len() < minAnalysisLen {
		e.analysis = models.EmptyAnalysis()
		return
	}

	window := e.history.Window(e.window)

	var (
		matches    []models.PatternMatch
		risk, vol  models.Level
		prediction analyze.Prediction
	)

	if e.mode == config.ModeClassic {
		matches = patterns.DetectClassic(window)
		risk = analyze.ScoreRisk(window)
		vol = analyze.DetectManipulation(window)
		prediction = analyze.PredictClassic(window, matches)
	} else {
		matches = patterns.DetectAdaptive(window)
		risk = analyze.AssessRisk(window)
		vol = analyze.Volatility(window)
		e.stats.RecomputePriorities()
		prediction = analyze.PredictAdaptive(window, matches, e.stats)
	}

	e.analysis = models.AnalysisSnapshot{
		Patterns:       matches,
		RiskLevel:      risk,
		Volatility:     vol,
		Prediction:     prediction.Color,
		Confidence:     prediction.Confidence,
		Recommendation: analyze.Recommend(risk, vol, matches),
	}
}

// persist saves the whole state through the store.
func (e *Engine) persist() error {
	snap := &models.Snapshot{
		History:       e.history.All(),
		Signals:       e.ledger.All(),
		Performance:   e.perf,
		PatternScores: e.stats.Scores(),
	}
	if err := e.store.Save(snap); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}
