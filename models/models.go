package models

import (
	"time"
)

// Outcome is one round result: one of the two colors or a tie.
type Outcome string

const (
	Red  Outcome = "red"
	Blue Outcome = "blue"
	Tie  Outcome = "tie"
)

// Valid reports whether o is one of the three known outcomes.
func (o Outcome) Valid() bool {
	return o == Red || o == Blue || o == Tie
}

// Opposite returns the flipped color. A tie has no opposite.
func (o Outcome) Opposite() (Outcome, bool) {
	switch o {
	case Red:
		return Blue, true
	case Blue:
		return Red, true
	default:
		return "", false
	}
}

// PatternKind identifies a detector.
type PatternKind string

const (
	KindStreak       PatternKind = "streak"
	KindStreakEnd    PatternKind = "streak_end"
	KindAlternating  PatternKind = "alternating"
	KindTwoByTwo     PatternKind = "2x2"
	KindTripleRepeat PatternKind = "triple_rep"
)

// PatternKinds lists every known kind in priority tie-break order.
var PatternKinds = []PatternKind{
	KindAlternating,
	KindStreakEnd,
	KindTwoByTwo,
	KindStreak,
	KindTripleRepeat,
}

// PatternMatch is one detected shape in the trailing window. Color and
// Length are only set for kinds that carry them (streak, streak_end).
type PatternMatch struct {
	Kind        PatternKind `json:"type"`
	Color       Outcome     `json:"color,omitempty"`
	Length      int         `json:"length,omitempty"`
	Description string      `json:"description"`
	Priority    int         `json:"priority,omitempty"`
}

// PatternStats tracks the resolution record of one pattern kind.
// Hits never exceeds Total.
type PatternStats struct {
	Hits     int `json:"hits"`
	Total    int `json:"total"`
	Priority int `json:"priority"`
}

// HitRatio is Hits/Total, 0 when nothing has been resolved yet.
func (s PatternStats) HitRatio() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Total)
}

// Level is a coarse three-step severity used for risk and volatility.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Recommendation is the betting advice derived from the analysis.
type Recommendation string

const (
	RecommendBet     Recommendation = "bet"
	RecommendObserve Recommendation = "observe"
	RecommendAvoid   Recommendation = "avoid"
)

// HistoryEntry is one observed outcome with its wall-clock time.
type HistoryEntry struct {
	Result    Outcome   `json:"result"`
	Timestamp time.Time `json:"timestamp"`
}

// AnalysisSnapshot is the derived view over the trailing window. It is
// rebuilt wholesale after every history mutation and never persisted.
type AnalysisSnapshot struct {
	Patterns       []PatternMatch `json:"patterns"`
	RiskLevel      Level          `json:"risk_level"`
	Volatility     Level          `json:"volatility"`
	Prediction     Outcome        `json:"prediction,omitempty"` // empty means no prediction
	Confidence     int            `json:"confidence"`           // 0-100
	Recommendation Recommendation `json:"recommendation"`
}

// EmptyAnalysis is the snapshot for a history too short to analyze.
func EmptyAnalysis() AnalysisSnapshot {
	return AnalysisSnapshot{
		RiskLevel:      LevelLow,
		Volatility:     LevelLow,
		Confidence:     0,
		Recommendation: RecommendObserve,
	}
}

// SignalStatus is the resolution state of a recorded prediction.
type SignalStatus string

const (
	SignalUnresolved SignalStatus = "unresolved"
	SignalCorrect    SignalStatus = "correct"
	SignalIncorrect  SignalStatus = "incorrect"
)

// SignalEntry is one recorded prediction awaiting (or past) resolution.
// Patterns is the match list frozen at creation time for audit.
type SignalEntry struct {
	Time       time.Time      `json:"time"`
	Patterns   []PatternMatch `json:"patterns"`
	Prediction Outcome        `json:"prediction"`
	Confidence int            `json:"confidence"`
	Status     SignalStatus   `json:"status"`
}

// Performance aggregates prediction outcomes. Total = Hits + Misses.
type Performance struct {
	Total  int `json:"total"`
	Hits   int `json:"hits"`
	Misses int `json:"misses"`
}

// Snapshot is the persisted whole-state document.
type Snapshot struct {
	History       []HistoryEntry               `json:"history"`
	Signals       []SignalEntry                `json:"signals"`
	Performance   Performance                  `json:"performance"`
	PatternScores map[PatternKind]PatternStats `json:"pattern_scores"`
}

// EmptySnapshot is the first-run state.
func EmptySnapshot() *Snapshot {
	return &Snapshot{
		PatternScores: make(map[PatternKind]PatternStats),
	}
}
