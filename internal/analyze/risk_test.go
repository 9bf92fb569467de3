package analyze

import (
	"testing"

	"github.com/roundsight/predictor/models"
)

func seq(s string) []models.Outcome {
	var out []models.Outcome
	for _, c := range s {
		switch c {
		case 'r':
			out = append(out, models.Red)
		case 'b':
			out = append(out, models.Blue)
		case 't':
			out = append(out, models.Tie)
		}
	}
	return out
}

func TestScoreRisk(t *testing.T) {
	tests := []struct {
		name     string
		window   string
		expected models.Level
	}{
		{name: "Calm window", window: "rbrbrb", expected: models.LevelLow},
		{name: "Triple streak scores low", window: "bbrrr", expected: models.LevelLow},
		{name: "Quad streak scores medium", window: "brrrr", expected: models.LevelMedium},
		{name: "Five streak plus tail ties scores high", window: "rrrrrtt", expected: models.LevelHigh},
		{name: "Tail ties alone score medium", window: "rbtt", expected: models.LevelMedium},
		{name: "Empty window is low", window: "", expected: models.LevelLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScoreRisk(seq(tt.window)); got != tt.expected {
				t.Errorf("ScoreRisk(%q) = %v, want %v", tt.window, got, tt.expected)
			}
		})
	}
}

func TestAssessRisk(t *testing.T) {
	tests := []struct {
		name     string
		window   string
		expected models.Level
	}{
		{name: "Even split no ties", window: "rrrbbb", expected: models.LevelLow},
		{name: "Heavy color bias", window: "rrrrrb", expected: models.LevelMedium},
		{name: "Three raw ties", window: "tttrrrbbb", expected: models.LevelHigh},
		{name: "Tie ratio above threshold", window: "trbrbrbrbr", expected: models.LevelHigh},
		{name: "Empty window is low", window: "", expected: models.LevelLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AssessRisk(seq(tt.window)); got != tt.expected {
				t.Errorf("AssessRisk(%q) = %v, want %v", tt.window, got, tt.expected)
			}
		})
	}
}

func TestVolatility(t *testing.T) {
	tests := []struct {
		name     string
		window   string
		expected models.Level
	}{
		{name: "No transitions reads high", window: "rrrrrrrrrr", expected: models.LevelHigh},
		{name: "Full alternation reads low", window: "rbrbrbrb", expected: models.LevelLow},
		{name: "Chunked window reads medium", window: "rrbbrrbb", expected: models.LevelMedium},
		{name: "Too short defaults to medium", window: "r", expected: models.LevelMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Volatility(seq(tt.window)); got != tt.expected {
				t.Errorf("Volatility(%q) = %v, want %v", tt.window, got, tt.expected)
			}
		})
	}
}

func TestDetectManipulation(t *testing.T) {
	tests := []struct {
		name     string
		window   string
		expected models.Level
	}{
		{name: "Two same-color triples score medium", window: "rrrbbb", expected: models.LevelMedium},
		{name: "Tie share plus triples score high", window: "tttrrr", expected: models.LevelHigh},
		{name: "Quiet window scores low", window: "rbrbrb", expected: models.LevelLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectManipulation(seq(tt.window)); got != tt.expected {
				t.Errorf("DetectManipulation(%q) = %v, want %v", tt.window, got, tt.expected)
			}
		})
	}
}

func TestRecommend(t *testing.T) {
	match := []models.PatternMatch{{Kind: models.KindAlternating}}

	tests := []struct {
		name     string
		risk     models.Level
		vol      models.Level
		matches  []models.PatternMatch
		expected models.Recommendation
	}{
		{name: "High risk avoids", risk: models.LevelHigh, vol: models.LevelLow, matches: match, expected: models.RecommendAvoid},
		{name: "High volatility avoids", risk: models.LevelLow, vol: models.LevelHigh, matches: match, expected: models.RecommendAvoid},
		{name: "Pattern under low risk bets", risk: models.LevelLow, vol: models.LevelMedium, matches: match, expected: models.RecommendBet},
		{name: "No pattern observes", risk: models.LevelLow, vol: models.LevelLow, matches: nil, expected: models.RecommendObserve},
		{name: "Medium risk observes", risk: models.LevelMedium, vol: models.LevelLow, matches: match, expected: models.RecommendObserve},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Recommend(tt.risk, tt.vol, tt.matches); got != tt.expected {
				t.Errorf("Recommend(%v, %v) = %v, want %v", tt.risk, tt.vol, got, tt.expected)
			}
		})
	}
}
