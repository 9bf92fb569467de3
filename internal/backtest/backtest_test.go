package backtest

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/roundsight/predictor/internal/config"
	"github.com/roundsight/predictor/models"
)

func TestRunAggregates(t *testing.T) {
	outcomes := []models.Outcome{
		models.Red, models.Red, models.Blue, models.Red, models.Blue,
		models.Blue, models.Tie, models.Red, models.Red, models.Blue,
	}

	results, err := Run(&config.Config{Mode: config.ModeAdaptive}, outcomes, zerolog.Nop())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if results.Outcomes != len(outcomes) {
		t.Errorf("Outcomes = %d, want %d", results.Outcomes, len(outcomes))
	}
	if results.Total != results.Hits+results.Misses {
		t.Errorf("Total %d != Hits %d + Misses %d", results.Total, results.Hits, results.Misses)
	}
	if results.HitRate < 0 || results.HitRate > 100 {
		t.Errorf("HitRate = %.2f out of [0,100]", results.HitRate)
	}
	if results.MaxConsecutiveHits > results.Hits {
		t.Errorf("MaxConsecutiveHits %d exceeds Hits %d", results.MaxConsecutiveHits, results.Hits)
	}
	if results.MaxConsecutiveMisses > results.Misses {
		t.Errorf("MaxConsecutiveMisses %d exceeds Misses %d", results.MaxConsecutiveMisses, results.Misses)
	}
	if results.PatternScores == nil {
		t.Error("PatternScores is nil")
	}
}

func TestRunRejectsShortSequences(t *testing.T) {
	outcomes := []models.Outcome{models.Red, models.Blue}

	if _, err := Run(&config.Config{Mode: config.ModeAdaptive}, outcomes, zerolog.Nop()); err == nil {
		t.Error("Run() with two outcomes returned nil error")
	}
}

func TestParseSequence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []models.Outcome
	}{
		{
			name:     "Single letters",
			input:    "r b t",
			expected: []models.Outcome{models.Red, models.Blue, models.Tie},
		},
		{
			name:     "Full names mixed case",
			input:    "Red BLUE tie",
			expected: []models.Outcome{models.Red, models.Blue, models.Tie},
		},
		{
			name:     "Comments and blank lines",
			input:    "# session from friday\nr r b\n\nb # trailing note\n",
			expected: []models.Outcome{models.Red, models.Red, models.Blue, models.Blue},
		},
		{
			name:     "Empty input",
			input:    "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSequence(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ParseSequence() error: %v", err)
			}
			if len(got) != len(tt.expected) {
				t.Fatalf("ParseSequence() = %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("ParseSequence()[%d] = %v, want %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestParseSequenceRejectsUnknownTokens(t *testing.T) {
	_, err := ParseSequence(strings.NewReader("r b\ngreen t"))
	if err == nil {
		t.Fatal("ParseSequence() with a bad token returned nil error")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error %q does not name the offending line", err)
	}
}
