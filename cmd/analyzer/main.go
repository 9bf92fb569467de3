package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/roundsight/predictor/internal/backtest"
	"github.com/roundsight/predictor/internal/config"
	"github.com/roundsight/predictor/internal/engine"
	"github.com/roundsight/predictor/internal/logging"
	"github.com/roundsight/predictor/internal/storage"
	"github.com/roundsight/predictor/models"
)

var outcomeEmoji = map[models.Outcome]string{
	models.Red:  "🔴",
	models.Blue: "🔵",
	models.Tie:  "🟡",
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}

	logger := logging.New(logging.Options{Level: cfg.LogLevel, FilePath: cfg.LogFile})

	if cfg.ReplayFile != "" {
		if err := runReplay(cfg, logger); err != nil {
			logger.Fatal().Err(err).Msg("Replay failed")
		}
		return
	}

	store, err := openStore(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open storage")
	}

	eng, err := engine.New(cfg, store, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize engine")
	}
	defer eng.Close()

	logger.Info().
		Str("mode", cfg.Mode).
		Str("storage", cfg.StorageDriver).
		Msg("Starting outcome analyzer")

	runSession(eng)
}

// openStore builds the configured Store implementation.
func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		return storage.NewPostgres(storage.ConnectionParams{
			Host:     cfg.DBHost,
			Port:     cfg.DBPort,
			User:     cfg.DBUser,
			Password: cfg.DBPass,
			DBName:   cfg.DBName,
			SSLMode:  cfg.DBSSLMode,
		}, "console")
	case config.StorageMemory:
		return storage.NewMemory(), nil
	default:
		return storage.NewFile(cfg.DataFile), nil
	}
}

// runReplay feeds a recorded sequence file through a fresh session and
// prints the score card.
func runReplay(cfg *config.Config, logger zerolog.Logger) error {
	f, err := os.Open(cfg.ReplayFile)
	if err != nil {
		return fmt.Errorf("opening replay file: %w", err)
	}
	defer f.Close()

	outcomes, err := backtest.ParseSequence(f)
	if err != nil {
		return err
	}

	results, err := backtest.Run(cfg, outcomes, logger)
	if err != nil {
		return err
	}

	fmt.Printf("\n===== REPLAY RESULTS =====\n")
	fmt.Printf("Outcomes replayed: %d\n", results.Outcomes)
	fmt.Printf("Predictions made: %d\n", results.Total)
	fmt.Printf("Hits: %d  Misses: %d  Hit rate: %.2f%%\n", results.Hits, results.Misses, results.HitRate)
	fmt.Printf("Max consecutive hits: %d\n", results.MaxConsecutiveHits)
	fmt.Printf("Max consecutive misses: %d\n", results.MaxConsecutiveMisses)

	kinds := make([]string, 0, len(results.PatternScores))
	for kind := range results.PatternScores {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)

	fmt.Println("\nPattern record:")
	for _, kind := range kinds {
		st := results.PatternScores[models.PatternKind(kind)]
		fmt.Printf("- %s: %d/%d (priority %d)\n", kind, st.Hits, st.Total, st.Priority)
	}

	return nil
}

// runSession is the interactive loop: one command per line, full
// re-render after every mutation.
func runSession(eng *engine.Engine) {
	printHelp()
	printState(eng)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}

		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "red", "r":
			record(eng, models.Red)
		case "blue", "b":
			record(eng, models.Blue)
		case "tie", "t":
			record(eng, models.Tie)
		case "undo", "u":
			ok, err := eng.UndoLast()
			if err != nil {
				fmt.Println("save failed:", err)
			}
			if !ok {
				fmt.Println("nothing to undo")
				continue
			}
			printState(eng)
		case "clear", "c":
			if err := eng.ClearAll(); err != nil {
				fmt.Println("save failed:", err)
			}
			printState(eng)
		case "stats", "s":
			printState(eng)
		case "help", "h":
			printHelp()
		case "quit", "q", "exit":
			return
		case "":
		default:
			fmt.Println("unknown command, type 'help'")
		}
	}
}

func record(eng *engine.Engine, outcome models.Outcome) {
	if err := eng.RecordOutcome(outcome); err != nil {
		fmt.Println("record failed:", err)
		return
	}
	printState(eng)
}

func printHelp() {
	fmt.Println("commands: red|r, blue|b, tie|t, undo|u, clear|c, stats|s, help|h, quit|q")
}

func printState(eng *engine.Engine) {
	analysis := eng.Analysis()

	fmt.Println("\n--- Analysis ---")
	if analysis.Prediction != "" {
		fmt.Printf("Next round: %s %s (confidence %d%%)\n",
			outcomeEmoji[analysis.Prediction], analysis.Prediction, analysis.Confidence)
	} else {
		fmt.Println("Next round: no prediction")
	}
	fmt.Printf("Risk: %s  Volatility: %s  Recommendation: %s\n",
		analysis.RiskLevel, analysis.Volatility, analysis.Recommendation)
	for _, p := range analysis.Patterns {
		fmt.Printf("- %s\n", p.Description)
	}

	perf := eng.Performance()
	fmt.Printf("\nPerformance: %d predictions, %d hits, %.2f%% accuracy\n",
		perf.Total, perf.Hits, eng.Accuracy())

	entries := eng.RecentHistory(engine.HistoryDisplayLimit)
	if len(entries) > 0 {
		fmt.Println("\nHistory (newest first):")
		for i := len(entries) - 1; i >= 0; i -= 9 {
			var row []string
			for j := i; j > i-9 && j >= 0; j-- {
				row = append(row, outcomeEmoji[entries[j].Result])
			}
			fmt.Println(strings.Join(row, " "))
		}
	}

	sigs := eng.RecentSignals(engine.SignalDisplayLimit)
	if len(sigs) > 0 {
		fmt.Println("\nRecent signals (newest first):")
		for i := len(sigs) - 1; i >= 0; i-- {
			status := "…"
			switch sigs[i].Status {
			case models.SignalCorrect:
				status = "✅"
			case models.SignalIncorrect:
				status = "❌"
			}
			fmt.Printf("- %s %s (%d%%) %s\n",
				outcomeEmoji[sigs[i].Prediction], sigs[i].Prediction, sigs[i].Confidence, status)
		}
	}
	fmt.Println()
}
