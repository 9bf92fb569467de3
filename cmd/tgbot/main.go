package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/roundsight/predictor/internal/config"
	"github.com/roundsight/predictor/internal/engine"
	"github.com/roundsight/predictor/internal/logging"
	"github.com/roundsight/predictor/internal/storage"
	"github.com/roundsight/predictor/models"
)

// Button labels
const (
	btnRed   = "🔴 Red"
	btnBlue  = "🔵 Blue"
	btnTie   = "🟡 Tie"
	btnUndo  = "↩️ Undo"
	btnClear = "🗑 Clear"
	btnStats = "📊 Stats"
)

var keyboard = tgbotapi.NewReplyKeyboard(
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(btnRed),
		tgbotapi.NewKeyboardButton(btnBlue),
		tgbotapi.NewKeyboardButton(btnTie),
	),
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(btnUndo),
		tgbotapi.NewKeyboardButton(btnClear),
		tgbotapi.NewKeyboardButton(btnStats),
	),
)

var outcomeEmoji = map[models.Outcome]string{
	models.Red:  "🔴",
	models.Blue: "🔵",
	models.Tie:  "🟡",
}

// session is one chat's engine plus a tap throttle. The limiter keeps a
// button mash from queueing up overlapping engine calls.
type session struct {
	eng     *engine.Engine
	limiter *rate.Limiter
}

// Map to store per-chat sessions
var sessions = make(map[int64]*session)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.New(logging.Options{Level: cfg.LogLevel, FilePath: cfg.LogFile})

	if cfg.TelegramToken == "" {
		logger.Fatal().Msg("TELEGRAM_BOT_TOKEN not set in environment")
	}

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize Telegram bot")
	}
	logger.Info().Str("username", bot.Self.UserName).Msg("Authorized on Telegram")

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := bot.GetUpdatesChan(updateConfig)

	for update := range updates {
		if update.Message == nil {
			continue
		}
		handleMessage(bot, cfg, logger, update.Message)
	}
}

// getSession returns the chat's engine, creating it on first contact.
func getSession(cfg *config.Config, logger zerolog.Logger, chatID int64) (*session, error) {
	if s, ok := sessions[chatID]; ok {
		return s, nil
	}

	store, err := openStore(cfg, chatID)
	if err != nil {
		return nil, err
	}

	eng, err := engine.New(cfg, store, logger.With().Int64("chat_id", chatID).Logger())
	if err != nil {
		store.Close()
		return nil, err
	}

	s := &session{
		eng:     eng,
		limiter: rate.NewLimiter(rate.Every(500*time.Millisecond), 3),
	}
	sessions[chatID] = s
	return s, nil
}

// openStore picks the per-chat storage location.
func openStore(cfg *config.Config, chatID int64) (storage.Store, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		return storage.NewPostgres(storage.ConnectionParams{
			Host:     cfg.DBHost,
			Port:     cfg.DBPort,
			User:     cfg.DBUser,
			Password: cfg.DBPass,
			DBName:   cfg.DBName,
			SSLMode:  cfg.DBSSLMode,
		}, fmt.Sprintf("tg:%d", chatID))
	case config.StorageMemory:
		return storage.NewMemory(), nil
	default:
		return storage.NewFile(filepath.Join(cfg.DataDir, fmt.Sprintf("session_%d.json", chatID))), nil
	}
}

func handleMessage(bot *tgbotapi.BotAPI, cfg *config.Config, logger zerolog.Logger, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	s, err := getSession(cfg, logger, chatID)
	if err != nil {
		logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to open session")
		reply(bot, logger, chatID, "Storage is unavailable, try again later.")
		return
	}

	if !s.limiter.Allow() {
		return // silently drop the excess tap
	}

	switch msg.Text {
	case "/start":
		reply(bot, logger, chatID,
			"Record each round with the buttons below and I will look for patterns and suggest the next outcome.")
	case btnRed:
		recordAndReply(bot, logger, s, chatID, models.Red)
	case btnBlue:
		recordAndReply(bot, logger, s, chatID, models.Blue)
	case btnTie:
		recordAndReply(bot, logger, s, chatID, models.Tie)
	case btnUndo:
		ok, err := s.eng.UndoLast()
		if err != nil {
			logger.Error().Err(err).Int64("chat_id", chatID).Msg("Undo save failed")
		}
		if !ok {
			reply(bot, logger, chatID, "Nothing to undo.")
			return
		}
		reply(bot, logger, chatID, "Last outcome removed.\n\n"+renderAnalysis(s.eng))
	case btnClear:
		if err := s.eng.ClearAll(); err != nil {
			logger.Error().Err(err).Int64("chat_id", chatID).Msg("Clear save failed")
		}
		reply(bot, logger, chatID, "History cleared.")
	case btnStats:
		reply(bot, logger, chatID, renderStats(s.eng))
	default:
		reply(bot, logger, chatID, "Use the buttons to record outcomes.")
	}
}

func recordAndReply(bot *tgbotapi.BotAPI, logger zerolog.Logger, s *session, chatID int64, outcome models.Outcome) {
	if err := s.eng.RecordOutcome(outcome); err != nil {
		logger.Error().Err(err).Int64("chat_id", chatID).Msg("Record failed")
		reply(bot, logger, chatID, "Could not record that outcome.")
		return
	}
	reply(bot, logger, chatID, renderAnalysis(s.eng))
}

func renderAnalysis(eng *engine.Engine) string {
	analysis := eng.Analysis()
	var b strings.Builder

	if analysis.Prediction != "" {
		fmt.Fprintf(&b, "Next round: %s %s (%d%%)\n",
			outcomeEmoji[analysis.Prediction], analysis.Prediction, analysis.Confidence)
	} else {
		b.WriteString("Next round: no prediction\n")
	}
	fmt.Fprintf(&b, "Risk: %s · Volatility: %s · %s\n",
		analysis.RiskLevel, analysis.Volatility, strings.ToUpper(string(analysis.Recommendation)))
	for _, p := range analysis.Patterns {
		fmt.Fprintf(&b, "• %s\n", p.Description)
	}

	entries := eng.RecentHistory(18)
	if len(entries) > 0 {
		b.WriteString("\n")
		for i := len(entries) - 1; i >= 0; i-- {
			b.WriteString(outcomeEmoji[entries[i].Result])
			if (len(entries)-i)%9 == 0 {
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

func renderStats(eng *engine.Engine) string {
	perf := eng.Performance()
	var b strings.Builder

	fmt.Fprintf(&b, "Accuracy: %.2f%%\n", eng.Accuracy())
	fmt.Fprintf(&b, "Predictions: %d (%d hits, %d misses)\n", perf.Total, perf.Hits, perf.Misses)

	sigs := eng.RecentSignals(engine.SignalDisplayLimit)
	if len(sigs) > 0 {
		b.WriteString("\nRecent signals:\n")
		for i := len(sigs) - 1; i >= 0; i-- {
			status := "…"
			switch sigs[i].Status {
			case models.SignalCorrect:
				status = "✅"
			case models.SignalIncorrect:
				status = "❌"
			}
			fmt.Fprintf(&b, "• %s %s (%d%%) %s\n",
				outcomeEmoji[sigs[i].Prediction], sigs[i].Prediction, sigs[i].Confidence, status)
		}
	}

	return b.String()
}

func reply(bot *tgbotapi.BotAPI, logger zerolog.Logger, chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	if _, err := bot.Send(msg); err != nil {
		logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send message")
	}
}
