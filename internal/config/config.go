package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Analysis strategy names.
const (
	ModeAdaptive = "adaptive"
	ModeClassic  = "classic"
)

// Storage driver names.
const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds all application configuration
type Config struct {
	Mode          string `env:"ANALYZER_MODE" envDefault:"adaptive"` // adaptive or classic
	WindowSize    int    `env:"WINDOW_SIZE" envDefault:"0"`          // 0 = strategy default
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"file"`
	DataFile      string `env:"DATA_FILE" envDefault:"analyzer_data.json"`
	DataDir       string `env:"DATA_DIR" envDefault:"."` // per-chat session files for the bot
	ReplayFile    string `env:"REPLAY_FILE" envDefault:""`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile       string `env:"LOG_FILE" envDefault:""` // empty = console only

	// PostgreSQL connection (STORAGE_DRIVER=postgres)
	DBHost    string `env:"DB_HOST" envDefault:"localhost"`
	DBPort    string `env:"DB_PORT" envDefault:"5432"`
	DBUser    string `env:"DB_USER" envDefault:"postgres"`
	DBPass    string `env:"DB_PASSWORD" envDefault:""`
	DBName    string `env:"DB_NAME" envDefault:"predictor"`
	DBSSLMode string `env:"DB_SSLMODE" envDefault:"disable"`

	TelegramToken string `env:"TELEGRAM_BOT_TOKEN" envDefault:""`
}

// Load initializes configuration from environment variables
func Load() (*Config, error) {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}

	var cfg Config

	cfg.Mode = getEnvWithDefault("ANALYZER_MODE", ModeAdaptive)
	cfg.WindowSize = getEnvIntWithDefault("WINDOW_SIZE", 0)
	cfg.StorageDriver = getEnvWithDefault("STORAGE_DRIVER", StorageFile)
	cfg.DataFile = getEnvWithDefault("DATA_FILE", "analyzer_data.json")
	cfg.DataDir = getEnvWithDefault("DATA_DIR", ".")
	cfg.ReplayFile = os.Getenv("REPLAY_FILE")
	cfg.LogLevel = getEnvWithDefault("LOG_LEVEL", "info")
	cfg.LogFile = os.Getenv("LOG_FILE")

	cfg.DBHost = getEnvWithDefault("DB_HOST", "localhost")
	cfg.DBPort = getEnvWithDefault("DB_PORT", "5432")
	cfg.DBUser = getEnvWithDefault("DB_USER", "postgres")
	cfg.DBPass = os.Getenv("DB_PASSWORD")
	cfg.DBName = getEnvWithDefault("DB_NAME", "predictor")
	cfg.DBSSLMode = getEnvWithDefault("DB_SSLMODE", "disable")

	cfg.TelegramToken = os.Getenv("TELEGRAM_BOT_TOKEN")

	return &cfg, nil
}

// Window returns the trailing-window size for the configured strategy.
func (c *Config) Window() int {
	if c.WindowSize > 0 {
		return c.WindowSize
	}
	if c.Mode == ModeClassic {
		return 27
	}
	return 90
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
