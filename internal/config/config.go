package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Shuffle modes for the practice order
const (
	ShuffleUniform = "uniform"
	ShuffleLegacy  = "legacy"
)

// Config holds all application configuration
type Config struct {
	BotToken       string
	StorageKey     string
	QuizShuffle    string
	ImportMaxBytes int64
	Database       DatabaseConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg, err := loadCommon()
	if err != nil {
		return nil, err
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}

	return cfg, nil
}

// LoadStorage reads only the settings needed to reach the card storage.
// Used by tools that do not talk to Telegram.
func LoadStorage() (*Config, error) {
	return loadCommon()
}

func loadCommon() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	maxBytes, err := strconv.ParseInt(getEnv("IMPORT_MAX_BYTES", "1048576"), 10, 64)
	if err != nil || maxBytes <= 0 {
		return nil, fmt.Errorf("IMPORT_MAX_BYTES must be a positive integer")
	}

	cfg := &Config{
		BotToken:       os.Getenv("BOT_TOKEN"),
		StorageKey:     getEnv("STORAGE_KEY", "cardsData"),
		QuizShuffle:    getEnv("QUIZ_SHUFFLE", ShuffleUniform),
		ImportMaxBytes: maxBytes,
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "cardbot"),
			User:     getEnv("DB_USER", "cardbot"),
			Password: os.Getenv("DB_PASSWORD"),
		},
	}

	if cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	if cfg.QuizShuffle != ShuffleUniform && cfg.QuizShuffle != ShuffleLegacy {
		return nil, fmt.Errorf("QUIZ_SHUFFLE must be %q or %q, got %q", ShuffleUniform, ShuffleLegacy, cfg.QuizShuffle)
	}

	return cfg, nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
