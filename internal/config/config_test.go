package config

import (
	"math"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// clearEnv blanks every variable Load reads. Empty values count as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"BOT_TOKEN", "STORAGE_KEY", "QUIZ_SHUFFLE", "IMPORT_MAX_BYTES",
		"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD",
	} {
		t.Setenv(key, "")
	}
}

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		setEnv       bool
		envValue     string
		expected     string
	}{
		{
			name:         "env variable set",
			key:          "TEST_KEY",
			defaultValue: "default",
			setEnv:       true,
			envValue:     "custom",
			expected:     "custom",
		},
		{
			name:         "env variable not set",
			key:          "TEST_KEY_NOT_SET",
			defaultValue: "default",
			setEnv:       false,
			expected:     "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key)
			}

			result := getEnv(tt.key, tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "testuser",
			Password: "testpass",
			Name:     "testdb",
		},
	}

	dsn := cfg.DSN()
	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable"
	assert.Equal(t, expected, dsn)
}

func TestLoad_MissingBotToken(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_PASSWORD", "test_db_password")

	cfg, err := Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "BOT_TOKEN")
}

func TestLoad_MissingDBPassword(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "test_token")

	cfg, err := Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "DB_PASSWORD")
}

func TestLoad_WithDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "test_token")
	t.Setenv("DB_PASSWORD", "test_db_password")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, "test_token", cfg.BotToken)
	assert.Equal(t, "cardsData", cfg.StorageKey)
	assert.Equal(t, ShuffleUniform, cfg.QuizShuffle)
	assert.Equal(t, int64(1048576), cfg.ImportMaxBytes)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "cardbot", cfg.Database.Name)
	assert.Equal(t, "cardbot", cfg.Database.User)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		contains string
	}{
		{
			name:     "unknown shuffle mode",
			key:      "QUIZ_SHUFFLE",
			value:    "random",
			contains: "QUIZ_SHUFFLE",
		},
		{
			name:     "non numeric import limit",
			key:      "IMPORT_MAX_BYTES",
			value:    "lots",
			contains: "IMPORT_MAX_BYTES",
		},
		{
			name:     "negative import limit",
			key:      "IMPORT_MAX_BYTES",
			value:    "-1",
			contains: "IMPORT_MAX_BYTES",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("BOT_TOKEN", "test_token")
			t.Setenv("DB_PASSWORD", "test_db_password")
			t.Setenv(tt.key, tt.value)

			cfg, err := Load()
			assert.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestLoadStorage_NoBotToken(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_PASSWORD", "test_db_password")
	t.Setenv("STORAGE_KEY", "otherDeck")
	t.Setenv("QUIZ_SHUFFLE", ShuffleLegacy)

	cfg, err := LoadStorage()
	assert.NoError(t, err)
	assert.Equal(t, "otherDeck", cfg.StorageKey)
	assert.Equal(t, ShuffleLegacy, cfg.QuizShuffle)
	assert.Empty(t, cfg.BotToken)
}

func TestLoad_LargestImportLimit(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "test_token")
	t.Setenv("DB_PASSWORD", "test_db_password")
	t.Setenv("IMPORT_MAX_BYTES", "9223372036854775807")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), cfg.ImportMaxBytes)
}
