package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAPIBaseURL      = "http://localhost:8081/api"
	defaultAPITimeout      = 10 * time.Second
	defaultSuggestDebounce = 300 * time.Millisecond
	defaultTimezone        = "UTC"
)

type Config struct {
	TelegramToken   string        `mapstructure:"TELEGRAM_TOKEN"`
	DBDSN           string        `mapstructure:"DB_DSN"`
	Environment     string        `mapstructure:"ENV"`
	APIBaseURL      string        `mapstructure:"API_BASE_URL"`
	APITimeout      time.Duration `mapstructure:"API_TIMEOUT"`
	SuggestDebounce time.Duration `mapstructure:"SUGGEST_DEBOUNCE"`
	Timezone        string        `mapstructure:"TIMEZONE"`

	location *time.Location
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	return FromEnv(os.Getenv)
}

// FromEnv собирает конфиг из функции чтения переменных окружения
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		DBDSN:         getenv("DB_DSN"),
		TelegramToken: getenv("TELEGRAM_TOKEN"),
		Environment:   getenv("ENV"),
		APIBaseURL:    strings.TrimRight(getenv("API_BASE_URL"), "/"),
		Timezone:      getenv("TIMEZONE"),
	}

	// Устанавливаем дефолтные значения
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultAPIBaseURL
	}
	if cfg.Timezone == "" {
		cfg.Timezone = defaultTimezone
	}

	var err error
	if cfg.APITimeout, err = parseDuration(getenv("API_TIMEOUT"), defaultAPITimeout); err != nil {
		return nil, fmt.Errorf("API_TIMEOUT: %w", err)
	}
	if cfg.SuggestDebounce, err = parseDuration(getenv("SUGGEST_DEBOUNCE"), defaultSuggestDebounce); err != nil {
		return nil, fmt.Errorf("SUGGEST_DEBOUNCE: %w", err)
	}

	if cfg.location, err = time.LoadLocation(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("TIMEZONE: %w", err)
	}

	// Проверяем обязательные поля
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	return cfg, nil
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}

// Location возвращает часовой пояс для ввода и отображения времени
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

func parseDuration(raw string, fallback time.Duration) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", raw)
	}
	return d, nil
}
