package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment.
type Config struct {
	API struct {
		BaseURL      string
		MockFallback bool
		Timeout      time.Duration
	}
	Server struct {
		Addr     string
		BasePath string
	}
	Watch struct {
		Interval   time.Duration
		QueueSize  int
		MaxWorkers int
	}
	Telegram struct {
		BotToken      string
		ChatID        int64
		RatePerSecond int
	}
	Email struct {
		SMTPServer string
		SMTPPort   int
		Username   string
		Password   string
		Recipient  string
	}
	Logging struct {
		Dir   string
		Level string
	}
}

// Load reads environment variables, applies defaults, and returns a Config.
func Load() (Config, error) {
	// Load .env if present
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config

	// API client settings
	cfg.API.BaseURL = os.Getenv("API_BASE_URL")
	cfg.API.MockFallback = true
	if v := os.Getenv("USE_MOCK_DATA"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid USE_MOCK_DATA %q: %w", v, err)
		}
		cfg.API.MockFallback = b
	}
	if d, err := time.ParseDuration(os.Getenv("API_TIMEOUT")); err == nil {
		cfg.API.Timeout = d
	}

	// Simulator server settings
	cfg.Server.Addr = os.Getenv("SERVER_ADDR")
	cfg.Server.BasePath = os.Getenv("SERVER_BASE_PATH")

	// Watch service settings
	if d, err := time.ParseDuration(os.Getenv("WATCH_INTERVAL")); err == nil {
		cfg.Watch.Interval = d
	}
	if qs, err := strconv.Atoi(os.Getenv("QUEUE_SIZE")); err == nil {
		cfg.Watch.QueueSize = qs
	}
	if mw, err := strconv.Atoi(os.Getenv("MAX_WORKERS")); err == nil {
		cfg.Watch.MaxWorkers = mw
	}

	// Telegram settings
	cfg.Telegram.BotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	if id, err := strconv.ParseInt(os.Getenv("TELEGRAM_CHAT_ID"), 10, 64); err == nil {
		cfg.Telegram.ChatID = id
	}
	if r, err := strconv.Atoi(os.Getenv("TELEGRAM_RATE_LIMIT")); err == nil {
		cfg.Telegram.RatePerSecond = r
	}

	// Email settings
	cfg.Email.SMTPServer = os.Getenv("EMAIL_SMTP_SERVER")
	if p, err := strconv.Atoi(os.Getenv("EMAIL_SMTP_PORT")); err == nil {
		cfg.Email.SMTPPort = p
	}
	cfg.Email.Username = os.Getenv("EMAIL_USERNAME")
	cfg.Email.Password = os.Getenv("EMAIL_PASSWORD")
	cfg.Email.Recipient = os.Getenv("EMAIL_RECIPIENT")

	// Logging settings
	cfg.Logging.Dir = os.Getenv("LOG_DIR")
	cfg.Logging.Level = os.Getenv("LOG_LEVEL")

	// Apply defaults
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "http://localhost:5000/api"
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = 10 * time.Second
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":5000"
	}
	if cfg.Server.BasePath == "" {
		cfg.Server.BasePath = "/api"
	}
	if cfg.Watch.Interval == 0 {
		cfg.Watch.Interval = time.Minute
	}
	if cfg.Watch.QueueSize == 0 {
		cfg.Watch.QueueSize = 500
	}
	if cfg.Watch.MaxWorkers == 0 {
		cfg.Watch.MaxWorkers = 10
	}
	if cfg.Telegram.RatePerSecond == 0 {
		cfg.Telegram.RatePerSecond = 25
	}
	if cfg.Logging.Dir == "" {
		cfg.Logging.Dir = "logs"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	return cfg, nil
}
