package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App struct {
		Name     string
		Env      string
		LogLevel string
	}

	API struct {
		Host string
		Port string
	}

	DB struct {
		Host     string
		Port     int
		User     string
		Password string
		Name     string
		SSLMode  string
	}

	Redis struct {
		Enabled  bool
		Addr     string
		Password string
		DB       int
	}

	WhatsApp struct {
		BaseURL  string
		Instance string
		Token    string
		Timeout  time.Duration
	}

	Events struct {
		FailureStream string
	}

	Scheduler struct {
		Interval     time.Duration
		BatchTimeout time.Duration
	}

	Worker struct {
		BatchSize         int
		MaxWorkers        int
		PerMessageTimeout time.Duration
	}
}

func New() *Config {
	_ = godotenv.Load()

	cfg := &Config{}

	// App
	cfg.App.Name = getEnv("APP_NAME", "whatsapp-notifier")
	cfg.App.Env = getEnv("APP_ENV", "development")
	cfg.App.LogLevel = getEnv("LOG_LEVEL", "info")

	// API
	cfg.API.Host = getEnv("API_HOST", "0.0.0.0")
	cfg.API.Port = getEnv("API_PORT", "8080")

	// DB
	cfg.DB.Host = getEnv("DB_HOST", "db")
	cfg.DB.Port = getInt("DB_PORT", 5432)
	cfg.DB.User = getEnv("DB_USER", "root")
	cfg.DB.Password = getEnv("DB_PASSWORD", "123456")
	cfg.DB.Name = getEnv("DB_NAME", "db_notifications")
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", "disable")

	// Redis
	cfg.Redis.Enabled = getBool("REDIS_ENABLED", true)
	cfg.Redis.Addr = getEnv("REDIS_ADDR", "redis:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = getInt("REDIS_DB", 0)

	// HyperSender WhatsApp API
	cfg.WhatsApp.BaseURL = getEnv("WHATSAPP_BASE_URL", "https://app.hypersender.com/api/whatsapp/v1")
	cfg.WhatsApp.Instance = getEnv("WHATSAPP_INSTANCE", "")
	cfg.WhatsApp.Token = getEnv("WHATSAPP_TOKEN", "")
	cfg.WhatsApp.Timeout = getDuration("WHATSAPP_TIMEOUT", 10*time.Second)

	// Failure events
	cfg.Events.FailureStream = getEnv("EVENTS_FAILURE_STREAM", "notifications:failed")

	// Scheduler
	cfg.Scheduler.Interval = getDuration("SCHEDULER_INTERVAL", 5*time.Second)
	cfg.Scheduler.BatchTimeout = getDuration("SCHEDULER_BATCH_TIMEOUT", 30*time.Second)

	// Worker / outbox processing
	cfg.Worker.BatchSize = getInt("OUTBOX_BATCH_SIZE", 100)
	cfg.Worker.MaxWorkers = getInt("OUTBOX_MAX_WORKERS", 4)
	cfg.Worker.PerMessageTimeout = getDuration("OUTBOX_PER_MESSAGE_TIMEOUT", 5*time.Second)

	return cfg
}

// ValidateWhatsApp reports missing settings needed to reach the API.
func (c *Config) ValidateWhatsApp() error {
	var errs []error
	if c.WhatsApp.Instance == "" {
		errs = append(errs, errors.New("WHATSAPP_INSTANCE is required"))
	}
	if c.WhatsApp.Token == "" {
		errs = append(errs, errors.New("WHATSAPP_TOKEN is required"))
	}
	return errors.Join(errs...)
}

func getEnv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}

func getBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return isTruthy(v)
}

func getInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host,
		c.DB.Port,
		c.DB.User,
		c.DB.Password,
		c.DB.Name,
		c.DB.SSLMode,
	)
}
