package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort        string
	DatabaseURL     string
	DBMaxOpenConns  int
	DBMaxIdleConns  int
	DBConnMaxLife   time.Duration
	RequestTimeout  time.Duration
	AutoMigrate     bool
	RedisAddr       string
	RateLimitPerMin int
	CORSOrigins     []string
	LogLevel        slog.Level

	// NotifyDispatchInterval is how often pending notifications are offered
	// to the sender; zero disables the background loop.
	NotifyDispatchInterval time.Duration

	// RequireApprovalBeforePosting blocks job creation until an administrator
	// has approved the employer. Off by default.
	RequireApprovalBeforePosting bool
}

// Load reads an optional .env file and then the process environment.
func Load(envFiles ...string) *Config {
	// A missing .env is fine outside local development.
	_ = godotenv.Load(envFiles...)

	return &Config{
		HTTPPort:                     getEnv("HTTP_PORT", "8080"),
		DatabaseURL:                  getEnv("DATABASE_URL", ""),
		DBMaxOpenConns:               getInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:               getInt("DB_MAX_IDLE_CONNS", 10),
		DBConnMaxLife:                getDuration("DB_CONN_MAX_LIFE", 30*time.Minute),
		RequestTimeout:               getDuration("REQUEST_TIMEOUT", 10*time.Second),
		AutoMigrate:                  getBool("AUTO_MIGRATE", true),
		RedisAddr:                    getEnv("REDIS_ADDR", ""),
		RateLimitPerMin:              getInt("RATE_LIMIT_PER_MINUTE", 30),
		CORSOrigins:                  getList("CORS_ALLOW_ORIGINS"),
		LogLevel:                     getLevel("LOG_LEVEL", slog.LevelInfo),
		NotifyDispatchInterval:       getDuration("NOTIFY_DISPATCH_INTERVAL", 0),
		RequireApprovalBeforePosting: getBool("REQUIRE_APPROVAL_BEFORE_POSTING", false),
	}
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.HTTPPort == "" {
		return errors.New("HTTP_PORT is required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getList(key string) []string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	var items []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

func getLevel(key string, fallback slog.Level) slog.Level {
	if value, ok := os.LookupEnv(key); ok {
		var level slog.Level
		if err := level.UnmarshalText([]byte(value)); err == nil {
			return level
		}
	}
	return fallback
}
