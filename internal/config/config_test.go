package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/seniors")
	cfg := Load(filepath.Join(t.TempDir(), "missing.env"))

	if cfg.HTTPPort != "8080" {
		t.Errorf("HTTPPort = %q", cfg.HTTPPort)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if cfg.RequireApprovalBeforePosting {
		t.Errorf("approval gate must default to off")
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REQUIRE_APPROVAL_BEFORE_POSTING", "true")
	t.Setenv("REQUEST_TIMEOUT", "3s")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "not-a-number")
	t.Setenv("NOTIFY_DISPATCH_INTERVAL", "30s")

	cfg := Load(filepath.Join(t.TempDir(), "missing.env"))
	if cfg.HTTPPort != "9090" {
		t.Errorf("HTTPPort = %q", cfg.HTTPPort)
	}
	if !cfg.RequireApprovalBeforePosting {
		t.Errorf("approval gate not enabled")
	}
	if cfg.RequestTimeout != 3*time.Second {
		t.Errorf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
	if cfg.NotifyDispatchInterval != 30*time.Second {
		t.Errorf("NotifyDispatchInterval = %v", cfg.NotifyDispatchInterval)
	}
	if cfg.RateLimitPerMin != 30 {
		t.Errorf("bad integer should fall back, got %d", cfg.RateLimitPerMin)
	}
}

func TestLoadFromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("DATABASE_URL=postgres://from-file/seniors\nREDIS_ADDR=localhost:6379\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	// godotenv never overrides variables that are already set.
	os.Unsetenv("DATABASE_URL")
	os.Unsetenv("REDIS_ADDR")
	t.Cleanup(func() {
		os.Unsetenv("DATABASE_URL")
		os.Unsetenv("REDIS_ADDR")
	})

	cfg := Load(path)
	if cfg.DatabaseURL != "postgres://from-file/seniors" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr = %q", cfg.RedisAddr)
	}
}

func TestValidateRequiresDatabase(t *testing.T) {
	cfg := &Config{HTTPPort: "8080"}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error without DATABASE_URL")
	}
}
