package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/taskboard/backend/internal/common/config"
)

const testSecret = "test-secret-key-at-least-32-bytes-long"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.HTTPPort != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.HTTPPort)
	}
	if cfg.StoreMode != "file" {
		t.Errorf("expected default store mode file, got %s", cfg.StoreMode)
	}
	if cfg.DataFile != "data.json" {
		t.Errorf("expected default data file, got %s", cfg.DataFile)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("expected default session ttl 24h, got %v", cfg.SessionTTL)
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := config.Load(); !errors.Is(err, config.ErrMissingRequiredEnv) {
		t.Errorf("expected missing env error, got %v", err)
	}
}

func TestLoad_ShortSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "too-short")

	if _, err := config.Load(); !errors.Is(err, config.ErrInvalidJWTSecret) {
		t.Errorf("expected invalid secret error, got %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("TASKBOARD_HTTP_PORT", "9090")
	t.Setenv("TASKBOARD_STORE", "memory")
	t.Setenv("TASKBOARD_SESSION_TTL", "1h")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.HTTPPort != "9090" || cfg.StoreMode != "memory" || cfg.SessionTTL != time.Hour {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoad_PostgresRequiresURL(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("TASKBOARD_STORE", "postgres")
	t.Setenv("DATABASE_URL", "")

	if _, err := config.Load(); !errors.Is(err, config.ErrMissingDatabaseURL) {
		t.Errorf("expected missing database url error, got %v", err)
	}
}

func TestLoad_UnknownStoreMode(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("TASKBOARD_STORE", "etcd")

	if _, err := config.Load(); !errors.Is(err, config.ErrInvalidStoreMode) {
		t.Errorf("expected invalid store mode error, got %v", err)
	}
}
