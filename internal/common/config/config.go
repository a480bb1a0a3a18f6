package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/taskboard/backend/internal/common/constants"
)

var (
	ErrMissingRequiredEnv = errors.New("missing required environment variable")
	ErrInvalidJWTSecret   = errors.New("JWT_SECRET must be at least 32 bytes")
	ErrInvalidStoreMode   = errors.New("store mode must be file, memory, or postgres")
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is required for the postgres store mode")
)

type Config struct {
	HTTPPort       string
	JWTSecret      string
	SessionTTL     time.Duration
	StoreMode      string
	DataFile       string
	DatabaseURL    string
	RequestTimeout time.Duration
}

func Load() (Config, error) {
	jwtSecret, err := mustEnv("JWT_SECRET")
	if err != nil {
		return Config{}, err
	}

	if len(jwtSecret) < constants.JWTSecretMinLength {
		return Config{}, fmt.Errorf("%w: got %d bytes", ErrInvalidJWTSecret, len(jwtSecret))
	}

	cfg := Config{
		HTTPPort:       getEnv("TASKBOARD_HTTP_PORT", constants.DefaultHTTPPort),
		JWTSecret:      jwtSecret,
		SessionTTL:     getDurationEnv("TASKBOARD_SESSION_TTL", constants.DefaultSessionTTL),
		StoreMode:      getEnv("TASKBOARD_STORE", constants.StoreModeFile),
		DataFile:       getEnv("TASKBOARD_DATA_FILE", constants.DefaultDataFile),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		RequestTimeout: getDurationEnv("TASKBOARD_REQUEST_TIMEOUT", constants.DefaultRequestTimeout),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	switch c.StoreMode {
	case constants.StoreModeFile, constants.StoreModeMemory:
	case constants.StoreModePostgres:
		if c.DatabaseURL == "" {
			return ErrMissingDatabaseURL
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStoreMode, c.StoreMode)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingRequiredEnv, key)
	}
	return v, nil
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
