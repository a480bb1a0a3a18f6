package main

import (
	"context"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"

	authhttp "github.com/taskboard/backend/internal/auth/http"
	authservice "github.com/taskboard/backend/internal/auth/service"
	boardhttp "github.com/taskboard/backend/internal/board/http"
	boardservice "github.com/taskboard/backend/internal/board/service"
	"github.com/taskboard/backend/internal/common/clock"
	"github.com/taskboard/backend/internal/common/config"
	"github.com/taskboard/backend/internal/common/constants"
	"github.com/taskboard/backend/internal/common/crypto"
	"github.com/taskboard/backend/internal/common/db"
	commonhttp "github.com/taskboard/backend/internal/common/http"
	"github.com/taskboard/backend/internal/common/logger"
	"github.com/taskboard/backend/internal/common/server"
	"github.com/taskboard/backend/internal/events"
	"github.com/taskboard/backend/internal/session"
	"github.com/taskboard/backend/internal/store"
)

func main() {
	var (
		flagPort     = pflag.String("port", "", "listen port (overrides TASKBOARD_HTTP_PORT)")
		flagStore    = pflag.String("store", "", "store mode: file, memory, or postgres (overrides TASKBOARD_STORE)")
		flagDataFile = pflag.String("data-file", "", "path of the json document for the file store (overrides TASKBOARD_DATA_FILE)")
		flagLogDir   = pflag.String("log-dir", os.Getenv("LOG_DIR"), "log directory, stdout only when empty")
		flagLogLevel = pflag.String("log-level", getenvDefault("LOG_LEVEL", "INFO"), "log level: DEBUG, INFO, WARN, ERROR")
	)
	pflag.Parse()

	log, err := logger.New(*flagLogDir, "taskboard", *flagLogLevel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *flagPort != "" {
		cfg.HTTPPort = *flagPort
	}
	if *flagStore != "" {
		cfg.StoreMode = *flagStore
	}
	if *flagDataFile != "" {
		cfg.DataFile = *flagDataFile
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	var hooks []server.ShutdownHook

	var backend store.Backend
	switch cfg.StoreMode {
	case constants.StoreModeMemory:
		backend = store.NewMemoryBackend()
	case constants.StoreModePostgres:
		pool := db.NewPool(log, cfg.DatabaseURL)
		pg, err := store.NewPgBackend(context.Background(), pool)
		if err != nil {
			log.Fatalf("failed to prepare postgres store: %v", err)
		}
		backend = pg
		hooks = append(hooks, func(ctx context.Context) error {
			pool.Close()
			return nil
		})
	default:
		backend = store.NewFileBackend(cfg.DataFile)
	}

	documentStore := store.New(backend, log)
	codec := session.NewCodec(cfg.JWTSecret, cfg.SessionTTL, clock.NewRealClock())
	hub := events.NewHub(log)
	hooks = append(hooks, func(ctx context.Context) error {
		hub.Close()
		return nil
	})

	auth := authservice.NewAuthService(
		documentStore,
		&crypto.BcryptHasher{},
		crypto.NewUUIDGenerator(),
		codec,
		log,
	)
	boards := boardservice.NewBoardService(
		documentStore,
		crypto.NewUUIDGenerator(),
		clock.NewRealClock(),
		hub,
		log,
	)

	requireSession := session.Middleware(codec, log)
	withTimeout := commonhttp.WithTimeout(cfg.RequestTimeout)
	timed := func(h http.Handler) http.Handler {
		return withTimeout(h.ServeHTTP)
	}

	authHandler := timed(authhttp.NewHandler(auth, log))
	boardHandler := timed(requireSession(boardhttp.NewHandler(boards, log)))

	mux := http.NewServeMux()
	mux.HandleFunc("/health", commonhttp.HealthHandler(log))
	mux.Handle("/metrics", promhttp.Handler())

	mux.Handle("/api/auth/register", authHandler)
	mux.Handle("/api/auth/login", authHandler)
	mux.Handle("/api/auth/logout", authHandler)
	mux.Handle("/api/auth/me", timed(requireSession(authhttp.MeHandler(log))))

	mux.Handle("/api/boards", boardHandler)
	mux.Handle("/api/boards/", boardHandler)
	mux.Handle("/api/tasks/", boardHandler)

	// no request timeout here, the websocket stays open
	mux.Handle("/api/events", requireSession(events.Handler(hub, log)))

	rateLimiter := commonhttp.NewRateLimiter(constants.RateLimitRequestsPerSecond, constants.RateLimitBurst)
	handler := commonhttp.BuildBaseHandler(log, rateLimiter.Middleware(mux))

	srv := server.NewServer(server.DefaultServerConfig(cfg.HTTPPort), handler)

	log.WithFields(context.Background(), logger.Fields{
		"action": "startup",
		"store":  cfg.StoreMode,
		"port":   cfg.HTTPPort,
	}).Info("taskboard backend starting")

	server.StartWithGracefulShutdownAndHooks(srv, log, "taskboard", hooks)
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
