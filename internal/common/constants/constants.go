package constants

import "time"

const (
	UsernameMinLength  = 3
	UsernameMaxLength  = 32
	PasswordMinLength  = 8
	PasswordMaxLength  = 72
	JWTSecretMinLength = 32

	BoardNameMaxLength    = 120
	TaskTitleMaxLength    = 200
	TaskDescMaxLength     = 2000
	DefaultMaxRequestSize = 1 << 20

	SessionCookieName = "token"
	DefaultSessionTTL = 24 * time.Hour

	StoreModeFile     = "file"
	StoreModeMemory   = "memory"
	StoreModePostgres = "postgres"

	DefaultDataFile = "data.json"

	DBPoolConnectTimeout = 5 * time.Second
	DBPoolMaxAttempts    = 10
	DBPoolRetryDelay     = 1 * time.Second

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second

	ShutdownTimeout = 30 * time.Second
	DrainTimeout    = 10 * time.Second

	DefaultHTTPPort       = "8080"
	DefaultRequestTimeout = 5 * time.Second

	RateLimitRequestsPerSecond = 20
	RateLimitBurst             = 40
	RateLimitCleanupInterval   = 5 * time.Minute

	WebSocketWriteWait       = 10 * time.Second
	WebSocketPongWait        = 60 * time.Second
	WebSocketPingPeriod      = 54 * time.Second
	WebSocketSendBufSize     = 32
	WebSocketReadBufferSize  = 1024
	WebSocketWriteBufferSize = 1024

	LoggerMaxSize    = 100
	LoggerMaxBackups = 3
	LoggerMaxAge     = 28
)

type TraceIDKeyType string

const TraceIDKey TraceIDKeyType = "trace_id"
