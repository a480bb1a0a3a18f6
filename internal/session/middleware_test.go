package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/taskboard/backend/internal/common/clock"
	"github.com/taskboard/backend/internal/common/logger"
	"github.com/taskboard/backend/internal/session"
)

func setupMiddleware(t *testing.T) (*session.Codec, http.Handler) {
	_ = t
	mockClock := clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	codec := session.NewCodec(testSecret, 24*time.Hour, mockClock)
	log, _ := logger.New("", "test", "ERROR")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := session.FromContext(r.Context())
		if !ok {
			t.Error("expected identity in context")
		}
		w.Header().Set("X-User", identity.Username)
		w.WriteHeader(http.StatusOK)
	})

	return codec, session.Middleware(codec, log)(next)
}

func TestMiddleware_MissingCookie(t *testing.T) {
	_, handler := setupMiddleware(t)

	req := httptest.NewRequest(http.MethodGet, "/api/boards", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestMiddleware_InvalidToken(t *testing.T) {
	_, handler := setupMiddleware(t)

	req := httptest.NewRequest(http.MethodGet, "/api/boards", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: "bogus"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestMiddleware_ValidToken(t *testing.T) {
	codec, handler := setupMiddleware(t)

	token, _, err := codec.Issue("user-123", "alice")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/boards", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("X-User"); got != "alice" {
		t.Errorf("expected identity alice, got %q", got)
	}
}

func TestClearCookie_ExpiresSession(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)

	session.ClearCookie(rec, req)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	if cookies[0].Name != "token" || cookies[0].Value != "" {
		t.Errorf("expected cleared token cookie, got %v", cookies[0])
	}
	if cookies[0].MaxAge != -1 {
		t.Errorf("expected MaxAge -1, got %d", cookies[0].MaxAge)
	}
}
