package session_test

import (
	"testing"
	"time"

	"github.com/taskboard/backend/internal/common/clock"
	"github.com/taskboard/backend/internal/session"
)

const testSecret = "test-secret-key-at-least-32-bytes-long"

func setupCodec(t *testing.T) (*session.Codec, *clock.MockClock) {
	_ = t
	mockClock := clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	return session.NewCodec(testSecret, 24*time.Hour, mockClock), mockClock
}

func TestCodec_IssueVerify_Roundtrip(t *testing.T) {
	codec, mockClock := setupCodec(t)

	token, expiresAt, err := codec.Issue("user-123", "alice")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if token == "" {
		t.Fatal("expected token to be set")
	}
	if want := mockClock.Now().Add(24 * time.Hour); !expiresAt.Equal(want) {
		t.Errorf("expected expiry %v, got %v", want, expiresAt)
	}

	identity, ok := codec.Verify(token)
	if !ok {
		t.Fatal("expected token to verify")
	}
	if identity.UserID != "user-123" {
		t.Errorf("expected user id user-123, got %s", identity.UserID)
	}
	if identity.Username != "alice" {
		t.Errorf("expected username alice, got %s", identity.Username)
	}
}

func TestCodec_Verify_Expired(t *testing.T) {
	codec, mockClock := setupCodec(t)

	token, _, err := codec.Issue("user-123", "alice")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	mockClock.Advance(24*time.Hour + time.Minute)

	if _, ok := codec.Verify(token); ok {
		t.Error("expected expired token to be rejected")
	}
}

func TestCodec_Verify_WrongKey(t *testing.T) {
	mockClock := clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	issuer := session.NewCodec(testSecret, 24*time.Hour, mockClock)
	verifier := session.NewCodec("another-secret-key-32-bytes-minimum!", 24*time.Hour, mockClock)

	token, _, err := issuer.Issue("user-123", "alice")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, ok := verifier.Verify(token); ok {
		t.Error("expected token signed with a different key to be rejected")
	}
}

func TestCodec_Verify_Malformed(t *testing.T) {
	codec, _ := setupCodec(t)

	testCases := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"truncated", "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIx"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := codec.Verify(tc.token); ok {
				t.Error("expected malformed token to be rejected")
			}
		})
	}
}
