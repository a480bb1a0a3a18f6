package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/taskboard/backend/internal/auth/service"
	"github.com/taskboard/backend/internal/common/clock"
	commonerrors "github.com/taskboard/backend/internal/common/errors"
	"github.com/taskboard/backend/internal/common/logger"
	"github.com/taskboard/backend/internal/session"
	"github.com/taskboard/backend/internal/store"
)

const testSecret = "test-secret-key-at-least-32-bytes-long"

func setupAuthService(t *testing.T) (*service.AuthService, *store.Store, *session.Codec, *mockHasher, *mockIDGenerator) {
	t.Helper()

	log, err := logger.New("", "test", "ERROR")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	st := store.New(store.NewMemoryBackend(), log)
	mockClock := clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	codec := session.NewCodec(testSecret, 24*time.Hour, mockClock)
	hasher := &mockHasher{}
	idGen := &mockIDGenerator{}

	svc := service.NewAuthService(st, hasher, idGen, codec, log)
	return svc, st, codec, hasher, idGen
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, st, codec, _, idGen := setupAuthService(t)

	idGen.newIDFunc = func() (string, error) {
		return "user-123", nil
	}

	result, err := svc.Register(context.Background(), service.RegisterInput{
		Username: "alice",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.Token == "" {
		t.Error("expected session token to be set")
	}
	if string(result.User.ID) != "user-123" {
		t.Errorf("expected user id user-123, got %s", result.User.ID)
	}
	if result.User.Username != "alice" {
		t.Errorf("expected username alice, got %s", result.User.Username)
	}

	identity, ok := codec.Verify(result.Token)
	if !ok {
		t.Fatal("expected issued token to verify")
	}
	if identity.UserID != "user-123" || identity.Username != "alice" {
		t.Errorf("unexpected identity in token: %+v", identity)
	}

	err = st.View(context.Background(), func(doc store.Document) error {
		if len(doc.Users) != 1 {
			t.Fatalf("expected one persisted user, got %d", len(doc.Users))
		}
		if doc.Users[0].PasswordHash == "password123" {
			t.Error("expected password to be stored hashed")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestAuthService_Register_UsernameTaken(t *testing.T) {
	svc, _, _, _, _ := setupAuthService(t)

	if _, err := svc.Register(context.Background(), service.RegisterInput{
		Username: "alice",
		Password: "password123",
	}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	_, err := svc.Register(context.Background(), service.RegisterInput{
		Username: "alice",
		Password: "different456",
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if domainErr, ok := commonerrors.AsDomainError(err); !ok || domainErr.Code() != "USERNAME_TAKEN" {
		t.Errorf("expected USERNAME_TAKEN error, got %v", err)
	}
}

func TestAuthService_Register_ValidationError(t *testing.T) {
	svc, st, _, _, _ := setupAuthService(t)

	testCases := []struct {
		name     string
		username string
		password string
	}{
		{"empty username", "", "password123"},
		{"blank username", "   ", "password123"},
		{"empty password", "alice", ""},
		{"short username", "ab", "password123"},
		{"long username", strings.Repeat("a", 33), "password123"},
		{"short password", "alice", "pass123"},
		{"long password", "alice", strings.Repeat("p", 73)},
		{"invalid username chars", "al ice!", "password123"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), service.RegisterInput{
				Username: tc.username,
				Password: tc.password,
			})
			if err == nil {
				t.Fatal("expected validation error")
			}
			domainErr, ok := commonerrors.AsDomainError(err)
			if !ok || domainErr.Category() != commonerrors.CategoryValidation {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}

	err := st.View(context.Background(), func(doc store.Document) error {
		if len(doc.Users) != 0 {
			t.Errorf("expected no persisted users, got %d", len(doc.Users))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestAuthService_Register_HashError(t *testing.T) {
	svc, _, _, hasher, _ := setupAuthService(t)

	hasher.hashFunc = func(password string) (string, error) {
		return "", errors.New("hash error")
	}

	if _, err := svc.Register(context.Background(), service.RegisterInput{
		Username: "alice",
		Password: "password123",
	}); err == nil {
		t.Fatal("expected error")
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, _, codec, _, _ := setupAuthService(t)

	if _, err := svc.Register(context.Background(), service.RegisterInput{
		Username: "alice",
		Password: "password123",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	result, err := svc.Login(context.Background(), service.LoginInput{
		Username: "alice",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Token == "" {
		t.Error("expected session token to be set")
	}

	identity, ok := codec.Verify(result.Token)
	if !ok {
		t.Fatal("expected issued token to verify")
	}
	if identity.Username != "alice" {
		t.Errorf("expected identity alice, got %s", identity.Username)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc, _, _, _, _ := setupAuthService(t)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Username: "nobody",
		Password: "password123",
	})
	if !errors.Is(err, commonerrors.ErrInvalidCredentials) {
		t.Errorf("expected invalid credentials, got %v", err)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _, _, _, _ := setupAuthService(t)

	if _, err := svc.Register(context.Background(), service.RegisterInput{
		Username: "alice",
		Password: "password123",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, err := svc.Login(context.Background(), service.LoginInput{
		Username: "alice",
		Password: "wrongpass99",
	})
	if !errors.Is(err, commonerrors.ErrInvalidCredentials) {
		t.Errorf("expected invalid credentials, got %v", err)
	}
}
