package store_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	boarddomain "github.com/taskboard/backend/internal/board/domain"
	commonerrors "github.com/taskboard/backend/internal/common/errors"
	"github.com/taskboard/backend/internal/common/logger"
	"github.com/taskboard/backend/internal/store"
	userdomain "github.com/taskboard/backend/internal/user/domain"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("", "test", "ERROR")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return log
}

func TestFileBackend_MissingFileYieldsEmptyDocument(t *testing.T) {
	backend := store.NewFileBackend(filepath.Join(t.TempDir(), "data.json"))

	doc, err := backend.Load(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if doc.Users == nil || doc.Boards == nil || doc.Tasks == nil {
		t.Error("expected all collections to be non-nil")
	}
	if len(doc.Users)+len(doc.Boards)+len(doc.Tasks) != 0 {
		t.Error("expected empty document")
	}
}

func TestFileBackend_PartialDocumentIsNormalized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	raw := `{"users":[{"id":"u1","username":"alice","passwordHash":"h"}]}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("failed to seed file: %v", err)
	}

	backend := store.NewFileBackend(path)
	doc, err := backend.Load(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(doc.Users) != 1 {
		t.Errorf("expected one user, got %d", len(doc.Users))
	}
	if doc.Boards == nil || doc.Tasks == nil {
		t.Error("expected missing collections to be replaced with empty ones")
	}
}

func TestFileBackend_CorruptFileFailsLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("failed to seed file: %v", err)
	}

	backend := store.NewFileBackend(path)
	if _, err := backend.Load(context.Background()); err == nil {
		t.Error("expected corrupt file to fail loading")
	}
}

func TestFileBackend_SaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	backend := store.NewFileBackend(path)

	saved := store.Document{
		Users:  []userdomain.User{{ID: "u1", Username: "alice", PasswordHash: "h"}},
		Boards: []boarddomain.Board{{ID: "b1", UserID: "u1", Name: "work"}},
	}
	if err := backend.Save(context.Background(), saved); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	loaded, err := backend.Load(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(loaded.Users) != 1 || loaded.Users[0].Username != "alice" {
		t.Errorf("unexpected users after roundtrip: %v", loaded.Users)
	}
	if len(loaded.Boards) != 1 || loaded.Boards[0].Name != "work" {
		t.Errorf("unexpected boards after roundtrip: %v", loaded.Boards)
	}
	if loaded.Tasks == nil {
		t.Error("expected tasks collection to be non-nil")
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("failed to read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected no leftover temp files, found %d entries", len(entries))
	}
}

func TestMemoryBackend_CallersCannotAliasState(t *testing.T) {
	backend := store.NewMemoryBackend()

	doc := store.Document{
		Boards: []boarddomain.Board{{ID: "b1", UserID: "u1", Name: "work"}},
	}
	if err := backend.Save(context.Background(), doc); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	loaded, _ := backend.Load(context.Background())
	loaded.Boards[0].Name = "mutated"

	reloaded, _ := backend.Load(context.Background())
	if reloaded.Boards[0].Name != "work" {
		t.Error("expected backend state to be isolated from caller mutations")
	}
}

func TestStore_UpdateErrorLeavesDocumentUnsaved(t *testing.T) {
	backend := store.NewMemoryBackend()
	st := store.New(backend, testLogger(t))

	sentinel := errors.New("mutation rejected")
	err := st.Update(context.Background(), func(doc *store.Document) error {
		doc.Boards = append(doc.Boards, boarddomain.Board{ID: "b1", UserID: "u1", Name: "work"})
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected mutation error to pass through, got %v", err)
	}

	err = st.View(context.Background(), func(doc store.Document) error {
		if len(doc.Boards) != 0 {
			t.Error("expected rejected mutation to leave document unchanged")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestStore_CancelledContextFailsWithStorageError(t *testing.T) {
	backend := store.NewMemoryBackend()
	st := store.New(backend, testLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := st.Update(ctx, func(doc *store.Document) error { return nil })
	if !errors.Is(err, commonerrors.ErrStorage) {
		t.Errorf("expected storage error on cancelled context, got %v", err)
	}
}

func TestStore_ConcurrentUpdatesLoseNothing(t *testing.T) {
	backend := store.NewFileBackend(filepath.Join(t.TempDir(), "data.json"))
	st := store.New(backend, testLogger(t))

	const writers = 20
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func(n int) {
			defer wg.Done()
			err := st.Update(context.Background(), func(doc *store.Document) error {
				doc.Boards = append(doc.Boards, boarddomain.Board{
					ID:     fmt.Sprintf("b%d", n),
					UserID: "u1",
					Name:   fmt.Sprintf("board %d", n),
				})
				return nil
			})
			if err != nil {
				t.Errorf("update %d failed: %v", n, err)
			}
		}(i)
	}
	wg.Wait()

	err := st.View(context.Background(), func(doc store.Document) error {
		if len(doc.Boards) != writers {
			t.Errorf("expected %d boards, got %d", writers, len(doc.Boards))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}
