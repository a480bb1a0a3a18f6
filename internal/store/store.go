package store

import (
	"context"
	"time"

	commonerrors "github.com/taskboard/backend/internal/common/errors"
	"github.com/taskboard/backend/internal/common/logger"
	"github.com/taskboard/backend/internal/observability/metrics"
)

// Backend loads and saves the whole document. Implementations do not need to
// be safe for concurrent use; Store serializes access.
type Backend interface {
	Load(ctx context.Context) (Document, error)
	Save(ctx context.Context, doc Document) error
}

// Store guards a backend with a mutex so every load-mutate-save cycle runs as
// a critical section. Two concurrent mutations can never interleave and drop
// one writer's change.
type Store struct {
	mu      chanMutex
	backend Backend
	log     *logger.Logger
}

// chanMutex is a mutex that respects context cancellation while waiting.
type chanMutex chan struct{}

func (m chanMutex) lock(ctx context.Context) error {
	select {
	case m <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m chanMutex) unlock() {
	<-m
}

func New(backend Backend, log *logger.Logger) *Store {
	return &Store{
		mu:      make(chanMutex, 1),
		backend: backend,
		log:     log,
	}
}

// View runs fn with a snapshot of the document. The snapshot must not be
// retained past fn.
func (s *Store) View(ctx context.Context, fn func(doc Document) error) error {
	if err := s.mu.lock(ctx); err != nil {
		return commonerrors.ErrStorage.WithCause(err)
	}
	defer s.mu.unlock()

	doc, err := s.backend.Load(ctx)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "store_load_failed",
		}).Errorf("document load failed: %v", err)
		return commonerrors.ErrStorage.WithCause(err)
	}

	return fn(doc)
}

// Update runs fn on the document and persists the result in the same critical
// section. When fn returns an error nothing is saved and the error passes
// through unchanged.
func (s *Store) Update(ctx context.Context, fn func(doc *Document) error) error {
	if err := s.mu.lock(ctx); err != nil {
		return commonerrors.ErrStorage.WithCause(err)
	}
	defer s.mu.unlock()

	doc, err := s.backend.Load(ctx)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "store_load_failed",
		}).Errorf("document load failed: %v", err)
		return commonerrors.ErrStorage.WithCause(err)
	}

	if err := fn(&doc); err != nil {
		return err
	}

	doc.Normalize()

	start := time.Now()
	err = s.backend.Save(ctx, doc)
	metrics.StoreSaveDurationSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.StoreSaveFailuresTotal.Inc()
		s.log.WithFields(ctx, logger.Fields{
			"action": "store_save_failed",
		}).Errorf("document save failed: %v", err)
		return commonerrors.ErrStorage.WithCause(err)
	}

	return nil
}
