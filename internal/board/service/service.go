package service

import (
	"context"
	"strings"

	boarddomain "github.com/taskboard/backend/internal/board/domain"
	"github.com/taskboard/backend/internal/common/clock"
	"github.com/taskboard/backend/internal/common/crypto"
	commonerrors "github.com/taskboard/backend/internal/common/errors"
	"github.com/taskboard/backend/internal/common/logger"
	"github.com/taskboard/backend/internal/events"
	"github.com/taskboard/backend/internal/observability/metrics"
	"github.com/taskboard/backend/internal/session"
	"github.com/taskboard/backend/internal/store"
)

// Publisher pushes change notifications to connected clients. Notifications
// are best-effort; a lost event never fails the mutation that produced it.
type Publisher interface {
	Publish(userID string, event events.Event)
}

type BoardService struct {
	store       *store.Store
	idGenerator crypto.IDGenerator
	clock       clock.Clock
	publisher   Publisher
	log         *logger.Logger
}

func NewBoardService(
	st *store.Store,
	idGenerator crypto.IDGenerator,
	clk clock.Clock,
	publisher Publisher,
	log *logger.Logger,
) *BoardService {
	return &BoardService{
		store:       st,
		idGenerator: idGenerator,
		clock:       clk,
		publisher:   publisher,
		log:         log,
	}
}

func (s *BoardService) CreateBoard(ctx context.Context, identity session.Identity, name string) (boarddomain.Board, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return boarddomain.Board{}, commonerrors.ErrBoardNameRequired
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		return boarddomain.Board{}, err
	}

	board := boarddomain.Board{
		ID:     id,
		UserID: identity.UserID,
		Name:   name,
	}

	err = s.store.Update(ctx, func(doc *store.Document) error {
		doc.Boards = append(doc.Boards, board)
		return nil
	})
	if err != nil {
		return boarddomain.Board{}, err
	}

	metrics.BoardMutationsTotal.WithLabelValues("create").Inc()
	s.log.WithFields(ctx, logger.Fields{
		"user_id":  identity.UserID,
		"board_id": board.ID,
		"action":   "board_created",
	}).Info("board created")
	s.publish(identity.UserID, events.Event{Type: events.BoardCreated, BoardID: board.ID})

	return board, nil
}

func (s *BoardService) ListBoards(ctx context.Context, identity session.Identity) ([]boarddomain.Board, error) {
	boards := []boarddomain.Board{}
	err := s.store.View(ctx, func(doc store.Document) error {
		for _, b := range doc.Boards {
			if b.UserID == identity.UserID {
				boards = append(boards, b)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return boards, nil
}

func (s *BoardService) RenameBoard(ctx context.Context, identity session.Identity, boardID, name string) (boarddomain.Board, error) {
	name = strings.TrimSpace(name)

	var renamed boarddomain.Board
	err := s.store.Update(ctx, func(doc *store.Document) error {
		idx, ok := findBoard(doc, identity, boardID)
		if !ok {
			return commonerrors.ErrBoardNotFound
		}
		if name == "" {
			return commonerrors.ErrBoardNameRequired
		}
		doc.Boards[idx].Name = name
		renamed = doc.Boards[idx]
		return nil
	})
	if err != nil {
		return boarddomain.Board{}, err
	}

	metrics.BoardMutationsTotal.WithLabelValues("rename").Inc()
	s.log.WithFields(ctx, logger.Fields{
		"user_id":  identity.UserID,
		"board_id": boardID,
		"action":   "board_renamed",
	}).Info("board renamed")
	s.publish(identity.UserID, events.Event{Type: events.BoardRenamed, BoardID: boardID})

	return renamed, nil
}

// DeleteBoard removes the board and every task on it in the same persisted
// write, so no orphaned task can outlive its board across a save boundary.
func (s *BoardService) DeleteBoard(ctx context.Context, identity session.Identity, boardID string) error {
	err := s.store.Update(ctx, func(doc *store.Document) error {
		idx, ok := findBoard(doc, identity, boardID)
		if !ok {
			return commonerrors.ErrBoardNotFound
		}

		doc.Boards = append(doc.Boards[:idx], doc.Boards[idx+1:]...)

		remaining := doc.Tasks[:0]
		for _, t := range doc.Tasks {
			if t.BoardID != boardID {
				remaining = append(remaining, t)
			}
		}
		doc.Tasks = remaining
		return nil
	})
	if err != nil {
		return err
	}

	metrics.BoardMutationsTotal.WithLabelValues("delete").Inc()
	s.log.WithFields(ctx, logger.Fields{
		"user_id":  identity.UserID,
		"board_id": boardID,
		"action":   "board_deleted",
	}).Info("board deleted with task cascade")
	s.publish(identity.UserID, events.Event{Type: events.BoardDeleted, BoardID: boardID})

	return nil
}

func (s *BoardService) CreateTask(ctx context.Context, identity session.Identity, boardID, title, description string) (boarddomain.Task, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)

	id, err := s.idGenerator.NewID()
	if err != nil {
		return boarddomain.Task{}, err
	}

	task := boarddomain.Task{
		ID:          id,
		BoardID:     boardID,
		UserID:      identity.UserID,
		Title:       title,
		Description: description,
		Status:      boarddomain.StatusPending,
		CreatedAt:   s.clock.Now(),
	}

	err = s.store.Update(ctx, func(doc *store.Document) error {
		if _, ok := findBoard(doc, identity, boardID); !ok {
			return commonerrors.ErrBoardNotFound
		}
		if title == "" {
			return commonerrors.ErrTaskTitleRequired
		}
		doc.Tasks = append(doc.Tasks, task)
		return nil
	})
	if err != nil {
		return boarddomain.Task{}, err
	}

	metrics.TaskMutationsTotal.WithLabelValues("create").Inc()
	s.log.WithFields(ctx, logger.Fields{
		"user_id":  identity.UserID,
		"board_id": boardID,
		"task_id":  task.ID,
		"action":   "task_created",
	}).Info("task created")
	s.publish(identity.UserID, events.Event{Type: events.TaskCreated, BoardID: boardID, TaskID: task.ID})

	return task, nil
}

func (s *BoardService) ListTasks(ctx context.Context, identity session.Identity, boardID string) ([]boarddomain.Task, error) {
	var tasks []boarddomain.Task
	err := s.store.View(ctx, func(doc store.Document) error {
		if _, ok := findBoard(&doc, identity, boardID); !ok {
			return commonerrors.ErrBoardNotFound
		}
		tasks = tasksForBoard(&doc, identity, boardID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateTask guards ownership on the task record itself, not its board; the
// task remains updatable by its owner even if board ownership ever diverges.
func (s *BoardService) UpdateTask(ctx context.Context, identity session.Identity, taskID string, patch boarddomain.TaskPatch) (boarddomain.Task, error) {
	var updated boarddomain.Task
	err := s.store.Update(ctx, func(doc *store.Document) error {
		idx, ok := findTask(doc, identity, taskID)
		if !ok {
			return commonerrors.ErrTaskNotFound
		}

		task := &doc.Tasks[idx]

		if patch.Title != nil {
			title := strings.TrimSpace(*patch.Title)
			if title == "" {
				return commonerrors.ErrTaskTitleRequired
			}
			task.Title = title
		}
		if patch.Description != nil {
			task.Description = strings.TrimSpace(*patch.Description)
		}
		if patch.Status != nil {
			status := boarddomain.Status(*patch.Status)
			if !status.Valid() {
				return commonerrors.ErrInvalidTaskStatus
			}
			task.Status = status
		}

		updated = *task
		return nil
	})
	if err != nil {
		return boarddomain.Task{}, err
	}

	metrics.TaskMutationsTotal.WithLabelValues("update").Inc()
	s.log.WithFields(ctx, logger.Fields{
		"user_id": identity.UserID,
		"task_id": taskID,
		"action":  "task_updated",
	}).Info("task updated")
	s.publish(identity.UserID, events.Event{Type: events.TaskUpdated, BoardID: updated.BoardID, TaskID: taskID})

	return updated, nil
}

func (s *BoardService) DeleteTask(ctx context.Context, identity session.Identity, taskID string) error {
	var boardID string
	err := s.store.Update(ctx, func(doc *store.Document) error {
		idx, ok := findTask(doc, identity, taskID)
		if !ok {
			return commonerrors.ErrTaskNotFound
		}
		boardID = doc.Tasks[idx].BoardID
		doc.Tasks = append(doc.Tasks[:idx], doc.Tasks[idx+1:]...)
		return nil
	})
	if err != nil {
		return err
	}

	metrics.TaskMutationsTotal.WithLabelValues("delete").Inc()
	s.log.WithFields(ctx, logger.Fields{
		"user_id": identity.UserID,
		"task_id": taskID,
		"action":  "task_deleted",
	}).Info("task deleted")
	s.publish(identity.UserID, events.Event{Type: events.TaskDeleted, BoardID: boardID, TaskID: taskID})

	return nil
}

func (s *BoardService) publish(userID string, event events.Event) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(userID, event)
}
