package service

import (
	boarddomain "github.com/taskboard/backend/internal/board/domain"
	"github.com/taskboard/backend/internal/session"
	"github.com/taskboard/backend/internal/store"
)

// The ownership guard filters every lookup by id AND owner, so a record that
// exists but belongs to another user is indistinguishable from one that does
// not exist. The guard runs inside the store's critical section on every
// operation; authorization decisions are never cached across requests.

func findBoard(doc *store.Document, identity session.Identity, boardID string) (int, bool) {
	for i, b := range doc.Boards {
		if b.ID == boardID && b.UserID == identity.UserID {
			return i, true
		}
	}
	return -1, false
}

func findTask(doc *store.Document, identity session.Identity, taskID string) (int, bool) {
	for i, t := range doc.Tasks {
		if t.ID == taskID && t.UserID == identity.UserID {
			return i, true
		}
	}
	return -1, false
}

func tasksForBoard(doc *store.Document, identity session.Identity, boardID string) []boarddomain.Task {
	tasks := []boarddomain.Task{}
	for _, t := range doc.Tasks {
		if t.BoardID == boardID && t.UserID == identity.UserID {
			tasks = append(tasks, t)
		}
	}
	return tasks
}
