package store

import (
	boarddomain "github.com/taskboard/backend/internal/board/domain"
	userdomain "github.com/taskboard/backend/internal/user/domain"
)

// Document is the single aggregate persisted structure holding every
// collection. Backends always hand out documents with non-nil collections.
type Document struct {
	Users  []userdomain.User   `json:"users"`
	Boards []boarddomain.Board `json:"boards"`
	Tasks  []boarddomain.Task  `json:"tasks"`
}

// Normalize replaces missing collections with empty ones so callers never see
// a partially shaped document.
func (d *Document) Normalize() {
	if d.Users == nil {
		d.Users = []userdomain.User{}
	}
	if d.Boards == nil {
		d.Boards = []boarddomain.Board{}
	}
	if d.Tasks == nil {
		d.Tasks = []boarddomain.Task{}
	}
}

// Clone deep-copies the document so a caller cannot alias backing storage.
func (d Document) Clone() Document {
	out := Document{
		Users:  make([]userdomain.User, len(d.Users)),
		Boards: make([]boarddomain.Board, len(d.Boards)),
		Tasks:  make([]boarddomain.Task, len(d.Tasks)),
	}
	copy(out.Users, d.Users)
	copy(out.Boards, d.Boards)
	copy(out.Tasks, d.Tasks)
	return out
}
