package events

type EventType string

const (
	BoardCreated EventType = "board.created"
	BoardRenamed EventType = "board.renamed"
	BoardDeleted EventType = "board.deleted"
	TaskCreated  EventType = "task.created"
	TaskUpdated  EventType = "task.updated"
	TaskDeleted  EventType = "task.deleted"
)

// Event is a notify-only change signal; clients re-fetch the affected
// resources over the REST API.
type Event struct {
	Type    EventType `json:"type"`
	BoardID string    `json:"boardId,omitempty"`
	TaskID  string    `json:"taskId,omitempty"`
}
