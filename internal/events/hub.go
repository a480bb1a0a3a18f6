package events

import (
	"encoding/json"
	"sync"

	"github.com/taskboard/backend/internal/common/logger"
	"github.com/taskboard/backend/internal/observability/metrics"
)

// Hub tracks connected event-stream clients per user and fans change
// notifications out to them. Delivery is best-effort: a client that cannot
// keep up is dropped rather than blocking the mutation that produced the
// event.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
	closed  bool
	log     *logger.Logger
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clients: make(map[string]map[*Client]struct{}),
		log:     log,
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		c.close()
		return
	}

	set, ok := h.clients[c.userID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[c.userID] = set
	}
	set[c] = struct{}{}

	metrics.ActiveEventConnections.Inc()
	h.log.Infof("event stream connected user_id=%s", c.userID)
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.clients[c.userID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}

	delete(set, c)
	if len(set) == 0 {
		delete(h.clients, c.userID)
	}
	c.close()

	metrics.ActiveEventConnections.Dec()
	h.log.Infof("event stream disconnected user_id=%s", c.userID)
}

// Publish sends the event to every client of the given user. Slow clients
// have the message dropped.
func (h *Hub) Publish(userID string, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.log.Errorf("event marshal failed: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients[userID] {
		select {
		case c.send <- payload:
		default:
			metrics.EventsDropped.Inc()
			h.log.Warnf("event dropped for slow client user_id=%s", userID)
		}
	}
}

// Close disconnects every client; subsequent registrations are rejected.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true

	for _, set := range h.clients {
		for c := range set {
			c.close()
			metrics.ActiveEventConnections.Dec()
		}
	}
	h.clients = make(map[string]map[*Client]struct{})
}
