package sync

import (
	gosync "sync"

	"github.com/aditwb/storysync/internal/client/models"
)

const defaultSubBufSize = 4

// Hub is a typed broadcast channel for sync completion events. The UI layer
// and the query layer both subscribe so they can refresh without polling.
type Hub struct {
	mu          gosync.RWMutex
	nextID      int
	subscribers map[int]chan models.SyncResult
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[int]chan models.SyncResult),
	}
}

// Subscribe registers a new subscriber and returns its id plus the receive
// channel. The id is used to unsubscribe.
func (h *Hub) Subscribe(buffer int) (int, <-chan models.SyncResult) {
	if buffer <= 0 {
		buffer = defaultSubBufSize
	}
	ch := make(chan models.SyncResult, buffer)

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subscribers[id] = ch
	h.mu.Unlock()

	return id, ch
}

// Unsubscribe removes a subscriber and closes its channel. Unknown ids are
// a no-op.
func (h *Hub) Unsubscribe(id int) {
	h.mu.Lock()
	ch, ok := h.subscribers[id]
	if ok {
		delete(h.subscribers, id)
	}
	h.mu.Unlock()

	if ok {
		close(ch)
	}
}

// Publish delivers the result to all current subscribers. Slow subscribers
// with a full buffer miss the event rather than blocking the sync engine.
func (h *Hub) Publish(result models.SyncResult) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.subscribers {
		select {
		case ch <- result:
		default:
		}
	}
}
