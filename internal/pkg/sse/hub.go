package sse

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
)

const bufferSize = 16

// Event is one server-sent event addressed to a user.
type Event struct {
	ID   string
	Name string
	Data any
}

// WriteTo encodes the event as an SSE frame.
func (e Event) WriteTo(w io.Writer) (int64, error) {
	payload, err := json.Marshal(e.Data)
	if err != nil {
		return 0, fmt.Errorf("encode event data: %w", err)
	}

	var b strings.Builder
	if e.ID != "" {
		fmt.Fprintf(&b, "id: %s\n", e.ID)
	}
	if e.Name != "" {
		fmt.Fprintf(&b, "event: %s\n", e.Name)
	}
	fmt.Fprintf(&b, "data: %s\n\n", payload)

	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

// Hub fans events out to the open streams of each user.
type Hub struct {
	mu     sync.RWMutex
	byUser map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{byUser: make(map[string]map[chan Event]struct{})}
}

// Subscribe opens a stream for userID. The returned func must be called when
// the client goes away; it closes the channel.
func (h *Hub) Subscribe(userID string) (<-chan Event, func()) {
	ch := make(chan Event, bufferSize)

	h.mu.Lock()
	if h.byUser[userID] == nil {
		h.byUser[userID] = make(map[chan Event]struct{})
	}
	h.byUser[userID][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.byUser[userID], ch)
			if len(h.byUser[userID]) == 0 {
				delete(h.byUser, userID)
			}
			close(ch)
		})
	}
	return ch, unsubscribe
}

// Publish delivers ev to every stream of userID and returns how many received it.
// Slow streams with a full buffer are skipped.
func (h *Hub) Publish(userID string, ev Event) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for ch := range h.byUser[userID] {
		select {
		case ch <- ev:
			delivered++
		default:
		}
	}
	return delivered
}

// Subscribers returns the number of open streams for userID.
func (h *Hub) Subscribers(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.byUser[userID])
}
