package store

import (
	"sync"
)

type Action string

const (
	CreateAction Action = "create"
	UpdateAction Action = "update"
	DeleteAction Action = "delete"
)

// Event is pushed to collection subscribers after every committed write.
// Subscribers treat their local copy as stale and replace it with whatever
// the next event carries.
type Event struct {
	Action Action `json:"action"`
	Record Record `json:"record"`
}

type subscriber struct {
	id int
	fn func(Event)
}

// hub fans committed writes out to registered listeners. Delivery happens on
// the writer's goroutine; listeners that need to block must hand off
// themselves.
type hub struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string][]subscriber
}

func newHub() *hub {
	return &hub{
		subs: make(map[string][]subscriber),
	}
}

func (h *hub) subscribe(collection string, fn func(Event)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	id := h.nextID
	h.subs[collection] = append(h.subs[collection], subscriber{id: id, fn: fn})

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()

		current := h.subs[collection]
		for i, sub := range current {
			if sub.id == id {
				h.subs[collection] = append(current[:i:i], current[i+1:]...)
				return
			}
		}
	}
}

func (h *hub) publish(collection string, event Event) {
	h.mu.RLock()
	listeners := make([]subscriber, len(h.subs[collection]))
	copy(listeners, h.subs[collection])
	h.mu.RUnlock()

	for _, sub := range listeners {
		sub.fn(event)
	}
}
