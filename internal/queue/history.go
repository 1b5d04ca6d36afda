package queue

import "sync"

// RecentHistory is a bounded, insertion-ordered set of track URIs recently
// enqueued by the monitor. Oldest entries are evicted once capacity is
// exceeded, which bounds both memory and how long a track stays excluded
// from re-selection. Lives for the process lifetime; never persisted.
type RecentHistory struct {
	mu       sync.Mutex
	capacity int
	order    []string
	members  map[string]struct{}
}

// NewRecentHistory creates a history that retains at most capacity URIs.
func NewRecentHistory(capacity int) *RecentHistory {
	if capacity < 1 {
		capacity = 1
	}
	return &RecentHistory{
		capacity: capacity,
		members:  make(map[string]struct{}, capacity),
	}
}

// Add records uris as recently enqueued, evicting the oldest entries FIFO
// once capacity is exceeded. Re-adding a known URI refreshes its position.
func (h *RecentHistory) Add(uris ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, uri := range uris {
		if _, ok := h.members[uri]; ok {
			h.remove(uri)
		}
		h.order = append(h.order, uri)
		h.members[uri] = struct{}{}

		for len(h.order) > h.capacity {
			oldest := h.order[0]
			h.order = h.order[1:]
			delete(h.members, oldest)
		}
	}
}

// remove deletes uri from the insertion order. Callers must hold h.mu.
func (h *RecentHistory) remove(uri string) {
	for i, u := range h.order {
		if u == uri {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
	delete(h.members, uri)
}

// Contains reports whether uri is still in the retained window.
func (h *RecentHistory) Contains(uri string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.members[uri]
	return ok
}

// Snapshot returns the retained URIs oldest-first.
func (h *RecentHistory) Snapshot() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.order...)
}

// Len returns the number of retained URIs.
func (h *RecentHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.order)
}
