// Package history keeps the most recent calculator results and persists them
// to a JSON file or a bolt database.
package history

import (
	"math"
	"sync"
)

// DefaultLimit is the number of entries a History keeps by default.
const DefaultLimit = 10

// Entry is one successful evaluation.
type Entry struct {
	Expression string  `json:"expression"`
	Result     float64 `json:"result"`
}

// History is a bounded list of entries, most recent first. It is safe for
// concurrent use.
type History struct {
	mu      sync.Mutex
	limit   int
	entries []Entry
}

// New creates an empty history holding at most limit entries. A limit of 0 or
// less uses DefaultLimit.
func New(limit int) *History {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &History{limit: limit}
}

// Add records a result at the front of the history, dropping the oldest entry
// if the history is full. Non-finite results are not recorded, and Add
// reports whether the entry was kept.
func (h *History) Add(expression string, result float64) bool {
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, Entry{})
	copy(h.entries[1:], h.entries)
	h.entries[0] = Entry{Expression: expression, Result: result}
	if len(h.entries) > h.limit {
		h.entries = h.entries[:h.limit]
	}
	return true
}

// Entries returns a copy of the entries, most recent first.
func (h *History) Entries() []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Entry(nil), h.entries...)
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Clear removes all entries.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
}

// Load replaces the entries with those in s, keeping the most recent up to
// the limit. Non-finite results in s are skipped.
func (h *History) Load(s Store) error {
	entries, err := s.Load()
	if err != nil {
		return err
	}
	kept := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if math.IsNaN(e.Result) || math.IsInf(e.Result, 0) {
			continue
		}
		kept = append(kept, e)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(kept) > h.limit {
		kept = kept[:h.limit]
	}
	h.entries = kept
	return nil
}

// Save writes the entries to s.
func (h *History) Save(s Store) error {
	return s.Save(h.Entries())
}
