package history

import (
	"sync"
	"time"

	"github.com/elliotchance/pie/v2"
)

// Entry is one analyzed screen frame: when it was seen and what the model
// said about it.
type Entry struct {
	Timestamp string `json:"timestamp"`
	Analysis  string `json:"analysis"`
}

func NewEntry(analysis string) Entry {
	return Entry{
		Timestamp: time.Now().Format("15:04:05"),
		Analysis:  analysis,
	}
}

// Store is the viewing history: an append-only log of analyzed frames.
// Entries are never mutated or evicted, they live for the session lifetime.
type Store struct {
	mu      sync.RWMutex
	entries []Entry
	latest  string
}

func NewStore() *Store {
	return &Store{}
}

// Append records a completed analysis and makes it the latest one.
func (s *Store) Append(entry Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, entry)
	s.latest = entry.Analysis
}

// All returns the entries oldest first, for context building.
func (s *Store) All() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)

	return out
}

// DisplayOrder returns the entries newest first, for rendering. The store
// order is untouched.
func (s *Store) DisplayOrder() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return pie.Reverse(s.entries)
}

// Latest returns the analysis text of the most recent entry, or an empty
// string before the first successful cycle.
func (s *Store) Latest() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.latest
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}
