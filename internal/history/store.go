package history

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/domain/blueprint"
	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/providers/image"
)

// Kind labels what produced a history entry.
type Kind string

const (
	KindGeneration Kind = "generation"
	KindBatch      Kind = "batch"
	KindManual     Kind = "manual"
	KindLibrary    Kind = "library"
)

// Valid reports whether k is one of the provenance tags the store accepts.
func (k Kind) Valid() bool {
	switch k {
	case KindGeneration, KindBatch, KindManual, KindLibrary:
		return true
	}
	return false
}

// Entry is one immutable version in the session history. The stored scene is
// a deep copy taken at append time; later edits to the live document never
// rewrite history.
type Entry struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Kind      Kind            `json:"kind"`
	Scene     blueprint.Scene `json:"scene"`
	Result    *image.Result   `json:"result,omitempty"`
}

// Store is an append-only in-memory version log, scoped to the process the
// same way the studio scopes history to a UI session.
type Store struct {
	mu      sync.Mutex
	entries []Entry
	now     func() time.Time
}

func NewStore() *Store {
	return &Store{now: time.Now}
}

// Append records a new version and returns it. The scene and result are
// copied so the caller keeps no aliases into the log.
func (s *Store) Append(scene blueprint.Scene, kind Kind, result *image.Result) Entry {
	entry := Entry{
		ID:    uuid.NewString(),
		Kind:  kind,
		Scene: scene.Clone(),
	}
	if result != nil {
		res := *result
		entry.Result = &res
	}

	s.mu.Lock()
	entry.CreatedAt = s.now()
	s.entries = append(s.entries, entry)
	s.mu.Unlock()
	return entry
}

// Items returns the log oldest-first. The slice and its entries are copies.
func (s *Store) Items() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	for i, e := range s.entries {
		out[i] = copyEntry(e)
	}
	return out
}

// Get looks up a single version by id.
func (s *Store) Get(id string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.ID == id {
			return copyEntry(e), true
		}
	}
	return Entry{}, false
}

// Len reports the number of recorded versions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func copyEntry(e Entry) Entry {
	out := e
	out.Scene = e.Scene.Clone()
	if e.Result != nil {
		res := *e.Result
		out.Result = &res
	}
	return out
}
