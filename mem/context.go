package mem

import (
	"encoding/hex"
	"sync"

	"github.com/fwojciec/sitechat"
	"github.com/google/uuid"
)

// Ensure ContextStore implements sitechat.ContextStore at compile time.
var _ sitechat.ContextStore = (*ContextStore)(nil)

// keyPrefix namespaces issued keys so they are recognizable in logs and
// cannot collide with identifiers from other subsystems.
const keyPrefix = "user_"

// ContextStore is an in-memory sitechat.ContextStore backed by a mutex-guarded
// map. Keys are random UUIDs, so collisions are cryptographically negligible
// and Put never overwrites an existing entry.
type ContextStore struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewContextStore creates an empty ContextStore.
func NewContextStore() *ContextStore {
	return &ContextStore{
		entries: make(map[string]string),
	}
}

// Put stores text under a freshly generated key and returns the key.
func (s *ContextStore) Put(text string) string {
	key := newKey()

	s.mu.Lock()
	s.entries[key] = text
	s.mu.Unlock()

	return key
}

// Get returns the text stored under key and whether the key is known.
func (s *ContextStore) Get(key string) (string, bool) {
	s.mu.RLock()
	text, ok := s.entries[key]
	s.mu.RUnlock()
	return text, ok
}

// Delete removes the entry for key and reports whether it was present.
func (s *ContextStore) Delete(key string) bool {
	s.mu.Lock()
	_, ok := s.entries[key]
	delete(s.entries, key)
	s.mu.Unlock()
	return ok
}

// Len returns the number of stored entries.
func (s *ContextStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// newKey generates a namespaced random token, e.g. "user_9f86d081...".
func newKey() string {
	u := uuid.New()
	return keyPrefix + hex.EncodeToString(u[:])
}
