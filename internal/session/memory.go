package session

import (
	"context" // Context for store operations
	"sync"    // Mutex for map access
	"time"    // Expiry checks

	"github.com/google/uuid" // Session token generation
)

// MemoryStore is an in-process Store used by tests and single-node
// development runs where Redis is not available.
type MemoryStore struct {
	mu      sync.Mutex             // Guards records
	ttl     time.Duration          // Session lifetime
	records map[string]memoryEntry // Token -> record
}

type memoryEntry struct {
	rec       Record    // Session record
	expiresAt time.Time // Absolute expiry
}

// NewMemoryStore creates an in-memory session store
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, records: make(map[string]memoryEntry)}
}

// Create mints a fresh token bound to userID
func (s *MemoryStore) Create(ctx context.Context, userID uint) (string, error) {
	token := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[token] = memoryEntry{
		rec:       Record{UserID: userID, CreatedAt: time.Now()},
		expiresAt: time.Now().Add(s.ttl),
	}
	return token, nil
}

// Get resolves a token, dropping it if expired
func (s *MemoryStore) Get(ctx context.Context, token string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.records[token]
	if !ok {
		return nil, nil // Token unknown
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.records, token) // Expired, clean up
		return nil, nil
	}
	rec := entry.rec
	return &rec, nil
}

// Delete invalidates a token
func (s *MemoryStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, token) // No-op for unknown tokens
	return nil
}
