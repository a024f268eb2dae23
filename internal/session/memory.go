package session

import (
	"context"
	"sync"
	"time"

	"github.com/bokji-cloud/genie/internal/domain"
)

// MemoryStore is a process-local session store for single-node and test
// runs.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	session   domain.Session
	expiresAt time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an in-memory store. ttl <= 0 uses DefaultTTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Get returns a stored session, expiring it lazily.
func (m *MemoryStore) Get(_ context.Context, id string) (domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	if m.now().After(e.expiresAt) {
		delete(m.entries, id)
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return e.session, nil
}

// Put stores a session and refreshes its TTL.
func (m *MemoryStore) Put(_ context.Context, s domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[s.ID] = memoryEntry{session: s, expiresAt: m.now().Add(m.ttl)}
	return nil
}

// Delete removes a session.
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

// Ping always succeeds.
func (m *MemoryStore) Ping(_ context.Context) error { return nil }

// Close is a no-op.
func (m *MemoryStore) Close() {}
