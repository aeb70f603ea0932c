package memstore

// Package memstore provides an in-memory session store for development and
// tests. It mirrors the Redis adapter's semantics, including expiry.

import (
	"context"
	"sync"
	"time"

	"github.com/learnix/learnix-portal/internal/ports"
)

// SessionStore keeps session records in a map guarded by a mutex. Expired
// records are dropped lazily on Get.
type SessionStore struct {
	mu      sync.RWMutex
	records map[string]ports.SessionRecord
	now     func() time.Time
}

// NewSessionStore creates an empty in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		records: make(map[string]ports.SessionRecord),
		now:     time.Now,
	}
}

// NewSessionStoreWithClock creates a store with a custom clock, for tests.
func NewSessionStoreWithClock(now func() time.Time) *SessionStore {
	s := NewSessionStore()
	s.now = now
	return s
}

// Save stores the record, rejecting empty IDs and already-expired sessions.
func (s *SessionStore) Save(_ context.Context, rec ports.SessionRecord) error {
	if rec.ID == "" {
		return errEmptyID
	}
	if !rec.ExpiresAt.After(s.now()) {
		return errExpired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ID] = rec
	return nil
}

// Get returns the stored record or ErrNotFound. Expired records are removed
// and reported as not found.
func (s *SessionStore) Get(_ context.Context, id string) (ports.SessionRecord, error) {
	if id == "" {
		return ports.SessionRecord{}, ErrNotFound
	}
	s.mu.RLock()
	rec, ok := s.records[id]
	s.mu.RUnlock()
	if !ok {
		return ports.SessionRecord{}, ErrNotFound
	}
	if !rec.ExpiresAt.After(s.now()) {
		s.mu.Lock()
		delete(s.records, id)
		s.mu.Unlock()
		return ports.SessionRecord{}, ErrNotFound
	}
	return rec, nil
}

// Delete removes the record. Deleting a missing session is a no-op.
func (s *SessionStore) Delete(_ context.Context, id string) error {
	if id == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}

// Len reports the number of live records, for tests.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

type storeError string

func (e storeError) Error() string { return string(e) }

func (e storeError) NotFound() bool { return e == ErrNotFound || e == errExpired }

const (
	// ErrNotFound is returned when a session is not found.
	ErrNotFound = storeError("session not found")

	errEmptyID = storeError("session ID cannot be empty")
	errExpired = storeError("session is expired")
)
