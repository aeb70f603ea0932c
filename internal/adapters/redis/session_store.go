package redis

// Package redis provides the Redis-backed session store for production use.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/learnix/learnix-portal/internal/ports"
)

const (
	fieldToken = "token"
	fieldUser  = "user"
	fieldEmail = "email"
)

// SessionStore keeps each session as a Redis hash holding the token, the
// JSON identity, and the convenience email copy. The hash expires with the
// session, so stale records clean themselves up.
type SessionStore struct {
	client redis.UniversalClient
	prefix string
}

// NewSessionStore creates a Redis session store with the default key prefix.
func NewSessionStore(client redis.UniversalClient) *SessionStore {
	return &SessionStore{client: client, prefix: "session:"}
}

// NewSessionStoreWithPrefix creates a Redis session store with a custom key prefix.
func NewSessionStoreWithPrefix(client redis.UniversalClient, prefix string) *SessionStore {
	return &SessionStore{client: client, prefix: prefix}
}

// Save writes the token, user, and email fields together and sets the TTL
// from the record expiry.
func (s *SessionStore) Save(ctx context.Context, rec ports.SessionRecord) error {
	if rec.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	ttl := time.Until(rec.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session is expired")
	}

	key := s.prefix + rec.ID
	fields := map[string]any{
		fieldToken: rec.Token,
		fieldUser:  rec.User,
		fieldEmail: rec.Email,
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis save session: %w", err)
	}
	return nil
}

// Get returns the stored record, or ErrNotFound when the hash is missing or
// already expired.
func (s *SessionStore) Get(ctx context.Context, id string) (ports.SessionRecord, error) {
	if id == "" {
		return ports.SessionRecord{}, ErrNotFound
	}

	key := s.prefix + id
	pipe := s.client.TxPipeline()
	fieldsCmd := pipe.HGetAll(ctx, key)
	ttlCmd := pipe.TTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return ports.SessionRecord{}, fmt.Errorf("redis get session: %w", err)
	}

	fields := fieldsCmd.Val()
	if len(fields) == 0 {
		return ports.SessionRecord{}, ErrNotFound
	}

	rec := ports.SessionRecord{
		ID:    id,
		Token: fields[fieldToken],
		User:  fields[fieldUser],
		Email: fields[fieldEmail],
	}
	if ttl := ttlCmd.Val(); ttl > 0 {
		rec.ExpiresAt = time.Now().Add(ttl)
	}
	return rec, nil
}

// Delete removes all session fields together. Deleting a missing session is
// a no-op.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.client.Del(ctx, s.prefix+id).Err(); err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}

// ErrNotFound is returned when a session is not found.
type notFoundError struct{}

func (notFoundError) Error() string { return "session not found" }

func (notFoundError) NotFound() bool { return true }

var ErrNotFound error = notFoundError{}
