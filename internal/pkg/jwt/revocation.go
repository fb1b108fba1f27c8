package jwt

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationStore remembers revoked tokens until they would have expired anyway.
type RevocationStore interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

type RedisRevocationStore struct {
	client *redis.Client
	prefix string
}

func NewRedisRevocationStore(client *redis.Client, prefix string) *RedisRevocationStore {
	return &RedisRevocationStore{client: client, prefix: prefix}
}

func (s *RedisRevocationStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.prefix+token, "revoked", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (s *RedisRevocationStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	err := s.client.Get(ctx, s.prefix+token).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return true, nil
}

// MemoryRevocationStore is used when no Redis address is configured.
// Expired entries are dropped by Purge.
type MemoryRevocationStore struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewMemoryRevocationStore() *MemoryRevocationStore {
	return &MemoryRevocationStore{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (s *MemoryRevocationStore) Revoke(_ context.Context, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[token] = s.now().Add(ttl)
	return nil
}

func (s *MemoryRevocationStore) IsRevoked(_ context.Context, token string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	until, ok := s.revoked[token]
	return ok && s.now().Before(until), nil
}

// Purge removes expired entries and returns how many were dropped.
func (s *MemoryRevocationStore) Purge(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	dropped := 0
	for token, until := range s.revoked {
		if !now.Before(until) {
			delete(s.revoked, token)
			dropped++
		}
	}
	return dropped, nil
}
