package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

const revokedKeyPrefix = "fastfast:session:revoked:"

// Revocation records logged-out token IDs.
type Revocation interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// NewRedisClient connects and pings Redis at addr.
func NewRedisClient(addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		DB:       0,
		PoolSize: 10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}
	return client, nil
}

// RedisRevocation keeps one key per revoked token; Redis expires it with the
// token.
type RedisRevocation struct {
	Client *redis.Client
}

func NewRedisRevocation(client *redis.Client) *RedisRevocation {
	return &RedisRevocation{Client: client}
}

func (r *RedisRevocation) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if err := r.Client.Set(ctx, revokedKeyPrefix+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("store revoked token: %w", err)
	}
	return nil
}

func (r *RedisRevocation) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.Client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("look up revoked token: %w", err)
	}
	return n > 0, nil
}

// MemoryRevocation is the single-process fallback.
type MemoryRevocation struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewMemoryRevocation() *MemoryRevocation {
	return &MemoryRevocation{entries: make(map[string]time.Time), now: time.Now}
}

func (m *MemoryRevocation) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for id, until := range m.entries {
		if now.After(until) {
			delete(m.entries, id)
		}
	}
	m.entries[tokenID] = now.Add(ttl)
	return nil
}

func (m *MemoryRevocation) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	until, ok := m.entries[tokenID]
	return ok && !m.now().After(until), nil
}
