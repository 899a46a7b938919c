package listings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pytogo/website/pkg/config"
)

// ErrCacheMiss indicates the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// CacheStore is the backend holding serialized listing snapshots.
type CacheStore interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte, ttl time.Duration) error
	Close() error
}

// NewCacheStore selects a cache backend from config.
func NewCacheStore(cfg config.CacheConfig) (CacheStore, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Type)) {
	case config.CacheTypeRedis:
		return NewRedisStore(cfg)
	case config.CacheTypeInMemory, "":
		return NewInMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported cache.type %q (supported: %s, %s)", cfg.Type, config.CacheTypeRedis, config.CacheTypeInMemory)
	}
}

type inMemoryItem struct {
	value     []byte
	expiresAt time.Time
}

// InMemoryStore is a simple in-process cache backend.
type InMemoryStore struct {
	mu    sync.RWMutex
	items map[string]inMemoryItem
}

// NewInMemoryStore creates an in-memory cache store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		items: make(map[string]inMemoryItem),
	}
}

// Get loads a key from memory.
func (s *InMemoryStore) Get(key string) ([]byte, error) {
	s.mu.RLock()
	item, ok := s.items[key]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrCacheMiss
	}
	if time.Now().After(item.expiresAt) {
		s.mu.Lock()
		delete(s.items, key)
		s.mu.Unlock()
		return nil, ErrCacheMiss
	}
	return append([]byte{}, item.value...), nil
}

// Set stores a key with TTL.
func (s *InMemoryStore) Set(key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = time.Second
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = inMemoryItem{
		value:     append([]byte{}, value...),
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Close is a no-op for in-memory store.
func (s *InMemoryStore) Close() error {
	return nil
}

type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Close() error
}

// RedisStore persists cache entries in Redis.
type RedisStore struct {
	client    redisClient
	opTimeout time.Duration
	prefix    string
}

// NewRedisStore creates a Redis-backed cache store.
func NewRedisStore(cfg config.CacheConfig) (*RedisStore, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, errors.New("redis cache url is required")
	}
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if cfg.MaxConns > 0 {
		opts.PoolSize = cfg.MaxConns
	}
	client := redis.NewClient(opts)

	timeout := cfg.OperationTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &RedisStore{
		client:    client,
		opTimeout: timeout,
		prefix:    "listings",
	}, nil
}

// Get loads an entry from Redis.
func (s *RedisStore) Get(key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.opTimeout)
	defer cancel()
	raw, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}
	return []byte(raw), nil
}

// Set stores an entry with TTL.
func (s *RedisStore) Set(key string, value []byte, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.opTimeout)
	defer cancel()
	return s.client.Set(ctx, s.key(key), value, ttl).Err()
}

// Close closes the Redis client.
func (s *RedisStore) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

func (s *RedisStore) key(key string) string {
	return fmt.Sprintf("%s:%s", s.prefix, key)
}
