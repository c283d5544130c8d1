package playlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned for unknown or expired playlists
var ErrNotFound = errors.New("playlist not found")

// Stored is a generated playlist kept for later retrieval
type Stored struct {
	ID        string       `json:"id"`
	Seed      int64        `json:"seed"`
	Request   NamedRequest `json:"request"`
	Result    Result       `json:"result"`
	CreatedAt time.Time    `json:"createdAt"`
}

// Store keeps generated playlists for a limited time
type Store interface {
	Put(ctx context.Context, p *Stored) error
	Get(ctx context.Context, id string) (*Stored, error)
}

type memoryEntry struct {
	playlist  *Stored
	expiresAt time.Time
}

// MemoryStore is the fallback used when Redis is disabled
type MemoryStore struct {
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
	mu      sync.Mutex
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) Put(ctx context.Context, p *Stored) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, id)
		}
	}

	s.entries[p.ID] = memoryEntry{playlist: p, expiresAt: now.Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Stored, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	if s.now().After(entry.expiresAt) {
		delete(s.entries, id)
		return nil, ErrNotFound
	}
	return entry.playlist, nil
}

const redisKeyPrefix = "playlist:"

// RedisStore keeps playlists as JSON values with a TTL
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisStore(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisStore {
	logger.Debug("Initializing redis playlist store", "ttl", ttl)

	return &RedisStore{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (s *RedisStore) Put(ctx context.Context, p *Stored) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode playlist: %w", err)
	}

	if err := s.client.Set(ctx, redisKeyPrefix+p.ID, data, s.ttl).Err(); err != nil {
		s.logger.Error("Failed to store playlist", "playlist_id", p.ID, "error", err)
		return fmt.Errorf("failed to store playlist: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Stored, error) {
	data, err := s.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		s.logger.Error("Failed to fetch playlist", "playlist_id", id, "error", err)
		return nil, fmt.Errorf("failed to fetch playlist: %w", err)
	}

	var p Stored
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode playlist: %w", err)
	}
	return &p, nil
}
