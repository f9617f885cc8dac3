package notify

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// CheckpointStore persists the last time a reader looked at notifications.
// Load returns the zero time when nothing is stored.
type CheckpointStore interface {
	Load(ctx context.Context, key string) (time.Time, error)
	Save(ctx context.Context, key string, t time.Time) error
}

type MemoryCheckpointStore struct {
	mu sync.Mutex
	m  map[string]time.Time
}

func NewMemoryCheckpointStore() *MemoryCheckpointStore {
	return &MemoryCheckpointStore{m: map[string]time.Time{}}
}

func (s *MemoryCheckpointStore) Load(_ context.Context, key string) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m[key], nil
}

func (s *MemoryCheckpointStore) Save(_ context.Context, key string, t time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = t
	return nil
}

// FileCheckpointStore keeps one RFC3339 timestamp per key under Dir.
type FileCheckpointStore struct {
	Dir string
}

func (s FileCheckpointStore) path(key string) string {
	key = strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(key)
	return filepath.Join(s.Dir, key+".checkpoint")
}

func (s FileCheckpointStore) Load(_ context.Context, key string) (time.Time, error) {
	raw, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339Nano, strings.TrimSpace(string(raw)))
}

func (s FileCheckpointStore) Save(_ context.Context, key string, t time.Time) error {
	if err := os.MkdirAll(s.Dir, 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path(key), []byte(t.UTC().Format(time.RFC3339Nano)), 0o600)
}

// RedisCheckpointStore shares checkpoints across server instances.
type RedisCheckpointStore struct {
	Client *redis.Client
	Prefix string
}

func (s RedisCheckpointStore) key(k string) string {
	p := s.Prefix
	if p == "" {
		p = "cinecraft:notifications:last_checked:"
	}
	return p + k
}

func (s RedisCheckpointStore) Load(ctx context.Context, key string) (time.Time, error) {
	raw, err := s.Client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339Nano, raw)
}

func (s RedisCheckpointStore) Save(ctx context.Context, key string, t time.Time) error {
	return s.Client.Set(ctx, s.key(key), t.UTC().Format(time.RFC3339Nano), 0).Err()
}
