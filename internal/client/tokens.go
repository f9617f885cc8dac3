package client

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"cinecraft/internal/domain/models"
)

// Session is the stored login: the bearer token and who it belongs to.
type Session struct {
	Token     string            `json:"token"`
	User      models.PublicUser `json:"user"`
	ExpiresAt time.Time         `json:"expires_at"`
}

// TokenStore persists the session between requests (and runs, for files).
type TokenStore interface {
	Load() (Session, error)
	Save(Session) error
	Clear() error
}

type MemoryTokenStore struct {
	mu sync.Mutex
	s  Session
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (m *MemoryTokenStore) Load() (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.s, nil
}

func (m *MemoryTokenStore) Save(s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s = s
	return nil
}

func (m *MemoryTokenStore) Clear() error {
	return m.Save(Session{})
}

// FileTokenStore keeps the session as JSON readable only by the owner.
type FileTokenStore struct {
	Path string
	mu   sync.Mutex
}

// DefaultTokenPath is ~/.cinecraft/session.json.
func DefaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cinecraft-session.json"
	}
	return filepath.Join(home, ".cinecraft", "session.json")
}

func (f *FileTokenStore) Load() (Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var s Session
	b, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, err
	}
	if err := json.Unmarshal(b, &s); err != nil {
		return Session{}, err
	}
	return s, nil
}

func (f *FileTokenStore) Save(s Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.Path, b, 0o600)
}

func (f *FileTokenStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	err := os.Remove(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
