// Package prefs provides the durable key-value stores that hold user
// preferences across sessions.
package prefs

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"agents/internal/config"
	apperrors "agents/internal/errors"
)

// Backend kinds accepted by Open.
const (
	KindConfig = "config"
	KindSQLite = "sqlite"
	KindMemory = "memory"
)

// KV is a string key-value store. Get returns "" and a nil error for keys
// that were never written.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Close() error
}

// Slot binds one key of a KV so it can serve as a single-value store.
type Slot struct {
	KV  KV
	Key string
}

// NewSlot returns a Slot for key.
func NewSlot(kv KV, key string) Slot {
	return Slot{KV: kv, Key: key}
}

// Load reads the slot.
func (s Slot) Load(ctx context.Context) (string, error) {
	if s.KV == nil {
		return "", unavailable("no backend", nil)
	}
	return s.KV.Get(ctx, s.Key)
}

// Save writes the slot.
func (s Slot) Save(ctx context.Context, value string) error {
	if s.KV == nil {
		return unavailable("no backend", nil)
	}
	return s.KV.Put(ctx, s.Key, value)
}

// Open returns the backend named by kind. An empty path selects the default
// location under ~/.agents.
func Open(ctx context.Context, kind, path string) (KV, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	path = strings.TrimSpace(path)
	switch kind {
	case "", KindConfig:
		if path == "" {
			p, err := defaultPath("preferences.yaml")
			if err != nil {
				return nil, err
			}
			path = p
		}
		return NewConfigStore(path), nil
	case KindSQLite:
		if path == "" {
			p, err := defaultPath("preferences.db")
			if err != nil {
				return nil, err
			}
			path = p
		}
		return OpenSQLite(ctx, path)
	case KindMemory:
		return NewMemoryStore(), nil
	}
	return nil, apperrors.New(apperrors.CodeConfigurationError,
		fmt.Sprintf("unknown preference storage %q (want config, sqlite or memory)", kind), nil)
}

func defaultPath(name string) (string, error) {
	dir, err := config.UserDir()
	if err != nil {
		return "", unavailable("resolve preference directory", err)
	}
	return filepath.Join(dir, name), nil
}

func unavailable(msg string, err error) error {
	return apperrors.New(apperrors.CodeStorageUnavailable, "preferences: "+msg, err)
}

// MemoryStore keeps values for the life of the process.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[key], nil
}

func (m *MemoryStore) Put(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryStore) Close() error { return nil }

// Unavailable is a backend that rejects every call, standing in for storage
// the host has disabled.
type Unavailable struct {
	Reason error
}

func (u Unavailable) Get(context.Context, string) (string, error) {
	return "", unavailable("storage disabled", u.Reason)
}

func (u Unavailable) Put(context.Context, string, string) error {
	return unavailable("storage disabled", u.Reason)
}

func (u Unavailable) Close() error { return nil }
