package prefs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
)

// ConfigStore keeps preferences in a YAML file. Dotted keys become nested
// mappings, and keys it does not own are preserved on write.
type ConfigStore struct {
	path string
	mu   sync.Mutex
}

// NewConfigStore returns a store backed by the YAML file at path. The file
// and its directory are created on first Put.
func NewConfigStore(path string) *ConfigStore {
	return &ConfigStore{path: path}
}

// Path returns the backing file.
func (s *ConfigStore) Path() string { return s.path }

func (s *ConfigStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, exists, err := s.read()
	if err != nil {
		return "", err
	}
	if !exists {
		return "", nil
	}
	return v.GetString(key), nil
}

func (s *ConfigStore) Put(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, _, err := s.read()
	if err != nil {
		return err
	}
	v.Set(key, value)

	//nolint:gosec // G301: User config directory needs standard permissions
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return unavailable("create preference directory", err)
	}
	if err := v.WriteConfigAs(s.path); err != nil {
		return unavailable(fmt.Sprintf("write %s", s.path), err)
	}
	return nil
}

func (s *ConfigStore) Close() error { return nil }

// read loads the file into a fresh viper instance so values never leak
// between stores or into the application config.
func (s *ConfigStore) read() (*viper.Viper, bool, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	info, err := os.Stat(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return v, false, nil
	}
	if err != nil {
		return nil, false, unavailable(fmt.Sprintf("stat %s", s.path), err)
	}
	if info.IsDir() {
		return nil, false, unavailable(fmt.Sprintf("%s is a directory", s.path), nil)
	}
	//nolint:gosec // G304: preference file path comes from configuration
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, false, unavailable(fmt.Sprintf("read %s", s.path), err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return v, true, nil
	}
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, false, unavailable(fmt.Sprintf("parse %s", s.path), err)
	}
	return v, true, nil
}
