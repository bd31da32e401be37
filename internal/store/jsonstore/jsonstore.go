package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// JSON-backed key/value storage. Single file, human-readable, portable.
// No locking across processes; fine for a local single-user tool.

const FileName = "state.json"

// Store keeps every key in one JSON object on disk.
type Store struct {
	path string

	// Recovered is where a corrupt file was moved aside on Open, if any.
	Recovered string

	mu     sync.Mutex
	values map[string]string
}

// Open reads the file at path. A missing file is an empty store. A file
// that is not a JSON object is renamed to path+".corrupt" and the store
// starts empty.
func Open(path string) (*Store, error) {
	s := &Store{path: path, values: map[string]string{}}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	if len(b) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(b, &s.values); err != nil {
		s.values = map[string]string{}
		s.Recovered = path + ".corrupt"
		if err := os.Rename(path, s.Recovered); err != nil {
			return nil, fmt.Errorf("move corrupt file: %w", err)
		}
		return s, nil
	}
	if s.values == nil {
		s.values = map[string]string{}
	}
	return s, nil
}

// OpenDir opens FileName inside dir, creating dir if needed.
func OpenDir(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}
	return Open(filepath.Join(dir, FileName))
}

func (s *Store) Path() string { return s.path }

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok, nil
}

// Set updates key and rewrites the whole file.
func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, had := s.values[key]
	s.values[key] = value
	if err := s.save(); err != nil {
		if had {
			s.values[key] = prev
		} else {
			delete(s.values, key)
		}
		return err
	}
	return nil
}

func (s *Store) Close() error { return nil }

func (s *Store) save() error {
	b, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
