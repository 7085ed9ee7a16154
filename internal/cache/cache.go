// Package cache provides the file-backed staging area for generated entity
// payloads. One JSON artifact per entity type lets an interrupted pipeline
// resume persistence without re-invoking the content provider.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Cache keys, one per entity type.
const (
	KeySkills     = "skills"
	KeyRoles      = "roles"
	KeyIndustries = "industries"
)

// Store is a directory of per-entity-type JSON artifacts.
type Store struct {
	dir string
}

// NewStore creates the cache directory if needed and returns a Store over it.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("cache directory is required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the cache directory path.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Write persists the accumulated list for an entity type, replacing any
// previous artifact. The write goes through a temp file and rename so a
// crash mid-write never leaves a truncated artifact behind.
func Write[T any](s *Store, key string, entities []T) error {
	data, err := json.MarshalIndent(entities, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s cache: %w", key, err)
	}

	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s cache: %w", key, err)
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		return fmt.Errorf("failed to commit %s cache: %w", key, err)
	}
	return nil
}

// Read returns the last written list for an entity type, or an empty list
// when nothing has been cached yet.
func Read[T any](s *Store, key string) ([]T, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s cache: %w", key, err)
	}

	var entities []T
	if err := json.Unmarshal(data, &entities); err != nil {
		return nil, fmt.Errorf("failed to parse %s cache: %w", key, err)
	}
	return entities, nil
}
