// Package cache persists weather observations on disk so repeated
// evaluations for the same location within the TTL do not refetch.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Toulouse790/myfitherov3-sub000/pkg/models"
)

// ObservationStore handles local caching of weather observations
type ObservationStore struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

// NewObservationStore creates a store rooted at dir. Entries older than ttl
// are treated as absent.
func NewObservationStore(dir string, ttl time.Duration) *ObservationStore {
	return &ObservationStore{dir: dir, ttl: ttl, now: time.Now}
}

// Entry represents a cached observation with metadata
type Entry struct {
	Key      string    `json:"key"`
	CachedAt time.Time `json:"cached_at"`
	FilePath string    `json:"file_path"`
}

// Index maintains an index of all cached observations
type Index struct {
	Entries map[string]Entry `json:"entries"`
	Version string           `json:"version"`
}

// Save stores an observation under the given location key.
func (s *ObservationStore) Save(key string, env models.EnvironmentalData) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	obsFile := filepath.Join(s.dir, fmt.Sprintf("%s.yaml", key))

	data, err := yaml.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to marshal observation: %w", err)
	}

	if err := os.WriteFile(obsFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write observation file: %w", err)
	}

	return s.updateIndex(key, obsFile)
}

// Get retrieves a non-expired observation for the given key.
func (s *ObservationStore) Get(key string) (*models.EnvironmentalData, error) {
	index, err := s.loadIndex()
	if err != nil {
		return nil, fmt.Errorf("observation %s not found in cache", key)
	}

	entry, ok := index.Entries[key]
	if !ok {
		return nil, fmt.Errorf("observation %s not found in cache", key)
	}

	if s.now().Sub(entry.CachedAt) > s.ttl {
		return nil, fmt.Errorf("observation %s has expired", key)
	}

	data, err := os.ReadFile(entry.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read observation file: %w", err)
	}

	var env models.EnvironmentalData
	if err := yaml.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to unmarshal observation: %w", err)
	}

	return &env, nil
}

// IsCached checks whether a non-expired observation exists for the key.
func (s *ObservationStore) IsCached(key string) bool {
	_, err := s.Get(key)
	return err == nil
}

// Clear removes all cached observations
func (s *ObservationStore) Clear() error {
	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("failed to clear observation cache: %w", err)
	}
	return os.MkdirAll(s.dir, 0755)
}

// updateIndex updates the cache index with a new entry
func (s *ObservationStore) updateIndex(key, filePath string) error {
	index, err := s.loadIndex()
	if err != nil {
		index = &Index{
			Entries: make(map[string]Entry),
			Version: "1.0",
		}
	}

	index.Entries[key] = Entry{
		Key:      key,
		CachedAt: s.now(),
		FilePath: filePath,
	}

	return s.saveIndex(index)
}

// loadIndex loads the cache index from disk
func (s *ObservationStore) loadIndex() (*Index, error) {
	indexFile := filepath.Join(s.dir, "index.json")

	if _, err := os.Stat(indexFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("index file not found")
	}

	data, err := os.ReadFile(indexFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read index file: %w", err)
	}

	var index Index
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("failed to unmarshal index: %w", err)
	}

	return &index, nil
}

// saveIndex saves the cache index to disk
func (s *ObservationStore) saveIndex(index *Index) error {
	indexFile := filepath.Join(s.dir, "index.json")

	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal index: %w", err)
	}

	return os.WriteFile(indexFile, data, 0644)
}
