package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"tracklet/internal/track"
)

// JSONStore reads and writes the registry record as a single JSON file,
// format-compatible with the original tracker's data file.
type JSONStore struct {
	path string
}

// NewJSONStore returns a store over the given file path. The file need
// not exist yet.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Save writes the snapshot atomically: encode to a temp file in the same
// directory, then rename over the target, so a crash mid-write never
// truncates the data file.
func (s *JSONStore) Save(r *track.Registry) error {
	data, err := json.Marshal(track.ToRecord(r))
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".tracklet-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace data file: %w", err)
	}
	return nil
}

// Load reads the snapshot. A missing file yields an empty registry, not
// an error; first run starts from nothing.
func (s *JSONStore) Load() (*track.Registry, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return track.NewRegistry(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}

	var rec track.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode data file: %w", err)
	}
	return track.FromRecord(&rec), nil
}

// Close is a no-op; the JSON store holds no resources between calls.
func (s *JSONStore) Close() error {
	return nil
}
