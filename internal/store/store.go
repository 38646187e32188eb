// Package store persists registry snapshots. The engine defines the
// record shape; this package only moves it to and from disk, either as
// the legacy JSON file or as a SQLite database.
package store

import (
	"fmt"

	"tracklet/internal/track"
)

// Store is the persistence collaborator: it saves a full registry
// snapshot after each mutating command and loads one at startup.
type Store interface {
	Save(r *track.Registry) error
	Load() (*track.Registry, error)
	Close() error
}

// Open selects a backend by name. "json" is the default and reads files
// written by earlier versions of the tracker unchanged.
func Open(backend, path string) (Store, error) {
	switch backend {
	case "", "json":
		return NewJSONStore(path), nil
	case "sqlite":
		return NewSQLiteStore(path)
	}
	return nil, fmt.Errorf("unknown storage backend %q", backend)
}
