package dataset

import (
	"errors"
)

// ErrEmptyDataset is returned by HealthCheck when the working table
// loaded without a single usable record.
var ErrEmptyDataset = errors.New("dataset is empty")

// Store holds the loaded snapshot and is shared read-only by every
// request; nothing mutates it after Load.
type Store struct {
	snap *Snapshot
}

// NewStore wraps a loaded snapshot for the server.
func NewStore(snap *Snapshot) *Store {
	return &Store{snap: snap}
}

// Snapshot returns the loaded working table.
func (s *Store) Snapshot() *Snapshot {
	return s.snap
}

// HealthCheck reports whether the store can serve the dashboard.
func (s *Store) HealthCheck() error {
	if s.snap == nil || len(s.snap.Records) == 0 {
		return ErrEmptyDataset
	}
	return nil
}
