package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kerimovok/pocketbase-api-rule-builder/internal/types"
)

// SnapshotKey is the single key under which builder state persists.
// Matches the storage key of earlier iterations of the tool so existing
// snapshots keep loading.
const SnapshotKey = "rule-builder-storage"

// SnapshotStore persists the full rule-builder snapshot as one keyed JSON
// row. Writes are last-writer-wins with no merge semantics: the whole
// document is replaced on every committed state change.
type SnapshotStore struct {
	queries *Queries
}

// NewSnapshotStore wraps named queries for snapshot access.
func NewSnapshotStore(queries *Queries) *SnapshotStore {
	return &SnapshotStore{queries: queries}
}

// Save serializes and upserts the snapshot under SnapshotKey.
func (s *SnapshotStore) Save(snap types.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	// sqlite stores timestamps as RFC3339 text; postgres casts the same
	// representation to its timestamp column.
	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := s.queries.Exec("upsert-snapshot", SnapshotKey, string(data), now); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// Load reads and deserializes the persisted snapshot.
// Returns types.ErrSnapshotNotFound when nothing was ever written.
func (s *SnapshotStore) Load() (types.Snapshot, error) {
	var data string
	if err := s.queries.Get("get-snapshot", &data, SnapshotKey); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Snapshot{}, types.ErrSnapshotNotFound
		}
		return types.Snapshot{}, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap types.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return types.Snapshot{}, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return snap, nil
}
