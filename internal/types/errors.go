package types

import "errors"

// Sentinel errors for rule-builder operations.
var (
	// ErrDatabaseNotFound indicates a database id with no matching entry.
	ErrDatabaseNotFound = errors.New("database not found")

	// ErrNoCurrentDatabase indicates an operation that needs an active database.
	ErrNoCurrentDatabase = errors.New("no current database selected")

	// ErrNoCurrentCollection indicates an operation that needs an active collection.
	ErrNoCurrentCollection = errors.New("no current collection selected")

	// ErrPresetNotFound indicates a preset name with no matching entry.
	ErrPresetNotFound = errors.New("preset not found")

	// ErrPresetNameEmpty indicates an attempt to save a preset without a name.
	ErrPresetNameEmpty = errors.New("preset name is empty")

	// ErrUnknownOperation indicates an operation outside the five rule slots.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrSnapshotNotFound indicates no persisted snapshot exists yet.
	ErrSnapshotNotFound = errors.New("snapshot not found")
)
