package types

import "github.com/google/uuid"

// ConditionID identifies one condition within its owning group.
// Stable across edits; the editor uses it for reconciliation, never for
// compilation order.
type ConditionID string

// GroupID identifies one condition group.
type GroupID string

// DatabaseID identifies one managed database.
type DatabaseID string

// CollectionID identifies one collection schema; relation fields reference
// their target schema by this id.
type CollectionID string

// NewConditionID generates a UUIDv7 condition identifier.
func NewConditionID() ConditionID {
	return ConditionID(uuid.Must(uuid.NewV7()).String())
}

// NewGroupID generates a UUIDv7 group identifier.
func NewGroupID() GroupID {
	return GroupID(uuid.Must(uuid.NewV7()).String())
}

// NewDatabaseID generates a UUIDv7 database identifier.
func NewDatabaseID() DatabaseID {
	return DatabaseID(uuid.Must(uuid.NewV7()).String())
}
