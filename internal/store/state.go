// Package store owns the rule-builder state and is its only writer.
//
// All mutation goes through Store methods; every committed mutation
// recomputes the assembled rule and notifies registered commit hooks with a
// fresh snapshot. The snapshot writer is one such hook, which keeps the
// compiler free of any storage dependency.
//
// The store is single-owner and synchronous: one editor session mutates it
// from one goroutine, so no locking discipline is required.
package store

import (
	"time"

	"github.com/kerimovok/pocketbase-api-rule-builder/internal/rule"
	"github.com/kerimovok/pocketbase-api-rule-builder/internal/schema"
	"github.com/kerimovok/pocketbase-api-rule-builder/internal/types"
)

// CommitHook observes committed state changes. Hooks run synchronously in
// registration order; failures are the hook's own concern (the snapshot
// hook logs and drops errors rather than failing the edit).
type CommitHook func(types.Snapshot)

// Store holds all databases plus the active rule-building session.
type Store struct {
	databases []types.Database
	currentID types.DatabaseID

	operation  types.Operation
	collection string
	config     types.RuleConfig
	preset     string // selected preset name, "" when none

	rule  string
	hooks []CommitHook
}

// New returns an empty store with the list operation active.
func New() *Store {
	s := &Store{
		operation: types.OperationList,
		config:    emptyConfig(),
	}
	s.recompute()
	return s
}

// OnCommit registers a hook invoked after every committed mutation.
func (s *Store) OnCommit(hook CommitHook) {
	s.hooks = append(s.hooks, hook)
}

// Rule returns the assembled rule expression for the active configuration.
// Always current: every mutator recomputes it before returning.
func (s *Store) Rule() string { return s.rule }

// Operation returns the active rule slot.
func (s *Store) Operation() types.Operation { return s.operation }

// Collection returns the active collection name, "" when none.
func (s *Store) Collection() string { return s.collection }

// Config returns the active rule configuration by value.
func (s *Store) Config() types.RuleConfig { return s.config }

// Databases returns all managed databases.
func (s *Store) Databases() []types.Database { return s.databases }

// CurrentDatabase returns the active database.
func (s *Store) CurrentDatabase() (types.Database, bool) {
	for _, db := range s.databases {
		if db.ID == s.currentID {
			return db, true
		}
	}
	return types.Database{}, false
}

// Graph returns the schema graph of the active database. Always non-nil;
// an empty graph resolves nothing, which is the fail-soft contract.
func (s *Store) Graph() *schema.Graph {
	if db, ok := s.CurrentDatabase(); ok {
		return schema.NewGraph(db.Schemas)
	}
	return schema.NewGraph(nil)
}

// Snapshot captures the persisted subset of state: databases and the
// active database id. Session-local editing state is deliberately not
// persisted, matching the original tool.
func (s *Store) Snapshot() types.Snapshot {
	return types.Snapshot{
		Databases:         s.databases,
		CurrentDatabaseID: s.currentID,
	}
}

// LoadSnapshot installs a previously persisted snapshot, normalizing
// whatever shape was last written. It does not notify commit hooks: loading
// is not an edit. A current id that matches no database falls back to the
// first database.
func (s *Store) LoadSnapshot(snap types.Snapshot) {
	s.databases = make([]types.Database, len(snap.Databases))
	for i, db := range snap.Databases {
		s.databases[i] = normalizeDatabase(db)
	}
	s.currentID = snap.CurrentDatabaseID
	if _, ok := s.CurrentDatabase(); !ok {
		s.currentID = ""
		if len(s.databases) > 0 {
			s.currentID = s.databases[0].ID
		}
	}
	s.recompute()
}

// AddDatabase validates schemasJSON as a collection export and installs a
// new database, making it current. The returned error is a
// *schema.ValidationError describing the first violation when validation
// fails.
func (s *Store) AddDatabase(name string, schemasJSON []byte) error {
	schemas, verr := schema.ParseImport(schemasJSON)
	if verr != nil {
		return verr
	}
	now := time.Now().UTC()
	db := types.Database{
		ID:        types.NewDatabaseID(),
		Name:      name,
		Schemas:   schemas,
		Presets:   []types.Preset{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.databases = append(s.databases, db)
	s.currentID = db.ID
	s.resetConfig()
	s.commit()
	return nil
}

// DeleteDatabase removes a database. When the active database is deleted,
// the first remaining one becomes current.
func (s *Store) DeleteDatabase(id types.DatabaseID) {
	kept := make([]types.Database, 0, len(s.databases))
	for _, db := range s.databases {
		if db.ID != id {
			kept = append(kept, db)
		}
	}
	s.databases = kept
	if s.currentID == id {
		s.currentID = ""
		if len(kept) > 0 {
			s.currentID = kept[0].ID
		}
		s.resetConfig()
	}
	s.commit()
}

// SetCurrentDatabase switches the active database and resets the session
// configuration: rule configurations are scoped per database.
func (s *Store) SetCurrentDatabase(id types.DatabaseID) error {
	found := false
	for _, db := range s.databases {
		if db.ID == id {
			found = true
			break
		}
	}
	if !found {
		return types.ErrDatabaseNotFound
	}
	s.currentID = id
	s.collection = ""
	s.resetConfig()
	s.commit()
	return nil
}

// SetOperation switches the active rule slot. The configuration resets,
// then reloads from the selected preset when it carries a configuration
// for the new (collection, operation) slot.
func (s *Store) SetOperation(op types.Operation) error {
	if !op.Valid() {
		return types.ErrUnknownOperation
	}
	preset := s.preset
	s.operation = op
	s.resetConfig()
	if preset != "" {
		s.preset = preset
		s.loadPresetSlot(preset)
	}
	s.commit()
	return nil
}

// SetCollection switches the active collection, resetting the session
// configuration.
func (s *Store) SetCollection(name string) {
	s.collection = name
	s.resetConfig()
	s.commit()
}

// SetAuthenticated toggles the authentication guard clause.
func (s *Store) SetAuthenticated(v bool) {
	s.config.Authenticated = v
	s.commit()
}

// SetOwnerField sets the field driving the ownership clauses.
func (s *Store) SetOwnerField(field string) {
	s.config.OwnerField = field
	s.commit()
}

// SetAuthMatchField sets the update-only relation-ownership field.
func (s *Store) SetAuthMatchField(field string) {
	s.config.AuthMatchField = field
	s.commit()
}

// SetLockFields replaces the update-only immutability field list.
func (s *Store) SetLockFields(fields []string) {
	s.config.LockFields = append([]string(nil), fields...)
	s.commit()
}

// Grouped custom-condition mutators. All delegate to the pure model
// operations in internal/rule and commit the returned value.

func (s *Store) AddCustomGroup(name string) {
	s.config.CustomConditions = rule.AddGroup(s.config.CustomConditions, name)
	s.commit()
}

func (s *Store) RemoveCustomGroup(id types.GroupID) {
	s.config.CustomConditions = rule.RemoveGroup(s.config.CustomConditions, id)
	s.commit()
}

func (s *Store) UpdateCustomGroup(id types.GroupID, patch rule.GroupPatch) {
	s.config.CustomConditions = rule.UpdateGroup(s.config.CustomConditions, id, patch)
	s.commit()
}

func (s *Store) AddCustomCondition(groupID types.GroupID) {
	s.config.CustomConditions = rule.AddCondition(s.config.CustomConditions, groupID)
	s.commit()
}

func (s *Store) RemoveCustomCondition(groupID types.GroupID, conditionID types.ConditionID) {
	s.config.CustomConditions = rule.RemoveCondition(s.config.CustomConditions, groupID, conditionID)
	s.commit()
}

func (s *Store) UpdateCustomCondition(groupID types.GroupID, conditionID types.ConditionID, patch rule.ConditionPatch) {
	s.config.CustomConditions = rule.UpdateCondition(s.config.CustomConditions, groupID, conditionID, patch)
	s.commit()
}

// Grouped attribute-condition mutators, same shape as the custom family.

func (s *Store) AddAbacGroup(name string) {
	s.config.AbacConditions = rule.AddGroup(s.config.AbacConditions, name)
	s.commit()
}

func (s *Store) RemoveAbacGroup(id types.GroupID) {
	s.config.AbacConditions = rule.RemoveGroup(s.config.AbacConditions, id)
	s.commit()
}

func (s *Store) UpdateAbacGroup(id types.GroupID, patch rule.GroupPatch) {
	s.config.AbacConditions = rule.UpdateGroup(s.config.AbacConditions, id, patch)
	s.commit()
}

func (s *Store) AddAbacCondition(groupID types.GroupID) {
	s.config.AbacConditions = rule.AddCondition(s.config.AbacConditions, groupID)
	s.commit()
}

func (s *Store) RemoveAbacCondition(groupID types.GroupID, conditionID types.ConditionID) {
	s.config.AbacConditions = rule.RemoveCondition(s.config.AbacConditions, groupID, conditionID)
	s.commit()
}

func (s *Store) UpdateAbacCondition(groupID types.GroupID, conditionID types.ConditionID, patch rule.ConditionPatch) {
	s.config.AbacConditions = rule.UpdateCondition(s.config.AbacConditions, groupID, conditionID, patch)
	s.commit()
}

// ResetConfiguration clears the active configuration and preset selection.
func (s *Store) ResetConfiguration() {
	s.resetConfig()
	s.commit()
}

// resetConfig restores configuration defaults without committing.
func (s *Store) resetConfig() {
	s.config = emptyConfig()
	s.preset = ""
}

func emptyConfig() types.RuleConfig {
	return types.RuleConfig{
		CustomConditions: types.GroupedConditions{Groups: []types.ConditionGroup{}},
		AbacConditions:   types.GroupedConditions{Groups: []types.ConditionGroup{}},
	}
}

// commit recomputes the derived rule and notifies hooks.
func (s *Store) commit() {
	s.recompute()
	snap := s.Snapshot()
	for _, hook := range s.hooks {
		hook(snap)
	}
}

// recompute derives the assembled rule from current state. Cheap enough to
// run on every edit; no caching beyond this stored string.
func (s *Store) recompute() {
	s.rule = rule.Assemble(s.config, s.operation, s.Graph().FieldNames())
}

// touchCurrentDatabase stamps UpdatedAt on the active database and returns
// a pointer into the slice for in-place preset edits.
func (s *Store) touchCurrentDatabase() *types.Database {
	for i := range s.databases {
		if s.databases[i].ID == s.currentID {
			s.databases[i].UpdatedAt = time.Now().UTC()
			return &s.databases[i]
		}
	}
	return nil
}
