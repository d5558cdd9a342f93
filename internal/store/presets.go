package store

import (
	"strings"

	"github.com/kerimovok/pocketbase-api-rule-builder/internal/types"
)

/*
 * Preset management.
 *
 * A preset is a named bundle of rule configurations keyed by collection and
 * operation, owned by the active database. Saving captures the active
 * configuration by value into the (collection, operation) slot; loading
 * restores only that slot and leaves the preset's other slots latent until
 * the user navigates to them.
 *
 * Loaded configurations pass through the same fail-soft normalization as
 * persisted snapshots: missing ids are regenerated, missing logic fields
 * default to AND, missing operators default to "=". Unrecognizable shapes
 * collapse to empty grouped conditions rather than erroring.
 */

// Presets returns the active database's presets.
func (s *Store) Presets() []types.Preset {
	if db, ok := s.CurrentDatabase(); ok {
		return db.Presets
	}
	return nil
}

// CurrentPreset returns the selected preset name, "" when none.
func (s *Store) CurrentPreset() string { return s.preset }

// PresetsFor returns the presets carrying a configuration for the given
// (operation, collection) slot.
func (s *Store) PresetsFor(op types.Operation, collection string) []types.Preset {
	if collection == "" {
		return nil
	}
	var out []types.Preset
	for _, p := range s.Presets() {
		if _, ok := p.Rules[collection][op]; ok {
			out = append(out, p)
		}
	}
	return out
}

// SavePreset captures the active configuration into the named preset's
// (collection, operation) slot, creating the preset when the name is new.
func (s *Store) SavePreset(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return types.ErrPresetNameEmpty
	}
	db := s.touchCurrentDatabase()
	if db == nil {
		return types.ErrNoCurrentDatabase
	}
	if s.collection == "" {
		return types.ErrNoCurrentCollection
	}

	cfg := s.config
	cfg.LockFields = compactFields(cfg.LockFields)

	idx := -1
	for i, p := range db.Presets {
		if p.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		db.Presets = append(db.Presets, types.Preset{
			Name:  name,
			Rules: map[string]map[types.Operation]types.RuleConfig{},
		})
		idx = len(db.Presets) - 1
	}
	if db.Presets[idx].Rules == nil {
		db.Presets[idx].Rules = map[string]map[types.Operation]types.RuleConfig{}
	}
	if db.Presets[idx].Rules[s.collection] == nil {
		db.Presets[idx].Rules[s.collection] = map[types.Operation]types.RuleConfig{}
	}
	db.Presets[idx].Rules[s.collection][s.operation] = cfg

	s.preset = name
	s.commit()
	return nil
}

// LoadPreset selects the named preset and, when it carries a configuration
// for the active (collection, operation) slot, restores that configuration.
func (s *Store) LoadPreset(name string) error {
	found := false
	for _, p := range s.Presets() {
		if p.Name == name {
			found = true
			break
		}
	}
	if !found {
		return types.ErrPresetNotFound
	}
	if s.collection == "" {
		return types.ErrNoCurrentCollection
	}
	s.preset = name
	s.loadPresetSlot(name)
	s.commit()
	return nil
}

// DeletePreset removes the named preset from the active database.
func (s *Store) DeletePreset(name string) error {
	db := s.touchCurrentDatabase()
	if db == nil {
		return types.ErrNoCurrentDatabase
	}
	kept := make([]types.Preset, 0, len(db.Presets))
	removed := false
	for _, p := range db.Presets {
		if p.Name == name {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	if !removed {
		return types.ErrPresetNotFound
	}
	db.Presets = kept
	if s.preset == name {
		s.preset = ""
	}
	s.commit()
	return nil
}

// loadPresetSlot restores the named preset's configuration for the active
// slot without committing. Missing slots leave the configuration untouched.
func (s *Store) loadPresetSlot(name string) {
	for _, p := range s.Presets() {
		if p.Name != name {
			continue
		}
		if cfg, ok := p.Rules[s.collection][s.operation]; ok {
			s.config = normalizeConfig(cfg)
		}
		return
	}
}

// compactFields drops blank entries, preserving order.
func compactFields(fields []string) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			out = append(out, f)
		}
	}
	return out
}

// normalizeConfig repairs a configuration read from a preset or snapshot.
func normalizeConfig(cfg types.RuleConfig) types.RuleConfig {
	cfg.CustomConditions = normalizeGrouped(cfg.CustomConditions)
	cfg.AbacConditions = normalizeGrouped(cfg.AbacConditions)
	return cfg
}

// normalizeGrouped fills defaults for fields older snapshots may omit.
func normalizeGrouped(gc types.GroupedConditions) types.GroupedConditions {
	groups := make([]types.ConditionGroup, len(gc.Groups))
	for i, g := range gc.Groups {
		if g.ID == "" {
			g.ID = types.NewGroupID()
		}
		if g.Name == "" {
			g.Name = "New Group"
		}
		g.InternalLogic = g.InternalLogic.OrDefault()
		g.Logic = g.Logic.OrDefault()
		conditions := make([]types.Condition, len(g.Conditions))
		for j, c := range g.Conditions {
			if c.ID == "" {
				c.ID = types.NewConditionID()
			}
			if c.Operator == "" {
				c.Operator = "="
			}
			conditions[j] = c
		}
		g.Conditions = conditions
		groups[i] = g
	}
	return types.GroupedConditions{Groups: groups}
}

// normalizeDatabase repairs a database read from a persisted snapshot.
func normalizeDatabase(db types.Database) types.Database {
	if db.ID == "" {
		db.ID = types.NewDatabaseID()
	}
	for i, p := range db.Presets {
		if p.Rules == nil {
			db.Presets[i].Rules = map[string]map[types.Operation]types.RuleConfig{}
			continue
		}
		for collection, byOp := range p.Rules {
			for op, cfg := range byOp {
				p.Rules[collection][op] = normalizeConfig(cfg)
			}
		}
	}
	return db
}
