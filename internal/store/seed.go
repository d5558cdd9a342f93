package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/kerimovok/pocketbase-api-rule-builder/internal/types"
)

// BundleDatabase is one entry of the startup seed document: a database
// name with its exported schemas and shipped presets.
type BundleDatabase struct {
	Name    string                   `json:"name"`
	Schemas []types.CollectionSchema `json:"schemas"`
	Presets []types.Preset           `json:"presets"`
}

// Seed installs default databases from a bundle document. It is a no-op
// when the store already holds databases (a persisted snapshot takes
// precedence over shipped defaults). Malformed presets degrade to an empty
// rule set instead of failing the seed; a bundle that does not parse at all
// is the only error.
func (s *Store) Seed(bundle []byte) error {
	if len(s.databases) > 0 {
		return nil
	}

	var entries []BundleDatabase
	if err := json.Unmarshal(bundle, &entries); err != nil {
		return fmt.Errorf("failed to parse seed bundle: %w", err)
	}

	now := time.Now().UTC()
	for _, entry := range entries {
		presets := make([]types.Preset, 0, len(entry.Presets))
		for _, p := range entry.Presets {
			if p.Name == "" {
				// Nameless presets are unselectable; drop them.
				continue
			}
			if p.Rules == nil {
				p.Rules = map[string]map[types.Operation]types.RuleConfig{}
			}
			presets = append(presets, p)
		}
		s.databases = append(s.databases, normalizeDatabase(types.Database{
			ID:        types.NewDatabaseID(),
			Name:      entry.Name,
			Schemas:   entry.Schemas,
			Presets:   presets,
			CreatedAt: now,
			UpdatedAt: now,
		}))
	}

	if s.currentID == "" && len(s.databases) > 0 {
		s.currentID = s.databases[0].ID
	}
	s.recompute()
	return nil
}
