// Package schema provides the collection-schema graph, relation-path
// resolution, and import validation for user-pasted schema exports.
package schema

import (
	"github.com/kerimovok/pocketbase-api-rule-builder/internal/types"
)

/*
 * Relation-path resolution.
 *
 * A database's schemas form a directed graph: relation fields point at
 * other schemas by collection id. Resolve walks a dotted path of field
 * names through that graph and yields the fields reachable at the end of
 * the path, for field-reference recognition and path autocomplete.
 *
 * Fail-soft contract: every dead end (unknown start collection, unknown
 * field, non-relation segment before the end of the path, relation link to
 * a missing schema) yields an empty result, never an error. Callers treat
 * "no fields" as a legitimate outcome.
 *
 * Cycles are legal; traversal is bounded by the path length, so a cyclic
 * graph cannot loop.
 */

// Graph indexes one database's collection schemas for O(1) traversal.
// Lookups go through maps keyed by collection id (relation targets) and
// name (path starts); no scans.
type Graph struct {
	schemas []types.CollectionSchema
	byID    map[types.CollectionID]int
	byName  map[string]int
}

// NewGraph builds the index over a database's schemas. Later duplicates of
// an id or name shadow earlier ones, matching last-write display order.
func NewGraph(schemas []types.CollectionSchema) *Graph {
	g := &Graph{
		schemas: schemas,
		byID:    make(map[types.CollectionID]int, len(schemas)),
		byName:  make(map[string]int, len(schemas)),
	}
	for i, s := range schemas {
		if s.ID != "" {
			g.byID[s.ID] = i
		}
		g.byName[s.Name] = i
	}
	return g
}

// ByName returns the schema with the given collection name.
func (g *Graph) ByName(name string) (types.CollectionSchema, bool) {
	if i, ok := g.byName[name]; ok {
		return g.schemas[i], true
	}
	return types.CollectionSchema{}, false
}

// ByID returns the schema with the given collection id.
func (g *Graph) ByID(id types.CollectionID) (types.CollectionSchema, bool) {
	if i, ok := g.byID[id]; ok {
		return g.schemas[i], true
	}
	return types.CollectionSchema{}, false
}

// CollectionNames returns all collection names in schema order.
func (g *Graph) CollectionNames() []string {
	names := make([]string, len(g.schemas))
	for i, s := range g.schemas {
		names[i] = s.Name
	}
	return names
}

// FieldNames returns the set of every field name across all collections.
// This is the set the literal classifier consults: a bare value matching
// any field name anywhere in the database is treated as a field reference.
func (g *Graph) FieldNames() types.FieldSet {
	set := make(types.FieldSet)
	for _, s := range g.schemas {
		for _, f := range s.Fields {
			set[f.Name] = struct{}{}
		}
	}
	return set
}

// Resolve walks path from the named start collection and returns the
// fields available at the end of the path. An empty path yields the start
// collection's own fields. Each non-final segment must be a relation field;
// the final segment yields its target collection's fields when it is a
// relation and nothing otherwise.
func (g *Graph) Resolve(path []string, start string) []types.Field {
	current, ok := g.ByName(start)
	if !ok {
		return nil
	}

	if len(path) == 0 {
		return current.Fields
	}

	for _, segment := range path {
		field, ok := findField(current.Fields, segment)
		if !ok {
			return nil
		}
		if !field.IsRelation() {
			// Non-relation mid-path is invalid; non-relation at the end
			// has no subfields to offer.
			return nil
		}
		next, ok := g.ByID(field.Options.TargetCollectionID)
		if !ok {
			return nil
		}
		current = next
	}

	return current.Fields
}

func findField(fields []types.Field, name string) (types.Field, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return types.Field{}, false
}
