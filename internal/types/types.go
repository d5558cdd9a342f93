// Package types provides domain models shared across rule-builder components.
//
// Zero-dependency design: types.go and errors.go use only the standard
// library so the compiler packages stay import-light. ID utilities in ids.go
// import uuid but are isolated for selective inclusion.
//
// JSON tags mirror the persisted snapshot layout exactly; snapshots written
// by earlier iterations of the tool must remain readable without a version
// field (see normalization in internal/store).
package types

import "time"

// Operation identifies one of the five CRUD rule slots a collection carries.
// The string values are the PocketBase rule property names, which is also
// how presets key their per-operation configurations.
type Operation string

const (
	OperationList   Operation = "listRule"
	OperationView   Operation = "viewRule"
	OperationCreate Operation = "createRule"
	OperationUpdate Operation = "updateRule"
	OperationDelete Operation = "deleteRule"
)

// Operations returns all rule slots in display order.
func Operations() []Operation {
	return []Operation{OperationList, OperationView, OperationCreate, OperationUpdate, OperationDelete}
}

// IsRead reports whether the operation reads existing records (list/view).
func (o Operation) IsRead() bool {
	return o == OperationList || o == OperationView
}

// IsWrite reports whether the operation submits record data (create/update).
// Delete carries no request data and is neither read nor write here.
func (o Operation) IsWrite() bool {
	return o == OperationCreate || o == OperationUpdate
}

// Valid reports whether o is one of the five known rule slots.
func (o Operation) Valid() bool {
	switch o {
	case OperationList, OperationView, OperationCreate, OperationUpdate, OperationDelete:
		return true
	}
	return false
}

// Logic is a boolean join operator between conditions or groups.
type Logic string

const (
	LogicAnd Logic = "and"
	LogicOr  Logic = "or"
)

// Token returns the expression-language operator for the join.
// Unknown values fall back to && so a malformed persisted group still
// renders a well-formed expression.
func (l Logic) Token() string {
	if l == LogicOr {
		return "||"
	}
	return "&&"
}

// OrDefault normalizes unknown logic values to LogicAnd.
func (l Logic) OrDefault() Logic {
	if l == LogicOr {
		return LogicOr
	}
	return LogicAnd
}

// Condition is one atomic comparison inside a group.
//
// Operand1 is a field path (custom mode) or a relation/collection path
// (attribute mode). Operand2 is the comparison operand in custom mode and
// the JSON key path in attribute mode. Operand3 carries the expected value
// in attribute mode only; Operator is ignored there. One struct serves both
// families because presets persist them through the same JSON shape; the
// renderer's mode decides which operands are required.
type Condition struct {
	ID       ConditionID `json:"id"`
	Operand1 string      `json:"operand1"`
	Operator string      `json:"operator"`
	Operand2 string      `json:"operand2"`
	Operand3 string      `json:"operand3,omitempty"`
}

// ConditionGroup is an ordered set of conditions joined by InternalLogic.
// Logic joins this group's rendered output to the next group's: the join
// operator in front of group n is read from group n-1.
type ConditionGroup struct {
	ID            GroupID     `json:"id"`
	Name          string      `json:"name"`
	Conditions    []Condition `json:"conditions"`
	InternalLogic Logic       `json:"internalLogic"`
	Logic         Logic       `json:"logic"`
}

// GroupedConditions is one condition family. Ordering of groups and of
// conditions within a group is significant: it determines left-to-right
// operator position in the flat output.
type GroupedConditions struct {
	Groups []ConditionGroup `json:"groups"`
}

// RuleConfig is the ephemeral per-(collection, operation) configuration the
// editor mutates. It is reset wholesale on operation or collection switch
// and captured by value into presets.
type RuleConfig struct {
	Authenticated    bool              `json:"authenticated"`
	OwnerField       string            `json:"ownerField"`
	LockFields       []string          `json:"lockFields,omitempty"`
	AuthMatchField   string            `json:"authMatchField,omitempty"`
	CustomConditions GroupedConditions `json:"groupedCustomConditions"`
	AbacConditions   GroupedConditions `json:"groupedAbacConditions"`
}

// Preset is a named, saved set of rule configurations keyed by collection
// name and operation. Loading a preset only affects the active
// (collection, operation) slot; the rest stay latent.
type Preset struct {
	Name  string                              `json:"name"`
	Rules map[string]map[Operation]RuleConfig `json:"rules"`
}

// FieldTypeRelation marks a field that links to another collection.
const FieldTypeRelation = "relation"

// FieldOptions holds type-specific field settings. Relation fields carry a
// typed target collection id instead of the loosely-typed options bag the
// exported schema uses.
type FieldOptions struct {
	TargetCollectionID CollectionID `json:"collectionId,omitempty"`
}

// Field describes one column of a collection schema.
type Field struct {
	Name        string       `json:"name"`
	Type        string       `json:"type"`
	Required    bool         `json:"required"`
	Options     FieldOptions `json:"options,omitempty"`
	Description string       `json:"description,omitempty"`
}

// IsRelation reports whether the field links to another collection.
func (f Field) IsRelation() bool {
	return f.Type == FieldTypeRelation && f.Options.TargetCollectionID != ""
}

// CollectionSchema is one collection's exported field list. Relation fields
// reference other schemas in the same Database by collection id, forming a
// directed (possibly cyclic) graph.
type CollectionSchema struct {
	ID     CollectionID `json:"id"`
	Name   string       `json:"name"`
	Fields []Field      `json:"fields"`
}

// Database owns its schemas and presets exclusively.
type Database struct {
	ID        DatabaseID         `json:"id"`
	Name      string             `json:"name"`
	Schemas   []CollectionSchema `json:"schemas"`
	Presets   []Preset           `json:"presets"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// Snapshot is the single keyed persisted state layout. No version field:
// readers accept whatever shape was last written and normalize fail-soft.
type Snapshot struct {
	Databases         []Database `json:"databases"`
	CurrentDatabaseID DatabaseID `json:"currentDatabaseId"`
}

// FieldSet is the set of field names the literal classifier consults to
// recognize bare field references.
type FieldSet map[string]struct{}

// NewFieldSet builds a FieldSet from field names.
func NewFieldSet(names ...string) FieldSet {
	s := make(FieldSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Has reports whether name is a known field.
func (s FieldSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}
