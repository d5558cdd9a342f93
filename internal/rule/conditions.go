// Package rule implements the rule-expression compiler: immutable model
// operations over grouped conditions, value-literal classification, group
// rendering, and final rule assembly.
package rule

import (
	"github.com/kerimovok/pocketbase-api-rule-builder/internal/types"
)

// DefaultGroupName is used when a group is created without a name.
const DefaultGroupName = "New Group"

// DefaultOperator is the comparison operator of a fresh condition.
const DefaultOperator = "="

// GroupPatch carries optional group field updates. Nil fields are left
// unchanged; conditions are edited through the condition operations below.
type GroupPatch struct {
	Name          *string
	InternalLogic *types.Logic
	Logic         *types.Logic
}

// ConditionPatch carries optional condition field updates.
type ConditionPatch struct {
	Operand1 *string
	Operator *string
	Operand2 *string
	Operand3 *string
}

// NewConditionGroup returns a fresh empty group. Both logic fields default
// to AND.
func NewConditionGroup(name string) types.ConditionGroup {
	if name == "" {
		name = DefaultGroupName
	}
	return types.ConditionGroup{
		ID:            types.NewGroupID(),
		Name:          name,
		Conditions:    []types.Condition{},
		InternalLogic: types.LogicAnd,
		Logic:         types.LogicAnd,
	}
}

// NewCondition returns a fresh condition with empty operands and the
// default operator. No validation happens at this layer; incomplete
// conditions are filtered by the renderer.
func NewCondition() types.Condition {
	return types.Condition{
		ID:       types.NewConditionID(),
		Operator: DefaultOperator,
	}
}

// AddGroup appends a fresh group and returns the new family value.
func AddGroup(gc types.GroupedConditions, name string) types.GroupedConditions {
	groups := make([]types.ConditionGroup, 0, len(gc.Groups)+1)
	groups = append(groups, gc.Groups...)
	groups = append(groups, NewConditionGroup(name))
	return types.GroupedConditions{Groups: groups}
}

// RemoveGroup drops the group with the given id. Unknown ids are a no-op.
func RemoveGroup(gc types.GroupedConditions, id types.GroupID) types.GroupedConditions {
	groups := make([]types.ConditionGroup, 0, len(gc.Groups))
	for _, g := range gc.Groups {
		if g.ID != id {
			groups = append(groups, g)
		}
	}
	return types.GroupedConditions{Groups: groups}
}

// UpdateGroup merges patch fields into the matching group. Unknown ids are
// a no-op; the input value is never mutated.
func UpdateGroup(gc types.GroupedConditions, id types.GroupID, patch GroupPatch) types.GroupedConditions {
	groups := make([]types.ConditionGroup, len(gc.Groups))
	for i, g := range gc.Groups {
		if g.ID == id {
			if patch.Name != nil {
				g.Name = *patch.Name
			}
			if patch.InternalLogic != nil {
				g.InternalLogic = *patch.InternalLogic
			}
			if patch.Logic != nil {
				g.Logic = *patch.Logic
			}
		}
		groups[i] = g
	}
	return types.GroupedConditions{Groups: groups}
}

// AddCondition appends a fresh condition to the matching group.
func AddCondition(gc types.GroupedConditions, groupID types.GroupID) types.GroupedConditions {
	return mapGroup(gc, groupID, func(g types.ConditionGroup) types.ConditionGroup {
		conditions := make([]types.Condition, 0, len(g.Conditions)+1)
		conditions = append(conditions, g.Conditions...)
		conditions = append(conditions, NewCondition())
		g.Conditions = conditions
		return g
	})
}

// RemoveCondition drops the condition with the given id from the matching
// group.
func RemoveCondition(gc types.GroupedConditions, groupID types.GroupID, conditionID types.ConditionID) types.GroupedConditions {
	return mapGroup(gc, groupID, func(g types.ConditionGroup) types.ConditionGroup {
		conditions := make([]types.Condition, 0, len(g.Conditions))
		for _, c := range g.Conditions {
			if c.ID != conditionID {
				conditions = append(conditions, c)
			}
		}
		g.Conditions = conditions
		return g
	})
}

// UpdateCondition merges patch fields into the matching condition.
func UpdateCondition(gc types.GroupedConditions, groupID types.GroupID, conditionID types.ConditionID, patch ConditionPatch) types.GroupedConditions {
	return mapGroup(gc, groupID, func(g types.ConditionGroup) types.ConditionGroup {
		conditions := make([]types.Condition, len(g.Conditions))
		for i, c := range g.Conditions {
			if c.ID == conditionID {
				if patch.Operand1 != nil {
					c.Operand1 = *patch.Operand1
				}
				if patch.Operator != nil {
					c.Operator = *patch.Operator
				}
				if patch.Operand2 != nil {
					c.Operand2 = *patch.Operand2
				}
				if patch.Operand3 != nil {
					c.Operand3 = *patch.Operand3
				}
			}
			conditions[i] = c
		}
		g.Conditions = conditions
		return g
	})
}

// mapGroup rebuilds the group slice, applying fn to the matching group.
// Group structs are value types so untouched groups share their condition
// slices safely; fn must replace, not mutate, any slice it changes.
func mapGroup(gc types.GroupedConditions, id types.GroupID, fn func(types.ConditionGroup) types.ConditionGroup) types.GroupedConditions {
	groups := make([]types.ConditionGroup, len(gc.Groups))
	for i, g := range gc.Groups {
		if g.ID == id {
			g = fn(g)
		}
		groups[i] = g
	}
	return types.GroupedConditions{Groups: groups}
}
