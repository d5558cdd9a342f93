package rule

import (
	"fmt"
	"strings"

	"github.com/kerimovok/pocketbase-api-rule-builder/internal/types"
)

/*
 * Group/condition rendering.
 *
 * Renders one condition family (custom or attribute-based) into a flat
 * sub-expression. Conditions missing a required operand are silently
 * excluded; a group whose conditions are all excluded contributes nothing
 * and emits no join operator.
 *
 * Join semantics:
 *   - Within a group, clauses after the first are prefixed with the group's
 *     InternalLogic token.
 *   - Across groups, a rendered group is prefixed with the Logic token of
 *     the group immediately preceding it in the stored order. The first
 *     group's own Logic field is therefore only read when a later group
 *     joins onto it.
 *   - The first group that renders non-empty is never prefixed, so a
 *     leading group that renders empty cannot leave a dangling operator.
 *
 * A group with more than one surviving clause is parenthesized; a
 * single-clause group is emitted bare to avoid redundant nesting.
 */

// Mode selects how each condition renders.
type Mode int

const (
	// ModeCustom renders "{operand1} {operator} {classified(operand2)}".
	ModeCustom Mode = iota
	// ModeAttribute renders a json_extract clause from operand1 (relation
	// path), operand2 (JSON key path), and operand3 (expected value);
	// the condition's operator is ignored.
	ModeAttribute
)

// Render compiles one condition family into its joined sub-expression.
// Returns the empty string when no group renders any clause.
func Render(gc types.GroupedConditions, mode Mode, fields types.FieldSet) string {
	var parts []string
	for i, g := range gc.Groups {
		s := renderGroup(g, mode, fields)
		if s == "" {
			continue
		}
		if len(parts) > 0 {
			s = gc.Groups[i-1].Logic.Token() + " " + s
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}

// renderGroup renders one group's surviving conditions, joined by the
// group's internal logic. Returns the empty string when nothing survives.
func renderGroup(g types.ConditionGroup, mode Mode, fields types.FieldSet) string {
	var clauses []string
	for _, c := range g.Conditions {
		if !complete(c, mode) {
			continue
		}
		clause := renderCondition(c, mode, fields)
		if len(clauses) > 0 {
			clause = g.InternalLogic.Token() + " " + clause
		}
		clauses = append(clauses, clause)
	}
	if len(clauses) == 0 {
		return ""
	}
	joined := strings.Join(clauses, " ")
	if len(clauses) > 1 {
		return "(" + joined + ")"
	}
	return joined
}

// complete reports whether all operands the mode requires are non-empty.
func complete(c types.Condition, mode Mode) bool {
	if mode == ModeAttribute {
		return c.Operand1 != "" && c.Operand2 != "" && c.Operand3 != ""
	}
	return c.Operand1 != "" && c.Operator != "" && c.Operand2 != ""
}

// renderCondition renders a single surviving condition to a clause.
func renderCondition(c types.Condition, mode Mode, fields types.FieldSet) string {
	if mode == ModeAttribute {
		return fmt.Sprintf("json_extract(@collection.%s, '%s') = %s",
			c.Operand1, c.Operand2, Classify(c.Operand3, fields))
	}
	return fmt.Sprintf("%s %s %s", c.Operand1, c.Operator, Classify(c.Operand2, fields))
}
