package rule

import (
	"strings"

	"github.com/kerimovok/pocketbase-api-rule-builder/internal/types"
)

/*
 * Rule assembly.
 *
 * Assemble orchestrates the fixed-slot clauses (authentication, ownership,
 * auth-match, lock-fields) together with the two condition-group families
 * into the final conjunctive expression. It is a pure function of its
 * inputs; the store recomputes it on every committed edit.
 *
 * Clause order is fixed:
 *   1. auth guard                      (authenticated)
 *   2. {owner} = @request.auth.id      (read op, owner field set)
 *   3. @request.data.{owner} = ...     (write op, owner field set)
 *   4. update only: @collection.{authMatch}.id = ... and one
 *      @request.data.{f} = {f} immutability clause per lock field,
 *      AND-joined into a single combined clause
 *   5. custom family, parenthesized
 *   6. attribute family, parenthesized
 *
 * The owner field drives both read- and write-side ownership; the
 * auth-match field is an independent update-only relation-ownership knob.
 * When nothing qualifies the assembler emits a comment placeholder so the
 * display is never blank.
 */

// NoConditionsPlaceholder is emitted when no clause qualifies.
const NoConditionsPlaceholder = "// No conditions defined"

const (
	authIDMacro   = "@request.auth.id"
	authGuard     = `@request.auth.id != ""`
	dataNamespace = "@request.data"
)

// Assemble compiles a rule configuration for one operation into the final
// boolean expression string.
func Assemble(cfg types.RuleConfig, op types.Operation, fields types.FieldSet) string {
	var parts []string

	if cfg.Authenticated {
		parts = append(parts, authGuard)
	}

	owner := strings.TrimSpace(cfg.OwnerField)
	if owner != "" && op.IsRead() {
		parts = append(parts, owner+" = "+authIDMacro)
	}
	if owner != "" && op.IsWrite() {
		parts = append(parts, dataNamespace+"."+owner+" = "+authIDMacro)
	}

	if op == types.OperationUpdate {
		if match := strings.TrimSpace(cfg.AuthMatchField); match != "" {
			parts = append(parts, "@collection."+match+".id = "+authIDMacro)
		}
		if lock := lockClause(cfg.LockFields); lock != "" {
			parts = append(parts, lock)
		}
	}

	if s := Render(cfg.CustomConditions, ModeCustom, fields); s != "" {
		parts = append(parts, "("+s+")")
	}
	if s := Render(cfg.AbacConditions, ModeAttribute, fields); s != "" {
		parts = append(parts, "("+s+")")
	}

	if len(parts) == 0 {
		return NoConditionsPlaceholder
	}
	return strings.Join(parts, " && ")
}

// lockClause builds the combined immutability clause: each locked field
// must be submitted equal to its stored value. Blank entries are skipped.
func lockClause(lockFields []string) string {
	var locks []string
	for _, f := range lockFields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		locks = append(locks, dataNamespace+"."+f+" = "+f)
	}
	return strings.Join(locks, " && ")
}
