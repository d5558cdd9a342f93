package rule

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/kerimovok/pocketbase-api-rule-builder/internal/types"
)

func emptyFamilies() (types.GroupedConditions, types.GroupedConditions) {
	return types.GroupedConditions{}, types.GroupedConditions{}
}

func TestAssemble(t *testing.T) {
	custom, abac := emptyFamilies()

	tests := []struct {
		name     string
		cfg      types.RuleConfig
		op       types.Operation
		expected string
	}{
		{
			name:     "empty configuration yields placeholder",
			cfg:      types.RuleConfig{CustomConditions: custom, AbacConditions: abac},
			op:       types.OperationList,
			expected: NoConditionsPlaceholder,
		},
		{
			name:     "auth guard alone",
			cfg:      types.RuleConfig{Authenticated: true},
			op:       types.OperationList,
			expected: `@request.auth.id != ""`,
		},
		{
			name:     "authenticated owner read",
			cfg:      types.RuleConfig{Authenticated: true, OwnerField: "author"},
			op:       types.OperationList,
			expected: `@request.auth.id != "" && author = @request.auth.id`,
		},
		{
			name:     "owner clause on view",
			cfg:      types.RuleConfig{OwnerField: "author"},
			op:       types.OperationView,
			expected: "author = @request.auth.id",
		},
		{
			name:     "owner clause targets request data on create",
			cfg:      types.RuleConfig{OwnerField: "owner"},
			op:       types.OperationCreate,
			expected: "@request.data.owner = @request.auth.id",
		},
		{
			name:     "owner clause targets request data on update",
			cfg:      types.RuleConfig{OwnerField: "owner"},
			op:       types.OperationUpdate,
			expected: "@request.data.owner = @request.auth.id",
		},
		{
			name:     "owner field ignored on delete",
			cfg:      types.RuleConfig{OwnerField: "owner"},
			op:       types.OperationDelete,
			expected: NoConditionsPlaceholder,
		},
		{
			name:     "lock fields emit immutability clauses on update",
			cfg:      types.RuleConfig{LockFields: []string{"role", "status"}},
			op:       types.OperationUpdate,
			expected: "@request.data.role = role && @request.data.status = status",
		},
		{
			name:     "lock fields ignored outside update",
			cfg:      types.RuleConfig{LockFields: []string{"role"}},
			op:       types.OperationCreate,
			expected: NoConditionsPlaceholder,
		},
		{
			name:     "blank lock entries skipped",
			cfg:      types.RuleConfig{LockFields: []string{"", "role", "  "}},
			op:       types.OperationUpdate,
			expected: "@request.data.role = role",
		},
		{
			name:     "auth match field emits relation clause on update",
			cfg:      types.RuleConfig{AuthMatchField: "team_members"},
			op:       types.OperationUpdate,
			expected: "@collection.team_members.id = @request.auth.id",
		},
		{
			name:     "auth match field ignored outside update",
			cfg:      types.RuleConfig{AuthMatchField: "team_members"},
			op:       types.OperationView,
			expected: NoConditionsPlaceholder,
		},
		{
			name: "custom family parenthesized after the guard",
			cfg: types.RuleConfig{
				Authenticated: true,
				CustomConditions: types.GroupedConditions{Groups: []types.ConditionGroup{
					group(types.LogicAnd, types.LogicAnd, condition("status", "=", "active")),
				}},
			},
			op:       types.OperationList,
			expected: `@request.auth.id != "" && (status = "active")`,
		},
		{
			name: "attribute family parenthesized",
			cfg: types.RuleConfig{
				AbacConditions: types.GroupedConditions{Groups: []types.ConditionGroup{
					group(types.LogicAnd, types.LogicAnd, types.Condition{
						ID:       types.NewConditionID(),
						Operand1: "team_members",
						Operand2: "$.canEdit",
						Operand3: "true",
					}),
				}},
			},
			op:       types.OperationUpdate,
			expected: "(json_extract(@collection.team_members, '$.canEdit') = true)",
		},
		{
			name: "all clause slots in fixed order",
			cfg: types.RuleConfig{
				Authenticated:  true,
				OwnerField:     "owner",
				AuthMatchField: "team_members",
				LockFields:     []string{"role"},
				CustomConditions: types.GroupedConditions{Groups: []types.ConditionGroup{
					group(types.LogicAnd, types.LogicAnd, condition("status", "=", "active")),
				}},
				AbacConditions: types.GroupedConditions{Groups: []types.ConditionGroup{
					group(types.LogicAnd, types.LogicAnd, types.Condition{
						ID:       types.NewConditionID(),
						Operand1: "team_members",
						Operand2: "$.canEdit",
						Operand3: "true",
					}),
				}},
			},
			op: types.OperationUpdate,
			expected: `@request.auth.id != "" && ` +
				"@request.data.owner = @request.auth.id && " +
				"@collection.team_members.id = @request.auth.id && " +
				"@request.data.role = role && " +
				`(status = "active") && ` +
				"(json_extract(@collection.team_members, '$.canEdit') = true)",
		},
		{
			name:     "owner field whitespace trimmed",
			cfg:      types.RuleConfig{OwnerField: "  author  "},
			op:       types.OperationList,
			expected: "author = @request.auth.id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Assemble(tt.cfg, tt.op, nil)
			if got != tt.expected {
				t.Errorf("Assemble = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestAssembleProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)
	ops := types.Operations()

	buildConfig := func(authenticated bool, owner string, locks []string) types.RuleConfig {
		return types.RuleConfig{
			Authenticated: authenticated,
			OwnerField:    owner,
			LockFields:    locks,
		}
	}

	properties.Property("output is never empty", prop.ForAll(
		func(authenticated bool, owner string, opIndex int) bool {
			cfg := buildConfig(authenticated, owner, nil)
			return Assemble(cfg, ops[opIndex], nil) != ""
		},
		gen.Bool(),
		gen.AlphaString(),
		gen.IntRange(0, len(ops)-1),
	))

	properties.Property("assembly is deterministic", prop.ForAll(
		func(authenticated bool, owner string, locks []string, opIndex int) bool {
			cfg := buildConfig(authenticated, owner, locks)
			op := ops[opIndex]
			return Assemble(cfg, op, nil) == Assemble(cfg, op, nil)
		},
		gen.Bool(),
		gen.AlphaString(),
		gen.SliceOf(gen.AlphaString()),
		gen.IntRange(0, len(ops)-1),
	))

	properties.Property("placeholder never joined with clauses", prop.ForAll(
		func(authenticated bool, owner string, opIndex int) bool {
			cfg := buildConfig(authenticated, owner, nil)
			out := Assemble(cfg, ops[opIndex], nil)
			if strings.Contains(out, NoConditionsPlaceholder) {
				return out == NoConditionsPlaceholder
			}
			return true
		},
		gen.Bool(),
		gen.AlphaString(),
		gen.IntRange(0, len(ops)-1),
	))

	properties.TestingRun(t)
}
