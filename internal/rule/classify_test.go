package rule

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/kerimovok/pocketbase-api-rule-builder/internal/types"
)

func TestClassify(t *testing.T) {
	fields := types.NewFieldSet("status", "author", "role")

	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"boolean true", "true", "true"},
		{"boolean false", "false", "false"},
		{"null keyword", "null", "null"},
		{"mixed-case keyword", "True", "True"},
		{"uppercase null", "NULL", "NULL"},
		{"integer", "42", "42"},
		{"negative integer", "-7", "-7"},
		{"decimal", "3.14", "3.14"},
		{"negative decimal", "-0.5", "-0.5"},
		{"macro token", "@request.auth.id", "@request.auth.id"},
		{"collection macro", "@collection.users.id", "@collection.users.id"},
		{"double-quoted", `"already"`, `"already"`},
		{"single-quoted", "'already'", "'already'"},
		{"known field", "status", "status"},
		{"field with modifier", "status:isset", "status:isset"},
		{"unknown value quoted", "active", `"active"`},
		{"unknown modifier quoted", "missing:isset", `"missing:isset"`},
		{"embedded quotes escaped", `say "hi"`, `"say \"hi\""`},
		{"whitespace trimmed", "  active  ", `"active"`},
		{"empty string", "", `""`},
		{"lone quote", `"`, `"\""`},
		{"number with suffix quoted", "42abc", `"42abc"`},
		{"double sign quoted", "--1", `"--1"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.raw, fields)
			if got != tt.expected {
				t.Errorf("Classify(%q) = %q, expected %q", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestClassifyNilFieldSet(t *testing.T) {
	if got := Classify("status", nil); got != `"status"` {
		t.Errorf("expected field recognition disabled with nil set, got %q", got)
	}
}

func TestClassifyProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)
	fields := types.NewFieldSet("status", "author")

	properties.Property("classification is idempotent", prop.ForAll(
		func(raw string) bool {
			once := Classify(raw, fields)
			return Classify(once, fields) == once
		},
		gen.AnyString(),
	))

	properties.Property("output is never empty", prop.ForAll(
		func(raw string) bool {
			return Classify(raw, fields) != ""
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
