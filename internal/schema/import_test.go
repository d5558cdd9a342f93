package schema

import (
	"testing"
)

func TestParseImport(t *testing.T) {
	tests := []struct {
		name string
		text string
		code string
	}{
		{"empty input", "", CodeEmptyInput},
		{"whitespace only", "   \n\t", CodeEmptyInput},
		{"malformed json", `[{"name":`, CodeParseError},
		{"object instead of array", `{"name":"users"}`, CodeNotAnArray},
		{"string instead of array", `"users"`, CodeNotAnArray},
		{"non-object element", `["users"]`, CodeInvalidCollection},
		{"missing name", `[{"fields":[]}]`, CodeMissingName},
		{"empty name", `[{"name":"","fields":[]}]`, CodeMissingName},
		{"non-string name", `[{"name":5,"fields":[]}]`, CodeMissingName},
		{"missing fields", `[{"name":"users"}]`, CodeInvalidFields},
		{"fields not an array", `[{"name":"users","fields":{}}]`, CodeInvalidFields},
		{"field missing name", `[{"name":"users","fields":[{"type":"text"}]}]`, CodeInvalidFields},
		{"field name not a string", `[{"name":"users","fields":[{"name":7}]}]`, CodeInvalidFields},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schemas, verr := ParseImport([]byte(tt.text))
			if verr == nil {
				t.Fatalf("expected error code %q, got schemas %v", tt.code, schemas)
			}
			if verr.Code != tt.code {
				t.Errorf("expected code %q, got %q (%s)", tt.code, verr.Code, verr.Details)
			}
		})
	}
}

func TestParseImportValid(t *testing.T) {
	t.Run("empty array", func(t *testing.T) {
		schemas, verr := ParseImport([]byte(`[]`))
		if verr != nil {
			t.Fatalf("unexpected error: %v", verr)
		}
		if len(schemas) != 0 {
			t.Errorf("expected no schemas, got %d", len(schemas))
		}
	})

	t.Run("full export", func(t *testing.T) {
		text := `[
			{
				"id": "col_posts",
				"name": "posts",
				"fields": [
					{"name": "title", "type": "text", "required": true},
					{"name": "author", "type": "relation", "options": {"collectionId": "col_users"}}
				]
			},
			{
				"id": "col_users",
				"name": "users",
				"fields": [{"name": "email", "type": "email"}]
			}
		]`
		schemas, verr := ParseImport([]byte(text))
		if verr != nil {
			t.Fatalf("unexpected error: %v", verr)
		}
		if len(schemas) != 2 {
			t.Fatalf("expected 2 schemas, got %d", len(schemas))
		}
		if schemas[0].Name != "posts" || schemas[0].ID != "col_posts" {
			t.Errorf("unexpected first schema: %+v", schemas[0])
		}
		author := schemas[0].Fields[1]
		if !author.IsRelation() || author.Options.TargetCollectionID != "col_users" {
			t.Errorf("relation field not decoded: %+v", author)
		}
		if schemas[0].Fields[0].Required != true {
			t.Error("required flag not decoded")
		}
	})

	t.Run("unknown keys ignored", func(t *testing.T) {
		text := `[{"name":"users","type":"auth","system":false,"fields":[{"name":"email","hidden":true}]}]`
		schemas, verr := ParseImport([]byte(text))
		if verr != nil {
			t.Fatalf("unexpected error: %v", verr)
		}
		if schemas[0].Fields[0].Name != "email" {
			t.Errorf("unexpected field: %+v", schemas[0].Fields[0])
		}
	})
}
