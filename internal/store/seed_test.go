package store

import (
	"testing"
)

const testBundleJSON = `[
	{
		"name": "Blog",
		"schemas": [
			{"id": "col_posts", "name": "posts", "fields": [{"name": "title", "type": "text"}]}
		],
		"presets": [
			{"name": "readable", "rules": {"posts": {"listRule": {"authenticated": true}}}},
			{"name": "", "rules": {}}
		]
	},
	{
		"name": "Shop",
		"schemas": [
			{"id": "col_items", "name": "items", "fields": [{"name": "price", "type": "number"}]}
		]
	}
]`

func TestSeed(t *testing.T) {
	t.Run("installs bundle databases", func(t *testing.T) {
		s := New()
		if err := s.Seed([]byte(testBundleJSON)); err != nil {
			t.Fatalf("Seed failed: %v", err)
		}
		dbs := s.Databases()
		if len(dbs) != 2 {
			t.Fatalf("expected 2 databases, got %d", len(dbs))
		}
		if dbs[0].Name != "Blog" || dbs[1].Name != "Shop" {
			t.Errorf("unexpected names %q, %q", dbs[0].Name, dbs[1].Name)
		}
		if dbs[0].ID == "" || dbs[1].ID == "" {
			t.Error("expected generated ids")
		}

		cur, ok := s.CurrentDatabase()
		if !ok || cur.Name != "Blog" {
			t.Errorf("expected first database current, got %+v", cur)
		}
	})

	t.Run("nameless presets dropped", func(t *testing.T) {
		s := New()
		s.Seed([]byte(testBundleJSON))
		presets := s.Databases()[0].Presets
		if len(presets) != 1 || presets[0].Name != "readable" {
			t.Errorf("unexpected presets %+v", presets)
		}
	})

	t.Run("seeded presets load", func(t *testing.T) {
		s := New()
		s.Seed([]byte(testBundleJSON))
		s.SetCollection("posts")
		if err := s.LoadPreset("readable"); err != nil {
			t.Fatalf("LoadPreset failed: %v", err)
		}
		if !s.Config().Authenticated {
			t.Error("seeded preset configuration not restored")
		}
	})

	t.Run("no-op when databases exist", func(t *testing.T) {
		s := New()
		s.AddDatabase("existing", []byte(testSchemaJSON))
		if err := s.Seed([]byte(testBundleJSON)); err != nil {
			t.Fatalf("Seed failed: %v", err)
		}
		if len(s.Databases()) != 1 || s.Databases()[0].Name != "existing" {
			t.Error("seed must not override existing databases")
		}
	})

	t.Run("malformed bundle errors", func(t *testing.T) {
		s := New()
		if err := s.Seed([]byte(`{"not":"an array"`)); err == nil {
			t.Error("expected parse error")
		}
		if len(s.Databases()) != 0 {
			t.Error("nothing should be installed on parse failure")
		}
	})
}
